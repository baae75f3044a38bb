package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gentlix-bank/internal/errors"
)

func newTestAccount(opts ...AccountOption) *Account {
	return NewAccount(AccountParams{
		Tag:         "johnsmith",
		IBAN:        "RO00GLBK0001000000000001",
		FirstName:   "John",
		SecondName:  "Smith",
		Password:    "secret1",
		PhoneNumber: "0712345678",
		Birthday:    NewDate(15, 6, 1990),
	}, opts...)
}

func deposit(amount int64, date Date) *Transaction {
	return NewTransaction(TransactionParams{
		Amount:      decimal.NewFromInt(amount),
		Type:        TransactionDeposit,
		Description: "salary",
		Date:        date,
	})
}

func TestNilAccountIsSafe(t *testing.T) {
	var a *Account

	assert.Empty(t, a.Tag())
	assert.True(t, a.Balance().IsZero())
	assert.True(t, a.Birthday().IsZero())
	assert.Nil(t, a.Transactions())
	assert.Zero(t, a.TransactionCount())
	assert.Nil(t, a.Clone())

	a.SetBalance(decimal.NewFromInt(5))
	a.Release()

	assert.ErrorIs(t, a.AppendTransaction(deposit(1, NewDate(1, 1, 2024))), errors.ErrNilAccount)
	assert.ErrorIs(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "x"})), errors.ErrNilAccount)
	assert.ErrorIs(t, a.RemoveSubAccount(SubAccountSavings), errors.ErrNilAccount)

	_, ok := a.LatestTransaction()
	assert.False(t, ok)
}

func TestNewAccountDefaults(t *testing.T) {
	a := newTestAccount()

	assert.Equal(t, "johnsmith", a.Tag())
	assert.Equal(t, DefaultTransactionCapacity, a.TransactionCapacity())
	assert.Equal(t, DefaultAffiliateCapacity, a.AffiliateCapacity())
	assert.Equal(t, DefaultSubAccountCapacity, a.SubAccountCapacity())
	assert.True(t, a.Balance().IsZero())
}

func TestAppendTransactionGrowsAndKeepsOrder(t *testing.T) {
	a := newTestAccount(WithCapacities(2, 2, 2))

	for i := 1; i <= 5; i++ {
		require.NoError(t, a.AppendTransaction(deposit(int64(i), NewDate(i, 1, 2024))))
	}

	assert.Equal(t, 5, a.TransactionCount())
	assert.Equal(t, 5, a.TransactionCapacity())
	for i, tx := range a.Transactions() {
		assert.True(t, decimal.NewFromInt(int64(i+1)).Equal(tx.Amount()))
	}

	latest, ok := a.LatestTransaction()
	require.True(t, ok)
	assert.Equal(t, NewDate(5, 1, 2024), latest.Date())

	first, ok := a.TransactionAt(0)
	require.True(t, ok)
	assert.Equal(t, NewDate(1, 1, 2024), first.Date())
}

func TestAppendTransactionNilItem(t *testing.T) {
	a := newTestAccount()
	assert.ErrorIs(t, a.AppendTransaction(nil), errors.ErrNilItem)
	assert.Zero(t, a.TransactionCount())
}

func TestAppendTransactionGrowthFailure(t *testing.T) {
	a := newTestAccount(WithCapacities(1, 1, 1), WithCollectionLimit(1))

	require.NoError(t, a.AppendTransaction(deposit(1, NewDate(1, 1, 2024))))
	err := a.AppendTransaction(deposit(2, NewDate(2, 1, 2024)))

	assert.ErrorIs(t, err, errors.ErrAllocFailure)
	assert.Equal(t, 1, a.TransactionCount())
}

func TestAffiliates(t *testing.T) {
	a := newTestAccount(WithCapacities(1, 1, 1))

	require.NoError(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "alice", IBAN: "RO00GLBK0001111111111111"})))
	require.NoError(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "bob"})))
	require.NoError(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "carol"})))

	assert.ErrorIs(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "bob"})), errors.ErrAffiliateExists)
	assert.ErrorIs(t, a.AddAffiliate(nil), errors.ErrNilItem)
	assert.Equal(t, 3, a.AffiliateCount())

	require.NoError(t, a.RemoveAffiliate("alice"))
	assert.ErrorIs(t, a.RemoveAffiliate("alice"), errors.ErrAffiliateNotFound)
	assert.ErrorIs(t, a.RemoveAffiliate(""), errors.ErrMissingKey)

	tags := []string{}
	for _, af := range a.Affiliates() {
		tags = append(tags, af.Tag())
	}
	assert.Equal(t, []string{"bob", "carol"}, tags)

	found, ok := a.Affiliate("carol")
	require.True(t, ok)
	assert.Equal(t, "carol", found.Tag())
}

func TestSubAccounts(t *testing.T) {
	a := newTestAccount()

	require.NoError(t, a.AddSubAccount(NewSubAccount(SubAccountSavings, decimal.Zero)))
	assert.ErrorIs(t, a.AddSubAccount(NewSubAccount(SubAccountSavings, decimal.Zero)), errors.ErrSubAccountExists)
	require.NoError(t, a.AddSubAccount(NewSubAccount(SubAccountCredit, decimal.Zero)))

	assert.ErrorIs(t, a.RemoveSubAccount(SubAccountChecking), errors.ErrSubAccountNotFound)
	require.NoError(t, a.RemoveSubAccount(SubAccountSavings))
	assert.Equal(t, 1, a.SubAccountCount())

	_, ok := a.SubAccount(SubAccountSavings)
	assert.False(t, ok)
}

func TestSubAccountsGrowPastInitialCapacity(t *testing.T) {
	a := newTestAccount()
	require.Equal(t, 8, a.SubAccountCapacity())

	for i := 0; i < 9; i++ {
		require.NoError(t, a.AddSubAccount(NewSubAccount(fmt.Sprintf("pocket%d", i), decimal.NewFromInt(int64(i)))))
	}
	assert.Equal(t, 9, a.SubAccountCount())
	assert.Equal(t, 17, a.SubAccountCapacity())

	for i, sub := range a.SubAccounts() {
		assert.Equal(t, fmt.Sprintf("pocket%d", i), sub.Type())
	}

	small := newTestAccount(WithCapacities(1, 1, 1))
	require.NoError(t, small.AddSubAccount(NewSubAccount(SubAccountSavings, decimal.Zero)))
	require.NoError(t, small.AddSubAccount(NewSubAccount(SubAccountChecking, decimal.Zero)))
	require.NoError(t, small.AddSubAccount(NewSubAccount(SubAccountCredit, decimal.Zero)))
	assert.Equal(t, 3, small.SubAccountCount())
	assert.Equal(t, 3, small.SubAccountCapacity())
	_, ok := small.SubAccount(SubAccountCredit)
	assert.True(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	a := newTestAccount()
	require.NoError(t, a.AddSubAccount(NewSubAccount(SubAccountSavings, decimal.NewFromInt(10))))
	require.NoError(t, a.AddAffiliate(NewAffiliate(AffiliateParams{Tag: "alice", Phone: "071"})))
	require.NoError(t, a.AppendTransaction(deposit(10, NewDate(1, 1, 2024))))

	cp := a.Clone()
	cp.SetFirstName("Changed")
	cp.SetBalance(decimal.NewFromInt(99))
	sub, _ := cp.SubAccount(SubAccountSavings)
	sub.SetBalance(decimal.NewFromInt(1))
	af, _ := cp.Affiliate("alice")
	af.SetPhone("999")
	require.NoError(t, cp.AppendTransaction(deposit(5, NewDate(2, 1, 2024))))

	assert.Equal(t, "John", a.FirstName())
	assert.True(t, a.Balance().IsZero())
	orig, _ := a.SubAccount(SubAccountSavings)
	assert.True(t, decimal.NewFromInt(10).Equal(orig.Balance()))
	origAf, _ := a.Affiliate("alice")
	assert.Equal(t, "071", origAf.Phone())
	assert.Equal(t, 1, a.TransactionCount())
	assert.Equal(t, 2, cp.TransactionCount())
}

func TestRelease(t *testing.T) {
	a := newTestAccount()
	require.NoError(t, a.AppendTransaction(deposit(10, NewDate(1, 1, 2024))))

	a.Release()

	assert.Zero(t, a.TransactionCount())
	assert.ErrorIs(t, a.AppendTransaction(deposit(1, NewDate(1, 1, 2024))), errors.ErrNilAccount)
	assert.ErrorIs(t, a.AddSubAccount(NewSubAccount(SubAccountSavings, decimal.Zero)), errors.ErrNilAccount)
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(40)
	for _, typ := range []TransactionType{TransactionWithdraw, TransactionTransfer, TransactionPayment} {
		tx := NewTransaction(TransactionParams{Amount: amount, Type: typ})
		assert.True(t, amount.Neg().Equal(tx.SignedAmount()), "type %s", typ)
		assert.Equal(t, string(typ), tx.Category())
		assert.Equal(t, MainUserAccount, tx.UserAccount())
	}
	assert.True(t, amount.Equal(deposit(40, Date{}).SignedAmount()))
}

func TestDateBefore(t *testing.T) {
	assert.True(t, NewDate(31, 12, 2023).Before(NewDate(1, 1, 2024)))
	assert.True(t, NewDate(30, 5, 2024).Before(NewDate(1, 6, 2024)))
	assert.False(t, NewDate(1, 6, 2024).Before(NewDate(1, 6, 2024)))
	assert.Equal(t, "2024-06-01", NewDate(1, 6, 2024).String())
}
