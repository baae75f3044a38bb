package domain

import (
	"github.com/shopspring/decimal"

	"gentlix-bank/internal/collection"
	"gentlix-bank/internal/errors"
)

// Initial capacities of the collections an account owns. They grow on demand.
const (
	DefaultTransactionCapacity = 512
	DefaultAffiliateCapacity   = 128
	DefaultSubAccountCapacity  = 8
)

// Account is owned by the repository; it exclusively owns its transactions,
// affiliates and sub-accounts. Tag and IBAN are fixed at creation.
type Account struct {
	tag         string
	iban        string
	balance     decimal.Decimal
	firstName   string
	secondName  string
	password    string
	phoneNumber string
	birthday    Date

	transactions *collection.Collection[*Transaction]
	affiliates   *collection.Collection[*Affiliate]
	subAccounts  *collection.Collection[*SubAccount]
}

type AccountParams struct {
	Tag         string
	IBAN        string
	Balance     decimal.Decimal
	FirstName   string
	SecondName  string
	Password    string
	PhoneNumber string
	Birthday    Date
}

type accountOptions struct {
	transactionCapacity int
	affiliateCapacity   int
	subAccountCapacity  int
	collectionLimit     int
}

// AccountOption tunes the collections of a new account.
type AccountOption func(*accountOptions)

// WithCapacities overrides the initial collection capacities.
func WithCapacities(transactions, affiliates, subAccounts int) AccountOption {
	return func(o *accountOptions) {
		o.transactionCapacity = transactions
		o.affiliateCapacity = affiliates
		o.subAccountCapacity = subAccounts
	}
}

// WithCollectionLimit caps how far each owned collection may grow. A negative
// limit disables growth.
func WithCollectionLimit(limit int) AccountOption {
	return func(o *accountOptions) {
		o.collectionLimit = limit
	}
}

func NewAccount(p AccountParams, opts ...AccountOption) *Account {
	o := accountOptions{
		transactionCapacity: DefaultTransactionCapacity,
		affiliateCapacity:   DefaultAffiliateCapacity,
		subAccountCapacity:  DefaultSubAccountCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	limit := collection.WithMaxCapacity(o.collectionLimit)

	return &Account{
		tag:          p.Tag,
		iban:         p.IBAN,
		balance:      p.Balance,
		firstName:    p.FirstName,
		secondName:   p.SecondName,
		password:     p.Password,
		phoneNumber:  p.PhoneNumber,
		birthday:     p.Birthday,
		transactions: collection.New[*Transaction](o.transactionCapacity, nil, limit),
		affiliates:   collection.New[*Affiliate](o.affiliateCapacity, (*Affiliate).Tag, limit),
		subAccounts:  collection.New[*SubAccount](o.subAccountCapacity, (*SubAccount).Type, limit),
	}
}

func (a *Account) Tag() string {
	if a == nil {
		return ""
	}
	return a.tag
}

func (a *Account) IBAN() string {
	if a == nil {
		return ""
	}
	return a.iban
}

func (a *Account) Balance() decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.balance
}

func (a *Account) FirstName() string {
	if a == nil {
		return ""
	}
	return a.firstName
}

func (a *Account) SecondName() string {
	if a == nil {
		return ""
	}
	return a.secondName
}

func (a *Account) Password() string {
	if a == nil {
		return ""
	}
	return a.password
}

func (a *Account) PhoneNumber() string {
	if a == nil {
		return ""
	}
	return a.phoneNumber
}

func (a *Account) Birthday() Date {
	if a == nil {
		return Date{}
	}
	return a.birthday
}

func (a *Account) SetBalance(balance decimal.Decimal) {
	if a == nil {
		return
	}
	a.balance = balance
}

func (a *Account) SetFirstName(name string) {
	if a == nil {
		return
	}
	a.firstName = name
}

func (a *Account) SetSecondName(name string) {
	if a == nil {
		return
	}
	a.secondName = name
}

func (a *Account) SetPassword(password string) {
	if a == nil {
		return
	}
	a.password = password
}

func (a *Account) SetPhoneNumber(phone string) {
	if a == nil {
		return
	}
	a.phoneNumber = phone
}

func (a *Account) SetBirthday(birthday Date) {
	if a == nil {
		return
	}
	a.birthday = birthday
}

// AppendTransaction records tx at the end of the history. Transactions are
// never checked for duplicates.
func (a *Account) AppendTransaction(tx *Transaction) error {
	if a == nil || a.transactions == nil {
		return errors.ErrNilAccount
	}
	if tx == nil {
		return errors.ErrNilItem
	}
	if err := a.transactions.Append(tx); err != nil {
		return errors.ErrAllocFailure.WithDetails(err.Error())
	}
	return nil
}

// LatestTransaction returns the last appended transaction.
func (a *Account) LatestTransaction() (*Transaction, bool) {
	if a == nil || a.transactions == nil {
		return nil, false
	}
	return a.transactions.Last()
}

func (a *Account) Transactions() []*Transaction {
	if a == nil || a.transactions == nil {
		return nil
	}
	return a.transactions.Items()
}

func (a *Account) TransactionAt(i int) (*Transaction, bool) {
	if a == nil || a.transactions == nil {
		return nil, false
	}
	return a.transactions.At(i)
}

func (a *Account) TransactionCount() int {
	if a == nil || a.transactions == nil {
		return 0
	}
	return a.transactions.Len()
}

func (a *Account) TransactionCapacity() int {
	if a == nil || a.transactions == nil {
		return 0
	}
	return a.transactions.Cap()
}

func (a *Account) AddAffiliate(affiliate *Affiliate) error {
	if a == nil || a.affiliates == nil {
		return errors.ErrNilAccount
	}
	if affiliate == nil {
		return errors.ErrNilItem
	}
	if err := a.affiliates.Append(affiliate); err != nil {
		if errors.Is(err, collection.ErrDuplicateKey) {
			return errors.ErrAffiliateExists
		}
		return errors.ErrAllocFailure.WithDetails(err.Error())
	}
	return nil
}

func (a *Account) RemoveAffiliate(tag string) error {
	if a == nil || a.affiliates == nil {
		return errors.ErrNilAccount
	}
	if tag == "" {
		return errors.ErrMissingKey
	}
	if _, err := a.affiliates.Remove(tag); err != nil {
		return errors.ErrAffiliateNotFound
	}
	return nil
}

func (a *Account) Affiliate(tag string) (*Affiliate, bool) {
	if a == nil || a.affiliates == nil {
		return nil, false
	}
	return a.affiliates.Find(tag)
}

func (a *Account) Affiliates() []*Affiliate {
	if a == nil || a.affiliates == nil {
		return nil
	}
	return a.affiliates.Items()
}

func (a *Account) AffiliateCount() int {
	if a == nil || a.affiliates == nil {
		return 0
	}
	return a.affiliates.Len()
}

func (a *Account) AffiliateCapacity() int {
	if a == nil || a.affiliates == nil {
		return 0
	}
	return a.affiliates.Cap()
}

func (a *Account) AddSubAccount(sub *SubAccount) error {
	if a == nil || a.subAccounts == nil {
		return errors.ErrNilAccount
	}
	if sub == nil {
		return errors.ErrNilItem
	}
	if err := a.subAccounts.Append(sub); err != nil {
		if errors.Is(err, collection.ErrDuplicateKey) {
			return errors.ErrSubAccountExists
		}
		return errors.ErrAllocFailure.WithDetails(err.Error())
	}
	return nil
}

func (a *Account) RemoveSubAccount(subType string) error {
	if a == nil || a.subAccounts == nil {
		return errors.ErrNilAccount
	}
	if subType == "" {
		return errors.ErrMissingKey
	}
	if _, err := a.subAccounts.Remove(subType); err != nil {
		return errors.ErrSubAccountNotFound
	}
	return nil
}

func (a *Account) SubAccount(subType string) (*SubAccount, bool) {
	if a == nil || a.subAccounts == nil {
		return nil, false
	}
	return a.subAccounts.Find(subType)
}

func (a *Account) SubAccounts() []*SubAccount {
	if a == nil || a.subAccounts == nil {
		return nil
	}
	return a.subAccounts.Items()
}

func (a *Account) SubAccountCount() int {
	if a == nil || a.subAccounts == nil {
		return 0
	}
	return a.subAccounts.Len()
}

func (a *Account) SubAccountCapacity() int {
	if a == nil || a.subAccounts == nil {
		return 0
	}
	return a.subAccounts.Cap()
}

// Release drops everything the account owns. The account must not be used
// afterwards; its collection operations report ErrNilAccount.
func (a *Account) Release() {
	if a == nil {
		return
	}
	if a.transactions != nil {
		a.transactions.Clear(nil)
	}
	if a.affiliates != nil {
		a.affiliates.Clear(nil)
	}
	if a.subAccounts != nil {
		a.subAccounts.Clear(nil)
	}
	a.transactions = nil
	a.affiliates = nil
	a.subAccounts = nil
}

// Clone returns a deep copy that shares nothing mutable with a. Transactions
// are immutable and shared.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.transactions == nil {
		return &cp
	}

	limit := collection.WithMaxCapacity(0)
	cp.transactions = collection.New[*Transaction](a.transactions.Cap(), nil, limit)
	for _, tx := range a.transactions.Items() {
		_ = cp.transactions.Append(tx)
	}
	cp.affiliates = collection.New[*Affiliate](a.affiliates.Cap(), (*Affiliate).Tag, limit)
	for _, af := range a.affiliates.Items() {
		_ = cp.affiliates.Append(af.Clone())
	}
	cp.subAccounts = collection.New[*SubAccount](a.subAccounts.Cap(), (*SubAccount).Type, limit)
	for _, sub := range a.subAccounts.Items() {
		_ = cp.subAccounts.Append(sub.Clone())
	}
	return &cp
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	RemoveAccount(tag string) error
	GetAccount(tag string) (*Account, error)
	GetAccountByIBAN(iban string) (*Account, error)
	GetAccountAt(index int) (*Account, error)
	TagExists(tag string) bool
	IBANExists(iban string) bool
	Authenticate(tag, password string) (*Account, error)
	Size() int
	Capacity() int
	IsFull() bool
	Clear()
	Destroy()
}
