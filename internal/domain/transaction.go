package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
	TransactionTransfer TransactionType = "transfer"
	TransactionPayment  TransactionType = "payment"
)

// Debits reports whether the transaction type lowers the balance.
func (t TransactionType) Debits() bool {
	return t == TransactionWithdraw || t == TransactionTransfer || t == TransactionPayment
}

// MainUserAccount labels transactions booked on the main balance.
const MainUserAccount = "main"

// Transaction is immutable once created.
type Transaction struct {
	id           uuid.UUID
	amount       decimal.Decimal
	userAccount  string
	txType       TransactionType
	receiverIBAN string
	category     string
	description  string
	date         Date
	recordedAt   time.Time
}

type TransactionParams struct {
	Amount       decimal.Decimal
	UserAccount  string
	Type         TransactionType
	ReceiverIBAN string
	Category     string
	Description  string
	Date         Date
}

func NewTransaction(p TransactionParams) *Transaction {
	userAccount := p.UserAccount
	if userAccount == "" {
		userAccount = MainUserAccount
	}
	category := p.Category
	if category == "" {
		category = string(p.Type)
	}
	return &Transaction{
		id:           uuid.New(),
		amount:       p.Amount,
		userAccount:  userAccount,
		txType:       p.Type,
		receiverIBAN: p.ReceiverIBAN,
		category:     category,
		description:  p.Description,
		date:         p.Date,
		recordedAt:   time.Now().UTC(),
	}
}

func (t *Transaction) ID() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.id
}

func (t *Transaction) Amount() decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	return t.amount
}

func (t *Transaction) UserAccount() string {
	if t == nil {
		return ""
	}
	return t.userAccount
}

func (t *Transaction) Type() TransactionType {
	if t == nil {
		return ""
	}
	return t.txType
}

func (t *Transaction) ReceiverIBAN() string {
	if t == nil {
		return ""
	}
	return t.receiverIBAN
}

func (t *Transaction) Category() string {
	if t == nil {
		return ""
	}
	return t.category
}

func (t *Transaction) Description() string {
	if t == nil {
		return ""
	}
	return t.description
}

func (t *Transaction) Date() Date {
	if t == nil {
		return Date{}
	}
	return t.date
}

func (t *Transaction) RecordedAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.recordedAt
}

// SignedAmount is the effect of the transaction on the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if t.txType.Debits() {
		return t.amount.Neg()
	}
	return t.amount
}

type TransactionRepository interface {
	CreateTransaction(account *Account, tx *Transaction) error
	GetTransactions(account *Account) []*Transaction
	GetLatestTransaction(account *Account) (*Transaction, bool)
}
