package domain

import "github.com/shopspring/decimal"

// Known sub-account types.
const (
	SubAccountSavings  = "savings"
	SubAccountChecking = "checking"
	SubAccountCredit   = "credit"
)

var SubAccountTypes = []string{SubAccountSavings, SubAccountChecking, SubAccountCredit}

// SubAccount is a named balance bucket. Its type is unique within the owning
// account and does not change after creation.
type SubAccount struct {
	subType string
	balance decimal.Decimal
}

func NewSubAccount(subType string, balance decimal.Decimal) *SubAccount {
	return &SubAccount{subType: subType, balance: balance}
}

func (s *SubAccount) Type() string {
	if s == nil {
		return ""
	}
	return s.subType
}

func (s *SubAccount) Balance() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.balance
}

func (s *SubAccount) SetBalance(balance decimal.Decimal) {
	if s == nil {
		return
	}
	s.balance = balance
}

func (s *SubAccount) Clone() *SubAccount {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
