package service

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/repository"
	"gentlix-bank/internal/session"
	"gentlix-bank/internal/validation"
)

type TransactionService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewTransactionService(store *repository.Store, logger zerolog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger.With().Str("component", "transaction_service").Logger(),
	}
}

// TransactionRequest carries the raw form input of a money movement.
// ReceiverIBAN is only read by Transfer.
type TransactionRequest struct {
	Amount       string
	Description  string
	ReceiverIBAN string
	Day          string
	Month        string
	Year         string
}

type TransactionResult struct {
	Transaction *domain.Transaction
	Balance     decimal.Decimal
}

func (s *TransactionService) Deposit(sess *session.Session, req TransactionRequest) (*TransactionResult, error) {
	return s.book(sess, domain.TransactionDeposit, req)
}

func (s *TransactionService) Withdraw(sess *session.Session, req TransactionRequest) (*TransactionResult, error) {
	return s.book(sess, domain.TransactionWithdraw, req)
}

// Transfer debits the sender only. The receiving account, even when it lives
// in this repository, is not credited.
func (s *TransactionService) Transfer(sess *session.Session, req TransactionRequest) (*TransactionResult, error) {
	return s.book(sess, domain.TransactionTransfer, req)
}

func (s *TransactionService) Payment(sess *session.Session, req TransactionRequest) (*TransactionResult, error) {
	return s.book(sess, domain.TransactionPayment, req)
}

// History returns the transactions of the logged-in account in append order.
func (s *TransactionService) History(sess *session.Session) ([]*domain.Transaction, error) {
	var history []*domain.Transaction
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		history = tx.Transaction().GetTransactions(account)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// book validates req, records a transaction of txType and adjusts the balance.
// A rejected request leaves both history and balance untouched.
func (s *TransactionService) book(sess *session.Session, txType domain.TransactionType, req TransactionRequest) (*TransactionResult, error) {
	s.logger.Info().
		Str("tag", tagOf(sess)).
		Str("type", string(txType)).
		Str("amount", req.Amount).
		Msg("Processing transaction")

	var result *TransactionResult
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}

		amount, err := checkTransactionRequest(txType, req)
		if err != nil {
			return err
		}
		if txType.Debits() && account.Balance().LessThan(amount) {
			return errors.ErrInsufficientBalance
		}

		latest, _ := tx.Transaction().GetLatestTransaction(account)
		date, err := validation.ValidateTransactionDate(req.Day, req.Month, req.Year, latest)
		if err != nil {
			return err
		}

		params := domain.TransactionParams{
			Amount:      amount,
			UserAccount: domain.MainUserAccount,
			Type:        txType,
			Description: req.Description,
			Date:        date,
		}
		if txType == domain.TransactionTransfer {
			params.ReceiverIBAN = req.ReceiverIBAN
		}
		transaction := domain.NewTransaction(params)

		if err := tx.Transaction().CreateTransaction(account, transaction); err != nil {
			return err
		}
		account.SetBalance(account.Balance().Add(transaction.SignedAmount()))

		result = &TransactionResult{Transaction: transaction, Balance: account.Balance()}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", tagOf(sess)).Str("type", string(txType)).Msg("Transaction rejected")
		return nil, err
	}

	s.logger.Info().
		Str("transaction_id", result.Transaction.ID().String()).
		Str("tag", sess.Tag).
		Str("balance", result.Balance.StringFixed(2)).
		Msg("Transaction completed")
	return result, nil
}

// checkTransactionRequest runs the input checks in their fixed order and
// returns the parsed amount.
func checkTransactionRequest(txType domain.TransactionType, req TransactionRequest) (decimal.Decimal, error) {
	if req.Amount == "" {
		return decimal.Zero, errors.ErrMissingAmount
	}
	if req.Description == "" {
		return decimal.Zero, errors.ErrMissingDescription
	}
	if txType == domain.TransactionTransfer && req.ReceiverIBAN == "" {
		return decimal.Zero, errors.ErrMissingReceiverIBAN
	}
	if len(req.Description) > validation.MaxDescriptionLength {
		return decimal.Zero, errors.ErrDescriptionTooLong
	}
	if !validation.IsDecimalDigitsOnly(req.Amount) {
		return decimal.Zero, errors.ErrAmountNotNumber
	}
	amount := validation.ParseAmount(req.Amount)
	if !amount.IsPositive() {
		return decimal.Zero, errors.ErrInvalidAmount
	}
	return amount, nil
}
