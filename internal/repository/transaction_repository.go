package repository

import (
	"github.com/rs/zerolog"

	"gentlix-bank/internal/domain"
)

// transactionRepository books transactions into the history owned by each
// account.
type transactionRepository struct {
	logger zerolog.Logger
}

func NewTransactionRepository(logger zerolog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		logger: logger.With().Str("component", "transaction_repository").Logger(),
	}
}

func (r *transactionRepository) CreateTransaction(account *domain.Account, tx *domain.Transaction) error {
	if err := account.AppendTransaction(tx); err != nil {
		r.logger.Error().
			Err(err).
			Str("tag", account.Tag()).
			Str("type", string(tx.Type())).
			Str("amount", tx.Amount().StringFixed(2)).
			Msg("Failed to record transaction")
		return err
	}

	r.logger.Info().
		Str("transaction_id", tx.ID().String()).
		Str("tag", account.Tag()).
		Str("type", string(tx.Type())).
		Str("amount", tx.Amount().StringFixed(2)).
		Str("date", tx.Date().String()).
		Msg("Transaction recorded")
	return nil
}

func (r *transactionRepository) GetTransactions(account *domain.Account) []*domain.Transaction {
	return account.Transactions()
}

func (r *transactionRepository) GetLatestTransaction(account *domain.Account) (*domain.Transaction, bool) {
	return account.LatestTransaction()
}
