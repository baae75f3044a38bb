package repository

import (
	"sync"

	"github.com/rs/zerolog"

	"gentlix-bank/internal/collection"
	"gentlix-bank/internal/domain"
)

// Store provides a unified interface for all repository operations. Every
// unit of work runs under one repository-wide lock.
type Store struct {
	mu           *sync.Mutex
	accounts     *accountRepository
	transactions domain.TransactionRepository
	logger       zerolog.Logger
	inTx         bool
}

// NewStore creates a Store backed by an empty in-memory repository.
func NewStore(capacity int, logger zerolog.Logger, opts ...collection.Option) *Store {
	return &Store{
		mu:           &sync.Mutex{},
		accounts:     newAccountRepository(capacity, logger, opts...),
		transactions: NewTransactionRepository(logger),
		logger:       logger,
	}
}

// Account returns the account repository. Outside WithTransaction the caller
// is responsible for synchronization.
func (s *Store) Account() domain.AccountRepository {
	return s.accounts
}

// Transaction returns the transaction repository.
func (s *Store) Transaction() domain.TransactionRepository {
	return s.transactions
}

// WithTransaction runs fn while holding the repository lock. Calls nested
// inside fn through the Store it receives run inline. There is no rollback:
// fn must validate before it mutates.
func (s *Store) WithTransaction(fn func(*Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txStore := &Store{
		mu:           s.mu,
		accounts:     s.accounts,
		transactions: s.transactions,
		logger:       s.logger,
		inTx:         true,
	}
	return fn(txStore)
}

// Stats reports repository size and capacity under the lock.
func (s *Store) Stats() (size, capacity int) {
	_ = s.WithTransaction(func(tx *Store) error {
		size = tx.accounts.Size()
		capacity = tx.accounts.Capacity()
		return nil
	})
	return size, capacity
}

// Destroy releases every account and the repository storage.
func (s *Store) Destroy() {
	_ = s.WithTransaction(func(tx *Store) error {
		tx.accounts.Destroy()
		return nil
	})
}
