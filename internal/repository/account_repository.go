package repository

import (
	"github.com/rs/zerolog"

	"gentlix-bank/internal/collection"
	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
)

// DefaultCapacity is the initial number of account slots.
const DefaultCapacity = 20

// accountRepository keeps every account in memory, keyed by tag, in insertion
// order. After Destroy the backing collection is gone and every call reports
// ErrNilRepository.
type accountRepository struct {
	accounts *collection.Collection[*domain.Account]
	logger   zerolog.Logger
}

func NewAccountRepository(capacity int, logger zerolog.Logger, opts ...collection.Option) domain.AccountRepository {
	return newAccountRepository(capacity, logger, opts...)
}

func newAccountRepository(capacity int, logger zerolog.Logger, opts ...collection.Option) *accountRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &accountRepository{
		accounts: collection.New[*domain.Account](capacity, (*domain.Account).Tag, opts...),
		logger:   logger.With().Str("component", "account_repository").Logger(),
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	if r.accounts == nil {
		return errors.ErrNilRepository
	}
	if account == nil {
		return errors.ErrNilAccount
	}
	if r.accounts.Contains(account.Tag()) {
		r.logger.Warn().Str("tag", account.Tag()).Msg("Duplicate account tag")
		return errors.ErrDuplicateTag
	}
	if r.IBANExists(account.IBAN()) {
		r.logger.Warn().Str("iban", account.IBAN()).Msg("Duplicate account iban")
		return errors.ErrDuplicateIBAN
	}

	previousCap := r.accounts.Cap()
	if err := r.accounts.Append(account); err != nil {
		r.logger.Error().Err(err).Str("tag", account.Tag()).Int("capacity", previousCap).Msg("Failed to grow account repository")
		return errors.ErrAllocFailure.WithDetails(err.Error())
	}
	if r.accounts.Cap() != previousCap {
		r.logger.Debug().Int("from", previousCap).Int("to", r.accounts.Cap()).Msg("Account repository grown")
	}

	r.logger.Info().Str("tag", account.Tag()).Int("size", r.accounts.Len()).Msg("Account created")
	return nil
}

// RemoveAccount drops the account and everything it owns. Later entries shift
// down one index.
func (r *accountRepository) RemoveAccount(tag string) error {
	if r.accounts == nil {
		return errors.ErrNilRepository
	}
	if tag == "" {
		return errors.ErrMissingTag
	}

	removed, err := r.accounts.Remove(tag)
	if err != nil {
		r.logger.Warn().Str("tag", tag).Msg("Account not found for removal")
		return errors.ErrAccountNotFound
	}
	removed.Release()

	r.logger.Info().Str("tag", tag).Int("size", r.accounts.Len()).Msg("Account removed")
	return nil
}

func (r *accountRepository) GetAccount(tag string) (*domain.Account, error) {
	if r.accounts == nil {
		return nil, errors.ErrNilRepository
	}
	account, ok := r.accounts.Find(tag)
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepository) GetAccountByIBAN(iban string) (*domain.Account, error) {
	if r.accounts == nil {
		return nil, errors.ErrNilRepository
	}
	account, ok := r.accounts.FindFunc(func(a *domain.Account) bool {
		return a.IBAN() == iban
	})
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepository) GetAccountAt(index int) (*domain.Account, error) {
	if r.accounts == nil {
		return nil, errors.ErrNilRepository
	}
	account, ok := r.accounts.At(index)
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	return account, nil
}

func (r *accountRepository) TagExists(tag string) bool {
	if r.accounts == nil {
		return false
	}
	return r.accounts.Contains(tag)
}

func (r *accountRepository) IBANExists(iban string) bool {
	if r.accounts == nil {
		return false
	}
	_, err := r.GetAccountByIBAN(iban)
	return err == nil
}

// Authenticate matches tag and plaintext password exactly. Unknown tag and
// wrong password are reported the same way.
func (r *accountRepository) Authenticate(tag, password string) (*domain.Account, error) {
	if r.accounts == nil {
		return nil, errors.ErrNilRepository
	}
	account, ok := r.accounts.Find(tag)
	if !ok || account.Password() != password {
		r.logger.Warn().Str("tag", tag).Msg("Authentication failed")
		return nil, errors.ErrLoginFailed
	}
	return account, nil
}

func (r *accountRepository) Size() int {
	if r.accounts == nil {
		return 0
	}
	return r.accounts.Len()
}

func (r *accountRepository) Capacity() int {
	if r.accounts == nil {
		return 0
	}
	return r.accounts.Cap()
}

func (r *accountRepository) IsFull() bool {
	if r.accounts == nil {
		return false
	}
	return r.accounts.IsFull()
}

// Clear releases every account and keeps the capacity.
func (r *accountRepository) Clear() {
	if r.accounts == nil {
		return
	}
	released := r.accounts.Len()
	r.accounts.Clear((*domain.Account).Release)
	r.logger.Info().Int("released", released).Msg("Account repository cleared")
}

// Destroy releases every account and the backing storage.
func (r *accountRepository) Destroy() {
	if r.accounts == nil {
		return
	}
	r.Clear()
	r.accounts = nil
	r.logger.Info().Msg("Account repository destroyed")
}
