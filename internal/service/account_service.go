package service

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/iban"
	"gentlix-bank/internal/repository"
	"gentlix-bank/internal/session"
	"gentlix-bank/internal/validation"
)

type AccountService struct {
	store          *repository.Store
	sessions       *session.Manager
	ibans          *iban.Generator
	accountOptions []domain.AccountOption
	logger         zerolog.Logger
}

type AccountServiceOption func(*AccountService)

// WithAccountOptions applies opts to every account created by Register.
func WithAccountOptions(opts ...domain.AccountOption) AccountServiceOption {
	return func(s *AccountService) {
		s.accountOptions = append(s.accountOptions, opts...)
	}
}

func NewAccountService(
	store *repository.Store,
	sessions *session.Manager,
	ibans *iban.Generator,
	logger zerolog.Logger,
	opts ...AccountServiceOption,
) *AccountService {
	s := &AccountService{
		store:    store,
		sessions: sessions,
		ibans:    ibans,
		logger:   logger.With().Str("component", "account_service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterRequest struct {
	Tag             string
	Password        string
	ConfirmPassword string
	AccountType     string
	PhoneNumber     string
	FirstName       string
	SecondName      string
	Day             string
	Month           string
	Year            string
}

type EditAccountRequest struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
	AccountType        string
	PhoneNumber        string
	FirstName          string
	SecondName         string
	Day                string
	Month              string
	Year               string
}

// AuthResult is what a successful Register or Login hands back: the new
// session and a snapshot of the logged-in account.
type AuthResult struct {
	Session *session.Session
	Account *domain.Account
}

// Register validates every field, creates the account with one sub-account of
// the chosen type and logs it in.
func (s *AccountService) Register(req RegisterRequest) (*AuthResult, error) {
	s.logger.Info().Str("tag", req.Tag).Str("account_type", req.AccountType).Msg("Registering account")

	if err := checkRegisterPresence(req); err != nil {
		return nil, err
	}

	var created *domain.Account
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		accounts := tx.Account()

		if accounts.TagExists(req.Tag) {
			return errors.ErrDuplicateTag
		}
		birthday, err := validation.ValidateBirthDate(req.Day, req.Month, req.Year)
		if err != nil {
			return err
		}
		if err := checkRegisterShape(req); err != nil {
			return err
		}

		account := domain.NewAccount(domain.AccountParams{
			Tag:         req.Tag,
			IBAN:        s.ibans.GenerateUnique(accounts.IBANExists),
			Balance:     decimal.Zero,
			FirstName:   req.FirstName,
			SecondName:  req.SecondName,
			Password:    req.Password,
			PhoneNumber: req.PhoneNumber,
			Birthday:    birthday,
		}, s.accountOptions...)

		if err := accounts.CreateAccount(account); err != nil {
			account.Release()
			return errors.ErrRepositoryInsertFailed.WithDetails(err.Error())
		}

		if err := account.AddSubAccount(domain.NewSubAccount(req.AccountType, decimal.Zero)); err != nil {
			if rmErr := accounts.RemoveAccount(req.Tag); rmErr != nil {
				s.logger.Error().Err(rmErr).Str("tag", req.Tag).Msg("Failed to roll back account insertion")
			}
			return err
		}

		created = account.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", req.Tag).Msg("Registration rejected")
		return nil, err
	}

	sess := s.sessions.Open(created.Tag(), created.IBAN())
	s.logger.Info().Str("tag", created.Tag()).Str("iban", created.IBAN()).Msg("Account registered")
	return &AuthResult{Session: sess, Account: created}, nil
}

func checkRegisterPresence(req RegisterRequest) error {
	switch {
	case req.Tag == "":
		return errors.ErrMissingTag
	case req.Password == "":
		return errors.ErrMissingPassword
	case req.ConfirmPassword == "":
		return errors.ErrMissingPasswordConfirm
	case req.AccountType == "":
		return errors.ErrMissingAccountType
	case req.PhoneNumber == "":
		return errors.ErrMissingPhone
	case req.FirstName == "":
		return errors.ErrMissingFirstName
	case req.SecondName == "":
		return errors.ErrMissingSecondName
	case req.Day == "":
		return errors.ErrMissingDay
	case req.Month == "":
		return errors.ErrMissingMonth
	case req.Year == "":
		return errors.ErrMissingYear
	}
	return nil
}

func checkRegisterShape(req RegisterRequest) error {
	switch {
	case !validation.IsLettersOnly(req.Tag):
		return errors.ErrTagNotLetters
	case len(req.Tag) > validation.MaxTagLength:
		return errors.ErrTagTooLong
	case len(req.Password) > validation.MaxPasswordLength:
		return errors.ErrPasswordTooLong
	case validation.PasswordsDiffer(req.Password, req.ConfirmPassword):
		return errors.ErrPasswordMismatch
	case !validation.IsKnownAccountType(req.AccountType):
		return errors.ErrUnknownAccountType
	case !validation.IsLettersOnly(req.FirstName):
		return errors.ErrFirstNameNotLetters
	case !validation.IsLettersOnly(req.SecondName):
		return errors.ErrSecondNameNotLetters
	case !validation.IsDigitsOnly(req.PhoneNumber):
		return errors.ErrPhoneNotDigits
	}
	return nil
}

// Login authenticates by tag and password. An unknown tag and a wrong
// password fail identically.
func (s *AccountService) Login(tag, password string) (*AuthResult, error) {
	s.logger.Info().Str("tag", tag).Msg("Login attempt")

	switch {
	case tag == "":
		return nil, errors.ErrMissingTag
	case password == "":
		return nil, errors.ErrMissingPassword
	case len(tag) > validation.MaxTagLength:
		return nil, errors.ErrTagTooLong
	case len(password) > validation.MaxPasswordLength:
		return nil, errors.ErrPasswordTooLong
	case !validation.IsLettersOnly(tag):
		return nil, errors.ErrTagNotLetters
	}

	var account *domain.Account
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		found, err := tx.Account().Authenticate(tag, password)
		if err != nil {
			return err
		}
		account = found.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Open(account.Tag(), account.IBAN())
	s.logger.Info().Str("tag", tag).Msg("Login succeeded")
	return &AuthResult{Session: sess, Account: account}, nil
}

func (s *AccountService) Logout(sess *session.Session) error {
	if sess == nil {
		return errors.ErrSessionNotFound
	}
	if err := s.sessions.Close(sess.Token); err != nil {
		return err
	}
	s.logger.Info().Str("tag", sess.Tag).Msg("Logged out")
	return nil
}

// CurrentAccount returns a snapshot of the logged-in account.
func (s *AccountService) CurrentAccount(sess *session.Session) (*domain.Account, error) {
	var account *domain.Account
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		found, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		account = found.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// EditAccount changes the supplied fields of the logged-in account. Blank
// fields are left unchanged. Nothing is modified unless every supplied field
// is valid. Tag and IBAN cannot be edited.
func (s *AccountService) EditAccount(sess *session.Session, req EditAccountRequest) (*domain.Account, error) {
	var edited *domain.Account
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}

		if req.CurrentPassword == "" {
			return errors.ErrMissingCurrentPassword
		}
		if validation.PasswordsDiffer(req.CurrentPassword, account.Password()) {
			return errors.ErrWrongPassword
		}
		if req.NewPassword != "" {
			if req.ConfirmNewPassword == "" {
				return errors.ErrMissingPasswordConfirm
			}
			if validation.PasswordsDiffer(req.NewPassword, req.ConfirmNewPassword) {
				return errors.ErrNewPasswordMismatch
			}
			if len(req.NewPassword) > validation.MaxPasswordLength {
				return errors.ErrPasswordTooLong
			}
		}
		if req.AccountType != "" && !validation.IsKnownAccountType(req.AccountType) {
			return errors.ErrUnknownAccountType
		}
		if req.FirstName != "" && !validation.IsLettersOnly(req.FirstName) {
			return errors.ErrFirstNameNotLetters
		}
		if req.SecondName != "" && !validation.IsLettersOnly(req.SecondName) {
			return errors.ErrSecondNameNotLetters
		}
		if req.PhoneNumber != "" && !validation.IsDigitsOnly(req.PhoneNumber) {
			return errors.ErrPhoneNotDigits
		}
		var birthday domain.Date
		editBirthday := req.Day != "" || req.Month != "" || req.Year != ""
		if editBirthday {
			birthday, err = validation.ValidateBirthDate(req.Day, req.Month, req.Year)
			if err != nil {
				return err
			}
		}

		// Opening the sub-account is the only step that can fail, so it runs
		// before any field changes.
		if req.AccountType != "" {
			if _, ok := account.SubAccount(req.AccountType); !ok {
				if err := account.AddSubAccount(domain.NewSubAccount(req.AccountType, decimal.Zero)); err != nil {
					return err
				}
			}
		}
		if req.NewPassword != "" {
			account.SetPassword(req.NewPassword)
		}
		if req.PhoneNumber != "" {
			account.SetPhoneNumber(req.PhoneNumber)
		}
		if req.FirstName != "" {
			account.SetFirstName(req.FirstName)
		}
		if req.SecondName != "" {
			account.SetSecondName(req.SecondName)
		}
		if editBirthday {
			account.SetBirthday(birthday)
		}

		edited = account.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", tagOf(sess)).Msg("Account edit rejected")
		return nil, err
	}

	s.logger.Info().Str("tag", edited.Tag()).Msg("Account edited")
	return edited, nil
}

// DeleteAccount removes the logged-in account and closes all of its sessions.
func (s *AccountService) DeleteAccount(sess *session.Session) error {
	if sess == nil {
		return errors.ErrInvalidDeleteRequest
	}

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		return tx.Account().RemoveAccount(account.Tag())
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", sess.Tag).Msg("Account deletion failed")
		return err
	}

	closed := s.sessions.CloseAccount(sess.Tag, sess.IBAN)
	s.logger.Info().Str("tag", sess.Tag).Int("sessions_closed", closed).Msg("Account deleted")
	return nil
}

// accountFor resolves the live account behind sess. A session whose account
// has been removed, or replaced by a new account with the same tag, is
// rejected.
func accountFor(tx *repository.Store, sess *session.Session) (*domain.Account, error) {
	if sess == nil {
		return nil, errors.ErrSessionNotFound
	}
	account, err := tx.Account().GetAccount(sess.Tag)
	if err != nil {
		if errors.Is(err, errors.ErrAccountNotFound) {
			return nil, errors.ErrInvalidAccount
		}
		return nil, err
	}
	if account.IBAN() != sess.IBAN {
		return nil, errors.ErrInvalidAccount
	}
	return account, nil
}

func tagOf(sess *session.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Tag
}
