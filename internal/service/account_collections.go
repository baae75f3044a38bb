package service

import (
	"github.com/shopspring/decimal"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/repository"
	"gentlix-bank/internal/session"
	"gentlix-bank/internal/validation"
)

type AffiliateRequest struct {
	Tag            string
	FirstName      string
	SecondName     string
	IBAN           string
	ActivityDomain string
	Phone          string
}

// AddAffiliate remembers a transfer counterparty on the logged-in account.
// Tag and IBAN are required; names and phone are checked only when given.
func (s *AccountService) AddAffiliate(sess *session.Session, req AffiliateRequest) (*domain.Affiliate, error) {
	switch {
	case req.Tag == "":
		return nil, errors.ErrMissingTag
	case !validation.IsLettersOnly(req.Tag):
		return nil, errors.ErrAffiliateTagNotLetters
	case len(req.Tag) > validation.MaxTagLength:
		return nil, errors.ErrTagTooLong
	case req.IBAN == "":
		return nil, errors.ErrMissingAffiliateIBAN
	case req.FirstName != "" && !validation.IsLettersOnly(req.FirstName):
		return nil, errors.ErrFirstNameNotLetters
	case req.SecondName != "" && !validation.IsLettersOnly(req.SecondName):
		return nil, errors.ErrSecondNameNotLetters
	case req.Phone != "" && !validation.IsDigitsOnly(req.Phone):
		return nil, errors.ErrPhoneNotDigits
	}

	affiliate := domain.NewAffiliate(domain.AffiliateParams{
		Tag:            req.Tag,
		FirstName:      req.FirstName,
		SecondName:     req.SecondName,
		IBAN:           req.IBAN,
		ActivityDomain: req.ActivityDomain,
		Phone:          req.Phone,
	})

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		return account.AddAffiliate(affiliate)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", tagOf(sess)).Str("affiliate", req.Tag).Msg("Affiliate not added")
		return nil, err
	}

	s.logger.Info().Str("tag", sess.Tag).Str("affiliate", req.Tag).Msg("Affiliate added")
	return affiliate.Clone(), nil
}

func (s *AccountService) RemoveAffiliate(sess *session.Session, tag string) error {
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		return account.RemoveAffiliate(tag)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("tag", sess.Tag).Str("affiliate", tag).Msg("Affiliate removed")
	return nil
}

func (s *AccountService) ListAffiliates(sess *session.Session) ([]*domain.Affiliate, error) {
	var affiliates []*domain.Affiliate
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		for _, af := range account.Affiliates() {
			affiliates = append(affiliates, af.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affiliates, nil
}

// OpenSubAccount attaches an empty sub-account of subType.
func (s *AccountService) OpenSubAccount(sess *session.Session, subType string) (*domain.SubAccount, error) {
	if subType == "" {
		return nil, errors.ErrMissingAccountType
	}
	if !validation.IsKnownAccountType(subType) {
		return nil, errors.ErrUnknownAccountType
	}

	sub := domain.NewSubAccount(subType, decimal.Zero)
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		return account.AddSubAccount(sub)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("tag", sess.Tag).Str("sub_account", subType).Msg("Sub-account opened")
	return sub.Clone(), nil
}

func (s *AccountService) CloseSubAccount(sess *session.Session, subType string) error {
	if subType == "" {
		return errors.ErrMissingAccountType
	}

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		return account.RemoveSubAccount(subType)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("tag", sess.Tag).Str("sub_account", subType).Msg("Sub-account closed")
	return nil
}

func (s *AccountService) ListSubAccounts(sess *session.Session) ([]*domain.SubAccount, error) {
	var subs []*domain.SubAccount
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := accountFor(tx, sess)
		if err != nil {
			return err
		}
		for _, sub := range account.SubAccounts() {
			subs = append(subs, sub.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}
