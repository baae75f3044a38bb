package handler

import (
	"time"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/service"
	"gentlix-bank/internal/session"
)

type RegisterAccountRequest struct {
	Tag             string `json:"tag"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AccountType     string `json:"account_type"`
	PhoneNumber     string `json:"phone_number"`
	FirstName       string `json:"first_name"`
	SecondName      string `json:"second_name"`
	Day             string `json:"day"`
	Month           string `json:"month"`
	Year            string `json:"year"`
}

type LoginRequest struct {
	Tag      string `json:"tag"`
	Password string `json:"password"`
}

type EditAccountRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password,omitempty"`
	ConfirmNewPassword string `json:"confirm_new_password,omitempty"`
	AccountType        string `json:"account_type,omitempty"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	SecondName         string `json:"second_name,omitempty"`
	Day                string `json:"day,omitempty"`
	Month              string `json:"month,omitempty"`
	Year               string `json:"year,omitempty"`
}

type TransactionRequest struct {
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	ReceiverIBAN string `json:"receiver_iban,omitempty"`
	Day          string `json:"day"`
	Month        string `json:"month"`
	Year         string `json:"year"`
}

type AffiliateRequest struct {
	Tag            string `json:"tag"`
	FirstName      string `json:"first_name,omitempty"`
	SecondName     string `json:"second_name,omitempty"`
	IBAN           string `json:"iban"`
	ActivityDomain string `json:"activity_domain,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

type SubAccountRequest struct {
	Type string `json:"type"`
}

type AccountResponse struct {
	Tag              string               `json:"tag"`
	IBAN             string               `json:"iban"`
	Balance          string               `json:"balance"`
	FirstName        string               `json:"first_name"`
	SecondName       string               `json:"second_name"`
	PhoneNumber      string               `json:"phone_number"`
	Birthday         domain.Date          `json:"birthday"`
	SubAccounts      []SubAccountResponse `json:"sub_accounts"`
	TransactionCount int                  `json:"transaction_count"`
	AffiliateCount   int                  `json:"affiliate_count"`
}

type SessionResponse struct {
	Token     string     `json:"token"`
	OpenedAt  time.Time  `json:"opened_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type AuthResponse struct {
	Session SessionResponse `json:"session"`
	Account AccountResponse `json:"account"`
}

type TransactionResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	UserAccount  string `json:"user_account"`
	Type         string `json:"type"`
	ReceiverIBAN string `json:"receiver_iban,omitempty"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	RecordedAt   string `json:"recorded_at"`
}

type TransactionResultResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     string              `json:"balance"`
}

type AffiliateResponse struct {
	Tag            string `json:"tag"`
	FirstName      string `json:"first_name,omitempty"`
	SecondName     string `json:"second_name,omitempty"`
	IBAN           string `json:"iban"`
	ActivityDomain string `json:"activity_domain,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

type SubAccountResponse struct {
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

func newAccountResponse(a *domain.Account) AccountResponse {
	subs := a.SubAccounts()
	resp := AccountResponse{
		Tag:              a.Tag(),
		IBAN:             a.IBAN(),
		Balance:          a.Balance().StringFixed(2),
		FirstName:        a.FirstName(),
		SecondName:       a.SecondName(),
		PhoneNumber:      a.PhoneNumber(),
		Birthday:         a.Birthday(),
		SubAccounts:      make([]SubAccountResponse, 0, len(subs)),
		TransactionCount: a.TransactionCount(),
		AffiliateCount:   a.AffiliateCount(),
	}
	for _, sub := range subs {
		resp.SubAccounts = append(resp.SubAccounts, newSubAccountResponse(sub))
	}
	return resp
}

func newSessionResponse(s *session.Session) SessionResponse {
	resp := SessionResponse{Token: s.Token.String(), OpenedAt: s.OpenedAt}
	if !s.ExpiresAt.IsZero() {
		expires := s.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}

func newAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Session: newSessionResponse(result.Session),
		Account: newAccountResponse(result.Account),
	}
}

func newTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID().String(),
		Amount:       tx.Amount().StringFixed(2),
		UserAccount:  tx.UserAccount(),
		Type:         string(tx.Type()),
		ReceiverIBAN: tx.ReceiverIBAN(),
		Category:     tx.Category(),
		Description:  tx.Description(),
		Date:         tx.Date().String(),
		RecordedAt:   tx.RecordedAt().Format(time.RFC3339),
	}
}

func newAffiliateResponse(a *domain.Affiliate) AffiliateResponse {
	return AffiliateResponse{
		Tag:            a.Tag(),
		FirstName:      a.FirstName(),
		SecondName:     a.SecondName(),
		IBAN:           a.IBAN(),
		ActivityDomain: a.ActivityDomain(),
		Phone:          a.Phone(),
	}
}

func newSubAccountResponse(s *domain.SubAccount) SubAccountResponse {
	return SubAccountResponse{Type: s.Type(), Balance: s.Balance().StringFixed(2)}
}
