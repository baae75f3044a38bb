package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"gentlix-bank/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.accountService.Register(service.RegisterRequest{
		Tag:             req.Tag,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AccountType:     req.AccountType,
		PhoneNumber:     req.PhoneNumber,
		FirstName:       req.FirstName,
		SecondName:      req.SecondName,
		Day:             req.Day,
		Month:           req.Month,
		Year:            req.Year,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAuthResponse(result))
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.accountService.Login(req.Tag, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAuthResponse(result))
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.Logout(currentSession(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.CurrentAccount(currentSession(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) EditAccount(w http.ResponseWriter, r *http.Request) {
	var req EditAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountService.EditAccount(currentSession(r), service.EditAccountRequest{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
		AccountType:        req.AccountType,
		PhoneNumber:        req.PhoneNumber,
		FirstName:          req.FirstName,
		SecondName:         req.SecondName,
		Day:                req.Day,
		Month:              req.Month,
		Year:               req.Year,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAccountResponse(account))
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.DeleteAccount(currentSession(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (h *AccountHandler) ListAffiliates(w http.ResponseWriter, r *http.Request) {
	affiliates, err := h.accountService.ListAffiliates(currentSession(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]AffiliateResponse, 0, len(affiliates))
	for _, af := range affiliates {
		response = append(response, newAffiliateResponse(af))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) AddAffiliate(w http.ResponseWriter, r *http.Request) {
	var req AffiliateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	affiliate, err := h.accountService.AddAffiliate(currentSession(r), service.AffiliateRequest{
		Tag:            req.Tag,
		FirstName:      req.FirstName,
		SecondName:     req.SecondName,
		IBAN:           req.IBAN,
		ActivityDomain: req.ActivityDomain,
		Phone:          req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAffiliateResponse(affiliate))
}

func (h *AccountHandler) RemoveAffiliate(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	if err := h.accountService.RemoveAffiliate(currentSession(r), tag); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (h *AccountHandler) ListSubAccounts(w http.ResponseWriter, r *http.Request) {
	subs, err := h.accountService.ListSubAccounts(currentSession(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := make([]SubAccountResponse, 0, len(subs))
	for _, sub := range subs {
		response = append(response, newSubAccountResponse(sub))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) OpenSubAccount(w http.ResponseWriter, r *http.Request) {
	var req SubAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.accountService.OpenSubAccount(currentSession(r), req.Type)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newSubAccountResponse(sub))
}

func (h *AccountHandler) CloseSubAccount(w http.ResponseWriter, r *http.Request) {
	subType := mux.Vars(r)["type"]

	if err := h.accountService.CloseSubAccount(currentSession(r), subType); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
}
