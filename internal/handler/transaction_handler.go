package handler

import (
	"net/http"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/service"
	"gentlix-bank/internal/session"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type bookFunc func(*session.Session, service.TransactionRequest) (*service.TransactionResult, error)

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, h.transactionService.Deposit)
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, h.transactionService.Withdraw)
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, h.transactionService.Transfer)
}

func (h *TransactionHandler) Payment(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, h.transactionService.Payment)
}

func (h *TransactionHandler) book(w http.ResponseWriter, r *http.Request, fn bookFunc) {
	var req TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := fn(currentSession(r), service.TransactionRequest{
		Amount:       req.Amount,
		Description:  req.Description,
		ReceiverIBAN: req.ReceiverIBAN,
		Day:          req.Day,
		Month:        req.Month,
		Year:         req.Year,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransactionResultResponse{
		Transaction: newTransactionResponse(result.Transaction),
		Balance:     result.Balance.StringFixed(2),
	})
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.transactionService.History(currentSession(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newHistoryResponse(history))
}

func newHistoryResponse(history []*domain.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, 0, len(history))
	for _, tx := range history {
		response = append(response, newTransactionResponse(tx))
	}
	return response
}
