package handler

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/iban"
	"gentlix-bank/internal/repository"
	"gentlix-bank/internal/service"
	"gentlix-bank/internal/session"
)

type fixture struct {
	accounts     *AccountHandler
	transactions *TransactionHandler
	sessions     *session.Manager
}

func newFixture() *fixture {
	logger := zerolog.Nop()
	store := repository.NewStore(repository.DefaultCapacity, logger)
	sessions := session.NewManager(time.Hour, logger)

	accountService := service.NewAccountService(store, sessions, iban.NewGenerator(iban.DefaultPrefix), logger)
	transactionService := service.NewTransactionService(store, logger)

	return &fixture{
		accounts:     NewAccountHandler(accountService),
		transactions: NewTransactionHandler(transactionService),
		sessions:     sessions,
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func withSession(r *http.Request, s *session.Session) *http.Request {
	return r.WithContext(session.NewContext(r.Context(), s))
}

const registerBody = `{"tag":"alice","password":"pw","confirm_password":"pw","account_type":"savings",
"phone_number":"0700","first_name":"Ana","second_name":"Pop","day":"1","month":"1","year":"1990"}`

func (f *fixture) register(t *testing.T) *session.Session {
	t.Helper()
	rec := httptest.NewRecorder()
	f.accounts.Register(rec, httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(registerBody)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Data AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	sess, err := f.sessions.Lookup(body.Data.Session.Token)
	require.NoError(t, err)
	return sess
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.ErrDuplicateTag.WithDetails("alice"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.Equal(t, errors.ErrDuplicateTag.Result, resp.ResultCode)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "duplicate_tag", resp.Error.Code)
	assert.Equal(t, "alice", resp.Error.Details)
	assert.Nil(t, resp.Data)
}

func TestWriteServiceErrorHidesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, stderrors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.InternalError), resp.Error.Code)
	assert.Equal(t, "an unexpected error occurred", resp.Error.Message)
}

func TestWriteServiceErrorUnwraps(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, fmt.Errorf("withdraw: %w", errors.ErrInsufficientBalance))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "insufficient_balance", decode(t, rec).Error.Code)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	f := newFixture()
	rec := httptest.NewRecorder()
	f.accounts.Register(rec, httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(`{"tag":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decode(t, rec).Error.Code)
}

func TestRegisterAndGetAccount(t *testing.T) {
	f := newFixture()
	sess := f.register(t)

	rec := httptest.NewRecorder()
	f.accounts.GetAccount(rec, withSession(httptest.NewRequest(http.MethodGet, "/account", nil), sess))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ResultCode int             `json:"result_code"`
		Data       AccountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.ResultSuccess, body.ResultCode)
	assert.Equal(t, "alice", body.Data.Tag)
	assert.Equal(t, "0.00", body.Data.Balance)
	require.Len(t, body.Data.SubAccounts, 1)
	assert.Equal(t, "savings", body.Data.SubAccounts[0].Type)
}

func TestDepositThenHistory(t *testing.T) {
	f := newFixture()
	sess := f.register(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/account/deposits",
		strings.NewReader(`{"amount":"12.5","description":"cash","day":"3","month":"4","year":"2024"}`))
	f.transactions.Deposit(rec, withSession(req, sess))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var booked struct {
		Data TransactionResultResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booked))
	assert.Equal(t, "12.50", booked.Data.Balance)
	assert.Equal(t, "deposit", booked.Data.Transaction.Type)
	assert.Equal(t, "2024-04-03", booked.Data.Transaction.Date)

	rec = httptest.NewRecorder()
	f.transactions.History(rec, withSession(httptest.NewRequest(http.MethodGet, "/account/transactions", nil), sess))
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Data []TransactionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, booked.Data.Transaction.ID, history.Data[0].ID)
}

func TestWithdrawOverdraft(t *testing.T) {
	f := newFixture()
	sess := f.register(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/account/withdrawals",
		strings.NewReader(`{"amount":"1","description":"atm","day":"3","month":"4","year":"2024"}`))
	f.transactions.Withdraw(rec, withSession(req, sess))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, errors.ErrInsufficientBalance.Result, resp.ResultCode)
}

func TestCloseSubAccountReadsRouteVar(t *testing.T) {
	f := newFixture()
	sess := f.register(t)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/account/sub-accounts/credit", nil), sess)
	req = mux.SetURLVars(req, map[string]string{"type": "credit"})
	rec := httptest.NewRecorder()
	f.accounts.CloseSubAccount(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = withSession(httptest.NewRequest(http.MethodDelete, "/account/sub-accounts/savings", nil), sess)
	req = mux.SetURLVars(req, map[string]string{"type": "savings"})
	rec = httptest.NewRecorder()
	f.accounts.CloseSubAccount(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
