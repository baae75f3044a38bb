package handler

import (
	"encoding/json"
	"net/http"

	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/session"
)

// Response is the envelope of every reply. ResultCode is 1 on success and the
// stable negative code of the failure otherwise.
type Response struct {
	ResultCode int         `json:"result_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      *Error      `json:"error,omitempty"`
}

type Error struct {
	Code       string `json:"code"`
	ResultCode int    `json:"result_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{ResultCode: errors.ResultSuccess, Data: data}
	json.NewEncoder(w).Encode(response)
}

// WriteError renders appErr with its mapped HTTP status.
func WriteError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:       string(appErr.Code),
		ResultCode: appErr.Result,
		Message:    appErr.Message,
		Details:    appErr.Details,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{ResultCode: appErr.Result, Error: &errResponse})
}

// writeServiceError renders err, hiding anything that is not an AppError
// behind a generic internal error.
func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		WriteError(w, appErr)
		return
	}
	WriteError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred").WithDetails(err.Error()))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return false
	}
	return true
}

// currentSession returns the session the auth middleware attached. The
// middleware guarantees one on every account-scoped route.
func currentSession(r *http.Request) *session.Session {
	sess, _ := session.FromContext(r.Context())
	return sess
}
