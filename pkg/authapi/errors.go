// Package authapi defines the wire types and error envelope of the
// authentication API, shared between the service handlers and clients.
package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	ErrorCodeMissingCredential   = "missing_credential"
	ErrorCodeInvalidSignature    = "invalid_signature"
	ErrorCodeRevokedToken        = "revoked_token"
	ErrorCodeExpiredRefreshToken = "expired_refresh_token"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeInvalidCredentials  = "invalid_credentials"
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeEmailTaken          = "email_taken"
	ErrorCodeEmailNotFound       = "email_not_found"
	ErrorCodeOtpMismatch         = "otp_mismatch"
	ErrorCodeOtpExpired          = "otp_expired"
	ErrorCodeResetWindowExpired  = "reset_window_expired"
	ErrorCodeDuplicatePassword   = "duplicate_password"
	ErrorCodeServerError         = "server_error"
)

// APIError is the uniform error envelope returned for every failure. It
// implements error so handlers and clients can share the same values.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error type.
	Code string `json:"error"`

	// Description is the human-readable message. Never carries internal
	// detail such as store errors or stack traces.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error to an HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrMissingCredential is returned when no bearer token accompanies a
	// request that requires one.
	ErrMissingCredential = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingCredential,
		Description: "missing or malformed authorization header",
	}

	// ErrInvalidSignature is returned for tokens that fail verification.
	ErrInvalidSignature = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidSignature,
		Description: "token verification failed",
	}

	// ErrRevokedToken is returned when a structurally valid token has no
	// backing session in the store.
	ErrRevokedToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeRevokedToken,
		Description: "session has been revoked",
	}

	// ErrExpiredRefreshToken is terminal: the caller must log in again.
	ErrExpiredRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeExpiredRefreshToken,
		Description: "session expired, please log in again",
	}

	// ErrForbidden is an authorization failure, not an authentication one.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient privileges for this resource",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	// ErrEmailNotFound is the single reset-flow branch that is allowed to
	// reveal whether an email is registered.
	ErrEmailNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeEmailNotFound,
		Description: "no account with this email",
	}

	ErrOtpMismatch = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOtpMismatch,
		Description: "incorrect one-time code",
	}

	ErrOtpExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOtpExpired,
		Description: "one-time code has expired, request a new one",
	}

	ErrResetWindowExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeResetWindowExpired,
		Description: "reset window has lapsed, request a new code",
	}

	ErrDuplicatePassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicatePassword,
		Description: "new password must differ from the current one",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal error",
	}
)
