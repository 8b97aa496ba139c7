package apperror

import "net/http"

// Machine-readable error codes returned to API clients alongside the message.
const (
	CodeTokenMissing       = "TOKEN_MISSING"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeAuthError          = "AUTH_ERROR"
)

type AppError struct {
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, "", message, nil)
}

func BadRequestCode(code, message string) *AppError {
	return New(http.StatusBadRequest, code, message, nil)
}

func Unauthorized(code, message string) *AppError {
	return New(http.StatusUnauthorized, code, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, "", message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, "", message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "", "Internal Server Error", err)
}
