package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an AppError for status mapping.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindRateLimit  ErrorKind = "rate_limit"
	KindPayment    ErrorKind = "payment"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// AppError is an error the client is allowed to see.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  []FieldError
	Detail  string
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{Message: e.Message, Errors: e.Fields, Error: e.Detail}
}

func NewValidationError(fields ...FieldError) *AppError {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg, Fields: fields}
}

// NewBadRequest is a validation error without field detail.
func NewBadRequest(msg string) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func NewAuthError(msg string) *AppError {
	return &AppError{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// NewConflictError reports a duplicate. The API answers these with 400.
func NewConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Status: http.StatusBadRequest, Message: msg}
}

func NewRateLimitError(msg string) *AppError {
	return &AppError{Kind: KindRateLimit, Status: http.StatusTooManyRequests, Message: msg}
}

func NewPaymentError(detail string) *AppError {
	return &AppError{Kind: KindPayment, Status: http.StatusBadRequest, Message: "Payment processing failed", Detail: detail}
}

// AsAppError unwraps err into an AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
