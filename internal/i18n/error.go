package i18n

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode categorizes errors for HTTP status mapping
type ErrorCode int

const (
	ErrorBadRequest ErrorCode = iota
	ErrorUnauthorized
	ErrorForbidden
	ErrorNotFound
	ErrorConflict
	ErrorInternal
)

// HTTPStatus maps error codes to HTTP status codes
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrorBadRequest:
		return http.StatusBadRequest
	case ErrorUnauthorized:
		return http.StatusUnauthorized
	case ErrorForbidden:
		return http.StatusForbidden
	case ErrorNotFound:
		return http.StatusNotFound
	case ErrorConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// I18nError is an error carrying a translatable message id
type I18nError struct {
	MsgID string
	Data  map[string]interface{}
}

// NewError creates a new I18nError with the given message ID
func NewError(msgID string) *I18nError {
	return &I18nError{MsgID: msgID}
}

// WithData attaches template data for message interpolation
func (e *I18nError) WithData(data map[string]interface{}) *I18nError {
	return &I18nError{MsgID: e.MsgID, Data: data}
}

func (e *I18nError) Error() string {
	return e.MsgID
}

// ErrorWithCode couples an I18nError with an HTTP status category
type ErrorWithCode struct {
	*I18nError
	Code ErrorCode
}

// NewErrorWithCode creates an error with both a message ID and an error code
func NewErrorWithCode(msgID string, code ErrorCode) *ErrorWithCode {
	return &ErrorWithCode{
		I18nError: NewError(msgID),
		Code:      code,
	}
}

// WithData attaches template data, preserving the code
func (e *ErrorWithCode) WithData(data map[string]interface{}) *ErrorWithCode {
	return &ErrorWithCode{
		I18nError: e.I18nError.WithData(data),
		Code:      e.Code,
	}
}

func (e *ErrorWithCode) Error() string {
	return fmt.Sprintf("%s (status %d)", e.MsgID, e.Code.HTTPStatus())
}

// StatusOf extracts the HTTP status for an error, defaulting to 500
func StatusOf(err error) int {
	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code.HTTPStatus()
	}
	return http.StatusInternalServerError
}
