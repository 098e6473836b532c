// FilePath: internal/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeInvalidID        ErrorType = "invalid_id"
	ErrorTypeDatabase         ErrorType = "database"
	ErrorTypeAuth             ErrorType = "authentication"
	ErrorTypeAuthorize        ErrorType = "authorization"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeAlreadyExists    ErrorType = "already_exists"
	ErrorTypeNotPermitted     ErrorType = "not_permitted"
	ErrorTypeTokenExpired     ErrorType = "token_expired"
	ErrorTypeTokenMalformed   ErrorType = "token_malformed"
	ErrorTypeSignatureInvalid ErrorType = "signature_invalid"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeInternal         ErrorType = "internal"
)

// APIError represents a structured API error
type APIError struct {
	Timestamp time.Time `json:"timestamp"`
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error to errors.Is/As chains
func (e *APIError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func newError(t ErrorType, code int, msg string, err error) *APIError {
	return &APIError{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Message:   msg,
		Code:      code,
		err:       err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string, err error) *APIError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, msg, err)
}

// NewInvalidIDError creates a new invalid identifier error
func NewInvalidIDError(msg string, err error) *APIError {
	return newError(ErrorTypeInvalidID, http.StatusBadRequest, msg, err)
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *APIError {
	return newError(ErrorTypeDatabase, http.StatusInternalServerError, msg, err)
}

// NewAuthError creates a new authentication error
func NewAuthError(msg string, err error) *APIError {
	return newError(ErrorTypeAuth, http.StatusUnauthorized, msg, err)
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(msg string, err error) *APIError {
	return newError(ErrorTypeAuthorize, http.StatusForbidden, msg, err)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string, err error) *APIError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, msg, err)
}

// NewAlreadyExistsError creates a new duplicate-entity error
func NewAlreadyExistsError(msg string, err error) *APIError {
	return newError(ErrorTypeAlreadyExists, http.StatusConflict, msg, err)
}

// NewNotPermittedError creates a new business-rule violation error
func NewNotPermittedError(msg string, err error) *APIError {
	return newError(ErrorTypeNotPermitted, http.StatusForbidden, msg, err)
}

// NewTokenExpiredError creates a new expired-token error
func NewTokenExpiredError(msg string, err error) *APIError {
	return newError(ErrorTypeTokenExpired, http.StatusUnauthorized, msg, err)
}

// NewTokenMalformedError creates a new malformed-token error
func NewTokenMalformedError(msg string, err error) *APIError {
	return newError(ErrorTypeTokenMalformed, http.StatusUnauthorized, msg, err)
}

// NewSignatureInvalidError creates a new bad-signature error
func NewSignatureInvalidError(msg string, err error) *APIError {
	return newError(ErrorTypeSignatureInvalid, http.StatusUnauthorized, msg, err)
}

// NewMethodNotAllowedError creates a new method-not-allowed error
func NewMethodNotAllowedError(msg string, err error) *APIError {
	return newError(ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed, msg, err)
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, msg, err)
}

func isType(err error, t ErrorType) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == t
	}
	return false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsAlreadyExists checks if an error is an AlreadyExists error
func IsAlreadyExists(err error) bool {
	return isType(err, ErrorTypeAlreadyExists)
}

// IsNotPermitted checks if an error is a NotPermitted error
func IsNotPermitted(err error) bool {
	return isType(err, ErrorTypeNotPermitted)
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsTokenExpired checks if an error is a TokenExpired error
func IsTokenExpired(err error) bool {
	return isType(err, ErrorTypeTokenExpired)
}

// IsAuth checks if an error is an authentication error of any kind
func IsAuth(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		switch apiErr.Type {
		case ErrorTypeAuth, ErrorTypeTokenExpired, ErrorTypeTokenMalformed, ErrorTypeSignatureInvalid:
			return true
		}
	}
	return false
}
