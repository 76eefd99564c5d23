package common

import (
	"errors"
	"fmt"
)

// Error codes, one per failure class. Every failure aborts the run.
const (
	CodeConfig    = "CONFIG_ERROR"
	CodeTransport = "TRANSPORT_ERROR"
	CodeDecode    = "DECODE_ERROR"
	CodeSchema    = "SCHEMA_ERROR"
	CodeFS        = "FS_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrMissingField      = errors.New("missing field")
	ErrUnexpectedStatus  = errors.New("unexpected http status")
	ErrLocked            = errors.New("file is locked by another run")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func ConfigError(message string, cause error) error {
	return NewAppError(CodeConfig, message, cause)
}

func TransportError(message string, cause error) error {
	return NewAppError(CodeTransport, message, cause)
}

func DecodeError(message string, cause error) error {
	return NewAppError(CodeDecode, message, cause)
}

func SchemaError(message string, cause error) error {
	return NewAppError(CodeSchema, message, cause)
}

func FSError(message string, cause error) error {
	return NewAppError(CodeFS, message, cause)
}

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
