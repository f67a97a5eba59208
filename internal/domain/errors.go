package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Generation specific errors
	ErrLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
	ErrParse            ErrorCode = "PARSE_ERROR"
	ErrConformance      ErrorCode = "CONFORMANCE_ERROR"
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewParseError(err error) *DomainError {
	return NewError(ErrParse, "model output is not valid json", err)
}

// NewConformanceError reports the first schema key missing from a record.
func NewConformanceError(key string) *DomainError {
	return NewError(ErrConformance, fmt.Sprintf("%s not in json output", key), nil)
}

func NewInvalidQuestionTypeError(questionType string) *DomainError {
	return NewError(ErrInvalidInput, fmt.Sprintf("Invalid question type: %s", questionType), nil)
}

func NewGenerationFailedError() *DomainError {
	return NewError(ErrGenerationFailed, "Failed to generate questions. Please try again.", nil)
}

// HasCode reports whether err is a DomainError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
