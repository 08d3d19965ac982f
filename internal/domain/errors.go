package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	ErrQuizNotFound           ErrorCode = "QUIZ_NOT_FOUND"
	ErrQuizUnparseable        ErrorCode = "QUIZ_UNPARSEABLE"
	ErrGeneratorNotConfigured ErrorCode = "GENERATOR_NOT_CONFIGURED"
	ErrLLMServiceError        ErrorCode = "LLM_SERVICE_ERROR"
)

// ErrQuizStoreMiss is returned by QuizStore implementations when no quiz
// exists under the requested ID. Services translate it to a not-found error.
var ErrQuizStoreMiss = errors.New("quiz not found in store")

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

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewGeneratorNotConfiguredError() *DomainError {
	return NewError(ErrGeneratorNotConfigured, "Quiz generation is not configured: OPENAI_API_KEY is missing", nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to generate quiz with LLM service", err)
}

// UnparseableQuizError signals that the generator returned text but no valid
// question could be extracted from it. The raw text is carried along so the
// caller can show it and offer a regeneration instead of discarding it.
type UnparseableQuizError struct {
	RawText string
	Dropped int
}

func (e *UnparseableQuizError) Error() string {
	return fmt.Sprintf("generated text produced no valid questions (%d blocks dropped)", e.Dropped)
}

// NewUnparseableQuizError wraps the raw generator output in a DomainError so
// the error middleware maps it to a 422 while keeping the text reachable via
// errors.As.
func NewUnparseableQuizError(rawText string, dropped int) *DomainError {
	return NewError(ErrQuizUnparseable,
		"Could not parse questions from generated text. Try regenerating.",
		&UnparseableQuizError{RawText: rawText, Dropped: dropped})
}
