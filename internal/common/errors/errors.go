// Package errors provides standardized error handling for the generation pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Recoverable per-stage failures. These degrade to documented fallbacks
	// and are never surfaced to the client.
	ErrCodeClassificationFailed  ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeInterpretationFailed  ErrorCode = "INTERPRETATION_FAILED"
	ErrCodeRetrievalFailed       ErrorCode = "RETRIEVAL_FAILED"
	ErrCodeImageSelectionFailed  ErrorCode = "IMAGE_SELECTION_FAILED"
	ErrCodeBlockGenerationFailed ErrorCode = "BLOCK_GENERATION_FAILED"

	// Model gateway failures.
	ErrCodeModelTimeout    ErrorCode = "MODEL_TIMEOUT"
	ErrCodeModelCallFailed ErrorCode = "MODEL_CALL_FAILED"

	// Fatal for the run: no sensible default block plan exists.
	ErrCodeReasoningFailed ErrorCode = "REASONING_FAILED"

	// Stream and request surface.
	ErrCodeStreamSetupFailed ErrorCode = "STREAM_SETUP_FAILED"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"

	// Context store. A miss is distinct from a stored blob that does not parse.
	ErrCodeContextNotFound         ErrorCode = "CONTEXT_NOT_FOUND"
	ErrCodeContextMalformed        ErrorCode = "CONTEXT_MALFORMED"
	ErrCodeContextStoreUnavailable ErrorCode = "CONTEXT_STORE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps the error code to the HTTP status returned before a
// stream is opened.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeContextNotFound:
		return http.StatusNotFound
	case ErrCodeContextMalformed, ErrCodeContextStoreUnavailable, ErrCodeStreamSetupFailed:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassificationFailedError creates a recoverable classification error.
func NewClassificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationFailed,
		Message:   "Intent classification failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInterpretationFailedError creates a recoverable signal-interpretation error.
func NewInterpretationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInterpretationFailed,
		Message:   "Signal interpretation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRetrievalFailedError creates a recoverable retrieval error.
func NewRetrievalFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRetrievalFailed,
		Message:   "Retrieval context construction failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewImageSelectionFailedError creates a recoverable hero-image error.
func NewImageSelectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeImageSelectionFailed,
		Message:   "Hero image selection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBlockGenerationFailedError creates a recoverable per-block error.
func NewBlockGenerationFailedError(blockType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBlockGenerationFailed,
		Message:   "Block content generation failed",
		Details:   fmt.Sprintf("blockType: %s, error: %s", blockType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReasoningFailedError creates the fatal reasoning error that terminates a run.
func NewReasoningFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReasoningFailed,
		Message:   "Block selection reasoning failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelTimeoutError creates a retryable model gateway timeout error.
func NewModelTimeoutError(role string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelTimeout,
		Message:   "Model call timed out",
		Details:   fmt.Sprintf("role: %s", role),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelCallFailedError creates a retryable model gateway error.
func NewModelCallFailedError(role string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelCallFailed,
		Message:   "Model call failed",
		Details:   fmt.Sprintf("role: %s, error: %s", role, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStreamSetupFailedError creates a fatal stream-setup error.
func NewStreamSetupFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStreamSetupFailed,
		Message:   "Event stream setup failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable client input error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextNotFoundError creates the 404-equivalent context store miss.
func NewContextNotFoundError(contextID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextNotFound,
		Message:   "Context not found or expired",
		Details:   fmt.Sprintf("contextId: %s", contextID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextMalformedError creates the 500-equivalent malformed stored context error.
func NewContextMalformedError(contextID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextMalformed,
		Message:   "Stored context is malformed",
		Details:   fmt.Sprintf("contextId: %s, error: %s", contextID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContextStoreUnavailableError creates a retryable store connectivity error.
func NewContextStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContextStoreUnavailable,
		Message:   "Context store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
