package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorType defines distinct categories for errors originating from vidcompress components.
type ErrorType string

const (
	// DecodeError represents failures to open or probe the input video.
	DecodeError ErrorType = "decode_error"
	// EncodeError represents failures of the external encoder (missing binary, non-zero exit, unwritable output).
	EncodeError ErrorType = "encode_error"
	// DialogError represents failures of the file selection dialog subsystem.
	DialogError ErrorType = "dialog_error"
	// ValidationError represents errors caused by invalid input parameters or configuration.
	ValidationError ErrorType = "validation_error"
	// SystemError represents underlying system issues, such as file I/O errors.
	SystemError ErrorType = "system_error"
)

// StructuredError represents a detailed error originating from vidcompress operations.
// It includes a type, message, optional details, timestamp, and a specific error code.
// It implements the standard Go `error` interface.
type StructuredError struct {
	// Type categorizes the error (e.g., DecodeError, EncodeError).
	Type ErrorType `json:"type"`
	// Message provides a concise, human-readable description of the error.
	Message string `json:"message"`
	// Details offers additional context or the underlying error message, if available.
	Details string `json:"details,omitempty"`
	// Timestamp marks when the error occurred in RFC3339 format.
	Timestamp string `json:"timestamp"`
	// Code provides a specific integer code, see error_codes.go.
	Code int `json:"code"`

	err error
}

// Error implements the standard `error` interface for StructuredError.
// It returns a formatted string including the error type, message, and details.
func (e *StructuredError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Message, e.Details)
}

// Unwrap returns the wrapped error, if any, so errors.Is and errors.As can see through.
func (e *StructuredError) Unwrap() error {
	return e.err
}

// JSON returns the StructuredError serialized as a JSON string.
// Returns an empty string and an error if marshalling fails.
func (e *StructuredError) JSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New creates a new StructuredError instance.
// It automatically sets the Timestamp to the current time.
func New(errorType ErrorType, message, details string, code int) *StructuredError {
	return &StructuredError{
		Type:      errorType,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		Code:      code,
	}
}

// Wrap creates a new StructuredError around an existing error, using its
// message as the Details field.
// If the input error `err` is nil, Details will be empty.
func Wrap(err error, errorType ErrorType, message string, code int) *StructuredError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	se := New(errorType, message, details, code)
	se.err = err
	return se
}

// FromCode creates a StructuredError whose message is the standard message for code.
func FromCode(err error, errorType ErrorType, code int) *StructuredError {
	return Wrap(err, errorType, GetErrorMessage(code), code)
}

// As reports whether err is a StructuredError and returns it.
func As(err error) (*StructuredError, bool) {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			return se, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
