package errors

import (
	"fmt"
	"sort"
	"strings"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeDatasetNotFound  = "DATASET_NOT_FOUND"
	CodeSchemaValidation = "SCHEMA_VALIDATION"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// DatasetNotFound marks a missing backing resource for a named dataset.
// Distinct from validation errors so callers can render a "no data yet" state.
func DatasetNotFound(dataset, location string) *AppError {
	return New(CodeDatasetNotFound, fmt.Sprintf("dataset %s not found at %s", dataset, location))
}

// SchemaValidationError reports required columns missing from a dataset.
// The missing column names are always enumerated in the message.
type SchemaValidationError struct {
	Dataset        string
	MissingColumns []string
}

func (e *SchemaValidationError) Error() string {
	cols := append([]string(nil), e.MissingColumns...)
	sort.Strings(cols)
	return fmt.Sprintf("missing columns in %s: %s", e.Dataset, strings.Join(cols, ", "))
}

// NewSchemaValidation creates a SchemaValidationError wrapped in the AppError taxonomy
func NewSchemaValidation(dataset string, missing []string) *AppError {
	schemaErr := &SchemaValidationError{Dataset: dataset, MissingColumns: missing}
	return &AppError{
		Code:    CodeSchemaValidation,
		Message: schemaErr.Error(),
		Cause:   schemaErr,
	}
}

// IsDatasetNotFound reports whether err carries the missing-dataset code
func IsDatasetNotFound(err error) bool {
	return GetCode(err) == CodeDatasetNotFound
}

// IsSchemaValidation reports whether err carries the schema-validation code
func IsSchemaValidation(err error) bool {
	return GetCode(err) == CodeSchemaValidation
}
