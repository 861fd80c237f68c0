package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeExternal   ErrorType = "EXTERNAL_ERROR"
	ErrorTypeTimeout    ErrorType = "TIMEOUT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeConfigMissing    ErrorCode = "CONFIG_MISSING"
	ErrCodeNoQuarterFolder  ErrorCode = "NO_QUARTER_FOLDER"
	ErrCodeUsersEmpty       ErrorCode = "USERS_EMPTY"
	ErrCodeMissingUserID    ErrorCode = "MISSING_USER_ID_COLUMN"
	ErrCodeRowCountMismatch ErrorCode = "USER_CV_COUNT_MISMATCH"
	ErrCodeVendorHTTP       ErrorCode = "VENDOR_HTTP_ERROR"
	ErrCodeReportTimeout    ErrorCode = "REPORT_TIMEOUT"
	ErrCodeReportNoURL      ErrorCode = "REPORT_NO_DOWNLOAD_URL"
	ErrCodeLoadFailed       ErrorCode = "LOAD_FAILED"
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
)

// AppError classifies failures per the pipeline's propagation policy:
// Validation/NotFound/Timeout/External/Internal all abort the run. Row-level
// drops are never modelled as errors; the loader counts and logs them.
type AppError struct {
	Type    ErrorType
	Code    ErrorCode
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

func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{Type: e.Type, Code: e.Code, Message: e.Message, Cause: cause}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: code, Message: message}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

func NewExternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeExternal, Code: ErrCodeVendorHTTP, Message: message, Cause: cause}
}

func NewTimeoutError(message string) *AppError {
	return &AppError{Type: ErrorTypeTimeout, Code: ErrCodeReportTimeout, Message: message}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Code: "INTERNAL_ERROR", Message: message, Cause: cause}
}

var (
	ErrNoQuarterFolders = NewNotFoundError("no quarterly report folders found", ErrCodeNoQuarterFolder)
	ErrUsersEmpty       = NewValidationError("user report produced no rows", ErrCodeUsersEmpty)
	ErrMissingUserID    = NewValidationError("user report is missing the CV Partner User ID column", ErrCodeMissingUserID)
	ErrRowCountMismatch = NewValidationError("user and cv row counts differ", ErrCodeRowCountMismatch)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
