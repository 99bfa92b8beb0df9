package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("not found")
	ErrReaderNil       = errors.New("attachment reader is nil")
	ErrCatalogMismatch = errors.New("database lookups do not match catalog")
	ErrUnknownCategory = errors.New("unknown document category")
)

// ValidationError is a request problem the client can fix.
// Message is safe to show to end users.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrTitleRequired      = &ValidationError{Code: "TITLE_REQUIRED", Message: "Title is required"}
	ErrFiscalYearRequired = &ValidationError{Code: "FISCAL_YEAR_REQUIRED", Message: "Fiscal year is required"}
	ErrSourceRequired     = &ValidationError{Code: "SOURCE_REQUIRED", Message: "Source is required"}
	ErrGrantTypeRequired  = &ValidationError{Code: "GRANT_TYPE_REQUIRED", Message: "Grant type is required"}
	ErrInvalidFiscalYear  = &ValidationError{Code: "INVALID_FISCAL_YEAR", Message: "Invalid fiscal year"}
	ErrInvalidSource      = &ValidationError{Code: "INVALID_SOURCE", Message: "Invalid source"}
	ErrInvalidGrantType   = &ValidationError{Code: "INVALID_GRANT_TYPE", Message: "Invalid grant type"}
)

func fileTypeError(field, filename string) *ValidationError {
	return &ValidationError{
		Code:    "INVALID_FILE_TYPE",
		Message: fmt.Sprintf("File type not allowed for %s: %s", field, filename),
	}
}
