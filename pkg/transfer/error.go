package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/David-Botos/movie-ingress/pkg/cleaner"
	"github.com/David-Botos/movie-ingress/pkg/dataset"
)

// ErrorCategory defines categories of errors during a cleaning run
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	// Row-level categories are recovered by dropping the row
	ErrorCategoryMalformedRow
	ErrorCategoryValidation
	ErrorCategoryUnexpectedRow
	// Run-level categories abort the run
	ErrorCategorySourceNotFound
	ErrorCategorySource
	ErrorCategoryOutput
	ErrorCategoryPublish
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryMalformedRow:
		return "MalformedRow"
	case ErrorCategoryValidation:
		return "ValidationFailure"
	case ErrorCategoryUnexpectedRow:
		return "UnexpectedRowError"
	case ErrorCategorySourceNotFound:
		return "SourceNotFound"
	case ErrorCategorySource:
		return "SourceFailure"
	case ErrorCategoryOutput:
		return "OutputFailure"
	case ErrorCategoryPublish:
		return "PublishFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// MarshalText lets categories key JSON maps by name
func (ec ErrorCategory) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// IsFatal reports whether the category aborts the whole run
func (ec ErrorCategory) IsFatal() bool {
	return ec >= ErrorCategorySourceNotFound
}

// CategorizeError determines the category of an error
func CategorizeError(err error) ErrorCategory {
	switch {
	case err == nil:
		return ErrorCategoryNone
	case errors.Is(err, dataset.ErrSourceNotFound):
		return ErrorCategorySourceNotFound
	case errors.Is(err, dataset.ErrMissingHeader):
		return ErrorCategorySource
	case errors.Is(err, cleaner.ErrFieldCount), errors.Is(err, cleaner.ErrParse):
		return ErrorCategoryMalformedRow
	case errors.Is(err, cleaner.ErrValidation):
		return ErrorCategoryValidation
	default:
		return ErrorCategoryUnexpectedRow
	}
}

// ErrorRecord represents a single run-level error
type ErrorRecord struct {
	Category  ErrorCategory
	Path      string
	Error     error
	Message   string // Derived from Error but stored for serialization
	Timestamp time.Time
}

// NewErrorRecord creates a new error record with current timestamp
func NewErrorRecord(err error, category ErrorCategory) ErrorRecord {
	record := ErrorRecord{
		Category:  category,
		Error:     err,
		Timestamp: time.Now(),
	}

	if err != nil {
		record.Message = err.Error()
	}

	return record
}

// WithPath adds the dataset path to the error record
func (r ErrorRecord) WithPath(path string) ErrorRecord {
	r.Path = path
	return r
}

// String returns a formatted error message
func (r ErrorRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", r.Category))

	if r.Path != "" {
		sb.WriteString(fmt.Sprintf("Path: %s ", r.Path))
	}

	if r.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Error.Error()))
	} else if r.Message != "" {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Message))
	}

	return sb.String()
}

// RunError is returned by Manager.Run when the run aborts
type RunError struct {
	Category ErrorCategory
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// newRunError wraps err, deriving the category when none is given
func newRunError(category ErrorCategory, err error) *RunError {
	if category == ErrorCategoryNone {
		category = CategorizeError(err)
	}
	return &RunError{Category: category, Err: err}
}
