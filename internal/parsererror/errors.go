// Package parsererror defines the fatal error types raised while ingesting
// the reconciliation inputs. Anything recoverable (bad money cells, rows
// without a key, cross-dataset mismatches) never becomes an error value.
package parsererror

import (
	"fmt"
	"strings"
)

// DecodeError reports that no configured text encoding could decode a file.
// Err is the failure of the first attempted encoding.
type DecodeError struct {
	FilePath  string
	Encodings []string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode '%s' with any of [%s]: %v",
		e.FilePath, strings.Join(e.Encodings, ", "), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a required column absent from an input header.
type MissingColumnError struct {
	FilePath string
	Dataset  string
	Column   string
}

func (e *MissingColumnError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("missing required column in %s export '%s': %s", e.Dataset, e.FilePath, e.Column)
	}
	return fmt.Sprintf("missing required column in '%s': %s", e.FilePath, e.Column)
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected tabular format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}
