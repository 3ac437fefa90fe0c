// Package validation holds the precondition checks that make a run fatal:
// unreadable input paths and required columns missing from a header.
package validation

import (
	"fmt"
	"os"

	"budget-recon/internal/models"
	"budget-recon/internal/parsererror"
	"budget-recon/internal/tabular"
)

// Required columns per dataset. The tracking export has none: its
// descriptive columns degrade to empty values when absent.
var (
	PurchasingColumns = []string{
		models.PurchasingColRequisition,
		models.PurchasingColOrder,
		models.PurchasingColAmount,
		models.PurchasingColAccount,
	}
	LedgerColumns = []string{
		models.LedgerColDocCode,
		models.LedgerColAmount,
		models.LedgerColDebitCred,
		models.LedgerColAccount,
	}
)

// RequireColumns returns a MissingColumnError for the first column of
// required that table's header lacks.
func RequireColumns(table *tabular.Table, dataset string, required []string) error {
	for _, col := range required {
		if !table.HasColumn(col) {
			return &parsererror.MissingColumnError{
				FilePath: table.Path,
				Dataset:  dataset,
				Column:   col,
			}
		}
	}
	return nil
}

// MissingColumns lists every column of required absent from table, in order.
func MissingColumns(table *tabular.Table, required []string) []string {
	var missing []string
	for _, col := range required {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// IsReadableFile checks that path exists and is a regular file.
func IsReadableFile(path string) error {
	if path == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "no path configured"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a regular file"}
	}
	return nil
}

// IsValidDelimiter checks that delim is exactly one character and not a
// quote or line break.
func IsValidDelimiter(delim string) error {
	runes := []rune(delim)
	if len(runes) != 1 {
		return fmt.Errorf("delimiter must be a single character, got: %q", delim)
	}
	switch runes[0] {
	case '"', '\r', '\n', 0xFFFD:
		return fmt.Errorf("invalid delimiter: %q", delim)
	}
	return nil
}
