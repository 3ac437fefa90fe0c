package report

import (
	"fmt"
	"io"

	"budget-recon/internal/fileutils"
	"budget-recon/internal/models"

	"gopkg.in/yaml.v3"
)

// WriteSummary prints the run counts followed by one output line per report.
func WriteSummary(out io.Writer, summary *models.RunSummary) error {
	lines := []struct {
		label string
		value int
	}{
		{"requisitions", summary.Requisitions},
		{"banner_docs", summary.LedgerDocs},
		{"recon_rows", summary.Records},
		{"exact_match", summary.ExactMatches},
		{"review", summary.ReviewRecords},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(out, "%s: %d\n", l.label, l.value); err != nil {
			return err
		}
	}
	for _, path := range summary.Outputs.Paths() {
		if _, err := fmt.Fprintf(out, "output: %s\n", path); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaryYAML stores summary as a YAML document at path.
func WriteSummaryYAML(path string, summary *models.RunSummary) error {
	return fileutils.WriteFileAtomic(path, models.PermissionFile, func(out io.Writer) error {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("error encoding summary: %w", err)
		}
		return enc.Close()
	})
}
