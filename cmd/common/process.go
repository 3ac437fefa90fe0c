// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"budget-recon/internal/container"
	"budget-recon/internal/logging"
	"budget-recon/internal/models"
	"budget-recon/internal/report"
	"budget-recon/internal/tabular"
	"budget-recon/internal/validation"

	"github.com/google/uuid"
)

// Inputs holds the three exports of one run.
type Inputs struct {
	Purchasing *tabular.Table
	Ledger     *tabular.Table
	Tracking   *tabular.Table
}

// LoadInputs reads the configured purchasing, ledger and tracking exports.
// A path that is missing or not a regular file fails with a
// parsererror.ValidationError before anything is parsed.
func LoadInputs(c *container.Container) (*Inputs, error) {
	cfg := c.GetConfig()
	reader := c.GetReader()

	read := func(dataset, path string) (*tabular.Table, error) {
		if err := validation.IsReadableFile(path); err != nil {
			return nil, fmt.Errorf("error reading %s export: %w", dataset, err)
		}
		table, err := reader.Read(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s export: %w", dataset, err)
		}
		return table, nil
	}

	purchasing, err := read(models.DatasetPurchasing, cfg.Inputs.Purchasing)
	if err != nil {
		return nil, err
	}
	ledger, err := read(models.DatasetLedger, cfg.Inputs.Ledger)
	if err != nil {
		return nil, err
	}
	tracking, err := read(models.DatasetTracking, cfg.Inputs.Tracking)
	if err != nil {
		return nil, err
	}
	return &Inputs{Purchasing: purchasing, Ledger: ledger, Tracking: tracking}, nil
}

// ProcessRun executes one reconciliation: it reads and aggregates the three
// exports, reconciles them, writes the four reports and prints the run
// summary to summaryOut. Any read or required-column failure aborts the
// run before a report is written.
func ProcessRun(ctx context.Context, c *container.Container, summaryOut io.Writer) (*models.RunSummary, error) {
	cfg := c.GetConfig()
	summary := &models.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := c.GetLogger().WithField(logging.FieldRunID, summary.RunID)
	log.Info("Starting reconciliation",
		logging.F("purchasing", cfg.Inputs.Purchasing),
		logging.F("ledger", cfg.Inputs.Ledger),
		logging.F("tracking", cfg.Inputs.Tracking))

	inputs, err := LoadInputs(c)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggregator := c.GetAggregator()
	reqs, err := aggregator.AggregatePurchasing(inputs.Purchasing)
	if err != nil {
		return nil, err
	}
	docs, err := aggregator.AggregateLedger(inputs.Ledger)
	if err != nil {
		return nil, err
	}
	tracking := aggregator.IndexTracking(inputs.Tracking)

	result := c.GetEngine().Reconcile(reqs, docs, tracking)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputs := cfg.OutputFiles()
	if err := c.GetWriter().WriteAll(outputs, reqs, docs, result); err != nil {
		return nil, err
	}

	counts := result.Counts()
	summary.FinishedAt = time.Now().UTC()
	summary.Requisitions = reqs.Len()
	summary.LedgerDocs = docs.Len()
	summary.TrackingRows = tracking.Len()
	summary.Records = counts.Total
	summary.ExactMatches = counts.Exact
	summary.ReviewRecords = counts.Review
	summary.UnmatchedDocs = counts.Unmatched
	summary.ReasonCounts = result.ReasonCounts()
	summary.Inputs = models.InputFiles{
		Purchasing:         inputs.Purchasing.Path,
		PurchasingEncoding: inputs.Purchasing.Encoding,
		Ledger:             inputs.Ledger.Path,
		LedgerEncoding:     inputs.Ledger.Encoding,
		Tracking:           inputs.Tracking.Path,
		TrackingEncoding:   inputs.Tracking.Encoding,
	}
	summary.Outputs = outputs

	if path := cfg.SummaryFile(); path != "" {
		if err := report.WriteSummaryYAML(path, summary); err != nil {
			return nil, fmt.Errorf("error writing run summary: %w", err)
		}
		log.Debug("Wrote run summary", logging.F(logging.FieldOutputFile, path))
	}

	if summaryOut != nil {
		if err := report.WriteSummary(summaryOut, summary); err != nil {
			return nil, fmt.Errorf("error printing run summary: %w", err)
		}
	}

	log.Info("Reconciliation finished",
		logging.F(logging.FieldDuration, summary.FinishedAt.Sub(summary.StartedAt).Milliseconds()),
		logging.F("exact_match", summary.ExactMatches),
		logging.F("review", summary.ReviewRecords))
	return summary, nil
}

// InputReport describes one export as seen by ValidateInputs.
type InputReport struct {
	Dataset  string
	Path     string
	Encoding string
	Rows     int
	Missing  []string
}

// Valid reports whether no required column is missing.
func (r InputReport) Valid() bool {
	return len(r.Missing) == 0
}

// ValidateInputs reads every export and lists the required columns each
// one lacks. It writes nothing. The error is non-nil only when an export
// cannot be read at all.
func ValidateInputs(c *container.Container) ([]InputReport, error) {
	inputs, err := LoadInputs(c)
	if err != nil {
		return nil, err
	}

	check := func(dataset string, table *tabular.Table, required []string) InputReport {
		return InputReport{
			Dataset:  dataset,
			Path:     table.Path,
			Encoding: table.Encoding,
			Rows:     table.Len(),
			Missing:  validation.MissingColumns(table, required),
		}
	}

	return []InputReport{
		check(models.DatasetPurchasing, inputs.Purchasing, validation.PurchasingColumns),
		check(models.DatasetLedger, inputs.Ledger, validation.LedgerColumns),
		check(models.DatasetTracking, inputs.Tracking, nil),
	}, nil
}

// WriteInputReports prints one line per export and one per missing column.
func WriteInputReports(out io.Writer, reports []InputReport) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(out, "%s: %s (encoding %s, %d rows)\n", r.Dataset, r.Path, r.Encoding, r.Rows); err != nil {
			return err
		}
		for _, col := range r.Missing {
			if _, err := fmt.Fprintf(out, "  missing column: %s\n", col); err != nil {
				return err
			}
		}
	}
	return nil
}
