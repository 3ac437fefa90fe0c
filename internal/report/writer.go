// Package report writes the grouped, reconciled and review CSV reports and
// the run summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"budget-recon/internal/batch"
	"budget-recon/internal/fileutils"
	"budget-recon/internal/logging"
	"budget-recon/internal/models"
	"budget-recon/internal/reconciler"

	"github.com/gocarina/gocsv"
)

// Writer renders report rows as delimited text.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer that separates fields with delimiter.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{
		delimiter: delimiter,
		logger:    logger.WithField(logging.FieldComponent, "report"),
	}
}

// Encode writes rows, which must be a slice of one of the row types, with
// a header line first. The header is written even when rows is empty.
func (w *Writer) Encode(out io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// reportFile is one output file and the rows that go into it.
type reportFile struct {
	path  string
	rows  interface{}
	count int
}

func (w *Writer) stage(r reportFile) (*fileutils.StagedFile, error) {
	staged, err := fileutils.StageFile(r.path, models.PermissionFile, func(out io.Writer) error {
		return w.Encode(out, r.rows)
	})
	if err != nil {
		w.logger.WithError(err).Debug("Failed to write report",
			logging.F(logging.FieldOutputFile, r.path))
		return nil, fmt.Errorf("error writing %s: %w", r.path, err)
	}
	return staged, nil
}

func requisitionRows(reqs *batch.Requisitions) []RequisitionRow {
	rows := make([]RequisitionRow, 0, reqs.Len())
	for _, req := range reqs.Sorted() {
		rows = append(rows, NewRequisitionRow(req))
	}
	return rows
}

func ledgerDocumentRows(docs *batch.LedgerDocuments) []LedgerDocumentRow {
	rows := make([]LedgerDocumentRow, 0, docs.Len())
	for _, doc := range docs.Sorted() {
		rows = append(rows, NewLedgerDocumentRow(doc))
	}
	return rows
}

func reconciliationRows(records []models.ReconciliationRecord) []ReconciliationRow {
	rows := make([]ReconciliationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NewReconciliationRow(rec))
	}
	return rows
}

// WriteAll writes the four reports of a run. Every report is rendered to a
// temporary file first; none replaces its target unless all four rendered.
func (w *Writer) WriteAll(outputs models.OutputFiles, reqs *batch.Requisitions, docs *batch.LedgerDocuments, result *reconciler.Result) error {
	reqRows := requisitionRows(reqs)
	docRows := ledgerDocumentRows(docs)
	recRows := reconciliationRows(result.Records)
	reviewRows := reconciliationRows(result.ReviewRecords())

	reports := []reportFile{
		{outputs.Requisitions, reqRows, len(reqRows)},
		{outputs.LedgerDocs, docRows, len(docRows)},
		{outputs.Reconciled, recRows, len(recRows)},
		{outputs.Review, reviewRows, len(reviewRows)},
	}

	staged := make([]*fileutils.StagedFile, 0, len(reports))
	discard := func() {
		for _, s := range staged {
			s.Discard()
		}
	}
	for _, r := range reports {
		s, err := w.stage(r)
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, s)
	}

	for i, s := range staged {
		if err := s.Commit(); err != nil {
			discard()
			w.logger.WithError(err).Debug("Failed to write report",
				logging.F(logging.FieldOutputFile, s.Path()))
			return fmt.Errorf("error writing %s: %w", s.Path(), err)
		}
		w.logger.Info("Wrote report",
			logging.F(logging.FieldOutputFile, s.Path()),
			logging.F(logging.FieldCount, reports[i].count))
	}
	return nil
}
