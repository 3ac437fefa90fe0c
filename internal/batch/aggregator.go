// Package batch aggregates the three reconciliation inputs: purchasing lines
// grouped by requisition, ledger lines grouped by document code, and the
// tracking export indexed by requisition and order number.
package batch

import (
	"fmt"

	"budget-recon/internal/logging"
	"budget-recon/internal/models"
	"budget-recon/internal/tabular"
	"budget-recon/internal/validation"
)

// BatchAggregator turns loaded tables into the per-run aggregate
// structures. It holds no state between calls.
type BatchAggregator struct {
	logger logging.Logger
}

// NewBatchAggregator creates a new BatchAggregator instance
func NewBatchAggregator(logger logging.Logger) *BatchAggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &BatchAggregator{
		logger: logger.WithField(logging.FieldComponent, "aggregator"),
	}
}

// AggregatePurchasing validates the purchasing header and groups every row
// by requisition number.
func (ba *BatchAggregator) AggregatePurchasing(table *tabular.Table) (*Requisitions, error) {
	if err := validation.RequireColumns(table, models.DatasetPurchasing, validation.PurchasingColumns); err != nil {
		return nil, fmt.Errorf("purchasing export: %w", err)
	}

	b := NewPurchasingBuilder()
	for _, row := range table.Rows {
		b.Add(row)
	}
	for _, line := range b.unparsable {
		ba.logger.Debug("Unparsable amount treated as zero",
			logging.F(logging.FieldDataset, models.DatasetPurchasing),
			logging.F(logging.FieldLine, line))
	}
	reqs := b.Build()

	ba.logger.Info("Grouped purchasing lines by requisition",
		logging.F(logging.FieldCount, reqs.Len()),
		logging.F(logging.FieldSkipped, b.Skipped()),
		logging.F("unparsable_amounts", len(b.unparsable)))
	return reqs, nil
}

// AggregateLedger validates the ledger header and groups every row by
// document code with signed amounts.
func (ba *BatchAggregator) AggregateLedger(table *tabular.Table) (*LedgerDocuments, error) {
	if err := validation.RequireColumns(table, models.DatasetLedger, validation.LedgerColumns); err != nil {
		return nil, fmt.Errorf("ledger export: %w", err)
	}

	b := NewLedgerBuilder()
	for _, row := range table.Rows {
		b.Add(row)
	}
	for _, line := range b.unparsable {
		ba.logger.Debug("Unparsable amount treated as zero",
			logging.F(logging.FieldDataset, models.DatasetLedger),
			logging.F(logging.FieldLine, line))
	}
	docs := b.Build()

	ba.logger.Info("Grouped ledger lines by document",
		logging.F(logging.FieldCount, docs.Len()),
		logging.F(logging.FieldSkipped, b.Skipped()),
		logging.F("unparsable_amounts", len(b.unparsable)))
	return docs, nil
}

// IndexTracking indexes the tracking export. It never fails: absent
// columns simply produce empty keys and attributes.
func (ba *BatchAggregator) IndexTracking(table *tabular.Table) *TrackingIndex {
	idx := NewTrackingIndex(table.Rows)

	ba.logger.Info("Indexed tracking rows",
		logging.F(logging.FieldCount, idx.Len()),
		logging.F("requisition_keys", len(idx.byRequisition)),
		logging.F("order_keys", len(idx.byOrder)))
	return idx
}
