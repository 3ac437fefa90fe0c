package models

import (
	"budget-recon/internal/tabular"

	"github.com/shopspring/decimal"
)

// Requisition is the purchasing-side aggregate of every export line sharing
// a requisition number.
type Requisition struct {
	RequisitionNumber string
	OrderNumbers      StringSet
	Total             decimal.Decimal
	AccountCodes      StringSet
	LineCount         int
}

// NewRequisition returns an empty aggregate for number.
func NewRequisition(number string) *Requisition {
	return &Requisition{
		RequisitionNumber: number,
		OrderNumbers:      StringSet{},
		Total:             decimal.Zero,
		AccountCodes:      StringSet{},
	}
}

// ReviewReasons returns the multiplicity checks that fail for the
// requisition on its own, account codes first.
func (r *Requisition) ReviewReasons() []ReviewReason {
	var reasons []ReviewReason
	if r.AccountCodes.Len() != 1 {
		reasons = append(reasons, ReasonMultipleOrMissingAcctPart4)
	}
	if r.OrderNumbers.Len() != 1 {
		reasons = append(reasons, ReasonMultipleOrMissingOrderNumbers)
	}
	return reasons
}

// LedgerDocument is the general-ledger aggregate of every posted line
// sharing a document code. Total is signed.
type LedgerDocument struct {
	DocCode      string
	Total        decimal.Decimal
	AccountCodes StringSet
	LineCount    int
}

// NewLedgerDocument returns an empty aggregate for code.
func NewLedgerDocument(code string) *LedgerDocument {
	return &LedgerDocument{
		DocCode:      code,
		Total:        decimal.Zero,
		AccountCodes: StringSet{},
	}
}

// ReviewReasons returns the multiplicity checks that fail for the document
// on its own.
func (d *LedgerDocument) ReviewReasons() []ReviewReason {
	if d.AccountCodes.Len() != 1 {
		return []ReviewReason{ReasonMultipleOrMissingAcctCodes}
	}
	return nil
}

// TrackingRow is one row of the internal tracking export. It is descriptive
// only and never authoritative for amounts.
type TrackingRow struct {
	// Index is the row's position in the tracking table; it identifies the
	// row across lookups.
	Index              int
	Line               int
	RequisitionNumber  string
	PONumber           string
	BannerAccountCode  string
	ProductionCategory string
	Raw                tabular.Row
}

// Tracking export column names.
const (
	TrackingColRequisition = "requisition_number"
	TrackingColPONumber    = "po_number"
	TrackingColAccountCode = "banner_account_code"
	TrackingColCategory    = "production_category"
)

// NewTrackingRow extracts the tracking fields from row. Missing columns read
// as empty strings.
func NewTrackingRow(row tabular.Row) TrackingRow {
	return TrackingRow{
		Line:               row.Line,
		RequisitionNumber:  row.Value(TrackingColRequisition),
		PONumber:           row.Value(TrackingColPONumber),
		BannerAccountCode:  row.Value(TrackingColAccountCode),
		ProductionCategory: row.Value(TrackingColCategory),
		Raw:                row,
	}
}
