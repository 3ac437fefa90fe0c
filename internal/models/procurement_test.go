package models

import (
	"testing"

	"budget-recon/internal/tabular"

	"github.com/stretchr/testify/assert"
)

func TestRequisition_ReviewReasons(t *testing.T) {
	req := NewRequisition("R1")
	assert.Equal(t, []ReviewReason{ReasonMultipleOrMissingAcctPart4, ReasonMultipleOrMissingOrderNumbers}, req.ReviewReasons())

	req.AccountCodes.Add("7100")
	req.OrderNumbers.Add("P1")
	assert.Empty(t, req.ReviewReasons())

	req.OrderNumbers.Add("P2")
	assert.Equal(t, []ReviewReason{ReasonMultipleOrMissingOrderNumbers}, req.ReviewReasons())
}

func TestLedgerDocument_ReviewReasons(t *testing.T) {
	doc := NewLedgerDocument("D1")
	assert.Equal(t, []ReviewReason{ReasonMultipleOrMissingAcctCodes}, doc.ReviewReasons())

	doc.AccountCodes.Add("7100")
	assert.Empty(t, doc.ReviewReasons())
}

func TestNewTrackingRow(t *testing.T) {
	row := tabular.NewRow(5, map[string]string{
		"requisition_number":  " R1 ",
		"po_number":           "P1",
		"production_category": "Costumes",
	})

	tr := NewTrackingRow(row)
	assert.Equal(t, 5, tr.Line)
	assert.Equal(t, "R1", tr.RequisitionNumber)
	assert.Equal(t, "P1", tr.PONumber)
	assert.Equal(t, "", tr.BannerAccountCode)
	assert.Equal(t, "Costumes", tr.ProductionCategory)
}

func TestReconciliationRecord(t *testing.T) {
	rec := ReconciliationRecord{
		RequisitionNumber: "R1",
		Status:            StatusReview,
		Reasons:           []ReviewReason{ReasonNoBannerDocMatch, ReasonAmountMismatch},
	}

	assert.False(t, rec.Unmatched())
	assert.True(t, rec.NeedsReview())
	assert.Equal(t, "no_banner_doc_match_from_order_number;amount_mismatch_over_0.01", rec.ReasonString())
	assert.True(t, rec.HasReason(ReasonAmountMismatch))
	assert.False(t, rec.HasReason(ReasonAcctCodeMismatch))

	exact := ReconciliationRecord{RequisitionNumber: "R2", Status: StatusExactMatch}
	assert.False(t, exact.NeedsReview())
	assert.Equal(t, "", exact.ReasonString())
}
