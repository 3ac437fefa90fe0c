package report

import (
	"strings"

	"budget-recon/internal/currencyutils"
	"budget-recon/internal/models"
)

// Review flag values of the aggregate reports.
const (
	ReviewYes = "yes"
	ReviewNo  = "no"
)

// RequisitionRow is one line of the grouped purchasing report.
type RequisitionRow struct {
	RequisitionNumber string `csv:"requisition_number"`
	OrderNumbers      string `csv:"unimarket_order_numbers"`
	OrderValueTotal   string `csv:"order_value_total"`
	AcctPart4Codes    string `csv:"acctpart4_codes"`
	LineCount         int    `csv:"line_count"`
	ReviewNeeded      string `csv:"review_needed"`
	ReviewReason      string `csv:"review_reason"`
}

// LedgerDocumentRow is one line of the grouped ledger report.
type LedgerDocumentRow struct {
	DocCode      string `csv:"doc_code"`
	BannerTotal  string `csv:"banner_total"`
	AcctCodes    string `csv:"acct_codes"`
	LineCount    int    `csv:"line_count"`
	ReviewNeeded string `csv:"review_needed"`
	ReviewReason string `csv:"review_reason"`
}

// ReconciliationRow is one line of the reconciliation and review reports.
type ReconciliationRow struct {
	RequisitionNumber    string `csv:"requisition_number"`
	OrderNumbers         string `csv:"unimarket_order_numbers"`
	OrderValueTotal      string `csv:"unimarket_order_value_total"`
	AcctPart4Codes       string `csv:"unimarket_acctpart4_codes"`
	BannerDocCodes       string `csv:"banner_doc_codes"`
	BannerTotal          string `csv:"banner_total"`
	Difference           string `csv:"difference_banner_minus_unimarket"`
	BannerAcctCodes      string `csv:"banner_acct_codes"`
	TrackingAccountCodes string `csv:"supabase_banner_account_codes"`
	TrackingCategories   string `csv:"supabase_production_categories"`
	MatchStatus          string `csv:"match_status"`
	ReviewReason         string `csv:"review_reason"`
}

func reviewFlag(reasons []models.ReviewReason) string {
	if len(reasons) > 0 {
		return ReviewYes
	}
	return ReviewNo
}

// NewRequisitionRow renders a purchasing aggregate.
func NewRequisitionRow(req *models.Requisition) RequisitionRow {
	reasons := req.ReviewReasons()
	return RequisitionRow{
		RequisitionNumber: req.RequisitionNumber,
		OrderNumbers:      req.OrderNumbers.Join(),
		OrderValueTotal:   currencyutils.FormatAmount(req.Total),
		AcctPart4Codes:    req.AccountCodes.Join(),
		LineCount:         req.LineCount,
		ReviewNeeded:      reviewFlag(reasons),
		ReviewReason:      models.JoinReasons(reasons),
	}
}

// NewLedgerDocumentRow renders a ledger aggregate.
func NewLedgerDocumentRow(doc *models.LedgerDocument) LedgerDocumentRow {
	reasons := doc.ReviewReasons()
	return LedgerDocumentRow{
		DocCode:      doc.DocCode,
		BannerTotal:  currencyutils.FormatAmount(doc.Total),
		AcctCodes:    doc.AccountCodes.Join(),
		LineCount:    doc.LineCount,
		ReviewNeeded: reviewFlag(reasons),
		ReviewReason: models.JoinReasons(reasons),
	}
}

// NewReconciliationRow renders a reconciliation record. Document codes keep
// their matching order.
func NewReconciliationRow(rec models.ReconciliationRecord) ReconciliationRow {
	return ReconciliationRow{
		RequisitionNumber:    rec.RequisitionNumber,
		OrderNumbers:         rec.OrderNumbers.Join(),
		OrderValueTotal:      currencyutils.FormatAmount(rec.PurchasingTotal),
		AcctPart4Codes:       rec.PurchasingAccountCodes.Join(),
		BannerDocCodes:       strings.Join(rec.DocCodes, models.ListSeparator),
		BannerTotal:          currencyutils.FormatAmount(rec.LedgerTotal),
		Difference:           currencyutils.FormatAmount(rec.Difference),
		BannerAcctCodes:      rec.LedgerAccountCodes.Join(),
		TrackingAccountCodes: rec.TrackingAccountCodes.Join(),
		TrackingCategories:   rec.TrackingCategories.Join(),
		MatchStatus:          string(rec.Status),
		ReviewReason:         rec.ReasonString(),
	}
}
