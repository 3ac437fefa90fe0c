package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MatchStatus classifies a reconciliation record.
type MatchStatus string

const (
	StatusExactMatch MatchStatus = "exact_match"
	StatusReview     MatchStatus = "review"
)

// ReviewReason names one fired reconciliation rule.
type ReviewReason string

// Reconciliation rule codes, in evaluation order.
const (
	ReasonMultipleOrMissingOrderNumbers  ReviewReason = "multiple_or_missing_order_numbers"
	ReasonMultipleOrMissingUnimarketAcct ReviewReason = "multiple_or_missing_unimarket_acctpart4"
	ReasonNoBannerDocMatch               ReviewReason = "no_banner_doc_match_from_order_number"
	ReasonMultipleBannerDocs             ReviewReason = "multiple_banner_docs_for_requisition"
	ReasonAmountMismatch                 ReviewReason = "amount_mismatch_over_0.01"
	ReasonMultipleOrMissingBannerAcct    ReviewReason = "multiple_or_missing_banner_acct_codes"
	ReasonMissingOrMultipleCategories    ReviewReason = "missing_or_multiple_supabase_categories"
	ReasonAcctCodeMismatch               ReviewReason = "unimarket_vs_banner_acct_code_mismatch"
	ReasonBannerDocNotLinked             ReviewReason = "banner_doc_not_linked_to_unimarket_ordernumber"
)

// Aggregate report codes.
const (
	ReasonMultipleOrMissingAcctPart4 ReviewReason = "multiple_or_missing_acctpart4"
	ReasonMultipleOrMissingAcctCodes ReviewReason = "multiple_or_missing_acct_codes"
)

// JoinReasons joins reasons with ListSeparator, preserving order.
func JoinReasons(reasons []ReviewReason) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, ListSeparator)
}

// ReconciliationRecord is the outcome for one requisition, or for one
// ledger document no requisition linked to.
type ReconciliationRecord struct {
	RequisitionNumber      string
	OrderNumbers           StringSet
	PurchasingTotal        decimal.Decimal
	PurchasingAccountCodes StringSet
	DocCodes               []string
	LedgerTotal            decimal.Decimal
	// Difference is LedgerTotal minus PurchasingTotal.
	Difference           decimal.Decimal
	LedgerAccountCodes   StringSet
	TrackingAccountCodes StringSet
	TrackingCategories   StringSet
	Status               MatchStatus
	Reasons              []ReviewReason
}

// Unmatched reports whether the record stands for an unlinked ledger
// document rather than a requisition.
func (r ReconciliationRecord) Unmatched() bool {
	return r.RequisitionNumber == ""
}

// NeedsReview reports whether the record belongs in the review subset.
func (r ReconciliationRecord) NeedsReview() bool {
	return r.Status != StatusExactMatch
}

// ReasonString joins the fired reasons in firing order.
func (r ReconciliationRecord) ReasonString() string {
	return JoinReasons(r.Reasons)
}

// HasReason reports whether reason fired for the record.
func (r ReconciliationRecord) HasReason(reason ReviewReason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}
