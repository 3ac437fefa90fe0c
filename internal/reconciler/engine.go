// Package reconciler joins purchasing requisitions to ledger documents
// through their order numbers, pulls descriptive attributes from the
// tracking export and classifies every outcome as an exact match or as
// needing review.
package reconciler

import (
	"budget-recon/internal/batch"
	"budget-recon/internal/logging"
	"budget-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Engine runs the reconciliation rules over one run's aggregates. It only
// reads the aggregates it is given.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{
		logger: logger.WithField(logging.FieldComponent, "reconciler"),
	}
}

// Reconcile produces one record per requisition, in requisition order,
// followed by one record per ledger document no requisition linked to, in
// document order.
func (e *Engine) Reconcile(reqs *batch.Requisitions, docs *batch.LedgerDocuments, tracking *batch.TrackingIndex) *Result {
	used := make(map[string]bool)
	records := make([]models.ReconciliationRecord, 0, reqs.Len())

	for _, req := range reqs.Sorted() {
		rec := e.reconcileRequisition(req, docs, tracking, used)
		records = append(records, rec)
	}

	unmatched := 0
	for _, doc := range docs.Sorted() {
		if used[doc.DocCode] {
			continue
		}
		records = append(records, unlinkedDocumentRecord(doc, tracking))
		unmatched++
	}

	result := &Result{Records: records}
	counts := result.Counts()
	e.logger.Info("Reconciliation complete",
		logging.F("records", counts.Total),
		logging.F("exact_match", counts.Exact),
		logging.F("review", counts.Review),
		logging.F("unmatched_docs", unmatched))
	return result
}

func (e *Engine) reconcileRequisition(req *models.Requisition, docs *batch.LedgerDocuments, tracking *batch.TrackingIndex, used map[string]bool) models.ReconciliationRecord {
	var matched []*models.LedgerDocument
	docCodes := make([]string, 0, 1)
	for _, order := range req.OrderNumbers.Sorted() {
		doc, ok := docs.Get(order)
		if !ok {
			continue
		}
		matched = append(matched, doc)
		docCodes = append(docCodes, doc.DocCode)
		used[doc.DocCode] = true
	}

	ledgerTotal := decimal.Zero
	ledgerCodes := models.StringSet{}
	for _, doc := range matched {
		ledgerTotal = ledgerTotal.Add(doc.Total)
		ledgerCodes.AddAll(doc.AccountCodes)
	}

	candidates := trackingCandidates(req.RequisitionNumber, docCodes, tracking)
	trackingCodes, categories := trackingAttributes(candidates)

	ev := &evaluation{
		req:         req,
		matchedDocs: matched,
		ledgerCodes: ledgerCodes,
		categories:  categories,
		difference:  ledgerTotal.Sub(req.Total),
	}
	reasons := ev.reasons()

	if len(reasons) > 0 {
		e.logger.Debug("Requisition needs review",
			logging.F("requisition", req.RequisitionNumber),
			logging.F("reasons", models.JoinReasons(reasons)),
			logging.F("tracking_rows", len(candidates)))
	}

	return models.ReconciliationRecord{
		RequisitionNumber:      req.RequisitionNumber,
		OrderNumbers:           req.OrderNumbers,
		PurchasingTotal:        req.Total,
		PurchasingAccountCodes: req.AccountCodes,
		DocCodes:               docCodes,
		LedgerTotal:            ledgerTotal,
		Difference:             ev.difference,
		LedgerAccountCodes:     ledgerCodes,
		TrackingAccountCodes:   trackingCodes,
		TrackingCategories:     categories,
		Status:                 statusFor(reasons),
		Reasons:                reasons,
	}
}

// trackingCandidates gathers rows indexed under the requisition number,
// then rows indexed under each matched document code. A row reached by
// more than one lookup is kept once.
func trackingCandidates(requisition string, docCodes []string, tracking *batch.TrackingIndex) []models.TrackingRow {
	candidates := append([]models.TrackingRow(nil), tracking.ByRequisition(requisition)...)
	for _, code := range docCodes {
		candidates = append(candidates, tracking.ByOrder(code)...)
	}

	seen := make(map[int]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if seen[c.Index] {
			continue
		}
		seen[c.Index] = true
		out = append(out, c)
	}
	return out
}

func trackingAttributes(rows []models.TrackingRow) (codes, categories models.StringSet) {
	codes = models.StringSet{}
	categories = models.StringSet{}
	for _, r := range rows {
		codes.Add(r.BannerAccountCode)
		categories.Add(r.ProductionCategory)
	}
	return codes, categories
}

func unlinkedDocumentRecord(doc *models.LedgerDocument, tracking *batch.TrackingIndex) models.ReconciliationRecord {
	trackingCodes, categories := trackingAttributes(tracking.ByOrder(doc.DocCode))
	reasons := []models.ReviewReason{models.ReasonBannerDocNotLinked}

	return models.ReconciliationRecord{
		OrderNumbers:           models.StringSet{},
		PurchasingTotal:        decimal.Zero,
		PurchasingAccountCodes: models.StringSet{},
		DocCodes:               []string{doc.DocCode},
		LedgerTotal:            doc.Total,
		Difference:             doc.Total,
		LedgerAccountCodes:     doc.AccountCodes,
		TrackingAccountCodes:   trackingCodes,
		TrackingCategories:     categories,
		Status:                 models.StatusReview,
		Reasons:                reasons,
	}
}

// Counts summarises a Result.
type Counts struct {
	Total     int
	Exact     int
	Review    int
	Unmatched int
}

// Result is the ordered output of one reconciliation.
type Result struct {
	Records []models.ReconciliationRecord
}

// ReviewRecords returns the records whose status is not exact_match, in
// their original order.
func (r *Result) ReviewRecords() []models.ReconciliationRecord {
	out := make([]models.ReconciliationRecord, 0)
	for _, rec := range r.Records {
		if rec.NeedsReview() {
			out = append(out, rec)
		}
	}
	return out
}

// Counts tallies records by status.
func (r *Result) Counts() Counts {
	c := Counts{Total: len(r.Records)}
	for _, rec := range r.Records {
		if rec.Status == models.StatusExactMatch {
			c.Exact++
		}
		if rec.Unmatched() {
			c.Unmatched++
		}
	}
	c.Review = c.Total - c.Exact
	return c
}

// ReasonCounts returns how often each review reason fired.
func (r *Result) ReasonCounts() map[string]int {
	counts := make(map[string]int)
	for _, rec := range r.Records {
		for _, reason := range rec.Reasons {
			counts[string(reason)]++
		}
	}
	return counts
}
