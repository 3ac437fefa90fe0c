package batch

import (
	"sort"

	"budget-recon/internal/currencyutils"
	"budget-recon/internal/models"
	"budget-recon/internal/tabular"
)

// LedgerDocuments is the ledger aggregate set of one run, keyed by
// document code.
type LedgerDocuments struct {
	byCode map[string]*models.LedgerDocument
	keys   []string
}

// Get returns the aggregate for code.
func (l *LedgerDocuments) Get(code string) (*models.LedgerDocument, bool) {
	doc, ok := l.byCode[code]
	return doc, ok
}

// Has reports whether code is a known document.
func (l *LedgerDocuments) Has(code string) bool {
	_, ok := l.byCode[code]
	return ok
}

// Len returns the number of documents.
func (l *LedgerDocuments) Len() int {
	return len(l.keys)
}

// Keys returns the document codes in ascending order.
func (l *LedgerDocuments) Keys() []string {
	out := make([]string, len(l.keys))
	copy(out, l.keys)
	return out
}

// Sorted returns the aggregates ordered by document code.
func (l *LedgerDocuments) Sorted() []*models.LedgerDocument {
	out := make([]*models.LedgerDocument, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.byCode[k])
	}
	return out
}

// LedgerBuilder accumulates ledger rows for a single run.
type LedgerBuilder struct {
	byCode     map[string]*models.LedgerDocument
	skipped    int
	unparsable []int
}

// NewLedgerBuilder returns an empty builder.
func NewLedgerBuilder() *LedgerBuilder {
	return &LedgerBuilder{byCode: make(map[string]*models.LedgerDocument)}
}

// Add folds row into its document, negating the amount when DR_CR_IND is
// the negative marker. Rows without a document code are dropped and Add
// reports false.
func (b *LedgerBuilder) Add(row tabular.Row) bool {
	code := row.Value(models.LedgerColDocCode)
	if code == "" {
		b.skipped++
		return false
	}

	amount, ok := currencyutils.TryParseAmount(row.Get(models.LedgerColAmount))
	if !ok {
		b.unparsable = append(b.unparsable, row.Line)
	}
	if row.Value(models.LedgerColDebitCred) == models.NegativeIndicator {
		amount = amount.Neg()
	}

	doc, exists := b.byCode[code]
	if !exists {
		doc = models.NewLedgerDocument(code)
		b.byCode[code] = doc
	}
	doc.Total = doc.Total.Add(amount)
	doc.AccountCodes.Add(row.Value(models.LedgerColAccount))
	doc.LineCount++
	return true
}

// Skipped returns how many rows were dropped for lacking a key.
func (b *LedgerBuilder) Skipped() int {
	return b.skipped
}

// Build freezes the accumulated aggregates. The builder starts over empty
// afterwards.
func (b *LedgerBuilder) Build() *LedgerDocuments {
	keys := make([]string, 0, len(b.byCode))
	for k := range b.byCode {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &LedgerDocuments{byCode: b.byCode, keys: keys}
	b.byCode = make(map[string]*models.LedgerDocument)
	return out
}
