package batch

import (
	"sort"

	"budget-recon/internal/currencyutils"
	"budget-recon/internal/models"
	"budget-recon/internal/tabular"
)

// Requisitions is the purchasing aggregate set of one run, keyed by
// requisition number.
type Requisitions struct {
	byNumber map[string]*models.Requisition
	keys     []string
}

// Get returns the aggregate for number.
func (r *Requisitions) Get(number string) (*models.Requisition, bool) {
	req, ok := r.byNumber[number]
	return req, ok
}

// Len returns the number of requisitions.
func (r *Requisitions) Len() int {
	return len(r.keys)
}

// Keys returns the requisition numbers in ascending order.
func (r *Requisitions) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Sorted returns the aggregates ordered by requisition number.
func (r *Requisitions) Sorted() []*models.Requisition {
	out := make([]*models.Requisition, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byNumber[k])
	}
	return out
}

// PurchasingBuilder accumulates purchasing rows for a single run.
type PurchasingBuilder struct {
	byNumber   map[string]*models.Requisition
	skipped    int
	unparsable []int
}

// NewPurchasingBuilder returns an empty builder.
func NewPurchasingBuilder() *PurchasingBuilder {
	return &PurchasingBuilder{byNumber: make(map[string]*models.Requisition)}
}

// Add folds row into its requisition. Rows without a requisition number
// are dropped and Add reports false.
func (b *PurchasingBuilder) Add(row tabular.Row) bool {
	number := row.Value(models.PurchasingColRequisition)
	if number == "" {
		b.skipped++
		return false
	}

	amount, ok := currencyutils.TryParseAmount(row.Get(models.PurchasingColAmount))
	if !ok {
		b.unparsable = append(b.unparsable, row.Line)
	}

	req, exists := b.byNumber[number]
	if !exists {
		req = models.NewRequisition(number)
		b.byNumber[number] = req
	}
	req.OrderNumbers.Add(row.Value(models.PurchasingColOrder))
	req.AccountCodes.Add(row.Value(models.PurchasingColAccount))
	req.Total = req.Total.Add(amount)
	req.LineCount++
	return true
}

// Skipped returns how many rows were dropped for lacking a key.
func (b *PurchasingBuilder) Skipped() int {
	return b.skipped
}

// Build freezes the accumulated aggregates. The builder starts over empty
// afterwards.
func (b *PurchasingBuilder) Build() *Requisitions {
	keys := make([]string, 0, len(b.byNumber))
	for k := range b.byNumber {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &Requisitions{byNumber: b.byNumber, keys: keys}
	b.byNumber = make(map[string]*models.Requisition)
	return out
}
