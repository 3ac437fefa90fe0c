package batch

import (
	"budget-recon/internal/models"
	"budget-recon/internal/tabular"
)

// TrackingIndex looks tracking rows up by requisition number and by
// order/document number. A row carrying both keys is reachable through
// both lookups.
type TrackingIndex struct {
	byRequisition map[string][]models.TrackingRow
	byOrder       map[string][]models.TrackingRow
	rows          int
}

// NewTrackingIndex indexes rows in input order.
func NewTrackingIndex(rows []tabular.Row) *TrackingIndex {
	idx := &TrackingIndex{
		byRequisition: make(map[string][]models.TrackingRow),
		byOrder:       make(map[string][]models.TrackingRow),
	}
	for i, row := range rows {
		tr := models.NewTrackingRow(row)
		tr.Index = i
		idx.add(tr)
	}
	return idx
}

func (t *TrackingIndex) add(tr models.TrackingRow) {
	t.rows++
	if tr.RequisitionNumber != "" {
		t.byRequisition[tr.RequisitionNumber] = append(t.byRequisition[tr.RequisitionNumber], tr)
	}
	if tr.PONumber != "" {
		t.byOrder[tr.PONumber] = append(t.byOrder[tr.PONumber], tr)
	}
}

// ByRequisition returns the rows indexed under requisition number key.
func (t *TrackingIndex) ByRequisition(key string) []models.TrackingRow {
	return t.byRequisition[key]
}

// ByOrder returns the rows indexed under order/document number key.
func (t *TrackingIndex) ByOrder(key string) []models.TrackingRow {
	return t.byOrder[key]
}

// Len returns the number of rows indexed, including rows with no key.
func (t *TrackingIndex) Len() int {
	return t.rows
}
