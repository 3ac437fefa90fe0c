package models

import "time"

// RunSummary describes one completed reconciliation run.
type RunSummary struct {
	RunID         string         `yaml:"run_id"`
	StartedAt     time.Time      `yaml:"started_at"`
	FinishedAt    time.Time      `yaml:"finished_at"`
	Requisitions  int            `yaml:"requisitions"`
	LedgerDocs    int            `yaml:"banner_docs"`
	TrackingRows  int            `yaml:"tracking_rows"`
	Records       int            `yaml:"recon_rows"`
	ExactMatches  int            `yaml:"exact_match"`
	ReviewRecords int            `yaml:"review"`
	UnmatchedDocs int            `yaml:"unmatched_banner_docs"`
	ReasonCounts  map[string]int `yaml:"reason_counts,omitempty"`
	Inputs        InputFiles     `yaml:"inputs"`
	Outputs       OutputFiles    `yaml:"outputs"`
}

// InputFiles records where each dataset was read from and how it decoded.
type InputFiles struct {
	Purchasing         string `yaml:"purchasing"`
	PurchasingEncoding string `yaml:"purchasing_encoding"`
	Ledger             string `yaml:"ledger"`
	LedgerEncoding     string `yaml:"ledger_encoding"`
	Tracking           string `yaml:"tracking"`
	TrackingEncoding   string `yaml:"tracking_encoding"`
}

// OutputFiles records the four written reports.
type OutputFiles struct {
	Requisitions string `yaml:"requisitions"`
	LedgerDocs   string `yaml:"banner_docs"`
	Reconciled   string `yaml:"reconciled"`
	Review       string `yaml:"review"`
}

// Paths returns the output paths in write order.
func (o OutputFiles) Paths() []string {
	return []string{o.Requisitions, o.LedgerDocs, o.Reconciled, o.Review}
}
