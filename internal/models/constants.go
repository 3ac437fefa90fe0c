package models

// Dataset names used in logs and error messages.
const (
	DatasetPurchasing = "purchasing"
	DatasetLedger     = "ledger"
	DatasetTracking   = "tracking"
)

// Purchasing export column names.
const (
	PurchasingColRequisition = "RequisitionNumber"
	PurchasingColOrder       = "OrderNumber"
	PurchasingColAmount      = "OrderLineAmount"
	PurchasingColAccount     = "AcctPart4"
)

// Ledger export column names.
const (
	LedgerColDocCode   = "DOC_CODE"
	LedgerColAmount    = "TRANS_AMT"
	LedgerColDebitCred = "DR_CR_IND"
	LedgerColAccount   = "ACCT_CODE"
)

// NegativeIndicator is the DR_CR_IND value that flips a ledger line's sign.
const NegativeIndicator = "-"

// PermissionFile is the mode of every report the application writes.
const PermissionFile = 0644
