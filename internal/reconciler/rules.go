package reconciler

import (
	"budget-recon/internal/currencyutils"
	"budget-recon/internal/models"

	"github.com/shopspring/decimal"
)

// AmountTolerance returns the largest |ledger - purchasing| still treated
// as a match.
func AmountTolerance() decimal.Decimal {
	return decimal.New(1, -2)
}

// evaluation is everything the rules look at for one requisition.
type evaluation struct {
	req         *models.Requisition
	matchedDocs []*models.LedgerDocument
	ledgerCodes models.StringSet
	categories  models.StringSet
	difference  decimal.Decimal
}

type rule struct {
	reason models.ReviewReason
	fires  func(ev *evaluation) bool
}

// rules run in this order; every rule that fires appends its reason.
var rules = []rule{
	{models.ReasonMultipleOrMissingOrderNumbers, func(ev *evaluation) bool {
		return ev.req.OrderNumbers.Len() != 1
	}},
	{models.ReasonMultipleOrMissingUnimarketAcct, func(ev *evaluation) bool {
		return ev.req.AccountCodes.Len() != 1
	}},
	{models.ReasonNoBannerDocMatch, func(ev *evaluation) bool {
		return len(ev.matchedDocs) == 0
	}},
	{models.ReasonMultipleBannerDocs, func(ev *evaluation) bool {
		return len(ev.matchedDocs) > 1
	}},
	{models.ReasonAmountMismatch, func(ev *evaluation) bool {
		return currencyutils.ExceedsTolerance(ev.difference, AmountTolerance())
	}},
	{models.ReasonMultipleOrMissingBannerAcct, func(ev *evaluation) bool {
		return ev.ledgerCodes.Len() != 1
	}},
	{models.ReasonMissingOrMultipleCategories, func(ev *evaluation) bool {
		return ev.categories.Len() != 1
	}},
	{models.ReasonAcctCodeMismatch, func(ev *evaluation) bool {
		purchasing := ev.req.AccountCodes.Only()
		ledger := ev.ledgerCodes.Only()
		return purchasing != "" && ledger != "" && purchasing != ledger
	}},
}

func (ev *evaluation) reasons() []models.ReviewReason {
	var fired []models.ReviewReason
	for _, r := range rules {
		if r.fires(ev) {
			fired = append(fired, r.reason)
		}
	}
	return fired
}

func statusFor(reasons []models.ReviewReason) models.MatchStatus {
	if len(reasons) == 0 {
		return models.StatusExactMatch
	}
	return models.StatusReview
}
