package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// AccrualLine is one constant-rate sub-interval of an accrual period.
type AccrualLine struct {
	From           civil.Date      `json:"from"` // inclusive
	To             civil.Date      `json:"to"`   // exclusive
	Days           int             `json:"days"`
	RuleID         string          `json:"rule_id"`
	RatePercent    decimal.Decimal `json:"rate"`
	PrincipalBasis decimal.Decimal `json:"principal_basis"` // balance as of From
	Amount         decimal.Decimal `json:"amount"`          // unrounded interest for this sub-interval
}

// InterestAccrual is the interest computed for one account over a half-open
// date range, broken down by the rate in effect. It is derived data; it only
// becomes a ledger posting when the accrual is committed at month end.
type InterestAccrual struct {
	PeriodStart civil.Date      `json:"period_start"`
	PeriodEnd   civil.Date      `json:"period_end"`
	Lines       []AccrualLine   `json:"lines,omitempty"`
	Total       decimal.Decimal `json:"total"` // sum of line amounts, rounded to 2 decimal places
}
