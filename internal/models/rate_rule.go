package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RateRule sets the annual interest rate in effect from EffectiveDate until a
// rule with a later effective date supersedes it. The timeline of rules is
// piecewise-constant and keyed by effective date: defining a second rule for
// the same date replaces the first.
type RateRule struct {
	EffectiveDate civil.Date      `json:"effective_date"`
	RuleID        string          `json:"rule_id"`
	RatePercent   decimal.Decimal `json:"rate"` // annual rate, strictly between 0 and 100
}
