package rates

import (
	"context"

	"cloud.google.com/go/civil"
	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Timeline is the piecewise-constant history of annual interest rates.
// The rate in effect on a day is the rate of the latest rule effective at or
// before that day.
type Timeline struct {
	store interfaces.RateStore
}

func NewTimeline(store interfaces.RateStore) *Timeline {
	return &Timeline{
		store: store,
	}
}

// DefineRule validates and stores a rate rule. A rule already effective on
// the same date is replaced; replacement is keyed by date, not by rule id.
func (t *Timeline) DefineRule(ctx context.Context, date civil.Date, ruleID string, rate decimal.Decimal) (models.RateRule, error) {
	if rate.Cmp(decimal.Zero) <= 0 || rate.Cmp(hundred) >= 0 {
		return models.RateRule{}, models.ErrInvalidRate
	}

	rule := models.RateRule{
		EffectiveDate: date,
		RuleID:        ruleID,
		RatePercent:   rate,
	}
	if err := t.store.SaveRule(ctx, rule); err != nil {
		return models.RateRule{}, err
	}
	return rule, nil
}

// RateOn resolves the rule in effect on the given date, or
// ErrNoApplicableRate if every rule post-dates it.
func (t *Timeline) RateOn(date civil.Date) (models.RateRule, error) {
	rules, err := t.store.RulesByDate()
	if err != nil {
		return models.RateRule{}, err
	}

	for i := len(rules) - 1; i >= 0; i-- {
		if !rules[i].EffectiveDate.After(date) {
			return rules[i], nil
		}
	}
	return models.RateRule{}, models.ErrNoApplicableRate
}

// RulesByDate returns all rules in ascending effective-date order,
// deterministic regardless of the order they were defined in.
func (t *Timeline) RulesByDate() ([]models.RateRule, error) {
	return t.store.RulesByDate()
}
