package rates

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/sheikh-saqib/interest-ledger/internal/storage/memory"
)

func d(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefineRuleRejectsOutOfRangeRates(t *testing.T) {
	timeline := NewTimeline(memory.NewMemoryRateStore())
	ctx := context.Background()

	for _, bad := range []string{"0", "-1.5", "100", "150"} {
		_, err := timeline.DefineRule(ctx, d(2023, time.January, 1), "RULE01", rate(bad))
		assert.ErrorIs(t, err, models.ErrInvalidRate, "rate %s", bad)
	}

	rules, err := timeline.RulesByDate()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRateOnPicksLatestEffectiveRule(t *testing.T) {
	timeline := NewTimeline(memory.NewMemoryRateStore())
	ctx := context.Background()

	_, err := timeline.DefineRule(ctx, d(2023, time.January, 1), "RULE01", rate("1.95"))
	require.NoError(t, err)
	_, err = timeline.DefineRule(ctx, d(2023, time.May, 20), "RULE02", rate("1.90"))
	require.NoError(t, err)

	rule, err := timeline.RateOn(d(2023, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, "RULE01", rule.RuleID)
	assert.True(t, rule.RatePercent.Equal(rate("1.95")))

	rule, err = timeline.RateOn(d(2023, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "RULE02", rule.RuleID)
	assert.True(t, rule.RatePercent.Equal(rate("1.90")))

	// exactly on the effective date the new rule applies
	rule, err = timeline.RateOn(d(2023, time.May, 20))
	require.NoError(t, err)
	assert.Equal(t, "RULE02", rule.RuleID)
}

func TestRateOnBeforeAnyRule(t *testing.T) {
	timeline := NewTimeline(memory.NewMemoryRateStore())

	_, err := timeline.RateOn(d(2023, time.January, 1))
	assert.ErrorIs(t, err, models.ErrNoApplicableRate)

	_, err = timeline.DefineRule(context.Background(), d(2023, time.May, 20), "RULE01", rate("2.00"))
	require.NoError(t, err)

	_, err = timeline.RateOn(d(2023, time.May, 19))
	assert.ErrorIs(t, err, models.ErrNoApplicableRate)
}

func TestRedefiningSameDateKeepsOneRule(t *testing.T) {
	timeline := NewTimeline(memory.NewMemoryRateStore())
	ctx := context.Background()

	_, err := timeline.DefineRule(ctx, d(2023, time.January, 1), "RULE01", rate("1.95"))
	require.NoError(t, err)
	_, err = timeline.DefineRule(ctx, d(2023, time.January, 1), "RULE02", rate("2.20"))
	require.NoError(t, err)

	rules, err := timeline.RulesByDate()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "RULE02", rules[0].RuleID)
	assert.True(t, rules[0].RatePercent.Equal(rate("2.20")))
}

func TestRulesByDateIsSortedRegardlessOfInsertionOrder(t *testing.T) {
	timeline := NewTimeline(memory.NewMemoryRateStore())
	ctx := context.Background()

	_, err := timeline.DefineRule(ctx, d(2023, time.May, 20), "RULE03", rate("2.10"))
	require.NoError(t, err)
	_, err = timeline.DefineRule(ctx, d(2023, time.January, 1), "RULE01", rate("1.95"))
	require.NoError(t, err)
	_, err = timeline.DefineRule(ctx, d(2023, time.March, 15), "RULE02", rate("2.00"))
	require.NoError(t, err)

	rules, err := timeline.RulesByDate()
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, []string{"RULE01", "RULE02", "RULE03"}, []string{rules[0].RuleID, rules[1].RuleID, rules[2].RuleID})
	assert.True(t, rules[0].EffectiveDate.Before(rules[1].EffectiveDate))
	assert.True(t, rules[1].EffectiveDate.Before(rules[2].EffectiveDate))
}
