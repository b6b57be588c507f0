package interest

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/sheikh-saqib/interest-ledger/internal/ledger"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/sheikh-saqib/interest-ledger/internal/rates"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator computes simple interest on end-of-day balances over a date
// range, honoring rate changes inside the range. Results are derived data;
// committing them to the ledger is the statement assembler's decision.
type Calculator struct {
	ledger *ledger.Ledger
	rates  *rates.Timeline
}

func NewCalculator(l *ledger.Ledger, t *rates.Timeline) *Calculator {
	return &Calculator{
		ledger: l,
		rates:  t,
	}
}

// MonthRange returns the half-open range covering one calendar month.
func MonthRange(year int, month time.Month) (civil.Date, civil.Date) {
	start := civil.Date{Year: year, Month: month, Day: 1}
	return start, start.AddDays(DaysInMonth(year, month))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Accrue computes the interest an account earns over [start, end).
//
// The range is partitioned at every rule effective date strictly inside it,
// so each sub-interval has one constant rate. The principal basis of a
// sub-interval is the account balance as of its first day; interest accrued
// earlier in the same period never compounds into the basis. Each
// sub-interval contributes
//
//	basis * rate/100 * days / daysInStatementMonth
//
// annualized against the actual length of the month containing start. Days
// with no applicable rate contribute zero. The total is rounded to two
// decimal places; per-line amounts are left unrounded.
func (c *Calculator) Accrue(account string, start, end civil.Date) (models.InterestAccrual, error) {
	accrual := models.InterestAccrual{
		PeriodStart: start,
		PeriodEnd:   end,
		Total:       decimal.Zero,
	}
	if !start.Before(end) {
		return accrual, nil
	}

	rules, err := c.rates.RulesByDate()
	if err != nil {
		return models.InterestAccrual{}, err
	}

	boundaries := []civil.Date{start}
	for _, r := range rules {
		if r.EffectiveDate.After(start) && r.EffectiveDate.Before(end) {
			boundaries = append(boundaries, r.EffectiveDate)
		}
	}

	divisor := decimal.NewFromInt(int64(DaysInMonth(start.Year, start.Month)))
	total := decimal.Zero

	for i, from := range boundaries {
		to := end
		if i+1 < len(boundaries) {
			to = boundaries[i+1]
		}

		rule, err := c.rates.RateOn(from)
		if errors.Is(err, models.ErrNoApplicableRate) {
			continue
		}
		if err != nil {
			return models.InterestAccrual{}, err
		}

		basis, err := c.ledger.BalanceAsOf(account, from)
		if err != nil {
			return models.InterestAccrual{}, err
		}

		days := to.DaysSince(from)
		amount := basis.
			Mul(rule.RatePercent).Div(hundred).
			Mul(decimal.NewFromInt(int64(days))).Div(divisor)

		accrual.Lines = append(accrual.Lines, models.AccrualLine{
			From:           from,
			To:             to,
			Days:           days,
			RuleID:         rule.RuleID,
			RatePercent:    rule.RatePercent,
			PrincipalBasis: basis,
			Amount:         amount,
		})
		total = total.Add(amount)
	}

	accrual.Total = total.Round(2)
	return accrual, nil
}
