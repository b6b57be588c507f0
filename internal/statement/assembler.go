package statement

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/sheikh-saqib/interest-ledger/internal/interest"
	"github.com/sheikh-saqib/interest-ledger/internal/ledger"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Assembler combines the account's postings with the month's interest
// accrual into one ordered record set. The statement month is interpreted in
// the year of the caller-supplied as-of date.
type Assembler struct {
	ledger *ledger.Ledger
	calc   *interest.Calculator
}

func NewAssembler(l *ledger.Ledger, c *interest.Calculator) *Assembler {
	return &Assembler{
		ledger: l,
		calc:   c,
	}
}

// BuildPreview assembles the statement without ever mutating the ledger.
func (a *Assembler) BuildPreview(account string, month int, asOf civil.Date) (models.Statement, error) {
	return a.build(context.Background(), account, month, asOf, false)
}

// Build assembles the statement and, when asOf is the last calendar day of
// the statement month, materializes the accrued interest as a posting dated
// at month end. Interest already posted on that date is not posted again, so
// repeated builds on the trigger date are safe.
func (a *Assembler) Build(ctx context.Context, account string, month int, asOf civil.Date) (models.Statement, error) {
	return a.build(ctx, account, month, asOf, true)
}

func (a *Assembler) build(ctx context.Context, account string, month int, asOf civil.Date, commit bool) (models.Statement, error) {
	if month < 1 || month > 12 {
		return models.Statement{}, models.ErrInvalidMonth
	}

	postings, err := a.ledger.PostingsFor(account)
	if err != nil {
		return models.Statement{}, err
	}
	if len(postings) == 0 {
		return models.Statement{}, models.ErrAccountNotFound
	}

	lines := make([]models.StatementLine, 0, len(postings)+1)
	balance := decimal.Zero
	for _, p := range postings {
		balance = balance.Add(p.Signed())
		lines = append(lines, models.StatementLine{
			Date:    p.Date,
			ID:      p.ID,
			Kind:    p.Kind,
			Amount:  p.Amount,
			Balance: balance,
		})
	}

	start, end := interest.MonthRange(asOf.Year, time.Month(month))
	accrual, err := a.calc.Accrue(account, start, end)
	if err != nil {
		return models.Statement{}, err
	}

	monthEnd := end.AddDays(-1)
	if commit && asOf == monthEnd && accrual.Total.Cmp(decimal.Zero) > 0 && !hasInterestOn(postings, monthEnd) {
		posted, newBalance, err := a.ledger.Post(ctx, account, monthEnd, models.KindInterest, accrual.Total)
		if err != nil {
			return models.Statement{}, err
		}
		balance = newBalance
		lines = append(lines, models.StatementLine{
			Date:    posted.Date,
			ID:      posted.ID,
			Kind:    posted.Kind,
			Amount:  posted.Amount,
			Balance: newBalance,
		})
	}

	return models.Statement{
		Account:        account,
		Lines:          lines,
		Interest:       &accrual,
		ClosingBalance: balance,
	}, nil
}

func hasInterestOn(postings []models.Posting, date civil.Date) bool {
	for _, p := range postings {
		if p.Kind == models.KindInterest && p.Date == date {
			return true
		}
	}
	return false
}
