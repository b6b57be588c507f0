package statement

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/interest-ledger/internal/events/noop"
	"github.com/sheikh-saqib/interest-ledger/internal/interest"
	"github.com/sheikh-saqib/interest-ledger/internal/ledger"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/sheikh-saqib/interest-ledger/internal/rates"
	"github.com/sheikh-saqib/interest-ledger/internal/storage/memory"
)

type fixture struct {
	ledger    *ledger.Ledger
	timeline  *rates.Timeline
	assembler *Assembler
}

func newFixture() *fixture {
	l := ledger.NewLedger(memory.NewMemoryLedgerStore(), noop.NewPublisher(), zap.NewNop())
	t := rates.NewTimeline(memory.NewMemoryRateStore())
	return &fixture{
		ledger:    l,
		timeline:  t,
		assembler: NewAssembler(l, interest.NewCalculator(l, t)),
	}
}

func (f *fixture) deposit(t *testing.T, account string, date civil.Date, amount string) {
	t.Helper()
	_, _, err := f.ledger.Post(context.Background(), account, date, models.KindDeposit, decimal.RequireFromString(amount))
	require.NoError(t, err)
}

func (f *fixture) rule(t *testing.T, date civil.Date, id, rate string) {
	t.Helper()
	_, err := f.timeline.DefineRule(context.Background(), date, id, decimal.RequireFromString(rate))
	require.NoError(t, err)
}

func d(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func TestMonthOutOfRange(t *testing.T) {
	f := newFixture()
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	for _, month := range []int{0, 13, -1} {
		_, err := f.assembler.BuildPreview("AC1", month, d(2023, time.June, 30))
		assert.ErrorIs(t, err, models.ErrInvalidMonth, "month %d", month)
	}
}

func TestUnknownAccount(t *testing.T) {
	f := newFixture()

	_, err := f.assembler.BuildPreview("NOPE", 6, d(2023, time.June, 30))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestPreviewNeverMutatesTheLedger(t *testing.T) {
	f := newFixture()
	f.rule(t, d(2023, time.January, 1), "RULE01", "1.95")
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	stmt, err := f.assembler.BuildPreview("AC1", 6, d(2023, time.June, 30))
	require.NoError(t, err)

	// the accrual is reported but nothing was posted
	require.NotNil(t, stmt.Interest)
	assert.Equal(t, "1.95", stmt.Interest.Total.StringFixed(2))
	assert.Len(t, stmt.Lines, 1)
	assert.True(t, stmt.ClosingBalance.Equal(decimal.RequireFromString("100")))

	postings, err := f.ledger.PostingsFor("AC1")
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestBuildCommitsInterestAtMonthEnd(t *testing.T) {
	f := newFixture()
	f.rule(t, d(2023, time.January, 1), "RULE01", "1.95")
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	stmt, err := f.assembler.Build(context.Background(), "AC1", 6, d(2023, time.June, 30))
	require.NoError(t, err)

	require.Len(t, stmt.Lines, 2)
	last := stmt.Lines[1]
	assert.Equal(t, models.KindInterest, last.Kind)
	assert.Equal(t, d(2023, time.June, 30), last.Date)
	assert.Equal(t, "20230630-02", last.ID)
	assert.Equal(t, "1.95", last.Amount.StringFixed(2))
	assert.Equal(t, "101.95", last.Balance.StringFixed(2))
	assert.Equal(t, "101.95", stmt.ClosingBalance.StringFixed(2))
}

func TestBuildBeforeMonthEndDoesNotCommit(t *testing.T) {
	f := newFixture()
	f.rule(t, d(2023, time.January, 1), "RULE01", "1.95")
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	stmt, err := f.assembler.Build(context.Background(), "AC1", 6, d(2023, time.June, 29))
	require.NoError(t, err)

	assert.Len(t, stmt.Lines, 1)
	require.NotNil(t, stmt.Interest)
	assert.Equal(t, "1.95", stmt.Interest.Total.StringFixed(2))

	postings, err := f.ledger.PostingsFor("AC1")
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestBuildOnTriggerDateIsIdempotent(t *testing.T) {
	f := newFixture()
	f.rule(t, d(2023, time.January, 1), "RULE01", "1.95")
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	asOf := d(2023, time.June, 30)
	_, err := f.assembler.Build(context.Background(), "AC1", 6, asOf)
	require.NoError(t, err)
	stmt, err := f.assembler.Build(context.Background(), "AC1", 6, asOf)
	require.NoError(t, err)

	postings, err := f.ledger.PostingsFor("AC1")
	require.NoError(t, err)
	assert.Len(t, postings, 2)
	assert.Len(t, stmt.Lines, 2)
}

func TestBuildWithoutAnyRateRule(t *testing.T) {
	f := newFixture()
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")

	stmt, err := f.assembler.Build(context.Background(), "AC1", 6, d(2023, time.June, 30))
	require.NoError(t, err)

	// nothing to accrue, so nothing is posted
	assert.Len(t, stmt.Lines, 1)
	require.NotNil(t, stmt.Interest)
	assert.True(t, stmt.Interest.Total.IsZero())
}

func TestStatementAnnotatesRunningBalances(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.deposit(t, "AC1", d(2023, time.June, 1), "100")
	_, _, err := f.ledger.Post(ctx, "AC1", d(2023, time.June, 10), models.KindWithdrawal, decimal.RequireFromString("40"))
	require.NoError(t, err)
	f.deposit(t, "AC1", d(2023, time.June, 20), "15")

	stmt, err := f.assembler.BuildPreview("AC1", 6, d(2023, time.June, 25))
	require.NoError(t, err)

	require.Len(t, stmt.Lines, 3)
	assert.Equal(t, "100", stmt.Lines[0].Balance.String())
	assert.Equal(t, "60", stmt.Lines[1].Balance.String())
	assert.Equal(t, "75", stmt.Lines[2].Balance.String())
	assert.Equal(t, "75", stmt.ClosingBalance.String())
}
