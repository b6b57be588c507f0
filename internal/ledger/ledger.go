package ledger

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/sheikh-saqib/interest-ledger/internal/models/events"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const TopicPostingRecorded = "posting_recorded"

// Ledger is the posting engine. It validates commands, assigns posting ids,
// appends postings through the store and publishes a PostingRecorded event
// for each successful append.
type Ledger struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	logger    *zap.Logger

	muMap map[string]*sync.Mutex // per-account locks, so id assignment and balance checks stay serial per account
	mapMu sync.Mutex             // protects the muMap itself
}

func NewLedger(store interfaces.LedgerStore, publisher interfaces.EventPublisher, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:     store,
		publisher: publisher,
		logger:    logger,
		muMap:     make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) getAccountLock(account string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[account]; !exists {
		l.muMap[account] = &sync.Mutex{}
	}
	return l.muMap[account]
}

// Post appends one posting to an account and returns it with the resulting
// balance. A non-positive amount fails with ErrInvalidAmount; a withdrawal
// exceeding the current balance fails with ErrInsufficientFunds. On any
// failure the ledger is left exactly as before.
func (l *Ledger) Post(ctx context.Context, account string, date civil.Date, kind models.PostingKind, amount decimal.Decimal) (models.Posting, decimal.Decimal, error) {
	if amount.Cmp(decimal.Zero) <= 0 {
		return models.Posting{}, decimal.Zero, models.ErrInvalidAmount
	}

	mu := l.getAccountLock(account)
	mu.Lock()
	defer mu.Unlock()

	postings, err := l.store.PostingsByAccount(account)
	if err != nil {
		return models.Posting{}, decimal.Zero, err
	}

	balance := fold(postings)
	if kind == models.KindWithdrawal && amount.Cmp(balance) > 0 {
		return models.Posting{}, decimal.Zero, models.ErrInsufficientFunds
	}

	count, err := l.store.PostingCount(account)
	if err != nil {
		return models.Posting{}, decimal.Zero, err
	}

	posting := models.Posting{
		ID:      models.PostingID(date, count+1),
		Account: account,
		Date:    date,
		Kind:    kind,
		Amount:  amount,
	}
	if err := l.store.SavePosting(ctx, posting); err != nil {
		return models.Posting{}, decimal.Zero, err
	}

	newBalance := balance.Add(posting.Signed())
	l.publishRecorded(posting, newBalance)
	return posting, newBalance, nil
}

// publishRecorded is fire-and-forget: a broker outage must not fail the
// posting that was already appended.
func (l *Ledger) publishRecorded(posting models.Posting, balance decimal.Decimal) {
	event := events.PostingRecorded{
		EventID:    uuid.New().String(),
		Account:    posting.Account,
		PostingID:  posting.ID,
		Date:       models.CompactDate(posting.Date),
		Kind:       string(posting.Kind),
		Amount:     posting.Amount,
		Balance:    balance,
		OccurredAt: time.Now(),
	}
	if err := l.publisher.Publish(TopicPostingRecorded, event); err != nil {
		l.logger.Warn("failed to publish posting event",
			zap.String("posting_id", posting.ID),
			zap.Error(err))
	}
}

// Balance folds the account's full posting history.
func (l *Ledger) Balance(account string) (decimal.Decimal, error) {
	postings, err := l.store.PostingsByAccount(account)
	if err != nil {
		return decimal.Zero, err
	}
	return fold(postings), nil
}

// BalanceAsOf folds postings dated at or before the given date. This is the
// principal basis used by interest accrual.
func (l *Ledger) BalanceAsOf(account string, date civil.Date) (decimal.Decimal, error) {
	postings, err := l.store.PostingsByAccount(account)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, p := range postings {
		if !p.Date.After(date) {
			balance = balance.Add(p.Signed())
		}
	}
	return balance, nil
}

// PostingsFor returns the account's postings in ledger order.
func (l *Ledger) PostingsFor(account string) ([]models.Posting, error) {
	return l.store.PostingsByAccount(account)
}

func fold(postings []models.Posting) decimal.Decimal {
	balance := decimal.Zero
	for _, p := range postings {
		balance = balance.Add(p.Signed())
	}
	return balance
}
