package memory

import (
	"context"
	"sort"
	"sync"

	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// Postings are kept per account in ledger order and the store is safe for
// concurrent use.
type MemoryLedgerStore struct {
	mu       sync.Mutex
	postings map[string][]models.Posting
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		postings: make(map[string][]models.Posting),
	}
}

// SavePosting inserts the posting in ledger order: after every posting dated
// at or before it, so insertion order is preserved within a day even when a
// back-dated posting arrives late.
func (m *MemoryLedgerStore) SavePosting(ctx context.Context, posting models.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.postings[posting.Account]
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Date.After(posting.Date)
	})
	entries = append(entries, models.Posting{})
	copy(entries[i+1:], entries[i:])
	entries[i] = posting
	m.postings[posting.Account] = entries
	return nil
}

// PostingsByAccount returns a copy of the account's postings in ledger order,
// so callers cannot modify internal state.
func (m *MemoryLedgerStore) PostingsByAccount(account string) ([]models.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.postings[account]
	copied := make([]models.Posting, len(entries))
	copy(copied, entries)
	return copied, nil
}

func (m *MemoryLedgerStore) PostingCount(account string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.postings[account]), nil
}

// MemoryRateStore is an in-memory implementation of interfaces.RateStore.
// Rules are kept sorted by effective date, one rule per date.
type MemoryRateStore struct {
	mu    sync.Mutex
	rules []models.RateRule
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{
		rules: make([]models.RateRule, 0),
	}
}

// SaveRule replaces any rule already effective on the same date, keeping the
// timeline sorted by effective date.
func (m *MemoryRateStore) SaveRule(ctx context.Context, rule models.RateRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rules[:0]
	for _, r := range m.rules {
		if r.EffectiveDate != rule.EffectiveDate {
			kept = append(kept, r)
		}
	}
	m.rules = append(kept, rule)
	sort.Slice(m.rules, func(i, j int) bool {
		return m.rules[i].EffectiveDate.Before(m.rules[j].EffectiveDate)
	})
	return nil
}

// RulesByDate returns a copy of the rules in ascending effective-date order.
func (m *MemoryRateStore) RulesByDate() ([]models.RateRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.RateRule, len(m.rules))
	copy(copied, m.rules)
	return copied, nil
}

// Compile-time checks: ensure the memory stores implement the store interfaces
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
var _ interfaces.RateStore = (*MemoryRateStore)(nil)
