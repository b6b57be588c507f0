package interfaces

import (
	"context"

	"github.com/sheikh-saqib/interest-ledger/internal/models"
)

// LedgerStore persists postings. Implementations must return postings in
// ledger order: ascending date, insertion order within a day.
type LedgerStore interface {
	SavePosting(ctx context.Context, posting models.Posting) error
	PostingsByAccount(account string) ([]models.Posting, error)
	PostingCount(account string) (int, error)
}
