package interfaces

import (
	"context"

	"github.com/sheikh-saqib/interest-ledger/internal/models"
)

// RateStore persists interest rate rules. Saving a rule whose effective date
// is already present replaces the prior rule for that date.
type RateStore interface {
	SaveRule(ctx context.Context, rule models.RateRule) error
	RulesByDate() ([]models.RateRule, error)
}
