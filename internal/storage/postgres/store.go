package postgres

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/civil"
	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
)

// PostgresLedgerStore persists postings in the postings table. The ord column
// is a bigserial so ordering by (date, ord) reproduces ledger order.
type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

func (p *PostgresLedgerStore) SavePosting(ctx context.Context, posting models.Posting) error {
	const query = `INSERT INTO postings (id, account, date, kind, amount)
	VALUES ($1,$2,$3,$4,$5)`

	_, err := p.db.ExecContext(ctx, query,
		posting.ID, posting.Account, posting.Date.In(time.UTC), string(posting.Kind), posting.Amount)
	return err
}

func (p *PostgresLedgerStore) PostingsByAccount(account string) ([]models.Posting, error) {
	const query = `SELECT id, account, date, kind, amount FROM postings
	WHERE account = $1 ORDER BY date, ord`

	rows, err := p.db.Query(query, account)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		var posting models.Posting
		var date time.Time
		var kind string
		if err := rows.Scan(&posting.ID, &posting.Account, &date, &kind, &posting.Amount); err != nil {
			return nil, err
		}
		posting.Date = civil.DateOf(date)
		posting.Kind = models.PostingKind(kind)
		postings = append(postings, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return postings, nil
}

func (p *PostgresLedgerStore) PostingCount(account string) (int, error) {
	const query = `SELECT count(*) FROM postings WHERE account = $1`

	var count int
	if err := p.db.QueryRow(query, account).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// PostgresRateStore persists rate rules keyed by effective date; an insert
// for an existing date replaces the prior rule.
type PostgresRateStore struct {
	db *sql.DB
}

func NewPostgresRateStore(db *sql.DB) *PostgresRateStore {
	return &PostgresRateStore{
		db: db,
	}
}

func (p *PostgresRateStore) SaveRule(ctx context.Context, rule models.RateRule) error {
	const query = `INSERT INTO interest_rules (effective_date, rule_id, rate)
	VALUES ($1,$2,$3)
	ON CONFLICT (effective_date) DO UPDATE SET rule_id = EXCLUDED.rule_id, rate = EXCLUDED.rate`

	_, err := p.db.ExecContext(ctx, query,
		rule.EffectiveDate.In(time.UTC), rule.RuleID, rule.RatePercent)
	return err
}

func (p *PostgresRateStore) RulesByDate() ([]models.RateRule, error) {
	const query = `SELECT effective_date, rule_id, rate FROM interest_rules
	ORDER BY effective_date`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.RateRule
	for rows.Next() {
		var rule models.RateRule
		var date time.Time
		if err := rows.Scan(&date, &rule.RuleID, &rule.RatePercent); err != nil {
			return nil, err
		}
		rule.EffectiveDate = civil.DateOf(date)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
var _ interfaces.RateStore = (*PostgresRateStore)(nil)
