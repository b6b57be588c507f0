package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingRecorded is emitted after a posting is appended to the ledger.
type PostingRecorded struct {
	EventID    string          `json:"event_id"`
	Account    string          `json:"account"`
	PostingID  string          `json:"posting_id"`
	Date       string          `json:"date"` // YYYYMMDD
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	OccurredAt time.Time       `json:"occurred_at"`
}
