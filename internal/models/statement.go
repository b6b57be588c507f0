package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// StatementLine is one posting annotated with the running balance after it.
type StatementLine struct {
	Date    civil.Date      `json:"date"`
	ID      string          `json:"id"`
	Kind    PostingKind     `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// Statement is the assembled record set for one account and statement month:
// every posting of the account in ledger order, plus the interest accrued
// over the requested month. Rendering (columns, labels) is the caller's job.
type Statement struct {
	Account        string           `json:"account"`
	Lines          []StatementLine  `json:"lines"`
	Interest       *InterestAccrual `json:"interest,omitempty"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
}
