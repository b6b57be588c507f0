package models

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// PostingKind discriminates the three ledger entry types. The amount of a
// posting is always a positive magnitude; the kind implies its sign.
type PostingKind string

const (
	KindDeposit    PostingKind = "D"
	KindWithdrawal PostingKind = "W"
	KindInterest   PostingKind = "I"
)

// Posting represents a single ledger record for an account.
// Postings are immutable once appended; the account balance is a fold over
// them in ledger order (date ascending, insertion order within a day).
type Posting struct {
	ID      string          // unique within the account, "{YYYYMMDD}-{seq:02d}"
	Account string          // which account this posting belongs to
	Date    civil.Date      // calendar date, no time component
	Kind    PostingKind     // deposit, withdrawal or interest credit
	Amount  decimal.Decimal // positive magnitude
}

// Signed returns the amount carrying the sign implied by the posting kind:
// deposits and interest credit, withdrawals debit.
func (p Posting) Signed() decimal.Decimal {
	if p.Kind == KindWithdrawal {
		return p.Amount.Neg()
	}
	return p.Amount
}

// PostingID builds the ledger id for the seq-th posting of an account.
// seq is 1-based and counts all of the account's postings, regardless of
// how they group by calendar day.
func PostingID(date civil.Date, seq int) string {
	return fmt.Sprintf("%s-%02d", CompactDate(date), seq)
}

// CompactDate renders a civil date in the 8-digit YYYYMMDD boundary form.
func CompactDate(d civil.Date) string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}
