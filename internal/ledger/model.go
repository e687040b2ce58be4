// Package ledger computes account balances, ledgers, trial balances, and
// monthly balance snapshots from posted voucher lines.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// BalanceType reports which side a computed balance falls on. Balances are
// always exposed as an absolute amount plus a type, never a signed number.
type BalanceType string

const (
	BalanceDebit  BalanceType = "DR"
	BalanceCredit BalanceType = "CR"
)

// balanceTolerance is the accepted absolute difference for equality checks
// at the 2-decimal exposure boundary.
var balanceTolerance = decimal.New(1, -2)

// LineSum aggregates debit and credit totals over a window of voucher lines.
type LineSum struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// VoucherLine is one posted double-entry line with its voucher header fields.
type VoucherLine struct {
	VoucherID     int64
	VoucherNumber string
	VoucherDate   time.Time
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// Balance is an absolute amount plus the side it falls on.
type Balance struct {
	Amount decimal.Decimal
	Type   BalanceType
}

// MonthlyBalance is the memoized month-end checkpoint for one account.
// Opening and Closing are signed in the account's nature terms. Rows marked
// IsFinal are immutable history and are never rewritten.
type MonthlyBalance struct {
	AccountID int64
	Year      int
	Month     time.Month
	Opening   decimal.Decimal
	Debits    decimal.Decimal
	Credits   decimal.Decimal
	Closing   decimal.Decimal
	IsFinal   bool
	UpdatedAt time.Time
}

// LedgerEntry is a voucher line with the running balance after applying it.
type LedgerEntry struct {
	VoucherLine
	Running Balance
}

// Ledger is the full account statement for a date range.
type Ledger struct {
	AccountCode string
	AccountName string
	From        *time.Time
	To          time.Time
	Opening     Balance
	Entries     []LedgerEntry
	Closing     Balance
}

// TrialBalanceRow buckets one account's balance into the debit or credit column.
type TrialBalanceRow struct {
	Code   string
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// TrialBalance lists every non-deleted account bucketed by computed balance
// type. IsBalanced is the core correctness check of the whole ledger.
type TrialBalance struct {
	AsOf        time.Time
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
	IsBalanced  bool
}

// natureNet returns the nature-signed net movement: debit-nature accounts
// grow with debits, credit-nature accounts with credits.
func natureNet(nature accounts.Nature, debits, credits decimal.Decimal) decimal.Decimal {
	if nature == accounts.NatureDebit {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// balanceFromSigned converts a nature-signed quantity into an absolute
// amount plus side. A debit-nature account gone negative reports as CR,
// and symmetrically for credit-nature accounts.
func balanceFromSigned(nature accounts.Nature, signed decimal.Decimal) Balance {
	normal, flipped := BalanceDebit, BalanceCredit
	if nature == accounts.NatureCredit {
		normal, flipped = BalanceCredit, BalanceDebit
	}
	if signed.Sign() < 0 {
		return Balance{Amount: signed.Neg(), Type: flipped}
	}
	return Balance{Amount: signed, Type: normal}
}

// Signed re-expresses the balance as a quantity signed in the given
// account nature's terms, for callers that accumulate across accounts.
func (b Balance) Signed(nature accounts.Nature) decimal.Decimal {
	return signedFromBalance(nature, b)
}

// signedFromBalance is the inverse of balanceFromSigned.
func signedFromBalance(nature accounts.Nature, b Balance) decimal.Decimal {
	normal := BalanceDebit
	if nature == accounts.NatureCredit {
		normal = BalanceCredit
	}
	if b.Type == normal {
		return b.Amount
	}
	return b.Amount.Neg()
}

// monthStart truncates a date to the first day of its month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
