package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// AccountDirectory is the slice of the accounts module the ledger needs.
// accounts.Repository satisfies it.
type AccountDirectory interface {
	List(ctx context.Context) ([]accounts.Account, error)
	GetByCode(ctx context.Context, code string) (accounts.Account, error)
}

// Service answers balance queries and produces ledger and trial balance
// reports. All methods are read-only except RecomputeMonthlySnapshots.
type Service struct {
	dir       AccountDirectory
	vouchers  VoucherSource
	snapshots SnapshotStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs the ledger service.
func NewService(dir AccountDirectory, vouchers VoucherSource, snapshots SnapshotStore, logger *slog.Logger) *Service {
	return &Service{dir: dir, vouchers: vouchers, snapshots: snapshots, logger: logger, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// AccountBalance computes an account's balance as of a date, seeded from the
// most recent final monthly snapshot strictly before the month of asOf so the
// live summation window stays bounded. The snapshot path and a full line scan
// from the opening date give the same answer; only the cost differs.
func (s *Service) AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (Balance, error) {
	acct, err := s.dir.GetByCode(ctx, accountCode)
	if err != nil {
		return Balance{}, err
	}
	return s.BalanceFor(ctx, acct, asOf)
}

// BalanceFor is AccountBalance for an already-resolved account.
func (s *Service) BalanceFor(ctx context.Context, acct accounts.Account, asOf time.Time) (Balance, error) {
	opening, windowStart, err := s.seed(ctx, acct, asOf)
	if err != nil {
		return Balance{}, err
	}
	signed := opening
	if !windowStart.After(asOf) {
		sum, err := s.vouchers.SumLines(ctx, acct.Code, windowStart, asOf)
		if err != nil {
			return Balance{}, err
		}
		signed = signed.Add(natureNet(acct.Nature, sum.Debits, sum.Credits))
	}
	return balanceFromSigned(acct.Nature, signed), nil
}

// seed picks the summation starting point: the closing balance of the latest
// final snapshot before asOf's month, or the account's static opening balance
// when no snapshot exists yet.
func (s *Service) seed(ctx context.Context, acct accounts.Account, asOf time.Time) (decimal.Decimal, time.Time, error) {
	snap, ok, err := s.snapshots.LatestFinalBefore(ctx, acct.ID, asOf.Year(), asOf.Month())
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if !ok {
		return acct.OpeningBalance, acct.OpeningDate, nil
	}
	next := time.Date(snap.Year, snap.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return snap.Closing, next, nil
}

// PeriodActivity sums posted debits and credits for an account over a date
// range. An account with no activity yields zero sums, never an error.
func (s *Service) PeriodActivity(ctx context.Context, accountCode string, from, to time.Time) (LineSum, error) {
	if to.Before(from) {
		return LineSum{}, ErrInvalidRange
	}
	return s.vouchers.SumLines(ctx, accountCode, from, to)
}

// AccountLedger returns the ordered entries for an account with running
// balances, plus opening and closing balances for the range.
func (s *Service) AccountLedger(ctx context.Context, accountCode string, from, to *time.Time) (Ledger, error) {
	acct, err := s.dir.GetByCode(ctx, accountCode)
	if err != nil {
		return Ledger{}, err
	}

	toDate := s.now()
	if to != nil {
		toDate = *to
	}

	var opening Balance
	windowStart := acct.OpeningDate
	if from != nil {
		if toDate.Before(*from) {
			return Ledger{}, ErrInvalidRange
		}
		// Opening is the balance at the instant before the range starts.
		opening, err = s.BalanceFor(ctx, acct, from.AddDate(0, 0, -1))
		if err != nil {
			return Ledger{}, err
		}
		windowStart = *from
	} else {
		opening = balanceFromSigned(acct.Nature, acct.OpeningBalance)
	}

	lines, err := s.vouchers.Lines(ctx, acct.Code, windowStart, toDate)
	if err != nil {
		return Ledger{}, err
	}

	// The running balance walks a signed quantity in nature terms; each
	// entry is re-expressed as absolute amount plus side for display.
	running := signedFromBalance(acct.Nature, opening)
	entries := make([]LedgerEntry, 0, len(lines))
	for _, line := range lines {
		running = running.Add(natureNet(acct.Nature, line.Debit, line.Credit))
		entries = append(entries, LedgerEntry{
			VoucherLine: line,
			Running:     balanceFromSigned(acct.Nature, running),
		})
	}

	return Ledger{
		AccountCode: acct.Code,
		AccountName: acct.Name,
		From:        from,
		To:          toDate,
		Opening:     opening,
		Entries:     entries,
		Closing:     balanceFromSigned(acct.Nature, running),
	}, nil
}

// TrialBalance buckets every postable account's balance into a debit or
// credit column by its computed balance type, not its static nature.
// Control and sub-control accounts are rollups of their children and would
// double count.
func (s *Service) TrialBalance(ctx context.Context, asOf *time.Time) (TrialBalance, error) {
	date := s.now()
	if asOf != nil {
		date = *asOf
	}

	accts, err := s.dir.List(ctx)
	if err != nil {
		return TrialBalance{}, err
	}

	tb := TrialBalance{AsOf: date}
	for _, acct := range accts {
		if !acct.IsPostable() {
			continue
		}
		b, err := s.BalanceFor(ctx, acct, date)
		if err != nil {
			return TrialBalance{}, err
		}
		row := TrialBalanceRow{Code: acct.Code, Name: acct.Name}
		if b.Type == BalanceDebit {
			row.Debit = b.Amount
			tb.TotalDebit = tb.TotalDebit.Add(b.Amount)
		} else {
			row.Credit = b.Amount
			tb.TotalCredit = tb.TotalCredit.Add(b.Amount)
		}
		tb.Rows = append(tb.Rows, row)
	}

	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.IsBalanced = tb.Difference.Abs().LessThan(balanceTolerance)
	if !tb.IsBalanced && s.logger != nil {
		s.logger.Warn("trial balance out of balance",
			slog.String("difference", tb.Difference.StringFixed(2)),
			slog.Time("as_of", date))
	}
	return tb, nil
}
