package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// RecomputeMonthlySnapshots rebuilds monthly balance checkpoints for every
// account, month by month from the earliest posted voucher through upTo.
// Months already marked final are carried forward untouched, which makes the
// pass idempotent; the current month is rewritten on every run as vouchers
// keep posting. Returns the number of months processed.
//
// Callers must serialize runs (shared.AdvisoryLock in the jobs layer): each
// month commits atomically but interleaved runs would waste work racing over
// the same non-final rows.
func (s *Service) RecomputeMonthlySnapshots(ctx context.Context, upTo time.Time) (int, error) {
	earliest, ok, err := s.vouchers.EarliestVoucherDate(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		if s.logger != nil {
			s.logger.Info("snapshot recompute skipped, no posted vouchers")
		}
		return 0, nil
	}

	accts, err := s.dir.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	cursor := monthStart(earliest)
	end := monthStart(upTo)

	// closing balance carried from the previous processed month, signed in
	// nature terms; seeded lazily from the static opening balance.
	carry := make(map[int64]decimal.Decimal, len(accts))
	seeded := make(map[int64]bool, len(accts))

	months := 0
	for !cursor.After(end) {
		if err := ctx.Err(); err != nil {
			return months, err
		}
		next := cursor.AddDate(0, 1, 0)
		monthEnd := next.AddDate(0, 0, -1)
		final := !next.After(now)

		pending := make([]MonthlyBalance, 0, len(accts))
		for _, acct := range accts {
			opening := acct.OpeningBalance
			if seeded[acct.ID] {
				opening = carry[acct.ID]
			}

			existing, found, err := s.snapshots.Get(ctx, acct.ID, cursor.Year(), cursor.Month())
			if err != nil {
				return months, err
			}
			if found && existing.IsFinal {
				// Final rows are immutable history; only carry the closing.
				carry[acct.ID] = existing.Closing
				seeded[acct.ID] = true
				continue
			}

			sum, err := s.vouchers.SumLines(ctx, acct.Code, cursor, monthEnd)
			if err != nil {
				return months, err
			}
			closing := opening.Add(natureNet(acct.Nature, sum.Debits, sum.Credits))

			pending = append(pending, MonthlyBalance{
				AccountID: acct.ID,
				Year:      cursor.Year(),
				Month:     cursor.Month(),
				Opening:   opening,
				Debits:    sum.Debits,
				Credits:   sum.Credits,
				Closing:   closing,
				IsFinal:   final,
			})

			carry[acct.ID] = closing
			seeded[acct.ID] = true
		}

		if err := s.snapshots.UpsertMonth(ctx, pending); err != nil {
			return months, err
		}

		months++
		cursor = next
	}

	if s.logger != nil {
		s.logger.Info("snapshot recompute finished",
			slog.Int("months", months),
			slog.Int("accounts", len(accts)),
			slog.Time("up_to", end))
	}
	return months, nil
}
