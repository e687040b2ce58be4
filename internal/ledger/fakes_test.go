package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

type fakeDirectory struct {
	accounts []accounts.Account
}

func (f *fakeDirectory) List(ctx context.Context) ([]accounts.Account, error) {
	return append([]accounts.Account(nil), f.accounts...), nil
}

func (f *fakeDirectory) GetByCode(ctx context.Context, code string) (accounts.Account, error) {
	for _, a := range f.accounts {
		if a.Code == code {
			return a, nil
		}
	}
	return accounts.Account{}, ErrAccountNotFound
}

type fakeLine struct {
	accountCode string
	VoucherLine
}

// fakeVouchers serves sums and ordered lines from an in-memory slice,
// recording every SumLines window so tests can assert the snapshot seek
// actually bounded the scan.
type fakeVouchers struct {
	lines      []fakeLine
	sumWindows []time.Time
}

func (f *fakeVouchers) add(code string, date time.Time, number string, debit, credit float64) {
	f.lines = append(f.lines, fakeLine{
		accountCode: code,
		VoucherLine: VoucherLine{
			VoucherID:     int64(len(f.lines) + 1),
			VoucherNumber: number,
			VoucherDate:   date,
			Debit:         decimal.NewFromFloat(debit),
			Credit:        decimal.NewFromFloat(credit),
		},
	})
}

func (f *fakeVouchers) SumLines(ctx context.Context, accountCode string, from, to time.Time) (LineSum, error) {
	f.sumWindows = append(f.sumWindows, from)
	sum := LineSum{Debits: decimal.Zero, Credits: decimal.Zero}
	for _, l := range f.lines {
		if l.accountCode != accountCode || l.VoucherDate.Before(from) || l.VoucherDate.After(to) {
			continue
		}
		sum.Debits = sum.Debits.Add(l.Debit)
		sum.Credits = sum.Credits.Add(l.Credit)
	}
	return sum, nil
}

func (f *fakeVouchers) Lines(ctx context.Context, accountCode string, from, to time.Time) ([]VoucherLine, error) {
	var out []VoucherLine
	for _, l := range f.lines {
		if l.accountCode != accountCode || l.VoucherDate.Before(from) || l.VoucherDate.After(to) {
			continue
		}
		out = append(out, l.VoucherLine)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VoucherDate.Equal(out[j].VoucherDate) {
			return out[i].VoucherDate.Before(out[j].VoucherDate)
		}
		return out[i].VoucherNumber < out[j].VoucherNumber
	})
	return out, nil
}

func (f *fakeVouchers) EarliestVoucherDate(ctx context.Context) (time.Time, bool, error) {
	var earliest time.Time
	found := false
	for _, l := range f.lines {
		if !found || l.VoucherDate.Before(earliest) {
			earliest = l.VoucherDate
			found = true
		}
	}
	return earliest, found, nil
}

type snapshotKey struct {
	accountID int64
	year      int
	month     time.Month
}

type fakeSnapshots struct {
	rows    map[snapshotKey]MonthlyBalance
	upserts int
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{rows: make(map[snapshotKey]MonthlyBalance)}
}

func (f *fakeSnapshots) LatestFinalBefore(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error) {
	var best MonthlyBalance
	found := false
	limit := year*12 + int(month)
	for key, mb := range f.rows {
		if key.accountID != accountID || !mb.IsFinal {
			continue
		}
		ord := key.year*12 + int(key.month)
		if ord >= limit {
			continue
		}
		if !found || ord > best.Year*12+int(best.Month) {
			best = mb
			found = true
		}
	}
	return best, found, nil
}

func (f *fakeSnapshots) Get(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error) {
	mb, ok := f.rows[snapshotKey{accountID, year, month}]
	return mb, ok, nil
}

func (f *fakeSnapshots) UpsertMonth(ctx context.Context, rows []MonthlyBalance) error {
	f.upserts += len(rows)
	for _, mb := range rows {
		f.rows[snapshotKey{mb.AccountID, mb.Year, mb.Month}] = mb
	}
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
