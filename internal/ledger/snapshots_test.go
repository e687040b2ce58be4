package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frostline-erp/frostline/internal/accounts"
)

func TestRecomputeProducesJanuarySnapshot(t *testing.T) {
	acct := cashAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 10), "JV-001", 500, 0)
	vouchers.add(acct.Code, date(2025, time.January, 20), "JV-002", 0, 200)
	snapshots := newFakeSnapshots()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, snapshots)

	months, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.February, 1))
	require.NoError(t, err)
	require.Equal(t, 2, months)

	jan, ok, err := snapshots.Get(context.Background(), acct.ID, 2025, time.January)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, jan.Opening.IsZero())
	require.True(t, jan.Debits.Equal(dec(500)))
	require.True(t, jan.Credits.Equal(dec(200)))
	require.True(t, jan.Closing.Equal(dec(300)))
	require.True(t, jan.IsFinal)
}

func TestRecomputeChainsOpeningFromPriorClosing(t *testing.T) {
	acct := cashAccount()
	acct.OpeningBalance = dec(100)
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 10), "JV-001", 500, 0)
	vouchers.add(acct.Code, date(2025, time.February, 14), "JV-002", 0, 250)
	snapshots := newFakeSnapshots()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, snapshots)

	_, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.February, 28))
	require.NoError(t, err)

	jan, _, err := snapshots.Get(context.Background(), acct.ID, 2025, time.January)
	require.NoError(t, err)
	feb, _, err := snapshots.Get(context.Background(), acct.ID, 2025, time.February)
	require.NoError(t, err)

	require.True(t, jan.Opening.Equal(dec(100)))
	require.True(t, jan.Closing.Equal(dec(600)))
	require.True(t, feb.Opening.Equal(jan.Closing), "february opening must equal january closing")
	require.True(t, feb.Closing.Equal(dec(350)))
}

func TestRecomputeIsIdempotentForFinalMonths(t *testing.T) {
	acct := cashAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 10), "JV-001", 500, 0)
	vouchers.add(acct.Code, date(2025, time.February, 14), "JV-002", 0, 250)
	snapshots := newFakeSnapshots()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, snapshots)

	_, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.March, 31))
	require.NoError(t, err)

	firstRun := make(map[snapshotKey]MonthlyBalance, len(snapshots.rows))
	for k, v := range snapshots.rows {
		firstRun[k] = v
	}
	writesAfterFirst := snapshots.upserts

	_, err = svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.March, 31))
	require.NoError(t, err)

	require.Equal(t, firstRun, snapshots.rows)
	// Final months must be skipped, not rewritten.
	require.Equal(t, writesAfterFirst, snapshots.upserts)
}

func TestRecomputeCurrentMonthStaysOpen(t *testing.T) {
	acct := cashAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.June, 2), "JV-001", 75, 0)
	snapshots := newFakeSnapshots()
	// now is 2025-06-15, so June is still in progress.
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, snapshots)

	_, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.June, 30))
	require.NoError(t, err)

	june, ok, err := snapshots.Get(context.Background(), acct.ID, 2025, time.June)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, june.IsFinal)

	// More vouchers post; a re-run must pick them up for the open month.
	vouchers.add(acct.Code, date(2025, time.June, 10), "JV-002", 25, 0)
	_, err = svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.June, 30))
	require.NoError(t, err)

	june, _, err = snapshots.Get(context.Background(), acct.ID, 2025, time.June)
	require.NoError(t, err)
	require.True(t, june.Debits.Equal(dec(100)), "got %s", june.Debits)
}

func TestRecomputeWithoutVouchersIsNoop(t *testing.T) {
	snapshots := newFakeSnapshots()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{cashAccount()}}, &fakeVouchers{}, snapshots)

	months, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.June, 30))
	require.NoError(t, err)
	require.Zero(t, months)
	require.Empty(t, snapshots.rows)
}

func TestSnapshotInvariantClosingEqualsOpeningPlusNet(t *testing.T) {
	acct := revenueAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 8), "JV-001", 0, 800)
	vouchers.add(acct.Code, date(2025, time.January, 21), "JV-002", 120, 0)
	snapshots := newFakeSnapshots()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, snapshots)

	_, err := svc.RecomputeMonthlySnapshots(context.Background(), date(2025, time.January, 31))
	require.NoError(t, err)

	jan, _, err := snapshots.Get(context.Background(), acct.ID, 2025, time.January)
	require.NoError(t, err)
	// Credit nature: closing = opening + credits - debits.
	want := jan.Opening.Add(jan.Credits.Sub(jan.Debits))
	require.True(t, jan.Closing.Equal(want))
}
