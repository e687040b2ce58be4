package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frostline-erp/frostline/internal/accounts"
)

func TestAccountLedgerRunningBalances(t *testing.T) {
	acct := cashAccount()
	acct.OpeningBalance = dec(100)
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 20), "JV-002", 0, 300)
	vouchers.add(acct.Code, date(2025, time.January, 10), "JV-001", 150, 0)
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, newFakeSnapshots())

	l, err := svc.AccountLedger(context.Background(), acct.Code, nil, nil)
	require.NoError(t, err)

	require.True(t, l.Opening.Amount.Equal(dec(100)))
	require.Equal(t, BalanceDebit, l.Opening.Type)
	require.Len(t, l.Entries, 2)

	// Ordered by date then voucher number.
	require.Equal(t, "JV-001", l.Entries[0].VoucherNumber)
	require.True(t, l.Entries[0].Running.Amount.Equal(dec(250)))
	require.Equal(t, BalanceDebit, l.Entries[0].Running.Type)

	// 250 - 300 = -50 flips to the credit side for display.
	require.Equal(t, "JV-002", l.Entries[1].VoucherNumber)
	require.True(t, l.Entries[1].Running.Amount.Equal(dec(50)))
	require.Equal(t, BalanceCredit, l.Entries[1].Running.Type)

	require.True(t, l.Closing.Amount.Equal(dec(50)))
	require.Equal(t, BalanceCredit, l.Closing.Type)
}

func TestAccountLedgerFromDateSeedsOpening(t *testing.T) {
	acct := cashAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 10), "JV-001", 400, 0)
	vouchers.add(acct.Code, date(2025, time.February, 5), "JV-002", 0, 100)
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, newFakeSnapshots())

	from := date(2025, time.February, 1)
	to := date(2025, time.February, 28)
	l, err := svc.AccountLedger(context.Background(), acct.Code, &from, &to)
	require.NoError(t, err)

	// Opening is the balance the instant before Feb 1: the January activity.
	require.True(t, l.Opening.Amount.Equal(dec(400)))
	require.Len(t, l.Entries, 1)
	require.True(t, l.Closing.Amount.Equal(dec(300)))
	require.Equal(t, BalanceDebit, l.Closing.Type)
}

func TestAccountLedgerCreditNatureRunning(t *testing.T) {
	acct := revenueAccount()
	vouchers := &fakeVouchers{}
	vouchers.add(acct.Code, date(2025, time.January, 5), "JV-001", 0, 700)
	vouchers.add(acct.Code, date(2025, time.January, 15), "JV-002", 200, 0)
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, vouchers, newFakeSnapshots())

	l, err := svc.AccountLedger(context.Background(), acct.Code, nil, nil)
	require.NoError(t, err)
	require.Len(t, l.Entries, 2)
	require.True(t, l.Entries[0].Running.Amount.Equal(dec(700)))
	require.Equal(t, BalanceCredit, l.Entries[0].Running.Type)
	require.True(t, l.Entries[1].Running.Amount.Equal(dec(500)))
	require.Equal(t, BalanceCredit, l.Entries[1].Running.Type)
}

func TestAccountLedgerRejectsInvertedRange(t *testing.T) {
	acct := cashAccount()
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{acct}}, &fakeVouchers{}, newFakeSnapshots())

	from := date(2025, time.March, 1)
	to := date(2025, time.February, 1)
	_, err := svc.AccountLedger(context.Background(), acct.Code, &from, &to)
	require.ErrorIs(t, err, ErrInvalidRange)
}
