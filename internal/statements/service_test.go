package statements

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostline-erp/frostline/internal/accounts"
	"github.com/frostline-erp/frostline/internal/ledger"
)

type fakeDirectory struct {
	accounts []accounts.Account
}

func (f *fakeDirectory) List(ctx context.Context) ([]accounts.Account, error) {
	return f.accounts, nil
}

type fakeLedger struct {
	balances     map[string]decimal.Decimal // "code|date" -> signed balance
	activity     map[string]ledger.LineSum  // "code|from|to"
	queriedCodes []string
}

func (f *fakeLedger) BalanceFor(ctx context.Context, acct accounts.Account, asOf time.Time) (ledger.Balance, error) {
	f.queriedCodes = append(f.queriedCodes, acct.Code)
	signed := f.balances[acct.Code+"|"+asOf.Format(dateLayout)]
	typ := ledger.BalanceDebit
	if acct.Nature == accounts.NatureCredit {
		typ = ledger.BalanceCredit
	}
	if signed.IsNegative() {
		signed = signed.Neg()
		if typ == ledger.BalanceDebit {
			typ = ledger.BalanceCredit
		} else {
			typ = ledger.BalanceDebit
		}
	}
	return ledger.Balance{Amount: signed, Type: typ}, nil
}

func (f *fakeLedger) PeriodActivity(ctx context.Context, code string, from, to time.Time) (ledger.LineSum, error) {
	return f.activity[code+"|"+from.Format(dateLayout)+"|"+to.Format(dateLayout)], nil
}

func newTestService(dir *fakeDirectory, lr *fakeLedger) *Service {
	svc := NewService(dir, lr, nil, nil, 25)
	svc.WithNow(func() time.Time { return date(2025, 6, 15) })
	return svc
}

func TestBalanceSheetDerivesCurrentYearProfit(t *testing.T) {
	cash := cashAccount("1-0001", "Cash")
	capital := detail("3-0001", "Share Capital", accounts.CategoryEquity, accounts.SubShareCapital)
	revenue := detail("4-0001", "Cold Storage Fees", accounts.CategoryRevenue, accounts.SubOperatingRevenue)

	lr := &fakeLedger{
		balances: map[string]decimal.Decimal{
			"1-0001|2025-06-30": dec("1100"),
			"3-0001|2025-06-30": dec("1000"),
		},
		activity: map[string]ledger.LineSum{
			"4-0001|2025-01-01|2025-06-30": {Credits: dec("100")},
		},
	}
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{cash, capital, revenue}}, lr)

	bs, err := svc.BalanceSheet(context.Background(), date(2025, 6, 30))
	require.NoError(t, err)

	assert.Equal(t, 1100.0, bs.TotalAssets)
	assert.Equal(t, 1100.0, bs.TotalEquity)
	assert.True(t, bs.IsBalanced)
	profit := bs.Equity.Items[len(bs.Equity.Items)-1]
	assert.Equal(t, "Current Year Profit", profit.Label)
	assert.Equal(t, 100.0, profit.Amount)
}

func TestBalanceSheetSkipsControlAccounts(t *testing.T) {
	control := accounts.Account{
		ID:       900,
		Code:     "1",
		Name:     "Assets",
		Type:     accounts.TypeControl,
		Nature:   accounts.NatureDebit,
		Category: accounts.CategoryAsset,
	}
	cash := cashAccount("1-0001", "Cash")

	lr := &fakeLedger{balances: map[string]decimal.Decimal{}, activity: map[string]ledger.LineSum{}}
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{control, cash}}, lr)

	_, err := svc.BalanceSheet(context.Background(), date(2025, 6, 30))
	require.NoError(t, err)
	assert.NotContains(t, lr.queriedCodes, "1")
}

func TestIncomeStatementRejectsInvertedRange(t *testing.T) {
	svc := newTestService(&fakeDirectory{}, &fakeLedger{})

	_, err := svc.IncomeStatement(context.Background(), date(2025, 6, 30), date(2025, 1, 1))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestCashFlowUsesDayBeforePeriodAsStart(t *testing.T) {
	cash := cashAccount("1-0001", "Cash")

	lr := &fakeLedger{
		balances: map[string]decimal.Decimal{
			"1-0001|2024-12-31": dec("500"),
			"1-0001|2025-06-30": dec("800"),
		},
		activity: map[string]ledger.LineSum{},
	}
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{cash}}, lr)

	cf, err := svc.CashFlow(context.Background(), date(2025, 1, 1), date(2025, 6, 30))
	require.NoError(t, err)

	assert.Equal(t, 500.0, cf.CashBeginning)
	assert.Equal(t, 800.0, cf.CashEnding)
}

func TestAnalysisComposesFromLedgerFigures(t *testing.T) {
	cash := cashAccount("1-0001", "Cash")
	payable := detail("2-0001", "Trade Payables", accounts.CategoryLiability, accounts.SubCurrentLiability)
	revenue := detail("4-0001", "Cold Storage Fees", accounts.CategoryRevenue, accounts.SubOperatingRevenue)

	lr := &fakeLedger{
		balances: map[string]decimal.Decimal{
			"1-0001|2025-06-30": dec("2000"),
			"2-0001|2025-06-30": dec("1000"),
		},
		activity: map[string]ledger.LineSum{
			"4-0001|2025-01-01|2025-06-30": {Credits: dec("4000")},
		},
	}
	svc := newTestService(&fakeDirectory{accounts: []accounts.Account{cash, payable, revenue}}, lr)

	fa, err := svc.Analysis(context.Background(), date(2025, 1, 1), date(2025, 6, 30))
	require.NoError(t, err)

	assert.Equal(t, 2.0, ratioValue(t, fa.Liquidity, "Current Ratio"))
	assert.Equal(t, 2.0, ratioValue(t, fa.Efficiency, "Asset Turnover"))
}
