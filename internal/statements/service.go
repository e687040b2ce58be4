package statements

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/frostline-erp/frostline/internal/accounts"
	"github.com/frostline-erp/frostline/internal/ledger"
)

// AccountDirectory is the slice of the accounts module statement generation
// needs. accounts.Repository satisfies it.
type AccountDirectory interface {
	List(ctx context.Context) ([]accounts.Account, error)
}

// LedgerReader answers the balance and activity queries statements are built
// from. ledger.Service satisfies it.
type LedgerReader interface {
	BalanceFor(ctx context.Context, acct accounts.Account, asOf time.Time) (ledger.Balance, error)
	PeriodActivity(ctx context.Context, accountCode string, from, to time.Time) (ledger.LineSum, error)
}

// Service generates financial statement documents. Documents are cached
// per period under a version key and concurrent identical builds are
// collapsed through singleflight; both layers are correctness-neutral since
// generation is a pure read.
type Service struct {
	dir     AccountDirectory
	ledger  LedgerReader
	cache   *Cache
	logger  *slog.Logger
	taxRate decimal.Decimal
	now     func() time.Time
	group   singleflight.Group
}

// NewService constructs the statements service. taxRate is a percentage.
func NewService(dir AccountDirectory, lr LedgerReader, cache *Cache, logger *slog.Logger, taxRate float64) *Service {
	return &Service{
		dir:     dir,
		ledger:  lr,
		cache:   cache,
		logger:  logger,
		taxRate: decimal.NewFromFloat(taxRate),
		now:     time.Now,
	}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// BalanceSheet generates the balance sheet as of a date.
func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	var doc BalanceSheet
	err := s.fetch(ctx, keyBalanceSheet(asOf), &doc, func(ctx context.Context) (interface{}, error) {
		return s.buildBalanceSheet(ctx, asOf)
	})
	return doc, err
}

// IncomeStatement generates the profit and loss document for a period.
func (s *Service) IncomeStatement(ctx context.Context, from, to time.Time) (IncomeStatement, error) {
	if to.Before(from) {
		return IncomeStatement{}, ErrInvalidRange
	}
	var doc IncomeStatement
	err := s.fetch(ctx, keyIncome(from, to), &doc, func(ctx context.Context) (interface{}, error) {
		return s.buildIncomeStatement(ctx, from, to)
	})
	return doc, err
}

// CashFlow generates the indirect-method cash flow statement for a period.
func (s *Service) CashFlow(ctx context.Context, from, to time.Time) (CashFlow, error) {
	if to.Before(from) {
		return CashFlow{}, ErrInvalidRange
	}
	var doc CashFlow
	err := s.fetch(ctx, keyCashFlow(from, to), &doc, func(ctx context.Context) (interface{}, error) {
		return s.buildCashFlow(ctx, from, to)
	})
	return doc, err
}

// Analysis generates the ratio analysis document for a period.
func (s *Service) Analysis(ctx context.Context, from, to time.Time) (FinancialAnalysis, error) {
	if to.Before(from) {
		return FinancialAnalysis{}, ErrInvalidRange
	}
	var doc FinancialAnalysis
	err := s.fetch(ctx, keyAnalysis(from, to), &doc, func(ctx context.Context) (interface{}, error) {
		return s.buildAnalysis(ctx, from, to)
	})
	return doc, err
}

// fetch runs the cache-then-singleflight-then-build pipeline shared by all
// document kinds.
func (s *Service) fetch(ctx context.Context, parts []string, dest interface{}, build func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, func(ctx context.Context) (interface{}, error) {
		ch := s.group.DoChan(key, func() (interface{}, error) {
			return build(ctx)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			return res.Val, res.Err
		}
	})
}

func (s *Service) buildBalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	accts, err := s.detailAccounts(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}
	balances, err := s.balancesAsOf(ctx, accts, asOf, isBalanceSheetAccount)
	if err != nil {
		return BalanceSheet{}, err
	}
	profit, err := s.currentYearProfit(ctx, accts, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BuildBalanceSheet(asOf, balances, profit, s.logger), nil
}

func (s *Service) buildIncomeStatement(ctx context.Context, from, to time.Time) (IncomeStatement, error) {
	accts, err := s.detailAccounts(ctx)
	if err != nil {
		return IncomeStatement{}, err
	}
	activity, err := s.activityBetween(ctx, accts, from, to, isIncomeAccount)
	if err != nil {
		return IncomeStatement{}, err
	}
	return BuildIncomeStatement(from, to, activity, s.taxRate), nil
}

func (s *Service) buildCashFlow(ctx context.Context, from, to time.Time) (CashFlow, error) {
	accts, err := s.detailAccounts(ctx)
	if err != nil {
		return CashFlow{}, err
	}
	activity, err := s.activityBetween(ctx, accts, from, to, isIncomeAccount)
	if err != nil {
		return CashFlow{}, err
	}
	start, err := s.balancesAsOf(ctx, accts, from.AddDate(0, 0, -1), isBalanceSheetAccount)
	if err != nil {
		return CashFlow{}, err
	}
	end, err := s.balancesAsOf(ctx, accts, to, isBalanceSheetAccount)
	if err != nil {
		return CashFlow{}, err
	}
	expenses := make([]AccountAmount, 0, len(activity))
	for _, a := range activity {
		if a.Account.Category == accounts.CategoryExpense {
			expenses = append(expenses, a)
		}
	}
	return BuildCashFlow(from, to, CashFlowInput{
		NetIncome:       s.netIncomeFrom(activity),
		ExpenseActivity: expenses,
		Start:           start,
		End:             end,
	}), nil
}

func (s *Service) buildAnalysis(ctx context.Context, from, to time.Time) (FinancialAnalysis, error) {
	accts, err := s.detailAccounts(ctx)
	if err != nil {
		return FinancialAnalysis{}, err
	}
	balances, err := s.balancesAsOf(ctx, accts, to, isBalanceSheetAccount)
	if err != nil {
		return FinancialAnalysis{}, err
	}
	activity, err := s.activityBetween(ctx, accts, from, to, isIncomeAccount)
	if err != nil {
		return FinancialAnalysis{}, err
	}
	profit, err := s.currentYearProfit(ctx, accts, to)
	if err != nil {
		return FinancialAnalysis{}, err
	}

	in := AnalysisInput{NetIncome: s.netIncomeFrom(activity)}
	var cogs, opex decimal.Decimal
	for _, b := range balances {
		switch b.Account.Category {
		case accounts.CategoryAsset:
			in.TotalAssets = in.TotalAssets.Add(b.Amount)
			if isCurrentAsset(b.Account) {
				in.CurrentAssets = in.CurrentAssets.Add(b.Amount)
			}
			if isInventoryLike(b.Account.Name) {
				in.Inventory = in.Inventory.Add(b.Amount)
			}
			if isReceivableLike(b.Account.Name) {
				in.Receivables = in.Receivables.Add(b.Amount)
			}
		case accounts.CategoryLiability:
			in.TotalLiabilities = in.TotalLiabilities.Add(b.Amount)
			if isCurrentLiability(b.Account) {
				in.CurrentLiabilities = in.CurrentLiabilities.Add(b.Amount)
			}
		case accounts.CategoryEquity:
			in.TotalEquity = in.TotalEquity.Add(b.Amount)
		}
	}
	in.TotalEquity = in.TotalEquity.Add(profit)
	for _, a := range activity {
		switch a.Account.Category {
		case accounts.CategoryRevenue:
			in.TotalRevenue = in.TotalRevenue.Add(a.Amount)
		case accounts.CategoryExpense:
			if a.Account.SubCategory == accounts.SubCostOfGoodsSold {
				cogs = cogs.Add(a.Amount)
			} else if a.Account.SubCategory != accounts.SubFinancial {
				opex = opex.Add(a.Amount)
			}
		}
	}
	in.CostOfGoodsSold = cogs
	in.GrossProfit = in.TotalRevenue.Sub(cogs)
	in.OperatingIncome = in.GrossProfit.Sub(opex)

	return BuildAnalysis(from, to, in), nil
}

// detailAccounts returns the postable accounts statements aggregate over.
// Control and sub-control balances are rollups of their detail children;
// including both would double count.
func (s *Service) detailAccounts(ctx context.Context) ([]accounts.Account, error) {
	all, err := s.dir.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]accounts.Account, 0, len(all))
	for _, a := range all {
		if a.IsPostable() {
			details = append(details, a)
		}
	}
	return details, nil
}

func (s *Service) balancesAsOf(ctx context.Context, accts []accounts.Account, asOf time.Time, keep func(accounts.Account) bool) ([]AccountAmount, error) {
	out := make([]AccountAmount, 0, len(accts))
	for _, acct := range accts {
		if !keep(acct) {
			continue
		}
		bal, err := s.ledger.BalanceFor(ctx, acct, asOf)
		if err != nil {
			return nil, err
		}
		out = append(out, AccountAmount{Account: acct, Amount: bal.Signed(acct.Nature)})
	}
	return out, nil
}

func (s *Service) activityBetween(ctx context.Context, accts []accounts.Account, from, to time.Time, keep func(accounts.Account) bool) ([]AccountAmount, error) {
	out := make([]AccountAmount, 0, len(accts))
	for _, acct := range accts {
		if !keep(acct) {
			continue
		}
		sum, err := s.ledger.PeriodActivity(ctx, acct.Code, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, AccountAmount{Account: acct, Amount: signedActivity(acct.Nature, sum)})
	}
	return out, nil
}

// currentYearProfit computes revenue minus expense activity from the start
// of asOf's calendar year through asOf. It feeds the balance sheet's equity
// section; it is derived, never read from a stored account.
func (s *Service) currentYearProfit(ctx context.Context, accts []accounts.Account, asOf time.Time) (decimal.Decimal, error) {
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	activity, err := s.activityBetween(ctx, accts, yearStart, asOf, isIncomeAccount)
	if err != nil {
		return decimal.Zero, err
	}
	profit := decimal.Zero
	for _, a := range activity {
		if a.Account.Category == accounts.CategoryRevenue {
			profit = profit.Add(a.Amount)
		} else {
			profit = profit.Sub(a.Amount)
		}
	}
	return profit, nil
}

// netIncomeFrom computes full-precision net income from income statement
// activity, applying the tax rate only to positive pre-tax income.
func (s *Service) netIncomeFrom(activity []AccountAmount) decimal.Decimal {
	revenue, expense := decimal.Zero, decimal.Zero
	for _, a := range activity {
		if a.Account.Category == accounts.CategoryRevenue {
			revenue = revenue.Add(a.Amount)
		} else {
			expense = expense.Add(a.Amount)
		}
	}
	before := revenue.Sub(expense)
	if !before.IsPositive() {
		return before
	}
	tax := before.Mul(s.taxRate).Div(decimal.NewFromInt(100))
	return before.Sub(tax)
}

func isBalanceSheetAccount(a accounts.Account) bool {
	switch a.Category {
	case accounts.CategoryAsset, accounts.CategoryLiability, accounts.CategoryEquity:
		return true
	}
	return false
}

func isIncomeAccount(a accounts.Account) bool {
	return a.Category == accounts.CategoryRevenue || a.Category == accounts.CategoryExpense
}

func signedActivity(nature accounts.Nature, sum ledger.LineSum) decimal.Decimal {
	if nature == accounts.NatureDebit {
		return sum.Debits.Sub(sum.Credits)
	}
	return sum.Credits.Sub(sum.Debits)
}
