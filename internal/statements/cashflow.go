package statements

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// CashFlowInput carries the precomputed figures the indirect method works
// from. Start holds nature-signed balances the day before the period opens,
// End holds balances at the period close, both over the same balance sheet
// accounts.
type CashFlowInput struct {
	NetIncome       decimal.Decimal
	ExpenseActivity []AccountAmount
	Start           []AccountAmount
	End             []AccountAmount
}

type accountDelta struct {
	account accounts.Account
	delta   decimal.Decimal
}

// BuildCashFlow derives the indirect-method cash flow statement. Working
// capital lines use the receivable/inventory/payable name heuristics; a
// growing receivable or inventory consumes cash, a growing payable frees it.
func BuildCashFlow(from, to time.Time, in CashFlowInput) CashFlow {
	deltas := balanceDeltas(in.Start, in.End)

	adjustments := Section{Label: "Non-Cash Adjustments"}
	netOperating := in.NetIncome
	for _, a := range in.ExpenseActivity {
		if !isNonCashExpense(a.Account.Name) || a.Amount.IsZero() {
			continue
		}
		adjustments.Items = append(adjustments.Items, LineItem{
			Code:   a.Account.Code,
			Label:  a.Account.Name,
			Amount: round2(a.Amount),
			Level:  1,
		})
		netOperating = netOperating.Add(a.Amount)
	}
	adjustments.Subtotal = round2(netOperating.Sub(in.NetIncome))

	workingCapital := Section{Label: "Working Capital Changes"}
	investing := Section{Label: "Investing Activities"}
	financing := Section{Label: "Financing Activities"}
	wcTotal, invTotal, finTotal := decimal.Zero, decimal.Zero, decimal.Zero
	cashBeginning, cashEnding := decimal.Zero, decimal.Zero

	for _, d := range deltas {
		acc := d.account
		if acc.IsCashAccount || acc.IsBankAccount {
			continue
		}
		switch {
		case acc.Category == accounts.CategoryAsset && (isReceivableLike(acc.Name) || isInventoryLike(acc.Name)):
			wcTotal = appendLine(&workingCapital, acc, d.delta.Neg(), wcTotal)
		case acc.Category == accounts.CategoryLiability && isPayableLike(acc.Name):
			wcTotal = appendLine(&workingCapital, acc, d.delta, wcTotal)
		case acc.Category == accounts.CategoryAsset && isFixedOrIntangible(acc):
			invTotal = appendLine(&investing, acc, d.delta.Neg(), invTotal)
		case acc.Category == accounts.CategoryLiability && acc.SubCategory == accounts.SubLongTermLiability,
			acc.Category == accounts.CategoryEquity:
			finTotal = appendLine(&financing, acc, d.delta, finTotal)
		}
	}
	workingCapital.Subtotal = round2(wcTotal)
	investing.Subtotal = round2(invTotal)
	financing.Subtotal = round2(finTotal)
	netOperating = netOperating.Add(wcTotal)

	for _, b := range in.Start {
		if b.Account.IsCashAccount || b.Account.IsBankAccount {
			cashBeginning = cashBeginning.Add(b.Amount)
		}
	}
	for _, b := range in.End {
		if b.Account.IsCashAccount || b.Account.IsBankAccount {
			cashEnding = cashEnding.Add(b.Amount)
		}
	}

	netChange := netOperating.Add(invTotal).Add(finTotal)

	return CashFlow{
		From:           from.Format("2006-01-02"),
		To:             to.Format("2006-01-02"),
		NetIncome:      round2(in.NetIncome),
		Adjustments:    adjustments,
		WorkingCapital: workingCapital,
		NetOperating:   round2(netOperating),
		Investing:      investing,
		NetInvesting:   round2(invTotal),
		Financing:      financing,
		NetFinancing:   round2(finTotal),
		NetChange:      round2(netChange),
		CashBeginning:  round2(cashBeginning),
		CashEnding:     round2(cashEnding),
		Reconciles:     cashBeginning.Add(netChange).Sub(cashEnding).Abs().LessThan(balanceTolerance),
	}
}

// balanceDeltas pairs start and end balances by account, yielding end minus
// start for every account seen on either side, ordered by code.
func balanceDeltas(start, end []AccountAmount) []accountDelta {
	opening := make(map[int64]decimal.Decimal, len(start))
	for _, b := range start {
		opening[b.Account.ID] = b.Amount
	}
	seen := make(map[int64]bool, len(end))
	deltas := make([]accountDelta, 0, len(end))
	for _, b := range end {
		seen[b.Account.ID] = true
		deltas = append(deltas, accountDelta{
			account: b.Account,
			delta:   b.Amount.Sub(opening[b.Account.ID]),
		})
	}
	for _, b := range start {
		if !seen[b.Account.ID] {
			deltas = append(deltas, accountDelta{account: b.Account, delta: b.Amount.Neg()})
		}
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].account.Code < deltas[j].account.Code
	})
	return deltas
}

func appendLine(section *Section, acc accounts.Account, amount, total decimal.Decimal) decimal.Decimal {
	if amount.IsZero() {
		return total
	}
	section.Items = append(section.Items, LineItem{
		Code:   acc.Code,
		Label:  acc.Name,
		Amount: round2(amount),
		Level:  1,
	})
	return total.Add(amount)
}
