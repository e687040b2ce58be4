package statements

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// BuildBalanceSheet partitions nature-signed balances into the balance sheet
// document. currentYearProfit is the computed revenue-minus-expense figure
// for the fiscal year to date, not a stored balance. An unbalanced sheet is
// surfaced with a warning and the discrepancy amount, never an error:
// auditors need to see it, not have it hidden behind a failure.
func BuildBalanceSheet(asOf time.Time, balances []AccountAmount, currentYearProfit decimal.Decimal, logger *slog.Logger) BalanceSheet {
	var currentAssets, nonCurrentAssets []AccountAmount
	var currentLiabilities, nonCurrentLiabilities []AccountAmount
	var shareCapital, reserves, retained, otherEquity []AccountAmount

	for _, b := range balances {
		switch b.Account.Category {
		case accounts.CategoryAsset:
			if isCurrentAsset(b.Account) {
				currentAssets = append(currentAssets, b)
			} else {
				nonCurrentAssets = append(nonCurrentAssets, b)
			}
		case accounts.CategoryLiability:
			if isCurrentLiability(b.Account) {
				currentLiabilities = append(currentLiabilities, b)
			} else {
				nonCurrentLiabilities = append(nonCurrentLiabilities, b)
			}
		case accounts.CategoryEquity:
			switch b.Account.SubCategory {
			case accounts.SubShareCapital:
				shareCapital = append(shareCapital, b)
			case accounts.SubReserves:
				reserves = append(reserves, b)
			case accounts.SubRetainedEarnings:
				retained = append(retained, b)
			default:
				otherEquity = append(otherEquity, b)
			}
		}
	}

	for _, group := range [][]AccountAmount{
		currentAssets, nonCurrentAssets, currentLiabilities, nonCurrentLiabilities,
		shareCapital, reserves, retained, otherEquity,
	} {
		sortByCode(group)
	}

	currentAssetTotal := sumOf(currentAssets)
	totalAssets := currentAssetTotal.Add(sumOf(nonCurrentAssets))
	currentLiabilityTotal := sumOf(currentLiabilities)
	totalLiabilities := currentLiabilityTotal.Add(sumOf(nonCurrentLiabilities))

	equityItems := make([]AccountAmount, 0, len(shareCapital)+len(reserves)+len(retained)+len(otherEquity))
	equityItems = append(equityItems, shareCapital...)
	equityItems = append(equityItems, reserves...)
	equityItems = append(equityItems, retained...)
	equityItems = append(equityItems, otherEquity...)
	equity := sectionOf("Equity", equityItems)
	totalEquity := sumOf(equityItems).Add(currentYearProfit)
	equity.Items = append(equity.Items, LineItem{
		Label:  "Current Year Profit",
		Amount: round2(currentYearProfit),
		Level:  1,
		IsBold: true,
	})
	equity.Subtotal = round2(totalEquity)

	bs := BalanceSheet{
		AsOf:                  asOf.Format("2006-01-02"),
		CurrentAssets:         sectionOf("Current Assets", currentAssets),
		NonCurrentAssets:      sectionOf("Non-Current Assets", nonCurrentAssets),
		TotalAssets:           round2(totalAssets),
		CurrentLiabilities:    sectionOf("Current Liabilities", currentLiabilities),
		NonCurrentLiabilities: sectionOf("Non-Current Liabilities", nonCurrentLiabilities),
		TotalLiabilities:      round2(totalLiabilities),
		Equity:                equity,
		TotalEquity:           round2(totalEquity),
	}

	difference := totalAssets.Sub(totalLiabilities.Add(totalEquity))
	bs.IsBalanced = difference.Abs().LessThan(balanceTolerance)
	if !bs.IsBalanced {
		diff := round2(difference)
		bs.BalanceDifference = &diff
		if logger != nil {
			logger.Warn("balance sheet out of balance",
				slog.String("as_of", bs.AsOf),
				slog.Float64("difference", diff))
		}
	}

	inventory := decimal.Zero
	for _, b := range currentAssets {
		if isInventoryLike(b.Account.Name) {
			inventory = inventory.Add(b.Amount)
		}
	}

	bs.WorkingCapital = round2(currentAssetTotal.Sub(currentLiabilityTotal))
	bs.CurrentRatio = ratio(currentAssetTotal, currentLiabilityTotal)
	bs.QuickRatio = ratio(currentAssetTotal.Sub(inventory), currentLiabilityTotal)
	bs.DebtToEquity = ratio(totalLiabilities, totalEquity)

	return bs
}

func sortByCode(items []AccountAmount) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Account.Code < items[j].Account.Code
	})
}
