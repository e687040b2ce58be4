package statements

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// AccountAmount pairs an account with a nature-signed decimal amount:
// a balance as of a date, or net activity over a period.
type AccountAmount struct {
	Account accounts.Account
	Amount  decimal.Decimal
}

// The name-substring classifiers below stand in for an explicit cash-flow
// role taxonomy the chart does not carry. They are preserved as-is: changing
// them silently reclassifies working-capital adjustments and EBITDA
// add-backs on existing charts.

func isNonCashExpense(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "depreciation") ||
		strings.Contains(n, "amortization") ||
		strings.Contains(n, "amortisation")
}

func isReceivableLike(name string) bool {
	return strings.Contains(strings.ToLower(name), "receivable")
}

func isPayableLike(name string) bool {
	return strings.Contains(strings.ToLower(name), "payable")
}

func isInventoryLike(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "inventory") || strings.Contains(n, "stock")
}

// isCurrentAsset decides the balance sheet bucket for an asset account.
// Unclassified cash and bank accounts count as current; everything else
// without a subcategory is treated as non-current.
func isCurrentAsset(a accounts.Account) bool {
	if a.SubCategory == accounts.SubCurrentAsset {
		return true
	}
	return a.SubCategory == "" && (a.IsCashAccount || a.IsBankAccount)
}

func isCurrentLiability(a accounts.Account) bool {
	return a.SubCategory == accounts.SubCurrentLiability || a.SubCategory == ""
}

func isFixedOrIntangible(a accounts.Account) bool {
	return a.SubCategory == accounts.SubFixedAsset || a.SubCategory == accounts.SubIntangibleAsset
}

// sectionOf builds a section from items already in display order,
// accumulating the subtotal at full precision before rounding.
func sectionOf(label string, items []AccountAmount) Section {
	section := Section{Label: label, Items: make([]LineItem, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		section.Items = append(section.Items, LineItem{
			Code:   item.Account.Code,
			Label:  item.Account.Name,
			Amount: round2(item.Amount),
			Level:  1,
		})
		subtotal = subtotal.Add(item.Amount)
	}
	section.Subtotal = round2(subtotal)
	return section
}

// sumOf totals a slice of account amounts at full precision.
func sumOf(items []AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
