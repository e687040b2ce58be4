package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/accounts"
)

// BuildIncomeStatement partitions nature-signed period activity of revenue
// and expense accounts into the profit and loss document. taxRate is a
// percentage (25 means 25%).
func BuildIncomeStatement(from, to time.Time, activity []AccountAmount, taxRate decimal.Decimal) IncomeStatement {
	var operating, other []AccountAmount
	var cogs, admin, selling, general, financial []AccountAmount

	for _, a := range activity {
		switch a.Account.Category {
		case accounts.CategoryRevenue:
			if a.Account.SubCategory == accounts.SubOtherRevenue {
				other = append(other, a)
			} else {
				operating = append(operating, a)
			}
		case accounts.CategoryExpense:
			switch a.Account.SubCategory {
			case accounts.SubCostOfGoodsSold:
				cogs = append(cogs, a)
			case accounts.SubAdministrative:
				admin = append(admin, a)
			case accounts.SubSelling:
				selling = append(selling, a)
			case accounts.SubFinancial:
				financial = append(financial, a)
			default:
				general = append(general, a)
			}
		}
	}

	for _, group := range [][]AccountAmount{operating, other, cogs, admin, selling, general, financial} {
		sortByCode(group)
	}

	totalRevenue := sumOf(operating).Add(sumOf(other))
	grossProfit := totalRevenue.Sub(sumOf(cogs))
	operatingIncome := grossProfit.Sub(sumOf(admin)).Sub(sumOf(selling)).Sub(sumOf(general))

	addBack := decimal.Zero
	for _, group := range [][]AccountAmount{cogs, admin, selling, general, financial} {
		for _, a := range group {
			if isNonCashExpense(a.Account.Name) {
				addBack = addBack.Add(a.Amount)
			}
		}
	}

	incomeBeforeTax := operatingIncome.Sub(sumOf(financial))
	tax := decimal.Zero
	if incomeBeforeTax.IsPositive() {
		tax = incomeBeforeTax.Mul(taxRate).Div(decimal.NewFromInt(100))
	}
	netIncome := incomeBeforeTax.Sub(tax)

	return IncomeStatement{
		From:                   from.Format("2006-01-02"),
		To:                     to.Format("2006-01-02"),
		OperatingRevenue:       sectionOf("Operating Revenue", operating),
		OtherRevenue:           sectionOf("Other Revenue", other),
		TotalRevenue:           round2(totalRevenue),
		CostOfGoodsSold:        sectionOf("Cost of Goods Sold", cogs),
		GrossProfit:            round2(grossProfit),
		AdministrativeExpenses: sectionOf("Administrative Expenses", admin),
		SellingExpenses:        sectionOf("Selling Expenses", selling),
		GeneralExpenses:        sectionOf("General Expenses", general),
		OperatingIncome:        round2(operatingIncome),
		FinancialExpenses:      sectionOf("Financial Expenses", financial),
		DepreciationAddBack:    round2(addBack),
		EBITDA:                 round2(operatingIncome.Add(addBack)),
		IncomeBeforeTax:        round2(incomeBeforeTax),
		TaxRate:                taxRate.InexactFloat64(),
		Tax:                    round2(tax),
		NetIncome:              round2(netIncome),
		GrossMargin:            percentOf(grossProfit, totalRevenue),
		OperatingMargin:        percentOf(operatingIncome, totalRevenue),
		NetMargin:              percentOf(netIncome, totalRevenue),
	}
}
