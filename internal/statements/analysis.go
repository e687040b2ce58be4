package statements

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisInput carries the statement totals the ratio groups are computed
// from, at full precision.
type AnalysisInput struct {
	CurrentAssets      decimal.Decimal
	CurrentLiabilities decimal.Decimal
	Inventory          decimal.Decimal
	Receivables        decimal.Decimal
	TotalAssets        decimal.Decimal
	TotalLiabilities   decimal.Decimal
	TotalEquity        decimal.Decimal
	TotalRevenue       decimal.Decimal
	CostOfGoodsSold    decimal.Decimal
	GrossProfit        decimal.Decimal
	OperatingIncome    decimal.Decimal
	NetIncome          decimal.Decimal
}

// BuildAnalysis composes the ratio groups. Every ratio shares the zero
// divisor guard, so an empty ledger yields zeros rather than NaN.
func BuildAnalysis(from, to time.Time, in AnalysisInput) FinancialAnalysis {
	return FinancialAnalysis{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
		Liquidity: RatioGroup{
			Label: "Liquidity",
			Ratios: []Ratio{
				{Name: "Current Ratio", Value: ratio(in.CurrentAssets, in.CurrentLiabilities)},
				{Name: "Quick Ratio", Value: ratio(in.CurrentAssets.Sub(in.Inventory), in.CurrentLiabilities)},
				{Name: "Working Capital", Value: round2(in.CurrentAssets.Sub(in.CurrentLiabilities))},
			},
		},
		Profitability: RatioGroup{
			Label: "Profitability",
			Ratios: []Ratio{
				{Name: "Gross Margin %", Value: percentOf(in.GrossProfit, in.TotalRevenue)},
				{Name: "Operating Margin %", Value: percentOf(in.OperatingIncome, in.TotalRevenue)},
				{Name: "Net Margin %", Value: percentOf(in.NetIncome, in.TotalRevenue)},
				{Name: "Return on Assets %", Value: percentOf(in.NetIncome, in.TotalAssets)},
				{Name: "Return on Equity %", Value: percentOf(in.NetIncome, in.TotalEquity)},
			},
		},
		Efficiency: RatioGroup{
			Label: "Efficiency",
			Ratios: []Ratio{
				{Name: "Receivables Turnover", Value: ratio(in.TotalRevenue, in.Receivables)},
				{Name: "Inventory Turnover", Value: ratio(in.CostOfGoodsSold, in.Inventory)},
				{Name: "Asset Turnover", Value: ratio(in.TotalRevenue, in.TotalAssets)},
			},
		},
		Solvency: RatioGroup{
			Label: "Solvency",
			Ratios: []Ratio{
				{Name: "Debt to Equity", Value: ratio(in.TotalLiabilities, in.TotalEquity)},
				{Name: "Debt Ratio", Value: ratio(in.TotalLiabilities, in.TotalAssets)},
				{Name: "Equity Ratio", Value: ratio(in.TotalEquity, in.TotalAssets)},
			},
		},
	}
}
