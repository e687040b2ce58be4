// Package statements derives balance sheet, income statement, cash flow,
// and ratio analysis documents from ledger balances. Every generation call
// is a pure function of (period, posted vouchers, chart of accounts) as of
// call time; nothing here holds state.
package statements

import "github.com/shopspring/decimal"

// LineItem is one row of a statement section.
type LineItem struct {
	Code    string  `json:"code,omitempty"`
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Level   int     `json:"level"`
	IsTotal bool    `json:"isTotal"`
	IsBold  bool    `json:"isBold"`
}

// Section is an ordered list of line items plus a subtotal.
type Section struct {
	Label    string     `json:"label"`
	Items    []LineItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// BalanceSheet is the structured balance sheet document. When the accounting
// equation does not hold within tolerance, IsBalanced is false and
// BalanceDifference carries the discrepancy; generation never fails for it.
type BalanceSheet struct {
	AsOf                  string   `json:"asOf"`
	CurrentAssets         Section  `json:"currentAssets"`
	NonCurrentAssets      Section  `json:"nonCurrentAssets"`
	TotalAssets           float64  `json:"totalAssets"`
	CurrentLiabilities    Section  `json:"currentLiabilities"`
	NonCurrentLiabilities Section  `json:"nonCurrentLiabilities"`
	TotalLiabilities      float64  `json:"totalLiabilities"`
	Equity                Section  `json:"equity"`
	TotalEquity           float64  `json:"totalEquity"`
	IsBalanced            bool     `json:"isBalanced"`
	BalanceDifference     *float64 `json:"balanceDifference,omitempty"`
	WorkingCapital        float64  `json:"workingCapital"`
	CurrentRatio          float64  `json:"currentRatio"`
	QuickRatio            float64  `json:"quickRatio"`
	DebtToEquity          float64  `json:"debtToEquity"`
}

// IncomeStatement is the structured profit and loss document.
type IncomeStatement struct {
	From                   string  `json:"from"`
	To                     string  `json:"to"`
	OperatingRevenue       Section `json:"operatingRevenue"`
	OtherRevenue           Section `json:"otherRevenue"`
	TotalRevenue           float64 `json:"totalRevenue"`
	CostOfGoodsSold        Section `json:"costOfGoodsSold"`
	GrossProfit            float64 `json:"grossProfit"`
	AdministrativeExpenses Section `json:"administrativeExpenses"`
	SellingExpenses        Section `json:"sellingExpenses"`
	GeneralExpenses        Section `json:"generalExpenses"`
	OperatingIncome        float64 `json:"operatingIncome"`
	FinancialExpenses      Section `json:"financialExpenses"`
	DepreciationAddBack    float64 `json:"depreciationAddBack"`
	EBITDA                 float64 `json:"ebitda"`
	IncomeBeforeTax        float64 `json:"incomeBeforeTax"`
	TaxRate                float64 `json:"taxRate"`
	Tax                    float64 `json:"tax"`
	NetIncome              float64 `json:"netIncome"`
	GrossMargin            float64 `json:"grossMargin"`
	OperatingMargin        float64 `json:"operatingMargin"`
	NetMargin              float64 `json:"netMargin"`
}

// CashFlow is the indirect-method cash flow statement.
type CashFlow struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	NetIncome      float64 `json:"netIncome"`
	Adjustments    Section `json:"adjustments"`
	WorkingCapital Section `json:"workingCapital"`
	NetOperating   float64 `json:"netOperating"`
	Investing      Section `json:"investing"`
	NetInvesting   float64 `json:"netInvesting"`
	Financing      Section `json:"financing"`
	NetFinancing   float64 `json:"netFinancing"`
	NetChange      float64 `json:"netChange"`
	CashBeginning  float64 `json:"cashBeginning"`
	CashEnding     float64 `json:"cashEnding"`
	Reconciles     bool    `json:"reconciles"`
}

// Ratio is a single named ratio value.
type Ratio struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RatioGroup groups related ratios.
type RatioGroup struct {
	Label  string  `json:"label"`
	Ratios []Ratio `json:"ratios"`
}

// FinancialAnalysis composes ratio groups from the other statements. It adds
// no invariants of its own; every input total is already validated upstream.
type FinancialAnalysis struct {
	From          string     `json:"from"`
	To            string     `json:"to"`
	Liquidity     RatioGroup `json:"liquidity"`
	Profitability RatioGroup `json:"profitability"`
	Efficiency    RatioGroup `json:"efficiency"`
	Solvency      RatioGroup `json:"solvency"`
}

// balanceTolerance mirrors the ledger's 2-decimal equality tolerance.
var balanceTolerance = decimal.New(1, -2)

// round2 is the single exposure point where full-precision decimals become
// 2-decimal floats for the document shapes.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ratio divides with a zero-divisor guard: callers get 0, never NaN or Inf.
func ratio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return num.Div(den).Round(4).InexactFloat64()
}

// percentOf expresses num as a percentage of den, zero-guarded.
func percentOf(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		return 0
	}
	return round2(num.Mul(decimal.NewFromInt(100)).Div(den))
}
