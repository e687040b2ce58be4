package ledger

import "time"

// BalanceResponse is the external balance shape: absolute amount rounded to
// two decimals plus the DR/CR side.
type BalanceResponse struct {
	AccountCode string  `json:"accountCode"`
	AsOf        string  `json:"asOf"`
	Balance     float64 `json:"balance"`
	BalanceType string  `json:"balanceType"`
}

// LedgerEntryResponse is one ledger line with its running balance.
type LedgerEntryResponse struct {
	VoucherNumber  string  `json:"voucherNumber"`
	VoucherDate    string  `json:"voucherDate"`
	Description    string  `json:"description,omitempty"`
	Debit          float64 `json:"debit"`
	Credit         float64 `json:"credit"`
	RunningBalance float64 `json:"runningBalance"`
	RunningType    string  `json:"runningType"`
}

// LedgerResponse is the external account ledger shape.
type LedgerResponse struct {
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	From           string                `json:"from,omitempty"`
	To             string                `json:"to"`
	OpeningBalance float64               `json:"openingBalance"`
	OpeningType    string                `json:"openingType"`
	Entries        []LedgerEntryResponse `json:"entries"`
	ClosingBalance float64               `json:"closingBalance"`
	ClosingType    string                `json:"closingType"`
}

// TrialBalanceRowResponse is one trial balance row.
type TrialBalanceRowResponse struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// TrialBalanceResponse is the external trial balance shape. IsBalanced and
// Difference are first-class properties, not display fields.
type TrialBalanceResponse struct {
	AsOf        string                    `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  float64                   `json:"totalDebit"`
	TotalCredit float64                   `json:"totalCredit"`
	Difference  float64                   `json:"difference"`
	IsBalanced  bool                      `json:"isBalanced"`
}

const dateLayout = "2006-01-02"

func toBalanceResponse(code string, asOf time.Time, b Balance) BalanceResponse {
	return BalanceResponse{
		AccountCode: code,
		AsOf:        asOf.Format(dateLayout),
		Balance:     b.Amount.Round(2).InexactFloat64(),
		BalanceType: string(b.Type),
	}
}

func toLedgerResponse(l Ledger) LedgerResponse {
	resp := LedgerResponse{
		AccountCode:    l.AccountCode,
		AccountName:    l.AccountName,
		To:             l.To.Format(dateLayout),
		OpeningBalance: l.Opening.Amount.Round(2).InexactFloat64(),
		OpeningType:    string(l.Opening.Type),
		ClosingBalance: l.Closing.Amount.Round(2).InexactFloat64(),
		ClosingType:    string(l.Closing.Type),
		Entries:        make([]LedgerEntryResponse, 0, len(l.Entries)),
	}
	if l.From != nil {
		resp.From = l.From.Format(dateLayout)
	}
	for _, e := range l.Entries {
		resp.Entries = append(resp.Entries, LedgerEntryResponse{
			VoucherNumber:  e.VoucherNumber,
			VoucherDate:    e.VoucherDate.Format(dateLayout),
			Description:    e.Description,
			Debit:          e.Debit.Round(2).InexactFloat64(),
			Credit:         e.Credit.Round(2).InexactFloat64(),
			RunningBalance: e.Running.Amount.Round(2).InexactFloat64(),
			RunningType:    string(e.Running.Type),
		})
	}
	return resp
}

func toTrialBalanceResponse(tb TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:        tb.AsOf.Format(dateLayout),
		Rows:        make([]TrialBalanceRowResponse, 0, len(tb.Rows)),
		TotalDebit:  tb.TotalDebit.Round(2).InexactFloat64(),
		TotalCredit: tb.TotalCredit.Round(2).InexactFloat64(),
		Difference:  tb.Difference.Round(2).InexactFloat64(),
		IsBalanced:  tb.IsBalanced,
	}
	for _, row := range tb.Rows {
		resp.Rows = append(resp.Rows, TrialBalanceRowResponse{
			Code:   row.Code,
			Name:   row.Name,
			Debit:  row.Debit.Round(2).InexactFloat64(),
			Credit: row.Credit.Round(2).InexactFloat64(),
		})
	}
	return resp
}
