package ledger

import (
	"bufio"
	"encoding/csv"
	"io"
)

const csvBufferSize = 32 * 1024

// writeTrialBalanceCSV streams a trial balance as CSV. Amounts are written
// with two decimals, matching the external rounding rule.
func writeTrialBalanceCSV(w io.Writer, tb TrialBalance) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true

	if err := writer.Write([]string{"code", "name", "debit", "credit"}); err != nil {
		return err
	}
	for _, row := range tb.Rows {
		record := []string{
			row.Code,
			row.Name,
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	totals := []string{
		"TOTAL",
		"",
		tb.TotalDebit.StringFixed(2),
		tb.TotalCredit.StringFixed(2),
	}
	if err := writer.Write(totals); err != nil {
		return err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
