package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/frostline-erp/frostline/internal/platform/db"
)

// VoucherSource is the read-only boundary to the voucher store. Every method
// filters to posted, non-deleted lines; draft vouchers never reach the ledger.
type VoucherSource interface {
	SumLines(ctx context.Context, accountCode string, from, to time.Time) (LineSum, error)
	Lines(ctx context.Context, accountCode string, from, to time.Time) ([]VoucherLine, error)
	EarliestVoucherDate(ctx context.Context) (time.Time, bool, error)
}

// SnapshotStore persists monthly balance checkpoints. UpsertMonth writes a
// whole month's rows atomically so readers never see a half-written
// checkpoint.
type SnapshotStore interface {
	LatestFinalBefore(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error)
	Get(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error)
	UpsertMonth(ctx context.Context, rows []MonthlyBalance) error
}

type voucherSource struct {
	db *pgxpool.Pool
}

// NewVoucherSource constructs a pgx-backed VoucherSource.
func NewVoucherSource(db *pgxpool.Pool) VoucherSource {
	return &voucherSource{db: db}
}

// Amounts travel as numeric text so decimal parsing keeps full precision;
// float64 only appears at the DTO boundary.
func (r *voucherSource) SumLines(ctx context.Context, accountCode string, from, to time.Time) (LineSum, error) {
	var debits, credits string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(vl.debit_amount), 0)::text, COALESCE(SUM(vl.credit_amount), 0)::text
		FROM voucher_lines vl
		JOIN vouchers v ON v.id = vl.voucher_id
		WHERE vl.account_code = $1
		  AND v.is_posted
		  AND v.deleted_at IS NULL
		  AND vl.deleted_at IS NULL
		  AND v.voucher_date BETWEEN $2 AND $3`,
		accountCode, from, to).Scan(&debits, &credits)
	if err != nil {
		return LineSum{}, err
	}
	return parseLineSum(debits, credits)
}

func (r *voucherSource) Lines(ctx context.Context, accountCode string, from, to time.Time) ([]VoucherLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.voucher_number, v.voucher_date, v.description,
		       vl.debit_amount::text, vl.credit_amount::text
		FROM voucher_lines vl
		JOIN vouchers v ON v.id = vl.voucher_id
		WHERE vl.account_code = $1
		  AND v.is_posted
		  AND v.deleted_at IS NULL
		  AND vl.deleted_at IS NULL
		  AND v.voucher_date BETWEEN $2 AND $3
		ORDER BY v.voucher_date, v.voucher_number, vl.id`,
		accountCode, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []VoucherLine
	for rows.Next() {
		var line VoucherLine
		var debit, credit string
		if err := rows.Scan(&line.VoucherID, &line.VoucherNumber, &line.VoucherDate, &line.Description, &debit, &credit); err != nil {
			return nil, err
		}
		if line.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, err
		}
		if line.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *voucherSource) EarliestVoucherDate(ctx context.Context) (time.Time, bool, error) {
	var earliest *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT MIN(voucher_date) FROM vouchers WHERE is_posted AND deleted_at IS NULL`).Scan(&earliest)
	if err != nil {
		return time.Time{}, false, err
	}
	if earliest == nil {
		return time.Time{}, false, nil
	}
	return *earliest, true, nil
}

type snapshotStore struct {
	db *pgxpool.Pool
}

// NewSnapshotStore constructs a pgx-backed SnapshotStore.
func NewSnapshotStore(db *pgxpool.Pool) SnapshotStore {
	return &snapshotStore{db: db}
}

const snapshotColumns = `account_id, year, month, opening_balance::text, total_debits::text,
	total_credits::text, closing_balance::text, is_final, updated_at`

func scanSnapshot(row pgx.Row) (MonthlyBalance, error) {
	var mb MonthlyBalance
	var month int
	var opening, debits, credits, closing string
	err := row.Scan(&mb.AccountID, &mb.Year, &month, &opening, &debits, &credits, &closing, &mb.IsFinal, &mb.UpdatedAt)
	if err != nil {
		return MonthlyBalance{}, err
	}
	mb.Month = time.Month(month)
	if mb.Opening, err = decimal.NewFromString(opening); err != nil {
		return MonthlyBalance{}, err
	}
	if mb.Debits, err = decimal.NewFromString(debits); err != nil {
		return MonthlyBalance{}, err
	}
	if mb.Credits, err = decimal.NewFromString(credits); err != nil {
		return MonthlyBalance{}, err
	}
	if mb.Closing, err = decimal.NewFromString(closing); err != nil {
		return MonthlyBalance{}, err
	}
	return mb, nil
}

func (r *snapshotStore) LatestFinalBefore(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+snapshotColumns+`
		FROM monthly_balances
		WHERE account_id = $1 AND is_final AND (year * 12 + month) < ($2 * 12 + $3)
		ORDER BY year DESC, month DESC
		LIMIT 1`,
		accountID, year, int(month))
	mb, err := scanSnapshot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonthlyBalance{}, false, nil
	}
	if err != nil {
		return MonthlyBalance{}, false, err
	}
	return mb, true, nil
}

func (r *snapshotStore) Get(ctx context.Context, accountID int64, year int, month time.Month) (MonthlyBalance, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+snapshotColumns+`
		FROM monthly_balances
		WHERE account_id = $1 AND year = $2 AND month = $3`,
		accountID, year, int(month))
	mb, err := scanSnapshot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return MonthlyBalance{}, false, nil
	}
	if err != nil {
		return MonthlyBalance{}, false, err
	}
	return mb, true, nil
}

func (r *snapshotStore) UpsertMonth(ctx context.Context, rows []MonthlyBalance) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, mb := range rows {
			_, err := tx.Exec(ctx, `
				INSERT INTO monthly_balances (account_id, year, month, opening_balance, total_debits,
					total_credits, closing_balance, is_final, updated_at)
				VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8, NOW())
				ON CONFLICT (account_id, year, month) DO UPDATE SET
					opening_balance = EXCLUDED.opening_balance,
					total_debits = EXCLUDED.total_debits,
					total_credits = EXCLUDED.total_credits,
					closing_balance = EXCLUDED.closing_balance,
					is_final = EXCLUDED.is_final,
					updated_at = NOW()`,
				mb.AccountID, mb.Year, int(mb.Month), mb.Opening.String(), mb.Debits.String(),
				mb.Credits.String(), mb.Closing.String(), mb.IsFinal)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func parseLineSum(debits, credits string) (LineSum, error) {
	var sum LineSum
	var err error
	if sum.Debits, err = decimal.NewFromString(debits); err != nil {
		return LineSum{}, err
	}
	if sum.Credits, err = decimal.NewFromString(credits); err != nil {
		return LineSum{}, err
	}
	return sum, nil
}
