package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	pgconn5 "github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository encapsulates DB operations for the chart of accounts.
type Repository interface {
	List(ctx context.Context) ([]Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByCode(ctx context.Context, code string) (Account, error)
	Codes(ctx context.Context) ([]string, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	Insert(ctx context.Context, a Account) (Account, error)
	Update(ctx context.Context, a Account) (Account, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a pgx-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, code, name, type, nature, category, sub_category, parent_id,
	is_cash_account, is_bank_account, opening_balance::text, opening_date,
	is_active, is_system, deleted_at, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var sub *string
	var opening string
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.Nature, &a.Category, &sub, &a.ParentID,
		&a.IsCashAccount, &a.IsBankAccount, &opening, &a.OpeningDate,
		&a.IsActive, &a.IsSystem, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Account{}, err
	}
	if sub != nil {
		a.SubCategory = SubCategory(*sub)
	}
	a.OpeningBalance, err = decimal.NewFromString(opening)
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE deleted_at IS NULL ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND deleted_at IS NULL`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1 AND deleted_at IS NULL`, code)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return a, err
}

func (r *repository) Codes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT code FROM accounts WHERE deleted_at IS NULL ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *repository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE parent_id = $1 AND deleted_at IS NULL`, id).Scan(&count)
	return count, err
}

func (r *repository) Insert(ctx context.Context, a Account) (Account, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (code, name, type, nature, category, sub_category, parent_id,
			is_cash_account, is_bank_account, opening_balance, opening_date, is_active, is_system)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10::numeric, $11, $12, $13)
		RETURNING `+accountColumns,
		a.Code, a.Name, a.Type, a.Nature, a.Category, string(a.SubCategory), a.ParentID,
		a.IsCashAccount, a.IsBankAccount, a.OpeningBalance.String(), a.OpeningDate, a.IsActive, a.IsSystem)
	inserted, err := scanAccount(row)
	if isUniqueViolation(err) {
		return Account{}, ErrDuplicateCode
	}
	return inserted, err
}

func (r *repository) Update(ctx context.Context, a Account) (Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET name = $2, sub_category = NULLIF($3, ''), parent_id = $4,
			is_cash_account = $5, is_bank_account = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+accountColumns,
		a.ID, a.Name, string(a.SubCategory), a.ParentID, a.IsCashAccount, a.IsBankAccount, a.IsActive)
	updated, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return updated, err
}

func (r *repository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET deleted_at = $2, is_active = FALSE WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation matches SQLSTATE 23505 across pgconn generations; pgx/v5
// raises its own PgError while some drivers still surface the v1 type.
func isUniqueViolation(err error) bool {
	var v5Err *pgconn5.PgError
	if errors.As(err, &v5Err) {
		return v5Err.Code == "23505"
	}
	var v1Err *pgconn.PgError
	return errors.As(err, &v1Err) && v1Err.Code == "23505"
}
