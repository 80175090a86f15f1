package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectIncomeColumns = `
	i.id, i.recipient_id, i.amount, i.rate_basis_points, i.level, i.income_type,
	i.origin, i.source_id, i.source_business_key, i.source_amount, i.description,
	i.transaction_id, i.created_at
`

func scanIncome(s scanner) (*commission.Income, error) {
	var in commission.Income

	var typeStr, originStr string

	var desc sql.NullString

	if err := s.Scan(
		&in.ID, &in.RecipientID, &in.Amount, &in.RateBasisPoints, &in.Level, &typeStr,
		&originStr, &in.SourceID, &in.SourceBusinessKey, &in.SourceAmount, &desc,
		&in.TransactionID, &in.CreatedAt,
	); err != nil {
		return nil, err
	}

	in.IncomeType = commission.IncomeType(typeStr)
	in.Origin = commission.Origin(originStr)
	in.Description = desc.String

	return &in, nil
}

// CreditAll commits every level-credit of one distribution in a single
// database transaction: wallet increment plus ledger insert per credit.
// The increments are relative (`balance = balance + $n`), so concurrent
// distributions converging on the same ancestor serialize on the row lock
// and never lose an update.
func (s *Store) CreditAll(ctx context.Context, incomes []*commission.Income) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning credit tx: %w", err)
	}
	defer dbTx.Rollback()

	walletQuery := `
		UPDATE users
		SET wallet_balance = wallet_balance + $1, total_earned = total_earned + $1
		WHERE id = $2
	`

	incomeQuery := `
		INSERT INTO incomes (
			recipient_id, amount, rate_basis_points, level, income_type, origin,
			source_id, source_business_key, source_amount, description,
			transaction_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	for _, in := range incomes {
		res, err := dbTx.ExecContext(ctx, walletQuery, in.Amount, in.RecipientID)
		if err != nil {
			return creditErr("crediting wallet", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("crediting wallet: %w", err)
		}

		if affected != 1 {
			return fmt.Errorf("crediting wallet: recipient %s not found", in.RecipientID)
		}

		err = dbTx.QueryRowContext(ctx, incomeQuery,
			in.RecipientID,
			in.Amount,
			in.RateBasisPoints,
			in.Level,
			in.IncomeType,
			in.Origin,
			in.SourceID,
			in.SourceBusinessKey,
			in.SourceAmount,
			nullable(in.Description),
			in.TransactionID,
		).Scan(&in.ID, &in.CreatedAt)
		if err != nil {
			return creditErr("inserting income", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return creditErr("committing credits", err)
	}

	return nil
}

func (s *Store) ListIncomes(ctx context.Context, filter commission.IncomeFilter) ([]*commission.Income, error) {
	query := `SELECT ` + selectIncomeColumns + ` FROM incomes i WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.RecipientID != nil {
		query += fmt.Sprintf(" AND i.recipient_id = $%d", argIdx)

		args = append(args, *filter.RecipientID)
		argIdx++
	}

	if filter.IncomeType != nil {
		query += fmt.Sprintf(" AND i.income_type = $%d", argIdx)

		args = append(args, *filter.IncomeType)
		argIdx++
	}

	if filter.SourceBusinessKey != nil {
		query += fmt.Sprintf(" AND i.source_business_key = $%d", argIdx)

		args = append(args, *filter.SourceBusinessKey)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d", argIdx)
	args = append(args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*commission.Income

	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating income rows: %w", err)
	}

	return incomes, nil
}

// creditErr wraps storage errors, tagging serialization failures and deadlocks
// as commission.ErrConflict so the executor knows they are retryable.
func creditErr(doing string, err error) error {
	if isRetryable(err) {
		return fmt.Errorf("%s: %w: %v", doing, commission.ErrConflict, err)
	}

	return fmt.Errorf("%s: %w", doing, err)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	// 40001 serialization_failure, 40P01 deadlock_detected.
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
