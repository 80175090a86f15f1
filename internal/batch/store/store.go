package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
)

// Row statuses. pending -> running -> done|failed, never backwards. A row
// stuck in running after a crash is deliberately not retried: re-crediting a
// wallet is worse than asking an operator to reconcile one row.
const (
	rowPending = "pending"
	rowRunning = "running"
	rowDone    = "done"
	rowFailed  = "failed"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateJob(ctx context.Context, job *batch.Job, rows []batch.RowParams) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning job tx: %w", err)
	}
	defer dbTx.Rollback()

	jobQuery := `
		INSERT INTO batch_jobs (id, filename, submitted_by, total_rows, submitted_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING submitted_at
	`

	err = dbTx.QueryRowContext(ctx, jobQuery,
		job.ID, job.Filename, job.SubmittedBy, job.TotalRows,
	).Scan(&job.SubmittedAt)
	if err != nil {
		return fmt.Errorf("creating job: %w", err)
	}

	rowQuery := `
		INSERT INTO batch_rows (job_id, row_index, business_key, amount, income_type, parse_error, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, row := range rows {
		_, err := dbTx.ExecContext(ctx, rowQuery,
			job.ID, row.Index, row.BusinessKey, row.Amount, row.IncomeType,
			nullable(row.ParseError), rowPending,
		)
		if err != nil {
			return fmt.Errorf("creating job row %d: %w", row.Index, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing job: %w", err)
	}

	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*batch.Job, error) {
	query := `
		SELECT id, filename, submitted_by, total_rows, processed_rows, error_rows,
		       total_distributed, processed, submitted_at, completed_at
		FROM batch_jobs
		WHERE id = $1
	`

	var job batch.Job

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID, &job.Filename, &job.SubmittedBy, &job.TotalRows, &job.ProcessedRows,
		&job.ErrorRows, &job.TotalDistributed, &job.Processed, &job.SubmittedAt, &job.CompletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, batch.ErrJobNotFound
		}

		return nil, fmt.Errorf("getting job: %w", err)
	}

	return &job, nil
}

func (s *Store) PendingRows(ctx context.Context, jobID uuid.UUID) ([]batch.RowParams, error) {
	query := `
		SELECT row_index, business_key, amount, income_type, parse_error
		FROM batch_rows
		WHERE job_id = $1 AND status = $2
		ORDER BY row_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, jobID, rowPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending rows: %w", err)
	}
	defer rows.Close()

	var params []batch.RowParams

	for rows.Next() {
		var p batch.RowParams

		var typeStr string

		var parseErr sql.NullString

		if err := rows.Scan(&p.Index, &p.BusinessKey, &p.Amount, &typeStr, &parseErr); err != nil {
			return nil, fmt.Errorf("scanning pending row: %w", err)
		}

		p.IncomeType = commission.IncomeType(typeStr)
		p.ParseError = parseErr.String

		params = append(params, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending rows: %w", err)
	}

	return params, nil
}

// ClaimRow is the exactly-once gate: the conditional UPDATE succeeds for one
// claimant only, no matter how many workers or reruns race on the row.
func (s *Store) ClaimRow(ctx context.Context, jobID uuid.UUID, rowIndex int) (bool, error) {
	query := `
		UPDATE batch_rows
		SET status = $1, updated_at = NOW()
		WHERE job_id = $2 AND row_index = $3 AND status = $4
	`

	res, err := s.db.ExecContext(ctx, query, rowRunning, jobID, rowIndex, rowPending)
	if err != nil {
		return false, fmt.Errorf("claiming row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claiming row: %w", err)
	}

	return affected == 1, nil
}

// MarkRowDone records the row outcome and bumps the job counters in one
// transaction. Counter updates are relative increments, safe under
// concurrent workers.
func (s *Store) MarkRowDone(ctx context.Context, jobID uuid.UUID, rowIndex int, transactionID uuid.UUID, distributed int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning row tx: %w", err)
	}
	defer dbTx.Rollback()

	rowQuery := `
		UPDATE batch_rows
		SET status = $1, transaction_id = $2, distributed = $3, updated_at = NOW()
		WHERE job_id = $4 AND row_index = $5 AND status = $6
	`

	res, err := dbTx.ExecContext(ctx, rowQuery, rowDone, transactionID, distributed, jobID, rowIndex, rowRunning)
	if err != nil {
		return fmt.Errorf("updating row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating row: %w", err)
	}

	if affected != 1 {
		return fmt.Errorf("row %d of job %s was not running", rowIndex, jobID)
	}

	jobQuery := `
		UPDATE batch_jobs
		SET processed_rows = processed_rows + 1,
		    total_distributed = total_distributed + $1
		WHERE id = $2
	`

	if _, err := dbTx.ExecContext(ctx, jobQuery, distributed, jobID); err != nil {
		return fmt.Errorf("updating job counters: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing row result: %w", err)
	}

	return nil
}

func (s *Store) MarkRowFailed(ctx context.Context, jobID uuid.UUID, rowIndex int, reason string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning row tx: %w", err)
	}
	defer dbTx.Rollback()

	rowQuery := `
		UPDATE batch_rows
		SET status = $1, reason = $2, updated_at = NOW()
		WHERE job_id = $3 AND row_index = $4 AND status = $5
	`

	res, err := dbTx.ExecContext(ctx, rowQuery, rowFailed, reason, jobID, rowIndex, rowRunning)
	if err != nil {
		return fmt.Errorf("updating row: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating row: %w", err)
	}

	if affected != 1 {
		return fmt.Errorf("row %d of job %s was not running", rowIndex, jobID)
	}

	jobQuery := `
		UPDATE batch_jobs
		SET error_rows = error_rows + 1
		WHERE id = $1
	`

	if _, err := dbTx.ExecContext(ctx, jobQuery, jobID); err != nil {
		return fmt.Errorf("updating job counters: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing row failure: %w", err)
	}

	return nil
}

func (s *Store) FinalizeIfDone(ctx context.Context, jobID uuid.UUID) (bool, error) {
	query := `
		UPDATE batch_jobs
		SET processed = TRUE, completed_at = NOW()
		WHERE id = $1
		  AND processed = FALSE
		  AND processed_rows + error_rows = total_rows
	`

	res, err := s.db.ExecContext(ctx, query, jobID)
	if err != nil {
		return false, fmt.Errorf("finalizing job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finalizing job: %w", err)
	}

	return affected == 1, nil
}

func (s *Store) RowErrors(ctx context.Context, jobID uuid.UUID) ([]batch.RowError, error) {
	query := `
		SELECT row_index, business_key, COALESCE(reason, ''), updated_at
		FROM batch_rows
		WHERE job_id = $1 AND status = $2
		ORDER BY row_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, jobID, rowFailed)
	if err != nil {
		return nil, fmt.Errorf("listing row errors: %w", err)
	}
	defer rows.Close()

	var errs []batch.RowError

	for rows.Next() {
		var re batch.RowError
		if err := rows.Scan(&re.RowIndex, &re.BusinessKey, &re.Reason, &re.FailedAt); err != nil {
			return nil, fmt.Errorf("scanning row error: %w", err)
		}

		errs = append(errs, re)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating row errors: %w", err)
	}

	return errs, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
