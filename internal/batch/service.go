package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=batch
type Repository interface {
	// CreateJob persists the job and all its rows (status pending) in one
	// storage transaction, so a job can always be resumed from its rows.
	CreateJob(ctx context.Context, job *Job, rows []RowParams) error
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)

	// PendingRows returns the rows of a job that were never claimed.
	PendingRows(ctx context.Context, jobID uuid.UUID) ([]RowParams, error)

	// ClaimRow atomically moves a row from pending to running. It returns
	// false when the row was already claimed; the caller must then leave the
	// row alone, which is what makes replays safe.
	ClaimRow(ctx context.Context, jobID uuid.UUID, rowIndex int) (bool, error)

	MarkRowDone(ctx context.Context, jobID uuid.UUID, rowIndex int, transactionID uuid.UUID, distributed int64) error
	MarkRowFailed(ctx context.Context, jobID uuid.UUID, rowIndex int, reason string) error

	// FinalizeIfDone sets the processed flag and completion timestamp iff
	// every row has been attempted. Returns whether the job is now complete.
	FinalizeIfDone(ctx context.Context, jobID uuid.UUID) (bool, error)

	RowErrors(ctx context.Context, jobID uuid.UUID) ([]RowError, error)
}

// Distributor is the distribution executor as the batch processor sees it.
type Distributor interface {
	Distribute(ctx context.Context, req commission.Request) (*commission.Result, error)
}

type Service struct {
	repo        Repository
	distributor Distributor
	workers     int
}

func NewService(repo Repository, distributor Distributor, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}

	return &Service{
		repo:        repo,
		distributor: distributor,
		workers:     workers,
	}
}

// CreateJob records the import durably and returns its id without processing
// any row. Callers that want fire-and-forget semantics run Run separately.
func (s *Service) CreateJob(ctx context.Context, filename, submittedBy string, rows []RowParams) (uuid.UUID, error) {
	if len(rows) == 0 {
		return uuid.Nil, fmt.Errorf("spreadsheet contains no data rows")
	}

	job := &Job{
		ID:          uuid.New(),
		Filename:    filename,
		SubmittedBy: submittedBy,
		TotalRows:   len(rows),
	}

	if err := s.repo.CreateJob(ctx, job, rows); err != nil {
		return uuid.Nil, fmt.Errorf("creating batch job: %w", err)
	}

	return job.ID, nil
}

// ImportBatch is the synchronous form: intake plus processing of every row.
func (s *Service) ImportBatch(ctx context.Context, filename, submittedBy string, rows []RowParams) (uuid.UUID, error) {
	jobID, err := s.CreateJob(ctx, filename, submittedBy, rows)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.Run(ctx, jobID); err != nil {
		return jobID, err
	}

	return jobID, nil
}

// Run processes every still-pending row of a job with a bounded worker pool.
// It is safe to call again after a crash or cancellation: claimed rows are
// never re-executed, so no wallet is credited twice.
func (s *Service) Run(ctx context.Context, jobID uuid.UUID) error {
	rows, err := s.repo.PendingRows(ctx, jobID)
	if err != nil {
		return fmt.Errorf("loading pending rows: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, row := range rows {
		// Cancellation stops scheduling; rows already committed stay committed.
		if gctx.Err() != nil {
			break
		}

		row := row

		g.Go(func() error {
			s.processRow(gctx, jobID, row)
			return nil
		})
	}

	// Workers never return errors; row failures are recorded per row.
	_ = g.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	done, err := s.repo.FinalizeIfDone(ctx, jobID)
	if err != nil {
		return fmt.Errorf("finalizing job: %w", err)
	}

	if done {
		slog.Info("batch job completed", "job_id", jobID)
	}

	return nil
}

// Resume re-runs a job whose processing was interrupted. Already-attempted
// rows are skipped by the claim check.
func (s *Service) Resume(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	if job.Processed {
		return nil
	}

	return s.Run(ctx, jobID)
}

func (s *Service) GetStatus(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	return s.repo.GetJob(ctx, jobID)
}

func (s *Service) RowErrors(ctx context.Context, jobID uuid.UUID) ([]RowError, error) {
	return s.repo.RowErrors(ctx, jobID)
}

// processRow attempts exactly one row. Failures never propagate to sibling
// rows; they are recorded against the row and the job's error count.
func (s *Service) processRow(ctx context.Context, jobID uuid.UUID, row RowParams) {
	claimed, err := s.repo.ClaimRow(ctx, jobID, row.Index)
	if err != nil {
		// Leave the row pending; a resume will pick it up.
		slog.Error("failed to claim batch row", "job_id", jobID, "row", row.Index, "error", err)
		return
	}

	if !claimed {
		return
	}

	if row.ParseError != "" {
		s.failRow(ctx, jobID, row.Index, row.ParseError)
		return
	}

	result, err := s.distributor.Distribute(ctx, commission.Request{
		BusinessKey: row.BusinessKey,
		Amount:      row.Amount,
		IncomeType:  row.IncomeType,
		Origin:      commission.OriginBatch,
	})
	if err != nil {
		s.failRow(ctx, jobID, row.Index, rowReason(err))
		return
	}

	if err := s.repo.MarkRowDone(ctx, jobID, row.Index, result.TransactionID, result.Distributed); err != nil {
		slog.Error("failed to record batch row result", "job_id", jobID, "row", row.Index, "error", err)
	}
}

func (s *Service) failRow(ctx context.Context, jobID uuid.UUID, rowIndex int, reason string) {
	if err := s.repo.MarkRowFailed(ctx, jobID, rowIndex, reason); err != nil {
		slog.Error("failed to record batch row failure", "job_id", jobID, "row", rowIndex, "error", err)
	}
}

// rowReason maps executor errors to short, operator-readable reasons.
func rowReason(err error) string {
	switch {
	case errors.Is(err, referral.ErrNotFound):
		return "unknown business key"
	case errors.Is(err, commission.ErrInvalidAmount):
		return "amount must be positive"
	case errors.Is(err, commission.ErrInvalidIncomeType):
		return "unsupported income type"
	case errors.Is(err, commission.ErrConflict):
		return "storage contention, retries exhausted"
	default:
		return err.Error()
	}
}
