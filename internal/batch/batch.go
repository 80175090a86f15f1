package batch

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
)

var ErrJobNotFound = errors.New("batch job not found")

// Job tracks one spreadsheet import. Counters only ever grow; processed and
// error counts sum to TotalRows exactly when CompletedAt is set.
type Job struct {
	ID               uuid.UUID
	Filename         string
	SubmittedBy      string
	TotalRows        int
	ProcessedRows    int
	ErrorRows        int
	TotalDistributed int64 // cents, successful rows only
	Processed        bool
	SubmittedAt      time.Time
	CompletedAt      *time.Time
}

// RowParams is one validated spreadsheet row queued for distribution. Rows
// that already failed parsing travel with ParseError set so they still occupy
// a row slot and count toward the error total.
type RowParams struct {
	Index       int // 0-based position within the job, stable across retries
	BusinessKey string
	Amount      int64 // cents
	IncomeType  commission.IncomeType
	ParseError  string
}

// RowError is one failed row, kept for the operator review report.
type RowError struct {
	RowIndex    int
	BusinessKey string
	Reason      string
	FailedAt    time.Time
}
