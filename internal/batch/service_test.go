package batch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

func sampleRows() []batch.RowParams {
	return []batch.RowParams{
		{Index: 0, BusinessKey: "MT5-1001", Amount: 10_000, IncomeType: commission.IncomeTrade},
		{Index: 1, BusinessKey: "MT5-1002", Amount: 20_000, IncomeType: commission.IncomeTrade},
		{Index: 2, BusinessKey: "MT5-1003", Amount: 30_000, IncomeType: commission.IncomeTrade},
	}
}

func okResult(distributed int64) *commission.Result {
	return &commission.Result{
		TransactionID: uuid.New(),
		Distributed:   distributed,
	}
}

func TestService_ImportBatch_AllRowsSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	rows := sampleRows()

	var jobID uuid.UUID

	repo.EXPECT().
		CreateJob(gomock.Any(), gomock.Any(), rows).
		DoAndReturn(func(_ context.Context, job *batch.Job, _ []batch.RowParams) error {
			jobID = job.ID
			assert.Equal(t, "commissions.csv", job.Filename)
			assert.Equal(t, "ops@vantage", job.SubmittedBy)
			assert.Equal(t, 3, job.TotalRows)
			return nil
		})

	repo.EXPECT().PendingRows(gomock.Any(), gomock.Any()).Return(rows, nil)

	for _, row := range rows {
		repo.EXPECT().ClaimRow(gomock.Any(), gomock.Any(), row.Index).Return(true, nil)
		dist.EXPECT().
			Distribute(gomock.Any(), commission.Request{
				BusinessKey: row.BusinessKey,
				Amount:      row.Amount,
				IncomeType:  row.IncomeType,
				Origin:      commission.OriginBatch,
			}).
			Return(okResult(row.Amount/50), nil)
		repo.EXPECT().MarkRowDone(gomock.Any(), gomock.Any(), row.Index, gomock.Any(), row.Amount/50).Return(nil)
	}

	repo.EXPECT().FinalizeIfDone(gomock.Any(), gomock.Any()).Return(true, nil)

	svc := batch.NewService(repo, dist, 2)

	got, err := svc.ImportBatch(context.Background(), "commissions.csv", "ops@vantage", rows)
	require.NoError(t, err)
	assert.Equal(t, jobID, got)
}

func TestService_ImportBatch_RowFailureIsIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	rows := sampleRows()

	repo.EXPECT().CreateJob(gomock.Any(), gomock.Any(), rows).Return(nil)
	repo.EXPECT().PendingRows(gomock.Any(), gomock.Any()).Return(rows, nil)

	repo.EXPECT().ClaimRow(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(3)

	// Row 1 targets an unknown business key; rows 0 and 2 still settle.
	dist.EXPECT().
		Distribute(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commission.Request) (*commission.Result, error) {
			if req.BusinessKey == "MT5-1002" {
				return nil, referral.ErrNotFound
			}
			return okResult(200), nil
		}).
		Times(3)

	repo.EXPECT().MarkRowDone(gomock.Any(), gomock.Any(), 0, gomock.Any(), int64(200)).Return(nil)
	repo.EXPECT().MarkRowDone(gomock.Any(), gomock.Any(), 2, gomock.Any(), int64(200)).Return(nil)
	repo.EXPECT().MarkRowFailed(gomock.Any(), gomock.Any(), 1, "unknown business key").Return(nil)

	repo.EXPECT().FinalizeIfDone(gomock.Any(), gomock.Any()).Return(true, nil)

	svc := batch.NewService(repo, dist, 2)

	_, err := svc.ImportBatch(context.Background(), "commissions.csv", "ops@vantage", rows)
	require.NoError(t, err)
}

func TestService_Run_SkipsAlreadyClaimedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	jobID := uuid.New()
	rows := sampleRows()

	repo.EXPECT().PendingRows(gomock.Any(), jobID).Return(rows, nil)

	// A concurrent worker already took rows 0 and 2. Replaying them must not
	// reach the distributor: that is the double-credit guard.
	repo.EXPECT().ClaimRow(gomock.Any(), jobID, 0).Return(false, nil)
	repo.EXPECT().ClaimRow(gomock.Any(), jobID, 1).Return(true, nil)
	repo.EXPECT().ClaimRow(gomock.Any(), jobID, 2).Return(false, nil)

	dist.EXPECT().Distribute(gomock.Any(), gomock.Any()).Return(okResult(400), nil).Times(1)
	repo.EXPECT().MarkRowDone(gomock.Any(), jobID, 1, gomock.Any(), int64(400)).Return(nil)

	repo.EXPECT().FinalizeIfDone(gomock.Any(), jobID).Return(true, nil)

	svc := batch.NewService(repo, dist, 2)
	require.NoError(t, svc.Run(context.Background(), jobID))
}

func TestService_Run_ParseErrorRowsFailWithoutDistributing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	jobID := uuid.New()

	rows := []batch.RowParams{
		{Index: 0, BusinessKey: "MT5-1001", Amount: 10_000, IncomeType: commission.IncomeTrade},
		{Index: 1, BusinessKey: "MT5-1002", ParseError: "invalid amount"},
	}

	repo.EXPECT().PendingRows(gomock.Any(), jobID).Return(rows, nil)
	repo.EXPECT().ClaimRow(gomock.Any(), jobID, gomock.Any()).Return(true, nil).Times(2)

	dist.EXPECT().Distribute(gomock.Any(), gomock.Any()).Return(okResult(200), nil).Times(1)
	repo.EXPECT().MarkRowDone(gomock.Any(), jobID, 0, gomock.Any(), int64(200)).Return(nil)
	repo.EXPECT().MarkRowFailed(gomock.Any(), jobID, 1, "invalid amount").Return(nil)

	repo.EXPECT().FinalizeIfDone(gomock.Any(), jobID).Return(true, nil)

	svc := batch.NewService(repo, dist, 1)
	require.NoError(t, svc.Run(context.Background(), jobID))
}

func TestService_Run_ConcurrentWorkersCoverEveryRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	jobID := uuid.New()

	const total = 40

	rows := make([]batch.RowParams, total)
	for i := range rows {
		rows[i] = batch.RowParams{Index: i, BusinessKey: "MT5-1001", Amount: 1000, IncomeType: commission.IncomeTrade}
	}

	repo.EXPECT().PendingRows(gomock.Any(), jobID).Return(rows, nil)
	repo.EXPECT().ClaimRow(gomock.Any(), jobID, gomock.Any()).Return(true, nil).Times(total)

	var mu sync.Mutex

	seen := make(map[int]bool, total)

	dist.EXPECT().Distribute(gomock.Any(), gomock.Any()).Return(okResult(20), nil).Times(total)
	repo.EXPECT().
		MarkRowDone(gomock.Any(), jobID, gomock.Any(), gomock.Any(), int64(20)).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, rowIndex int, _ uuid.UUID, _ int64) error {
			mu.Lock()
			seen[rowIndex] = true
			mu.Unlock()
			return nil
		}).
		Times(total)

	repo.EXPECT().FinalizeIfDone(gomock.Any(), jobID).Return(true, nil)

	svc := batch.NewService(repo, dist, 4)
	require.NoError(t, svc.Run(context.Background(), jobID))

	assert.Len(t, seen, total)
}

func TestService_CreateJob_RejectsEmptySpreadsheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)

	svc := batch.NewService(repo, dist, 2)

	_, err := svc.CreateJob(context.Background(), "empty.csv", "ops@vantage", nil)
	assert.Error(t, err)
}

func TestService_Resume_CompletedJobIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	jobID := uuid.New()

	repo.EXPECT().GetJob(gomock.Any(), jobID).Return(&batch.Job{ID: jobID, Processed: true}, nil)

	svc := batch.NewService(repo, dist, 2)
	require.NoError(t, svc.Resume(context.Background(), jobID))
}

func TestService_GetStatus_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := batch.NewMockRepository(ctrl)
	dist := batch.NewMockDistributor(ctrl)
	jobID := uuid.New()

	repo.EXPECT().GetJob(gomock.Any(), jobID).Return(nil, batch.ErrJobNotFound)

	svc := batch.NewService(repo, dist, 2)

	_, err := svc.GetStatus(context.Background(), jobID)
	assert.ErrorIs(t, err, batch.ErrJobNotFound)
}
