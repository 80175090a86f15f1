package commission_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

func validRequest() commission.Request {
	return commission.Request{
		BusinessKey: "MT5-1001",
		Amount:      150_000,
		IncomeType:  commission.IncomeTrade,
		Origin:      commission.OriginManual,
	}
}

func sourceUser() *referral.User {
	return &referral.User{
		ID:          uuid.New(),
		BusinessKey: "MT5-1001",
		Name:        "Source Trader",
		Active:      true,
	}
}

func TestService_Distribute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *commission.Request)
		wantErr error
	}{
		{
			name:    "ZeroAmount",
			mutate:  func(req *commission.Request) { req.Amount = 0 },
			wantErr: commission.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			mutate:  func(req *commission.Request) { req.Amount = -100 },
			wantErr: commission.ErrInvalidAmount,
		},
		{
			name:    "UnknownIncomeType",
			mutate:  func(req *commission.Request) { req.IncomeType = "lottery" },
			wantErr: commission.ErrInvalidIncomeType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No expectations: validation failures must not touch the graph
			// or the ledger.
			graph := referral.NewMockGraph(ctrl)
			ledger := commission.NewMockLedger(ctrl)

			req := validRequest()
			tt.mutate(&req)

			got, err := commission.NewService(graph, ledger).Distribute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_Distribute_SourceNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)

	graph.EXPECT().
		ResolveBusinessKey(gomock.Any(), "MT5-1001").
		Return(nil, referral.ErrNotFound)

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	assert.ErrorIs(t, err, referral.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_Distribute_NoReferrer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).Return(nil, nil)

	// No CreditAll expectation: nothing to credit is not an error.
	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Zero(t, got.Distributed)
	assert.Zero(t, got.AncestorsCredited)
	assert.Empty(t, got.Levels)
	assert.NotEmpty(t, got.TransactionID)
}

func TestService_Distribute_FullChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	chain := make([]referral.AncestorRef, 5)
	for i := range chain {
		chain[i] = referral.AncestorRef{
			UserID:          uuid.New(),
			BusinessKey:     "MT5-200" + string(rune('0'+i)),
			DirectReferrals: 5,
		}
	}

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).Return(chain, nil)

	var credited []*commission.Income

	ledger.EXPECT().
		CreditAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incomes []*commission.Income) error {
			credited = incomes
			return nil
		})

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	require.NoError(t, err)

	// $1500 through five eligible levels at 2% each.
	assert.Equal(t, int64(15_000), got.Distributed)
	assert.Equal(t, 5, got.AncestorsCredited)
	require.Len(t, got.Levels, 5)

	var breakdownTotal int64

	for i, share := range got.Levels {
		assert.Equal(t, i+1, share.Level)
		assert.True(t, share.Eligible)
		assert.Equal(t, int64(3000), share.Amount)

		breakdownTotal += share.Amount
	}

	assert.Equal(t, got.Distributed, breakdownTotal)

	require.Len(t, credited, 5)

	for i, in := range credited {
		assert.Equal(t, chain[i].UserID, in.RecipientID)
		assert.Equal(t, int64(3000), in.Amount)
		assert.Equal(t, i+1, in.Level)
		assert.Equal(t, source.ID, in.SourceID)
		assert.Equal(t, "MT5-1001", in.SourceBusinessKey)
		assert.Equal(t, int64(150_000), in.SourceAmount)
		assert.Equal(t, got.TransactionID, in.TransactionID)
	}
}

func TestService_Distribute_IneligibleLevelsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	chain := []referral.AncestorRef{
		{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 3},
		{UserID: uuid.New(), BusinessKey: "MT5-2002", DirectReferrals: 1},
		{UserID: uuid.New(), BusinessKey: "MT5-2003", DirectReferrals: 4},
	}

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).Return(chain, nil)

	ledger.EXPECT().
		CreditAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incomes []*commission.Income) error {
			require.Len(t, incomes, 2)
			assert.Equal(t, 1, incomes[0].Level)
			assert.Equal(t, 3, incomes[1].Level)
			return nil
		})

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	require.NoError(t, err)

	// Level 2's ancestor has one direct referral, below the level threshold;
	// that is business-as-usual, not a partial failure.
	assert.Equal(t, 2, got.AncestorsCredited)
	assert.Equal(t, int64(6000), got.Distributed)
	require.Len(t, got.Levels, 3)
	assert.False(t, got.Levels[1].Eligible)
}

func TestService_Distribute_ConflictRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().
		AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).
		Return([]referral.AncestorRef{{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 1}}, nil)

	gomock.InOrder(
		ledger.EXPECT().CreditAll(gomock.Any(), gomock.Any()).Return(commission.ErrConflict),
		ledger.EXPECT().CreditAll(gomock.Any(), gomock.Any()).Return(commission.ErrConflict),
		ledger.EXPECT().CreditAll(gomock.Any(), gomock.Any()).Return(nil),
	)

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(3000), got.Distributed)
}

func TestService_Distribute_ConflictExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().
		AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).
		Return([]referral.AncestorRef{{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 1}}, nil)

	ledger.EXPECT().
		CreditAll(gomock.Any(), gomock.Any()).
		Return(commission.ErrConflict).
		Times(3)

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	assert.ErrorIs(t, err, commission.ErrConflict)
	assert.Nil(t, got)
}

func TestService_Distribute_PermanentErrorNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().
		AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).
		Return([]referral.AncestorRef{{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 1}}, nil)

	permanent := errors.New("recipient gone")

	ledger.EXPECT().CreditAll(gomock.Any(), gomock.Any()).Return(permanent).Times(1)

	got, err := commission.NewService(graph, ledger).Distribute(context.Background(), validRequest())
	assert.ErrorIs(t, err, permanent)
	assert.Nil(t, got)
}

func TestService_Distribute_ConcurrentCreditsSameAncestor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()
	ancestor := referral.AncestorRef{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 1}

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil).Times(2)
	graph.EXPECT().
		AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).
		Return([]referral.AncestorRef{ancestor}, nil).
		Times(2)

	var (
		mu       sync.Mutex
		credited []*commission.Income
	)

	ledger.EXPECT().
		CreditAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incomes []*commission.Income) error {
			mu.Lock()
			credited = append(credited, incomes...)
			mu.Unlock()
			return nil
		}).
		Times(2)

	svc := commission.NewService(graph, ledger)

	// Two $100 distributions racing on the same level-1 ancestor must land
	// as two ledger rows worth $2 each, never one lost update.
	var wg sync.WaitGroup

	req := validRequest()
	req.Amount = 10_000

	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Distribute(context.Background(), req)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	require.Len(t, credited, 2)

	var total int64

	for _, in := range credited {
		assert.Equal(t, ancestor.UserID, in.RecipientID)

		total += in.Amount
	}

	assert.Equal(t, int64(400), total)
}

func TestService_DistributeOne_SetsManualOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	graph := referral.NewMockGraph(ctrl)
	ledger := commission.NewMockLedger(ctrl)
	source := sourceUser()

	graph.EXPECT().ResolveBusinessKey(gomock.Any(), "MT5-1001").Return(source, nil)
	graph.EXPECT().
		AncestorChain(gomock.Any(), source.ID, referral.MaxDepth).
		Return([]referral.AncestorRef{{UserID: uuid.New(), BusinessKey: "MT5-2001", DirectReferrals: 2}}, nil)

	ledger.EXPECT().
		CreditAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incomes []*commission.Income) error {
			require.Len(t, incomes, 1)
			assert.Equal(t, commission.OriginManual, incomes[0].Origin)
			assert.Equal(t, "ops correction", incomes[0].Description)
			return nil
		})

	svc := commission.NewService(graph, ledger)

	got, err := svc.DistributeOne(context.Background(), "MT5-1001", 150_000, commission.IncomeTrade, "ops correction")
	require.NoError(t, err)
	assert.Equal(t, 1, got.AncestorsCredited)
}
