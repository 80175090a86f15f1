package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

//go:generate mockgen -source=service.go -destination=ledger_mock.go -package=commission
type Ledger interface {
	// CreditAll applies every credit or none: each income's wallet increment
	// and ledger insert commit in one storage transaction. Transient
	// contention surfaces as ErrConflict.
	CreditAll(ctx context.Context, incomes []*Income) error

	ListIncomes(ctx context.Context, filter IncomeFilter) ([]*Income, error)
}

const (
	creditAttempts = 3
	backoffBase    = 10 * time.Millisecond
)

// Service is the distribution executor: it resolves the source user, evaluates
// the rule table against the ancestor chain, and commits the resulting credits
// atomically.
type Service struct {
	graph  referral.Graph
	ledger Ledger
	rates  RateTable
}

func NewService(graph referral.Graph, ledger Ledger) *Service {
	return &Service{
		graph:  graph,
		ledger: ledger,
		rates:  DefaultRates,
	}
}

// Distribute runs one commission distribution. Validation happens strictly
// before any side effect; a source user with no payable upline is a success
// with zero credits, not an error.
func (s *Service) Distribute(ctx context.Context, req Request) (*Result, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if !req.IncomeType.Valid() {
		return nil, ErrInvalidIncomeType
	}

	source, err := s.graph.ResolveBusinessKey(ctx, req.BusinessKey)
	if err != nil {
		if errors.Is(err, referral.ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("resolving source user: %w", err)
	}

	chain, err := s.graph.AncestorChain(ctx, source.ID, referral.MaxDepth)
	if err != nil {
		return nil, fmt.Errorf("fetching ancestor chain: %w", err)
	}

	shares := Evaluate(s.rates, chain, req.Amount)

	result := &Result{
		TransactionID: uuid.New(),
		Levels:        shares,
		CompletedAt:   time.Now().UTC(),
	}

	var incomes []*Income

	for _, share := range shares {
		if !share.Eligible {
			continue
		}

		incomes = append(incomes, &Income{
			RecipientID:       share.UserID,
			Amount:            share.Amount,
			RateBasisPoints:   share.RateBasisPoints,
			Level:             share.Level,
			IncomeType:        req.IncomeType,
			Origin:            req.Origin,
			SourceID:          source.ID,
			SourceBusinessKey: source.BusinessKey,
			SourceAmount:      req.Amount,
			Description:       req.Notes,
			TransactionID:     result.TransactionID,
		})

		result.Distributed += share.Amount
		result.AncestorsCredited++
	}

	if len(incomes) == 0 {
		return result, nil
	}

	if err := s.creditWithRetry(ctx, incomes); err != nil {
		return nil, err
	}

	return result, nil
}

// DistributeOne is the manual entry point: a single ad-hoc distribution with
// the full per-level breakdown returned synchronously.
func (s *Service) DistributeOne(ctx context.Context, businessKey string, amount int64, incomeType IncomeType, notes string) (*Result, error) {
	return s.Distribute(ctx, Request{
		BusinessKey: businessKey,
		Amount:      amount,
		IncomeType:  incomeType,
		Notes:       notes,
		Origin:      OriginManual,
	})
}

func (s *Service) Incomes(ctx context.Context, filter IncomeFilter) ([]*Income, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	return s.ledger.ListIncomes(ctx, filter)
}

// creditWithRetry retries ErrConflict with exponential backoff. Anything else
// fails immediately; the ledger already rolled back, so no partial credits
// survive a failed attempt.
func (s *Service) creditWithRetry(ctx context.Context, incomes []*Income) error {
	delay := backoffBase

	var err error

	for attempt := 0; attempt < creditAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
		}

		err = s.ledger.CreditAll(ctx, incomes)
		if err == nil || !errors.Is(err, ErrConflict) {
			return err
		}
	}

	return err
}
