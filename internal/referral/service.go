package referral

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=graph_mock.go -package=referral
type Graph interface {
	// ResolveBusinessKey returns the user owning the exact business key, or
	// ErrNotFound. Identity resolution never falls back to fuzzy matching.
	ResolveBusinessKey(ctx context.Context, key string) (*User, error)

	// AncestorChain walks parent references from the given user, nearest
	// referrer first, stopping at a root or after maxDepth hops.
	AncestorChain(ctx context.Context, id uuid.UUID, maxDepth int) ([]AncestorRef, error)

	DirectReferralCount(ctx context.Context, id uuid.UUID) (int, error)

	// SearchByName is an operator convenience for locating a business key.
	// Results are suggestions only and never feed identity decisions.
	SearchByName(ctx context.Context, name string, limit int) ([]*User, error)
}

type Service struct {
	graph Graph
}

func NewService(graph Graph) *Service {
	return &Service{graph: graph}
}

func (s *Service) Lookup(ctx context.Context, businessKey string) (*User, error) {
	return s.graph.ResolveBusinessKey(ctx, businessKey)
}

func (s *Service) Search(ctx context.Context, name string, limit int) ([]*User, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	users, err := s.graph.SearchByName(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	return users, nil
}
