package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

// Store reads the user projection owned by the registration side. Everything
// here is read-only; wallet credits go through the commission ledger store.
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

const selectUserColumns = `
	u.id, u.parent_id, u.business_key, u.name, u.direct_referrals,
	u.wallet_balance, u.total_earned, u.active, u.created_at
`

func scanUser(s scanner) (*referral.User, error) {
	var u referral.User

	if err := s.Scan(
		&u.ID, &u.ParentID, &u.BusinessKey, &u.Name, &u.DirectReferrals,
		&u.WalletBalance, &u.TotalEarned, &u.Active, &u.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) ResolveBusinessKey(ctx context.Context, key string) (*referral.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.business_key = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, referral.ErrNotFound
		}

		return nil, fmt.Errorf("resolving business key: %w", err)
	}

	return u, nil
}

// AncestorChain walks parent_id links with a depth-bounded recursive CTE.
// The bound doubles as the cycle guard: even corrupt parent data cannot
// loop past maxDepth rows.
func (s *Store) AncestorChain(ctx context.Context, id uuid.UUID, maxDepth int) ([]referral.AncestorRef, error) {
	if maxDepth <= 0 || maxDepth > referral.MaxDepth {
		maxDepth = referral.MaxDepth
	}

	query := `
		WITH RECURSIVE upline(id, level) AS (
			SELECT parent_id, 1
			FROM users
			WHERE id = $1 AND parent_id IS NOT NULL
			UNION ALL
			SELECT u.parent_id, up.level + 1
			FROM users u
			JOIN upline up ON u.id = up.id
			WHERE u.parent_id IS NOT NULL AND up.level < $2
		)
		SELECT u.id, u.business_key, u.direct_referrals
		FROM upline up
		JOIN users u ON u.id = up.id
		ORDER BY up.level
	`

	rows, err := s.db.QueryContext(ctx, query, id, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("walking upline: %w", err)
	}
	defer rows.Close()

	var chain []referral.AncestorRef

	for rows.Next() {
		var ref referral.AncestorRef
		if err := rows.Scan(&ref.UserID, &ref.BusinessKey, &ref.DirectReferrals); err != nil {
			return nil, fmt.Errorf("scanning ancestor: %w", err)
		}

		chain = append(chain, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating upline rows: %w", err)
	}

	return chain, nil
}

func (s *Store) DirectReferralCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int

	err := s.db.QueryRowContext(ctx,
		`SELECT direct_referrals FROM users WHERE id = $1`, id,
	).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, referral.ErrNotFound
		}

		return 0, fmt.Errorf("reading referral count: %w", err)
	}

	return count, nil
}

func (s *Store) SearchByName(ctx context.Context, name string, limit int) ([]*referral.User, error) {
	query := `SELECT ` + selectUserColumns + `
		FROM users u
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY u.name ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	var users []*referral.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}
