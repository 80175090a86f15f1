package commission

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// IncomeType tags what kind of earning a distribution settles.
type IncomeType string

const (
	// IncomeTrade is a share of trading commission generated by a downline account.
	IncomeTrade IncomeType = "trade"
	// IncomeDepositBonus is a promotional credit tied to a downline deposit.
	IncomeDepositBonus IncomeType = "deposit_bonus"
	// IncomeAdjustment is an operator correction.
	IncomeAdjustment IncomeType = "adjustment"
)

func (t IncomeType) Valid() bool {
	switch t {
	case IncomeTrade, IncomeDepositBonus, IncomeAdjustment:
		return true
	}

	return false
}

// Origin records which entry point triggered a distribution.
type Origin string

const (
	OriginManual Origin = "manual"
	OriginBatch  Origin = "batch"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidIncomeType = errors.New("unsupported income type")
	// ErrConflict marks transient storage contention. The executor retries it
	// a bounded number of times before giving up.
	ErrConflict = errors.New("storage conflict")
)

// Request describes one distribution: a gross amount earned by the user owning
// BusinessKey, to be shared up that user's referral chain.
type Request struct {
	BusinessKey string
	Amount      int64 // gross amount in cents
	IncomeType  IncomeType
	Notes       string
	Origin      Origin
}

// Income is one immutable ledger row: a single level-credit of a single
// distribution. Rows are only ever inserted, never updated or deleted;
// corrections happen through new adjustment distributions.
type Income struct {
	ID                uuid.UUID
	RecipientID       uuid.UUID
	Amount            int64 // credited amount in cents
	RateBasisPoints   int
	Level             int
	IncomeType        IncomeType
	Origin            Origin
	SourceID          uuid.UUID
	SourceBusinessKey string
	SourceAmount      int64 // gross amount the rate was applied to
	Description       string
	TransactionID     uuid.UUID // groups the rows of one distribution
	CreatedAt         time.Time
}

// IncomeFilter narrows ledger listings for history and reporting consumers.
type IncomeFilter struct {
	RecipientID       *uuid.UUID
	IncomeType        *IncomeType
	SourceBusinessKey *string
	Limit             int
}

// Result is the synchronous outcome of one distribution. Levels always holds
// one entry per ancestor in the chain, eligible or not, so the decision is
// fully re-derivable for audits.
type Result struct {
	TransactionID     uuid.UUID
	Distributed       int64 // sum of credited amounts, cents
	AncestorsCredited int
	Levels            []LevelShare
	CompletedAt       time.Time
}
