package referral

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxDepth is how many upline generations a commission can reach.
const MaxDepth = 5

var ErrNotFound = errors.New("user not found")

// User is the read-only projection of a platform user maintained by the
// registration side. The engine never mutates referral structure or the
// denormalized DirectReferrals count; wallet fields are credited exclusively
// through the commission ledger.
type User struct {
	ID              uuid.UUID
	ParentID        *uuid.UUID
	BusinessKey     string // externally issued trading account id, unique
	Name            string
	DirectReferrals int
	WalletBalance   int64 // cents
	TotalEarned     int64 // cents
	Active          bool
	CreatedAt       time.Time
}

// AncestorRef is one entry of an ancestor chain snapshot, nearest referrer
// first. The DirectReferrals value is frozen at snapshot time so concurrent
// registrations cannot change an in-flight eligibility decision.
type AncestorRef struct {
	UserID          uuid.UUID
	BusinessKey     string
	DirectReferrals int
}
