package commission

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

// RateTable maps upline level (1-based) to the commission rate in basis
// points. Its length caps how many levels can ever pay out.
type RateTable []int

// DefaultRates pays a flat 2% at every level. This is the canonical table;
// marketing copy elsewhere describing a "30% + bonus" level-1 rate does not
// match any payout the platform ever made and is deliberately not implemented.
var DefaultRates = RateTable{200, 200, 200, 200, 200}

// LevelShare is the rule evaluator's decision for one chain position.
type LevelShare struct {
	Level           int
	UserID          uuid.UUID
	BusinessKey     string
	RateBasisPoints int
	Amount          int64 // cents; zero when ineligible
	Eligible        bool
}

// Evaluate decides, for each ancestor in the chain, whether that level pays
// and how much. The ancestor at position L earns level L only if their own
// direct-referral count is at least L. Pure function of its inputs: the same
// chain snapshot and gross amount always produce the same shares.
func Evaluate(rates RateTable, chain []referral.AncestorRef, gross int64) []LevelShare {
	shares := make([]LevelShare, 0, len(chain))

	for i, ancestor := range chain {
		level := i + 1
		if level > len(rates) {
			break
		}

		share := LevelShare{
			Level:           level,
			UserID:          ancestor.UserID,
			BusinessKey:     ancestor.BusinessKey,
			RateBasisPoints: rates[level-1],
		}

		if ancestor.DirectReferrals >= level {
			share.Eligible = true
			share.Amount = levelAmount(gross, rates[level-1])
		}

		shares = append(shares, share)
	}

	return shares
}

// levelAmount applies a basis-point rate to a gross cent amount, rounding
// half away from zero to whole cents.
func levelAmount(gross int64, basisPoints int) int64 {
	return decimal.NewFromInt(gross).
		Mul(decimal.NewFromInt(int64(basisPoints))).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()
}
