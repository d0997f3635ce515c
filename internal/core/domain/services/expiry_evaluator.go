package services

import (
	"fmt"
	"time"

	"jobdispatch/internal/pkg/errs"
)

// ExpiryTier is one row of an expiry table. Matches receives the whole number of hours
// between creation and due time; Expire computes the deadline for a matching job.
type ExpiryTier struct {
	Name    string
	Matches func(hours int64) bool
	Expire  func(dueAt, createdAt time.Time) time.Time
}

const (
	ExpiryTableFixture = "fixture"
	ExpiryTableLiteral = "literal"
)

// FixtureExpiryTiers is the production table:
//
//	72h < lead <= 96h   due time
//	lead <= 48h         creation + 90 minutes
//	lead <= 72h         creation + 16 hours
//	otherwise           due time - 48 hours
func FixtureExpiryTiers() []ExpiryTier {
	return []ExpiryTier{
		{
			Name:    "same-as-due",
			Matches: func(h int64) bool { return h > 72 && h <= 96 },
			Expire:  func(dueAt, _ time.Time) time.Time { return dueAt },
		},
		{
			Name:    "short-lead",
			Matches: func(h int64) bool { return h <= 48 },
			Expire:  func(_, createdAt time.Time) time.Time { return createdAt.Add(90 * time.Minute) },
		},
		{
			Name:    "medium-lead",
			Matches: func(h int64) bool { return h <= 72 },
			Expire:  func(_, createdAt time.Time) time.Time { return createdAt.Add(16 * time.Hour) },
		},
		longLeadTier(),
	}
}

// LiteralExpiryTiers is the first-match-wins table as it was originally written down.
// Its second and third rows can never match because the first row already covers them.
func LiteralExpiryTiers() []ExpiryTier {
	return []ExpiryTier{
		{
			Name:    "same-as-due",
			Matches: func(h int64) bool { return h <= 90 },
			Expire:  func(dueAt, _ time.Time) time.Time { return dueAt },
		},
		{
			Name:    "short-lead",
			Matches: func(h int64) bool { return h <= 24 },
			Expire:  func(_, createdAt time.Time) time.Time { return createdAt.Add(90 * time.Minute) },
		},
		{
			Name:    "medium-lead",
			Matches: func(h int64) bool { return h <= 72 },
			Expire:  func(_, createdAt time.Time) time.Time { return createdAt.Add(16 * time.Hour) },
		},
		longLeadTier(),
	}
}

func longLeadTier() ExpiryTier {
	return ExpiryTier{
		Name:    "long-lead",
		Matches: func(int64) bool { return true },
		Expire:  func(dueAt, _ time.Time) time.Time { return dueAt.Add(-48 * time.Hour) },
	}
}

// ExpiryTiersByName resolves a configured table name. An empty name selects the fixture table.
func ExpiryTiersByName(name string) ([]ExpiryTier, error) {
	switch name {
	case "", ExpiryTableFixture:
		return FixtureExpiryTiers(), nil
	case ExpiryTableLiteral:
		return LiteralExpiryTiers(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"expiry tier table",
			fmt.Errorf("%q is neither %q nor %q", name, ExpiryTableFixture, ExpiryTableLiteral),
		)
	}
}

// ExpiryEvaluator computes offer deadlines. It is pure and safe for concurrent use.
//
//	evaluator := services.NewExpiryEvaluator(services.FixtureExpiryTiers())
//	expiresAt := evaluator.WillExpireAt(job.DueAt(), job.CreatedAt())
type ExpiryEvaluator struct {
	tiers []ExpiryTier
}

// NewExpiryEvaluator copies tiers. A table without a catch-all row falls back to the due time.
func NewExpiryEvaluator(tiers []ExpiryTier) ExpiryEvaluator {
	return ExpiryEvaluator{tiers: append([]ExpiryTier(nil), tiers...)}
}

// WillExpireAt returns the deadline of the first tier matching the lead time. The lead is
// |dueAt - createdAt| truncated to whole hours, so the argument order of a reversed pair
// does not change the tier. The result is in UTC.
func (e ExpiryEvaluator) WillExpireAt(dueAt, createdAt time.Time) time.Time {
	dueAt, createdAt = dueAt.UTC(), createdAt.UTC()
	hours := LeadHours(dueAt, createdAt)

	for _, tier := range e.tiers {
		if tier.Matches(hours) {
			return tier.Expire(dueAt, createdAt)
		}
	}

	return dueAt
}

// TierFor names the tier that applies, for logging.
func (e ExpiryEvaluator) TierFor(dueAt, createdAt time.Time) string {
	hours := LeadHours(dueAt, createdAt)
	for _, tier := range e.tiers {
		if tier.Matches(hours) {
			return tier.Name
		}
	}
	return ""
}

// LeadHours is the absolute distance between the two instants in whole hours.
func LeadHours(dueAt, createdAt time.Time) int64 {
	d := dueAt.Sub(createdAt)
	if d < 0 {
		d = -d
	}
	return int64(d / time.Hour)
}
