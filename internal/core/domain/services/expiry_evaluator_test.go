package services_test

import (
	"testing"
	"time"

	"jobdispatch/internal/core/domain/services"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExpiryEvaluator_FixtureTable(t *testing.T) {
	evaluator := services.NewExpiryEvaluator(services.FixtureExpiryTiers())

	testCases := []struct {
		name      string
		dueAt     string
		createdAt string
		expected  string
	}{
		{"should expire at due time for a 96h lead", "2024-08-30 12:00:00", "2024-08-26 12:00:00", "2024-08-30 12:00:00"},
		{"should give 90 minutes for a 26h lead", "2024-08-30 12:00:00", "2024-08-29 10:00:00", "2024-08-29 11:30:00"},
		{"should give 16 hours for a 72h lead", "2024-08-30 12:00:00", "2024-08-27 12:00:00", "2024-08-28 04:00:00"},
		{"should expire 48 hours before due for a 144h lead", "2024-09-01 12:00:00", "2024-08-26 12:00:00", "2024-08-30 12:00:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := evaluator.WillExpireAt(at(tc.dueAt), at(tc.createdAt))

			assert.Equal(t, at(tc.expected), got)
		})
	}
}

func TestExpiryEvaluator_LiteralTable(t *testing.T) {
	evaluator := services.NewExpiryEvaluator(services.LiteralExpiryTiers())

	testCases := []struct {
		name      string
		dueAt     string
		createdAt string
		expected  string
	}{
		{"should fall through to due minus 48h for a 96h lead", "2024-08-30 12:00:00", "2024-08-26 12:00:00", "2024-08-28 12:00:00"},
		{"should expire at due time for a 26h lead", "2024-08-30 12:00:00", "2024-08-29 10:00:00", "2024-08-30 12:00:00"},
		{"should expire at due time for a 72h lead", "2024-08-30 12:00:00", "2024-08-27 12:00:00", "2024-08-30 12:00:00"},
		{"should expire 48 hours before due for a 144h lead", "2024-09-01 12:00:00", "2024-08-26 12:00:00", "2024-08-30 12:00:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := evaluator.WillExpireAt(at(tc.dueAt), at(tc.createdAt))

			assert.Equal(t, at(tc.expected), got)
		})
	}
}

func TestExpiryEvaluator_Boundaries(t *testing.T) {
	evaluator := services.NewExpiryEvaluator(services.FixtureExpiryTiers())
	createdAt := at("2024-08-26 12:00:00")

	t.Run("should truncate partial hours", func(t *testing.T) {
		// 48h59m is still 48 whole hours
		dueAt := createdAt.Add(48*time.Hour + 59*time.Minute)

		assert.Equal(t, createdAt.Add(90*time.Minute), evaluator.WillExpireAt(dueAt, createdAt))
		assert.Equal(t, "short-lead", evaluator.TierFor(dueAt, createdAt))
	})

	t.Run("should switch to medium lead at 49 hours", func(t *testing.T) {
		dueAt := createdAt.Add(49 * time.Hour)

		assert.Equal(t, createdAt.Add(16*time.Hour), evaluator.WillExpireAt(dueAt, createdAt))
	})

	t.Run("should switch to due time just past 72 hours", func(t *testing.T) {
		dueAt := createdAt.Add(73 * time.Hour)

		assert.Equal(t, dueAt, evaluator.WillExpireAt(dueAt, createdAt))
	})

	t.Run("should use the long lead tier from 97 hours", func(t *testing.T) {
		dueAt := createdAt.Add(97 * time.Hour)

		assert.Equal(t, dueAt.Add(-48*time.Hour), evaluator.WillExpireAt(dueAt, createdAt))
		assert.Equal(t, "long-lead", evaluator.TierFor(dueAt, createdAt))
	})

	t.Run("should use absolute lead time", func(t *testing.T) {
		assert.Equal(t, int64(26), services.LeadHours(at("2024-08-29 10:00:00"), at("2024-08-30 12:00:00")))
	})

	t.Run("should return UTC", func(t *testing.T) {
		zone := time.FixedZone("CEST", 2*60*60)

		got := evaluator.WillExpireAt(createdAt.Add(96*time.Hour).In(zone), createdAt.In(zone))

		assert.Equal(t, time.UTC, got.Location())
	})
}

func TestExpiryEvaluator_EmptyTable(t *testing.T) {
	evaluator := services.NewExpiryEvaluator(nil)
	dueAt := at("2024-08-30 12:00:00")

	assert.Equal(t, dueAt, evaluator.WillExpireAt(dueAt, at("2024-08-26 12:00:00")))
}

func TestExpiryTiersByName(t *testing.T) {
	t.Run("should default to the fixture table", func(t *testing.T) {
		tiers, err := services.ExpiryTiersByName("")

		require.NoError(t, err)
		got := services.NewExpiryEvaluator(tiers).WillExpireAt(at("2024-08-30 12:00:00"), at("2024-08-29 10:00:00"))
		assert.Equal(t, at("2024-08-29 11:30:00"), got)
	})

	t.Run("should resolve the literal table", func(t *testing.T) {
		tiers, err := services.ExpiryTiersByName(services.ExpiryTableLiteral)

		require.NoError(t, err)
		got := services.NewExpiryEvaluator(tiers).WillExpireAt(at("2024-08-30 12:00:00"), at("2024-08-29 10:00:00"))
		assert.Equal(t, at("2024-08-30 12:00:00"), got)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := services.ExpiryTiersByName("lenient")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
