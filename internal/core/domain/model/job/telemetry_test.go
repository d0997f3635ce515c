package job_test

import (
	"testing"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestFlagFromInput(t *testing.T) {
	assert.Equal(t, job.FlagYes, job.FlagFromInput("true"))
	for _, raw := range []string{"false", "TRUE", "1", "yes", ""} {
		assert.Equal(t, job.FlagNo, job.FlagFromInput(raw), raw)
	}
}

func TestNewTelemetryPatch(t *testing.T) {
	t.Run("should produce an empty patch for an empty feed", func(t *testing.T) {
		p := job.NewTelemetryPatch(job.TelemetryInput{})

		assert.True(t, p.IsEmpty())
		assert.False(t, p.HasDistance())
		assert.False(t, p.HasJobFields())
	})

	t.Run("should touch only the flagged column", func(t *testing.T) {
		// Given
		in := job.TelemetryInput{Flagged: str("true")}

		// When
		p := job.NewTelemetryPatch(in)

		// Then
		require.NotNil(t, p.Flagged)
		assert.Equal(t, job.FlagYes, *p.Flagged)
		assert.Nil(t, p.ManuallyHandled)
		assert.Nil(t, p.ByAdmin)
		assert.Nil(t, p.SessionTime)
		assert.Nil(t, p.AdminComments)
		assert.False(t, p.HasDistance())
		assert.True(t, p.HasJobFields())
	})

	t.Run("should map present non-true flags to no", func(t *testing.T) {
		p := job.NewTelemetryPatch(job.TelemetryInput{ManuallyHandled: str("false"), ByAdmin: str("")})

		require.NotNil(t, p.ManuallyHandled)
		require.NotNil(t, p.ByAdmin)
		assert.Equal(t, job.FlagNo, *p.ManuallyHandled)
		assert.Equal(t, job.FlagNo, *p.ByAdmin)
	})

	t.Run("should keep text fields verbatim including empty", func(t *testing.T) {
		p := job.NewTelemetryPatch(job.TelemetryInput{SessionTime: str("01:30"), AdminComments: str("")})

		require.NotNil(t, p.SessionTime)
		require.NotNil(t, p.AdminComments)
		assert.Equal(t, "01:30", *p.SessionTime)
		assert.Empty(t, *p.AdminComments)
	})

	t.Run("should upsert distance when only time is non-empty", func(t *testing.T) {
		p := job.NewTelemetryPatch(job.TelemetryInput{Time: str("45"), Distance: str("")})

		require.True(t, p.HasDistance())
		require.NotNil(t, p.Distance.Time)
		assert.Equal(t, "45", *p.Distance.Time)
		require.NotNil(t, p.Distance.Distance)
		assert.Empty(t, *p.Distance.Distance)
		assert.False(t, p.HasJobFields())
	})

	t.Run("should skip distance when both distance and time are empty", func(t *testing.T) {
		p := job.NewTelemetryPatch(job.TelemetryInput{Time: str(""), Distance: str("")})

		assert.False(t, p.HasDistance())
		assert.True(t, p.IsEmpty())
	})

	t.Run("should not alias caller strings", func(t *testing.T) {
		comment := "first"
		p := job.NewTelemetryPatch(job.TelemetryInput{AdminComments: &comment})

		comment = "changed"

		assert.Equal(t, "first", *p.AdminComments)
	})
}

func TestDistance_Merge(t *testing.T) {
	jobID := kernel.NewUUID()

	t.Run("should keep prior value for absent field", func(t *testing.T) {
		prior := job.Distance{JobID: jobID, Distance: "12", Time: "30"}

		merged := prior.Merge(jobID, job.DistanceUpdate{Time: str("45")})

		assert.Equal(t, "12", merged.Distance)
		assert.Equal(t, "45", merged.Time)
	})

	t.Run("should start from empty strings for a new record", func(t *testing.T) {
		merged := job.Distance{}.Merge(jobID, job.DistanceUpdate{Distance: str("7")})

		assert.True(t, merged.JobID.IsEqual(jobID))
		assert.Equal(t, "7", merged.Distance)
		assert.Empty(t, merged.Time)
	})
}
