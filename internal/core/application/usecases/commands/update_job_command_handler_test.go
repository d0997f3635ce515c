package commands_test

import (
	"testing"
	"time"

	"jobdispatch/internal/core/application/usecases/commands"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpdateHandler(store *memoryStore, publisher ports.JobEventPublisher) commands.UpdateJobCommandHandler {
	return commands.NewUpdateJobCommandHandler(store, kernel.FixedClock{At: testCreatedAt}, publisher, nil)
}

func TestUpdateJobCommandHandler_Handle(t *testing.T) {
	moved := testDueAt.Add(24 * time.Hour)

	t.Run("should move the due time and keep telemetry columns", func(t *testing.T) {
		// Given
		store := newMemoryStore()
		open := newOpenJob(t)
		open.ApplyTelemetry(job.NewTelemetryPatch(job.TelemetryInput{Flagged: str("true"), SessionTime: str("00:42")}))
		store.seed(t, open)
		publisher := &recordingPublisher{}
		cmd, err := commands.NewUpdateJobCommand(open.ID(), job.UpdatePatch{DueAt: &moved, AdminComments: str("moved")})
		require.NoError(t, err)

		// When
		updated, err := newUpdateHandler(store, publisher).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, moved, updated.DueAt())
		stored := store.snapshot(t, open.ID())
		assert.Equal(t, moved, stored.DueAt)
		assert.Equal(t, "moved", stored.AdminComments)
		assert.Equal(t, job.FlagYes, stored.Flagged)
		assert.Equal(t, "00:42", stored.SessionTime)

		events := publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "update", events[0].Operation)
	})

	t.Run("should write nothing for an empty patch", func(t *testing.T) {
		store := newMemoryStore()
		open := store.seed(t, newOpenJob(t))
		publisher := &recordingPublisher{}
		cmd, _ := commands.NewUpdateJobCommand(open.ID(), job.UpdatePatch{})

		updated, err := newUpdateHandler(store, publisher).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, testDueAt, updated.DueAt())
		assert.Empty(t, publisher.Events())
	})

	t.Run("should refuse to move the due time of an offered job", func(t *testing.T) {
		store := newMemoryStore()
		offered := store.seed(t, newOfferedJob(t, testDueAt))
		cmd, _ := commands.NewUpdateJobCommand(offered.ID(), job.UpdatePatch{DueAt: &moved})

		_, err := newUpdateHandler(store, nil).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, testDueAt, store.snapshot(t, offered.ID()).DueAt)
	})

	t.Run("should refuse a due time change when an offer lands between read and write", func(t *testing.T) {
		// Given
		store := newMemoryStore()
		open := store.seed(t, newOpenJob(t))
		store.interleave = func() {
			offered, err := job.RestoreJob(open.Snapshot())
			require.NoError(t, err)
			require.NoError(t, offered.Offer(testDueAt))
			store.seed(t, offered)
		}
		cmd, _ := commands.NewUpdateJobCommand(open.ID(), job.UpdatePatch{DueAt: &moved})

		// When
		_, err := newUpdateHandler(store, nil).Handle(t.Context(), cmd)

		// Then
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		stored := store.snapshot(t, open.ID())
		assert.Equal(t, job.Offered, stored.Status)
		assert.Equal(t, testDueAt, stored.DueAt)
	})

	t.Run("should write comments regardless of a concurrent transition", func(t *testing.T) {
		store := newMemoryStore()
		accepted := store.seed(t, newAcceptedJob(t))
		store.interleave = func() {
			completed, err := job.RestoreJob(accepted.Snapshot())
			require.NoError(t, err)
			require.NoError(t, completed.End(testCreatedAt))
			store.seed(t, completed)
		}
		cmd, _ := commands.NewUpdateJobCommand(accepted.ID(), job.UpdatePatch{AdminComments: str("no answer")})

		_, err := newUpdateHandler(store, nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		stored := store.snapshot(t, accepted.ID())
		assert.Equal(t, job.Completed, stored.Status)
		assert.Equal(t, "no answer", stored.AdminComments)
	})

	t.Run("should report an unknown job", func(t *testing.T) {
		cmd, _ := commands.NewUpdateJobCommand(kernel.NewUUID(), job.UpdatePatch{AdminComments: str("x")})

		_, err := newUpdateHandler(newMemoryStore(), nil).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
