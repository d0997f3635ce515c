package jobrepo_test

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobdispatch/internal/adapters/out/postgres/jobrepo"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	createdAt = time.Date(2024, 8, 26, 12, 0, 0, 0, time.UTC)
	dueAt     = time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC)
)

// MockAggregateTracker records the jobs the repository reports as written.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate *job.Job) {
	m.Called(id, aggregate)
}

func newTracker() *MockAggregateTracker {
	tracker := &MockAggregateTracker{}
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	return tracker
}

// newSQLiteDB opens a file-backed sqlite database with a single connection,
// so concurrent writers are serialized the way row locks serialize them in postgres.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "jobs.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.DistanceDTO{}))
	return db
}

func addJob(t *testing.T, repo *jobrepo.GormJobRepository) *job.Job {
	t.Helper()

	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), createdAt, dueAt)
	require.NoError(t, err)
	require.NoError(t, repo.Add(t.Context(), j))
	return j
}

func addOfferedJob(t *testing.T, repo *jobrepo.GormJobRepository, expiresAt time.Time) *job.Job {
	t.Helper()

	j := addJob(t, repo)
	require.NoError(t, j.Offer(expiresAt))
	affected, err := repo.UpdateIfStatus(t.Context(), j, job.Open)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)
	return j
}

func TestGormJobRepository_AddAndGet(t *testing.T) {
	t.Run("should round-trip a new job", func(t *testing.T) {
		// Given
		tracker := newTracker()
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), tracker)

		// When
		j := addJob(t, repo)
		got, err := repo.Get(t.Context(), j.ID())

		// Then
		require.NoError(t, err)
		assert.Equal(t, j.Snapshot(), got.Snapshot())
		assert.Equal(t, job.Open, got.Status())
		assert.Equal(t, job.FlagNo, got.Flagged())
		tracker.AssertCalled(t, "TrackAggregate", j.ID(), j)
	})

	t.Run("should report a missing job as not found", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())

		_, err := repo.Get(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed id", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())

		_, err := repo.Get(t.Context(), kernel.UUID{})

		require.Error(t, err)
	})
}

func TestGormJobRepository_UpdateIfStatus(t *testing.T) {
	t.Run("should write lifecycle columns when the status matches", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		expiresAt := dueAt.Add(-48 * time.Hour)
		j := addOfferedJob(t, repo, expiresAt)
		translator := kernel.NewUUID()
		require.NoError(t, j.Accept(translator, createdAt.Add(time.Hour)))

		// When
		affected, err := repo.UpdateIfStatus(t.Context(), j, job.Offered)

		// Then
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, job.Accepted, got.Status())
		require.NotNil(t, got.Translator())
		assert.Equal(t, translator, *got.Translator())
		require.NotNil(t, got.ExpiresAt())
		assert.True(t, expiresAt.Equal(*got.ExpiresAt()))
	})

	t.Run("should write nothing when the status moved on", func(t *testing.T) {
		// Given
		tracker := newTracker()
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), tracker)
		j := addJob(t, repo)
		require.NoError(t, j.Offer(dueAt.Add(-48*time.Hour)))

		// When
		affected, err := repo.UpdateIfStatus(t.Context(), j, job.Offered)

		// Then
		require.NoError(t, err)
		assert.Zero(t, affected)
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, job.Open, got.Status())
		tracker.AssertNumberOfCalls(t, "TrackAggregate", 1)
	})

	t.Run("should leave telemetry columns untouched", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)
		yes := job.FlagYes
		comments := "checked"
		_, err := repo.ApplyTelemetry(t.Context(), j.ID(), job.TelemetryPatch{Flagged: &yes, AdminComments: &comments})
		require.NoError(t, err)

		// When
		require.NoError(t, j.Offer(dueAt.Add(-48*time.Hour)))
		_, err = repo.UpdateIfStatus(t.Context(), j, job.Open)
		require.NoError(t, err)

		// Then
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, job.FlagYes, got.Flagged())
		assert.Equal(t, "checked", got.AdminComments())
	})

	t.Run("should let exactly one of many concurrent writers win", func(t *testing.T) {
		// Given
		db := newSQLiteDB(t)
		repo := jobrepo.NewGormJobRepository(db, newTracker())
		seeded := addOfferedJob(t, repo, dueAt.Add(-48*time.Hour))

		// When
		const writers = 8
		var wins atomic.Int64
		var wg sync.WaitGroup
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r := jobrepo.NewGormJobRepository(db, newTracker())
				candidate, err := r.Get(t.Context(), seeded.ID())
				if !assert.NoError(t, err) {
					return
				}
				if !assert.NoError(t, candidate.Accept(kernel.NewUUID(), createdAt.Add(time.Hour))) {
					return
				}
				affected, err := r.UpdateIfStatus(t.Context(), candidate, job.Offered)
				if assert.NoError(t, err) {
					wins.Add(affected)
				}
			}()
		}
		wg.Wait()

		// Then
		assert.EqualValues(t, 1, wins.Load())
	})
}

func TestGormJobRepository_Telemetry(t *testing.T) {
	t.Run("should update only present job columns", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)
		session := "01:10:00"
		yes := job.FlagYes

		// When
		affected, err := repo.ApplyTelemetry(t.Context(), j.ID(), job.TelemetryPatch{
			SessionTime: &session,
			ByAdmin:     &yes,
		})

		// Then
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, "01:10:00", got.SessionTime())
		assert.Equal(t, job.FlagYes, got.ByAdmin())
		assert.Equal(t, job.FlagNo, got.Flagged())
		assert.Equal(t, job.Open, got.Status())
	})

	t.Run("should report zero rows for an unknown job", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		session := "00:30:00"

		affected, err := repo.ApplyTelemetry(t.Context(), kernel.NewUUID(), job.TelemetryPatch{SessionTime: &session})

		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("should merge distance updates field by field", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)
		distance := "12"
		minutes := "45"

		// When
		require.NoError(t, repo.UpsertDistance(t.Context(), j.ID(), job.DistanceUpdate{Distance: &distance}))
		require.NoError(t, repo.UpsertDistance(t.Context(), j.ID(), job.DistanceUpdate{Time: &minutes}))

		// Then
		got, err := repo.GetDistance(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, job.Distance{JobID: j.ID(), Distance: "12", Time: "45"}, got)
	})

	t.Run("should report a missing distance record as not found", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)

		_, err := repo.GetDistance(t.Context(), j.ID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGormJobRepository_ApplyUpdate(t *testing.T) {
	moved := dueAt.Add(24 * time.Hour)

	t.Run("should move the due time of an open job and keep telemetry", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)
		session := "00:45:00"
		_, err := repo.ApplyTelemetry(t.Context(), j.ID(), job.TelemetryPatch{SessionTime: &session})
		require.NoError(t, err)
		open := job.Open

		// When
		affected, err := repo.ApplyUpdate(t.Context(), j.ID(), job.UpdatePatch{DueAt: &moved}, &open)

		// Then
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.True(t, moved.Equal(got.DueAt()))
		assert.Equal(t, "00:45:00", got.SessionTime())
	})

	t.Run("should write nothing when the status moved on", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addOfferedJob(t, repo, dueAt.Add(-48*time.Hour))
		open := job.Open

		// When
		affected, err := repo.ApplyUpdate(t.Context(), j.ID(), job.UpdatePatch{DueAt: &moved}, &open)

		// Then
		require.NoError(t, err)
		assert.Zero(t, affected)
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.True(t, dueAt.Equal(got.DueAt()))
		assert.Equal(t, job.Offered, got.Status())
	})

	t.Run("should write comments in any status without a guard", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addOfferedJob(t, repo, dueAt.Add(-48*time.Hour))
		comments := "customer asked for a woman"

		affected, err := repo.ApplyUpdate(t.Context(), j.ID(), job.UpdatePatch{AdminComments: &comments}, nil)

		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
		got, err := repo.Get(t.Context(), j.ID())
		require.NoError(t, err)
		assert.Equal(t, comments, got.AdminComments())
		assert.True(t, dueAt.Equal(got.DueAt()))
	})

	t.Run("should write nothing for an empty patch", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		j := addJob(t, repo)

		affected, err := repo.ApplyUpdate(t.Context(), j.ID(), job.UpdatePatch{}, nil)

		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestGormJobRepository_ListExpiredOffers(t *testing.T) {
	t.Run("should list offers whose deadline passed, oldest first", func(t *testing.T) {
		// Given
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		now := createdAt.Add(10 * time.Hour)
		late := addOfferedJob(t, repo, createdAt.Add(2*time.Hour))
		early := addOfferedJob(t, repo, createdAt.Add(time.Hour))
		atNow := addOfferedJob(t, repo, now)
		addOfferedJob(t, repo, now.Add(time.Minute))
		addJob(t, repo)

		// When
		expired, err := repo.ListExpiredOffers(t.Context(), now, 10)

		// Then
		require.NoError(t, err)
		require.Len(t, expired, 3)
		assert.Equal(t, early.ID(), expired[0].ID())
		assert.Equal(t, late.ID(), expired[1].ID())
		assert.Equal(t, atNow.ID(), expired[2].ID())
	})

	t.Run("should honour the limit", func(t *testing.T) {
		repo := jobrepo.NewGormJobRepository(newSQLiteDB(t), newTracker())
		for i := range 3 {
			addOfferedJob(t, repo, createdAt.Add(time.Duration(i+1)*time.Minute))
		}

		expired, err := repo.ListExpiredOffers(t.Context(), createdAt.Add(time.Hour), 2)

		require.NoError(t, err)
		assert.Len(t, expired, 2)
	})
}
