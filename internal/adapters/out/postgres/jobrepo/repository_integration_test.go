package jobrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"jobdispatch/internal/adapters/out/postgres/jobrepo"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// JobRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL
// container, where conditional writes contend on row locks.
type JobRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *jobrepo.GormJobRepository
	tracker    *MockAggregateTracker
}

func (suite *JobRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.DistanceDTO{}))
}

func (suite *JobRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs, job_distances").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = jobrepo.NewGormJobRepository(suite.db, suite.tracker)
}

func (suite *JobRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobRepositoryIntegrationTestSuite) TestAdd_ValidJob_Success() {
	// Given
	ctx := suite.T().Context()
	j := suite.createOpenJob()

	// When
	err := suite.repository.Add(ctx, j)

	// Then
	suite.Require().NoError(err)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", j.ID(), j)

	got, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Equal(j.Customer(), got.Customer())
	suite.True(j.DueAt().Equal(got.DueAt()))
	suite.Equal(job.Open, got.Status())
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_NonExistentJob_ReturnsNotFoundError() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdateIfStatus_FullLifecycle() {
	// Given
	ctx := suite.T().Context()
	j := suite.createOpenJob()
	suite.Require().NoError(suite.repository.Add(ctx, j))
	translator := kernel.NewUUID()
	actor := kernel.NewUUID()

	steps := []struct {
		name     string
		mutate   func() error
		expected job.Status
		want     job.Status
	}{
		{"offer", func() error { return j.Offer(dueAt.Add(-48 * time.Hour)) }, job.Open, job.Offered},
		{"accept", func() error { return j.Accept(translator, createdAt.Add(time.Hour)) }, job.Offered, job.Accepted},
		{"cancel", func() error { _, err := j.Cancel(actor); return err }, job.Accepted, job.Cancelled},
		{"reopen", j.Reopen, job.Cancelled, job.Open},
	}

	for _, step := range steps {
		// When
		suite.Require().NoError(step.mutate(), step.name)
		affected, err := suite.repository.UpdateIfStatus(ctx, j, step.expected)

		// Then
		suite.Require().NoError(err, step.name)
		suite.EqualValues(1, affected, step.name)

		got, err := suite.repository.Get(ctx, j.ID())
		suite.Require().NoError(err, step.name)
		suite.Equal(step.want, got.Status(), step.name)
	}

	got, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Nil(got.Translator())
	suite.Nil(got.ExpiresAt())
	suite.Nil(got.CancelledBy())
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdateIfStatus_ConcurrentTransactions_SingleWinner() {
	// Given
	ctx := suite.T().Context()
	j := suite.createOpenJob()
	suite.Require().NoError(suite.repository.Add(ctx, j))
	suite.Require().NoError(j.Offer(dueAt.Add(-48 * time.Hour)))
	_, err := suite.repository.UpdateIfStatus(ctx, j, job.Open)
	suite.Require().NoError(err)

	// When
	const writers = 10
	results := make(chan int64, writers)
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := suite.db.WithContext(ctx).Begin()
			repo := jobrepo.NewGormJobRepository(tx, suite.tracker)

			candidate, err := repo.Get(ctx, j.ID())
			if err != nil {
				tx.Rollback()
				results <- -1
				return
			}
			if err := candidate.Accept(kernel.NewUUID(), createdAt.Add(time.Hour)); err != nil {
				tx.Rollback()
				results <- -1
				return
			}
			affected, err := repo.UpdateIfStatus(ctx, candidate, job.Offered)
			if err != nil {
				tx.Rollback()
				results <- -1
				return
			}
			if err := tx.Commit().Error; err != nil {
				results <- -1
				return
			}
			results <- affected
		}()
	}
	wg.Wait()
	close(results)

	// Then
	var wins int64
	for affected := range results {
		suite.GreaterOrEqual(affected, int64(0))
		wins += affected
	}
	suite.EqualValues(1, wins)
}

func (suite *JobRepositoryIntegrationTestSuite) TestTelemetry_PartialMerge() {
	// Given
	ctx := suite.T().Context()
	j := suite.createOpenJob()
	suite.Require().NoError(suite.repository.Add(ctx, j))
	distance := "7"
	minutes := "30"
	comments := "late start"
	yes := job.FlagYes

	// When
	suite.Require().NoError(suite.repository.UpsertDistance(ctx, j.ID(), job.DistanceUpdate{Distance: &distance}))
	suite.Require().NoError(suite.repository.UpsertDistance(ctx, j.ID(), job.DistanceUpdate{Time: &minutes}))
	affected, err := suite.repository.ApplyTelemetry(ctx, j.ID(), job.TelemetryPatch{
		ManuallyHandled: &yes,
		AdminComments:   &comments,
	})

	// Then
	suite.Require().NoError(err)
	suite.EqualValues(1, affected)

	d, err := suite.repository.GetDistance(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Equal("7", d.Distance)
	suite.Equal("30", d.Time)

	got, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Equal(job.FlagYes, got.ManuallyHandled())
	suite.Equal(job.FlagNo, got.Flagged())
	suite.Equal("late start", got.AdminComments())
}

func (suite *JobRepositoryIntegrationTestSuite) TestListExpiredOffers_SkipsLiveAndNonOffered() {
	// Given
	ctx := suite.T().Context()
	now := createdAt.Add(5 * time.Hour)

	expired := suite.createOfferedJob(createdAt.Add(time.Hour))
	suite.createOfferedJob(now.Add(time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createOpenJob()))

	// When
	jobs, err := suite.repository.ListExpiredOffers(ctx, now, 10)

	// Then
	suite.Require().NoError(err)
	suite.Require().Len(jobs, 1)
	suite.Equal(expired.ID(), jobs[0].ID())
}

func (suite *JobRepositoryIntegrationTestSuite) createOpenJob() *job.Job {
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), createdAt, dueAt)
	suite.Require().NoError(err)
	return j
}

func (suite *JobRepositoryIntegrationTestSuite) createOfferedJob(expiresAt time.Time) *job.Job {
	ctx := suite.T().Context()
	j := suite.createOpenJob()
	suite.Require().NoError(suite.repository.Add(ctx, j))
	suite.Require().NoError(j.Offer(expiresAt))
	affected, err := suite.repository.UpdateIfStatus(ctx, j, job.Open)
	suite.Require().NoError(err)
	suite.Require().EqualValues(1, affected)
	return j
}

func TestJobRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(JobRepositoryIntegrationTestSuite))
}
