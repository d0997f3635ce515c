// Package postgres provides the GORM-based Unit of Work used by command handlers.
//
// A unit of work wraps one database transaction and records every job aggregate
// written through its repository, so handlers can publish change events after commit.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := uow.JobRepository().UpdateIfStatus(ctx, j, job.Offered); err != nil {
//	    return err
//	}
//
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	for _, changed := range uow.ChangedJobs() {
//	    publish(changed)
//	}
//
// Instances are not safe for concurrent use; each goroutine creates its own.
package postgres

import (
	"context"

	"jobdispatch/internal/adapters/out/postgres/jobrepo"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate *job.Job
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the jobs it writes.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin on an active unit of work is a no-op.
// Tracking is reset so a reused instance reports only its latest transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit makes the transaction's changes permanent.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes together with the tracked jobs.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// JobRepository returns a repository bound to the active transaction, or to the
// plain connection pool when no transaction has been started.
func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return jobrepo.NewGormJobRepository(db, uow)
}

// TrackAggregate registers a job written within this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate *job.Job) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// ChangedJobs lists the tracked jobs in write order.
func (uow *GormUnitOfWork) ChangedJobs() []*job.Job {
	changed := make([]*job.Job, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		changed = append(changed, tracked.Aggregate)
	}
	return changed
}
