// Package commands contains business operations that modify job state.
// All commands follow a consistent pattern: constructor validation, transaction management,
// compare-and-swap persistence, then side effects (events, notifications) after commit.
package commands

import (
	"context"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// ChangeTracker lists the jobs written within a transaction.
	ChangeTracker interface {
		ChangedJobs() []*job.Job
	}

	// JobUoW manages transactions for job operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.JobRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	JobUoW interface {
		TxManager
		JobRepoFactory
		ChangeTracker
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}
)
