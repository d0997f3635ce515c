package commands_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"jobdispatch/internal/core/application/usecases/commands"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testCreatedAt = time.Date(2024, 8, 26, 12, 0, 0, 0, time.UTC)
	testDueAt     = time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC)
)

// memoryStore is a JobUoWFactory over a map. Every write is immediately visible and
// UpdateIfStatus is atomic, which is all the handlers rely on.
type memoryStore struct {
	mu        sync.Mutex
	jobs      map[kernel.UUID]job.Snapshot
	distances map[kernel.UUID]job.Distance

	// interleave, when set, runs once right before the next conditional write, standing in
	// for a concurrent writer that commits between a handler's read and its write.
	interleave func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		jobs:      make(map[kernel.UUID]job.Snapshot),
		distances: make(map[kernel.UUID]job.Distance),
	}
}

func (s *memoryStore) Create() commands.JobUoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) seed(t *testing.T, j *job.Job) *job.Job {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID()] = j.Snapshot()
	return j
}

func (s *memoryStore) takeInterleave() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn := s.interleave
	s.interleave = nil
	return fn
}

func (s *memoryStore) snapshot(t *testing.T, id kernel.UUID) job.Snapshot {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.jobs[id]
	require.True(t, ok, "job %s not stored", id)
	return snap
}

type memoryUoW struct {
	store   *memoryStore
	mu      sync.Mutex
	changed []*job.Job
}

func (u *memoryUoW) Begin(context.Context) error    { return nil }
func (u *memoryUoW) Commit(context.Context) error   { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) JobRepository() ports.JobRepository {
	return &memoryRepo{uow: u}
}

func (u *memoryUoW) ChangedJobs() []*job.Job {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.changed)
}

func (u *memoryUoW) track(j *job.Job) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.changed = append(u.changed, j)
}

type memoryRepo struct {
	uow *memoryUoW
}

func (r *memoryRepo) Add(_ context.Context, aggregate *job.Job) error {
	s := r.uow.store
	s.mu.Lock()
	s.jobs[aggregate.ID()] = aggregate.Snapshot()
	s.mu.Unlock()
	r.uow.track(aggregate)
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	s := r.uow.store
	s.mu.Lock()
	snap, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id.String())
	}
	return job.RestoreJob(snap)
}

func (r *memoryRepo) UpdateIfStatus(_ context.Context, aggregate *job.Job, expected job.Status) (int64, error) {
	s := r.uow.store
	if interleave := s.takeInterleave(); interleave != nil {
		interleave()
	}
	s.mu.Lock()
	stored, ok := s.jobs[aggregate.ID()]
	if !ok || stored.Status != expected {
		s.mu.Unlock()
		return 0, nil
	}
	next := aggregate.Snapshot()
	next.SessionTime = stored.SessionTime
	next.Flagged = stored.Flagged
	next.ManuallyHandled = stored.ManuallyHandled
	next.ByAdmin = stored.ByAdmin
	next.AdminComments = stored.AdminComments
	s.jobs[aggregate.ID()] = next
	s.mu.Unlock()

	r.uow.track(aggregate)
	return 1, nil
}

func (r *memoryRepo) ApplyTelemetry(_ context.Context, id kernel.UUID, patch job.TelemetryPatch) (int64, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.jobs[id]
	if !ok {
		return 0, nil
	}
	j, err := job.RestoreJob(snap)
	if err != nil {
		return 0, err
	}
	j.ApplyTelemetry(patch)
	s.jobs[id] = j.Snapshot()
	return 1, nil
}

func (r *memoryRepo) ApplyUpdate(
	_ context.Context, id kernel.UUID, patch job.UpdatePatch, expected *job.Status,
) (int64, error) {
	s := r.uow.store
	if interleave := s.takeInterleave(); interleave != nil {
		interleave()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.jobs[id]
	if !ok || (expected != nil && snap.Status != *expected) {
		return 0, nil
	}
	if patch.DueAt != nil {
		snap.DueAt = patch.DueAt.UTC()
	}
	if patch.AdminComments != nil {
		snap.AdminComments = *patch.AdminComments
	}
	s.jobs[id] = snap
	return 1, nil
}

func (r *memoryRepo) UpsertDistance(_ context.Context, id kernel.UUID, update job.DistanceUpdate) error {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distances[id] = s.distances[id].Merge(id, update)
	return nil
}

func (r *memoryRepo) GetDistance(_ context.Context, id kernel.UUID) (job.Distance, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.distances[id]
	if !ok {
		return job.Distance{}, errs.NewObjectNotFoundError("distance", id.String())
	}
	return d, nil
}

func (r *memoryRepo) ListExpiredOffers(_ context.Context, now time.Time, limit int) ([]*job.Job, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*job.Job
	for _, snap := range s.jobs {
		if snap.Status != job.Offered || snap.ExpiresAt == nil || snap.ExpiresAt.After(now) {
			continue
		}
		j, err := job.RestoreJob(snap)
		if err != nil {
			return nil, err
		}
		result = append(result, j)
	}

	slices.SortFunc(result, func(a, b *job.Job) int {
		return a.ExpiresAt().Compare(*b.ExpiresAt())
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MockNotificationGateway is safe to call from the push dispatcher goroutines.
type MockNotificationGateway struct{ mock.Mock }

func (m *MockNotificationGateway) SendPush(ctx context.Context, targets ports.Targets, payload ports.NotificationPayload) error {
	args := m.Called(ctx, targets, payload)
	return args.Error(0)
}

func (m *MockNotificationGateway) SendSMS(ctx context.Context, translator kernel.UUID, payload ports.NotificationPayload) error {
	args := m.Called(ctx, translator, payload)
	return args.Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.JobChangedEvent
	err    error
}

func (p *recordingPublisher) PublishJobChanged(_ context.Context, event ports.JobChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []ports.JobChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

func newOpenJob(t *testing.T) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), testCreatedAt, testDueAt)
	require.NoError(t, err)
	return j
}

func newOfferedJob(t *testing.T, expiresAt time.Time) *job.Job {
	t.Helper()
	j := newOpenJob(t)
	require.NoError(t, j.Offer(expiresAt))
	return j
}

func newAcceptedJob(t *testing.T) *job.Job {
	t.Helper()
	j := newOfferedJob(t, testDueAt)
	require.NoError(t, j.Accept(kernel.NewUUID(), testCreatedAt))
	return j
}

func drain(t *testing.T, pusher *commands.PushDispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, pusher.Wait(ctx))
}
