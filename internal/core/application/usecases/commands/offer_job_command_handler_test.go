package commands_test

import (
	"errors"
	"testing"
	"time"

	"jobdispatch/internal/core/application/usecases/commands"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/domain/services"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOfferHandler(
	store *memoryStore, gateway ports.NotificationGateway, publisher ports.JobEventPublisher,
) (commands.OfferJobCommandHandler, *commands.PushDispatcher) {
	pusher := commands.NewPushDispatcher(gateway, time.Second, nil)
	handler := commands.NewOfferJobCommandHandler(
		store,
		services.NewExpiryEvaluator(services.FixtureExpiryTiers()),
		pusher,
		kernel.FixedClock{At: testCreatedAt.Add(time.Hour)},
		publisher,
		nil,
	)
	return handler, pusher
}

func TestOfferJobCommandHandler_Handle(t *testing.T) {
	t.Run("should offer with evaluator deadline and push to all eligible", func(t *testing.T) {
		// Given
		store := newMemoryStore()
		open := store.seed(t, newOpenJob(t))
		gateway := &MockNotificationGateway{}
		gateway.On("SendPush", mock.Anything, ports.AllEligible(), mock.MatchedBy(func(p ports.NotificationPayload) bool {
			return p.Kind == ports.NotificationJobOffered && p.JobID.IsEqual(open.ID()) && p.Status == "Offered"
		})).Return(nil).Once()
		publisher := &recordingPublisher{}
		handler, pusher := newOfferHandler(store, gateway, publisher)
		cmd, err := commands.NewOfferJobCommand(open.ID())
		require.NoError(t, err)

		// When
		offered, err := handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, job.Offered, offered.Status())
		require.NotNil(t, offered.ExpiresAt())
		// 96h lead: the offer stays open until the due time
		assert.Equal(t, testDueAt, *offered.ExpiresAt())
		assert.Equal(t, job.Offered, store.snapshot(t, open.ID()).Status)

		drain(t, pusher)
		gateway.AssertExpectations(t)

		events := publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "offer", events[0].Operation)
		assert.Equal(t, "Offered", events[0].Status)
	})

	t.Run("should push only to the listed translators", func(t *testing.T) {
		store := newMemoryStore()
		open := store.seed(t, newOpenJob(t))
		translator := kernel.NewUUID()
		gateway := &MockNotificationGateway{}
		gateway.On("SendPush", mock.Anything, ports.ExplicitSet(translator), mock.Anything).Return(nil).Once()
		handler, pusher := newOfferHandler(store, gateway, nil)
		cmd, err := commands.NewOfferJobCommand(open.ID(), translator)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		drain(t, pusher)
		gateway.AssertExpectations(t)
	})

	t.Run("should succeed when the push fails", func(t *testing.T) {
		store := newMemoryStore()
		open := store.seed(t, newOpenJob(t))
		gateway := &MockNotificationGateway{}
		gateway.On("SendPush", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway down")).Once()
		handler, pusher := newOfferHandler(store, gateway, nil)
		cmd, _ := commands.NewOfferJobCommand(open.ID())

		offered, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, job.Offered, offered.Status())
		drain(t, pusher)
		gateway.AssertExpectations(t)
		assert.Equal(t, job.Offered, store.snapshot(t, open.ID()).Status)
	})

	t.Run("should reject offering an offered job without pushing", func(t *testing.T) {
		store := newMemoryStore()
		offered := store.seed(t, newOfferedJob(t, testDueAt))
		gateway := &MockNotificationGateway{}
		handler, pusher := newOfferHandler(store, gateway, nil)
		cmd, _ := commands.NewOfferJobCommand(offered.ID())

		_, err := handler.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidState)
		drain(t, pusher)
		gateway.AssertNotCalled(t, "SendPush", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report unknown jobs", func(t *testing.T) {
		handler, _ := newOfferHandler(newMemoryStore(), &MockNotificationGateway{}, nil)
		cmd, _ := commands.NewOfferJobCommand(kernel.NewUUID())

		_, err := handler.Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject a command that bypassed its constructor", func(t *testing.T) {
		handler, _ := newOfferHandler(newMemoryStore(), &MockNotificationGateway{}, nil)

		_, err := handler.Handle(t.Context(), commands.OfferJobCommand{})

		assert.ErrorIs(t, err, commands.ErrOfferJobCommandIsNotConstructed)
	})
}
