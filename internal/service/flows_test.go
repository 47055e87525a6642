package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/flow"
)

var testFlowConfig = config.FlowConfig{
	DomainSuffix: "@sjsu.edu",
	Institution:  "SJSU",
	IdleTTL:      time.Minute,
}

var testCardConfig = config.CardConfig{Name: "Sammy Spartan", IDNumber: "012345678", Barcode: "B-012345678"}

func newTestFlowService(sender flow.NotificationSender) *flowService {
	return newFlowService(context.Background(), sender, testFlowConfig, testCardConfig)
}

func TestFlowService_VerifyAndCard(t *testing.T) {
	sender := &mockNotificationSender{}
	sender.On("SendCode", mock.Anything, flow.Identity("user@sjsu.edu")).Return(nil).Once()
	s := newTestFlowService(sender)
	ctx := context.Background()

	id, snap, err := s.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, flow.CollectingIdentity, snap.State)

	_, err = s.Card(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotVerified)

	snap, err = s.SubmitIdentity(ctx, id, "user@sjsu.edu")
	require.NoError(t, err)
	assert.Equal(t, flow.DispatchingCode, snap.State)

	s.Wait()

	snap, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, flow.CollectingCode, snap.State)

	snap, err = s.SubmitCode(ctx, id, flow.Code{"1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, flow.Verified, snap.State)

	card, err := s.Card(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "user@sjsu.edu", card.Email)
	assert.Equal(t, "Sammy Spartan", card.Name)
	assert.Equal(t, "012345678", card.IDNumber)
	assert.Equal(t, "B-012345678", card.Barcode)

	snap, err = s.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, flow.CollectingIdentity, snap.State)

	sender.AssertExpectations(t)
}

func TestFlowService_ValidationErrorKeepsSnapshot(t *testing.T) {
	s := newTestFlowService(&mockNotificationSender{})
	ctx := context.Background()
	id, _, err := s.Create(ctx)
	require.NoError(t, err)

	snap, err := s.SubmitIdentity(ctx, id, "user@gmail.com")

	var verr *flow.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, flow.CollectingIdentity, snap.State)
	assert.Equal(t, "Please enter a valid SJSU email", snap.Error)
}

func TestFlowService_UnknownFlow(t *testing.T) {
	s := newTestFlowService(&mockNotificationSender{})
	ctx := context.Background()
	id := uuid.New()

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = s.SubmitIdentity(ctx, id, "user@sjsu.edu")
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = s.SubmitCode(ctx, id, flow.Code{})
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = s.Reset(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = s.Card(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, _, err = s.Subscribe(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), ErrFlowNotFound)
}

func TestFlowService_Subscribe(t *testing.T) {
	sender := &mockNotificationSender{}
	sender.On("SendCode", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	s := newTestFlowService(sender)
	ctx := context.Background()
	id, _, err := s.Create(ctx)
	require.NoError(t, err)

	ch, cancel, err := s.Subscribe(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, flow.CollectingIdentity, (<-ch).State)

	_, err = s.SubmitIdentity(ctx, id, "user@sjsu.edu")
	require.NoError(t, err)

	assert.Equal(t, flow.DispatchingCode, (<-ch).State)
	failed := <-ch
	assert.Equal(t, flow.CollectingIdentity, failed.State)
	assert.NotEmpty(t, failed.Error)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestFlowService_DeleteClosesSubscribers(t *testing.T) {
	s := newTestFlowService(&mockNotificationSender{})
	ctx := context.Background()
	id, _, err := s.Create(ctx)
	require.NoError(t, err)

	ch, cancel, err := s.Subscribe(ctx, id)
	require.NoError(t, err)
	defer cancel()
	<-ch

	require.NoError(t, s.Delete(ctx, id))

	_, open := <-ch
	assert.False(t, open)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestFlowService_Sweep(t *testing.T) {
	now := time.Date(2024, 9, 27, 10, 0, 0, 0, time.UTC)
	s := newTestFlowService(&mockNotificationSender{})
	s.now = func() time.Time { return now }
	ctx := context.Background()

	idle, _, err := s.Create(ctx)
	require.NoError(t, err)
	watched, _, err := s.Create(ctx)
	require.NoError(t, err)
	_, cancel, err := s.Subscribe(ctx, watched)
	require.NoError(t, err)
	defer cancel()

	now = now.Add(30 * time.Second)
	active, _, err := s.Create(ctx)
	require.NoError(t, err)

	evicted := s.Sweep(now.Add(45 * time.Second))

	assert.Equal(t, 1, evicted)
	_, err = s.Get(ctx, idle)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = s.Get(ctx, watched)
	assert.NoError(t, err)
	_, err = s.Get(ctx, active)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestFlowService_RunJanitorStops(t *testing.T) {
	s := newTestFlowService(&mockNotificationSender{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestFlowService_WaitCoversEvictedFlows(t *testing.T) {
	tests := []struct {
		name  string
		evict func(t *testing.T, s *flowService, id uuid.UUID)
	}{
		{"delete", func(t *testing.T, s *flowService, id uuid.UUID) {
			require.NoError(t, s.Delete(context.Background(), id))
		}},
		{"sweep", func(t *testing.T, s *flowService, id uuid.UUID) {
			require.Equal(t, 1, s.Sweep(time.Now().Add(time.Hour)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newGatedSender()
			s := newTestFlowService(sender)
			ctx := context.Background()
			id, _, err := s.Create(ctx)
			require.NoError(t, err)

			_, err = s.SubmitIdentity(ctx, id, "user@sjsu.edu")
			require.NoError(t, err)
			<-sender.started

			tt.evict(t, s, id)
			assert.Equal(t, 0, s.Len())

			done := make(chan struct{})
			go func() {
				s.Wait()
				close(done)
			}()

			select {
			case <-done:
				t.Fatal("wait returned while a dispatch was running")
			case <-time.After(50 * time.Millisecond):
			}

			close(sender.release)

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("wait did not return after the dispatch finished")
			}
		})
	}
}
