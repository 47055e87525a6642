package service

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
	"github.com/towercard/backend/internal/flow"
)

type mockNotificationSender struct {
	mock.Mock
}

func (m *mockNotificationSender) SendCode(ctx context.Context, identity flow.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

type mockOTPGenerator struct {
	mock.Mock
}

func (m *mockOTPGenerator) RandomCode(length int) string {
	args := m.Called(length)
	return args.String(0)
}

type mockCooldown struct {
	mock.Mock
}

func (m *mockCooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockCooldown) Remaining(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *mockCooldown) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// gatedSender blocks every SendCode until release is closed.
type gatedSender struct {
	started chan struct{}
	release chan struct{}
}

func newGatedSender() *gatedSender {
	return &gatedSender{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedSender) SendCode(ctx context.Context, identity flow.Identity) error {
	g.started <- struct{}{}
	<-g.release
	return nil
}
