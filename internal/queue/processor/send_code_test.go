package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/towercard/backend/internal/queue/task"
	"github.com/towercard/backend/internal/worker"
)

type mockCodeSender struct {
	mock.Mock
}

func (m *mockCodeSender) SendVerificationCode(ctx context.Context, email, code, idempotencyKey string) error {
	args := m.Called(ctx, email, code, idempotencyKey)
	return args.Error(0)
}

func TestSendCodeProcessor_ProcessTask(t *testing.T) {
	sender := &mockCodeSender{}
	sender.On("SendVerificationCode", mock.Anything, "user@sjsu.edu", "4821", "key").Return(nil).Once()
	p := NewSendCodeProcessor(&worker.Workers{CodeSender: sender})

	tsk, err := task.NewSendCodeTask(task.SendCode{Email: "user@sjsu.edu", VerificationCode: "4821", IdempotencyKey: "key"}, 1)
	require.NoError(t, err)

	require.NoError(t, p.ProcessTask(context.Background(), tsk))
	sender.AssertExpectations(t)
}

func TestSendCodeProcessor_ProcessTaskErrors(t *testing.T) {
	sender := &mockCodeSender{}
	sender.On("SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).Once()
	p := NewSendCodeProcessor(&worker.Workers{CodeSender: sender})

	err := p.ProcessTask(context.Background(), asynq.NewTask(task.SendCodeTaskName, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	tsk, err := task.NewSendCodeTask(task.SendCode{Email: "user@sjsu.edu", VerificationCode: "1"}, 1)
	require.NoError(t, err)
	err = p.ProcessTask(context.Background(), tsk)
	assert.ErrorContains(t, err, "smtp down")
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
