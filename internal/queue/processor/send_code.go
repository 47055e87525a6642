package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/towercard/backend/internal/queue/task"
	"github.com/towercard/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendCodeProcessor struct {
	workers *worker.Workers
}

func NewSendCodeProcessor(workers *worker.Workers) *sendCodeProcessor {
	return &sendCodeProcessor{
		workers: workers,
	}
}

func (p *sendCodeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendCode
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send code task json unmarshal failed: %w: %w", err, asynq.SkipRetry)
	}

	if err = p.workers.CodeSender.SendVerificationCode(ctx, data.Email, data.VerificationCode, data.IdempotencyKey); err != nil {
		return fmt.Errorf("send verification code failed: %w", err)
	}

	return nil
}
