package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendCodeTaskName  = "sendCodeTask"
	SendCodeQueueName = "sendCodeQueue"
)

type SendCode struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
	IdempotencyKey   string `json:"idempotency_key"`
}

func NewSendCodeTask(data SendCode, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendCodeTaskName,
		payload,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(SendCodeQueueName),
	), nil
}
