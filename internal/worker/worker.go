package worker

import (
	"context"

	"github.com/towercard/backend/internal/service"
)

type Workers struct {
	CodeSender CodeSender
}

type Deps struct {
	Services *service.Services
}

type CodeSender interface {
	SendVerificationCode(ctx context.Context, email string, verificationCode string, idempotencyKey string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		CodeSender: newCodeSender(deps.Services.Emails),
	}
}
