package worker

import (
	"context"
	"fmt"

	"github.com/towercard/backend/internal/service"
	"github.com/towercard/backend/pkg/logger"

	"go.uber.org/zap"
)

type codeSender struct {
	emails *service.EmailService
}

func newCodeSender(emails *service.EmailService) *codeSender {
	return &codeSender{
		emails: emails,
	}
}

func (s *codeSender) SendVerificationCode(ctx context.Context, email string, verificationCode string, idempotencyKey string) error {
	err := s.emails.SendUserVerificationEmail(ctx, service.VerificationEmailInput{
		Email:            email,
		VerificationCode: verificationCode,
		IdempotencyKey:   idempotencyKey,
	})
	if err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	logger.Info("verification code delivered", zap.String("email", email))

	return nil
}
