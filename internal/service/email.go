package service

import (
	"context"
	"fmt"

	"github.com/towercard/backend/internal/config"
	emailProvider "github.com/towercard/backend/pkg/email"
	"github.com/towercard/backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	productName              = "Tower Card"
	verificationEmailSubject = "Your Tower Card Verification Code"
)

type EmailService struct {
	sender  emailProvider.Sender
	config  config.EmailConfig
	codes   config.CodesConfig
	enabled bool
}

func newEmailsService(sender emailProvider.Sender, config config.EmailConfig, codes config.CodesConfig) *EmailService {
	return &EmailService{
		enabled: config.Enabled && sender != nil,
		sender:  sender,
		config:  config,
		codes:   codes,
	}
}

type verificationEmailInput struct {
	Product          string
	VerificationCode string
	ExpiresInMinutes int
}

type VerificationEmailInput struct {
	Email            string
	VerificationCode string
	IdempotencyKey   string
}

func (s *EmailService) SendUserVerificationEmail(ctx context.Context, input VerificationEmailInput) error {
	if !s.enabled {
		logger.Info("email disabled, verification code not sent", zap.String("email", input.Email))
		return nil
	}

	templateInput := verificationEmailInput{
		Product:          productName,
		VerificationCode: input.VerificationCode,
		ExpiresInMinutes: int(s.codes.TTL.Minutes()),
	}
	sendInput := emailProvider.SendEmailInput{
		Subject:        verificationEmailSubject,
		To:             input.Email,
		IdempotencyKey: input.IdempotencyKey,
	}

	if err := sendInput.GenerateBodyFromHTML(s.config.TemplatesDir, s.config.Templates.Verification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	return s.sender.Send(ctx, sendInput)
}
