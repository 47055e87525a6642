package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/towercard/backend/internal/config"
	emailProvider "github.com/towercard/backend/pkg/email"
	mock_email "github.com/towercard/backend/pkg/email/mock"
)

func testEmailConfig(enabled bool) config.EmailConfig {
	return config.EmailConfig{
		Enabled:      enabled,
		TemplatesDir: "../../templates",
		Templates:    config.EmailTemplates{Verification: "verification_code.html"},
	}
}

func TestEmailService_SendUserVerificationEmail(t *testing.T) {
	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(in emailProvider.SendEmailInput) bool {
		return in.To == "user@sjsu.edu" &&
			in.Subject == "Your Tower Card Verification Code" &&
			in.IdempotencyKey == "key" &&
			assert.Contains(t, in.Body, "4821") &&
			assert.Contains(t, in.Body, "expire in 15 minutes")
	})).Return(nil).Once()

	s := newEmailsService(sender, testEmailConfig(true), config.CodesConfig{TTL: 15 * time.Minute})

	err := s.SendUserVerificationEmail(context.Background(), VerificationEmailInput{
		Email:            "user@sjsu.edu",
		VerificationCode: "4821",
		IdempotencyKey:   "key",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestEmailService_Disabled(t *testing.T) {
	sender := &mock_email.EmailSender{}
	s := newEmailsService(sender, testEmailConfig(false), config.CodesConfig{})

	err := s.SendUserVerificationEmail(context.Background(), VerificationEmailInput{Email: "user@sjsu.edu", VerificationCode: "1"})

	require.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestEmailService_MissingTemplate(t *testing.T) {
	sender := &mock_email.EmailSender{}
	cfg := testEmailConfig(true)
	cfg.Templates.Verification = "missing.html"
	s := newEmailsService(sender, cfg, config.CodesConfig{})

	err := s.SendUserVerificationEmail(context.Background(), VerificationEmailInput{Email: "user@sjsu.edu", VerificationCode: "1"})

	assert.ErrorContains(t, err, "generate email failed")
}
