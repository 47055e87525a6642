package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/towercard/backend/internal/config"
	queueClient "github.com/towercard/backend/internal/queue/client"
	"github.com/towercard/backend/internal/queue/task"
	"github.com/towercard/backend/pkg/logger"
	"github.com/towercard/backend/pkg/otp"
	"github.com/towercard/backend/pkg/validator"

	"go.uber.org/zap"
)

// Cooldown limits how often a code can be sent to one email.
type Cooldown interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Remaining(ctx context.Context, key string) (time.Duration, error)
	Release(ctx context.Context, key string) error
}

type codeService struct {
	otpGenerator otp.Generator
	cooldown     Cooldown
	emails       *EmailService
	codesConfig  config.CodesConfig
	queueConfig  config.QueueConfig
	now          func() time.Time
}

func newCodeService(otpGenerator otp.Generator,
	cooldown Cooldown,
	emails *EmailService,
	codesConfig config.CodesConfig,
	queueConfig config.QueueConfig,
) *codeService {
	return &codeService{
		otpGenerator: otpGenerator,
		cooldown:     cooldown,
		emails:       emails,
		codesConfig:  codesConfig,
		queueConfig:  queueConfig,
		now:          time.Now,
	}
}

// Send issues a fresh verification code for email and delivers it, either
// directly or through the send code queue.
func (s *codeService) Send(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !validator.IsEmail(email) {
		return ErrInvalidEmail
	}

	key := strings.ToLower(email)
	reserved := false
	if s.cooldown != nil && s.codesConfig.Cooldown > 0 {
		ok, err := s.cooldown.Acquire(ctx, key, s.codesConfig.Cooldown)
		if err != nil {
			return fmt.Errorf("acquire cooldown failed: %w", err)
		}
		if !ok {
			return s.cooldownError(ctx, key)
		}
		reserved = true
	}

	code := s.otpGenerator.RandomCode(s.codesConfig.Length)
	idempotencyKey := fmt.Sprintf("towercard-code:%s:%d", key, s.now().UnixNano())

	err := s.deliver(ctx, email, code, idempotencyKey)
	if err != nil && reserved {
		// a failed delivery must not block the retry
		if relErr := s.cooldown.Release(ctx, key); relErr != nil {
			logger.Warn("release cooldown failed", zap.String("email", email), zap.Error(relErr))
		}
	}

	return err
}

func (s *codeService) deliver(ctx context.Context, email, code, idempotencyKey string) error {
	if s.queueConfig.Enabled {
		return s.enqueue(ctx, email, code, idempotencyKey)
	}

	if err := s.emails.SendUserVerificationEmail(ctx, VerificationEmailInput{
		Email:            email,
		VerificationCode: code,
		IdempotencyKey:   idempotencyKey,
	}); err != nil {
		return fmt.Errorf("send verification email failed: %w", err)
	}

	logger.Info("verification code sent", zap.String("email", email))

	return nil
}

func (s *codeService) cooldownError(ctx context.Context, key string) error {
	remaining, err := s.cooldown.Remaining(ctx, key)
	if err != nil {
		logger.Warn("read cooldown failed", zap.String("key", key), zap.Error(err))
		remaining = 0
	}

	return &CooldownError{RetryAfter: remaining}
}

func (s *codeService) enqueue(ctx context.Context, email, code, idempotencyKey string) error {
	client := queueClient.GetClient(ctx)
	if client == nil {
		return fmt.Errorf("queue enabled but no client configured")
	}

	t, err := task.NewSendCodeTask(task.SendCode{
		Email:            email,
		VerificationCode: code,
		IdempotencyKey:   idempotencyKey,
	}, s.queueConfig.MaxRetry)
	if err != nil {
		return fmt.Errorf("create send code task failed: %w", err)
	}

	info, err := client.EnqueueContext(ctx, t)
	if err != nil {
		return fmt.Errorf("enqueue send code task failed: %w", err)
	}

	logger.Info("verification code enqueued", zap.String("email", email), zap.String("task_id", info.ID))

	return nil
}
