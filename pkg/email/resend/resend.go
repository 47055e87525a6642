package resend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/towercard/backend/pkg/email"
	"github.com/towercard/backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	maxAttempts   = 3
	maxRetryDelay = 30 * time.Second
)

type emailsAPI interface {
	SendWithOptions(ctx context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error)
}

// Sender sends emails through the Resend REST API.
type Sender struct {
	from   string
	emails emailsAPI
}

func NewSender(apiKey, from string) (*Sender, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if from == "" {
		return nil, errors.New("email from is required")
	}

	return &Sender{
		from:   from,
		emails: resend.NewClient(apiKey).Emails,
	}, nil
}

func (s *Sender) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.Body,
	}

	options := &resend.SendEmailOptions{}
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		options.IdempotencyKey = key
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := s.emails.SendWithOptions(ctx, params, options)
		if err == nil {
			if resp != nil {
				logger.Debug("resend email accepted", zap.String("id", resp.Id))
			}
			return nil
		}
		lastErr = err

		wait, ok := retryDelay(err, attempt)
		if !ok {
			return fmt.Errorf("resend send failed: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func retryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			return min(time.Duration(seconds)*time.Second, maxRetryDelay), true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
