package service

import (
	"errors"
	"time"
)

var (
	ErrFlowNotFound    = errors.New("flow not found")
	ErrFlowNotVerified = errors.New("flow not verified")
	ErrCodeCooldown    = errors.New("verification code requested too often")
	ErrInvalidEmail    = errors.New("invalid email")
)

// CooldownError is ErrCodeCooldown with the time left until the next code.
// RetryAfter is zero when it is unknown.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return ErrCodeCooldown.Error()
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCodeCooldown
}
