package flow

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrAlreadyVerified = fmt.Errorf("%w: flow already verified", ErrInvalidState)
)

// ValidationError is a user input problem. The flow stays where it was.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DispatchError is a failed attempt to send a code to Identity.
type DispatchError struct {
	Identity Identity
	Message  string
	Err      error
}

func (e *DispatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("send code to %s failed", e.Identity)
	}
	return fmt.Sprintf("send code to %s failed: %v", e.Identity, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
