// Package flow implements the identity verification flow:
// collect an email, have a one-time code sent to it, collect the code.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/towercard/backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultDomainSuffix = "@sjsu.edu"
	defaultInstitution  = "SJSU"

	msgIncompleteCode = "Please enter a verification code"
	msgDispatchFailed = "We couldn't send a verification code. Please try again"
)

// NotificationSender asks for a one-time code to be sent to identity.
// A nil error means the code was sent.
type NotificationSender interface {
	SendCode(ctx context.Context, identity Identity) error
}

type Options struct {
	// DomainSuffix every identity must end with.
	DomainSuffix string
	// Institution is used in the invalid email message.
	Institution string
	// KeepDispatchingOnFailure leaves the flow in DispatchingCode after a
	// failed dispatch and only logs the failure.
	KeepDispatchingOnFailure bool
	// OnChange is called after every transition while the flow is locked.
	// It must not call back into the flow.
	OnChange func(Snapshot)
	Now      func() time.Time
}

type Flow struct {
	mu     sync.Mutex
	ctx    context.Context
	sender NotificationSender
	opts   Options
	wg     sync.WaitGroup

	state      State
	err        error
	generation uint64
	request    *Request
	identity   Identity
	session    *Session
}

// New returns a flow in CollectingIdentity. Dispatches run with ctx.
func New(ctx context.Context, sender NotificationSender, opts Options) *Flow {
	if opts.DomainSuffix == "" {
		opts.DomainSuffix = defaultDomainSuffix
	}
	if opts.Institution == "" {
		opts.Institution = defaultInstitution
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Flow{
		ctx:    ctx,
		sender: sender,
		opts:   opts,
		state:  CollectingIdentity,
	}
}

// SubmitIdentity accepts raw as the identity and starts a dispatch for it.
// A new identity supersedes any dispatch still in flight. A verified flow
// rejects it with ErrAlreadyVerified and has to be Reset first.
func (f *Flow) SubmitIdentity(raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Verified {
		return ErrAlreadyVerified
	}

	if raw == "" || !strings.HasSuffix(raw, f.opts.DomainSuffix) {
		f.err = &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("Please enter a valid %s email", f.opts.Institution),
		}
		f.notify()
		return f.err
	}

	f.generation++
	identity := Identity(raw)
	req := &Request{
		ID:          f.generation,
		Identity:    identity,
		Status:      DispatchPending,
		AttemptedAt: f.opts.Now(),
	}

	f.identity = identity
	f.request = req
	f.session = nil
	f.err = nil
	f.state = DispatchingCode
	f.notify()

	f.wg.Add(1)
	go f.dispatch(req.ID, identity)

	return nil
}

func (f *Flow) dispatch(requestID uint64, identity Identity) {
	defer f.wg.Done()

	err := f.sender.SendCode(f.ctx, identity)
	if err != nil {
		logger.Error("send verification code failed",
			zap.Uint64("request_id", requestID),
			zap.String("email", identity.String()),
			zap.Error(err),
		)
	}

	f.applyDispatchResult(requestID, err)
}

// OnDispatchResult records the outcome of the dispatch with requestID.
// It reports false when the result is stale and was dropped.
func (f *Flow) OnDispatchResult(requestID uint64, success bool) bool {
	var err error
	if !success {
		err = errors.New("dispatch reported failure")
	}
	return f.applyDispatchResult(requestID, err)
}

func (f *Flow) applyDispatchResult(requestID uint64, dispatchErr error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != DispatchingCode || f.request == nil ||
		f.request.ID != requestID || f.request.Status != DispatchPending {
		logger.Debug("stale dispatch result dropped",
			zap.Uint64("request_id", requestID),
			zap.Uint64("current", f.generation),
		)
		return false
	}

	f.request.AttemptedAt = f.opts.Now()

	if dispatchErr == nil {
		f.request.Status = DispatchSent
		f.state = CollectingCode
		f.err = nil
		f.notify()
		return true
	}

	f.request.Status = DispatchFailed
	if !f.opts.KeepDispatchingOnFailure {
		f.err = &DispatchError{
			Identity: f.identity,
			Message:  msgDispatchFailed,
			Err:      dispatchErr,
		}
		f.identity = ""
		f.state = CollectingIdentity
	}
	f.notify()

	return true
}

// SubmitCode accepts code when every position is filled in.
// The value itself is not checked against the code that was sent.
func (f *Flow) SubmitCode(code Code) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != CollectingCode {
		return fmt.Errorf("%w: submit code in %s", ErrInvalidState, f.state)
	}

	if !code.complete() {
		f.err = &ValidationError{Field: "code", Message: msgIncompleteCode}
		f.notify()
		return f.err
	}

	f.session = &Session{
		Identity:   f.identity,
		VerifiedAt: f.opts.Now(),
	}
	f.err = nil
	f.state = Verified
	f.notify()

	return nil
}

// Reset discards everything and goes back to CollectingIdentity.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generation++
	f.state = CollectingIdentity
	f.err = nil
	f.request = nil
	f.identity = ""
	f.session = nil
	f.notify()
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshot()
}

// Session returns the verified session, or nil before Verified.
func (f *Flow) Session() *Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session == nil {
		return nil
	}
	s := *f.session
	return &s
}

// Wait blocks until every started dispatch has delivered its result.
func (f *Flow) Wait() {
	f.wg.Wait()
}

func (f *Flow) snapshot() Snapshot {
	s := Snapshot{
		State: f.state,
		Err:   f.err,
	}

	if f.err != nil {
		s.Error = message(f.err)
	}
	if f.request != nil {
		r := *f.request
		s.Request = &r
	}
	if f.state == Verified {
		s.Identity = f.identity
		sess := *f.session
		s.Session = &sess
	}

	return s
}

func (f *Flow) notify() {
	if f.opts.OnChange != nil {
		f.opts.OnChange(f.snapshot())
	}
}

func message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	var derr *DispatchError
	if errors.As(err, &derr) {
		return derr.Message
	}

	return err.Error()
}
