package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/domain"
	"github.com/towercard/backend/internal/flow"
	"github.com/towercard/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 8

type flowEntry struct {
	flow *flow.Flow

	mu       sync.Mutex
	lastSeen time.Time
	last     flow.Snapshot
	subs     map[chan flow.Snapshot]struct{}
}

// publish runs under the flow lock, so it must never block.
func (e *flowEntry) publish(s flow.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.last = s
	for ch := range e.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

func (e *flowEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *flowEntry) closeSubscribers() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for ch := range e.subs {
		close(ch)
		delete(e.subs, ch)
	}
}

// flowService keeps the live flows of the HTTP presenter in memory.
type flowService struct {
	ctx    context.Context
	sender flow.NotificationSender
	config config.FlowConfig
	card   config.CardConfig
	now    func() time.Time

	mu    sync.RWMutex
	flows map[uuid.UUID]*flowEntry

	// evicted flows whose dispatches may still be running
	draining sync.WaitGroup
}

func newFlowService(ctx context.Context, sender flow.NotificationSender, flowConfig config.FlowConfig, cardConfig config.CardConfig) *flowService {
	return &flowService{
		ctx:    ctx,
		sender: sender,
		config: flowConfig,
		card:   cardConfig,
		now:    time.Now,
		flows:  make(map[uuid.UUID]*flowEntry),
	}
}

func (s *flowService) Create(ctx context.Context) (uuid.UUID, flow.Snapshot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, flow.Snapshot{}, fmt.Errorf("generate flow id failed: %w", err)
	}

	e := &flowEntry{
		lastSeen: s.now(),
		subs:     make(map[chan flow.Snapshot]struct{}),
	}
	e.flow = flow.New(s.ctx, s.sender, flow.Options{
		DomainSuffix:             s.config.DomainSuffix,
		Institution:              s.config.Institution,
		KeepDispatchingOnFailure: s.config.KeepDispatchingOnFailure,
		OnChange:                 e.publish,
		Now:                      s.now,
	})
	e.last = e.flow.Snapshot()

	s.mu.Lock()
	s.flows[id] = e
	s.mu.Unlock()

	logger.Debug("flow created", zap.String("flow_id", id.String()))

	return id, e.last, nil
}

func (s *flowService) get(id uuid.UUID) (*flowEntry, error) {
	s.mu.RLock()
	e, ok := s.flows[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrFlowNotFound
	}

	e.touch(s.now())

	return e, nil
}

func (s *flowService) Get(ctx context.Context, id uuid.UUID) (flow.Snapshot, error) {
	e, err := s.get(id)
	if err != nil {
		return flow.Snapshot{}, err
	}

	return e.flow.Snapshot(), nil
}

// SubmitIdentity returns the resulting snapshot together with the flow error,
// if any. Validation errors come with a usable snapshot.
func (s *flowService) SubmitIdentity(ctx context.Context, id uuid.UUID, email string) (flow.Snapshot, error) {
	e, err := s.get(id)
	if err != nil {
		return flow.Snapshot{}, err
	}

	err = e.flow.SubmitIdentity(email)

	return e.flow.Snapshot(), err
}

func (s *flowService) SubmitCode(ctx context.Context, id uuid.UUID, code flow.Code) (flow.Snapshot, error) {
	e, err := s.get(id)
	if err != nil {
		return flow.Snapshot{}, err
	}

	err = e.flow.SubmitCode(code)

	return e.flow.Snapshot(), err
}

func (s *flowService) Reset(ctx context.Context, id uuid.UUID) (flow.Snapshot, error) {
	e, err := s.get(id)
	if err != nil {
		return flow.Snapshot{}, err
	}

	e.flow.Reset()

	return e.flow.Snapshot(), nil
}

func (s *flowService) Card(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}

	session := e.flow.Session()
	if session == nil {
		return nil, ErrFlowNotVerified
	}

	return &domain.Card{
		Email:      session.Identity.String(),
		Name:       s.card.Name,
		IDNumber:   s.card.IDNumber,
		Barcode:    s.card.Barcode,
		VerifiedAt: session.VerifiedAt,
	}, nil
}

// Subscribe streams snapshots of flow id, starting with the current one.
// Slow readers miss intermediate snapshots. The channel is closed by the
// returned cancel func or when the flow goes away.
func (s *flowService) Subscribe(ctx context.Context, id uuid.UUID) (<-chan flow.Snapshot, func(), error) {
	e, err := s.get(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan flow.Snapshot, subscriberBuffer)

	e.mu.Lock()
	e.subs[ch] = struct{}{}
	ch <- e.last
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()

			if _, ok := e.subs[ch]; ok {
				delete(e.subs, ch)
				close(ch)
			}
			e.lastSeen = s.now()
		})
	}

	return ch, cancel, nil
}

func (s *flowService) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	e, ok := s.flows[id]
	delete(s.flows, id)
	s.mu.Unlock()

	if !ok {
		return ErrFlowNotFound
	}

	s.evict(e)

	return nil
}

// evict detaches e from the registry while Wait keeps covering its dispatches.
func (s *flowService) evict(e *flowEntry) {
	e.closeSubscribers()

	s.draining.Add(1)
	go func() {
		defer s.draining.Done()
		e.flow.Wait()
	}()
}

// Sweep evicts flows idle for longer than the configured TTL.
// Flows with live subscribers are kept.
func (s *flowService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.flows {
		e.mu.Lock()
		idle := now.Sub(e.lastSeen) > s.config.IdleTTL && len(e.subs) == 0
		e.mu.Unlock()

		if idle {
			delete(s.flows, id)
			s.evict(e)
			evicted++
		}
	}

	if evicted > 0 {
		logger.Debug("idle flows evicted", zap.Int("count", evicted))
	}

	return evicted
}

// RunJanitor sweeps idle flows every interval until ctx is done.
func (s *flowService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

func (s *flowService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.flows)
}

// Wait blocks until in-flight dispatches of every flow have finished,
// including flows already deleted or swept.
func (s *flowService) Wait() {
	s.mu.RLock()
	entries := make([]*flowEntry, 0, len(s.flows))
	for _, e := range s.flows {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	for _, e := range entries {
		e.flow.Wait()
	}
	s.draining.Wait()
}
