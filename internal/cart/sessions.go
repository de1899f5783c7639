package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/pkg/errors"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions keeps one cart per browsing session in memory. Nothing is
// persisted; an idle session is dropped once it outlives the TTL.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	limits   Limits
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessions creates an empty session registry
func NewSessions(limits Limits, ttl time.Duration, logger *zap.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[uuid.UUID]*session),
		limits:   limits,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create opens a new session with an empty cart
func (s *Sessions) Create() (uuid.UUID, *Store) {
	id := uuid.New()
	store := NewStore(s.limits)

	s.mu.Lock()
	s.sessions[id] = &session{store: store, lastSeen: s.now()}
	s.mu.Unlock()

	return id, store
}

// Get returns the cart of a session and marks it as active
func (s *Sessions) Get(id uuid.UUID) (*Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: id.String()}
	}
	sess.lastSeen = s.now()
	return sess.store, nil
}

// Delete drops a session; unknown ids are ignored
func (s *Sessions) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle since before now-ttl and returns how many went
func (s *Sessions) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on every tick until ctx is cancelled
func (s *Sessions) RunSweeper(ctx context.Context, every time.Duration) {
	if s.ttl <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if removed := s.Sweep(t); removed > 0 {
				s.logger.Info("Expired idle carts",
					zap.Int("removed", removed),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
