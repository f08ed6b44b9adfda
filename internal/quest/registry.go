package quest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session id.
	ErrSessionNotFound = errors.New("quest session not found")

	// ErrTooManySessions is returned by Create once the session cap is reached.
	ErrTooManySessions = errors.New("too many quest sessions")
)

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry holds one Controller per form instance and expires idle ones.
type Registry struct {
	gen Generator
	obs Observer
	log *logger.Logger
	ttl time.Duration
	max int
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) RegistryOption {
	return func(r *Registry) { r.max = n }
}

// NewRegistry returns an empty registry. A ttl of zero disables expiry.
func NewRegistry(gen Generator, ttl time.Duration, obs Observer, log *logger.Logger, opts ...RegistryOption) *Registry {
	if obs == nil {
		obs = nopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	r := &Registry{
		gen:      gen,
		obs:      obs,
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new session in StateCollecting. It returns
// ErrTooManySessions when the registry is full.
func (r *Registry) Create() (string, *Controller, error) {
	id := uuid.New().String()

	r.mu.Lock()
	if r.max > 0 && len(r.sessions) >= r.max {
		r.mu.Unlock()
		r.obs.SubmissionRejected("session_cap")
		return "", nil, ErrTooManySessions
	}
	ctrl := NewController(r.gen, r.obs, r.log.With("session", id))
	r.sessions[id] = &session{ctrl: ctrl, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	r.obs.SessionsActive(n)
	return id, ctrl, nil
}

// Get returns the session's controller and marks it as recently used.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s.ctrl, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl. A session with a
// generation call in flight is never removed.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.After(cutoff) || s.ctrl.State() == StatePending {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		r.log.Debug("expired quest sessions", "removed", removed, "remaining", n)
	}
	r.obs.SessionsActive(n)
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
