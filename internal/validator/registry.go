package validator

import (
	"log/slog"
	"sync"
	"time"
)

// Registry holds one Session per visitor.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lookup   Lookuper
	opts     Options
	idle     time.Duration
	logger   *slog.Logger
}

func NewRegistry(lookup Lookuper, opts Options, idle time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	return &Registry{
		sessions: map[string]*Session{},
		lookup:   lookup,
		opts:     opts,
		idle:     idle,
		logger:   logger,
	}
}

// Session returns the visitor's session, creating it on first use.
func (r *Registry) Session(visitorID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[visitorID]
	if !ok {
		s = NewSession(r.lookup, r.opts)
		r.sessions[visitorID] = s
	}
	return s
}

func (r *Registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and forgets sessions that have been idle longer than the
// configured window. It returns how many were removed.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-r.idle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.IdleSince().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		r.logger.Info("validator: swept idle sessions", "count", len(stale))
	}
	return len(stale)
}

// Close closes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Session{}
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
