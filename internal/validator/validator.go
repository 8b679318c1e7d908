// Package validator checks GitHub usernames: a synchronous format check followed by
// a debounced existence lookup against the public GitHub API.
package validator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"devb-web/internal/common"
	"devb-web/internal/domain"
)

type State int

const (
	Idle State = iota
	FormatInvalid
	Validating
	Valid
	Invalid
	RateLimited
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FormatInvalid:
		return "format_invalid"
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case RateLimited:
		return "rate_limited"
	case Error:
		return "error"
	}
	return "unknown"
}

// Message is the visitor-facing text for a state.
func (s State) Message() string {
	switch s {
	case FormatInvalid:
		return "GitHub usernames may only contain letters, numbers and single hyphens, and cannot start or end with a hyphen"
	case Validating:
		return "Checking GitHub..."
	case Invalid:
		return "Invalid GitHub username"
	case RateLimited:
		return "GitHub rate limit reached, please try again in a minute"
	case Error:
		return "Could not reach GitHub, please try again"
	}
	return ""
}

// Terminal reports whether no further transition happens without new input.
func (s State) Terminal() bool {
	return s == Valid || s == Invalid || s == RateLimited || s == Error
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Preview is what the profile card shows for a confirmed username.
type Preview struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

type Result struct {
	Username string   `json:"username"`
	State    State    `json:"state"`
	Message  string   `json:"message,omitempty"`
	Preview  *Preview `json:"preview,omitempty"`
}

// Lookuper resolves a GitHub login. It returns common.ErrNotFound for 404 and
// common.ErrRateLimited for 403.
type Lookuper interface {
	LookupGitHubUser(ctx context.Context, username string) (*domain.GitHubUser, error)
}

func newResult(username string, state State) Result {
	return Result{Username: username, State: state, Message: state.Message()}
}

// Check runs the format check and, if it passes, the lookup, without debouncing.
func Check(ctx context.Context, lookup Lookuper, username string) Result {
	username = strings.TrimSpace(username)
	if username == "" {
		return newResult(username, Idle)
	}
	if !ValidFormat(username) {
		return newResult(username, FormatInvalid)
	}
	user, err := lookup.LookupGitHubUser(ctx, username)
	return resultFromLookup(username, user, err)
}

func resultFromLookup(username string, user *domain.GitHubUser, err error) Result {
	switch {
	case err == nil && user != nil:
		res := newResult(username, Valid)
		res.Preview = previewOf(user)
		return res
	case errors.Is(err, common.ErrNotFound):
		return newResult(username, Invalid)
	case errors.Is(err, common.ErrRateLimited):
		return newResult(username, RateLimited)
	default:
		return newResult(username, Error)
	}
}

func previewOf(u *domain.GitHubUser) *Preview {
	p := &Preview{Login: u.Login, Name: u.Login, AvatarURL: u.AvatarURL, Bio: "No bio available"}
	if u.Name != nil && *u.Name != "" {
		p.Name = *u.Name
	}
	if u.Bio != nil && *u.Bio != "" {
		p.Bio = *u.Bio
	}
	return p
}

type Options struct {
	Debounce      time.Duration
	LookupTimeout time.Duration
	// OnChange is called, outside the session lock, after every state change.
	OnChange func(Result)
	Logger   *slog.Logger
}

// Session is the per-visitor input state machine. Every Input bumps a generation
// counter; lookup results from an older generation are discarded, and the
// in-flight request for that generation is cancelled.
type Session struct {
	mu       sync.Mutex
	lookup   Lookuper
	opts     Options
	gen      uint64
	value    string
	result   Result
	timer    *time.Timer
	cancel   context.CancelFunc
	lastUsed time.Time
	closed   bool
}

func NewSession(lookup Lookuper, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{
		lookup:   lookup,
		opts:     opts,
		result:   newResult("", Idle),
		lastUsed: time.Now(),
	}
}

// Input records a new value of the username field and returns the immediate state.
func (s *Session) Input(value string) Result {
	value = strings.TrimSpace(value)

	s.mu.Lock()
	if s.closed {
		res := s.result
		s.mu.Unlock()
		return res
	}
	s.gen++
	s.stopLocked()
	s.value = value
	s.lastUsed = time.Now()

	switch {
	case value == "":
		s.result = newResult("", Idle)
	case !ValidFormat(value):
		s.result = newResult(value, FormatInvalid)
	default:
		s.result = newResult(value, Idle)
		gen := s.gen
		s.timer = time.AfterFunc(s.opts.Debounce, func() { s.fire(gen) })
	}
	res := s.result
	s.mu.Unlock()

	s.notify(res)
	return res
}

// Confirm skips the debounce and looks the current value up now, if its format
// passed and no lookup has started for it yet.
func (s *Session) Confirm() Result {
	s.mu.Lock()
	s.lastUsed = time.Now()
	if s.closed || s.value == "" || s.result.State != Idle {
		res := s.result
		s.mu.Unlock()
		return res
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	res := s.startLocked(s.gen)
	s.mu.Unlock()

	s.notify(res)
	return res
}

// Result returns the current state.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// IdleSince reports when the session last received input.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Close cancels any pending or in-flight lookup. Later calls are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.stopLocked()
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || s.result.State != Idle {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	res := s.startLocked(gen)
	s.mu.Unlock()

	s.notify(res)
}

// startLocked moves to Validating and launches the lookup for gen.
func (s *Session) startLocked(gen uint64) Result {
	username := s.value
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.LookupTimeout)
	s.cancel = cancel
	s.result = newResult(username, Validating)

	go func() {
		defer cancel()
		user, err := s.lookup.LookupGitHubUser(ctx, username)
		res := resultFromLookup(username, user, err)

		s.mu.Lock()
		if s.closed || gen != s.gen {
			s.mu.Unlock()
			s.opts.Logger.Debug("validator: dropping stale lookup", "username", username)
			return
		}
		s.result = res
		s.cancel = nil
		s.mu.Unlock()

		if res.State == Error {
			s.opts.Logger.Warn("validator: lookup failed", "username", username, "error", err)
		}
		s.notify(res)
	}()

	return s.result
}

func (s *Session) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) notify(res Result) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(res)
	}
}
