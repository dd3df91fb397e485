// Package auth is the identity store: it owns the user roster and the
// current session, and performs the (placeholder) authentication.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/notice"
	"github.com/nhle/taskboard/internal/store"
)

// defaultDemoPassword is the single accepted password when none is
// configured. There is no real credential check in this system.
const defaultDemoPassword = "password"

// Options configures a Service.
type Options struct {
	// Latency is the simulated delay applied to login and register.
	Latency time.Duration

	// DemoPassword overrides the accepted placeholder password.
	DemoPassword string
}

// SessionListener is invoked after every session change. The argument
// is the new session user, or nil after logout.
type SessionListener func(*model.User)

// Service holds the seeded roster and the current session, persisting
// the session across restarts. Registered users become the session but
// are not appended to the roster, so they do not take part in login
// matching or user queries.
type Service struct {
	mu        sync.Mutex
	store     store.Store
	notices   notice.Recorder
	roster    []model.User
	current   *model.User
	listeners []SessionListener

	latency      time.Duration
	demoPassword string
	loading      bool
}

// NewService creates the identity store and restores any persisted
// session. A corrupt session snapshot is discarded and removed; it is
// never a fatal condition.
func NewService(ctx context.Context, s store.Store, notices notice.Recorder, opts Options) (*Service, error) {
	if notices == nil {
		notices = notice.Discard
	}
	if opts.DemoPassword == "" {
		opts.DemoPassword = defaultDemoPassword
	}

	svc := &Service{
		store:        s,
		notices:      notices,
		roster:       seedUsers(),
		latency:      opts.Latency,
		demoPassword: opts.DemoPassword,
	}

	raw, ok, err := s.Get(ctx, store.KeySession)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if ok {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			// Treat unreadable session data as signed out.
			_ = s.Delete(ctx, store.KeySession)
		} else {
			svc.current = &u
		}
	}

	return svc, nil
}

// Login authenticates by case-insensitive email match against the
// roster plus the placeholder password check. On success the matched
// user becomes the persisted session. On failure the session is left
// unchanged and the result is false with a nil error; a non-nil error
// only reports storage trouble.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := wait(ctx, s.latency); err != nil {
		return false, err
	}

	s.mu.Lock()
	var found *model.User
	for i := range s.roster {
		if strings.EqualFold(s.roster[i].Email, email) {
			found = &s.roster[i]
			break
		}
	}

	if found == nil || password != s.demoPassword {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Invalid email or password")
		return false, nil
	}

	u := *found
	if err := s.persistSessionLocked(ctx, u); err != nil {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "An error occurred during login")
		return false, err
	}
	s.current = &u
	s.mu.Unlock()

	s.notices.Notify(notice.LevelSuccess, fmt.Sprintf("Welcome back, %s!", u.Name))
	s.notifySessionChanged(&u)
	return true, nil
}

// Register creates a new account with a generated id, the default
// "user" role, and a deterministic placeholder avatar, and signs it in.
// The password is accepted but never checked afterwards. The new user
// does not join the roster; see the Service doc comment.
func (s *Service) Register(ctx context.Context, name, email, password string) (bool, error) {
	_ = password

	s.setLoading(true)
	defer s.setLoading(false)

	if err := wait(ctx, s.latency); err != nil {
		return false, err
	}

	s.mu.Lock()
	for i := range s.roster {
		if strings.EqualFold(s.roster[i].Email, email) {
			s.mu.Unlock()
			s.notices.Notify(notice.LevelError, "Email already registered")
			return false, nil
		}
	}

	u := model.User{
		ID:     uuid.New().String(),
		Name:   name,
		Email:  email,
		Role:   model.RoleUser,
		Avatar: fmt.Sprintf("https://i.pravatar.cc/150?img=%d", len(s.roster)+4),
	}

	if err := s.persistSessionLocked(ctx, u); err != nil {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "An error occurred during registration")
		return false, err
	}
	s.current = &u
	s.mu.Unlock()

	s.notices.Notify(notice.LevelSuccess, fmt.Sprintf("Welcome, %s!", name))
	s.notifySessionChanged(&u)
	return true, nil
}

// Logout clears the session. It always succeeds: removing the
// persisted record is best effort, the in-memory session is gone
// regardless.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	_ = s.store.Delete(ctx, store.KeySession)
	s.mu.Unlock()

	s.notices.Notify(notice.LevelInfo, "You've been logged out")
	s.notifySessionChanged(nil)
}

// CurrentUser returns a copy of the session user, or nil when signed out.
func (s *Service) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAuthenticated reports whether a session is present.
func (s *Service) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Users returns a copy of the queryable roster.
func (s *Service) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.roster))
	copy(out, s.roster)
	return out
}

// Loading reports whether an auth operation is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SubscribeSession registers a listener for session changes. Listeners
// run synchronously after login, register, and logout.
func (s *Service) SubscribeSession(fn SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// persistSessionLocked writes u as the session snapshot. Caller holds s.mu.
func (s *Service) persistSessionLocked(ctx context.Context, u model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.store.Put(ctx, store.KeySession, string(raw)); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

func (s *Service) notifySessionChanged(u *model.User) {
	s.mu.Lock()
	listeners := make([]SessionListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(u)
	}
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// wait sleeps for the simulated latency, honoring context cancellation.
// A zero duration returns immediately.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
