// Package session holds the process-wide authentication state: the current
// user, seeded from the session cache at startup and mutated by
// login/register/logout. A single instance is created at startup and passed
// by reference to whatever needs it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slabvault/slabvault/internal/client/api"
	"github.com/slabvault/slabvault/internal/client/cache"
	"github.com/slabvault/slabvault/internal/client/models"
	"github.com/slabvault/slabvault/internal/logging"
)

// State is the session lifecycle state: initializing until Restore has run,
// then authenticated or anonymous.
type State string

const (
	StateInitializing  State = "initializing"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Transport is the slice of the API client the session needs.
type Transport interface {
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, email, newPassword string) error
}

// Session is safe for use from multiple goroutines, though the interactive
// client drives it from one.
type Session struct {
	transport Transport
	cache     *cache.Cache
	log       logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
}

func New(t Transport, c *cache.Cache, log logging.Logger) *Session {
	return &Session{
		transport: t,
		cache:     c,
		log:       log.With("component", "session"),
		state:     StateInitializing,
	}
}

// Restore seeds the session from the cache. Authentication is restored only
// when both token and user are present and the token is not known to be
// expired; any other combination is treated as corrupted state and both
// entries are discarded.
func (s *Session) Restore(ctx context.Context) {
	token := s.cache.Token(ctx)
	user := s.cache.User(ctx)

	if token != "" && user != nil && !tokenExpired(token, time.Now()) {
		s.setUser(user, StateAuthenticated)
		s.log.Info(ctx, "session restored", "email", user.Email)
		return
	}

	if token != "" || user != nil {
		s.log.Warn(ctx, "discarding partial cached auth state")
	}
	s.cache.RemoveToken(ctx)
	s.cache.RemoveUser(ctx)
	s.setUser(nil, StateAnonymous)
}

// tokenExpired decodes the JWT claims without verifying the signature
// (verification is the server's job) and reports whether exp has passed.
// Opaque or claimless tokens are never considered expired here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Register creates an account and transitions to authenticated.
func (s *Session) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	res, err := s.transport.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.persist(ctx, res)
	return s.User(), nil
}

// Login authenticates and transitions to authenticated.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := s.transport.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.persist(ctx, res)
	return s.User(), nil
}

func (s *Session) persist(ctx context.Context, res *api.AuthResponse) {
	s.cache.SetToken(ctx, res.Token)
	u := res.User
	s.cache.SetUser(ctx, &u)
	s.setUser(&u, StateAuthenticated)
}

// Logout wipes every cache namespace and transitions to anonymous.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	s.setUser(nil, StateAnonymous)
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	return s.transport.ForgotPassword(ctx, email)
}

func (s *Session) ResetPassword(ctx context.Context, token, email, newPassword string) error {
	return s.transport.ResetPassword(ctx, token, email, newPassword)
}

func (s *Session) setUser(u *models.User, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.state = state
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the current user, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated requires both an in-memory user and a cached token, so a
// 401 that cleared the token (see the API client) also ends the session.
func (s *Session) Authenticated(ctx context.Context) bool {
	return s.User() != nil && s.cache.Token(ctx) != ""
}

// IsAdmin is a plain role comparison; server-side authorization still applies.
func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && u.IsAdmin()
}
