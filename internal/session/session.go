// Package session implements the portal's single-active-session rule with a
// sliding inactivity deadline. Every authenticated request rearms the deadline
// to the full idle window; a request after the deadline ends the session.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/model"
)

var (
	ErrNoSession = errors.New("no active session")
	ErrExpired   = errors.New("session expired due to inactivity")
	ErrReplaced  = errors.New("session replaced by a newer login")
)

// Record is the stored session state for one user.
type Record struct {
	JTI      string    `json:"jti"`
	Deadline time.Time `json:"deadline"`
}

// Store persists session records. Implementations: RedisStore (production)
// and MemoryStore (tests).
type Store interface {
	Put(ctx context.Context, key string, rec Record) error
	// Get returns the record and whether one exists.
	Get(ctx context.Context, key string) (Record, bool, error)
	Del(ctx context.Context, key string) error
}

// Manager tracks active sessions. The clock is injected so the idle-timeout
// behavior is testable without wall-clock waits.
type Manager struct {
	store   Store
	idleTTL time.Duration
	now     func() time.Time
}

// NewManager creates a Manager using the real clock.
func NewManager(store Store, idleTTL time.Duration) *Manager {
	return NewManagerWithClock(store, idleTTL, time.Now)
}

// NewManagerWithClock creates a Manager with an explicit clock.
func NewManagerWithClock(store Store, idleTTL time.Duration, now func() time.Time) *Manager {
	return &Manager{store: store, idleTTL: idleTTL, now: now}
}

// IdleTTL returns the configured inactivity window.
func (m *Manager) IdleTTL() time.Duration {
	return m.idleTTL
}

// Start registers a session for the user and arms the idle deadline.
// Any previous session for the same user is replaced.
func (m *Manager) Start(ctx context.Context, role model.Role, userID int, jti string) error {
	rec := Record{JTI: jti, Deadline: m.now().Add(m.idleTTL)}
	return m.store.Put(ctx, sessionKey(role, userID), rec)
}

// Touch validates the session and rearms the idle deadline to the full
// window. The old deadline is always replaced, never extended incrementally.
//
// Returns ErrNoSession if no session exists, ErrExpired exactly once for a
// session whose deadline has passed (the record is cleared so a later call
// reports ErrNoSession), and ErrReplaced if the JTI belongs to a superseded
// login.
func (m *Manager) Touch(ctx context.Context, role model.Role, userID int, jti string) error {
	key := sessionKey(role, userID)
	if err := m.check(ctx, key, jti); err != nil {
		return err
	}

	rec := Record{JTI: jti, Deadline: m.now().Add(m.idleTTL)}
	return m.store.Put(ctx, key, rec)
}

// Validate checks the session like Touch but leaves the idle deadline as it
// is. Used by passive reads such as view resolution, which must not count as
// user activity.
func (m *Manager) Validate(ctx context.Context, role model.Role, userID int, jti string) error {
	return m.check(ctx, sessionKey(role, userID), jti)
}

func (m *Manager) check(ctx context.Context, key, jti string) error {
	rec, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}

	if !m.now().Before(rec.Deadline) {
		if err := m.store.Del(ctx, key); err != nil {
			return err
		}
		return ErrExpired
	}

	if rec.JTI != jti {
		return ErrReplaced
	}

	return nil
}

// End removes the user's session. Safe to call when none exists.
func (m *Manager) End(ctx context.Context, role model.Role, userID int) error {
	return m.store.Del(ctx, sessionKey(role, userID))
}

// sessionKey includes the role because officer and coordinator/student ID
// namespaces overlap.
func sessionKey(role model.Role, userID int) string {
	return config.CacheKey.SessionKey(string(role), userID)
}
