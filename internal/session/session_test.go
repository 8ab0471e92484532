package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stemsi/orgportal-backend/internal/model"
)

const idle = 30 * time.Minute

// fakeClock is a manually advanced clock for deterministic timeout tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager() (*Manager, *MemoryStore, *fakeClock) {
	store := NewMemoryStore()
	clock := newFakeClock()
	return NewManagerWithClock(store, idle, clock.Now), store, clock
}

func TestTouchRearmsFullWindow(t *testing.T) {
	ctx := context.Background()
	m, _, clock := newTestManager()

	if err := m.Start(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A burst of interactions: after each one the remaining window must be
	// the full duration, regardless of how much was left before.
	for _, gap := range []time.Duration{time.Second, 10 * time.Minute, 29 * time.Minute} {
		clock.Advance(gap)
		if err := m.Touch(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
			t.Fatalf("Touch after %v: %v", gap, err)
		}
	}

	// 29m59s after the last interaction the session must still be alive...
	clock.Advance(29*time.Minute + 59*time.Second)
	if err := m.Touch(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
		t.Fatalf("Touch at 29m59s: %v", err)
	}

	// ...and the touch above rearmed it again for the full window.
	clock.Advance(29*time.Minute + 59*time.Second)
	if err := m.Touch(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
		t.Fatalf("second Touch at 29m59s: %v", err)
	}
}

func TestIdleExpiryReportedOnce(t *testing.T) {
	ctx := context.Background()
	m, store, clock := newTestManager()

	if err := m.Start(ctx, model.RoleStudent, 3, "jti-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	clock.Advance(idle)

	// First observation after the deadline reports expiry...
	if err := m.Touch(ctx, model.RoleStudent, 3, "jti-1"); !errors.Is(err, ErrExpired) {
		t.Fatalf("Touch after %v = %v, want ErrExpired", idle, err)
	}
	// ...and clears the record, so nothing fires twice.
	if store.Len() != 0 {
		t.Fatalf("store has %d records after expiry, want 0", store.Len())
	}
	if err := m.Touch(ctx, model.RoleStudent, 3, "jti-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("second Touch = %v, want ErrNoSession", err)
	}
}

func TestExplicitLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager()

	if err := m.Start(ctx, model.RoleOfficer, 1, "jti-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.End(ctx, model.RoleOfficer, 1); err != nil {
		t.Fatalf("End: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store has %d records after logout, want 0", store.Len())
	}
	if err := m.Touch(ctx, model.RoleOfficer, 1, "jti-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Touch after logout = %v, want ErrNoSession", err)
	}
}

func TestNewLoginReplacesOldSession(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager()

	if err := m.Start(ctx, model.RoleStudent, 3, "jti-old"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(ctx, model.RoleStudent, 3, "jti-new"); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if err := m.Touch(ctx, model.RoleStudent, 3, "jti-old"); !errors.Is(err, ErrReplaced) {
		t.Fatalf("Touch with old jti = %v, want ErrReplaced", err)
	}
	if err := m.Touch(ctx, model.RoleStudent, 3, "jti-new"); err != nil {
		t.Fatalf("Touch with new jti: %v", err)
	}
}

func TestValidateDoesNotRearm(t *testing.T) {
	ctx := context.Background()
	m, _, clock := newTestManager()

	if err := m.Start(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Validate just before the deadline must succeed without moving it, so
	// one more second still tips the session over into expiry.
	clock.Advance(idle - time.Second)
	if err := m.Validate(ctx, model.RoleCoordinator, 7, "jti-1"); err != nil {
		t.Fatalf("Validate at %v: %v", idle-time.Second, err)
	}

	clock.Advance(time.Second)
	if err := m.Validate(ctx, model.RoleCoordinator, 7, "jti-1"); !errors.Is(err, ErrExpired) {
		t.Fatalf("Validate after %v = %v, want ErrExpired", idle, err)
	}
}

func TestValidateReportsDeadSessions(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager()

	if err := m.Validate(ctx, model.RoleStudent, 3, "jti-1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Validate with no session = %v, want ErrNoSession", err)
	}

	if err := m.Start(ctx, model.RoleStudent, 3, "jti-old"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start(ctx, model.RoleStudent, 3, "jti-new"); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if err := m.Validate(ctx, model.RoleStudent, 3, "jti-old"); !errors.Is(err, ErrReplaced) {
		t.Fatalf("Validate with old jti = %v, want ErrReplaced", err)
	}

	if err := m.End(ctx, model.RoleStudent, 3); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := m.Validate(ctx, model.RoleStudent, 3, "jti-new"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Validate after logout = %v, want ErrNoSession", err)
	}
}

func TestRoleNamespacesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager()

	// Same numeric ID, different roles: independent sessions.
	if err := m.Start(ctx, model.RoleOfficer, 5, "jti-o"); err != nil {
		t.Fatalf("Start officer: %v", err)
	}
	if err := m.Start(ctx, model.RoleStudent, 5, "jti-s"); err != nil {
		t.Fatalf("Start student: %v", err)
	}

	if err := m.End(ctx, model.RoleStudent, 5); err != nil {
		t.Fatalf("End student: %v", err)
	}
	if err := m.Touch(ctx, model.RoleOfficer, 5, "jti-o"); err != nil {
		t.Fatalf("officer session affected by student logout: %v", err)
	}
}
