package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     bcrypt.MinCost,
		SessionIdleTTL: 30 * time.Minute,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

type record struct {
	id   int
	hash string
}

// stubPath builds a credential path backed by an identifier→(identity, hash) map.
func stubPath(role model.Role, records map[string]record) CredentialPath {
	return CredentialPath{Role: role, Lookup: func(_ context.Context, identifier string) (*Identity, string, error) {
		rec, ok := records[identifier]
		if !ok {
			return nil, "", errors.New("not found")
		}
		return &Identity{ID: rec.id, Name: "User " + identifier}, rec.hash, nil
	}}
}

// downPath simulates an unreachable verification source.
func downPath(role model.Role) CredentialPath {
	return CredentialPath{Role: role, Lookup: func(context.Context, string) (*Identity, string, error) {
		return nil, "", errors.New("connection refused")
	}}
}

func newTestAuthService(paths []CredentialPath) (*AuthService, *session.Manager) {
	sessions := session.NewManager(session.NewMemoryStore(), 30*time.Minute)
	return NewAuthService(testConfig(), sessions, paths), sessions
}

func TestLoginOfficerPrecedence(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "rahasia")

	// The same identifier exists as both an officer and a coordinator.
	svc, _ := newTestAuthService([]CredentialPath{
		stubPath(model.RoleOfficer, map[string]record{"ketua": {id: 1, hash: hash}}),
		stubPath(model.RoleCoordinator, map[string]record{"ketua": {id: 9, hash: hash}}),
		stubPath(model.RoleStudent, nil),
	})

	res, err := svc.Login(ctx, "ketua", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role != model.RoleOfficer {
		t.Errorf("resolved role = %q, want %q", res.Role, model.RoleOfficer)
	}
	if res.Identity.ID != 1 {
		t.Errorf("resolved identity ID = %d, want officer record 1", res.Identity.ID)
	}
}

func TestLoginFallsThroughUnreachablePath(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "rahasia")

	// Officer path down, coordinator path has no record: the student path
	// must still be tried.
	svc, _ := newTestAuthService([]CredentialPath{
		downPath(model.RoleOfficer),
		stubPath(model.RoleCoordinator, nil),
		stubPath(model.RoleStudent, map[string]record{"12345": {id: 3, hash: hash}}),
	})

	res, err := svc.Login(ctx, "12345", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role != model.RoleStudent {
		t.Errorf("resolved role = %q, want %q", res.Role, model.RoleStudent)
	}
}

func TestLoginWrongPasswordTriesNextPath(t *testing.T) {
	ctx := context.Background()

	// Identifier matches an officer with one password and a student with
	// another: the student's password must log in as the student.
	svc, _ := newTestAuthService([]CredentialPath{
		stubPath(model.RoleOfficer, map[string]record{"77": {id: 7, hash: mustHash(t, "officer-pass")}}),
		stubPath(model.RoleCoordinator, nil),
		stubPath(model.RoleStudent, map[string]record{"77": {id: 4, hash: mustHash(t, "student-pass")}}),
	})

	res, err := svc.Login(ctx, "77", "student-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role != model.RoleStudent {
		t.Errorf("resolved role = %q, want %q", res.Role, model.RoleStudent)
	}
}

func TestLoginNoMatchIsTerminal(t *testing.T) {
	ctx := context.Background()

	svc, _ := newTestAuthService([]CredentialPath{
		downPath(model.RoleOfficer),
		downPath(model.RoleCoordinator),
		downPath(model.RoleStudent),
	})

	if _, err := svc.Login(ctx, "anyone", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginStartsSessionAndTokenRoundTrips(t *testing.T) {
	ctx := context.Background()
	hash := mustHash(t, "rahasia")

	svc, sessions := newTestAuthService([]CredentialPath{
		stubPath(model.RoleOfficer, map[string]record{"ketua": {id: 1, hash: hash}}),
	})

	res, err := svc.Login(ctx, "ketua", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != model.RoleOfficer || claims.UserID != 1 {
		t.Errorf("claims = role %q user %d, want officer 1", claims.Role, claims.UserID)
	}

	if err := sessions.Touch(ctx, claims.Role, claims.UserID, claims.ID); err != nil {
		t.Fatalf("session not started on login: %v", err)
	}

	if err := svc.Logout(ctx, claims.Role, claims.UserID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := sessions.Touch(ctx, claims.Role, claims.UserID, claims.ID); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("Touch after logout = %v, want ErrNoSession", err)
	}
}
