package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/middleware"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/service"
	"github.com/stemsi/orgportal-backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// viewClock is a manually advanced clock so idle expiry is deterministic.
type viewClock struct {
	t time.Time
}

func (c *viewClock) Now() time.Time          { return c.t }
func (c *viewClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const viewIdle = 30 * time.Minute

// newViewTestServer wires OptionalAuth and ResolveView the way the router
// does, backed by an in-memory session store and one officer account.
func newViewTestServer(t *testing.T) (*gin.Engine, *service.AuthService, *viewClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	clock := &viewClock{t: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}
	sessions := session.NewManagerWithClock(session.NewMemoryStore(), viewIdle, clock.Now)

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      24 * time.Hour,
		BcryptCost:     bcrypt.MinCost,
		SessionIdleTTL: viewIdle,
	}
	authService := service.NewAuthService(cfg, sessions, []service.CredentialPath{
		{Role: model.RoleOfficer, Lookup: func(_ context.Context, identifier string) (*service.Identity, string, error) {
			if identifier != "ketua" {
				return nil, "", errors.New("not found")
			}
			return &service.Identity{ID: 1, Name: "Ketua OSIS"}, string(hash), nil
		}},
	})

	router := gin.New()
	router.GET("/view/:tag", middleware.OptionalAuth(authService), NewViewHandler(authService).ResolveView)
	return router, authService, clock
}

func resolvePanel(t *testing.T, router *gin.Engine, tag, token string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/view/"+tag, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /view/%s = %d, want 200", tag, rec.Code)
	}

	var body struct {
		Data struct {
			Panel string `json:"panel"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Data.Panel
}

func TestResolveViewAfterLogoutFallsToLogin(t *testing.T) {
	router, authService, _ := newViewTestServer(t)
	ctx := context.Background()

	res, err := authService.Login(ctx, "ketua", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if panel := resolvePanel(t, router, "officer", res.Token); panel != "officer" {
		t.Fatalf("panel while logged in = %q, want officer", panel)
	}

	if err := authService.Logout(ctx, model.RoleOfficer, 1); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// The JWT is still hours from expiry, but the session is gone.
	if panel := resolvePanel(t, router, "officer", res.Token); panel != "login" {
		t.Fatalf("panel after logout = %q, want login", panel)
	}
}

func TestResolveViewAfterIdleExpiryFallsToLogin(t *testing.T) {
	router, authService, clock := newViewTestServer(t)

	res, err := authService.Login(context.Background(), "ketua", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Resolving a view is a passive read: it must not push the deadline
	// back, so two resolves either side of it see different panels.
	clock.Advance(viewIdle - time.Second)
	if panel := resolvePanel(t, router, "officer", res.Token); panel != "officer" {
		t.Fatalf("panel just before deadline = %q, want officer", panel)
	}

	clock.Advance(time.Second)
	if panel := resolvePanel(t, router, "officer", res.Token); panel != "login" {
		t.Fatalf("panel after idle expiry = %q, want login", panel)
	}
}

func TestResolveViewReplacedSessionFallsToLogin(t *testing.T) {
	router, authService, _ := newViewTestServer(t)
	ctx := context.Background()

	first, err := authService.Login(ctx, "ketua", "rahasia")
	if err != nil {
		t.Fatalf("first Login: %v", err)
	}
	second, err := authService.Login(ctx, "ketua", "rahasia")
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}

	if panel := resolvePanel(t, router, "officer", first.Token); panel != "login" {
		t.Fatalf("panel with superseded token = %q, want login", panel)
	}
	if panel := resolvePanel(t, router, "officer", second.Token); panel != "officer" {
		t.Fatalf("panel with current token = %q, want officer", panel)
	}
}

func TestResolveViewAnonymousAndPublicTags(t *testing.T) {
	router, _, _ := newViewTestServer(t)

	if panel := resolvePanel(t, router, "officer", ""); panel != "login" {
		t.Fatalf("anonymous officer view = %q, want login", panel)
	}
	if panel := resolvePanel(t, router, "programs", ""); panel != "programs" {
		t.Fatalf("anonymous programs view = %q, want programs", panel)
	}
}
