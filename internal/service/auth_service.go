package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when no credential path matches.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	Role   model.Role `json:"role"`
	UserID int        `json:"user_id"`
	Name   string     `json:"name"`
}

// Identity is the role-specific record a credential path resolves to.
type Identity struct {
	ID   int
	Name string
}

// LookupFunc resolves an identifier to an identity and its password hash.
// An error means the record was not found or the verification source was
// unreachable; either way the caller moves on to the next path.
type LookupFunc func(ctx context.Context, identifier string) (*Identity, string, error)

// CredentialPath is one entry in the ordered list of verification paths.
type CredentialPath struct {
	Role   model.Role
	Lookup LookupFunc
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token    string
	Role     model.Role
	Identity *Identity
}

// AuthService handles authentication, JWT, and session lifecycle.
//
// Login walks the credential paths in their given order and the first
// positive match wins. Officers may share an identifier namespace with
// coordinators and students, so the officer path is listed first to resolve
// ambiguity in favor of elevated privilege.
type AuthService struct {
	cfg      *config.Config
	sessions *session.Manager
	paths    []CredentialPath
}

// NewAuthService creates a new AuthService with an explicit, ordered list of
// credential paths.
func NewAuthService(cfg *config.Config, sessions *session.Manager, paths []CredentialPath) *AuthService {
	return &AuthService{cfg: cfg, sessions: sessions, paths: paths}
}

// DefaultCredentialPaths builds the production path order:
// officer (by username), then coordinator (by email), then student (by NIS).
func DefaultCredentialPaths(
	officerService *OfficerService,
	coordinatorService *CoordinatorService,
	studentService *StudentService,
) []CredentialPath {
	return []CredentialPath{
		{Role: model.RoleOfficer, Lookup: func(ctx context.Context, identifier string) (*Identity, string, error) {
			o, err := officerService.GetByUsername(ctx, identifier)
			if err != nil {
				return nil, "", err
			}
			return &Identity{ID: o.ID, Name: o.Name}, o.PasswordHash, nil
		}},
		{Role: model.RoleCoordinator, Lookup: func(ctx context.Context, identifier string) (*Identity, string, error) {
			co, err := coordinatorService.GetByEmail(ctx, identifier)
			if err != nil {
				return nil, "", err
			}
			return &Identity{ID: co.ID, Name: co.Name}, co.PasswordHash, nil
		}},
		{Role: model.RoleStudent, Lookup: func(ctx context.Context, identifier string) (*Identity, string, error) {
			s, err := studentService.GetByNIS(ctx, identifier)
			if err != nil {
				return nil, "", err
			}
			return &Identity{ID: s.ID, Name: s.Name}, s.PasswordHash, nil
		}},
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login tries each credential path in order. A path that errors (record
// missing, verification source down) counts as "no match" and the next path
// is tried. A matching path issues a JWT and starts the idle-monitored
// session; no path matching is terminal for the attempt.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	for _, path := range s.paths {
		ident, hash, err := path.Lookup(ctx, identifier)
		if err != nil {
			continue
		}
		if s.CheckPassword(hash, password) != nil {
			continue
		}

		token, jti, err := s.generateToken(path.Role, ident)
		if err != nil {
			return nil, fmt.Errorf("sign token: %w", err)
		}
		if err := s.sessions.Start(ctx, path.Role, ident.ID, jti); err != nil {
			return nil, fmt.Errorf("start session: %w", err)
		}

		return &LoginResult{Token: token, Role: path.Role, Identity: ident}, nil
	}

	return nil, ErrInvalidCredentials
}

// Logout ends the user's session. Entering the logged-out state always
// clears the armed idle deadline.
func (s *AuthService) Logout(ctx context.Context, role model.Role, userID int) error {
	return s.sessions.End(ctx, role, userID)
}

// TouchSession validates the session for the given claims and rearms the
// idle deadline to the full window.
func (s *AuthService) TouchSession(ctx context.Context, claims *Claims) error {
	return s.sessions.Touch(ctx, claims.Role, claims.UserID, claims.ID)
}

// ValidateSession checks that the claims still belong to a live session
// without rearming the idle deadline.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) error {
	return s.sessions.Validate(ctx, claims.Role, claims.UserID, claims.ID)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateToken(role model.Role, ident *Identity) (signed, jti string, err error) {
	jti = uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(ident.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:   role,
		UserID: ident.ID,
		Name:   ident.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err = token.SignedString([]byte(s.cfg.JWTSecret))
	return signed, jti, err
}
