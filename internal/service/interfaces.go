package service

import (
	"context"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and validates stateless signed session tokens. It is
// pure and safe for concurrent use.
type TokenService interface {
	// Issue signs a token for subject valid from now until now+TTL.
	Issue(subject string) (models.Token, error)

	// Validate returns the subject of a valid token. Every failure reason
	// collapses to ok == false.
	Validate(token string) (subject string, ok bool)

	// Inspect returns the detailed validation outcome.
	Inspect(token string) models.TokenValidation
}

// AuthService orchestrates credential checks, session issuance and the
// per-request identity lookups.
type AuthService interface {
	// ValidateCredentials reports whether password matches the stored hash of
	// username. Unknown users and users without a hash yield false.
	ValidateCredentials(ctx context.Context, username, password string) (bool, error)

	// IssueSessionFor issues a session token for username.
	IssueSessionFor(ctx context.Context, username string) (models.Token, error)

	// UpdateLastLogin stamps the login time of username. A missing user is a
	// no-op.
	UpdateLastLogin(ctx context.Context, username string) error

	// Login validates the credentials, issues a token and records the login.
	// Returns ErrInvalidCredentials on any credential mismatch.
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)

	GetUser(ctx context.Context, username string) (models.User, bool, error)

	// ResolveRole returns the role of username for display, falling back to
	// models.RoleUser.
	ResolveRole(ctx context.Context, username string) (string, error)

	// Authenticate validates a bearer token and returns its subject.
	Authenticate(ctx context.Context, token string) (string, bool)

	// Authorize checks against the store that username currently holds role.
	// Returns ErrForbidden otherwise.
	Authorize(ctx context.Context, username, role string) error
}

// DirectoryService provides the administrative view of the user directory.
type DirectoryService interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ListUsers(ctx context.Context, req models.PageRequest) (models.Page[models.User], error)

	// UpdateUser applies the role and status fields of upd. Unknown role
	// values are ignored. ok is false when no user has this id.
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (user models.User, ok bool, err error)

	GetUserStats(ctx context.Context) (models.UserStats, error)
}

// SeedService provisions accounts at startup.
type SeedService interface {
	// Seed creates each account whose username is not taken yet.
	Seed(ctx context.Context, seeds []config.SeedUser) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
