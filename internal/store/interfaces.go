package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-directory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository is the persistence boundary of the directory. Every
// implementation is safe for concurrent use; concurrent writes to the same
// record are last-write-wins.
type UserRepository interface {
	// FindByUsername returns the user with exactly this username or
	// [ErrUserNotFound].
	FindByUsername(ctx context.Context, username string) (models.User, error)

	// FindByID returns the user with this id or [ErrUserNotFound].
	FindByID(ctx context.Context, id string) (models.User, error)

	// Save inserts user when it has no ID (assigning ID and CreatedAt) and
	// updates the stored record otherwise. Returns the persisted record or
	// [ErrUsernameAlreadyExists].
	Save(ctx context.Context, user models.User) (models.User, error)

	// FindAll returns every user ordered by username.
	FindAll(ctx context.Context) ([]models.User, error)

	// FindPage returns one page of all users ordered by username.
	FindPage(ctx context.Context, req models.PageRequest) (models.Page[models.User], error)

	// FindByUsernameContaining returns one page of users whose username
	// contains substring, compared case-insensitively.
	FindByUsernameContaining(ctx context.Context, substring string, req models.PageRequest) (models.Page[models.User], error)

	Count(ctx context.Context) (int64, error)
	CountByIsActive(ctx context.Context, isActive bool) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)

	// CountByLastLoginAtAfter counts users whose last login is strictly
	// after t.
	CountByLastLoginAtAfter(ctx context.Context, t time.Time) (int64, error)
}

// ErrorClassificator decides how a driver error should be treated by the
// SQL repository.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may succeed on retry.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
