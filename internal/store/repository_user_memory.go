package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

// memoryUserRepository keeps users in process memory. It backs the service
// when no database DSN is configured and serves as a fake in tests.
type memoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]models.User
	byUsername map[string]string

	ids idGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewMemoryUserRepository constructs an empty in-memory [UserRepository].
func NewMemoryUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	return &memoryUserRepository{
		byID:       make(map[string]models.User),
		byUsername: make(map[string]string),
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
		logger:     logger,
	}
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *memoryUserRepository) Save(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = r.ids.Generate()
	}

	if ownerID, taken := r.byUsername[user.Username]; taken && ownerID != user.ID {
		return models.User{}, ErrUsernameAlreadyExists
	}

	if existing, ok := r.byID[user.ID]; ok {
		// username and creation time are immutable
		user.Username = existing.Username
		user.CreatedAt = existing.CreatedAt
	} else {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = r.now().UTC()
		}
		if user.Role == "" {
			user.Role = models.RoleUser
		}
		r.byUsername[user.Username] = user.ID
	}

	stored := cloneUser(user)
	r.byID[user.ID] = stored

	return cloneUser(stored), nil
}

func (r *memoryUserRepository) FindAll(_ context.Context) ([]models.User, error) {
	return r.sorted(nil), nil
}

func (r *memoryUserRepository) FindPage(_ context.Context, req models.PageRequest) (models.Page[models.User], error) {
	return paginate(r.sorted(nil), req), nil
}

func (r *memoryUserRepository) FindByUsernameContaining(_ context.Context, substring string, req models.PageRequest) (models.Page[models.User], error) {
	needle := strings.ToLower(substring)
	matches := r.sorted(func(u models.User) bool {
		return strings.Contains(strings.ToLower(u.Username), needle)
	})

	return paginate(matches, req), nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	return r.count(func(models.User) bool { return true }), nil
}

func (r *memoryUserRepository) CountByIsActive(_ context.Context, isActive bool) (int64, error) {
	return r.count(func(u models.User) bool { return u.IsActive == isActive }), nil
}

func (r *memoryUserRepository) CountByRole(_ context.Context, role string) (int64, error) {
	return r.count(func(u models.User) bool { return u.Role == role }), nil
}

func (r *memoryUserRepository) CountByLastLoginAtAfter(_ context.Context, t time.Time) (int64, error) {
	return r.count(func(u models.User) bool {
		return u.LastLoginAt != nil && u.LastLoginAt.After(t)
	}), nil
}

// sorted returns copies of the users matching keep (all when nil) ordered by
// username.
func (r *memoryUserRepository) sorted(keep func(models.User) bool) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.byID))
	for _, u := range r.byID {
		if keep == nil || keep(u) {
			users = append(users, cloneUser(u))
		}
	}

	slices.SortFunc(users, func(a, b models.User) int {
		return strings.Compare(a.Username, b.Username)
	})

	return users
}

func (r *memoryUserRepository) count(keep func(models.User) bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, u := range r.byID {
		if keep(u) {
			n++
		}
	}

	return n
}

func paginate(users []models.User, req models.PageRequest) models.Page[models.User] {
	total := int64(len(users))

	if req.Page < 0 || req.Size < 1 {
		return models.NewPage[models.User](nil, req, total)
	}

	start := min(req.Offset(), len(users))
	end := min(start+req.Size, len(users))

	return models.NewPage(users[start:end], req, total)
}

// cloneUser copies the pointer fields so callers never share state with the
// stored record.
func cloneUser(u models.User) models.User {
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		u.PasswordHash = &h
	}
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		u.LastLoginAt = &t
	}
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		u.UpdatedAt = &t
	}

	return u
}
