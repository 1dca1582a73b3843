// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

type directoryService struct {
	userRepository store.UserRepository
	now            func() time.Time

	logger *logger.Logger
}

// NewDirectoryService constructs the administrative DirectoryService over
// userRepository.
func NewDirectoryService(userRepository store.UserRepository, logger *logger.Logger, opts ...ServiceOption) DirectoryService {
	o := applyServiceOptions(opts)
	return &directoryService{
		userRepository: userRepository,
		now:            o.now,
		logger:         logger,
	}
}

func (d *directoryService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := d.userRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error listing users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return users, nil
}

// ListUsers returns one page of users ordered by username. A blank query
// lists everyone. A negative page or a size below one is rejected with
// ErrInvalidDataProvided before the store is queried.
func (d *directoryService) ListUsers(ctx context.Context, req models.PageRequest) (models.Page[models.User], error) {
	log := logger.FromContext(ctx)
	if req.Page < 0 || req.Size < 1 {
		log.Warn().Int("page", req.Page).Int("size", req.Size).Msg("rejected page request")
		return models.Page[models.User]{}, fmt.Errorf("%w: page %d, size %d", ErrInvalidDataProvided, req.Page, req.Size)
	}
	req.Query = strings.TrimSpace(req.Query)

	var (
		page models.Page[models.User]
		err  error
	)
	if req.Query == "" {
		page, err = d.userRepository.FindPage(ctx, req)
	} else {
		page, err = d.userRepository.FindByUsernameContaining(ctx, req.Query, req)
	}
	if err != nil {
		log.Err(err).Any("request", req).Msg("error listing users page")
		return models.Page[models.User]{}, fmt.Errorf("error listing users page: %w", err)
	}

	return page, nil
}

// UpdateUser applies upd to the user with id.
//
// A role other than USER or ADMIN is dropped without an error. When nothing
// is applied the stored record is returned as is and no write happens.
func (d *directoryService) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	user, err := d.userRepository.FindByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("id", id).Msg("error finding user")
		return models.User{}, false, fmt.Errorf("error finding user: %w", err)
	}

	changed := false
	if upd.Role != nil {
		if models.IsKnownRole(*upd.Role) {
			user.Role = *upd.Role
			changed = true
		} else {
			log.Debug().Str("id", id).Str("role", *upd.Role).Msg("ignoring unknown role")
		}
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
		changed = true
	}

	if !changed {
		return user, true, nil
	}

	now := d.now().UTC()
	user.UpdatedAt = &now

	saved, err := d.userRepository.Save(ctx, user)
	if err != nil {
		log.Err(err).Str("id", id).Msg("error saving user")
		return models.User{}, false, fmt.Errorf("error saving user: %w", err)
	}

	return saved, true, nil
}

// GetUserStats runs one store query per counter. TodayLogins counts logins
// strictly after midnight in the location of the service clock.
func (d *directoryService) GetUserStats(ctx context.Context) (models.UserStats, error) {
	var (
		stats models.UserStats
		err   error
	)

	counters := []struct {
		name  string
		dst   *int64
		count func() (int64, error)
	}{
		{"total", &stats.TotalUsers, func() (int64, error) { return d.userRepository.Count(ctx) }},
		{"active", &stats.ActiveUsers, func() (int64, error) { return d.userRepository.CountByIsActive(ctx, true) }},
		{"inactive", &stats.InactiveUsers, func() (int64, error) { return d.userRepository.CountByIsActive(ctx, false) }},
		{"admin", &stats.AdminUsers, func() (int64, error) { return d.userRepository.CountByRole(ctx, models.RoleAdmin) }},
		{"regular", &stats.RegularUsers, func() (int64, error) { return d.userRepository.CountByRole(ctx, models.RoleUser) }},
		{"today_logins", &stats.TodayLogins, func() (int64, error) {
			return d.userRepository.CountByLastLoginAtAfter(ctx, startOfDay(d.now()))
		}},
	}

	for _, c := range counters {
		if *c.dst, err = c.count(); err != nil {
			logger.FromContext(ctx).Err(err).Str("counter", c.name).Msg("error counting users")
			return models.UserStats{}, fmt.Errorf("error counting %s users: %w", c.name, err)
		}
	}

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
