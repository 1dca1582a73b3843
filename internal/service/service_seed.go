package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/crypto"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

type seedService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	now            func() time.Time

	logger *logger.Logger
}

func NewSeedService(userRepository store.UserRepository, hasher crypto.PasswordHasher, logger *logger.Logger, opts ...ServiceOption) SeedService {
	o := applyServiceOptions(opts)
	return &seedService{
		userRepository: userRepository,
		hasher:         hasher,
		now:            o.now,
		logger:         logger,
	}
}

// DemoSeedUsers returns the demo accounts provisioned for an in-memory
// directory when nothing else is configured.
func DemoSeedUsers() []config.SeedUser {
	seeds := []config.SeedUser{
		{Username: "admin", Password: "password", Role: models.RoleAdmin, IsActive: true},
		{Username: "user", Password: "password", Role: models.RoleUser, IsActive: true},
	}
	for i := 1; i <= 5; i++ {
		seeds = append(seeds, config.SeedUser{
			Username: fmt.Sprintf("testuser%d", i),
			Password: "password",
			Role:     models.RoleUser,
			IsActive: i <= 3,
		})
	}

	return append(seeds, config.SeedUser{Username: "admin2", Password: "password", Role: models.RoleAdmin, IsActive: true})
}

// Seed creates every account of seeds whose username is free. Existing
// accounts are left untouched, so seeding is idempotent.
func (s *seedService) Seed(ctx context.Context, seeds []config.SeedUser) error {
	created := 0
	for _, seed := range seeds {
		if seed.Username == "" || seed.Password == "" {
			s.logger.Warn().Str("username", seed.Username).Msg("skipping seed account without credentials")
			continue
		}

		_, err := s.userRepository.FindByUsername(ctx, seed.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Err(err).Str("username", seed.Username).Msg("error looking up seed account")
			return fmt.Errorf("error looking up seed account %q: %w", seed.Username, err)
		}

		hash, err := s.hasher.Hash(seed.Password)
		if err != nil {
			return fmt.Errorf("error hashing password of seed account %q: %w", seed.Username, err)
		}

		role := seed.Role
		if !models.IsKnownRole(role) {
			role = models.RoleUser
		}

		_, err = s.userRepository.Save(ctx, models.User{
			Username:     seed.Username,
			PasswordHash: &hash,
			Role:         role,
			Email:        seed.Email,
			IsActive:     seed.IsActive,
			CreatedAt:    s.now().UTC(),
		})
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			// created concurrently by another instance
			continue
		}
		if err != nil {
			s.logger.Err(err).Str("username", seed.Username).Msg("error saving seed account")
			return fmt.Errorf("error saving seed account %q: %w", seed.Username, err)
		}

		created++
		s.logger.Info().Str("username", seed.Username).Str("role", role).Msg("seed account created")
	}

	s.logger.Debug().Int("created", created).Int("configured", len(seeds)).Msg("seeding finished")
	return nil
}
