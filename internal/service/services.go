package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/crypto"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
)

type Services struct {
	AuthService      AuthService
	TokenService     TokenService
	DirectoryService DirectoryService
	SeedService      SeedService
	AppInfoService   AppInfoService
}

// NewServices builds every service of the directory from the validated
// configuration.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger, opts ...ServiceOption) (*Services, error) {
	hasher, err := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokenOpts := []TokenOption{}
	if o := applyServiceOptions(opts); o.now != nil {
		tokenOpts = append(tokenOpts, WithTokenClock(o.now))
	}

	tokens, err := NewTokenService(TokenSettings{
		SignKey: []byte(cfg.Auth.TokenSignKey),
		TTL:     cfg.Auth.TokenTTL(),
		Issuer:  cfg.Auth.TokenIssuer,
	}, logger, tokenOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, hasher, tokens, logger, opts...),
		TokenService:     tokens,
		DirectoryService: NewDirectoryService(storages.UserRepository, logger, opts...),
		SeedService:      NewSeedService(storages.UserRepository, hasher, logger, opts...),
		AppInfoService:   appInfo,
	}, nil
}
