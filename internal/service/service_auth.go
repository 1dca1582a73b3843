package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/crypto"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against the user store, delegates token handling
// to a TokenService and records logins.
type authService struct {
	// userRepository is the data-access layer used to look up and update users.
	userRepository store.UserRepository

	// hasher verifies plaintext passwords against stored hashes.
	hasher crypto.PasswordHasher

	// tokens issues and validates session tokens.
	tokens TokenService

	now func() time.Time

	// timingHash is compared against when there is no stored hash, so a
	// missing user costs the same bcrypt work as a wrong password.
	timingHashOnce sync.Once
	timingHash     string

	logger *logger.Logger
}

// timingPlaintext is hashed once per service to produce timingHash.
const timingPlaintext = "user-directory-timing-equalizer"

// NewAuthService constructs a new AuthService wired to the given collaborators.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	tokens TokenService,
	logger *logger.Logger,
	opts ...ServiceOption,
) AuthService {
	o := applyServiceOptions(opts)
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		now:            o.now,
		logger:         logger,
	}
}

// ValidateCredentials does not tell an unknown user apart from a wrong
// password. Only store failures other than not-found are returned as errors.
func (a *authService) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	user, found, err := a.GetUser(ctx, username)
	if err != nil {
		return false, err
	}
	if !found || !user.HasPassword() {
		a.hasher.Verify(password, a.equalizerHash(ctx))
		return false, nil
	}

	return a.hasher.Verify(password, *user.PasswordHash), nil
}

// equalizerHash returns a hash made with the configured cost. A hashing
// failure leaves it empty and Verify then fails fast.
func (a *authService) equalizerHash(ctx context.Context) string {
	a.timingHashOnce.Do(func() {
		hash, err := a.hasher.Hash(timingPlaintext)
		if err != nil {
			logger.FromContext(ctx).Err(err).Msg("error preparing timing hash")
			return
		}
		a.timingHash = hash
	})

	return a.timingHash
}

func (a *authService) IssueSessionFor(ctx context.Context, username string) (models.Token, error) {
	token, err := a.tokens.Issue(username)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("error issuing session token")
		return models.Token{}, fmt.Errorf("error issuing session token: %w", err)
	}

	return token, nil
}

// UpdateLastLogin is a no-op when the user disappeared between the credential
// check and this call.
func (a *authService) UpdateLastLogin(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	user, found, err := a.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if !found {
		log.Debug().Str("username", username).Msg("user vanished before last login update")
		return nil
	}

	now := a.now().UTC()
	user.LastLoginAt = &now
	user.UpdatedAt = &now

	if _, err = a.userRepository.Save(ctx, user); err != nil {
		log.Err(err).Str("username", username).Msg("error saving last login time")
		return fmt.Errorf("error saving last login time: %w", err)
	}

	return nil
}

// Login authenticates the request and returns a fresh session token.
//
// Inactive accounts are allowed to log in; the active flag only feeds the
// statistics.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	ok, err := a.ValidateCredentials(ctx, req.Username, req.Password)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("error validating credentials")
		return models.Token{}, err
	}
	if !ok {
		log.Info().Str("username", req.Username).Msg("invalid credentials")
		return models.Token{}, ErrInvalidCredentials
	}

	token, err := a.IssueSessionFor(ctx, req.Username)
	if err != nil {
		return models.Token{}, err
	}

	if err = a.UpdateLastLogin(ctx, req.Username); err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("login succeeded but last login was not recorded")
	}

	return token, nil
}

func (a *authService) GetUser(ctx context.Context, username string) (models.User, bool, error) {
	user, err := a.userRepository.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("error finding user")
		return models.User{}, false, fmt.Errorf("error finding user: %w", err)
	}

	return user, true, nil
}

func (a *authService) ResolveRole(ctx context.Context, username string) (string, error) {
	user, found, err := a.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	if !found || user.Role == "" {
		return models.RoleUser, nil
	}

	return user.Role, nil
}

func (a *authService) Authenticate(ctx context.Context, token string) (string, bool) {
	return a.tokens.Validate(token)
}

func (a *authService) Authorize(ctx context.Context, username, role string) error {
	user, found, err := a.GetUser(ctx, username)
	if err != nil {
		return err
	}
	if !found || user.Role != role {
		return ErrForbidden
	}

	return nil
}
