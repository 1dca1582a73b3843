package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/go-resty/resty/v2"
)

type httpDirectoryClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPDirectoryClient constructs an HTTP/REST implementation of
// [DirectoryClient]. cfg.HTTPAddress may omit the scheme, in which case
// http is assumed. A token from cfg is stored right away.
func NewHTTPDirectoryClient(cfg config.ClientAdapter, logger *logger.Logger) (DirectoryClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	c := &httpDirectoryClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	c.SetToken(cfg.Token)

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpDirectoryClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpDirectoryClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpDirectoryClient) Health(ctx context.Context) error {
	var health models.HealthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if !health.OK {
		return fmt.Errorf("server reported not ok")
	}

	return nil
}

func (h *httpDirectoryClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// Login POSTs the credentials to /api/auth/login. The token is taken from the
// response body, or from the Authorization header when the body has none.
func (h *httpDirectoryClient) Login(ctx context.Context, username, password string) (string, error) {
	var loginResp models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&loginResp).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token := loginResp.Token
	if token == "" {
		if token, err = utils.ParseBearerToken(resp.Header().Get("Authorization")); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMissingToken, err)
		}
	}

	h.SetToken(token)
	h.logger.Debug().Str("username", username).Msg("logged in")
	return token, nil
}

func (h *httpDirectoryClient) Profile(ctx context.Context) (models.ProfileResponse, error) {
	var profile models.ProfileResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&profile).
		Get("/api/auth/profile")
	if err != nil {
		return models.ProfileResponse{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileResponse{}, err
	}

	return profile, nil
}

func (h *httpDirectoryClient) ListUsers(ctx context.Context, req models.PageRequest) (models.UsersPageResponse, error) {
	var page models.UsersPageResponse

	params := map[string]string{
		"page": strconv.Itoa(req.Page),
		"size": strconv.Itoa(req.Size),
	}
	if req.Query != "" {
		params["query"] = req.Query
	}

	resp, err := h.authedRequest(ctx).
		SetQueryParams(params).
		SetResult(&page).
		Get("/api/admin/users")
	if err != nil {
		return models.UsersPageResponse{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UsersPageResponse{}, err
	}

	return page, nil
}

func (h *httpDirectoryClient) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetBody(upd).
		SetResult(&user).
		Patch("/api/admin/users/{id}")
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpDirectoryClient) Stats(ctx context.Context) (models.UserStats, error) {
	var stats models.UserStats

	resp, err := h.authedRequest(ctx).
		SetResult(&stats).
		Get("/api/admin/stats")
	if err != nil {
		return models.UserStats{}, fmt.Errorf("stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserStats{}, err
	}

	return stats, nil
}

func (h *httpDirectoryClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
