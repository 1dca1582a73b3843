// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates an httpDirectoryClient pointed at the test server.
func newTestClient(t *testing.T, serverURL string) *httpDirectoryClient {
	t.Helper()

	c, err := NewHTTPDirectoryClient(config.ClientAdapter{HTTPAddress: serverURL}, logger.Nop())
	require.NoError(t, err)
	return c.(*httpDirectoryClient)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPDirectoryClient ──────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://dir.example.com/ ", want: "https://dir.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPDirectoryClient_EmptyAddress(t *testing.T) {
	_, err := NewHTTPDirectoryClient(config.ClientAdapter{}, logger.Nop())

	require.ErrorIs(t, err, ErrEmptyAddress)
}

func TestNewHTTPDirectoryClient_PresetToken(t *testing.T) {
	c, err := NewHTTPDirectoryClient(config.ClientAdapter{HTTPAddress: "localhost:1", Token: " abc "}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "abc", c.Token())
}

// ── Health / Version ────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.HealthResponse{OK: true})
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(t, srv.URL).Health(context.Background()))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("1.4.0"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got)
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.LoginRequest{Username: "admin", Password: "password"}, req)

		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "body-token"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	token, err := c.Login(context.Background(), "admin", "password")

	require.NoError(t, err)
	assert.Equal(t, "body-token", token)
	assert.Equal(t, "body-token", c.Token())
}

func TestLogin_TokenFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	token, err := newTestClient(t, srv.URL).Login(context.Background(), "admin", "password")

	require.NoError(t, err)
	assert.Equal(t, "header-token", token)
}

func TestLogin_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background(), "admin", "password")

	require.ErrorIs(t, err, ErrMissingToken)
	assert.Empty(t, c.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Login(context.Background(), "admin", "wrong")

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

// ── Authenticated calls ─────────────────────────────────────────────────────

func TestProfile_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.ProfileResponse{Username: "admin", Role: models.RoleAdmin})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")
	got, err := c.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.ProfileResponse{Username: "admin", Role: models.RoleAdmin}, got)
}

func TestProfile_WithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Profile(context.Background())

	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/users", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "5", q.Get("size"))
		assert.Equal(t, "test", q.Get("query"))

		writeJSON(t, w, http.StatusOK, models.UsersPageResponse{
			Users:       []models.User{{ID: "u-1", Username: "testuser1", Role: models.RoleUser, IsActive: true}},
			CurrentPage: 1,
			TotalItems:  6,
			TotalPages:  2,
			HasPrevious: true,
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("tok")
	page, err := c.ListUsers(context.Background(), models.PageRequest{Page: 1, Size: 5, Query: "test"})

	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "testuser1", page.Users[0].Username)
	assert.EqualValues(t, 6, page.TotalItems)
	assert.True(t, page.HasPrevious)
	assert.False(t, page.HasNext)
}

func TestListUsers_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, models.ErrorResponse{Error: "Forbidden"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ListUsers(context.Background(), models.PageRequest{Size: 10})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUser(t *testing.T) {
	role := models.RoleAdmin
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/admin/users/u-42", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"role": "ADMIN"}, body)

		writeJSON(t, w, http.StatusOK, models.User{ID: "u-42", Username: "user", Role: models.RoleAdmin, IsActive: true})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).UpdateUser(context.Background(), "u-42", models.UserUpdate{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestUpdateUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
	}))
	defer srv.Close()

	active := false
	_, err := newTestClient(t, srv.URL).UpdateUser(context.Background(), "missing", models.UserUpdate{IsActive: &active})

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "User not found")
}

func TestStats(t *testing.T) {
	want := models.UserStats{TotalUsers: 8, ActiveUsers: 6, InactiveUsers: 2, AdminUsers: 2, RegularUsers: 6, TodayLogins: 1}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/stats", r.URL.Path)
		writeJSON(t, w, http.StatusOK, want)
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// ── mapHTTPError ────────────────────────────────────────────────────────────

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "ok", status: http.StatusOK},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"Missing fields"}`, wantErr: ErrBadRequest, wantMsg: "Missing fields"},
		{name: "plain body", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInternalServerError, wantMsg: "boom"},
		{name: "empty body", status: http.StatusBadGateway, wantErr: ErrBadGateway, wantMsg: "Bad Gateway"},
		{name: "unmapped", status: http.StatusTeapot, body: "short and stout", wantMsg: "http 418: short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := newTestClient(t, srv.URL).client.R().Get("/")
			require.NoError(t, err)

			err = mapHTTPError(resp)
			if tt.status == http.StatusOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
