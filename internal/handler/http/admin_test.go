// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// asAdmin makes the mocked auth service accept token "admin-token" for an
// administrator.
func asAdmin(d testDeps) {
	d.auth.EXPECT().Authenticate(gomock.Any(), "admin-token").Return("admin", true)
	d.auth.EXPECT().Authorize(gomock.Any(), "admin", models.RoleAdmin).Return(nil)
}

// ---- access control ----

func TestAdminRoutes_AccessControl(t *testing.T) {
	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/admin/users", ""},
		{http.MethodPatch, "/api/admin/users/u-1", `{"role":"ADMIN"}`},
		{http.MethodGet, "/api/admin/stats", ""},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path+" without token", func(t *testing.T) {
			h, _ := newTestHandler(t)

			rr := serve(t, h, route.method, route.path, route.body, nil)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Unauthorized", decodeError(t, rr))
		})

		t.Run(route.method+" "+route.path+" as regular user", func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.auth.EXPECT().Authenticate(gomock.Any(), "user-token").Return("user", true)
			deps.auth.EXPECT().Authorize(gomock.Any(), "user", models.RoleAdmin).Return(service.ErrForbidden)

			rr := serve(t, h, route.method, route.path, route.body, bearer("user-token"))

			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Equal(t, "Forbidden", decodeError(t, rr))
		})
	}
}

func TestAdminRoutes_AuthorizeFailure(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.auth.EXPECT().Authenticate(gomock.Any(), "admin-token").Return("admin", true)
	deps.auth.EXPECT().Authorize(gomock.Any(), "admin", models.RoleAdmin).Return(errors.New("db down"))

	rr := serve(t, h, http.MethodGet, "/api/admin/stats", "", bearer("admin-token"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}

// ---- list users ----

func TestListUsers(t *testing.T) {
	lastLogin := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		target  string
		wantReq models.PageRequest
	}{
		{name: "defaults", target: "/api/admin/users", wantReq: models.PageRequest{Page: 0, Size: 10}},
		{name: "explicit", target: "/api/admin/users?page=2&size=5", wantReq: models.PageRequest{Page: 2, Size: 5}},
		{name: "with query", target: "/api/admin/users?query=ali&size=3", wantReq: models.PageRequest{Page: 0, Size: 3, Query: "ali"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			asAdmin(deps)

			users := []models.User{{ID: "u-1", Username: "alice", Role: models.RoleUser, IsActive: true, LastLoginAt: &lastLogin}}
			deps.directory.EXPECT().ListUsers(gomock.Any(), tt.wantReq).
				Return(models.NewPage(users, tt.wantReq, 21), nil)

			rr := serve(t, h, http.MethodGet, tt.target, "", bearer("admin-token"))

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			body := rr.Body.String()
			assert.Contains(t, body, `"users":[{"id":"u-1","username":"alice","role":"USER"`)
			assert.Contains(t, body, `"totalItems":21`)
			assert.Contains(t, body, `"currentPage":`)
			assert.Contains(t, body, `"hasNext":`)
			assert.Contains(t, body, `"hasPrevious":`)
			assert.NotContains(t, body, "password")
		})
	}
}

func TestListUsers_InvalidParameters(t *testing.T) {
	for _, target := range []string{
		"/api/admin/users?page=abc",
		"/api/admin/users?size=1.5",
		"/api/admin/users?page=-1",
		"/api/admin/users?size=0",
		"/api/admin/users?size=101",
	} {
		t.Run(target, func(t *testing.T) {
			h, deps := newTestHandler(t)
			asAdmin(deps)

			rr := serve(t, h, http.MethodGet, target, "", bearer("admin-token"))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "Invalid page request", decodeError(t, rr))
		})
	}
}

// ---- update user ----

func TestUpdateUser(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantUpd models.UserUpdate
	}{
		{name: "role", body: `{"role":"ADMIN"}`, wantUpd: models.UserUpdate{Role: strPtr("ADMIN")}},
		{name: "status", body: `{"isActive":false}`, wantUpd: models.UserUpdate{IsActive: boolPtr(false)}},
		{name: "unknown role is passed on", body: `{"role":"SUPERUSER"}`, wantUpd: models.UserUpdate{Role: strPtr("SUPERUSER")}},
		{name: "wrong types are dropped", body: `{"role":1,"isActive":"yes"}`, wantUpd: models.UserUpdate{}},
		{name: "unknown keys are dropped", body: `{"username":"mallory","isActive":true}`, wantUpd: models.UserUpdate{IsActive: boolPtr(true)}},
		{name: "null body", body: `null`, wantUpd: models.UserUpdate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			asAdmin(deps)
			deps.directory.EXPECT().UpdateUser(gomock.Any(), "u-1", tt.wantUpd).
				Return(models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin}, true, nil)

			rr := serve(t, h, http.MethodPatch, "/api/admin/users/u-1", tt.body, bearer("admin-token"))

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), `"id":"u-1"`)
		})
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	h, deps := newTestHandler(t)
	asAdmin(deps)
	deps.directory.EXPECT().UpdateUser(gomock.Any(), "missing", gomock.Any()).Return(models.User{}, false, nil)

	rr := serve(t, h, http.MethodPatch, "/api/admin/users/missing", `{"role":"ADMIN"}`, bearer("admin-token"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", decodeError(t, rr))
}

func TestUpdateUser_InvalidJSON(t *testing.T) {
	h, deps := newTestHandler(t)
	asAdmin(deps)

	rr := serve(t, h, http.MethodPatch, "/api/admin/users/u-1", `{"role":`, bearer("admin-token"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ---- stats ----

func TestStats(t *testing.T) {
	h, deps := newTestHandler(t)
	asAdmin(deps)
	deps.directory.EXPECT().GetUserStats(gomock.Any()).Return(models.UserStats{
		TotalUsers: 8, ActiveUsers: 6, InactiveUsers: 2, AdminUsers: 2, RegularUsers: 6, TodayLogins: 1,
	}, nil)

	rr := serve(t, h, http.MethodGet, "/api/admin/stats", "", bearer("admin-token"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalUsers":8,"activeUsers":6,"inactiveUsers":2,"adminUsers":2,"regularUsers":6,"todayLogins":1}`, rr.Body.String())
}

func TestStats_StoreFailure(t *testing.T) {
	h, deps := newTestHandler(t)
	asAdmin(deps)
	deps.directory.EXPECT().GetUserStats(gomock.Any()).Return(models.UserStats{}, errors.New("connection reset"))

	rr := serve(t, h, http.MethodGet, "/api/admin/stats", "", bearer("admin-token"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection reset")
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
