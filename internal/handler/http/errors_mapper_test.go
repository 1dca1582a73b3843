package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessageFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"wrapped unauthorized", fmt.Errorf("%w: bad header", service.ErrUnauthorized), http.StatusUnauthorized, "Unauthorized"},
		{"empty header", ErrEmptyAuthorizationHeader, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", fmt.Errorf("%w: u-1", service.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"missing fields", fmt.Errorf("%w: password: cannot be blank", validators.ErrMissingFields), http.StatusBadRequest, "Missing fields"},
		{"bad page", validators.ErrInvalidPageRequest, http.StatusBadRequest, "Invalid page request"},
		{"service page guard", fmt.Errorf("%w: page -1, size 10", service.ErrInvalidDataProvided), http.StatusBadRequest, "Invalid data provided"},
		{"bad json", ErrInvalidJSON, http.StatusBadRequest, "Invalid JSON was passed"},
		{"store error", fmt.Errorf("error finding user: %w", store.ErrExecutingQuery), http.StatusInternalServerError, "Internal Server Error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("%w: hash $2a$10$", service.ErrForbidden))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Forbidden"}`, rr.Body.String())
}
