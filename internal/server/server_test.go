package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/handler"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newTestServer(t *testing.T, cfg config.Server, pinger stubPinger) *server {
	t.Helper()

	handlers, err := handler.NewHandlers(nil, pinger, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	return srv.(*server)
}

// runInBackground starts s.run and returns a func that stops it and waits.
func runInBackground(t *testing.T, s *server) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	}
}

func TestNewServer_NoAddresses(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_ListenError(t *testing.T) {
	handlers, err := handler.NewHandlers(nil, nil, config.Server{HTTPAddress: "127.0.0.1:99999"}, logger.Nop())
	require.NoError(t, err)

	_, err = NewServer(handlers, config.Server{HTTPAddress: "127.0.0.1:99999"}, logger.Nop())
	require.Error(t, err)
}

func TestServer_ServesHTTP(t *testing.T) {
	s := newTestServer(t, config.Server{HTTPAddress: "127.0.0.1:0"}, stubPinger{})
	require.Nil(t, s.gRPCServer)
	require.Nil(t, s.workers)

	stop := runInBackground(t, s)

	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get("http://" + s.httpServer.Addr() + "/api/health")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 2*time.Second, 10*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body models.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)

	stop()

	_, err := http.Get("http://" + s.httpServer.Addr() + "/api/health")
	assert.Error(t, err, "server must be closed after shutdown")
}

func TestServer_GRPCHealthFollowsStore(t *testing.T) {
	tests := []struct {
		name   string
		pinger stubPinger
		want   healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "store reachable", pinger: stubPinger{}, want: healthpb.HealthCheckResponse_SERVING},
		{name: "store down", pinger: stubPinger{err: errors.New("down")}, want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Server{GRPCAddress: "127.0.0.1:0", HealthProbeInterval: 20 * time.Millisecond}
			s := newTestServer(t, cfg, tt.pinger)
			require.NotNil(t, s.workers)

			stop := runInBackground(t, s)
			defer stop()

			conn, err := grpc.NewClient(s.gRPCServer.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
			require.NoError(t, err)
			defer conn.Close()
			client := healthpb.NewHealthClient(conn)

			assert.Eventually(t, func() bool {
				resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
				return err == nil && resp.GetStatus() == tt.want
			}, 2*time.Second, 10*time.Millisecond)
		})
	}
}

func TestServer_RunWithoutServers(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.Error(t, s.run(context.Background()))
}

func TestNewServer_GRPCListenErrorReleasesHTTP(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:99999"}
	handlers, err := handler.NewHandlers(nil, nil, cfg, logger.Nop())
	require.NoError(t, err)

	srv, err := NewServer(handlers, cfg, logger.Nop())

	require.Error(t, err)
	assert.Nil(t, srv)
}
