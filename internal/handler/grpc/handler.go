// Package grpc exposes the standard gRPC health checking protocol for the
// user directory. The serving status follows the reachability of the user
// store.
package grpc

import (
	"context"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service key reported next to the overall ("")
// status.
const ServiceName = "userdirectory.v1.UserDirectory"

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server
	pinger Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Both health keys start in the
// NOT_SERVING state until the first [Handler.RefreshHealth].
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		pinger: pinger,
		logger: logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to srv.
func (h *Handler) Register(srv grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(srv, h.health)
}

// RefreshHealth pings the backend and publishes the resulting status. The ping
// error, if any, is returned to the caller.
func (h *Handler) RefreshHealth(ctx context.Context) error {
	if h.pinger == nil {
		h.setStatus(healthpb.HealthCheckResponse_SERVING)
		return nil
	}

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("backend ping failed, reporting NOT_SERVING")
		h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}

	h.setStatus(healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Shutdown marks every key NOT_SERVING for good; later updates are ignored.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
