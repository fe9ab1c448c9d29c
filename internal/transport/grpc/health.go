// Package grpc exposes the storefront health over gRPC.
package grpc

import (
	"context"
	"log/slog"

	"github.com/abgdnv/storefront/internal/store"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the server wide "" entry.
const ServiceName = "storefront.v1.Commerce"

// Pinger is a dependency whose reachability affects serving status.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	server  *health.Server
	catalog store.CatalogStore
	deps    []Pinger
	logger  *slog.Logger
}

// NewHealth creates a health service. It reports NOT_SERVING until Check runs.
func NewHealth(catalog store.CatalogStore, logger *slog.Logger, deps ...Pinger) *Health {
	h := &Health{
		server:  health.NewServer(),
		catalog: catalog,
		deps:    deps,
		logger:  logger.With("component", "grpc-health"),
	}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register adds the health service to s.
func (h *Health) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

// Check reads the catalog and pings every dependency, then publishes the resulting status.
func (h *Health) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if _, err := h.catalog.ListProducts(ctx); err != nil {
		h.logger.WarnContext(ctx, "Catalog is not readable", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	for _, d := range h.deps {
		if err := d.Ping(ctx); err != nil {
			h.logger.WarnContext(ctx, "Dependency is not reachable", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.set(status)
	return status
}

// Shutdown reports NOT_SERVING and ignores later updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}

func (h *Health) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
}
