package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/domain"
	"github.com/abgdnv/storefront/internal/store"
	"github.com/abgdnv/storefront/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type brokenCatalog struct {
	store.CatalogStore
}

func (brokenCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, errors.New("catalog unavailable")
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newCatalog(t *testing.T) store.CatalogStore {
	t.Helper()
	c, err := store.NewSeededCatalog(time.Now())
	require.NoError(t, err)
	return c
}

// startServer serves h over an in-memory listener and returns a health client.
func startServer(t *testing.T, h *Health) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := server.NewGRPCServer(discard, false, h.Register)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough://bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func Test_Health_Check(t *testing.T) {
	testCases := []struct {
		name     string
		catalog  func(t *testing.T) store.CatalogStore
		deps     []Pinger
		expected healthpb.HealthCheckResponse_ServingStatus
	}{
		{
			name:     "Success - catalog readable",
			catalog:  newCatalog,
			expected: healthpb.HealthCheckResponse_SERVING,
		},
		{
			name:     "Success - dependency reachable",
			catalog:  newCatalog,
			deps:     []Pinger{pingerFunc(func(context.Context) error { return nil })},
			expected: healthpb.HealthCheckResponse_SERVING,
		},
		{
			name:     "Error - catalog broken",
			catalog:  func(*testing.T) store.CatalogStore { return brokenCatalog{} },
			expected: healthpb.HealthCheckResponse_NOT_SERVING,
		},
		{
			name:     "Error - dependency unreachable",
			catalog:  newCatalog,
			deps:     []Pinger{pingerFunc(func(context.Context) error { return errors.New("connection refused") })},
			expected: healthpb.HealthCheckResponse_NOT_SERVING,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := NewHealth(tc.catalog(t), discard, tc.deps...)
			client := startServer(t, h)

			// when
			status := h.Check(context.Background())

			// then
			assert.Equal(t, tc.expected, status)
			for _, service := range []string{"", ServiceName} {
				resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
				require.NoError(t, err)
				assert.Equal(t, tc.expected, resp.GetStatus(), "service %q", service)
			}
		})
	}
}

func Test_Health_NotServingBeforeCheck(t *testing.T) {
	h := NewHealth(newCatalog(t), discard)
	client := startServer(t, h)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func Test_Health_Shutdown(t *testing.T) {
	h := NewHealth(newCatalog(t), discard)
	client := startServer(t, h)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, h.Check(context.Background()))

	// when
	h.Shutdown()
	h.Check(context.Background())

	// then
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
