// Package app wires the storefront: stores, the commerce client, publishers and servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/storefront/internal/commerce"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/store"
	grpcImpl "github.com/abgdnv/storefront/internal/transport/grpc"
	"github.com/abgdnv/storefront/internal/transport/rest"
	"github.com/abgdnv/storefront/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/messaging"
	pkgnats "github.com/abgdnv/storefront/pkg/nats"
	"github.com/abgdnv/storefront/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
)

type Dependencies struct {
	Client  *commerce.Client
	Catalog store.CatalogStore
	Health  *grpcImpl.Health
	Public  rest.PublicConfig
	Logger  *slog.Logger

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler

	jetStream jetstream.JetStream
	closers   []func()
}

// Telemetry carries the meter provider for the commerce client and the matching /metrics handler.
// Both may be nil.
type Telemetry struct {
	MeterProvider  metric.MeterProvider
	MetricsHandler http.Handler
}

// numberedStore is an order store that knows its highest order number.
type numberedStore interface {
	LastNumber(ctx context.Context) (int64, error)
}

// SetupDependencies builds the storefront from cfg. The caller must Close the result.
func SetupDependencies(ctx context.Context, cfg *config.Config, env *config.Env, tel Telemetry, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger, MetricsHandler: tel.MetricsHandler}

	catalog, err := store.NewSeededCatalog(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	deps.Catalog = catalog

	orders, pingers, err := deps.setupOrderStore(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	ids, err := setupIDs(ctx, cfg.Commerce, orders)
	if err != nil {
		deps.Close()
		return nil, err
	}

	publisher, err := deps.setupPublisher(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	opts := []commerce.Option{
		commerce.WithOrderStore(orders),
		commerce.WithIDGenerator(ids),
		commerce.WithPublisher(publisher),
		commerce.WithLogger(logger),
		commerce.WithLocale(cfg.Commerce.LocaleTag()),
	}
	if tel.MeterProvider != nil {
		opts = append(opts, commerce.WithMeterProvider(tel.MeterProvider))
	}
	deps.Client = commerce.New(catalog, opts...)
	deps.Health = grpcImpl.NewHealth(catalog, logger, pingers...)

	site := config.DefaultSite()
	deps.Public = rest.PublicConfig{
		Site:         site.URL,
		ImageDomains: site.ImageDomains,
		Env:          env.Public(),
	}
	return deps, nil
}

// Close releases the connections opened by SetupDependencies, in reverse order.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func (d *Dependencies) setupOrderStore(ctx context.Context, cfg *config.Config) (store.OrderStore, []grpcImpl.Pinger, error) {
	if cfg.Storage.Driver != pkgconfig.StoragePostgres {
		d.Logger.Info("Using in-memory order store")
		return store.NewInMemoryOrderStore(), nil, nil
	}

	if err := store.Migrate(cfg.Database.URL); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	d.closers = append(d.closers, dbPool.Close)
	d.Logger.Info("Successfully connected to the database!", "url", pkgconfig.MaskURL(cfg.Database.URL))

	pg := store.NewPgOrderStore(dbPool)
	return pg, []grpcImpl.Pinger{pg}, nil
}

// setupIDs picks the id strategy. Unique order numbers continue after the highest stored one.
func setupIDs(ctx context.Context, cfg config.CommerceConfig, orders store.OrderStore) (commerce.IDGenerator, error) {
	if cfg.IDs == config.IDsPlaceholder {
		return commerce.PlaceholderIDs{}, nil
	}
	first := int64(commerce.FirstOrderNumber)
	if ns, ok := orders.(numberedStore); ok {
		last, err := ns.LastNumber(ctx)
		if err != nil {
			return nil, err
		}
		first = max(first, last+1)
	}
	return commerce.NewUniqueIDs(first), nil
}

func (d *Dependencies) setupPublisher(ctx context.Context, cfg *config.Config) (messaging.Publisher, error) {
	if !cfg.Nats.Enabled {
		return messaging.NoopPublisher{}, nil
	}

	nc, err := pkgnats.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, func() { _ = nc.Drain() })

	js, err := pkgnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, err
	}
	if _, err := pkgnats.EnsureStream(ctx, js, cfg.Nats.Stream, cfg.Nats.Subject); err != nil {
		return nil, err
	}
	d.jetStream = js
	d.Logger.Info("Connected to NATS", "url", cfg.Nats.Url, "stream", cfg.Nats.Stream)

	return messaging.NewBreakerPublisher("nats-publisher", pkgnats.NewNatsPublisher(js), cfg.CircuitBreaker), nil
}

// SetupHttpHandler initializes the router and routes of the storefront.
// Used by tests to exercise the full middleware chain.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Client, deps.Public, deps.Logger)
	handler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures the HTTP server of the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config, serviceName string) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, serviceName, mux)
}

// SetupGrpcServer initializes the gRPC server with the health service registered.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, deps.Health.Register)
}
