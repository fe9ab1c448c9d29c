// Package commerce implements the storefront commerce client: product, collection,
// customer and order operations over the catalog and the order store.
//
// Every operation answers with a Result envelope. A lookup that misses is reported
// either inside the envelope (the default) or as a returned *APIError when the call
// is made WithThrowOnError. Caller mistakes such as a missing body are always returned
// as Go errors.
package commerce

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/storefront/internal/domain"
	"github.com/abgdnv/storefront/internal/store"
	"github.com/abgdnv/storefront/pkg/messaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/text/language"
)

// API is the set of operations the transports depend on.
type API interface {
	// GetProducts lists products, optionally filtered and sorted. It never reports not-found.
	GetProducts(ctx context.Context, query ProductQuery, opts ...CallOption) (*Result[domain.ProductList], error)

	// GetProductByID retrieves a product by id.
	GetProductByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.Product], error)

	// GetCollections lists all collections.
	GetCollections(ctx context.Context, opts ...CallOption) (*Result[domain.CollectionList], error)

	// GetCollectionByID retrieves a collection by id. Its product list is always empty.
	GetCollectionByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.CollectionDetail], error)

	// CreateCustomer builds a customer record from body. A nil body fails with ErrMissingBody.
	CreateCustomer(ctx context.Context, body *domain.CustomerInput, opts ...CallOption) (*Result[domain.Customer], error)

	// CreateOrder resolves the line items, stores the order and announces it.
	// A nil body fails with ErrMissingBody, an unknown variant with ErrVariantNotFound.
	CreateOrder(ctx context.Context, body *domain.OrderInput, opts ...CallOption) (*Result[domain.Order], error)

	// GetOrderByID retrieves a stored order by id.
	GetOrderByID(ctx context.Context, id string, opts ...CallOption) (*Result[domain.Order], error)
}

// Client implements API. It owns its order store, so separate clients never share orders.
type Client struct {
	catalog       store.CatalogStore
	orders        store.OrderStore
	ids           IDGenerator
	now           func() time.Time
	publisher     messaging.Publisher
	logger        *slog.Logger
	locale        language.Tag
	ordersCounter metric.Int64Counter
}

var _ API = (*Client)(nil)

type clientOptions struct {
	orders        store.OrderStore
	ids           IDGenerator
	now           func() time.Time
	publisher     messaging.Publisher
	logger        *slog.Logger
	locale        language.Tag
	meterProvider metric.MeterProvider
}

// Option configures a Client.
type Option func(*clientOptions)

// WithOrderStore replaces the default in-memory order store.
func WithOrderStore(s store.OrderStore) Option {
	return func(o *clientOptions) { o.orders = s }
}

// WithIDGenerator replaces PlaceholderIDs.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *clientOptions) { o.ids = g }
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) { o.now = now }
}

// WithPublisher sets where order-created events go. Events are dropped by default.
func WithPublisher(p messaging.Publisher) Option {
	return func(o *clientOptions) { o.publisher = p }
}

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithLocale sets the collation locale used when sorting by name. English by default.
func WithLocale(tag language.Tag) Option {
	return func(o *clientOptions) { o.locale = tag }
}

// WithMeterProvider sets the provider of the orders_created counter, the global one otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *clientOptions) { o.meterProvider = mp }
}

// New creates a Client reading from catalog.
func New(catalog store.CatalogStore, opts ...Option) *Client {
	o := clientOptions{
		ids:       PlaceholderIDs{},
		now:       time.Now,
		publisher: messaging.NoopPublisher{},
		locale:    language.English,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.orders == nil {
		o.orders = store.NewInMemoryOrderStore()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	meter := o.meterProvider.Meter("storefront")
	ordersCounter, err := meter.Int64Counter("orders_created", metric.WithDescription("Total number of created orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_created counter: %v", err))
	}

	return &Client{
		catalog:       catalog,
		orders:        o.orders,
		ids:           o.ids,
		now:           o.now,
		publisher:     o.publisher,
		logger:        o.logger,
		locale:        o.locale,
		ordersCounter: ordersCounter,
	}
}

type callOptions struct {
	throwOnError bool
}

// CallOption changes how a single call reports failures.
type CallOption func(*callOptions)

// WithThrowOnError makes a lookup that misses return a nil Result and the *APIError as error,
// instead of a Result carrying the error.
func WithThrowOnError() CallOption {
	return func(o *callOptions) { o.throwOnError = true }
}

func applyCallOptions(opts []CallOption) callOptions {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}
	return co
}
