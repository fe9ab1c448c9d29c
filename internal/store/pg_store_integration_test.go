package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"

// PgOrderStoreSuite runs PgOrderStore against a PostgreSQL container migrated with Migrate.
type PgOrderStoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	store       *PgOrderStore
	logger      *slog.Logger
	ctx         context.Context
}

func (s *PgOrderStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// 1. Start a PostgreSQL container and wait until it accepts connections.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 2. Apply the embedded migrations twice, the second run must be a no-op.
	require.NoError(s.T(), Migrate(connStr), "Failed to apply migrations")
	require.NoError(s.T(), Migrate(connStr), "Re-running migrations should not fail")

	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")
	require.NoError(s.T(), s.dbPool.Ping(s.ctx), "Failed to ping PostgreSQL")

	s.store = NewPgOrderStore(s.dbPool)
}

func (s *PgOrderStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest empties the orders table before each test.
func (s *PgOrderStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE orders")
	require.NoError(s.T(), err, "Failed to truncate orders table")
}

func TestPgOrderStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(PgOrderStoreSuite))
}

func testOrder(id string, number int64) domain.Order {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	phone := "555-0100"
	customer := "customer-1"
	products := SeedProducts(now)
	return domain.Order{
		ID:         id,
		Number:     number,
		Email:      "ada@example.com",
		CustomerID: &customer,
		LineItems: []domain.LineItem{{
			ID:               "li-" + id,
			ProductVariantID: "M",
			Quantity:         2,
			ProductVariant: domain.ResolvedVariant{
				ProductVariant: products[0].Variants[2],
				Product:        products[0],
			},
		}},
		ShippingAddress: domain.Address{Line1: "1 Main St", City: "Springfield", Phone: &phone},
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func (s *PgOrderStoreSuite) TestSaveAndFind() {
	// given
	order := testOrder("order-1", 1001)

	// when
	err := s.store.Save(s.ctx, order)

	// then
	s.Require().NoError(err)
	found, err := s.store.FindByID(s.ctx, "order-1")
	s.Require().NoError(err)
	s.Equal(order.ID, found.ID)
	s.Equal(order.Number, found.Number)
	s.Equal(order.CustomerID, found.CustomerID)
	s.Equal(order.ShippingAddress, found.ShippingAddress)
	s.True(order.CreatedAt.Equal(found.CreatedAt))
	s.Require().Len(found.LineItems, 1)
	s.Equal("astro-icon-zip-up-hoodie", found.LineItems[0].ProductVariant.Product.ID)
	s.Equal(20, found.LineItems[0].ProductVariant.Stock)
}

func (s *PgOrderStoreSuite) TestSaveReplacesSameID() {
	s.Require().NoError(s.store.Save(s.ctx, testOrder("dup", 1001)))
	replacement := testOrder("dup", 1001)
	replacement.Email = "grace@example.com"

	s.Require().NoError(s.store.Save(s.ctx, replacement))

	found, err := s.store.FindByID(s.ctx, "dup")
	s.Require().NoError(err)
	s.Equal("grace@example.com", found.Email)
}

func (s *PgOrderStoreSuite) TestFindByID_NotFound() {
	found, err := s.store.FindByID(s.ctx, "missing")

	s.ErrorIs(err, serrors.ErrOrderNotFound)
	s.Nil(found)
}

func (s *PgOrderStoreSuite) TestLastNumber() {
	last, err := s.store.LastNumber(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), last, "empty table")

	s.Require().NoError(s.store.Save(s.ctx, testOrder("a", 1001)))
	s.Require().NoError(s.store.Save(s.ctx, testOrder("b", 1007)))
	s.Require().NoError(s.store.Save(s.ctx, testOrder("c", 1003)))

	last, err = s.store.LastNumber(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1007), last)
}

func (s *PgOrderStoreSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}
