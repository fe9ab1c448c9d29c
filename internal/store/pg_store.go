package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertOrder = `
INSERT INTO orders (id, number, body, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET number = EXCLUDED.number, body = EXCLUDED.body, created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`

const findOrderByID = `SELECT body FROM orders WHERE id = $1`

const lastOrderNumber = `SELECT COALESCE(MAX(number), 0) FROM orders`

// PgOrderStore implements OrderStore using PostgreSQL as the data store.
// Orders are kept as JSONB documents keyed by order id.
type PgOrderStore struct {
	db *pgxpool.Pool
}

var _ OrderStore = (*PgOrderStore)(nil)

// NewPgOrderStore creates a new instance of OrderStore using a PostgreSQL connection pool.
func NewPgOrderStore(dbp *pgxpool.Pool) *PgOrderStore {
	return &PgOrderStore{db: dbp}
}

// Save inserts the order or replaces the stored order with the same ID.
func (p *PgOrderStore) Save(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%w: encode order %s: %w", serrors.ErrSaveOrder, order.ID, err)
	}
	if _, err := p.db.Exec(ctx, upsertOrder, order.ID, order.Number, string(body), order.CreatedAt, order.UpdatedAt); err != nil {
		return fmt.Errorf("%w: %s: %w", serrors.ErrSaveOrder, order.ID, err)
	}
	return nil
}

// FindByID retrieves an order by its unique identifier.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (p *PgOrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var body []byte
	if err := p.db.QueryRow(ctx, findOrderByID, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %s: %w", serrors.ErrFailedToFindOrder, id, err)
	}
	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: decode order %s: %w", serrors.ErrFailedToFindOrder, id, err)
	}
	return &order, nil
}

// LastNumber returns the highest stored order number, or 0 when there are no orders.
func (p *PgOrderStore) LastNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := p.db.QueryRow(ctx, lastOrderNumber).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: last order number: %w", serrors.ErrFailedToFindOrder, err)
	}
	return n, nil
}

// Ping reports whether the database is reachable.
func (p *PgOrderStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
