package commerce

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator assigns the ids the client is responsible for.
type IDGenerator interface {
	CustomerID() string
	OrderID() string
	OrderNumber() int64
	LineItemID() string
}

const (
	placeholderCustomerID  = "customer-1"
	placeholderOrderID     = "dk3fd0sak3d"
	placeholderOrderNumber = 1001
)

// PlaceholderIDs hands out the same customer id, order id and order number on every call,
// the way a demo backend does. Repeated creates collide: two customers share an id and
// a second order replaces the first one under the same key. Line item ids are still fresh.
type PlaceholderIDs struct{}

func (PlaceholderIDs) CustomerID() string { return placeholderCustomerID }
func (PlaceholderIDs) OrderID() string    { return placeholderOrderID }
func (PlaceholderIDs) OrderNumber() int64 { return placeholderOrderNumber }
func (PlaceholderIDs) LineItemID() string { return uuid.NewString() }

// UniqueIDs generates random UUIDs and a monotonic order number. It is safe for concurrent use.
type UniqueIDs struct {
	last atomic.Int64
}

// NewUniqueIDs returns a generator whose first order number is first.
func NewUniqueIDs(first int64) *UniqueIDs {
	g := &UniqueIDs{}
	g.last.Store(first - 1)
	return g
}

func (g *UniqueIDs) CustomerID() string { return uuid.NewString() }
func (g *UniqueIDs) OrderID() string    { return uuid.NewString() }
func (g *UniqueIDs) OrderNumber() int64 { return g.last.Add(1) }
func (g *UniqueIDs) LineItemID() string { return uuid.NewString() }

// FirstOrderNumber is where order numbering starts.
const FirstOrderNumber = placeholderOrderNumber
