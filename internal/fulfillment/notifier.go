// Package fulfillment turns order-created events into fulfillment notices.
package fulfillment

import (
	"context"
	"log/slog"

	"github.com/abgdnv/storefront/internal/config"
)

// Notice asks the fulfillment team to ship an order.
type Notice struct {
	To              string
	TransactionalID string
	OrderID         string
	Number          int64
	CustomerEmail   string
	ItemCount       int
	TotalPrice      int64
}

// Notifier delivers fulfillment notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// Recipient is where notices go. An empty To disables delivery.
type Recipient struct {
	To              string
	TransactionalID string
}

// RecipientFromEnv reads the fulfillment recipient from the storefront environment.
func RecipientFromEnv(env *config.Env) Recipient {
	to, _ := env.Get("LOOPS_FULFILLMENT_EMAIL")
	id, _ := env.Get("LOOPS_FULFILLMENT_TRANSACTIONAL_ID")
	return Recipient{To: to, TransactionalID: id}
}

// LogNotifier records notices in the log instead of sending them.
type LogNotifier struct {
	logger *slog.Logger
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notice) error {
	l.logger.InfoContext(ctx, "Fulfillment notice",
		slog.String("to", n.To),
		slog.String("transactional_id", n.TransactionalID),
		slog.String("order_id", n.OrderID),
		slog.Int64("order_number", n.Number),
		slog.String("customer_email", n.CustomerEmail),
		slog.Int("item_count", n.ItemCount),
		slog.Int64("total_price", n.TotalPrice))
	return nil
}
