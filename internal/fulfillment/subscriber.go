package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/messaging/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ackableMsg is the part of jetstream.Msg the handler needs.
type ackableMsg interface {
	Data() []byte
	Subject() string
	Ack() error
	Nak() error
	Term() error
}

type Subscriber struct {
	notifier  Notifier
	recipient Recipient
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewSubscriber(notifier Notifier, recipient Recipient, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		notifier:  notifier,
		recipient: recipient,
		logger:    logger.With("component", "fulfillment"),
		tracer:    otel.Tracer("storefront/fulfillment"),
	}
}

// Start consumes subject from stream with a durable pull consumer and runs cfg.Workers workers
// until ctx is done.
func (s *Subscriber) Start(ctx context.Context, js jetstream.JetStream, stream, subject string, cfg config.SubscriberConfig) error {
	consumer, err := js.CreateOrUpdateConsumer(ctx, stream, jetstream.ConsumerConfig{
		FilterSubject: subject,
		Durable:       cfg.Consumer,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s on %s: %w", cfg.Consumer, stream, err)
	}
	g, gCtx := errgroup.WithContext(ctx)
	for range cfg.Workers {
		g.Go(func() error {
			return s.runWorker(gCtx, consumer, cfg)
		})
	}
	return g.Wait()
}

// runWorker fetches batches until ctx is done. Fetch timeouts are expected when the stream is idle.
func (s *Subscriber) runWorker(ctx context.Context, consumer jetstream.Consumer, cfg config.SubscriberConfig) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		batch, err := consumer.Fetch(cfg.Batch, jetstream.FetchMaxWait(cfg.Timeout))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			s.logger.ErrorContext(ctx, "failed to fetch messages", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Interval):
			}
			continue
		}
		for msg := range batch.Messages() {
			s.handleMessage(ctx, msg)
		}
		if err := batch.Error(); err != nil && !errors.Is(err, nats.ErrTimeout) {
			s.logger.WarnContext(ctx, "batch ended with error", "error", err)
		}
	}
}

// handleMessage notifies about one event. Undecodable payloads are terminated,
// failed notifications are negatively acknowledged for redelivery.
func (s *Subscriber) handleMessage(ctx context.Context, msg ackableMsg) {
	if msg == nil {
		s.logger.ErrorContext(ctx, "received nil message")
		return
	}
	var event events.OrderCreatedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		s.logger.ErrorContext(ctx, "failed to unmarshal message", "error", err, "subject", msg.Subject())
		if err := msg.Term(); err != nil {
			s.logger.ErrorContext(ctx, "failed to terminate message", "error", err)
		}
		return
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(event.Carrier))
	ctx, span := s.tracer.Start(ctx, "fulfillment.notify",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attribute.String("order.id", event.OrderID)))
	defer span.End()

	s.logger.InfoContext(ctx, "received order created event",
		slog.String("subject", msg.Subject()),
		slog.String("order_id", event.OrderID),
		slog.Int64("order_number", event.Number),
		slog.String("created_at", event.CreatedAt.Format(time.RFC3339)))

	if s.recipient.To == "" {
		s.logger.DebugContext(ctx, "no fulfillment recipient configured, skipping notice")
		s.ack(ctx, msg)
		return
	}

	notice := Notice{
		To:              s.recipient.To,
		TransactionalID: s.recipient.TransactionalID,
		OrderID:         event.OrderID,
		Number:          event.Number,
		CustomerEmail:   event.Email,
		ItemCount:       event.ItemCount,
		TotalPrice:      event.TotalPrice,
	}
	if err := s.notifier.Notify(ctx, notice); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "notify failed")
		s.logger.ErrorContext(ctx, "failed to send fulfillment notice", "error", err)
		if err := msg.Nak(); err != nil {
			s.logger.ErrorContext(ctx, "failed to nack message", "error", err)
		}
		return
	}
	s.ack(ctx, msg)
}

func (s *Subscriber) ack(ctx context.Context, msg ackableMsg) {
	if err := msg.Ack(); err != nil {
		s.logger.ErrorContext(ctx, "failed to ack message", "error", err)
	}
}
