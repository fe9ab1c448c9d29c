package fulfillment

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/abgdnv/storefront/pkg/messaging"
	"github.com/abgdnv/storefront/pkg/messaging/events"
	pnats "github.com/abgdnv/storefront/pkg/nats"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"golang.org/x/sync/errgroup"
)

const skipIntegrationTests = "STOREFRONT_SKIP_INTEGRATION_TESTS"
const natsImg = "nats:2.11.6-alpine"

// recordingNotifier keeps every notice it receives.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

func (r *recordingNotifier) received() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// SubscriberSuite publishes order events through pkg/nats and consumes them with Subscriber.
type SubscriberSuite struct {
	suite.Suite
	ctx           context.Context
	logger        *slog.Logger
	natsContainer *nats.NATSContainer
	nc            *natsgo.Conn
	js            jetstream.JetStream
}

func (s *SubscriberSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var err error
	s.natsContainer, err = nats.Run(s.ctx, natsImg)
	require.NoError(s.T(), err, "Failed to run NATS container")

	natsURL, err := s.natsContainer.ConnectionString(s.ctx)
	require.NoError(s.T(), err)
	s.nc, err = pnats.NewClient(natsURL, 5*time.Second)
	require.NoError(s.T(), err, "Failed to connect to NATS")
	s.js, err = pnats.NewJetStreamContext(s.nc)
	require.NoError(s.T(), err, "Failed to get JetStream context")
}

func (s *SubscriberSuite) TearDownSuite() {
	if s.nc != nil {
		s.nc.Close()
	}
	if err := testcontainers.TerminateContainer(s.natsContainer); err != nil {
		s.logger.Error("Failed to terminate NATS container", "error", err)
	}
}

func TestSubscriberIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(SubscriberSuite))
}

func (s *SubscriberSuite) TestPublishedOrdersReachTheNotifier() {
	// given
	stream := "ORDERS-" + uuid.NewString()
	_, err := pnats.EnsureStream(s.ctx, s.js, stream, messaging.OrdersCreatedSubject)
	s.Require().NoError(err)

	publisher := messaging.NewBreakerPublisher("test", pnats.NewNatsPublisher(s.js), config.CircuitBreakerConfig{
		ConsecutiveFailures: 3,
		ErrorRatePercent:    50,
		OpenTimeout:         time.Second,
	})
	notifier := &recordingNotifier{}
	sub := NewSubscriber(notifier, Recipient{To: "fulfillment@example.com"}, s.logger)

	testCtx, cancel := context.WithTimeout(s.ctx, 20*time.Second)
	g, gCtx := errgroup.WithContext(testCtx)
	s.T().Cleanup(func() {
		cancel()
		s.ErrorIs(g.Wait(), context.Canceled)
	})
	g.Go(func() error {
		return sub.Start(gCtx, s.js, stream, messaging.OrdersCreatedSubject, config.SubscriberConfig{
			Enabled:  true,
			Consumer: "fulfillment-" + uuid.NewString(),
			Batch:    5,
			Timeout:  500 * time.Millisecond,
			Interval: 100 * time.Millisecond,
			Workers:  2,
		})
	})

	// when
	for i := range 3 {
		err := publisher.Publish(s.ctx, events.OrderCreatedEvent{
			OrderID:   uuid.NewString(),
			Number:    int64(1001 + i),
			ItemCount: 1,
			CreatedAt: time.Now(),
		})
		s.Require().NoError(err)
	}

	// then
	s.Require().Eventually(func() bool {
		return len(notifier.received()) == 3
	}, 15*time.Second, 100*time.Millisecond)
	for _, n := range notifier.received() {
		s.Equal("fulfillment@example.com", n.To)
	}
}
