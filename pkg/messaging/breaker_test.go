package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abgdnv/storefront/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{}

func (testEvent) Subject() string          { return "test.subject" }
func (testEvent) Payload() ([]byte, error) { return []byte("{}"), nil }

// mockPublisher returns the queued errors in order, then nil.
// Not thread-safe, should be used in sequential tests only.
type mockPublisher struct {
	calls  int
	errors []error
}

func (m *mockPublisher) Publish(context.Context, Event) error {
	m.calls++
	if len(m.errors) == 0 {
		return nil
	}
	err := m.errors[0]
	m.errors = m.errors[1:]
	return err
}

func testBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		ConsecutiveFailures: 3,
		ErrorRatePercent:    100,
		OpenTimeout:         50 * time.Millisecond,
	}
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	next := &mockPublisher{}
	p := NewBreakerPublisher("test", next, testBreakerConfig())

	err := p.Publish(context.Background(), testEvent{})

	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "closed", p.State())
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	// given
	boom := errors.New("broker down")
	next := &mockPublisher{errors: []error{boom, boom, boom}}
	p := NewBreakerPublisher("test", next, testBreakerConfig())
	ctx := context.Background()

	// when
	for range 3 {
		err := p.Publish(ctx, testEvent{})
		assert.ErrorIs(t, err, boom)
	}
	err := p.Publish(ctx, testEvent{})

	// then
	assert.ErrorIs(t, err, ErrPublisherUnavailable)
	assert.Equal(t, 3, next.calls, "open breaker must not call the publisher")
	assert.Equal(t, "open", p.State())
}

func TestBreakerPublisher_RecoversAfterTimeout(t *testing.T) {
	boom := errors.New("broker down")
	next := &mockPublisher{errors: []error{boom, boom, boom}}
	p := NewBreakerPublisher("test", next, testBreakerConfig())
	ctx := context.Background()
	for range 3 {
		_ = p.Publish(ctx, testEvent{})
	}
	require.Equal(t, "open", p.State())

	require.Eventually(t, func() bool {
		return p.Publish(ctx, testEvent{}) == nil
	}, time.Second, 20*time.Millisecond)
	assert.Equal(t, "closed", p.State())
}

func TestBreakerPublisher_CanceledContextDoesNotTrip(t *testing.T) {
	next := &mockPublisher{errors: []error{context.Canceled, context.Canceled, context.Canceled, context.Canceled}}
	p := NewBreakerPublisher("test", next, testBreakerConfig())

	for range 4 {
		err := p.Publish(context.Background(), testEvent{})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", p.State())
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), testEvent{}))
}
