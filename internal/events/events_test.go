package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "devdeck/pkg/domain"
)

type EventsSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *EventsSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}

func (s *EventsSuite) TestPublisherStampsTimestamp() {
	sink := NewMemorySink()
	publisher := NewPublisher(sink)

	before := time.Now()
	err := publisher.Emit(s.ctx, Event{Action: ActionCardCreated, CardID: 1})
	require.NoError(s.T(), err)

	got := sink.Events()
	require.Len(s.T(), got, 1)
	assert.False(s.T(), got[0].Timestamp.Before(before))
}

func (s *EventsSuite) TestPublisherKeepsExplicitTimestamp() {
	sink := NewMemorySink()
	publisher := NewPublisher(sink)

	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := publisher.Emit(s.ctx, Event{Action: ActionDescriptionUpdated, CardID: 2, Timestamp: stamp})
	require.NoError(s.T(), err)

	got := sink.Events()
	require.Len(s.T(), got, 1)
	assert.True(s.T(), got[0].Timestamp.Equal(stamp))
}

func (s *EventsSuite) TestMemorySinkPreservesOrder() {
	sink := NewMemorySink()

	for i := 1; i <= 3; i++ {
		require.NoError(s.T(), sink.Append(s.ctx, Event{Action: ActionCardCreated, CardID: id.CardID(i)}))
	}

	got := sink.Events()
	require.Len(s.T(), got, 3)
	for i, event := range got {
		assert.Equal(s.T(), id.CardID(i+1), event.CardID)
	}
}

func (s *EventsSuite) TestChannelSinkNeverBlocks() {
	sink := NewChannelSink(1, nil)

	require.NoError(s.T(), sink.Append(s.ctx, Event{CardID: 1}))
	// Buffer is full; the second append must drop instead of blocking.
	require.NoError(s.T(), sink.Append(s.ctx, Event{CardID: 2}))

	select {
	case event := <-sink.Inbox():
		assert.Equal(s.T(), id.CardID(1), event.CardID)
	default:
		s.T().Fatal("expected the first event to be buffered")
	}

	select {
	case event := <-sink.Inbox():
		s.T().Fatalf("expected second event to be dropped, got %v", event)
	default:
	}
}

func (s *EventsSuite) TestWorkerForwardsToProducer() {
	sink := NewChannelSink(8, nil)
	producer := &capturingProducer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink.Inbox(), producer, logger, nil)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.NoError(s.T(), sink.Append(s.ctx, Event{Action: ActionCardCreated, CardID: 1}))
	require.NoError(s.T(), sink.Append(s.ctx, Event{Action: ActionPortfolioUpdated, CardID: 1}))

	require.Eventually(s.T(), func() bool {
		return len(producer.produced()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(s.T(), <-done, context.Canceled)

	got := producer.produced()
	assert.Equal(s.T(), ActionCardCreated, got[0].Action)
	assert.Equal(s.T(), ActionPortfolioUpdated, got[1].Action)
}

func (s *EventsSuite) TestWorkerDrainsBufferOnShutdown() {
	sink := NewChannelSink(8, nil)
	producer := &capturingProducer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink.Inbox(), producer, logger, nil)

	for i := 1; i <= 3; i++ {
		require.NoError(s.T(), sink.Append(s.ctx, Event{CardID: id.CardID(i)}))
	}

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	require.ErrorIs(s.T(), worker.Run(ctx), context.Canceled)

	assert.Len(s.T(), producer.produced(), 3)
}

func (s *EventsSuite) TestWorkerSurvivesProducerFailure() {
	sink := NewChannelSink(8, nil)
	producer := &capturingProducer{fail: errors.New("broker unavailable")}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(sink.Inbox(), producer, logger, nil)

	require.NoError(s.T(), sink.Append(s.ctx, Event{CardID: 1}))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	require.ErrorIs(s.T(), worker.Run(ctx), context.Canceled)

	// The event reached the producer even though delivery failed.
	assert.Len(s.T(), producer.produced(), 1)
}

type capturingProducer struct {
	mu     sync.Mutex
	events []Event
	fail   error
}

func (p *capturingProducer) Produce(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.fail
}

func (p *capturingProducer) produced() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
