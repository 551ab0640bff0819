package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu        sync.Mutex
	events    []Event
	fetchErr  error
	markedIDs []string
}

func (m *mockStore) Record(_ context.Context, aggregateID, eventType string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{
		ID:          aggregateID + "-" + eventType,
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     []byte(`{}`),
		CreatedAt:   time.Now(),
	})
	return nil
}

func (m *mockStore) Unprocessed(_ context.Context, _ int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	var out []Event
	for _, e := range m.events {
		if !e.Processed {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) MarkProcessed(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Processed = true
		}
	}
	m.markedIDs = append(m.markedIDs, id)
	return nil
}

type mockWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	store := &mockStore{}
	writer := &mockWriter{}
	p := &Poller{store: store, writer: writer, batchSize: 100}

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "order1", "order.placed", nil))
	require.NoError(t, store.Record(ctx, "order2", "order.cancelled", nil))

	p.processUnpublishedEvents(ctx)

	require.Len(t, writer.messages, 2)
	assert.Equal(t, []byte("order1"), writer.messages[0].Key)
	assert.Equal(t, "event_type", writer.messages[0].Headers[0].Key)
	assert.Equal(t, []byte("order.placed"), writer.messages[0].Headers[0].Value)
	assert.Len(t, store.markedIDs, 2)
}

func TestProcessUnpublishedEvents_FailedPublishStaysUnprocessed(t *testing.T) {
	store := &mockStore{}
	writer := &mockWriter{err: errors.New("broker down")}
	p := &Poller{store: store, writer: writer, batchSize: 100}

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, "order1", "order.placed", nil))

	p.processUnpublishedEvents(ctx)
	assert.Empty(t, store.markedIDs)

	// broker back up: the event is retried and drained
	writer.mu.Lock()
	writer.err = nil
	writer.mu.Unlock()

	p.processUnpublishedEvents(ctx)
	assert.Len(t, store.markedIDs, 1)
}

type closableWriter struct {
	mockWriter
	closed bool
}

func (c *closableWriter) Close() error {
	c.closed = true
	return nil
}

func TestClose_ClosesWriter(t *testing.T) {
	writer := &closableWriter{}
	p := &Poller{store: &mockStore{}, writer: writer, batchSize: 100}

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestProcessUnpublishedEvents_FetchErrorIsSwallowed(t *testing.T) {
	store := &mockStore{fetchErr: errors.New("db down")}
	writer := &mockWriter{}
	p := &Poller{store: store, writer: writer, batchSize: 100}

	p.processUnpublishedEvents(context.Background())
	assert.Empty(t, writer.messages)
}
