package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

// queueReader hands out queued messages then blocks until ctx is done
type queueReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
}

func (r *queueReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *queueReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *queueReader) Close() error { return nil }

func sampleEvent() *models.OrderPlacedEvent {
	return &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Reference:  "ORD123456",
		Email:      "rider@example.com",
		GrandTotal: 1000,
		Items:      []models.OrderItemData{{ProductID: "product-01", Quantity: 1, UnitPrice: 1000}},
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	w := &recordingWriter{}
	pub := NewEventPublisher(NewProducerWithWriter(w))

	require.NoError(t, pub.PublishOrderPlaced(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order-ORD123456", string(w.msgs[0].Key))

	var decoded models.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "ORD123456", decoded.Reference)
	assert.Equal(t, models.EventTypeOrderPlaced, decoded.EventType)
}

func TestPublishWrapsWriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	err := NewProducerWithWriter(w).PublishEvent(context.Background(), "k", sampleEvent())
	assert.ErrorContains(t, err, "broker down")
}

func TestHandleMessageRoutesOrderPlaced(t *testing.T) {
	h := NewEventHandler()
	var got *models.OrderPlacedEvent
	h.OnOrderPlaced(func(_ context.Context, e *models.OrderPlacedEvent) error {
		got = e
		return nil
	})

	value, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	require.NoError(t, h.HandleMessage(context.Background(), kafka.Message{Value: value}))
	require.NotNil(t, got)
	assert.Equal(t, "ORD123456", got.Reference)

	assert.NoError(t, h.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"event_type":"OTHER"}`)}))
	assert.Error(t, h.HandleMessage(context.Background(), kafka.Message{Value: []byte(`nope`)}))
}

func TestStartConsumingCommitsHandledMessages(t *testing.T) {
	r := &queueReader{queue: []kafka.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}}}
	c := NewConsumerWithReader(r, "storefront-orders")

	ctx, cancel := context.WithCancel(context.Background())
	var seen []int64
	err := c.StartConsuming(ctx, func(_ context.Context, msg kafka.Message) error {
		seen = append(seen, msg.Offset)
		if msg.Offset == 3 {
			defer cancel()
		}
		if msg.Offset == 2 {
			return errors.New("bad message")
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{1, 2, 3}, seen)
	require.Len(t, r.committed, 2)
	assert.Equal(t, int64(1), r.committed[0].Offset)
	assert.Equal(t, int64(3), r.committed[1].Offset)
}
