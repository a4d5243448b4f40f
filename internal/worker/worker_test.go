package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceReader struct {
	msgs []kafka.Message
}

func (r *sliceReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *sliceReader) CommitMessages(context.Context, ...kafka.Message) error { return nil }
func (r *sliceReader) Close() error                                          { return nil }

func TestOrderAuditWorkerConsumesOrderPlaced(t *testing.T) {
	event := models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{EventID: "evt-1", EventType: models.EventTypeOrderPlaced},
		Reference: "ORD654321",
		Items:     []models.OrderItemData{{ProductID: "product-01", Quantity: 2}},
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)

	reader := &sliceReader{msgs: []kafka.Message{{Value: value}, {Value: value}}}
	w := NewOrderAuditWorker(broker.NewConsumerWithReader(reader, "storefront-orders"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	assert.Eventually(t, func() bool { return w.Audited() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.NoError(t, w.Stop())
}
