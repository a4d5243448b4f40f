package worker

import (
	"context"
	"sync/atomic"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// OrderAuditWorker consumes OrderPlaced events and writes an audit log line
// for each. Orders are not stored.
type OrderAuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	audited      atomic.Int64
	logger       *zap.Logger
}

// NewOrderAuditWorker creates a new audit worker
func NewOrderAuditWorker(consumer *broker.Consumer) *OrderAuditWorker {
	w := &OrderAuditWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		logger:       util.GetLogger(),
	}
	w.eventHandler.OnOrderPlaced(w.HandleOrderPlaced)
	return w
}

// HandleOrderPlaced records one placed order
func (w *OrderAuditWorker) HandleOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error {
	_, span := util.StartSpan(ctx, "OrderAuditWorker.HandleOrderPlaced")
	defer span.End()

	units := 0
	for _, item := range event.Items {
		units += item.Quantity
	}

	w.audited.Add(1)
	util.OrdersAuditedTotal.Inc()
	w.logger.Info("Order placed",
		zap.String("reference", event.Reference),
		zap.String("eventId", event.EventID),
		zap.String("paymentMethod", event.PaymentMethod),
		zap.Int("lines", len(event.Items)),
		zap.Int("units", units),
		zap.Int64("grandTotal", event.GrandTotal),
	)
	return nil
}

// Audited reports how many orders have been handled
func (w *OrderAuditWorker) Audited() int64 {
	return w.audited.Load()
}

// Start starts the worker
func (w *OrderAuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting order audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderAuditWorker) Stop() error {
	w.logger.Info("Stopping order audit worker")
	return w.consumer.Close()
}
