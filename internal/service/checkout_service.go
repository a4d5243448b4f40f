package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/pricing"
	"storefront-service/internal/util"
	"storefront-service/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// CheckoutState is the checkout flow position
type CheckoutState string

const (
	StateIdle       CheckoutState = "idle"
	StateSubmitting CheckoutState = "submitting"
	StateSuccess    CheckoutState = "success"
)

const checkoutTaskKey = "checkout"

// DefaultCheckoutDelay is the simulated payment processing time
const DefaultCheckoutDelay = 2 * time.Second

// CheckoutForm is the billing form
type CheckoutForm struct {
	FirstName     string `json:"firstName" validate:"min=2"`
	LastName      string `json:"lastName" validate:"min=2"`
	Email         string `json:"email" validate:"email"`
	Phone         string `json:"phone" validate:"min=10"`
	Address       string `json:"address" validate:"min=5"`
	City          string `json:"city" validate:"min=2"`
	State         string `json:"state" validate:"min=2"`
	Pincode       string `json:"pincode" validate:"min=6"`
	PaymentMethod string `json:"paymentMethod" validate:"oneof=credit_card debit_card netbanking upi cod"`
	Notes         string `json:"notes,omitempty"`
}

// PaymentMethods lists the accepted payment method values
var PaymentMethods = []string{"credit_card", "debit_card", "netbanking", "upi", "cod"}

var fieldMessages = map[string]string{
	"firstName":     "First name must be at least 2 characters",
	"lastName":      "Last name must be at least 2 characters",
	"email":         "Please enter a valid email address",
	"phone":         "Phone number must be at least 10 characters",
	"address":       "Address must be at least 5 characters",
	"city":          "City must be at least 2 characters",
	"state":         "State must be at least 2 characters",
	"pincode":       "Pincode must be at least 6 characters",
	"paymentMethod": "Please select a valid payment method",
}

// ValidationError maps form field names to messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid checkout form: %s", strings.Join(names, ", "))
}

// IsValidationError reports whether err carries field errors
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// OrderEventPublisher publishes placed orders
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
}

// CheckoutService runs the Idle -> Submitting -> Success flow
type CheckoutService struct {
	mu    sync.Mutex
	state CheckoutState
	rng   *rand.Rand

	cart      *cart.Manager
	calc      *pricing.Calculator
	scheduler *worker.Scheduler
	contexts  *OrderContexts
	publisher OrderEventPublisher
	notifier  notify.Notifier
	validate  *validator.Validate
	delay     time.Duration
	logger    *zap.Logger
}

// CheckoutOption configures a CheckoutService
type CheckoutOption func(*CheckoutService)

// WithCheckoutDelay overrides the simulated processing delay
func WithCheckoutDelay(d time.Duration) CheckoutOption {
	return func(s *CheckoutService) { s.delay = d }
}

// WithEventPublisher publishes an OrderPlaced event for each success
func WithEventPublisher(p OrderEventPublisher) CheckoutOption {
	return func(s *CheckoutService) { s.publisher = p }
}

// WithReferenceSeed makes order references reproducible
func WithReferenceSeed(seed int64) CheckoutOption {
	return func(s *CheckoutService) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartManager *cart.Manager,
	calc *pricing.Calculator,
	scheduler *worker.Scheduler,
	contexts *OrderContexts,
	notifier notify.Notifier,
	opts ...CheckoutOption,
) *CheckoutService {
	if notifier == nil {
		notifier = notify.Discard
	}
	s := &CheckoutService{
		state:     StateIdle,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		cart:      cartManager,
		calc:      calc,
		scheduler: scheduler,
		contexts:  contexts,
		notifier:  notifier,
		validate:  newValidator(),
		delay:     DefaultCheckoutDelay,
		logger:    util.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current flow position
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Summary prices the current cart
func (s *CheckoutService) Summary() pricing.Summary {
	return s.calc.Summarize(s.cart.Items())
}

// ValidateForm returns a *ValidationError listing every failing field
func (s *CheckoutService) ValidateForm(form CheckoutForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("failed on %s", fe.Tag())
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}

// Submit places the order in the cart. An empty cart is refused without
// touching state or persistence. The order context is returned once the
// simulated processing completes; ctx expiry abandons the wait but not the
// order.
func (s *CheckoutService) Submit(ctx context.Context, form CheckoutForm) (*OrderContext, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.Submit")
	defer span.End()

	if s.cart.IsEmpty() {
		util.CheckoutsRejectedTotal.WithLabelValues("empty_cart").Inc()
		s.notifier.Notify(notify.Error("Cannot proceed", "Your cart is empty. Add items before checkout."))
		return nil, ErrEmptyCart
	}

	if err := s.ValidateForm(form); err != nil {
		util.CheckoutsRejectedTotal.WithLabelValues("invalid_form").Inc()
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		util.CheckoutsRejectedTotal.WithLabelValues("in_progress").Inc()
		return nil, ErrCheckoutInProgress
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	util.CheckoutsStartedTotal.Inc()
	start := time.Now()
	s.logger.Info("Checkout submitted", zap.String("email", form.Email), zap.Int("items", s.cart.ItemCount()))

	var placed *OrderContext
	task := s.scheduler.Schedule(checkoutTaskKey, s.delay, func(taskCtx context.Context) error {
		oc, err := s.complete(taskCtx, form)
		if err != nil {
			s.setState(StateIdle)
			return err
		}
		placed = oc
		return nil
	})

	if err := task.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			go s.resetWhenWithdrawn(task)
			return nil, fmt.Errorf("checkout wait abandoned: %w", err)
		}
		s.setState(StateIdle)
		util.CheckoutsRejectedTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	util.CheckoutLatency.Observe(time.Since(start).Seconds())
	return placed, nil
}

// resetWhenWithdrawn returns to Idle if a task nobody waits on finishes
// without running its body, e.g. because the scheduler stopped.
func (s *CheckoutService) resetWhenWithdrawn(task *worker.Task) {
	<-task.Done()
	err := task.Err()
	if err == nil {
		return
	}
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.state = StateIdle
	}
	s.mu.Unlock()
	s.logger.Warn("Abandoned checkout did not complete", zap.Error(err))
}

// complete runs once the processing delay elapses
func (s *CheckoutService) complete(ctx context.Context, form CheckoutForm) (*OrderContext, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.complete")
	defer span.End()

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	summary := s.calc.Summarize(items)

	s.cart.ClearCart(ctx)

	oc := &OrderContext{
		Reference: s.newReference(),
		Customer:  form,
		Items:     items,
		Summary:   summary,
		PlacedAt:  time.Now(),
	}
	s.contexts.Put(oc)
	s.setState(StateSuccess)

	util.CheckoutsCompletedTotal.Inc()
	util.OrderValueTotal.Add(float64(summary.GrandTotal))
	s.logger.Info("Order placed",
		zap.String("reference", oc.Reference),
		zap.Int64("grandTotal", summary.GrandTotal),
		zap.Int("itemCount", summary.ItemCount),
	)

	s.publish(ctx, oc)
	s.notifier.Notify(notify.Info("Order placed successfully", "Thank you for your purchase!"))
	return oc, nil
}

func (s *CheckoutService) publish(ctx context.Context, oc *OrderContext) {
	if s.publisher == nil {
		return
	}

	items := make([]models.OrderItemData, 0, len(oc.Items))
	for _, item := range oc.Items {
		items = append(items, models.OrderItemData{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: pricing.UnitPrice(item.Product),
		})
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: oc.PlacedAt,
		},
		Reference:     oc.Reference,
		Email:         oc.Customer.Email,
		PaymentMethod: oc.Customer.PaymentMethod,
		Subtotal:      oc.Summary.Subtotal,
		Tax:           oc.Summary.Tax,
		Shipping:      oc.Summary.Shipping,
		GrandTotal:    oc.Summary.GrandTotal,
		Items:         items,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		util.EventsPublishFailedTotal.WithLabelValues(models.EventTypeOrderPlaced).Inc()
		s.logger.Error("Failed to publish OrderPlaced event",
			zap.String("reference", oc.Reference),
			zap.Error(err),
		)
	}
}

// Confirmation consumes the order context for token
func (s *CheckoutService) Confirmation(token string) (*OrderContext, error) {
	return s.contexts.Consume(token)
}

func (s *CheckoutService) newReference() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("ORD%d", 100000+s.rng.Intn(900000))
}

func (s *CheckoutService) setState(state CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
