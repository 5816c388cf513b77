package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-api/internal/auth"
	"github.com/spec-kit/storefront-api/internal/domain"
	"github.com/spec-kit/storefront-api/internal/events"
	"github.com/spec-kit/storefront-api/internal/repository"
	apperrors "github.com/spec-kit/storefront-api/pkg/util/errorutil"
)

// OrderInput carries a new order. Pointer fields distinguish absent from zero.
type OrderInput struct {
	Items       []domain.OrderItem
	Tax         *int64
	ShippingFee *int64
}

// OrderService handles order workflows scoped by ownership.
type OrderService struct {
	orders repository.OrderRepository
	events events.Dispatcher
	logger *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		events: dispatcherOrNop(dispatcher),
		logger: loggerOrNop(logger),
	}
}

// Create validates the cart and stores an order owned by the caller.
func (s *OrderService) Create(ctx context.Context, claim domain.Claim, input OrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("No cart items provided", nil)
	}
	if input.Tax == nil || input.ShippingFee == nil {
		return nil, apperrors.NewValidationError("Please provide tax and shipping fee", nil)
	}
	if *input.Tax < 0 || *input.ShippingFee < 0 {
		return nil, apperrors.NewValidationError("Tax and shipping fee must not be negative", nil)
	}

	owner, err := uuid.Parse(claim.UserID)
	if err != nil {
		return nil, apperrors.NewAuthenticationInvalid()
	}

	var subtotal int64
	items := make([]domain.OrderItem, 0, len(input.Items))
	for i, item := range input.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || item.Amount <= 0 || item.Price < 0 {
			return nil, apperrors.NewValidationError("Invalid cart item", map[string]any{"index": i})
		}
		subtotal += item.Price * int64(item.Amount)
		items = append(items, item)
	}

	order := &domain.Order{
		UserID:      owner,
		Items:       items,
		Tax:         *input.Tax,
		ShippingFee: *input.ShippingFee,
		Subtotal:    subtotal,
		Total:       subtotal + *input.Tax + *input.ShippingFee,
		Status:      domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.EventOrderCreated, claim,
		events.OrderPayload{OrderID: order.ID.String(), Total: order.Total})
	return order, nil
}

// List returns every order.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListMine returns the caller's orders.
func (s *OrderService) ListMine(ctx context.Context, claim domain.Claim) ([]domain.Order, error) {
	owner, err := uuid.Parse(claim.UserID)
	if err != nil {
		return []domain.Order{}, nil
	}
	return s.orders.ListByUser(ctx, owner)
}

// Get returns the order if the caller owns it or is an admin.
func (s *OrderService) Get(ctx context.Context, claim domain.Claim, id string) (*domain.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPermissions(claim, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid records the payment intent and moves the order to paid.
func (s *OrderService) MarkPaid(ctx context.Context, claim domain.Claim, id, paymentIntentID string) (*domain.Order, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return nil, apperrors.NewValidationError("Please provide paymentIntentId", nil)
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckPermissions(claim, order.UserID); err != nil {
		return nil, err
	}

	order.PaymentIntentID = paymentIntentID
	order.Status = domain.OrderStatusPaid
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.EventOrderPaid, claim,
		events.OrderPayload{OrderID: order.ID.String(), Total: order.Total})
	return order, nil
}

func (s *OrderService) load(ctx context.Context, id string) (*domain.Order, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
	}
	order, err := s.orders.GetByID(ctx, parsed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
	}
	return order, err
}
