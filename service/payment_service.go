package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinein/events"
	"dinein/model"
	"dinein/payment"
	"dinein/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	payments     *repository.PaymentRepository
	reservations *repository.ReservationRepository
	restaurants  *repository.RestaurantRepository
	gateway      payment.Gateway
	publisher    events.Publisher
	log          *zap.SugaredLogger
}

func NewPaymentService(db *gorm.DB, gateway payment.Gateway, publisher events.Publisher, log *zap.SugaredLogger) *PaymentService {
	return &PaymentService{
		payments:     repository.NewPaymentRepository(db),
		reservations: repository.NewReservationRepository(db),
		restaurants:  repository.NewRestaurantRepository(db),
		gateway:      gateway,
		publisher:    publisher,
		log:          log,
	}
}

// Get returns a payment to an actor who manages the reserved restaurant.
func (s *PaymentService) Get(ctx context.Context, actor Actor, id uint) (*model.Payment, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) find(ctx context.Context, id uint) (*model.Payment, error) {
	p, err := s.payments.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

func (s *PaymentService) authorize(ctx context.Context, actor Actor, p *model.Payment) error {
	res, err := s.reservations.FindByID(ctx, p.ReservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	return authorizeRestaurant(ctx, s.restaurants, actor, res.RestaurantID)
}

func (s *PaymentService) Gateways(ctx context.Context) ([]model.PaymentGateway, error) {
	return s.payments.ListGateways(ctx)
}

// HandleSuccess captures the remote order the customer approved. token is
// the provider order id from the return URL; the stored gateway reference is
// used when it is empty, and a token that differs from a stored reference is
// refused. Only a COMPLETED capture marks the payment success.
func (s *PaymentService) HandleSuccess(ctx context.Context, paymentID uint, token string) (*model.Payment, error) {
	p, err := s.find(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	orderID := token
	if orderID == "" {
		orderID = p.GatewayReference
	}
	if p.GatewayReference != "" && orderID != p.GatewayReference {
		s.log.Warnw("order does not match payment", "payment_id", p.ID, "order_id", orderID)
		return nil, fmt.Errorf("%w: order %s does not belong to payment %d", ErrPaymentNotCaptured, orderID, p.ID)
	}
	if orderID == "" {
		return nil, fmt.Errorf("%w: no remote order for payment %d", ErrPaymentNotCaptured, p.ID)
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		s.log.Errorw("capture order failed", "payment_id", p.ID, "order_id", orderID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotCaptured, err)
	}
	if capture.Status != payment.StatusCompleted {
		s.log.Warnw("capture not completed", "payment_id", p.ID, "order_id", orderID, "status", capture.Status)
		return nil, ErrPaymentNotCaptured
	}

	fields := map[string]any{
		"status":         model.PaymentSuccess,
		"transaction_id": capture.ID,
	}
	if err := s.payments.Updates(ctx, p.ID, fields); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	p.Status = model.PaymentSuccess
	p.TransactionID = capture.ID

	s.statusChanged(ctx, p)
	return p, nil
}

// UpdateStatus sets any status from the enumerated set, regardless of the
// current one.
func (s *PaymentService) UpdateStatus(ctx context.Context, actor Actor, id uint, status model.PaymentStatus) (*model.Payment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, current); err != nil {
		return nil, err
	}

	if err := s.payments.Updates(ctx, id, map[string]any{"status": status}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.statusChanged(ctx, p)
	return p, nil
}

func (s *PaymentService) statusChanged(ctx context.Context, p *model.Payment) {
	err := s.publisher.Publish(ctx, events.PaymentStatusChanged, events.PaymentStatusChangedEvent{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Status:        string(p.Status),
		OccurredAt:    time.Now(),
	})
	if err != nil {
		s.log.Warnw("publish event failed", "routing_key", events.PaymentStatusChanged, "error", err)
	}
}
