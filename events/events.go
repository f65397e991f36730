// Package events publishes reservation and payment domain events.
package events

//go:generate mockgen -source=events.go -destination=mock_publisher.go -package=events

import (
	"context"
	"time"
)

// Routing keys.
const (
	ReservationCreated   = "reservation.created"
	PaymentStatusChanged = "payment.status_changed"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type ReservationCreatedEvent struct {
	ReservationID uint      `json:"reservation_id"`
	PaymentID     uint      `json:"payment_id"`
	UserID        uint      `json:"user_id"`
	RestaurantID  uint      `json:"restaurant_id"`
	TableID       uint      `json:"table_id"`
	Amount        string    `json:"amount"`
	Gateway       string    `json:"gateway"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type PaymentStatusChangedEvent struct {
	PaymentID     uint      `json:"payment_id"`
	ReservationID uint      `json:"reservation_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
