// Package payment adapts hosted checkout providers to the reservation flow.
package payment

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// StatusCompleted is the provider status of a captured order.
const StatusCompleted = "COMPLETED"

var ErrNoApprovalLink = errors.New("payment: order has no approval link")

type CreateOrderRequest struct {
	ReferenceID string
	Description string
	Amount      decimal.Decimal
	Currency    string
	ReturnURL   string
	CancelURL   string
}

// Order is a remote checkout order awaiting customer approval.
type Order struct {
	ID          string
	Status      string
	ApprovalURL string
}

type Capture struct {
	ID     string
	Status string
}

// Gateway creates and captures remote checkout orders.
type Gateway interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)
}
