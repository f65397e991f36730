package payment

import (
	"context"
	"fmt"

	"github.com/plutov/paypal/v4"
)

type PayPalConfig struct {
	ClientID string
	Secret   string
	// Mode is "sandbox" or "live".
	Mode string
}

// PayPalGateway talks to the PayPal Orders v2 API.
type PayPalGateway struct {
	client *paypal.Client
}

func NewPayPalGateway(cfg PayPalConfig) (*PayPalGateway, error) {
	base := paypal.APIBaseSandBox
	if cfg.Mode == "live" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.Secret, base)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal client: %w", err)
	}

	return &PayPalGateway{client: client}, nil
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal access token: %w", err)
	}

	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: req.ReferenceID,
			Description: req.Description,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: req.Currency,
				Value:    req.Amount.StringFixed(2),
			},
		},
	}
	appCtx := &paypal.ApplicationContext{
		ReturnURL: req.ReturnURL,
		CancelURL: req.CancelURL,
	}

	order, err := g.client.CreateOrder(ctx, "CAPTURE", units, nil, appCtx)
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	out := &Order{ID: order.ID, Status: order.Status}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			out.ApprovalURL = link.Href
			break
		}
	}
	if out.ApprovalURL == "" {
		return nil, ErrNoApprovalLink
	}
	return out, nil
}

func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal access token: %w", err)
	}

	resp, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("paypal capture order: %w", err)
	}
	return &Capture{ID: resp.ID, Status: resp.Status}, nil
}
