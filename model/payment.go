package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSuccess   PaymentStatus = "success"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRejected  PaymentStatus = "rejected"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentStatuses lists every accepted payment status.
var PaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentSuccess,
	PaymentFailed,
	PaymentRejected,
	PaymentCancelled,
}

func (s PaymentStatus) Valid() bool {
	for _, st := range PaymentStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Payment struct {
	gorm.Model
	ReservationID          uint            `json:"reservation_id" gorm:"index;not null"`
	UserID                 uint            `json:"user_id" gorm:"index"`
	Amount                 decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	GatewayID              *uint           `json:"gateway_id"`
	Gateway                *PaymentGateway `json:"gateway,omitempty"`
	GatewayReference       string          `json:"gateway_reference"`
	TransactionID          string          `json:"transaction_id"`
	TransactionImage       string          `json:"transaction_image"`
	TransactionPhoneNumber string          `json:"transaction_phone_number"`
	CustomerName           string          `json:"customer_name"`
	CustomerEmail          string          `json:"customer_email"`
	CustomerPhone          string          `json:"customer_phone"`
	Status                 PaymentStatus   `json:"status" gorm:"type:varchar(20);default:pending;index"`
}

// PaymentGateway is a configured payment backend. Online gateways redirect
// the customer to a hosted checkout after the reservation is stored.
type PaymentGateway struct {
	gorm.Model
	Name   string `json:"name"`
	Code   string `json:"code" gorm:"uniqueIndex;not null"`
	Online bool   `json:"online"`
}

const (
	GatewayPayPal       = "paypal"
	GatewayBankTransfer = "bank_transfer"
	GatewayCash         = "cash"
)
