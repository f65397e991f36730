package service

import "errors"

var (
	ErrTableNotFound       = errors.New("table not found")
	ErrInvalidGateway      = errors.New("invalid payment gateway")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrReservationFailed   = errors.New("failed to create reservation")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrGatewayOrder        = errors.New("failed to create payment order")
	ErrGatewayUnavailable  = errors.New("online payments are not configured")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentNotCaptured  = errors.New("payment failed")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrItemNotFound        = errors.New("menu item not found")
	ErrSlugTaken           = errors.New("slug already taken")
	ErrInvalidSheet        = errors.New("excel must have at least one row of data")
	ErrForbidden           = errors.New("not allowed to manage this restaurant")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
