package database

import (
	"errors"
	"fmt"

	"dinein/config"
	"dinein/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedGateways makes sure the payment gateways referenced by id exist.
// PayPal must stay id 1: clients send gateway_id=1 for online checkout.
// On postgres the id sequence is moved past the seeded ids afterwards.
func SeedGateways(db *gorm.DB) error {
	gateways := []model.PaymentGateway{
		{Model: gorm.Model{ID: 1}, Name: "PayPal", Code: model.GatewayPayPal, Online: true},
		{Model: gorm.Model{ID: 2}, Name: "Bank transfer", Code: model.GatewayBankTransfer},
		{Model: gorm.Model{ID: 3}, Name: "Cash", Code: model.GatewayCash},
	}
	for _, g := range gateways {
		if err := db.Where(model.PaymentGateway{Code: g.Code}).FirstOrCreate(&g).Error; err != nil {
			return fmt.Errorf("seed gateway %s: %w", g.Code, err)
		}
	}

	if db.Dialector.Name() == "postgres" {
		err := db.Exec(`SELECT setval(pg_get_serial_sequence('payment_gateways', 'id'), (SELECT MAX(id) FROM payment_gateways))`).Error
		if err != nil {
			return fmt.Errorf("sync gateway id sequence: %w", err)
		}
	}
	return nil
}

// SeedAdmin creates the first admin account when credentials are configured.
// It returns false when seeding was skipped.
func SeedAdmin(db *gorm.DB, admin config.AdminConfig) (bool, error) {
	if admin.Email == "" || admin.Password == "" {
		return false, nil
	}

	var existing model.User
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	user := model.User{
		Name:     "Admin",
		Email:    admin.Email,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
