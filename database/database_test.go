package database_test

import (
	"testing"

	"dinein/config"
	"dinein/database"
	"dinein/database/dbtest"
	"dinein/model"

	"golang.org/x/crypto/bcrypt"
)

func TestSeedGateways_Idempotent(t *testing.T) {
	db := dbtest.New(t)

	// dbtest.New already seeded once
	if err := database.SeedGateways(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var gateways []model.PaymentGateway
	if err := db.Order("id").Find(&gateways).Error; err != nil {
		t.Fatal(err)
	}
	if len(gateways) != 3 {
		t.Fatalf("gateways = %d, want 3", len(gateways))
	}
	if gateways[0].ID != 1 || gateways[0].Code != model.GatewayPayPal || !gateways[0].Online {
		t.Errorf("gateway 1 = %+v, want online PayPal", gateways[0])
	}
	for _, g := range gateways[1:] {
		if g.Online {
			t.Errorf("gateway %d should be offline", g.ID)
		}
	}
}

func TestSeedGateways_LaterInsertGetsFreshID(t *testing.T) {
	db := dbtest.New(t)

	wallet := model.PaymentGateway{Name: "Mobile wallet", Code: "wallet"}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("insert gateway after seeding: %v", err)
	}
	if wallet.ID <= 3 {
		t.Errorf("id = %d, want one past the seeded gateways", wallet.ID)
	}
}

func TestSeedAdmin(t *testing.T) {
	db := dbtest.New(t)

	created, err := database.SeedAdmin(db, config.AdminConfig{})
	if err != nil || created {
		t.Fatalf("empty config: created=%v err=%v", created, err)
	}

	admin := config.AdminConfig{Email: "admin@example.com", Password: "change-me-now"}
	created, err = database.SeedAdmin(db, admin)
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}

	var u model.User
	if err := db.Where("email = ?", admin.Email).First(&u).Error; err != nil {
		t.Fatal(err)
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("role = %s, want admin", u.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(admin.Password)) != nil {
		t.Error("stored password does not match")
	}

	created, err = database.SeedAdmin(db, admin)
	if err != nil || created {
		t.Errorf("second seed: created=%v err=%v", created, err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := database.Open(config.DatabaseConfig{Driver: "mysql"}, false); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}
