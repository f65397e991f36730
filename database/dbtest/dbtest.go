// Package dbtest provides an isolated, migrated in-memory database for tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"dinein/database"
	"dinein/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a fresh shared-cache sqlite database, migrates it and seeds the
// payment gateways. The database is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedGateways(db); err != nil {
		t.Fatalf("seed gateways: %v", err)
	}
	return db
}

// Fixture is a restaurant with one location and one table.
type Fixture struct {
	User       model.User
	Restaurant model.Restaurant
	Location   model.RestaurantLocation
	Table      model.Table
}

// Seed inserts a customer, a restaurant, a location and a table.
func Seed(t testing.TB, db *gorm.DB) Fixture {
	t.Helper()

	f := Fixture{
		User: model.User{Name: "Mona", Email: uuid.NewString() + "@example.com", Password: "x", Role: model.RoleCustomer},
	}
	mustCreate(t, db, &f.User)

	f.Restaurant = model.Restaurant{UserID: f.User.ID, Slug: "koshary-" + uuid.NewString()[:8], Name: "Koshary House", Status: model.RestaurantActive}
	mustCreate(t, db, &f.Restaurant)

	f.Location = model.RestaurantLocation{RestaurantID: f.Restaurant.ID, Address: "12 Tahrir St", NumberOfTables: 10, Status: model.LocationOpened}
	mustCreate(t, db, &f.Location)

	f.Table = model.Table{RestaurantLocationID: f.Location.ID, Number: "T5", Capacity: 4, Status: model.TableAvailable}
	mustCreate(t, db, &f.Table)

	return f
}

// SeedReservation stores a reservation with its detail and a pending payment.
func SeedReservation(t testing.TB, db *gorm.DB, f Fixture, gatewayID uint) (model.Reservation, model.Payment) {
	t.Helper()

	amount := decimal.RequireFromString("40.00")
	res := model.Reservation{UserID: f.User.ID, RestaurantID: f.Restaurant.ID, TotalPrice: amount, TermsAndConditions: true}
	mustCreate(t, db, &res)

	detail := model.ReservationDetail{ReservationID: res.ID, TableID: f.Table.ID, ReservationDate: time.Now().Add(24 * time.Hour), Amount: amount}
	mustCreate(t, db, &detail)

	pay := model.Payment{
		ReservationID: res.ID,
		UserID:        f.User.ID,
		Amount:        amount,
		GatewayID:     &gatewayID,
		CustomerName:  "Mona",
		CustomerEmail: "mona@example.com",
		Status:        model.PaymentPending,
	}
	mustCreate(t, db, &pay)

	return res, pay
}

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}
