package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"dinein/database/dbtest"
	"dinein/events"
	"dinein/logger"
	"dinein/model"
	"dinein/payment"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const (
	gatewayPayPal = 1
	gatewayBank   = 2
)

func newReservationService(db *gorm.DB, store *memStore, gw payment.Gateway, pub events.Publisher) *ReservationService {
	return NewReservationService(db, store, gw, pub, logger.Nop(), ReservationServiceConfig{
		PublicURL: "https://api.dinein.test",
		Currency:  "USD",
	})
}

func reservationInput(f dbtest.Fixture, gatewayID uint) CreateReservationInput {
	return CreateReservationInput{
		UserID:             f.User.ID,
		TableID:            f.Table.ID,
		ReservationDate:    time.Date(2026, 11, 2, 19, 30, 0, 0, time.UTC),
		Amount:             decimal.RequireFromString("40.00"),
		Notes:              "window seat",
		TermsAndConditions: true,
		GatewayID:          gatewayID,
		CustomerName:       "Mona",
		CustomerEmail:      "mona@example.com",
		CustomerPhone:      "+201000000000",
	}
}

func assertRows(t *testing.T, db *gorm.DB, want int64) {
	t.Helper()
	if n := count(t, db, &model.Reservation{}); n != want {
		t.Errorf("reservations = %d, want %d", n, want)
	}
	if n := count(t, db, &model.ReservationDetail{}); n != want {
		t.Errorf("reservation details = %d, want %d", n, want)
	}
	if n := count(t, db, &model.Payment{}); n != want {
		t.Errorf("payments = %d, want %d", n, want)
	}
}

func TestReservationService_CreateOffline(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)

	ctrl := gomock.NewController(t)
	pub := events.NewMockPublisher(ctrl)
	pub.EXPECT().
		Publish(gomock.Any(), events.ReservationCreated, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload any) error {
			ev, ok := payload.(events.ReservationCreatedEvent)
			if !ok {
				t.Fatalf("payload type %T", payload)
			}
			if ev.Amount != "40.00" || ev.Gateway != model.GatewayBankTransfer {
				t.Errorf("event = %+v", ev)
			}
			return nil
		})

	store := &memStore{}
	svc := newReservationService(db, store, nil, pub)

	in := reservationInput(f, gatewayBank)
	in.TransactionID = "TRX-77"
	in.TransactionImage = &multipart.FileHeader{Filename: "proof.png"}

	res, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if res.RedirectURL != "" {
		t.Errorf("RedirectURL = %q, want empty for offline gateway", res.RedirectURL)
	}

	assertRows(t, db, 1)

	got := res.Reservation
	if got.RestaurantID != f.Restaurant.ID {
		t.Errorf("RestaurantID = %d, want %d", got.RestaurantID, f.Restaurant.ID)
	}
	if got.Detail == nil || got.Detail.TableID != f.Table.ID || got.Detail.ReservationID != got.ID {
		t.Fatalf("detail = %+v", got.Detail)
	}
	if len(got.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(got.Payments))
	}
	p := got.Payments[0]
	if p.Status != model.PaymentPending || p.ReservationID != got.ID || !p.Amount.Equal(in.Amount) {
		t.Errorf("payment = %+v", p)
	}
	if p.TransactionImage != "transaction_images/proof.png" || p.TransactionID != "TRX-77" {
		t.Errorf("transaction fields = %q %q", p.TransactionImage, p.TransactionID)
	}
	if len(store.removed) != 0 {
		t.Errorf("image removed on success: %v", store.removed)
	}
}

func TestReservationService_CreateOnlineReturnsApprovalURL(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)

	ctrl := gomock.NewController(t)
	gw := payment.NewMockGateway(ctrl)
	gw.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payment.CreateOrderRequest) (*payment.Order, error) {
			if !req.Amount.Equal(decimal.RequireFromString("40")) || req.Currency != "USD" {
				t.Errorf("order amount = %s %s", req.Amount, req.Currency)
			}
			if !strings.HasPrefix(req.ReturnURL, "https://api.dinein.test/api/payments/success?payment=") {
				t.Errorf("ReturnURL = %s", req.ReturnURL)
			}
			if req.CancelURL != "https://api.dinein.test/api/payments/cancel" {
				t.Errorf("CancelURL = %s", req.CancelURL)
			}
			return &payment.Order{ID: "ORDER-1", Status: "CREATED", ApprovalURL: "https://paypal.test/checkoutnow?token=ORDER-1"}, nil
		})

	svc := newReservationService(db, &memStore{}, gw, events.NopPublisher{})

	res, err := svc.Create(context.Background(), reservationInput(f, gatewayPayPal))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if res.RedirectURL != "https://paypal.test/checkoutnow?token=ORDER-1" {
		t.Errorf("RedirectURL = %q", res.RedirectURL)
	}

	var p model.Payment
	if err := db.First(&p, res.Payment.ID).Error; err != nil {
		t.Fatal(err)
	}
	if p.GatewayReference != "ORDER-1" || p.Status != model.PaymentPending {
		t.Errorf("payment after order = ref %q status %s", p.GatewayReference, p.Status)
	}
	assertRows(t, db, 1)
}

func TestReservationService_CreateOrderFailureKeepsPendingPayment(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)

	ctrl := gomock.NewController(t)
	gw := payment.NewMockGateway(ctrl)
	gw.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, errors.New("provider down"))

	svc := newReservationService(db, &memStore{}, gw, events.NopPublisher{})

	res, err := svc.Create(context.Background(), reservationInput(f, gatewayPayPal))
	if !errors.Is(err, ErrGatewayOrder) {
		t.Fatalf("Create() error = %v, want ErrGatewayOrder", err)
	}
	if res == nil || res.Payment == nil {
		t.Fatal("committed rows not returned")
	}

	assertRows(t, db, 1)
	var p model.Payment
	if err := db.First(&p, res.Payment.ID).Error; err != nil {
		t.Fatal(err)
	}
	if p.Status != model.PaymentPending || p.GatewayReference != "" {
		t.Errorf("payment = status %s ref %q", p.Status, p.GatewayReference)
	}
}

func TestReservationService_CreateRollsBack(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, db *gorm.DB, store *memStore)
		wantRemoved bool
	}{
		{
			name: "payment insert fails",
			setup: func(t *testing.T, db *gorm.DB, _ *memStore) {
				failInserts(t, db, "payments")
			},
			wantRemoved: true,
		},
		{
			name: "detail insert fails",
			setup: func(t *testing.T, db *gorm.DB, _ *memStore) {
				failInserts(t, db, "reservation_details")
			},
		},
		{
			name: "image store fails",
			setup: func(_ *testing.T, _ *gorm.DB, store *memStore) {
				store.saveErr = errors.New("disk full")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dbtest.New(t)
			f := dbtest.Seed(t, db)
			store := &memStore{}
			tt.setup(t, db, store)

			// no publish expected on failure
			ctrl := gomock.NewController(t)
			svc := newReservationService(db, store, nil, events.NewMockPublisher(ctrl))

			in := reservationInput(f, gatewayBank)
			in.TransactionImage = &multipart.FileHeader{Filename: "proof.jpg"}

			_, err := svc.Create(context.Background(), in)
			if !errors.Is(err, ErrReservationFailed) {
				t.Fatalf("Create() error = %v, want ErrReservationFailed", err)
			}

			assertRows(t, db, 0)
			if tt.wantRemoved && (len(store.removed) != 1 || store.removed[0] != "transaction_images/proof.jpg") {
				t.Errorf("stored image not removed, removed = %v", store.removed)
			}
		})
	}
}

func TestReservationService_CreateRejects(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	svc := newReservationService(db, &memStore{}, nil, events.NopPublisher{})

	tests := []struct {
		name    string
		mutate  func(in *CreateReservationInput)
		wantErr error
	}{
		{name: "unknown table", mutate: func(in *CreateReservationInput) { in.TableID = 9999 }, wantErr: ErrTableNotFound},
		{name: "unknown gateway", mutate: func(in *CreateReservationInput) { in.GatewayID = 99 }, wantErr: ErrInvalidGateway},
		{name: "zero amount", mutate: func(in *CreateReservationInput) { in.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "online without provider", mutate: func(in *CreateReservationInput) { in.GatewayID = gatewayPayPal }, wantErr: ErrGatewayUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := reservationInput(f, gatewayBank)
			tt.mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	assertRows(t, db, 0)
}

func TestReservationService_Queries(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	res, _ := dbtest.SeedReservation(t, db, f, gatewayBank)
	svc := newReservationService(db, &memStore{}, nil, events.NopPublisher{})
	ctx := context.Background()
	owner := ownerOf(f)

	list, err := svc.ByRestaurant(ctx, owner, f.Restaurant.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ByRestaurant() = %d, %v", len(list), err)
	}
	if list[0].Detail == nil || len(list[0].Payments) != 1 {
		t.Errorf("relations not loaded: %+v", list[0])
	}

	empty := model.Restaurant{UserID: f.User.ID, Slug: "empty-" + f.Restaurant.Slug, Name: "Empty", Status: model.RestaurantActive}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ByRestaurant(ctx, owner, empty.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("ByRestaurant(empty) error = %v", err)
	}
	if _, err := svc.ByRestaurant(ctx, owner, f.Restaurant.ID+100); !errors.Is(err, ErrRestaurantNotFound) {
		t.Errorf("ByRestaurant(missing) error = %v", err)
	}

	stranger := Actor{UserID: f.User.ID + 1000, Role: model.RoleOwner}
	if _, err := svc.ByRestaurant(ctx, stranger, f.Restaurant.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("ByRestaurant(stranger) error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Export(ctx, stranger, f.Restaurant.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Export(stranger) error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, stranger, res.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Get(stranger) error = %v, want ErrForbidden", err)
	}
	customer := Actor{UserID: f.User.ID, Role: model.RoleCustomer}
	if _, err := svc.Get(ctx, customer, res.ID); err != nil {
		t.Errorf("Get(own reservation) error = %v", err)
	}

	if err := svc.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, owner, res.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("Get(deleted) error = %v", err)
	}
	if err := svc.Delete(ctx, res.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("Delete(deleted) error = %v", err)
	}
}

func TestReservationService_Export(t *testing.T) {
	db := dbtest.New(t)
	f := dbtest.Seed(t, db)
	res, _ := dbtest.SeedReservation(t, db, f, gatewayBank)
	svc := newReservationService(db, &memStore{}, nil, events.NopPublisher{})

	data, err := svc.Export(context.Background(), ownerOf(f), f.Restaurant.ID)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer xl.Close()

	rows, err := xl.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	row := rows[1]
	if row[0] != decimal.NewFromInt(int64(res.ID)).String() || row[2] != "T5" || row[3] != "40.00" {
		t.Errorf("row = %v", row)
	}
	if row[6] != "Mona" || row[9] != string(model.PaymentPending) {
		t.Errorf("payment columns = %v", row[6:10])
	}
}
