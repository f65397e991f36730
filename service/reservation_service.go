package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"dinein/events"
	"dinein/model"
	"dinein/payment"
	"dinein/repository"
	"dinein/storage"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const transactionImageFolder = "transaction_images"

type CreateReservationInput struct {
	UserID                   uint
	TableID                  uint
	ReservationDate          time.Time
	Amount                   decimal.Decimal
	NumberOfExtraChairs      int
	NumberOfExtraChildChairs int
	Notes                    string
	TermsAndConditions       bool
	GatewayID                uint
	CustomerName             string
	CustomerEmail            string
	CustomerPhone            string
	TransactionID            string
	TransactionPhoneNumber   string
	TransactionImage         *multipart.FileHeader
}

// CreateReservationResult carries the stored reservation and, for online
// gateways, the URL the customer must be sent to.
type CreateReservationResult struct {
	Reservation *model.Reservation
	Payment     *model.Payment
	RedirectURL string
}

type ReservationServiceConfig struct {
	// PublicURL is the externally reachable base URL of the API.
	PublicURL string
	Currency  string
}

type ReservationService struct {
	db           *gorm.DB
	reservations *repository.ReservationRepository
	payments     *repository.PaymentRepository
	locations    *repository.LocationRepository
	restaurants  *repository.RestaurantRepository
	images       storage.ImageStore
	gateway      payment.Gateway
	publisher    events.Publisher
	log          *zap.SugaredLogger
	cfg          ReservationServiceConfig
}

// NewReservationService wires the reservation workflow. gateway may be nil
// when no online provider is configured.
func NewReservationService(
	db *gorm.DB,
	images storage.ImageStore,
	gateway payment.Gateway,
	publisher events.Publisher,
	log *zap.SugaredLogger,
	cfg ReservationServiceConfig,
) *ReservationService {
	return &ReservationService{
		db:           db,
		reservations: repository.NewReservationRepository(db),
		payments:     repository.NewPaymentRepository(db),
		locations:    repository.NewLocationRepository(db),
		restaurants:  repository.NewRestaurantRepository(db),
		images:       images,
		gateway:      gateway,
		publisher:    publisher,
		log:          log,
		cfg:          cfg,
	}
}

// Create stores the reservation, its detail and a pending payment in one
// transaction, then starts a remote checkout when the gateway is online.
// On ErrGatewayOrder the returned result still holds the committed rows.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (result *CreateReservationResult, err error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	table, err := s.locations.FindTable(ctx, in.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("find table: %w", err)
	}
	if table.RestaurantLocation == nil {
		return nil, ErrTableNotFound
	}

	gateway, err := s.payments.FindGateway(ctx, in.GatewayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidGateway
		}
		return nil, fmt.Errorf("find gateway: %w", err)
	}
	if gateway.Online && s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	var imagePath string
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationFailed, tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			s.removeImage(imagePath)
			s.log.Errorw("reservation transaction panicked", "panic", r)
			result, err = nil, ErrReservationFailed
		}
	}()

	fail := func(step string, cause error) (*CreateReservationResult, error) {
		tx.Rollback()
		s.removeImage(imagePath)
		s.log.Errorw("reservation rolled back", "step", step, "table_id", in.TableID, "error", cause)
		return nil, fmt.Errorf("%w: %s: %v", ErrReservationFailed, step, cause)
	}

	reservation := &model.Reservation{
		UserID:             in.UserID,
		RestaurantID:       table.RestaurantLocation.RestaurantID,
		TotalPrice:         in.Amount,
		Notes:              in.Notes,
		TermsAndConditions: in.TermsAndConditions,
	}
	if err := s.reservations.WithTx(tx).Create(ctx, reservation); err != nil {
		return fail("insert reservation", err)
	}

	detail := &model.ReservationDetail{
		ReservationID:            reservation.ID,
		TableID:                  table.ID,
		ReservationDate:          in.ReservationDate,
		Amount:                   in.Amount,
		NumberOfExtraChairs:      in.NumberOfExtraChairs,
		NumberOfExtraChildChairs: in.NumberOfExtraChildChairs,
	}
	if err := s.reservations.WithTx(tx).CreateDetail(ctx, detail); err != nil {
		return fail("insert detail", err)
	}

	if in.TransactionImage != nil {
		imagePath, err = s.images.Save(transactionImageFolder, in.TransactionImage)
		if err != nil {
			return fail("store transaction image", err)
		}
	}

	gatewayID := gateway.ID
	pay := &model.Payment{
		ReservationID:          reservation.ID,
		UserID:                 in.UserID,
		Amount:                 in.Amount,
		GatewayID:              &gatewayID,
		TransactionID:          in.TransactionID,
		TransactionImage:       imagePath,
		TransactionPhoneNumber: in.TransactionPhoneNumber,
		CustomerName:           in.CustomerName,
		CustomerEmail:          in.CustomerEmail,
		CustomerPhone:          in.CustomerPhone,
		Status:                 model.PaymentPending,
	}
	if err := s.payments.WithTx(tx).Create(ctx, pay); err != nil {
		return fail("insert payment", err)
	}

	if err := tx.Commit().Error; err != nil {
		s.removeImage(imagePath)
		return nil, fmt.Errorf("%w: commit: %v", ErrReservationFailed, err)
	}

	s.publish(ctx, events.ReservationCreated, events.ReservationCreatedEvent{
		ReservationID: reservation.ID,
		PaymentID:     pay.ID,
		UserID:        in.UserID,
		RestaurantID:  reservation.RestaurantID,
		TableID:       table.ID,
		Amount:        in.Amount.StringFixed(2),
		Gateway:       gateway.Code,
		OccurredAt:    time.Now(),
	})

	result = &CreateReservationResult{Payment: pay}
	if stored, err := s.reservations.FindByID(ctx, reservation.ID); err == nil {
		result.Reservation = stored
	} else {
		reservation.Detail = detail
		reservation.Payments = []model.Payment{*pay}
		result.Reservation = reservation
	}

	if !gateway.Online {
		return result, nil
	}

	order, err := s.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		ReferenceID: strconv.FormatUint(uint64(reservation.ID), 10),
		Description: fmt.Sprintf("Table reservation #%d", reservation.ID),
		Amount:      in.Amount,
		Currency:    s.cfg.Currency,
		ReturnURL:   fmt.Sprintf("%s/api/payments/success?payment=%d", s.cfg.PublicURL, pay.ID),
		CancelURL:   s.cfg.PublicURL + "/api/payments/cancel",
	})
	if err != nil {
		s.log.Errorw("create remote order failed", "payment_id", pay.ID, "error", err)
		return result, fmt.Errorf("%w: %v", ErrGatewayOrder, err)
	}

	if err := s.payments.Updates(ctx, pay.ID, map[string]any{"gateway_reference": order.ID}); err != nil {
		s.log.Errorw("store gateway reference failed", "payment_id", pay.ID, "order_id", order.ID, "error", err)
	}
	pay.GatewayReference = order.ID
	result.RedirectURL = order.ApprovalURL
	return result, nil
}

func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.List(ctx)
}

// ByRestaurant returns ErrReservationNotFound when the restaurant has none.
// ByRestaurant lists a restaurant's reservations for an actor who manages it.
func (s *ReservationService) ByRestaurant(ctx context.Context, actor Actor, restaurantID uint) ([]model.Reservation, error) {
	if err := authorizeRestaurant(ctx, s.restaurants, actor, restaurantID); err != nil {
		return nil, err
	}
	out, err := s.reservations.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrReservationNotFound
	}
	return out, nil
}

// Get returns a reservation to the customer who made it or to an actor who
// manages its restaurant.
func (s *ReservationService) Get(ctx context.Context, actor Actor, id uint) (*model.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if res.UserID == actor.UserID {
		return res, nil
	}
	if err := authorizeRestaurant(ctx, s.restaurants, actor, res.RestaurantID); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	err := s.reservations.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrReservationNotFound
	}
	return err
}

var exportHeader = []any{
	"Reservation", "Date", "Table", "Amount", "Extra chairs", "Extra child chairs",
	"Customer", "Email", "Phone", "Payment status", "Created at",
}

// Export renders a restaurant's reservations as an xlsx workbook.
func (s *ReservationService) Export(ctx context.Context, actor Actor, restaurantID uint) ([]byte, error) {
	if err := authorizeRestaurant(ctx, s.restaurants, actor, restaurantID); err != nil {
		return nil, err
	}
	list, err := s.reservations.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range list {
		row := []any{r.ID, "", "", r.TotalPrice.StringFixed(2), 0, 0, "", "", "", "", r.CreatedAt.Format(time.RFC3339)}
		if d := r.Detail; d != nil {
			row[1] = d.ReservationDate.Format("2006-01-02 15:04")
			if d.Table != nil {
				row[2] = d.Table.Number
			}
			row[4] = d.NumberOfExtraChairs
			row[5] = d.NumberOfExtraChildChairs
		}
		if len(r.Payments) > 0 {
			p := r.Payments[len(r.Payments)-1]
			row[6], row[7], row[8], row[9] = p.CustomerName, p.CustomerEmail, p.CustomerPhone, string(p.Status)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReservationService) removeImage(relPath string) {
	if relPath == "" {
		return
	}
	if err := s.images.Remove(relPath); err != nil {
		s.log.Warnw("remove orphaned image failed", "path", relPath, "error", err)
	}
}

func (s *ReservationService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.log.Warnw("publish event failed", "routing_key", key, "error", err)
	}
}
