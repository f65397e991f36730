package controller

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"dinein/model"
	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReservationService is the part of service.ReservationService the handlers use.
type ReservationService interface {
	Create(ctx context.Context, in service.CreateReservationInput) (*service.CreateReservationResult, error)
	List(ctx context.Context) ([]model.Reservation, error)
	ByRestaurant(ctx context.Context, actor service.Actor, restaurantID uint) ([]model.Reservation, error)
	Get(ctx context.Context, actor service.Actor, id uint) (*model.Reservation, error)
	Delete(ctx context.Context, id uint) error
	Export(ctx context.Context, actor service.Actor, restaurantID uint) ([]byte, error)
}

type ReservationController struct {
	reservations ReservationService
}

func NewReservationController(s ReservationService) *ReservationController {
	return &ReservationController{reservations: s}
}

type createReservationRequest struct {
	TableID                  uint            `json:"table_id" form:"table_id" binding:"required"`
	ReservationDate          string          `json:"reservation_date" form:"reservation_date" binding:"required"`
	Amount                   decimal.Decimal `json:"amount" form:"amount"`
	NumberOfExtraChairs      int             `json:"number_of_extra_chairs" form:"number_of_extra_chairs" binding:"gte=0"`
	NumberOfExtraChildChairs int             `json:"number_of_extra_childs_chairs" form:"number_of_extra_childs_chairs" binding:"gte=0"`
	Notes                    string          `json:"notes" form:"notes"`
	TermsAndConditions       bool            `json:"terms_and_conditions" form:"terms_and_conditions" binding:"eq=true"`
	GatewayID                uint            `json:"gateway_id" form:"gateway_id" binding:"required"`
	CustomerName             string          `json:"customer_name" form:"customer_name" binding:"required,max=255"`
	CustomerEmail            string          `json:"customer_email" form:"customer_email" binding:"required,email"`
	CustomerPhone            string          `json:"customer_phone" form:"customer_phone"`
	TransactionID            string          `json:"transaction_id" form:"transaction_id"`
	TransactionPhoneNumber   string          `json:"transaction_phone_number" form:"transaction_phone_number"`
}

var reservationDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseReservationDate(s string) (time.Time, error) {
	for _, layout := range reservationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Create handles POST /api/reservations. Online gateways answer 200 with the
// checkout URL as data; other gateways answer 201 with the reservation.
func (ctrl *ReservationController) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req createReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	date, err := parseReservationDate(strings.TrimSpace(req.ReservationDate))
	if err != nil {
		invalidField(c, "reservation_date", "must be a valid date")
		return
	}

	var image *multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if file, err := c.FormFile("transaction_image"); err == nil {
			image = file
		} else if err != http.ErrMissingFile {
			utils.SendResponse(c, http.StatusBadRequest, "Failed to read uploaded file", nil)
			return
		}
	}

	res, err := ctrl.reservations.Create(c.Request.Context(), service.CreateReservationInput{
		UserID:                   user.UserID,
		TableID:                  req.TableID,
		ReservationDate:          date,
		Amount:                   req.Amount,
		NumberOfExtraChairs:      req.NumberOfExtraChairs,
		NumberOfExtraChildChairs: req.NumberOfExtraChildChairs,
		Notes:                    req.Notes,
		TermsAndConditions:       req.TermsAndConditions,
		GatewayID:                req.GatewayID,
		CustomerName:             req.CustomerName,
		CustomerEmail:            req.CustomerEmail,
		CustomerPhone:            req.CustomerPhone,
		TransactionID:            req.TransactionID,
		TransactionPhoneNumber:   req.TransactionPhoneNumber,
		TransactionImage:         image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if res.RedirectURL != "" {
		utils.SendResponse(c, http.StatusOK, "Redirect to complete payment", res.RedirectURL)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Reservation created successfully", res.Reservation)
}

func (ctrl *ReservationController) List(c *gin.Context) {
	list, err := ctrl.reservations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched reservations successfully", list)
}

func (ctrl *ReservationController) ByRestaurant(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := ctrl.reservations.ByRestaurant(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched reservations successfully", list)
}

// Show answers the customer who booked the reservation or a manager of its
// restaurant.
func (ctrl *ReservationController) Show(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := ctrl.reservations.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched reservation successfully", res)
}

func (ctrl *ReservationController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.reservations.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (ctrl *ReservationController) Export(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	data, err := ctrl.reservations.Export(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="reservations-%d.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}
