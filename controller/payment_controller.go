package controller

import (
	"context"
	"net/http"
	"strconv"

	"dinein/model"
	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type PaymentService interface {
	Get(ctx context.Context, actor service.Actor, id uint) (*model.Payment, error)
	Gateways(ctx context.Context) ([]model.PaymentGateway, error)
	HandleSuccess(ctx context.Context, paymentID uint, token string) (*model.Payment, error)
	UpdateStatus(ctx context.Context, actor service.Actor, id uint, status model.PaymentStatus) (*model.Payment, error)
}

type PaymentController struct {
	payments PaymentService
}

func NewPaymentController(s PaymentService) *PaymentController {
	return &PaymentController{payments: s}
}

// Success is the provider's return URL: /api/payments/success?payment=<id>&token=<order>.
func (ctrl *PaymentController) Success(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("payment"), 10, 32)
	if err != nil || id == 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid payment", nil)
		return
	}

	p, err := ctrl.payments.HandleSuccess(c.Request.Context(), uint(id), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Payment completed successfully", p)
}

// Cancel is the provider's cancel URL.
func (ctrl *PaymentController) Cancel(c *gin.Context) {
	utils.SendResponse(c, http.StatusUnauthorized, "Payment cancelled", nil)
}

type updateStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,payment_status"`
}

// UpdateStatus handles PATCH /api/payments/:id/status.
func (ctrl *PaymentController) UpdateStatus(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := ctrl.payments.UpdateStatus(c.Request.Context(), user, id, model.PaymentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Payment status updated successfully", p)
}

func (ctrl *PaymentController) Show(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := ctrl.payments.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched payment successfully", p)
}

func (ctrl *PaymentController) Gateways(c *gin.Context) {
	list, err := ctrl.payments.Gateways(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched payment gateways successfully", list)
}
