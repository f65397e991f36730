package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dinein/model"
	"dinein/service"
	"dinein/storage"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive numeric path parameter. It answers 400 itself
// when the value is invalid.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.SendResponse(c, http.StatusBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// actor returns the authenticated user. Routes that call it sit behind
// AuthMiddleware, so a missing identity is answered with 401.
func actor(c *gin.Context) (service.Actor, bool) {
	id, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.SendResponse(c, http.StatusUnauthorized, "Unauthorized access", nil)
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Role: model.UserRole(role)}, true
}

// bindFailed answers a binding error: 422 with field messages for
// validation failures, 400 for malformed bodies.
func bindFailed(c *gin.Context, err error) {
	if fields, ok := utils.ValidationErrors(err); ok {
		utils.SendResponse(c, http.StatusUnprocessableEntity, "Validation failed", fields)
		return
	}
	utils.SendResponse(c, http.StatusBadRequest, "Malformed request body", nil)
}

func invalidField(c *gin.Context, field, msg string) {
	utils.SendResponse(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{field: msg})
}

// respondError maps service errors to status codes. Unknown errors are
// attached to the context for the request logger and answered with 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrLocationNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrItemNotFound):
		utils.SendResponse(c, http.StatusNotFound, capitalize(rootMessage(err)), nil)
	case errors.Is(err, service.ErrInvalidGateway):
		invalidField(c, "gateway_id", "is invalid")
	case errors.Is(err, service.ErrInvalidAmount):
		invalidField(c, "amount", "must be greater than zero")
	case errors.Is(err, service.ErrInvalidStatus):
		invalidField(c, "status", "is invalid")
	case errors.Is(err, service.ErrSlugTaken):
		invalidField(c, "slug", "has already been taken")
	case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrInvalidFileType):
		invalidField(c, "image", err.Error())
	case errors.Is(err, service.ErrReservationFailed):
		c.Error(err)
		utils.SendResponse(c, http.StatusBadRequest, "Failed to create reservation", nil)
	case errors.Is(err, service.ErrGatewayOrder):
		c.Error(err)
		utils.SendResponse(c, http.StatusBadRequest, "Failed to create payment order", nil)
	case errors.Is(err, service.ErrPaymentNotCaptured):
		utils.SendResponse(c, http.StatusBadRequest, "Payment failed", nil)
	case errors.Is(err, service.ErrInvalidSheet):
		utils.SendResponse(c, http.StatusBadRequest, "Excel must have at least one row of data", nil)
	case errors.Is(err, service.ErrGatewayUnavailable):
		utils.SendResponse(c, http.StatusServiceUnavailable, "Online payments are not available", nil)
	case errors.Is(err, service.ErrForbidden):
		utils.SendResponse(c, http.StatusForbidden, "You don't have permission to access this restaurant", nil)
	case errors.Is(err, service.ErrEmailTaken):
		utils.SendResponse(c, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
	default:
		c.Error(err)
		utils.SendResponse(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// rootMessage returns the text of the sentinel err wraps, without detail.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
