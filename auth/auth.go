package auth

import (
	"context"
	"errors"
	"net/http"

	"dinein/model"
	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*utils.TokenPair, error)
	Refresh(refreshToken string) (*utils.TokenPair, error)
}

type Handler struct {
	auth Service
}

func NewHandler(s Service) *Handler {
	return &Handler{auth: s}
}

func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.SendResponse(c, http.StatusConflict, "Email already registered", nil)
			return
		}
		c.Error(err)
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) Login(c *gin.Context) {
	type Request struct {
		Email    string `json:"email" form:"email" binding:"required,email"`
		Password string `json:"password" form:"password" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.SendResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		c.Error(err)
		utils.SendResponse(c, http.StatusInternalServerError, "Failed to generate tokens", nil)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Logged in successfully", tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	type Request struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		utils.SendResponse(c, http.StatusUnauthorized, "Refresh token is required", nil)
		return
	}

	tokens, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		utils.SendResponse(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Tokens refreshed successfully", tokens)
}

func bindFailed(c *gin.Context, err error) {
	if fields, ok := utils.ValidationErrors(err); ok {
		utils.SendResponse(c, http.StatusUnprocessableEntity, "Validation failed", fields)
		return
	}
	utils.SendResponse(c, http.StatusBadRequest, "Malformed request body", nil)
}
