package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenManager("test-secret", time.Minute, time.Hour)

	owner, err := tokens.GenerateTokens("owner", 7)
	if err != nil {
		t.Fatal(err)
	}
	customer, err := tokens.GenerateTokens("customer", 8)
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.GET("/owners", AuthMiddleware(tokens, "owner", "admin"), func(c *gin.Context) {
		id, role, ok := CurrentUser(c)
		if !ok {
			t.Error("CurrentUser() not set")
		}
		SendResponse(c, http.StatusOK, role, id)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Token " + owner.AccessToken, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + customer.AccessToken, wantStatus: http.StatusForbidden},
		{name: "refresh token", header: "Bearer " + owner.RefreshToken, wantStatus: http.StatusUnauthorized},
		{name: "owner", header: "Bearer " + owner.AccessToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/owners", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}

			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("envelope status_code = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && resp.Data != float64(7) {
				t.Errorf("data = %v, want user id 7", resp.Data)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	type payload struct {
		Status string `json:"status" binding:"required,payment_status"`
		Email  string `json:"email" binding:"required,email"`
	}

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var p payload
		err := c.ShouldBindJSON(&p)
		fields, ok := ValidationErrors(err)
		if !ok {
			t.Fatalf("ValidationErrors() ok = false for %v", err)
		}
		SendResponse(c, http.StatusUnprocessableEntity, "Validation failed", fields)
	})

	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"status":"paid","email":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data["status"] != "must be one of: pending success failed rejected cancelled" {
		t.Errorf("status message = %q", resp.Data["status"])
	}
	if resp.Data["email"] != "must be a valid email address" {
		t.Errorf("email message = %q", resp.Data["email"])
	}
}

func jsonBody(s string) *strings.Reader { return strings.NewReader(s) }
