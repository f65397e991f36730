package utils

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

// AuthMiddleware requires a valid bearer access token. When roles are given
// the token's role must be one of them.
func AuthMiddleware(tokens *TokenManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			SendResponse(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			SendResponse(c, http.StatusUnauthorized, "invalid token format", nil)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token has expired"
			}
			SendResponse(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			SendResponse(c, http.StatusForbidden, "Forbidden: insufficient role", nil)
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (uint, string, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return 0, "", false
	}
	uid, ok := id.(uint)
	if !ok {
		return 0, "", false
	}
	role := c.GetString(ctxUserRole)
	return uid, role, true
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Errorw("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warnw("request", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}

// Recovery turns panics into a 500 envelope and logs the cause.
func Recovery(log *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Errorw("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		SendResponse(c, http.StatusInternalServerError, "Internal server error", nil)
		c.Abort()
	})
}
