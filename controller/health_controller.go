package controller

import (
	"net/http"

	"dinein/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health reports whether the database answers a ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.Error(err)
			utils.SendResponse(c, http.StatusServiceUnavailable, "Database unavailable", gin.H{"status": "unhealthy"})
			return
		}
		utils.SendResponse(c, http.StatusOK, "OK", gin.H{"status": "healthy"})
	}
}
