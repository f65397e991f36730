package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func SendResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{StatusCode: status, Message: message, Data: data})
}
