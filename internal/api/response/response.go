package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the fixed response shape of the API: {isSuccess, message, data?}
type Envelope struct {
	IsSuccess bool        `json:"isSuccess"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
}

// Success writes a success envelope. A nil data omits the data field.
func Success(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{
		IsSuccess: true,
		Message:   message,
		Data:      data,
	})
}

// Error writes a failure envelope
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		IsSuccess: false,
		Message:   message,
	})
}
