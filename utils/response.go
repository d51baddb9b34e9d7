package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured success envelope
func JSONResponse(c *gin.Context, status int, data any, message string) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// JSONError sends a structured failure envelope. The error text is sent verbatim.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

// AbortWithError is JSONError for middleware that must stop the handler chain
func AbortWithError(c *gin.Context, status int, err error, message string) {
	JSONError(c, status, err, message)
	c.Abort()
}
