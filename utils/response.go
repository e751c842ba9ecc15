package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// RespondError answers with the mapped status and logs the failure at a level matching it
func RespondError(c *gin.Context, handlerName string, status int, message string, err error, fields map[string]any) {
	JSONError(c, status, err, message)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= 500 {
		Error(handlerName+": "+message, fields)
		return
	}
	Warn(handlerName+": "+message, fields)
}
