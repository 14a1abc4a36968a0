package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-admin/failure"
	"hotel-admin/logger"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// RespondError writes err as {success:false, message} with the status its Failure carries.
// Server-side errors are logged with their cause; the client only sees the message.
func RespondError(c *gin.Context, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}
	JSONError(c, code, failure.GetMessage(err))
}
