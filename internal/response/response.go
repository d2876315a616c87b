package response

import (
	"url-shortener-api/internal/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the "error" member of a failed response.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// Success writes {"success": true, "data": data}.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error translates err into its status and envelope and aborts the chain.
// The original error is attached to the context so the request logger can
// record causes that are hidden from the client.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, ErrorEnvelope{
		Success: false,
		Error: ErrorBody{
			Message: appErr.Message,
			Code:    appErr.Code,
		},
	})
}
