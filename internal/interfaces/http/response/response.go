package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "refpool.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error onto its HTTP status and sends the error body.
// Unknown errors surface as 500 without leaking internals.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
		return
	}

	status := domainerrors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
