package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-core/models"
	"retail-core/retail"
)

func statusFor(kind retail.Kind) int {
	switch kind {
	case retail.KindNotFound:
		return http.StatusNotFound
	case retail.KindInsufficientStock:
		return http.StatusConflict
	case retail.KindValidation, retail.KindEmptyCart, retail.KindNullReference:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse with the status of its kind.
func respondError(c *gin.Context, message string, err error) {
	kind := retail.KindOf(err)
	c.JSON(statusFor(kind), models.ErrorResponse{
		Error:   kind.String(),
		Message: message,
		Details: err.Error(),
	})
}

func respondInvalidInput(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "INVALID_INPUT",
		Message: message,
		Details: details,
	})
}
