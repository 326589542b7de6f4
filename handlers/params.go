package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// positiveIDParam reads a positive integer path parameter, answering 400 when
// it is malformed.
func positiveIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondInvalidInput(c, "Invalid "+label, label+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// rateQuery reads the discount rate query parameter.
func rateQuery(c *gin.Context) (float64, bool) {
	rate, err := strconv.ParseFloat(c.Query("rate"), 64)
	if err != nil {
		respondInvalidInput(c, "Invalid discount rate", "rate must be a number between 0.0 and 1.0")
		return 0, false
	}
	return rate, true
}
