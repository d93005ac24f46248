package handlers

import (
	"errors"
	"net/http"

	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/model"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeSimulationError maps parameter validation failures to 400 and
// everything else to 500.
func writeSimulationError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidParameter) {
		writeError(c, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err.Error())
}

// writeUpstreamError maps price API errors onto our status codes.
func writeUpstreamError(c *gin.Context, err error) {
	var apiErr *data.APIError
	if errors.As(err, &apiErr) {
		statusCode := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: map[string]interface{}{
					"status_code": apiErr.StatusCode,
					"retry_after": apiErr.RetryAfter,
				},
			},
		})
		return
	}
	writeError(c, http.StatusBadGateway, "PRICE_FETCH_ERROR", err.Error())
}
