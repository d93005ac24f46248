package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// PriceClient fetches BTC prices on demand.
type PriceClient interface {
	SpotPrice(ctx context.Context) (float64, error)
	PriceHistory(ctx context.Context, days int) ([]model.PricePoint, error)
}

// PriceHandler handles price-related requests
type PriceHandler struct {
	client PriceClient
	feed   PriceSource
}

// NewPriceHandler creates a new price handler. feed may be nil.
func NewPriceHandler(client PriceClient, feed PriceSource) *PriceHandler {
	return &PriceHandler{client: client, feed: feed}
}

// GetPrice handles GET /api/v1/price?history_days=N
func (h *PriceHandler) GetPrice(c *gin.Context) {
	days := 0
	if v := c.Query("history_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 365 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "history_days must be an integer in [0, 365]")
			return
		}
		days = n
	}

	ctx := c.Request.Context()
	resp := models.PriceResponse{}
	if h.feed != nil {
		if price, at, ok := h.feed.Latest(); ok {
			resp.PriceUSD, resp.UpdatedAt, resp.Source = price, at, "feed"
		}
	}
	if resp.Source == "" {
		price, err := h.client.SpotPrice(ctx)
		if err != nil {
			writeUpstreamError(c, err)
			return
		}
		resp.PriceUSD, resp.UpdatedAt, resp.Source = price, time.Now().UTC(), "coingecko"
	}

	if days > 0 {
		history, err := h.client.PriceHistory(ctx, days)
		if err != nil {
			writeUpstreamError(c, err)
			return
		}
		resp.History = history
	}
	c.JSON(http.StatusOK, resp)
}
