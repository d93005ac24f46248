package handlers

import (
	"log"
	"net/http"

	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/model"

	"github.com/gin-gonic/gin"
)

var strategyDescriptions = map[model.Strategy]string{
	model.StrategyHODL:       "Buy BTC with the whole investment at the start price and hold it.",
	model.StrategyMinersOnly: "Spend the whole investment on miners and hold every mined coin.",
	model.StrategyBTCLoan:    "Buy BTC with the whole investment and borrow 10% of it to buy miners. The loan is never repaid.",
	model.StrategyHybrid:     "Put half into whole BTC and the other half, plus a 10% loan against it, into miners.",
}

// StrategyHandler handles strategy-related requests
type StrategyHandler struct{}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := make([]models.StrategyInfo, 0, len(model.AllStrategies()))
	for _, s := range model.AllStrategies() {
		strategies = append(strategies, models.StrategyInfo{
			Name:        string(s),
			Slug:        s.Slug(),
			Description: strategyDescriptions[s],
			Mines:       s.Mines(),
		})
	}

	log.Printf("StrategyHandler: Returning %d strategies", len(strategies))
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
