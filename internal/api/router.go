// Package api wires the HTTP handlers into a gin engine.
package api

import (
	"net/http"
	"time"

	"btc-mining-sim/internal/analysis"
	"btc-mining-sim/internal/api/handlers"
	"btc-mining-sim/internal/api/middleware"
	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/observability"
	"btc-mining-sim/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// Deps are the shared services behind the API.
type Deps struct {
	Base        model.SimulationParameters
	Miners      *data.MinerStore
	Weights     analysis.Weights
	Hashprice   *float64
	PriceClient handlers.PriceClient
	Feed        *scheduler.PriceFeed
	Metrics     *observability.Metrics
	ResultTTL   time.Duration
}

// NewRouter builds the engine. The returned func releases handler resources.
func NewRouter(d Deps) (*gin.Engine, func()) {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	simulationHandler := handlers.NewSimulationHandler(d.Base, d.Feed, d.Metrics, d.ResultTTL)
	strategyHandler := handlers.NewStrategyHandler()
	minerHandler := handlers.NewMinerHandler(d.Miners, d.Base, d.Weights, d.Hashprice, d.Feed)
	priceHandler := handlers.NewPriceHandler(d.PriceClient, d.Feed)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			_, updatedAt, ok := d.Feed.Latest()
			c.JSON(http.StatusOK, gin.H{
				"status":           "ok",
				"live_price":       ok,
				"price_updated_at": updatedAt,
			})
		})

		api.POST("/simulate", simulationHandler.RunSuite)
		api.POST("/simulate/:strategy", simulationHandler.RunStrategy)
		api.GET("/simulations/:id", simulationHandler.GetSimulation)

		api.GET("/strategies", strategyHandler.ListStrategies)

		api.GET("/miners", minerHandler.ListMiners)
		api.POST("/miners", minerHandler.UpsertMiner)
		api.GET("/miners/rank", minerHandler.RankMiners)

		api.GET("/price", priceHandler.GetPrice)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	})

	return router, simulationHandler.Close
}
