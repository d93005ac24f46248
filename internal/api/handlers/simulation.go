package handlers

import (
	"log"
	"net/http"
	"time"

	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/observability"
	"btc-mining-sim/internal/simulation"
	"btc-mining-sim/internal/suite"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PriceSource supplies the latest live BTC price, if any.
type PriceSource interface {
	Latest() (price float64, updatedAt time.Time, ok bool)
}

type storedSimulation struct {
	id          string
	createdAt   time.Time
	expiresAt   time.Time
	btcPrice    float64
	priceSource string
	result      *suite.Result
}

// SimulationHandler runs strategy simulations and keeps results for retrieval
type SimulationHandler struct {
	runner  *suite.Runner
	base    model.SimulationParameters
	prices  PriceSource
	metrics *observability.Metrics
	results *data.Cache[*storedSimulation]
	ttl     time.Duration
}

// NewSimulationHandler creates a new simulation handler. base supplies the
// values for inputs a request leaves out; prices may be nil.
func NewSimulationHandler(base model.SimulationParameters, prices PriceSource, metrics *observability.Metrics, ttl time.Duration) *SimulationHandler {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SimulationHandler{
		runner:  suite.NewRunner(),
		base:    base,
		prices:  prices,
		metrics: metrics,
		results: data.NewCache[*storedSimulation](ttl),
		ttl:     ttl,
	}
}

// Close releases the result store.
func (h *SimulationHandler) Close() {
	h.results.Close()
}

// RunSuite handles POST /api/v1/simulate
func (h *SimulationHandler) RunSuite(c *gin.Context) {
	h.run(c, model.AllStrategies(), "suite")
}

// RunStrategy handles POST /api/v1/simulate/:strategy
func (h *SimulationHandler) RunStrategy(c *gin.Context) {
	s, err := model.ParseStrategy(c.Param("strategy"))
	if err != nil {
		writeError(c, http.StatusNotFound, "UNKNOWN_STRATEGY", err.Error())
		return
	}
	h.run(c, []model.Strategy{s}, "single")
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	stored, ok := h.results.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "simulation not found or expired")
		return
	}
	includeRecords := c.Query("include_records") == "true"
	c.JSON(http.StatusOK, buildSimulationResponse(stored, includeRecords))
}

func (h *SimulationHandler) run(c *gin.Context, strategies []model.Strategy, kind string) {
	var req models.SimulateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	inputs, priceSource := h.withLivePrice(req.Inputs)
	params, err := suite.FilterInputs(h.base, inputs)
	if err != nil {
		writeSimulationError(c, err)
		return
	}

	start := time.Now()
	result, err := h.runner.RunSet(strategies, params)
	h.metrics.ObserveSimulation(kind, time.Since(start))
	for _, s := range strategies {
		h.metrics.RecordSimulation(string(s), err)
	}
	if err != nil {
		log.Printf("SimulationHandler: run failed: %v", err)
		writeSimulationError(c, err)
		return
	}

	now := time.Now().UTC()
	stored := &storedSimulation{
		id:          uuid.NewString(),
		createdAt:   now,
		expiresAt:   now.Add(h.ttl),
		btcPrice:    params.BTCPriceUSD,
		priceSource: priceSource,
		result:      result,
	}
	h.results.Set(stored.id, stored)
	h.metrics.SetStoredResults(h.results.Len())

	log.Printf("SimulationHandler: %s run %s (%d strategies, %d years)", kind, stored.id, len(strategies), params.HorizonYears)
	c.JSON(http.StatusOK, buildSimulationResponse(stored, req.IncludeRecords))
}

// withLivePrice copies inputs and fills btc_price from the live feed when it
// is missing or zero.
func (h *SimulationHandler) withLivePrice(in map[string]any) (suite.Inputs, string) {
	out := make(suite.Inputs, len(in)+1)
	for k, v := range in {
		out[k] = v
	}

	if v, ok := out["btc_price"]; ok && v != nil && !isZero(v) {
		return out, "input"
	}
	if h.prices != nil {
		if price, _, ok := h.prices.Latest(); ok {
			out["btc_price"] = price
			return out, "live"
		}
	}
	return out, "default"
}

func isZero(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == 0
	case int:
		return n == 0
	case string:
		return n == "" || n == "0"
	}
	return false
}

func buildSimulationResponse(s *storedSimulation, includeRecords bool) models.SimulationResponse {
	out := models.SimulationResponse{
		ID:          s.id,
		Status:      "completed",
		CreatedAt:   s.createdAt,
		ExpiresAt:   s.expiresAt,
		BTCPriceUSD: s.btcPrice,
		PriceSource: s.priceSource,
		Strategies:  make([]models.StrategySummary, 0, len(s.result.Runs)),
	}
	for _, run := range s.result.Runs {
		out.Strategies = append(out.Strategies, buildStrategySummary(run, includeRecords))
	}
	return out
}

func buildStrategySummary(run *simulation.Result, includeRecords bool) models.StrategySummary {
	final := run.Final()
	summary := models.StrategySummary{
		Strategy:              string(run.Strategy),
		Years:                 len(run.Records),
		MinerCount:            run.Position.MinerCount,
		LoanAmountUSD:         run.Position.LoanAmountUSD,
		FinalBTCHeld:          final.BTCHeld,
		FinalBTCPriceUSD:      final.BTCPriceUSD,
		FinalHoldingsValueUSD: final.HoldingsValueUSD,
		TotalEnergyCostUSD:    final.CumulativeEnergyCostUSD,
		FinalROIUSD:           final.ROIUSD,
		CAGRPercent:           final.CAGRPercent,
	}
	if run.Summary != nil {
		summary.IRRPercent = run.Summary.IRRPercent
		summary.PaybackMonths = run.Summary.PaybackMonths
		summary.PPI = run.Summary.PPI
		summary.AnnualProfitUSD = run.Summary.AnnualProfitUSD
	}
	if includeRecords {
		summary.Records = run.Records
	}
	return summary
}
