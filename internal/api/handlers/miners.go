package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"btc-mining-sim/internal/analysis"
	"btc-mining-sim/internal/api/models"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// MinerHandler serves the miner table and its profitability ranking
type MinerHandler struct {
	store     *data.MinerStore
	base      model.SimulationParameters
	weights   analysis.Weights
	hashprice *float64
	prices    PriceSource
	now       func() time.Time
}

// NewMinerHandler creates a new miner handler. base supplies the default
// market for ranking; hashprice may be nil.
func NewMinerHandler(store *data.MinerStore, base model.SimulationParameters, weights analysis.Weights, hashprice *float64, prices PriceSource) *MinerHandler {
	log.Printf("MinerHandler: Using miner file: %s", store.Path())
	return &MinerHandler{
		store:     store,
		base:      base,
		weights:   weights,
		hashprice: hashprice,
		prices:    prices,
		now:       time.Now,
	}
}

// ListMiners handles GET /api/v1/miners
func (h *MinerHandler) ListMiners(c *gin.Context) {
	specs := h.store.All()
	miners := make([]models.MinerInfo, 0, len(specs))
	for _, m := range specs {
		miners = append(miners, models.MinerInfo{MinerSpec: m, EfficiencyJPerTH: m.EfficiencyJPerTH()})
	}
	c.JSON(http.StatusOK, gin.H{"miners": miners})
}

// UpsertMiner handles POST /api/v1/miners
func (h *MinerHandler) UpsertMiner(c *gin.Context) {
	var req models.MinerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	spec := model.MinerSpec{
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		CostUSD:      req.Cost,
		HashrateTHs:  req.HashrateTHs,
		PowerKW:      req.PowerKW,
		ReleaseYear:  req.ReleaseYear,
	}
	added, err := h.store.Upsert(spec)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_MINER", err.Error())
		return
	}
	if err := h.store.Save(); err != nil {
		log.Printf("MinerHandler: Failed to save miner file: %v", err)
		writeError(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error())
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, models.MinerInfo{MinerSpec: spec, EfficiencyJPerTH: spec.EfficiencyJPerTH()})
}

// RankMiners handles GET /api/v1/miners/rank
func (h *MinerHandler) RankMiners(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	params := h.base
	if h.prices != nil {
		if price, _, ok := h.prices.Latest(); ok {
			params.BTCPriceUSD = price
		}
	}
	if req.BTCPrice > 0 {
		params.BTCPriceUSD = req.BTCPrice
	}
	if req.ElectricityRate > 0 {
		params.ElectricityRateUSDPerKWh = req.ElectricityRate
	}
	if req.Difficulty > 0 {
		d := req.Difficulty
		params.Difficulty = &d
	}
	if params.BTCPriceUSD <= 0 {
		writeSimulationError(c, fmt.Errorf("%w: btc_price must be > 0", model.ErrInvalidParameter))
		return
	}

	market := analysis.MarketFor(params)
	market.HashpriceUSDPerTHDay = h.hashprice
	if req.Hashprice != nil {
		market.HashpriceUSDPerTHDay = req.Hashprice
	}

	ranked := analysis.RankMiners(analysis.ComputeAll(h.store.All(), market), h.weights, h.now().Year())
	if req.Limit > 0 && req.Limit < len(ranked) {
		ranked = ranked[:req.Limit]
	}

	rankings := make([]models.MinerRanking, 0, len(ranked))
	for _, r := range ranked {
		rankings = append(rankings, models.MinerRanking{
			Rank:                r.Rank,
			Model:               r.Model,
			Manufacturer:        r.Manufacturer,
			CostUSD:             r.CostUSD,
			HashrateTHs:         r.HashrateTHs,
			PowerKW:             r.PowerKW,
			EfficiencyJPerTH:    r.EfficiencyJPerTH,
			DailyBTCMined:       r.DailyBTCMined,
			DailyRevenueUSD:     r.DailyRevenueUSD,
			DailyElectricityUSD: r.DailyElectricityUSD,
			DailyProfitUSD:      r.DailyProfitUSD,
			MarginPercent:       r.MarginPercent,
			BreakEvenMonths:     r.BreakEvenMonths,
			OverallScore:        r.OverallScore,
		})
	}

	c.JSON(http.StatusOK, models.RankResponse{
		BTCPriceUSD: market.BTCPriceUSD,
		Difficulty:  market.Difficulty,
		Rankings:    rankings,
	})
}
