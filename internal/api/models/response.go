package models

import (
	"time"

	"btc-mining-sim/internal/model"
)

// SimulationResponse represents the result of a suite or single-strategy run
type SimulationResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	ExpiresAt   time.Time         `json:"expires_at"`
	BTCPriceUSD float64           `json:"btc_price_usd"`
	PriceSource string            `json:"price_source"` // "input", "live", "default"
	Strategies  []StrategySummary `json:"strategies"`
}

// StrategySummary contains the final-year figures of one strategy
type StrategySummary struct {
	Strategy              string  `json:"strategy"`
	Years                 int     `json:"years"`
	MinerCount            int     `json:"miner_count"`
	LoanAmountUSD         float64 `json:"loan_amount_usd"`
	FinalBTCHeld          float64 `json:"final_btc_held"`
	FinalBTCPriceUSD      float64 `json:"final_btc_price_usd"`
	FinalHoldingsValueUSD float64 `json:"final_holdings_value_usd"`
	TotalEnergyCostUSD    float64 `json:"total_energy_cost_usd"`
	FinalROIUSD           float64 `json:"final_roi_usd"`

	// Undefined metrics are null
	CAGRPercent     *float64 `json:"cagr_percent"`
	IRRPercent      *float64 `json:"irr_percent"`
	PaybackMonths   *int     `json:"cpbm_months"`
	PPI             *float64 `json:"ppi"`
	AnnualProfitUSD *float64 `json:"annual_profit_usd"`

	Records []model.YearlyRecord `json:"records,omitempty"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Mines       bool   `json:"mines"`
}

// MinerInfo represents one row of the miner table
type MinerInfo struct {
	model.MinerSpec
	EfficiencyJPerTH float64 `json:"efficiency_j_per_th"`
}

// RankResponse represents the response from ranking miners
type RankResponse struct {
	BTCPriceUSD float64        `json:"btc_price_usd"`
	Difficulty  float64        `json:"difficulty"`
	Rankings    []MinerRanking `json:"rankings"`
}

// MinerRanking represents one ranked miner
type MinerRanking struct {
	Rank                int      `json:"rank"`
	Model               string   `json:"model"`
	Manufacturer        string   `json:"manufacturer,omitempty"`
	CostUSD             float64  `json:"cost"`
	HashrateTHs         float64  `json:"hashrate_ths"`
	PowerKW             float64  `json:"power_kw"`
	EfficiencyJPerTH    float64  `json:"efficiency_j_per_th"`
	DailyBTCMined       float64  `json:"daily_btc_mined"`
	DailyRevenueUSD     float64  `json:"daily_revenue_usd"`
	DailyElectricityUSD float64  `json:"daily_electricity_usd"`
	DailyProfitUSD      float64  `json:"daily_profit_usd"`
	MarginPercent       *float64 `json:"margin_percent"`
	BreakEvenMonths     *float64 `json:"break_even_months"`
	OverallScore        float64  `json:"overall_score"`
}

// PriceResponse represents the current BTC price and optional history
type PriceResponse struct {
	PriceUSD  float64            `json:"price_usd"`
	Source    string             `json:"source"` // "feed", "coingecko"
	UpdatedAt time.Time          `json:"updated_at"`
	History   []model.PricePoint `json:"history,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
