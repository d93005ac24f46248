package models

// SimulateRequest represents the request body for POST /api/v1/simulate and
// POST /api/v1/simulate/:strategy.
//
// Inputs uses the simulator input keys (initial_investment, btc_price,
// electricity_rate, years, miner_cost, miner_hashrate_ths, miner_power_kw,
// network_hashrate_ehs, btc_cagr, difficulty, fees_btc, fee_mode, start_year,
// block_reward, uptime). Unknown keys are ignored. Missing keys use server defaults.
type SimulateRequest struct {
	Inputs         map[string]any `json:"inputs"`
	IncludeRecords bool           `json:"include_records,omitempty"` // default: false
}

// RankRequest represents the query for GET /api/v1/miners/rank.
// Zero values fall back to the server scenario and live price.
type RankRequest struct {
	BTCPrice        float64  `form:"btc_price"`
	ElectricityRate float64  `form:"electricity_rate"`
	Difficulty      float64  `form:"difficulty"`
	Hashprice       *float64 `form:"hashprice"` // USD per TH/s per day
	Limit           int      `form:"limit"`     // default: all
}

// MinerRequest represents the body for POST /api/v1/miners.
type MinerRequest struct {
	Model        string  `json:"model" binding:"required"`
	Manufacturer string  `json:"manufacturer"`
	Cost         float64 `json:"cost" binding:"gt=0"`
	HashrateTHs  float64 `json:"hashrate_ths" binding:"gt=0"`
	PowerKW      float64 `json:"power_kw" binding:"gt=0"`
	ReleaseYear  int     `json:"release_year,omitempty"`
}
