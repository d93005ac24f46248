package model

// YearlyRecord is one simulated year of one strategy.
// This is the primary artifact for "what happened" in a simulation.
//
// IRRPercent, PaybackMonths, PPI and AnnualProfitUSD are suite-level values
// back-filled after the horizon completes; they are nil for HODL and whenever
// the metric is undefined.
type YearlyRecord struct {
	Strategy     Strategy `json:"strategy"`
	Year         int      `json:"year"`
	CalendarYear int      `json:"calendar_year"`

	BTCPriceUSD    float64 `json:"btc_price_usd"`
	BlockRewardBTC float64 `json:"block_reward_btc"`

	MinerCount         int     `json:"miner_count"`
	FleetHashrateTHs   float64 `json:"fleet_hashrate_ths"`
	NetworkHashrateTHs float64 `json:"network_hashrate_ths"`
	LoanAmountUSD      float64 `json:"loan_amount_usd"`

	BTCHeld       float64 `json:"btc_held"`
	BTCMined      float64 `json:"btc_mined"`
	DailyBTCMined float64 `json:"daily_btc_mined"`

	EnergyCostUSD           float64 `json:"energy_cost_usd"`
	CumulativeEnergyCostUSD float64 `json:"cumulative_energy_cost_usd"`

	HoldingsValueUSD float64  `json:"holdings_value_usd"`
	ROIUSD           float64  `json:"roi_usd"`
	CashflowUSD      float64  `json:"cashflow_usd"`
	CAGRPercent      *float64 `json:"cagr_percent"`

	IRRPercent      *float64 `json:"irr_percent"`
	PaybackMonths   *int     `json:"cpbm_months"`
	PPI             *float64 `json:"ppi"`
	AnnualProfitUSD *float64 `json:"annual_profit_usd"`
}
