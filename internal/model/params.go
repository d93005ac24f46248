package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every parameter validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// FeeMode selects how DailyNetworkFeesBTC enters the difficulty-based yield formula.
type FeeMode string

const (
	// FeePerDay spreads the daily fee total over the blocks of a day.
	FeePerDay FeeMode = "per_day"
	// FeePerBlock adds the value to every block's reward as-is.
	FeePerBlock FeeMode = "per_block"
)

const (
	DefaultUptime        = 0.95
	DefaultStartYear     = 2026
	DefaultFeesBTC       = 0.025
	GenesisBlockReward   = 50.0
	FirstHalvingYear     = 2012
	HalvingIntervalYears = 4
	MaxHorizonYears      = 40
)

// SimulationParameters defines one simulator run.
// Units:
// - USD amounts: dollars
// - ElectricityRateUSDPerKWh: $/kWh
// - MinerHashrateTHs: TH/s per unit, MinerPowerKW: kW per unit
// - NetworkHashrateEHs: EH/s at the start of the run
// - BTCCAGRPercent: expected annual price growth, percent
// - Difficulty: raw network difficulty; nil selects the hashrate-share formula
// - UptimeFraction: 0..1
type SimulationParameters struct {
	Strategy Strategy

	InitialInvestmentUSD     float64
	BTCPriceUSD              float64
	ElectricityRateUSDPerKWh float64
	HorizonYears             int

	MinerUnitCostUSD float64
	MinerHashrateTHs float64
	MinerPowerKW     float64

	NetworkHashrateEHs  float64
	BTCCAGRPercent      float64
	StartCalendarYear   int
	Difficulty          *float64
	DailyNetworkFeesBTC float64
	FeeMode             FeeMode
	UptimeFraction      float64
	BaseBlockRewardBTC  float64
}

// DefaultParameters returns the dashboard defaults. Callers overlay their own values.
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		InitialInvestmentUSD:     100_000,
		BTCPriceUSD:              100_000,
		ElectricityRateUSDPerKWh: 0.01,
		HorizonYears:             30,
		MinerUnitCostUSD:         1000,
		MinerHashrateTHs:         100,
		MinerPowerKW:             3,
		NetworkHashrateEHs:       1000,
		BTCCAGRPercent:           15,
		StartCalendarYear:        DefaultStartYear,
		DailyNetworkFeesBTC:      DefaultFeesBTC,
		FeeMode:                  FeePerDay,
		UptimeFraction:           DefaultUptime,
	}
}

// UsesDifficulty reports whether the difficulty-based yield formula applies.
func (p SimulationParameters) UsesDifficulty() bool {
	return p.Difficulty != nil && *p.Difficulty > 0
}

// EffectiveBlockReward returns BaseBlockRewardBTC, or the subsidy of the
// halving epoch active at StartCalendarYear when no base reward is set.
func (p SimulationParameters) EffectiveBlockReward() float64 {
	if p.BaseBlockRewardBTC > 0 {
		return p.BaseBlockRewardBTC
	}
	return GenesisBlockReward / math.Pow(2, float64(HalvingsAt(p.StartCalendarYear)))
}

// HalvingsAt counts the halvings that have happened by the start of calendar year y.
func HalvingsAt(year int) int {
	if year < FirstHalvingYear {
		return 0
	}
	return (year-FirstHalvingYear)/HalvingIntervalYears + 1
}

func (p SimulationParameters) Validate() error {
	if _, err := ParseStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if p.HorizonYears < 1 || p.HorizonYears > MaxHorizonYears {
		return invalid("horizon_years must be in [1, %d], got %d", MaxHorizonYears, p.HorizonYears)
	}
	for name, v := range map[string]float64{
		"initial_investment":   p.InitialInvestmentUSD,
		"btc_price":            p.BTCPriceUSD,
		"electricity_rate":     p.ElectricityRateUSDPerKWh,
		"miner_cost":           p.MinerUnitCostUSD,
		"miner_hashrate_ths":   p.MinerHashrateTHs,
		"miner_power_kw":       p.MinerPowerKW,
		"network_hashrate_ehs": p.NetworkHashrateEHs,
		"btc_cagr":             p.BTCCAGRPercent,
		"fees_btc":             p.DailyNetworkFeesBTC,
		"block_reward":         p.BaseBlockRewardBTC,
		"uptime":               p.UptimeFraction,
	} {
		if !finite(v) {
			return invalid("%s must be finite, got %v", name, v)
		}
	}
	if p.Difficulty != nil && !finite(*p.Difficulty) {
		return invalid("difficulty must be finite, got %v", *p.Difficulty)
	}
	if p.BTCCAGRPercent <= -100 {
		return invalid("btc_cagr must be > -100, got %v", p.BTCCAGRPercent)
	}
	if !finite(p.InitialInvestmentUSD) || p.InitialInvestmentUSD < 0 {
		return invalid("initial_investment must be >= 0")
	}
	if !finite(p.BTCPriceUSD) || p.BTCPriceUSD <= 0 {
		return invalid("btc_price must be > 0")
	}
	if !finite(p.MinerUnitCostUSD) || p.MinerUnitCostUSD <= 0 {
		return invalid("miner_cost must be > 0")
	}
	if p.ElectricityRateUSDPerKWh < 0 {
		return invalid("electricity_rate must be >= 0")
	}
	if p.MinerHashrateTHs < 0 || p.MinerPowerKW < 0 {
		return invalid("miner_hashrate_ths and miner_power_kw must be >= 0")
	}
	if p.UptimeFraction < 0 || p.UptimeFraction > 1 {
		return invalid("uptime must be in [0, 1]")
	}
	if p.DailyNetworkFeesBTC < 0 {
		return invalid("fees_btc must be >= 0")
	}
	if p.BaseBlockRewardBTC < 0 {
		return invalid("block_reward must be >= 0")
	}
	if p.Difficulty != nil && *p.Difficulty < 0 {
		return invalid("difficulty must be > 0 when set")
	}
	if p.UsesDifficulty() {
		if p.NetworkHashrateEHs < 0 {
			return invalid("network_hashrate_ehs must be >= 0")
		}
	} else if !finite(p.NetworkHashrateEHs) || p.NetworkHashrateEHs <= 0 {
		return invalid("network_hashrate_ehs must be > 0 when difficulty is not set")
	}
	switch p.FeeMode {
	case "", FeePerDay, FeePerBlock:
	default:
		return invalid("fee_mode must be %q or %q, got %q", FeePerDay, FeePerBlock, p.FeeMode)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
