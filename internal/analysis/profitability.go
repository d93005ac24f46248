package analysis

import (
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/simulation"
)

// Market is the network and price context a miner is evaluated in.
//
// When HashpriceUSDPerTHDay is set, revenue is hashrate * hashprice.
// Otherwise revenue is derived from Difficulty, BlockRewardBTC and FeesBTC
// (per-block addend) priced at BTCPriceUSD.
type Market struct {
	BTCPriceUSD              float64
	ElectricityRateUSDPerKWh float64
	Difficulty               float64
	BlockRewardBTC           float64
	FeesBTC                  float64
	HashpriceUSDPerTHDay     *float64
	UptimeFraction           float64
}

// MarketFor derives the start-of-run market from scenario parameters.
// Without an explicit difficulty, the one implied by the network hashrate is used.
func MarketFor(p model.SimulationParameters) Market {
	difficulty := simulation.ImpliedDifficulty(p.NetworkHashrateEHs * simulation.THsPerEHs)
	if p.UsesDifficulty() {
		difficulty = *p.Difficulty
	}
	return Market{
		BTCPriceUSD:              p.BTCPriceUSD,
		ElectricityRateUSDPerKWh: p.ElectricityRateUSDPerKWh,
		Difficulty:               difficulty,
		BlockRewardBTC:           p.EffectiveBlockReward(),
		FeesBTC:                  simulation.FeePerBlock(p),
		UptimeFraction:           p.UptimeFraction,
	}
}

// Profitability is a per-unit daily economics summary for one miner model.
type Profitability struct {
	model.MinerSpec

	EfficiencyJPerTH float64

	DailyBTCMined       float64
	DailyRevenueUSD     float64
	DailyElectricityUSD float64
	DailyProfitUSD      float64
	AnnualProfitUSD     float64

	// MarginPercent is profit over revenue; nil when revenue is zero.
	MarginPercent *float64
	// BreakEvenMonths is nil unless daily profit is positive.
	BreakEvenMonths *float64
	// IRR1Y and PPI1Y are single-year ratios against the unit cost; nil when cost is zero.
	IRR1Y *float64
	PPI1Y *float64
}

func ComputeProfitability(m model.MinerSpec, mk Market) Profitability {
	p := Profitability{
		MinerSpec:        m,
		EfficiencyJPerTH: m.EfficiencyJPerTH(),
	}

	if mk.HashpriceUSDPerTHDay != nil {
		p.DailyRevenueUSD = m.HashrateTHs * *mk.HashpriceUSDPerTHDay
		if mk.BTCPriceUSD > 0 {
			p.DailyBTCMined = p.DailyRevenueUSD / mk.BTCPriceUSD
		}
	} else {
		p.DailyBTCMined = simulation.DailyBTCByDifficulty(m.HashrateTHs, mk.UptimeFraction, mk.BlockRewardBTC, mk.FeesBTC, mk.Difficulty)
		p.DailyRevenueUSD = p.DailyBTCMined * mk.BTCPriceUSD
	}

	p.DailyElectricityUSD = m.PowerKW * 24 * mk.ElectricityRateUSDPerKWh * mk.UptimeFraction
	p.DailyProfitUSD = p.DailyRevenueUSD - p.DailyElectricityUSD
	p.AnnualProfitUSD = p.DailyProfitUSD * simulation.DaysPerYear

	if p.DailyRevenueUSD != 0 {
		v := p.DailyProfitUSD / p.DailyRevenueUSD * 100
		p.MarginPercent = &v
	}
	if p.DailyProfitUSD > 0 {
		v := m.CostUSD / p.DailyProfitUSD / 30
		p.BreakEvenMonths = &v
	}
	if m.CostUSD > 0 {
		irr := (p.AnnualProfitUSD - m.CostUSD) / m.CostUSD
		ppi := p.AnnualProfitUSD / m.CostUSD
		p.IRR1Y = &irr
		p.PPI1Y = &ppi
	}
	return p
}

// ComputeAll evaluates every spec against the same market.
func ComputeAll(specs []model.MinerSpec, mk Market) []Profitability {
	out := make([]Profitability, 0, len(specs))
	for _, m := range specs {
		out = append(out, ComputeProfitability(m, mk))
	}
	return out
}
