package strategy

import (
	"fmt"
	"math"

	"btc-mining-sim/internal/model"
)

// LoanFraction is the share of the pledged BTC value borrowed to buy miners.
const LoanFraction = 0.10

// Position is the portfolio a strategy opens at t=0.
// It is fixed for the whole run: mining proceeds are never reinvested in hardware.
type Position struct {
	BTCHeld       float64
	MinerCount    int
	LoanAmountUSD float64
}

// FleetHashrateTHs is the combined hashrate of all purchased units.
func (p Position) FleetHashrateTHs(params model.SimulationParameters) float64 {
	return float64(p.MinerCount) * params.MinerHashrateTHs
}

// FleetPowerKW is the combined power draw of all purchased units.
func (p Position) FleetPowerKW(params model.SimulationParameters) float64 {
	return float64(p.MinerCount) * params.MinerPowerKW
}

type Allocator interface {
	Name() model.Strategy
	Allocate(params model.SimulationParameters) Position
}

// For returns the allocator for a strategy tag.
func For(s model.Strategy) (Allocator, error) {
	switch s {
	case model.StrategyHODL:
		return HODL{}, nil
	case model.StrategyMinersOnly:
		return MinersOnly{}, nil
	case model.StrategyBTCLoan:
		return BTCLoan{}, nil
	case model.StrategyHybrid:
		return Hybrid{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported strategy %q", model.ErrInvalidParameter, s)
	}
}

// HODL puts the whole investment into BTC at the starting price.
type HODL struct{}

func (HODL) Name() model.Strategy { return model.StrategyHODL }

func (HODL) Allocate(p model.SimulationParameters) Position {
	return Position{BTCHeld: p.InitialInvestmentUSD / p.BTCPriceUSD}
}

// MinersOnly spends the whole investment on whole miner units.
type MinersOnly struct{}

func (MinersOnly) Name() model.Strategy { return model.StrategyMinersOnly }

func (MinersOnly) Allocate(p model.SimulationParameters) Position {
	return Position{MinerCount: units(p.InitialInvestmentUSD, p.MinerUnitCostUSD)}
}

// BTCLoan buys BTC with the investment and borrows against it to buy miners.
type BTCLoan struct{}

func (BTCLoan) Name() model.Strategy { return model.StrategyBTCLoan }

func (BTCLoan) Allocate(p model.SimulationParameters) Position {
	loan := LoanFraction * p.InitialInvestmentUSD
	return Position{
		BTCHeld:       p.InitialInvestmentUSD / p.BTCPriceUSD,
		MinerCount:    units(loan, p.MinerUnitCostUSD),
		LoanAmountUSD: loan,
	}
}

// Hybrid splits the investment in half: one half into BTC, the other half plus
// a loan against the BTC half into miners.
type Hybrid struct{}

func (Hybrid) Name() model.Strategy { return model.StrategyHybrid }

func (Hybrid) Allocate(p model.SimulationParameters) Position {
	half := p.InitialInvestmentUSD / 2
	loan := LoanFraction * half
	return Position{
		BTCHeld:       math.Floor(half / p.BTCPriceUSD),
		MinerCount:    units(half+loan, p.MinerUnitCostUSD),
		LoanAmountUSD: loan,
	}
}

func units(budget, unitCost float64) int {
	if unitCost <= 0 || budget <= 0 {
		return 0
	}
	return int(math.Floor(budget / unitCost))
}
