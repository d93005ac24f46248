package simulation

import (
	"math"

	"btc-mining-sim/internal/finance"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/strategy"
)

// Engine runs the year-by-year mining economics projection.
// It holds no state; a single Engine may be shared across goroutines.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Run projects params.Strategy over years 1..HorizonYears.
func (e *Engine) Run(params model.SimulationParameters) (*Result, error) {
	if s, err := model.ParseStrategy(string(params.Strategy)); err == nil {
		params.Strategy = s
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	alloc, err := strategy.For(params.Strategy)
	if err != nil {
		return nil, err
	}

	pos := alloc.Allocate(params)
	fleetTHs := pos.FleetHashrateTHs(params)
	fleetKW := pos.FleetPowerKW(params)
	baseReward := params.EffectiveBlockReward()
	fee := FeePerBlock(params)
	invest := params.InitialInvestmentUSD

	btcHeld := pos.BTCHeld
	price := params.BTCPriceUSD
	networkTHs := params.NetworkHashrateEHs * THsPerEHs
	cumEnergy := 0.0

	records := make([]model.YearlyRecord, 0, params.HorizonYears)
	cashflows := make([]float64, 0, params.HorizonYears)

	for year := 1; year <= params.HorizonYears; year++ {
		calYear := params.StartCalendarYear + year - 1
		reward := BlockReward(baseReward, params.StartCalendarYear, calYear)

		var mined, daily float64
		if params.UsesDifficulty() {
			daily = DailyBTCByDifficulty(fleetTHs, params.UptimeFraction, reward, fee, *params.Difficulty)
			mined = daily * DaysPerYear
		} else {
			mined = YearlyBTCByShare(fleetTHs, networkTHs, reward)
			daily = mined / DaysPerYear
		}

		energy := YearlyEnergyCost(fleetKW, params.ElectricityRateUSDPerKWh, params.UptimeFraction)
		cumEnergy += energy

		// Appreciation is applied after mining, so this year's coins are
		// valued at the year-end price.
		btcHeld += mined
		price *= 1 + params.BTCCAGRPercent/100

		holdings := btcHeld * price
		roi := holdings - invest - cumEnergy
		if params.Strategy.Mines() {
			roi -= pos.LoanAmountUSD
		}
		cashflow := holdings - invest - cumEnergy - pos.LoanAmountUSD
		cashflows = append(cashflows, cashflow)

		rec := model.YearlyRecord{
			Strategy:     params.Strategy,
			Year:         year,
			CalendarYear: calYear,

			BTCPriceUSD:    price,
			BlockRewardBTC: reward,

			MinerCount:         pos.MinerCount,
			FleetHashrateTHs:   fleetTHs,
			NetworkHashrateTHs: networkTHs,
			LoanAmountUSD:      pos.LoanAmountUSD,

			BTCHeld:       btcHeld,
			BTCMined:      mined,
			DailyBTCMined: daily,

			EnergyCostUSD:           energy,
			CumulativeEnergyCostUSD: cumEnergy,

			HoldingsValueUSD: holdings,
			ROIUSD:           roi,
			CashflowUSD:      cashflow,
			CAGRPercent:      realizedCAGR(holdings, invest, year),
		}
		records = append(records, rec)

		networkTHs *= NetworkGrowthPerYear
	}

	res := &Result{
		Strategy: params.Strategy,
		Position: pos,
		Records:  records,
	}
	if params.Strategy.Mines() {
		s := finance.Summarize(invest, cashflows)
		res.Summary = &s
		for i := range res.Records {
			res.Records[i].IRRPercent = s.IRRPercent
			res.Records[i].PaybackMonths = s.PaybackMonths
			res.Records[i].PPI = s.PPI
			res.Records[i].AnnualProfitUSD = s.AnnualProfitUSD
		}
	}
	return res, nil
}

// realizedCAGR is the annualized growth of holdings over invest after year
// years, in percent. Nil when invest is zero.
func realizedCAGR(holdings, invest float64, year int) *float64 {
	if invest <= 0 || year <= 0 {
		return nil
	}
	v := (math.Pow(holdings/invest, 1/float64(year)) - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
