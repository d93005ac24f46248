package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-mining-sim/internal/model"
)

func workedExample() model.SimulationParameters {
	return model.SimulationParameters{
		Strategy:                 model.StrategyMinersOnly,
		InitialInvestmentUSD:     100_000,
		BTCPriceUSD:              100_000,
		ElectricityRateUSDPerKWh: 0,
		HorizonYears:             1,
		MinerUnitCostUSD:         1000,
		MinerHashrateTHs:         100,
		MinerPowerKW:             3,
		NetworkHashrateEHs:       1000,
		BTCCAGRPercent:           0,
		StartCalendarYear:        2026,
		UptimeFraction:           0.95,
		BaseBlockRewardBTC:       3.125,
	}
}

func ptr(f float64) *float64 { return &f }

func TestRun_WorkedExample(t *testing.T) {
	res, err := New().Run(workedExample())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, 100, r.MinerCount)
	assert.Equal(t, 10_000.0, r.FleetHashrateTHs)

	wantMined := (10_000 / 1e9) * 144 * 3.125 * 365
	assert.InDelta(t, wantMined, r.BTCMined, 1e-12)
	assert.InDelta(t, wantMined, r.BTCHeld, 1e-12)
	assert.Zero(t, r.EnergyCostUSD)
	assert.InDelta(t, wantMined*100_000-100_000, r.ROIUSD, 1e-6)
	assert.Equal(t, 2026, r.CalendarYear)
}

func TestRun_HODLHasNoMiningMetrics(t *testing.T) {
	p := workedExample()
	p.Strategy = model.StrategyHODL
	p.HorizonYears = 5
	p.BTCCAGRPercent = 10

	res, err := New().Run(p)
	require.NoError(t, err)
	assert.Nil(t, res.Summary)
	for _, r := range res.Records {
		assert.Equal(t, 0, r.MinerCount)
		assert.Zero(t, r.BTCMined)
		assert.Equal(t, 1.0, r.BTCHeld)
		assert.Nil(t, r.IRRPercent)
		assert.Nil(t, r.PaybackMonths)
		assert.Nil(t, r.PPI)
		assert.Nil(t, r.AnnualProfitUSD)
		require.NotNil(t, r.CAGRPercent)
		assert.InDelta(t, 10, *r.CAGRPercent, 1e-9)
	}
}

func TestRun_PriceAppreciatesAfterMining(t *testing.T) {
	p := workedExample()
	p.BTCCAGRPercent = 20

	res, err := New().Run(p)
	require.NoError(t, err)
	r := res.Records[0]
	assert.InDelta(t, 120_000, r.BTCPriceUSD, 1e-6)
	// Newly mined coins are valued at the post-appreciation price.
	assert.InDelta(t, r.BTCMined*120_000, r.HoldingsValueUSD, 1e-6)
}

func TestRun_BTCHeldNonDecreasing(t *testing.T) {
	for _, withDifficulty := range []bool{false, true} {
		for _, s := range model.AllStrategies() {
			p := workedExample()
			p.Strategy = s
			p.HorizonYears = 20
			p.ElectricityRateUSDPerKWh = 0.07
			p.BTCCAGRPercent = -5
			if withDifficulty {
				p.Difficulty = ptr(115e12)
			}
			res, err := New().Run(p)
			require.NoError(t, err)
			for i := 1; i < len(res.Records); i++ {
				assert.GreaterOrEqual(t, res.Records[i].BTCHeld, res.Records[i-1].BTCHeld, "%s year %d", s, i+1)
				assert.GreaterOrEqual(t, res.Records[i].CumulativeEnergyCostUSD, res.Records[i-1].CumulativeEnergyCostUSD)
			}
		}
	}
}

func TestRun_HalvingSchedule(t *testing.T) {
	p := workedExample()
	p.BaseBlockRewardBTC = 6.25
	p.StartCalendarYear = 2022
	p.HorizonYears = 7

	res, err := New().Run(p)
	require.NoError(t, err)

	want := map[int]float64{
		2022: 6.25, 2023: 6.25,
		2024: 3.125, 2025: 3.125, 2026: 3.125, 2027: 3.125,
		2028: 1.5625,
	}
	for _, r := range res.Records {
		assert.Equal(t, want[r.CalendarYear], r.BlockRewardBTC, "calendar year %d", r.CalendarYear)
	}
}

func TestRun_HalvingScheduleBeforeFirstEpoch(t *testing.T) {
	p := workedExample()
	p.BaseBlockRewardBTC = 50
	p.StartCalendarYear = 2010
	p.HorizonYears = 7

	res, err := New().Run(p)
	require.NoError(t, err)

	want := map[int]float64{
		2010: 50, 2011: 50, 2012: 50, 2013: 50, 2014: 50, 2015: 50,
		2016: 25,
	}
	for _, r := range res.Records {
		assert.Equal(t, want[r.CalendarYear], r.BlockRewardBTC, "calendar year %d", r.CalendarYear)
	}
}

func TestRun_DefaultBlockRewardFromStartYear(t *testing.T) {
	p := workedExample()
	p.BaseBlockRewardBTC = 0
	p.StartCalendarYear = 2026

	res, err := New().Run(p)
	require.NoError(t, err)
	assert.Equal(t, 3.125, res.Records[0].BlockRewardBTC)
}

func TestRun_DoublingHashrateDoublesYield(t *testing.T) {
	for _, withDifficulty := range []bool{false, true} {
		p := workedExample()
		if withDifficulty {
			p.Difficulty = ptr(100e12)
		}
		base, err := New().Run(p)
		require.NoError(t, err)

		p.MinerHashrateTHs *= 2
		doubled, err := New().Run(p)
		require.NoError(t, err)

		assert.InDelta(t, 2*base.Records[0].BTCMined, doubled.Records[0].BTCMined, 1e-12)
	}
}

func TestRun_DifficultyFormula(t *testing.T) {
	p := workedExample()
	p.Difficulty = ptr(100e12)
	p.DailyNetworkFeesBTC = 0.288
	p.FeeMode = model.FeePerDay

	res, err := New().Run(p)
	require.NoError(t, err)

	hs := 10_000 * 1e12
	fee := 0.288 / 144
	wantDaily := hs * 0.95 * (3.125 + fee) * 86_400 / (100e12 * 4_294_967_296)
	r := res.Records[0]
	assert.InDelta(t, wantDaily, r.DailyBTCMined, 1e-15)
	assert.InDelta(t, wantDaily*365, r.BTCMined, 1e-12)

	p.FeeMode = model.FeePerBlock
	res, err = New().Run(p)
	require.NoError(t, err)
	wantDaily = hs * 0.95 * (3.125 + 0.288) * 86_400 / (100e12 * 4_294_967_296)
	assert.InDelta(t, wantDaily, res.Records[0].DailyBTCMined, 1e-15)
}

func TestRun_NetworkHashrateGrows(t *testing.T) {
	p := workedExample()
	p.HorizonYears = 3
	res, err := New().Run(p)
	require.NoError(t, err)

	assert.InDelta(t, 1e9, res.Records[0].NetworkHashrateTHs, 1e-3)
	assert.InDelta(t, 1.1e9, res.Records[1].NetworkHashrateTHs, 1e-3)
	assert.InDelta(t, 1.21e9, res.Records[2].NetworkHashrateTHs, 1e-3)
	// Same reward epoch, so yield falls only with share.
	assert.InDelta(t, res.Records[0].BTCMined/1.1, res.Records[1].BTCMined, 1e-12)
}

func TestRun_EnergyCost(t *testing.T) {
	p := workedExample()
	p.ElectricityRateUSDPerKWh = 0.05
	p.HorizonYears = 2

	res, err := New().Run(p)
	require.NoError(t, err)
	want := 300 * 24 * 365 * 0.05 * 0.95
	assert.InDelta(t, want, res.Records[0].EnergyCostUSD, 1e-6)
	assert.InDelta(t, 2*want, res.Records[1].CumulativeEnergyCostUSD, 1e-6)
}

func TestRun_LoanIsStandingLiability(t *testing.T) {
	p := workedExample()
	p.Strategy = model.StrategyBTCLoan
	p.MinerHashrateTHs = 0
	p.HorizonYears = 3

	res, err := New().Run(p)
	require.NoError(t, err)
	for _, r := range res.Records {
		assert.Equal(t, 10_000.0, r.LoanAmountUSD)
		assert.InDelta(t, -10_000, r.ROIUSD, 1e-6)
		assert.InDelta(t, -10_000, r.CashflowUSD, 1e-6)
	}
}

func TestRun_SummaryBackfilled(t *testing.T) {
	p := workedExample()
	p.HorizonYears = 10
	p.BTCCAGRPercent = 15

	res, err := New().Run(p)
	require.NoError(t, err)
	require.NotNil(t, res.Summary)

	first := res.Records[0]
	require.NotNil(t, first.PPI)
	require.NotNil(t, first.AnnualProfitUSD)
	for _, r := range res.Records {
		assert.Equal(t, first.IRRPercent, r.IRRPercent)
		assert.Equal(t, first.PaybackMonths, r.PaybackMonths)
		assert.Equal(t, *first.PPI, *r.PPI)
		assert.Equal(t, *first.AnnualProfitUSD, *r.AnnualProfitUSD)
	}
}

func TestRun_ZeroInvestmentLeavesRatiosUndefined(t *testing.T) {
	p := workedExample()
	p.InitialInvestmentUSD = 0

	res, err := New().Run(p)
	require.NoError(t, err)
	r := res.Records[0]
	assert.Nil(t, r.CAGRPercent)
	assert.Nil(t, r.PPI)
	assert.Equal(t, 0, r.MinerCount)
}

func TestRun_Deterministic(t *testing.T) {
	p := workedExample()
	p.HorizonYears = 15
	p.BTCCAGRPercent = 12
	a, err := New().Run(p)
	require.NoError(t, err)
	b, err := New().Run(p)
	require.NoError(t, err)
	assert.Equal(t, a.Records, b.Records)
}

func TestRun_InvalidParameters(t *testing.T) {
	cases := map[string]func(*model.SimulationParameters){
		"zero horizon":       func(p *model.SimulationParameters) { p.HorizonYears = 0 },
		"negative horizon":   func(p *model.SimulationParameters) { p.HorizonYears = -3 },
		"horizon above max":  func(p *model.SimulationParameters) { p.HorizonYears = model.MaxHorizonYears + 1 },
		"huge horizon":       func(p *model.SimulationParameters) { p.HorizonYears = 1_000_000_000_000 },
		"NaN uptime":         func(p *model.SimulationParameters) { p.UptimeFraction = math.NaN() },
		"NaN electricity":    func(p *model.SimulationParameters) { p.ElectricityRateUSDPerKWh = math.NaN() },
		"Inf hashrate":       func(p *model.SimulationParameters) { p.MinerHashrateTHs = math.Inf(1) },
		"Inf power":          func(p *model.SimulationParameters) { p.MinerPowerKW = math.Inf(1) },
		"NaN fees":           func(p *model.SimulationParameters) { p.DailyNetworkFeesBTC = math.NaN() },
		"Inf cagr":           func(p *model.SimulationParameters) { p.BTCCAGRPercent = math.Inf(1) },
		"NaN cagr":           func(p *model.SimulationParameters) { p.BTCCAGRPercent = math.NaN() },
		"cagr wipes price":   func(p *model.SimulationParameters) { p.BTCCAGRPercent = -100 },
		"Inf difficulty":     func(p *model.SimulationParameters) { p.Difficulty = ptr(math.Inf(1)) },
		"zero price":         func(p *model.SimulationParameters) { p.BTCPriceUSD = 0 },
		"zero miner cost":    func(p *model.SimulationParameters) { p.MinerUnitCostUSD = 0 },
		"negative investing": func(p *model.SimulationParameters) { p.InitialInvestmentUSD = -1 },
		"uptime above one":   func(p *model.SimulationParameters) { p.UptimeFraction = 1.5 },
		"zero network share": func(p *model.SimulationParameters) { p.NetworkHashrateEHs = 0 },
		"unknown strategy":   func(p *model.SimulationParameters) { p.Strategy = "Staking" },
		"unknown fee mode":   func(p *model.SimulationParameters) { p.FeeMode = "weekly" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := workedExample()
			mutate(&p)
			_, err := New().Run(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidParameter)
		})
	}
}

func TestRun_MaxHorizonAccepted(t *testing.T) {
	p := workedExample()
	p.HorizonYears = model.MaxHorizonYears
	res, err := New().Run(p)
	require.NoError(t, err)
	assert.Len(t, res.Records, model.MaxHorizonYears)
}

func TestRun_ZeroNetworkAllowedWithDifficulty(t *testing.T) {
	p := workedExample()
	p.NetworkHashrateEHs = 0
	p.Difficulty = ptr(90e12)
	_, err := New().Run(p)
	require.NoError(t, err)
}

func TestBlockReward(t *testing.T) {
	assert.Equal(t, 50.0, BlockReward(50, 2009, 2011))
	assert.Equal(t, 50.0, BlockReward(50, 2009, 2012))
	assert.Equal(t, 50.0, BlockReward(50, 2009, 2015))
	assert.Equal(t, 25.0, BlockReward(50, 2009, 2016))
	assert.Equal(t, 25.0, BlockReward(25, 2012, 2015))
	assert.Equal(t, 12.5, BlockReward(25, 2012, 2016))
	assert.Equal(t, 3.125, BlockReward(6.25, 2020, 2024))
	assert.Equal(t, 6.25, BlockReward(6.25, 2020, 2023))
}

func TestYearlyBTCByShare_ZeroNetwork(t *testing.T) {
	assert.Zero(t, YearlyBTCByShare(100, 0, 3.125))
}
