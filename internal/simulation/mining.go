package simulation

import (
	"math"

	"btc-mining-sim/internal/model"
)

const (
	BlocksPerDay          = 144
	DaysPerYear           = 365
	SecondsPerDay         = 86_400
	NetworkGrowthPerYear  = 1.10
	THsPerEHs             = 1_000_000
	hashesPerTH           = 1e12
	difficultyHashesPerOp = 4_294_967_296 // 2^32
	targetBlockSeconds    = 600
)

// BlockReward returns the subsidy in calendarYear for a schedule whose
// reward at startYear is base. Epochs are four years counted from
// model.FirstHalvingYear, with every year before it in epoch zero, so the
// first boundary a run can cross is 2016.
func BlockReward(base float64, startYear, calendarYear int) float64 {
	diff := epoch(calendarYear) - epoch(startYear)
	return base / math.Pow(2, float64(diff))
}

func epoch(year int) int {
	if year < model.FirstHalvingYear {
		return 0
	}
	return (year - model.FirstHalvingYear) / model.HalvingIntervalYears
}

// FeePerBlock converts the configured fee value into a per-block addend.
func FeePerBlock(p model.SimulationParameters) float64 {
	if p.FeeMode == model.FeePerBlock {
		return p.DailyNetworkFeesBTC
	}
	return p.DailyNetworkFeesBTC / BlocksPerDay
}

// DailyBTCByDifficulty is the expected daily BTC for hashrateTHs against
// raw network difficulty: blocks found per day times (reward + fee).
func DailyBTCByDifficulty(hashrateTHs, uptime, reward, fee, difficulty float64) float64 {
	if difficulty <= 0 {
		return 0
	}
	hs := hashrateTHs * hashesPerTH
	return hs * uptime * (reward + fee) * SecondsPerDay / (difficulty * difficultyHashesPerOp)
}

// ImpliedDifficulty is the difficulty at which networkTHs finds one block
// every ten minutes.
func ImpliedDifficulty(networkTHs float64) float64 {
	return networkTHs * hashesPerTH * targetBlockSeconds / difficultyHashesPerOp
}

// YearlyBTCByShare is the BTC mined in a year by a fleet holding
// hashrateTHs/networkTHs of the network. A zero network yields zero.
func YearlyBTCByShare(hashrateTHs, networkTHs, reward float64) float64 {
	if networkTHs <= 0 {
		return 0
	}
	share := hashrateTHs / networkTHs
	return share * BlocksPerDay * reward * DaysPerYear
}

// YearlyEnergyCost is the electricity bill of a fleet for one year.
func YearlyEnergyCost(powerKW, ratePerKWh, uptime float64) float64 {
	return powerKW * 24 * DaysPerYear * ratePerKWh * uptime
}
