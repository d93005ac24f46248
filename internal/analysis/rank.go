package analysis

import (
	"sort"
)

// Weights controls how the normalized component scores are blended.
type Weights struct {
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
	Cost       float64 `yaml:"cost" json:"cost"`
	Profit     float64 `yaml:"profit" json:"profit"`
	Margin     float64 `yaml:"margin" json:"margin"`
	Age        float64 `yaml:"age" json:"age"`
}

func DefaultWeights() Weights {
	return Weights{Efficiency: 0.3, Cost: 0.2, Profit: 0.3, Margin: 0.1, Age: 0.1}
}

type RankedMiner struct {
	Profitability

	EfficiencyScore float64
	CostScore       float64
	ProfitScore     float64
	MarginScore     float64
	AgeScore        float64
	OverallScore    float64
	Rank            int
}

// RankMiners scores miners on min-max normalized efficiency, cost, daily
// profit, margin and age, and sorts them by overall score descending.
// Lower efficiency (J/TH), lower cost and younger hardware score higher.
// Rows with an undefined margin are dropped. currentYear is used for age.
func RankMiners(rows []Profitability, w Weights, currentYear int) []RankedMiner {
	kept := make([]Profitability, 0, len(rows))
	for _, r := range rows {
		if r.MarginPercent == nil {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return []RankedMiner{}
	}

	col := func(f func(Profitability) float64) []float64 {
		out := make([]float64, len(kept))
		for i, r := range kept {
			out[i] = f(r)
		}
		return out
	}
	eff := minMax(col(func(r Profitability) float64 { return r.EfficiencyJPerTH }))
	cost := minMax(col(func(r Profitability) float64 { return r.CostUSD }))
	profit := minMax(col(func(r Profitability) float64 { return r.DailyProfitUSD }))
	margin := minMax(col(func(r Profitability) float64 { return *r.MarginPercent }))

	var age []float64
	if allHaveReleaseYear(kept) {
		age = minMax(col(func(r Profitability) float64 { return float64(currentYear - r.ReleaseYear) }))
	}

	out := make([]RankedMiner, len(kept))
	for i, r := range kept {
		rm := RankedMiner{
			Profitability:   r,
			EfficiencyScore: 1 - eff[i],
			CostScore:       1 - cost[i],
			ProfitScore:     profit[i],
			MarginScore:     margin[i],
		}
		if age != nil {
			rm.AgeScore = 1 - age[i]
		}
		rm.OverallScore = w.Efficiency*rm.EfficiencyScore +
			w.Cost*rm.CostScore +
			w.Profit*rm.ProfitScore +
			w.Margin*rm.MarginScore +
			w.Age*rm.AgeScore
		out[i] = rm
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// minMax scales xs into [0,1]. A constant column maps to all zeros.
func minMax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / span
	}
	return out
}

func allHaveReleaseYear(rows []Profitability) bool {
	for _, r := range rows {
		if r.ReleaseYear == 0 {
			return false
		}
	}
	return true
}
