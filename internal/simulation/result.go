package simulation

import (
	"btc-mining-sim/internal/finance"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/strategy"
)

type Result struct {
	Strategy model.Strategy
	Position strategy.Position
	Records  []model.YearlyRecord
	// Summary is nil for HODL.
	Summary *finance.Summary
}

// Final returns the last simulated year.
func (r *Result) Final() model.YearlyRecord {
	if r == nil || len(r.Records) == 0 {
		return model.YearlyRecord{}
	}
	return r.Records[len(r.Records)-1]
}
