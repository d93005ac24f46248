package finance

// Summary holds the suite-level metrics of one strategy run.
// Nil fields are undefined for the given inputs.
type Summary struct {
	IRRPercent      *float64 `json:"irr_percent"`
	PaybackMonths   *int     `json:"cpbm_months"`
	TotalProfitUSD  float64  `json:"total_profit_usd"`
	PPI             *float64 `json:"ppi"`
	AnnualProfitUSD *float64 `json:"annual_profit_usd"`
}

// PaybackMonths returns 12*k for the smallest year k whose cumulative cash
// flow reaches investment. ok is false when that never happens.
func PaybackMonths(investment float64, cashflows []float64) (months int, ok bool) {
	cum := 0.0
	for i, cf := range cashflows {
		cum += cf
		if cum >= investment {
			return 12 * (i + 1), true
		}
	}
	return 0, false
}

// Summarize evaluates cashflows (years 1..N, excluding the initial outflow)
// against an initial investment.
func Summarize(investment float64, cashflows []float64) Summary {
	var s Summary

	flows := make([]float64, 0, len(cashflows)+1)
	flows = append(flows, -investment)
	flows = append(flows, cashflows...)
	if r, ok := IRR(flows); ok {
		pct := r * 100
		s.IRRPercent = &pct
	}

	if m, ok := PaybackMonths(investment, cashflows); ok {
		s.PaybackMonths = &m
	}

	for _, cf := range cashflows {
		s.TotalProfitUSD += cf
	}
	if investment > 0 {
		ppi := s.TotalProfitUSD / investment
		s.PPI = &ppi
	}
	if n := len(cashflows); n > 0 {
		annual := s.TotalProfitUSD / float64(n)
		s.AnnualProfitUSD = &annual
	}
	return s
}
