// Package finance computes summary metrics over a yearly cash-flow series.
package finance

import "math"

const (
	irrMinRate   = -0.99
	irrMaxRate   = 10.0
	irrScanSteps = 2000
	irrTolerance = 1e-10
	irrMaxIter   = 200
)

// NPV discounts flows[t] by (1+rate)^t, t starting at 0.
func NPV(rate float64, flows []float64) float64 {
	sum := 0.0
	for t, cf := range flows {
		sum += cf / math.Pow(1+rate, float64(t))
	}
	return sum
}

// IRR returns the rate in [-0.99, 10] that zeroes the NPV of flows.
// When several roots exist the one closest to zero is returned.
// ok is false when the series has no sign change or no root lies in range.
func IRR(flows []float64) (rate float64, ok bool) {
	if len(flows) < 2 || !hasSignChange(flows) {
		return 0, false
	}

	step := (irrMaxRate - irrMinRate) / irrScanSteps
	best, found := 0.0, false
	lo := irrMinRate
	fLo := NPV(lo, flows)
	for i := 1; i <= irrScanSteps; i++ {
		hi := irrMinRate + float64(i)*step
		fHi := NPV(hi, flows)
		if !finite(fLo) || !finite(fHi) {
			lo, fLo = hi, fHi
			continue
		}
		if fLo == 0 || fLo*fHi < 0 {
			r := lo
			if fLo != 0 {
				r = bisect(flows, lo, hi, fLo)
			}
			if !found || math.Abs(r) < math.Abs(best) {
				best, found = r, true
			}
		}
		lo, fLo = hi, fHi
	}
	if !found && fLo == 0 {
		best, found = lo, true
	}
	return best, found
}

func bisect(flows []float64, lo, hi, fLo float64) float64 {
	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := NPV(mid, flows)
		if fMid == 0 || (hi-lo)/2 < irrTolerance {
			return mid
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2
}

func hasSignChange(flows []float64) bool {
	pos, neg := false, false
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
