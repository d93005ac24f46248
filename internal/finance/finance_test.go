package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRR_SinglePeriod(t *testing.T) {
	// -100 now, 110 in a year -> 10%
	r, ok := IRR([]float64{-100, 110})
	require.True(t, ok)
	assert.InDelta(t, 0.10, r, 1e-8)
}

func TestIRR_Annuity(t *testing.T) {
	flows := []float64{-1000, 300, 300, 300, 300, 300}
	r, ok := IRR(flows)
	require.True(t, ok)
	assert.InDelta(t, 0, NPV(r, flows), 1e-6)
	assert.InDelta(t, 0.1524, r, 1e-3)
}

func TestIRR_NegativeRate(t *testing.T) {
	r, ok := IRR([]float64{-100, 50})
	require.True(t, ok)
	assert.InDelta(t, -0.5, r, 1e-8)
}

func TestIRR_NoSignChange(t *testing.T) {
	_, ok := IRR([]float64{-100, -10, -5})
	assert.False(t, ok)

	_, ok = IRR([]float64{100, 10})
	assert.False(t, ok)

	_, ok = IRR([]float64{-100})
	assert.False(t, ok)
}

func TestIRR_OutOfRange(t *testing.T) {
	// Requires a rate above 1000%.
	_, ok := IRR([]float64{-1, 100})
	assert.False(t, ok)
}

func TestPaybackMonths_ConstantCashflow(t *testing.T) {
	cases := []struct {
		investment float64
		cashflow   float64
		years      int
		want       int
		ok         bool
	}{
		{investment: 100, cashflow: 30, years: 10, want: 48, ok: true},
		{investment: 100, cashflow: 25, years: 10, want: 48, ok: true},
		{investment: 100, cashflow: 100, years: 1, want: 12, ok: true},
		{investment: 100, cashflow: 30, years: 3, ok: false},
	}
	for _, tc := range cases {
		flows := make([]float64, tc.years)
		for i := range flows {
			flows[i] = tc.cashflow
		}
		months, ok := PaybackMonths(tc.investment, flows)
		assert.Equal(t, tc.ok, ok)
		if tc.ok {
			assert.Equal(t, 12*int(math.Ceil(tc.investment/tc.cashflow)), months)
			assert.Equal(t, tc.want, months)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(1000, []float64{500, 700, 900})
	require.NotNil(t, s.IRRPercent)
	require.NotNil(t, s.PaybackMonths)
	require.NotNil(t, s.PPI)
	require.NotNil(t, s.AnnualProfitUSD)

	assert.Equal(t, 24, *s.PaybackMonths)
	assert.InDelta(t, 2100, s.TotalProfitUSD, 1e-9)
	assert.InDelta(t, 2.1, *s.PPI, 1e-12)
	assert.InDelta(t, 700, *s.AnnualProfitUSD, 1e-9)
	assert.InDelta(t, 0, NPV(*s.IRRPercent/100, []float64{-1000, 500, 700, 900}), 1e-6)
}

func TestSummarize_ZeroInvestment(t *testing.T) {
	s := Summarize(0, []float64{-10, -20})
	assert.Nil(t, s.IRRPercent)
	assert.Nil(t, s.PPI)
	assert.Nil(t, s.PaybackMonths)
	require.NotNil(t, s.AnnualProfitUSD)
	assert.InDelta(t, -15, *s.AnnualProfitUSD, 1e-12)
}

func TestSummarize_NeverPaysBack(t *testing.T) {
	s := Summarize(1000, []float64{-100, -200})
	assert.Nil(t, s.IRRPercent)
	assert.Nil(t, s.PaybackMonths)
	require.NotNil(t, s.PPI)
	assert.InDelta(t, -0.3, *s.PPI, 1e-12)
}
