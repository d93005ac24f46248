package model

import "time"

// PricePoint is one observation of the BTC/USD spot price.
type PricePoint struct {
	Time     time.Time `json:"time"`
	PriceUSD float64   `json:"price_usd"`
}

// CoinGeckoMarketChart matches the JSON shape of /coins/{id}/market_chart.
//
// Example:
//
//	{
//	  "prices": [[1711843200000, 69702.3], ...]
//	}
type CoinGeckoMarketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// Points converts millisecond timestamps into PricePoints.
func (c CoinGeckoMarketChart) Points() []PricePoint {
	out := make([]PricePoint, 0, len(c.Prices))
	for _, p := range c.Prices {
		out = append(out, PricePoint{
			Time:     time.UnixMilli(int64(p[0])).UTC(),
			PriceUSD: p[1],
		})
	}
	return out
}
