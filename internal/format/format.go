// Package format renders simulation figures for terminal output.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is printed for undefined metrics.
const NotAvailable = "N/A"

// Number rounds x half away from zero to places decimals and groups the
// integer part in thousands: 1234567.891 -> "1,234,567.89".
func Number(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return NotAvailable
	}
	s := decimal.NewFromFloat(x).StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// USD formats dollars with cents: -1234.5 -> "-$1,234.50".
func USD(x float64) string {
	s := Number(x, 2)
	if s == NotAvailable {
		return s
	}
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// BTC formats an amount to satoshi precision.
func BTC(x float64) string {
	return Number(x, 8) + " BTC"
}

// Percent formats a value already expressed in percent.
func Percent(x float64) string {
	return Number(x, 2) + "%"
}

func THs(x float64) string { return Number(x, 2) + " TH/s" }

func KW(x float64) string { return Number(x, 2) + " kW" }

// OptUSD, OptPercent, OptNumber and OptMonths print NotAvailable for nil.
func OptUSD(x *float64) string {
	if x == nil {
		return NotAvailable
	}
	return USD(*x)
}

func OptPercent(x *float64) string {
	if x == nil {
		return NotAvailable
	}
	return Percent(*x)
}

func OptNumber(x *float64, places int32) string {
	if x == nil {
		return NotAvailable
	}
	return Number(*x, places)
}

func OptMonths(x *int) string {
	if x == nil {
		return NotAvailable
	}
	return Number(float64(*x), 0) + " mo"
}
