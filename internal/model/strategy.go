package model

import (
	"fmt"
	"strings"
)

// Strategy names a capital-allocation scenario.
// Keep these values stable; they are intended for CSV output and API payloads.
type Strategy string

const (
	StrategyHODL       Strategy = "HODL"
	StrategyMinersOnly Strategy = "Miners Only"
	StrategyBTCLoan    Strategy = "BTC Loan"
	StrategyHybrid     Strategy = "Hybrid"
)

// AllStrategies is the fixed suite order.
func AllStrategies() []Strategy {
	return []Strategy{StrategyHODL, StrategyMinersOnly, StrategyBTCLoan, StrategyHybrid}
}

// ParseStrategy accepts the display name or a slug ("miners-only", "btc_loan", "hybrid").
func ParseStrategy(s string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "hodl":
		return StrategyHODL, nil
	case "minersonly", "miners":
		return StrategyMinersOnly, nil
	case "btcloan", "loan":
		return StrategyBTCLoan, nil
	case "hybrid":
		return StrategyHybrid, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidParameter, s)
	}
}

// Slug is the URL-friendly form of the strategy name.
func (s Strategy) Slug() string {
	return strings.ToLower(strings.ReplaceAll(string(s), " ", "-"))
}

// Mines reports whether the strategy operates a mining fleet.
func (s Strategy) Mines() bool {
	return s != StrategyHODL
}
