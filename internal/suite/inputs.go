package suite

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"btc-mining-sim/internal/model"
)

// Inputs is a raw parameter bundle as produced by an input-collection layer.
// It may carry keys the simulator does not know about; those are ignored.
type Inputs map[string]any

// FilterInputs overlays the recognised keys of in onto base.
// Unknown keys are ignored; a recognised key with an unusable value is an error.
//
// Recognised keys: initial_investment, btc_price, electricity_rate, years,
// miner_cost, miner_hashrate_ths, miner_power_kw, network_hashrate_ehs,
// btc_cagr, difficulty, fees_btc, fee_mode, start_year, block_reward, uptime.
func FilterInputs(base model.SimulationParameters, in Inputs) (model.SimulationParameters, error) {
	p := base
	floats := map[string]*float64{
		"initial_investment":   &p.InitialInvestmentUSD,
		"btc_price":            &p.BTCPriceUSD,
		"electricity_rate":     &p.ElectricityRateUSDPerKWh,
		"miner_cost":           &p.MinerUnitCostUSD,
		"miner_hashrate_ths":   &p.MinerHashrateTHs,
		"miner_power_kw":       &p.MinerPowerKW,
		"network_hashrate_ehs": &p.NetworkHashrateEHs,
		"btc_cagr":             &p.BTCCAGRPercent,
		"fees_btc":             &p.DailyNetworkFeesBTC,
		"block_reward":         &p.BaseBlockRewardBTC,
		"uptime":               &p.UptimeFraction,
	}
	for key, dst := range floats {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return base, fmt.Errorf("%w: %s: %v", model.ErrInvalidParameter, key, err)
		}
		*dst = f
	}

	ints := map[string]*int{
		"years":      &p.HorizonYears,
		"start_year": &p.StartCalendarYear,
	}
	for key, dst := range ints {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return base, fmt.Errorf("%w: %s: %v", model.ErrInvalidParameter, key, err)
		}
		if math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return base, fmt.Errorf("%w: %s out of range, got %v", model.ErrInvalidParameter, key, f)
		}
		if f != math.Trunc(f) {
			return base, fmt.Errorf("%w: %s must be a whole number, got %v", model.ErrInvalidParameter, key, f)
		}
		*dst = int(f)
	}

	// difficulty is optional: absent or null keeps base, zero clears it.
	if v, ok := in["difficulty"]; ok {
		if v == nil {
			p.Difficulty = nil
		} else {
			f, err := toFloat(v)
			if err != nil {
				return base, fmt.Errorf("%w: difficulty: %v", model.ErrInvalidParameter, err)
			}
			if f == 0 {
				p.Difficulty = nil
			} else {
				p.Difficulty = &f
			}
		}
	}

	if v, ok := in["fee_mode"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return base, fmt.Errorf("%w: fee_mode must be a string", model.ErrInvalidParameter)
		}
		p.FeeMode = model.FeeMode(strings.TrimSpace(s))
	}
	return p, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case string:
		s := strings.TrimSpace(strings.NewReplacer("$", "", ",", "", "%", "").Replace(x))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%q is not a finite number", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
