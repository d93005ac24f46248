package main

import (
	"flag"
	"fmt"

	"btc-mining-sim/internal/config"
	"btc-mining-sim/internal/format"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/simulation"
)

// Demo:
// - Build scenario parameters from defaults (or --config)
// - Run one strategy through the simulator
// - Print the first few years to show how the figures evolve
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	strategyName := flag.String("strategy", "hybrid", "Strategy to run")
	n := flag.Int("n", 10, "Number of years to print")
	outCSV := flag.String("out", "", "Optional path to write the yearly CSV (e.g. results/demo.csv)")
	flag.Parse()

	params := model.DefaultParameters()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		params, err = cfg.Scenario.ToModelParams()
		if err != nil {
			panic(err)
		}
	}
	s, err := model.ParseStrategy(*strategyName)
	if err != nil {
		panic(err)
	}
	params.Strategy = s

	result, err := simulation.New().Run(params)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Strategy=%s\n", result.Strategy)
	fmt.Printf("Miners=%d  Fleet=%s / %s  BTC=%s  Loan=%s\n\n",
		result.Position.MinerCount,
		format.THs(result.Position.FleetHashrateTHs(params)),
		format.KW(result.Position.FleetPowerKW(params)),
		format.Number(result.Position.BTCHeld, 4),
		format.USD(result.Position.LoanAmountUSD),
	)

	for i := 0; i < min(*n, len(result.Records)); i++ {
		r := result.Records[i]
		fmt.Printf(
			"%d  price=%14s  reward=%6.4f  mined=%-18s held=%10.4f  energy=%12s  value=%16s  roi=%16s\n",
			r.CalendarYear,
			format.USD(r.BTCPriceUSD),
			r.BlockRewardBTC,
			format.BTC(r.BTCMined),
			r.BTCHeld,
			format.USD(r.EnergyCostUSD),
			format.USD(r.HoldingsValueUSD),
			format.USD(r.ROIUSD),
		)
	}

	if *outCSV != "" {
		if err := simulation.WriteRecordsCSV(*outCSV, result.Records); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	final := result.Final()
	fmt.Printf("\nDone. Final value=%s  ROI=%s  CAGR=%s\n", format.USD(final.HoldingsValueUSD), format.USD(final.ROIUSD), format.OptPercent(final.CAGRPercent))
	if result.Summary != nil {
		fmt.Printf("IRR=%s  Payback=%s  PPI=%s\n",
			format.OptPercent(result.Summary.IRRPercent),
			format.OptMonths(result.Summary.PaybackMonths),
			format.OptNumber(result.Summary.PPI, 2),
		)
	}
}
