package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"btc-mining-sim/internal/analysis"
	"btc-mining-sim/internal/config"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/format"
	"btc-mining-sim/internal/model"
	"btc-mining-sim/internal/simulation"
	"btc-mining-sim/internal/suite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml [--strategy hybrid] [--out results/simulation.csv] [--live-price]")
	fmt.Println("  cli rank --miners data/miners.csv [--config examples/config.yaml]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs every strategy unless --strategy (or scenario.strategy) picks one")
	fmt.Println("  - simulate writes one CSV row per strategy and year")
	fmt.Println("  - rank scores every miner in the table on efficiency, cost, profit, margin and age")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional, defaults apply)")
	strategyName := fs.String("strategy", "", "Run a single strategy: hodl, miners-only, btc-loan, hybrid")
	outPath := fs.String("out", "results/simulation.csv", "Output CSV path")
	livePrice := fs.Bool("live-price", false, "Use the current BTC price from CoinGecko as the start price")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	params, err := cfg.Scenario.ToModelParams()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	if *strategyName != "" {
		s, err := model.ParseStrategy(*strategyName)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		params.Strategy = s
	}

	if *livePrice {
		client := data.NewCoinGeckoClient(cfg.PriceFeed.BaseURL)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		price, err := client.SpotPrice(ctx)
		cancel()
		client.Close()
		if err != nil {
			fmt.Printf("live price unavailable, using %s: %v\n", format.USD(params.BTCPriceUSD), err)
		} else {
			params.BTCPriceUSD = price
			fmt.Printf("Live BTC price: %s\n", format.USD(price))
		}
	}

	strategies := model.AllStrategies()
	if params.Strategy != "" {
		strategies = []model.Strategy{params.Strategy}
	}
	res, err := suite.NewRunner().RunSet(strategies, params)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	records := res.Records()
	if err := simulation.WriteRecordsCSV(*outPath, records); err != nil {
		panic(err)
	}

	printSummary(params, res)
	fmt.Printf("\nWrote %d rows to %s\n", len(records), *outPath)
}

func printSummary(params model.SimulationParameters, res *suite.Result) {
	fmt.Printf("Investment=%s  BTC=%s  Years=%d  Start=%d  Yield=%s\n\n",
		format.USD(params.InitialInvestmentUSD),
		format.USD(params.BTCPriceUSD),
		params.HorizonYears,
		params.StartCalendarYear,
		yieldModel(params),
	)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "strategy\tminers\tloan\tbtc held\tholdings\troi\tcagr\tirr\tpayback\tppi\t")
	for _, run := range res.Runs {
		final := run.Final()
		irr, payback, ppi := (*float64)(nil), (*int)(nil), (*float64)(nil)
		if run.Summary != nil {
			irr, payback, ppi = run.Summary.IRRPercent, run.Summary.PaybackMonths, run.Summary.PPI
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			run.Strategy,
			run.Position.MinerCount,
			format.USD(run.Position.LoanAmountUSD),
			format.Number(final.BTCHeld, 4),
			format.USD(final.HoldingsValueUSD),
			format.USD(final.ROIUSD),
			format.OptPercent(final.CAGRPercent),
			format.OptPercent(irr),
			format.OptMonths(payback),
			format.OptNumber(ppi, 2),
		)
	}
	_ = w.Flush()
}

func yieldModel(p model.SimulationParameters) string {
	if p.UsesDifficulty() {
		return fmt.Sprintf("difficulty %.4g, fees %s (%s)", *p.Difficulty, format.BTC(p.DailyNetworkFeesBTC), feeMode(p))
	}
	return fmt.Sprintf("hashrate share of %s EH/s", format.Number(p.NetworkHashrateEHs, 0))
}

func feeMode(p model.SimulationParameters) string {
	if p.FeeMode == "" {
		return string(model.FeePerDay)
	}
	return string(p.FeeMode)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	minersPath := fs.String("miners", "", "Miner specs CSV (default: config miner_file or MINERS_FILE)")
	cfgPath := fs.String("config", "", "Path to YAML config (optional, supplies price, electricity and weights)")
	limit := fs.Int("n", 0, "Optional: show only the top N miners (0=all)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	path := cfg.MinerFile
	if *minersPath != "" {
		path = *minersPath
	}
	store, err := data.LoadMiners(path)
	if err != nil {
		panic(err)
	}
	specs := store.All()
	if len(specs) == 0 {
		fmt.Printf("no miners in %s\n", path)
		os.Exit(1)
	}

	params, err := cfg.Scenario.ToModelParams()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	market := analysis.MarketFor(params)
	market.HashpriceUSDPerTHDay = cfg.Rank.HashpriceUSDPerTHDay

	ranked := analysis.RankMiners(analysis.ComputeAll(specs, market), cfg.Rank.Weights, time.Now().Year())
	if *limit > 0 && *limit < len(ranked) {
		ranked = ranked[:*limit]
	}

	fmt.Printf("BTC=%s  Electricity=$%.4f/kWh  Difficulty=%.4g\n\n", format.USD(market.BTCPriceUSD), market.ElectricityRateUSDPerKWh, market.Difficulty)
	fmt.Printf("%-4s %-22s %-10s %-10s %-10s %-12s %-10s %-10s %-6s\n", "rank", "model", "J/TH", "cost", "profit/d", "margin", "breakeven", "score", "year")
	for _, r := range ranked {
		fmt.Printf(
			"%-4d %-22s %-10.2f %-10s %-10s %-12s %-10s %-10.3f %-6s\n",
			r.Rank,
			truncate(r.Model, 22),
			r.EfficiencyJPerTH,
			format.USD(r.CostUSD),
			format.USD(r.DailyProfitUSD),
			format.OptPercent(r.MarginPercent),
			format.OptNumber(r.BreakEvenMonths, 1),
			r.OverallScore,
			releaseYear(r.ReleaseYear),
		)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("config %s: %v\n", path, err)
		os.Exit(2)
	}
	return cfg
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

func releaseYear(y int) string {
	if y == 0 {
		return "-"
	}
	return fmt.Sprint(y)
}
