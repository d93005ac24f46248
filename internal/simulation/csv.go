package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"btc-mining-sim/internal/model"
)

var csvHeader = []string{
	"strategy",
	"year",
	"calendar_year",
	"btc_price_usd",
	"block_reward_btc",
	"miner_count",
	"fleet_hashrate_ths",
	"network_hashrate_ths",
	"loan_amount_usd",
	"btc_held",
	"btc_mined",
	"daily_btc_mined",
	"energy_cost_usd",
	"cumulative_energy_cost_usd",
	"holdings_value_usd",
	"roi_usd",
	"cashflow_usd",
	"cagr_percent",
	"irr_percent",
	"cpbm_months",
	"ppi",
	"annual_profit_usd",
}

func WriteRecordsCSV(path string, records []model.YearlyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeRecordsCSV(f, records)
}

// EncodeRecordsCSV writes one row per record. Undefined metrics are empty cells.
func EncodeRecordsCSV(out io.Writer, records []model.YearlyRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			string(r.Strategy),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.CalendarYear),
			fmtFloat(r.BTCPriceUSD),
			fmtBTC(r.BlockRewardBTC),
			strconv.Itoa(r.MinerCount),
			fmtFloat(r.FleetHashrateTHs),
			fmtFloat(r.NetworkHashrateTHs),
			fmtFloat(r.LoanAmountUSD),
			fmtBTC(r.BTCHeld),
			fmtBTC(r.BTCMined),
			fmtBTC(r.DailyBTCMined),
			fmtFloat(r.EnergyCostUSD),
			fmtFloat(r.CumulativeEnergyCostUSD),
			fmtFloat(r.HoldingsValueUSD),
			fmtFloat(r.ROIUSD),
			fmtFloat(r.CashflowUSD),
			fmtOptFloat(r.CAGRPercent),
			fmtOptFloat(r.IRRPercent),
			fmtOptInt(r.PaybackMonths),
			fmtOptFloat(r.PPI),
			fmtOptFloat(r.AnnualProfitUSD),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtBTC(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}

func fmtOptFloat(x *float64) string {
	if x == nil {
		return ""
	}
	return fmtFloat(*x)
}

func fmtOptInt(x *int) string {
	if x == nil {
		return ""
	}
	return strconv.Itoa(*x)
}
