package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-mining-sim/internal/analysis"
	"btc-mining-sim/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_ScenarioOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", `
scenario:
  strategy: miners-only
  initial_investment: 250000
  years: 10
  difficulty: 1.2e14
  fees_btc: 0
  fee_mode: per_block
server:
  port: "9090"
  result_ttl: 30m
`)
	c, err := Load(path)
	require.NoError(t, err)

	p, err := c.Scenario.ToModelParams()
	require.NoError(t, err)
	assert.Equal(t, model.StrategyMinersOnly, p.Strategy)
	assert.Equal(t, 250000.0, p.InitialInvestmentUSD)
	assert.Equal(t, 10, p.HorizonYears)
	require.NotNil(t, p.Difficulty)
	assert.Equal(t, 1.2e14, *p.Difficulty)
	assert.Equal(t, 0.0, p.DailyNetworkFeesBTC)
	assert.Equal(t, model.FeePerBlock, p.FeeMode)
	// Untouched fields keep the defaults.
	assert.Equal(t, 100_000.0, p.BTCPriceUSD)
	assert.Equal(t, model.DefaultUptime, p.UptimeFraction)

	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, 30*time.Minute, c.Server.ResultTTL)
	assert.Equal(t, "development", c.Server.Env)
	assert.Equal(t, analysis.DefaultWeights(), c.Rank.Weights)
}

func TestLoad_MinerModelFromRelativeFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "miners.csv", "model,manufacturer,cost,hashrate_ths,power_kw,release_year\nS21,Bitmain,3500,200,3.5,2024\n")
	path := writeFile(t, dir, "sim.yaml", `
miner_file: miners.csv
miner_model: s21
scenario:
  miner_cost: 1
  miner_hashrate_ths: 1
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "miners.csv"), c.MinerFile)
	assert.Equal(t, 3500.0, c.Scenario.MinerCost)
	assert.Equal(t, 200.0, c.Scenario.MinerHashrateTHs)
	assert.Equal(t, 3.5, c.Scenario.MinerPowerKW)
}

func TestLoad_UnknownMinerModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "miners.csv", "model,cost,hashrate_ths,power_kw\nS9,100,13.5,1.3\n")
	path := writeFile(t, dir, "sim.yaml", "miner_file: miners.csv\nminer_model: S21\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "miner_model")
}

func TestLoad_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", "scenario:\n  strategy: yolo\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	path = writeFile(t, dir, "neg.yaml", "scenario:\n  initial_investment: -5\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, -5.0, c.Scenario.InitialInvestment)
}

func TestMergeScenario(t *testing.T) {
	zero := 0.0
	base := ScenarioConfig{Strategy: "HODL", Years: 5, BTCPrice: 50000}
	out := MergeScenario(base, ScenarioConfig{Years: 7, FeesBTC: &zero})
	assert.Equal(t, "HODL", out.Strategy)
	assert.Equal(t, 7, out.Years)
	assert.Equal(t, 50000.0, out.BTCPrice)
	require.NotNil(t, out.FeesBTC)
	assert.Equal(t, 0.0, *out.FeesBTC)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_PORT", "7000")
	t.Setenv("MINERS_FILE", "/tmp/m.csv")
	t.Setenv("COINGECKO_BASE_URL", "http://localhost:1")
	c := Default()
	c.ApplyEnv()
	assert.Equal(t, "7000", c.Server.Port)
	assert.Equal(t, "/tmp/m.csv", c.MinerFile)
	assert.Equal(t, "http://localhost:1", c.PriceFeed.BaseURL)
}

func TestLoad_ExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3600.0, c.Scenario.MinerCost)
	assert.Equal(t, 200.0, c.Scenario.MinerHashrateTHs)
	assert.True(t, c.PriceFeed.Enabled)
	assert.Equal(t, time.Hour, c.Server.ResultTTL)
}
