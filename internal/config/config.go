package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"btc-mining-sim/internal/analysis"
	"btc-mining-sim/internal/data"
	"btc-mining-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: hardware specs come from the miner table when MinerModel is set.
	// The looked-up specs override miner_cost/miner_hashrate_ths/miner_power_kw.
	MinerFile  string          `yaml:"miner_file"`
	MinerModel string          `yaml:"miner_model"`
	Scenario   ScenarioConfig  `yaml:"scenario"`
	Rank       RankConfig      `yaml:"rank"`
	Server     ServerConfig    `yaml:"server"`
	PriceFeed  PriceFeedConfig `yaml:"price_feed"`
}

// ScenarioConfig mirrors the simulator inputs. Zero values fall back to
// model.DefaultParameters.
type ScenarioConfig struct {
	Strategy           string   `yaml:"strategy"`
	InitialInvestment  float64  `yaml:"initial_investment"`
	BTCPrice           float64  `yaml:"btc_price"`
	ElectricityRate    float64  `yaml:"electricity_rate"`
	Years              int      `yaml:"years"`
	MinerCost          float64  `yaml:"miner_cost"`
	MinerHashrateTHs   float64  `yaml:"miner_hashrate_ths"`
	MinerPowerKW       float64  `yaml:"miner_power_kw"`
	NetworkHashrateEHs float64  `yaml:"network_hashrate_ehs"`
	BTCCAGR            float64  `yaml:"btc_cagr"`
	StartYear          int      `yaml:"start_year"`
	Difficulty         *float64 `yaml:"difficulty"`
	FeesBTC            *float64 `yaml:"fees_btc"`
	FeeMode            string   `yaml:"fee_mode"`
	BlockReward        float64  `yaml:"block_reward"`
	Uptime             *float64 `yaml:"uptime"`
}

type RankConfig struct {
	// HashpriceUSDPerTHDay replaces the difficulty-derived revenue when set.
	HashpriceUSDPerTHDay *float64         `yaml:"hashprice_usd_per_th_day"`
	Weights              analysis.Weights `yaml:"weights"`
}

type ServerConfig struct {
	Port      string        `yaml:"port"`
	Env       string        `yaml:"env"`
	ResultTTL time.Duration `yaml:"result_ttl"`
}

type PriceFeedConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BaseURL  string `yaml:"base_url"`
	Schedule string `yaml:"schedule"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MinerFile: data.GetDefaultMinersPath(),
		Rank:      RankConfig{Weights: analysis.DefaultWeights()},
		Server: ServerConfig{
			Port:      "8080",
			Env:       "development",
			ResultTTL: time.Hour,
		},
		PriceFeed: PriceFeedConfig{
			Schedule: "@every 10m",
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over Default() and resolves miner_model, but
// does not validate the scenario.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	c.MinerFile = ""
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if c.MinerFile != "" && !filepath.IsAbs(c.MinerFile) {
		// Prefer interpreting relative paths as relative to the config file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), c.MinerFile)
		if _, err := os.Stat(cand); err == nil {
			c.MinerFile = cand
		}
	}
	if c.MinerFile == "" {
		c.MinerFile = data.GetDefaultMinersPath()
	}
	if c.MinerModel != "" {
		store, err := data.LoadMiners(c.MinerFile)
		if err != nil {
			return nil, err
		}
		spec, err := store.Lookup(c.MinerModel)
		if err != nil {
			return nil, fmt.Errorf("miner_model: %w", err)
		}
		c.Scenario = MergeScenario(c.Scenario, ScenarioConfig{
			MinerCost:        spec.CostUSD,
			MinerHashrateTHs: spec.HashrateTHs,
			MinerPowerKW:     spec.PowerKW,
		})
	}
	if c.Rank.Weights == (analysis.Weights{}) {
		c.Rank.Weights = analysis.DefaultWeights()
	}
	return c, nil
}

// ApplyEnv overlays API_PORT, API_ENV, MINERS_FILE and COINGECKO_BASE_URL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("MINERS_FILE"); v != "" {
		c.MinerFile = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.PriceFeed.BaseURL = v
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	params, err := c.Scenario.ToModelParams()
	if err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	if params.Strategy == "" {
		params.Strategy = model.StrategyHODL
	}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	if c.Server.ResultTTL < 0 {
		return errors.New("server.result_ttl must be >= 0")
	}
	return nil
}

// ToModelParams overlays the scenario onto model.DefaultParameters.
// An empty strategy is left empty so callers can run the whole suite.
func (s ScenarioConfig) ToModelParams() (model.SimulationParameters, error) {
	p := model.DefaultParameters()
	if strings.TrimSpace(s.Strategy) != "" {
		st, err := model.ParseStrategy(s.Strategy)
		if err != nil {
			return p, err
		}
		p.Strategy = st
	}
	if s.InitialInvestment != 0 {
		p.InitialInvestmentUSD = s.InitialInvestment
	}
	if s.BTCPrice != 0 {
		p.BTCPriceUSD = s.BTCPrice
	}
	if s.ElectricityRate != 0 {
		p.ElectricityRateUSDPerKWh = s.ElectricityRate
	}
	if s.Years != 0 {
		p.HorizonYears = s.Years
	}
	if s.MinerCost != 0 {
		p.MinerUnitCostUSD = s.MinerCost
	}
	if s.MinerHashrateTHs != 0 {
		p.MinerHashrateTHs = s.MinerHashrateTHs
	}
	if s.MinerPowerKW != 0 {
		p.MinerPowerKW = s.MinerPowerKW
	}
	if s.NetworkHashrateEHs != 0 {
		p.NetworkHashrateEHs = s.NetworkHashrateEHs
	}
	if s.BTCCAGR != 0 {
		p.BTCCAGRPercent = s.BTCCAGR
	}
	if s.StartYear != 0 {
		p.StartCalendarYear = s.StartYear
	}
	if s.Difficulty != nil && *s.Difficulty != 0 {
		d := *s.Difficulty
		p.Difficulty = &d
	}
	if s.FeesBTC != nil {
		p.DailyNetworkFeesBTC = *s.FeesBTC
	}
	if s.FeeMode != "" {
		p.FeeMode = model.FeeMode(s.FeeMode)
	}
	if s.BlockReward != 0 {
		p.BaseBlockRewardBTC = s.BlockReward
	}
	if s.Uptime != nil {
		p.UptimeFraction = *s.Uptime
	}
	return p, nil
}

// MergeScenario overlays non-zero fields from override onto base.
// This is used when applying miner table specs and request overrides.
func MergeScenario(base, override ScenarioConfig) ScenarioConfig {
	out := base
	if override.Strategy != "" {
		out.Strategy = override.Strategy
	}
	if override.InitialInvestment != 0 {
		out.InitialInvestment = override.InitialInvestment
	}
	if override.BTCPrice != 0 {
		out.BTCPrice = override.BTCPrice
	}
	if override.ElectricityRate != 0 {
		out.ElectricityRate = override.ElectricityRate
	}
	if override.Years != 0 {
		out.Years = override.Years
	}
	if override.MinerCost != 0 {
		out.MinerCost = override.MinerCost
	}
	if override.MinerHashrateTHs != 0 {
		out.MinerHashrateTHs = override.MinerHashrateTHs
	}
	if override.MinerPowerKW != 0 {
		out.MinerPowerKW = override.MinerPowerKW
	}
	if override.NetworkHashrateEHs != 0 {
		out.NetworkHashrateEHs = override.NetworkHashrateEHs
	}
	if override.BTCCAGR != 0 {
		out.BTCCAGR = override.BTCCAGR
	}
	if override.StartYear != 0 {
		out.StartYear = override.StartYear
	}
	if override.Difficulty != nil {
		out.Difficulty = override.Difficulty
	}
	if override.FeesBTC != nil {
		out.FeesBTC = override.FeesBTC
	}
	if override.FeeMode != "" {
		out.FeeMode = override.FeeMode
	}
	if override.BlockReward != 0 {
		out.BlockReward = override.BlockReward
	}
	if override.Uptime != nil {
		out.Uptime = override.Uptime
	}
	return out
}
