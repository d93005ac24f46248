package model

import "errors"

// MinerSpec is one row of the miner hardware table.
// Units: CostUSD $, HashrateTHs TH/s, PowerKW kW. ReleaseYear is 0 when unknown.
type MinerSpec struct {
	Model        string  `json:"model"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	CostUSD      float64 `json:"cost"`
	HashrateTHs  float64 `json:"hashrate_ths"`
	PowerKW      float64 `json:"power_kw"`
	ReleaseYear  int     `json:"release_year,omitempty"`
}

func (m MinerSpec) Validate() error {
	if m.Model == "" {
		return errors.New("model is required")
	}
	if m.CostUSD < 0 || m.HashrateTHs < 0 || m.PowerKW < 0 {
		return errors.New("cost, hashrate_ths and power_kw must be >= 0")
	}
	return nil
}

// EfficiencyJPerTH is watts per TH/s, i.e. joules per terahash.
// Returns 0 for a zero-hashrate row.
func (m MinerSpec) EfficiencyJPerTH() float64 {
	if m.HashrateTHs <= 0 {
		return 0
	}
	return m.PowerKW * 1000 / m.HashrateTHs
}

// ApplyTo copies the hardware fields onto simulation parameters.
func (m MinerSpec) ApplyTo(p *SimulationParameters) {
	p.MinerUnitCostUSD = m.CostUSD
	p.MinerHashrateTHs = m.HashrateTHs
	p.MinerPowerKW = m.PowerKW
}
