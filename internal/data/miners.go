package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"btc-mining-sim/internal/model"
)

// MinerStore is a CSV-backed table of miner hardware specs.
//
// Columns: model, manufacturer, cost, hashrate_ths, power_kw, release_year.
// Only model, cost, hashrate_ths and power_kw are required. Header names are
// matched case-insensitively.
type MinerStore struct {
	mu     sync.RWMutex
	saveMu sync.Mutex
	path   string
	miners []model.MinerSpec
}

var minerHeader = []string{"model", "manufacturer", "cost", "hashrate_ths", "power_kw", "release_year"}

// ErrMinerNotFound is returned by Lookup for an unknown model.
var ErrMinerNotFound = errors.New("miner not found")

// LoadMiners reads the store at path. A missing file yields an empty store.
func LoadMiners(path string) (*MinerStore, error) {
	s := &MinerStore{path: path}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to open miners file: %w", err)
	}
	defer f.Close()

	miners, err := DecodeMiners(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse miners file %s: %w", path, err)
	}
	s.miners = miners
	return s, nil
}

// DecodeMiners parses miner rows from CSV.
func DecodeMiners(r io.Reader) ([]model.MinerSpec, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"model", "cost", "hashrate_ths", "power_kw"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var out []model.MinerSpec
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		m := model.MinerSpec{
			Model:        get("model"),
			Manufacturer: get("manufacturer"),
		}
		if m.Model == "" {
			continue
		}
		if m.CostUSD, err = parseNumber(get("cost")); err != nil {
			return nil, fmt.Errorf("line %d cost: %w", line, err)
		}
		if m.HashrateTHs, err = parseNumber(get("hashrate_ths")); err != nil {
			return nil, fmt.Errorf("line %d hashrate_ths: %w", line, err)
		}
		if m.PowerKW, err = parseNumber(get("power_kw")); err != nil {
			return nil, fmt.Errorf("line %d power_kw: %w", line, err)
		}
		if ry := get("release_year"); ry != "" {
			y, err := parseNumber(ry)
			if err != nil {
				return nil, fmt.Errorf("line %d release_year: %w", line, err)
			}
			m.ReleaseYear = int(y)
		}
		out = append(out, m)
	}
	return out, nil
}

// parseNumber accepts currency-formatted values like "$1,299.00".
func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Path is the backing file.
func (s *MinerStore) Path() string { return s.path }

// All returns a copy of the stored specs sorted by model.
func (s *MinerStore) All() []model.MinerSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MinerSpec, len(s.miners))
	copy(out, s.miners)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Lookup finds a spec by model name, case-insensitively.
func (s *MinerStore) Lookup(name string) (model.MinerSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.miners {
		if strings.EqualFold(m.Model, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return model.MinerSpec{}, fmt.Errorf("%w: %q", ErrMinerNotFound, name)
}

// Upsert replaces the row with the same model and manufacturer, or appends.
// It reports whether a new row was added.
func (s *MinerStore) Upsert(m model.MinerSpec) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.miners {
		if strings.EqualFold(existing.Model, m.Model) && strings.EqualFold(existing.Manufacturer, m.Manufacturer) {
			s.miners[i] = m
			return false, nil
		}
	}
	s.miners = append(s.miners, m)
	return true, nil
}

// Save writes the store back to its file.
func (s *MinerStore) Save() error {
	if s.path == "" {
		return errors.New("miner store has no path")
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write miners file: %w", err)
	}
	tmp := f.Name()
	if err := s.encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write miners file: %w", err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write miners file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace miners file: %w", err)
	}
	return nil
}

func (s *MinerStore) encode(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(minerHeader); err != nil {
		return err
	}
	for _, m := range s.All() {
		ry := ""
		if m.ReleaseYear != 0 {
			ry = strconv.Itoa(m.ReleaseYear)
		}
		row := []string{
			m.Model,
			m.Manufacturer,
			strconv.FormatFloat(m.CostUSD, 'f', -1, 64),
			strconv.FormatFloat(m.HashrateTHs, 'f', -1, 64),
			strconv.FormatFloat(m.PowerKW, 'f', -1, 64),
			ry,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// GetDefaultMinersPath returns the default path for the miners file
func GetDefaultMinersPath() string {
	if path := os.Getenv("MINERS_FILE"); path != "" {
		return path
	}
	return "./data/miners.csv"
}
