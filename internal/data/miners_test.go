package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-mining-sim/internal/model"
)

const sampleMiners = `model,manufacturer,cost,hashrate_ths,power_kw,release_year
S21,Bitmain,"$3,500",200,3.5,2024
M60S,MicroBT,2800,186,3.4,
`

func TestDecodeMiners(t *testing.T) {
	miners, err := DecodeMiners(strings.NewReader(sampleMiners))
	require.NoError(t, err)
	require.Len(t, miners, 2)

	assert.Equal(t, "S21", miners[0].Model)
	assert.Equal(t, 3500.0, miners[0].CostUSD)
	assert.Equal(t, 2024, miners[0].ReleaseYear)
	assert.Equal(t, 0, miners[1].ReleaseYear)
}

func TestDecodeMiners_MissingColumn(t *testing.T) {
	_, err := DecodeMiners(strings.NewReader("model,cost\nS9,100\n"))
	assert.Error(t, err)
}

func TestDecodeMiners_BadNumber(t *testing.T) {
	_, err := DecodeMiners(strings.NewReader("model,cost,hashrate_ths,power_kw\nS9,abc,13.5,1.3\n"))
	assert.ErrorContains(t, err, "cost")
}

func TestLoadMiners_MissingFileIsEmpty(t *testing.T) {
	s, err := LoadMiners(filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)
	assert.Empty(t, s.All())
}

func TestMinerStore_LookupUpsertSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miners.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleMiners), 0644))

	s, err := LoadMiners(path)
	require.NoError(t, err)

	m, err := s.Lookup("s21")
	require.NoError(t, err)
	assert.Equal(t, "Bitmain", m.Manufacturer)

	_, err = s.Lookup("S9")
	assert.ErrorIs(t, err, ErrMinerNotFound)

	added, err := s.Upsert(model.MinerSpec{Model: "S21", Manufacturer: "Bitmain", CostUSD: 3000, HashrateTHs: 200, PowerKW: 3.5})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, s.All(), 2)

	added, err = s.Upsert(model.MinerSpec{Model: "S19", Manufacturer: "Bitmain", CostUSD: 900, HashrateTHs: 95, PowerKW: 3.25, ReleaseYear: 2020})
	require.NoError(t, err)
	assert.True(t, added)

	_, err = s.Upsert(model.MinerSpec{Model: ""})
	assert.Error(t, err)

	require.NoError(t, s.Save())

	reloaded, err := LoadMiners(path)
	require.NoError(t, err)
	all := reloaded.All()
	require.Len(t, all, 3)
	assert.Equal(t, "M60S", all[0].Model)
	assert.Equal(t, "S19", all[1].Model)
	assert.Equal(t, 3000.0, all[2].CostUSD)
}

func TestMinerStore_ConcurrentSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "miners.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleMiners), 0644))

	s, err := LoadMiners(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Upsert(model.MinerSpec{Model: fmt.Sprintf("Unit %02d", i), Manufacturer: "Test", CostUSD: 1000, HashrateTHs: 100, PowerKW: 3})
			assert.NoError(t, err)
			assert.NoError(t, s.Save())
		}(i)
	}
	wg.Wait()
	require.NoError(t, s.Save())

	reloaded, err := LoadMiners(path)
	require.NoError(t, err)
	assert.Len(t, reloaded.All(), 52)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "miners.csv", entries[0].Name())
}

func TestMinerStore_SaveWithoutPath(t *testing.T) {
	assert.Error(t, (&MinerStore{}).Save())
}
