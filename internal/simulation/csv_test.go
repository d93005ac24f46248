package simulation

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-mining-sim/internal/model"
)

func TestEncodeRecordsCSV(t *testing.T) {
	p := workedExample()
	p.HorizonYears = 2
	res, err := New().Run(p)
	require.NoError(t, err)

	hodl := p
	hodl.Strategy = model.StrategyHODL
	hres, err := New().Run(hodl)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeRecordsCSV(&buf, append(res.Records, hres.Records...)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Miners Only", rows[1][0])
	assert.Equal(t, "100", rows[1][5])

	// HODL suite metrics are blank, not NaN.
	last := rows[4]
	for _, cell := range last[len(last)-4:] {
		assert.Empty(t, cell)
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	res, err := New().Run(workedExample())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteRecordsCSV(path, res.Records))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "strategy,year,calendar_year")
}
