package collection

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func sampleSummary() CollectionSummary {
	return CollectionSummary{
		TotalSheets:      2,
		TotalCards:       18,
		TotalValue:       245.5,
		AverageCardValue: 13.64,
		TopPlayers:       []Count{{Key: "Ken Griffey Jr", Count: 3}, {Key: "unknown", Count: 2}},
		Teams:            []Count{{Key: "Mariners", Count: 3}},
		Years:            []Count{{Key: "1989", Count: 3}},
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleSummary())
	assert.Contains(t, out, "Ken Griffey Jr")
	assert.Contains(t, out, "$245.50")
	assert.Contains(t, out, "Mariners")
	assert.Contains(t, out, "1989")
	assert.Contains(t, out, "Avg card value")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.xlsx")
	require.NoError(t, WriteXLSX(path, sampleSummary()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 4)

	players := f.Sheet["Players"]
	require.NotNil(t, players)
	require.GreaterOrEqual(t, len(players.Rows), 3)
	assert.Equal(t, "Ken Griffey Jr", players.Rows[1].Cells[0].Value)
	assert.Equal(t, "3", players.Rows[1].Cells[1].Value)
}
