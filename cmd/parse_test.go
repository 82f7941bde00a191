package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cardscan-cli/internal/model"
)

func TestParse_Stdin(t *testing.T) {
	var out bytes.Buffer
	parseCmd.SetIn(strings.NewReader("Cal Ripken\nOrioles \"Shortstop\"\nHT: 6'4\" WT: 200"))
	parseCmd.SetOut(&out)

	require.NoError(t, parseCmd.RunE(parseCmd, nil))

	var record model.CardRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "Cal Ripken", record.PlayerName)
	assert.Equal(t, "Cal", record.FirstName)
	assert.Equal(t, "Ripken", record.LastName)
	assert.Equal(t, "Orioles", record.Team)
	assert.Equal(t, 200, record.WeightLbs)
	assert.Equal(t, "card 1", record.CardPosition)
}
