package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cardscan-cli/internal/model"
)

func card(player, team, year string, avgPrice float64) model.CardRecord {
	c := model.CardRecord{PlayerName: player, Team: team, Year: year}
	if avgPrice > 0 {
		c.MarketValue = &model.MarketValue{AvgSoldPrice: avgPrice}
	}
	return c
}

func TestAggregate_AverageDividesByTotalCards(t *testing.T) {
	results := []model.PipelineResult{{
		Cards: []model.CardRecord{
			card("A", "", "", 10),
			card("B", "", "", 20),
			card("C", "", "", 0),
			card("D", "", "", 0),
			card("E", "", "", 0),
		},
	}}

	s := Aggregate(results)
	assert.Equal(t, 5, s.TotalCards)
	assert.Equal(t, 30.0, s.TotalValue)
	// Cards without a value stay in the denominator: 30/5, not 30/2.
	assert.Equal(t, 6.0, s.AverageCardValue)
}

func TestAggregate_UnknownSentinel(t *testing.T) {
	results := []model.PipelineResult{{
		Cards: []model.CardRecord{
			card("", "", "", 0),
			card("Hank Aaron", "Braves", "1957", 0),
		},
	}}

	s := Aggregate(results)
	require.Len(t, s.TopPlayers, 2)
	assert.Equal(t, Count{Key: "unknown", Count: 1}, s.TopPlayers[0])
	assert.Equal(t, Count{Key: "Hank Aaron", Count: 1}, s.TopPlayers[1])
	assert.Contains(t, s.Teams, Count{Key: "unknown", Count: 1})
	assert.Contains(t, s.Years, Count{Key: "1957", Count: 1})
}

func TestAggregate_TopPlayersStableTieBreak(t *testing.T) {
	var cards []model.CardRecord
	// Twelve distinct players, one card each; first-encountered order must
	// decide the cut at ten.
	for i := 0; i < 12; i++ {
		cards = append(cards, card(fmt.Sprintf("Player %02d", i), "", "", 0))
	}
	// A repeated player must outrank all the singles.
	cards = append(cards, card("Player 11", "", "", 0))

	s := Aggregate([]model.PipelineResult{{Cards: cards}})
	require.Len(t, s.TopPlayers, 10)
	assert.Equal(t, Count{Key: "Player 11", Count: 2}, s.TopPlayers[0])
	assert.Equal(t, "Player 00", s.TopPlayers[1].Key)
	assert.Equal(t, "Player 08", s.TopPlayers[9].Key)
}

func TestAggregate_TeamOrderAndYearOrder(t *testing.T) {
	results := []model.PipelineResult{{
		Cards: []model.CardRecord{
			card("A", "Mets", "1989", 0),
			card("B", "Yankees", "1975", 0),
			card("C", "Yankees", "1989", 0),
		},
	}}

	s := Aggregate(results)
	require.Len(t, s.Teams, 2)
	assert.Equal(t, "Yankees", s.Teams[0].Key)
	assert.Equal(t, 2, s.Teams[0].Count)

	require.Len(t, s.Years, 2)
	assert.Equal(t, "1975", s.Years[0].Key)
	assert.Equal(t, "1989", s.Years[1].Key)
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.TotalCards)
	assert.Equal(t, 0.0, s.AverageCardValue)
	assert.Empty(t, s.TopPlayers)
}

func TestAggregate_MultipleSheets(t *testing.T) {
	results := []model.PipelineResult{
		{Cards: []model.CardRecord{card("A", "Reds", "1980", 5)}},
		{Cards: []model.CardRecord{card("A", "Reds", "1981", 15)}},
	}

	s := Aggregate(results)
	assert.Equal(t, 2, s.TotalSheets)
	assert.Equal(t, 2, s.TotalCards)
	assert.Equal(t, 20.0, s.TotalValue)
	assert.Equal(t, 10.0, s.AverageCardValue)
	require.Len(t, s.TopPlayers, 1)
	assert.Equal(t, Count{Key: "A", Count: 2}, s.TopPlayers[0])
}
