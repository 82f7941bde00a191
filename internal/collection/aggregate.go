package collection

import (
	"sort"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// unknownKey is the sentinel frequency key for cards missing a field.
const unknownKey = "unknown"

// topPlayersLimit caps the players list in the summary.
const topPlayersLimit = 10

// Count is one frequency-table entry.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CollectionSummary is the pure reduction over a set of sheet results.
type CollectionSummary struct {
	TotalSheets      int     `json:"total_sheets"`
	TotalCards       int     `json:"total_cards"`
	TotalValue       float64 `json:"total_estimated_value"`
	AverageCardValue float64 `json:"average_card_value"`
	TopPlayers       []Count `json:"top_players"`
	Teams            []Count `json:"teams"`
	Years            []Count `json:"years"`
}

// Aggregate reduces sheet results into a collection summary. The average
// divides by the total card count, so cards without a market value pull the
// average down rather than dropping out of the denominator.
func Aggregate(results []model.PipelineResult) CollectionSummary {
	players := newCounter()
	teams := newCounter()
	years := newCounter()

	summary := CollectionSummary{TotalSheets: len(results)}
	for _, result := range results {
		for i := range result.Cards {
			card := &result.Cards[i]
			summary.TotalCards++
			if card.MarketValue != nil {
				summary.TotalValue += card.MarketValue.AvgSoldPrice
			}
			players.add(orUnknown(card.PlayerName))
			teams.add(orUnknown(card.Team))
			years.add(orUnknown(card.Year))
		}
	}

	summary.TotalValue = model.Round2(summary.TotalValue)
	if summary.TotalCards > 0 {
		summary.AverageCardValue = model.Round2(summary.TotalValue / float64(summary.TotalCards))
	}

	summary.TopPlayers = players.byCountDesc()
	if len(summary.TopPlayers) > topPlayersLimit {
		summary.TopPlayers = summary.TopPlayers[:topPlayersLimit]
	}
	summary.Teams = teams.byCountDesc()
	summary.Years = years.byKeyAsc()
	return summary
}

func orUnknown(s string) string {
	if s == "" {
		return unknownKey
	}
	return s
}

// counter is a frequency table that remembers first-encountered order so
// equal counts sort deterministically.
type counter struct {
	counts map[string]int
	order  map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}, order: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order[key] = len(c.order)
	}
	c.counts[key]++
}

func (c *counter) entries() []Count {
	entries := make([]Count, 0, len(c.counts))
	for key, n := range c.counts {
		entries = append(entries, Count{Key: key, Count: n})
	}
	return entries
}

func (c *counter) byCountDesc() []Count {
	entries := c.entries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.order[entries[i].Key] < c.order[entries[j].Key]
	})
	return entries
}

func (c *counter) byKeyAsc() []Count {
	entries := c.entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}
