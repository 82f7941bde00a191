package collection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable renders a collection summary as terminal tables.
func RenderTable(s CollectionSummary) string {
	var b strings.Builder

	overview := table.NewWriter()
	overview.SetStyle(table.StyleRounded)
	overview.AppendHeader(table.Row{"Metric", "Value"})
	overview.AppendRows([]table.Row{
		{"Sheets", s.TotalSheets},
		{"Cards", s.TotalCards},
		{"Total value", fmt.Sprintf("$%.2f", s.TotalValue)},
		{"Avg card value", fmt.Sprintf("$%.2f", s.AverageCardValue)},
	})
	b.WriteString(overview.Render())
	b.WriteString("\n")

	b.WriteString(renderCounts("Player", s.TopPlayers))
	b.WriteString("\n")
	b.WriteString(renderCounts("Team", s.Teams))
	b.WriteString("\n")
	b.WriteString(renderCounts("Year", s.Years))
	return b.String()
}

func renderCounts(label string, entries []Count) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{label, "Count"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Key, strconv.Itoa(e.Count)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return tw.Render()
}
