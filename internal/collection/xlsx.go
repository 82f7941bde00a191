package collection

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX exports a collection summary as a workbook with one sheet per
// frequency table.
func WriteXLSX(path string, s CollectionSummary) error {
	f := xlsx.NewFile()

	overview, err := f.AddSheet("Overview")
	if err != nil {
		return eris.Wrap(err, "xlsx: add overview sheet")
	}
	addStringRow(overview, "Metric", "Value")
	addMetricRow(overview, "Sheets", float64(s.TotalSheets))
	addMetricRow(overview, "Cards", float64(s.TotalCards))
	addMetricRow(overview, "Total value", s.TotalValue)
	addMetricRow(overview, "Avg card value", s.AverageCardValue)

	for _, section := range []struct {
		name    string
		label   string
		entries []Count
	}{
		{"Players", "Player", s.TopPlayers},
		{"Teams", "Team", s.Teams},
		{"Years", "Year", s.Years},
	} {
		sheet, err := f.AddSheet(section.name)
		if err != nil {
			return eris.Wrapf(err, "xlsx: add %s sheet", section.name)
		}
		addStringRow(sheet, section.label, "Count")
		for _, e := range section.entries {
			row := sheet.AddRow()
			row.AddCell().Value = e.Key
			row.AddCell().SetInt(e.Count)
		}
	}

	return eris.Wrap(f.Save(path), "xlsx: save")
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func addMetricRow(sheet *xlsx.Sheet, label string, value float64) {
	row := sheet.AddRow()
	row.AddCell().Value = label
	row.AddCell().SetFloatWithFormat(value, "0.00")
}
