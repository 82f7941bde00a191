// Package extract converts raw OCR text for one card into a structured
// record via ordered line-positional heuristics and a regex rule cascade.
// Extraction is total: any input, including empty or garbage text, yields a
// record. Unparseable fields are left absent rather than reported as errors.
package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// Extract parses the raw text of a single card. position is the zero-based
// index within the sheet; sheetMetadata is copied into the record. The
// function is pure and never fails.
func Extract(rawText string, position int, sheetMetadata map[string]string) model.CardRecord {
	rec := model.NewCardRecord(rawText, position, sheetMetadata)

	lines := splitLines(rawText)

	parseName(&rec, lines)
	parseTeamRole(&rec, lines)

	// Remaining lines are scanned independently; rule order decides nothing
	// across lines, and a later match for the same label wins.
	for _, line := range lines {
		for _, r := range statRules {
			applyStatRule(r, &rec, line)
		}
	}

	parseCopyright(&rec, rawText)
	parseCardCode(&rec, rawText)

	return rec
}

// splitLines returns the trimmed, non-empty lines of the input in order.
func splitLines(raw string) []string {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// parseName treats line 0 as the player name: hyphens become spaces, the
// result is title-cased, the first token is the first name and the rest the
// surname. A single-token line yields an empty surname; an empty token list
// leaves both fields as empty strings. This is a convention, not an error.
func parseName(rec *model.CardRecord, lines []string) {
	if len(lines) == 0 {
		return
	}
	normalized := strings.ReplaceAll(lines[0], "-", " ")
	tokens := strings.Fields(titleCase(normalized))
	if len(tokens) == 0 {
		return
	}
	rec.PlayerName = strings.Join(tokens, " ")
	rec.FirstName = tokens[0]
	rec.LastName = strings.Join(tokens[1:], " ")
}

// parseTeamRole parses line 1 only when it has the shape
// <team>"<filler>"<position>. Any other shape leaves both fields absent;
// no partial recovery is attempted for this line.
func parseTeamRole(rec *model.CardRecord, lines []string) {
	if len(lines) < 2 || !strings.Contains(lines[1], `"`) {
		return
	}
	parts := strings.Split(lines[1], `"`)
	if len(parts) < 3 {
		return
	}
	rec.Team = titleCase(strings.TrimSpace(parts[0]))
	rec.Role = titleCase(strings.TrimSpace(parts[2]))
}

// parseCopyright scans the entire raw text for a copyright-symbol year and
// publisher marker. Absence leaves year and manufacturer unset.
func parseCopyright(rec *model.CardRecord, raw string) {
	if m := copyrightExpr.FindStringSubmatch(raw); m != nil {
		rec.Year = m[1]
		rec.Manufacturer = "Topps"
	}
}

// parseCardCode scans the entire raw text for a CODE label followed by an
// alphanumeric token.
func parseCardCode(rec *model.CardRecord, raw string) {
	if m := cardCodeExpr.FindStringSubmatch(raw); m != nil {
		rec.CardCode = strings.TrimSpace(m[1])
	}
}

// titleCase applies English title casing, matching the normalization used
// for names, teams and hometowns on card backs.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
