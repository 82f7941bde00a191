package model

import (
	"fmt"
	"math"
)

// Handedness values recognized on card backs.
const (
	HandLeft   = "Left"
	HandRight  = "Right"
	HandBoth   = "Both"
	HandSwitch = "Switch"
)

// CardRecord is the structured state of one physical card. It is created
// once at extraction time and only ever appended to: enrichment and grading
// attach new sections but never overwrite fields that were already parsed.
type CardRecord struct {
	// Position is the 1-based index of the card within its sheet.
	Position     int    `json:"position"`
	CardPosition string `json:"card_position"`

	// RawText is the verbatim OCR output for this card. Immutable.
	RawText string `json:"raw_text"`

	// SheetMetadata is a copy of the caller-supplied sheet mapping.
	SheetMetadata map[string]string `json:"sheet_metadata,omitempty"`

	// Fields parsed from the raw text. All optional: an absent value means
	// the text did not yield a parseable match, not an error.
	PlayerName   string `json:"player_name,omitempty"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Team         string `json:"team,omitempty"`
	Role         string `json:"position_role,omitempty"`
	Height       string `json:"height,omitempty"`
	WeightLbs    int    `json:"weight_lbs,omitempty"`
	Bats         string `json:"bats,omitempty"`
	Throws       string `json:"throws,omitempty"`
	BirthDateRaw string `json:"birth_date_raw,omitempty"`
	Hometown     string `json:"hometown,omitempty"`
	Year         string `json:"year,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	CardCode     string `json:"card_code,omitempty"`

	// Sections attached by later stages. Append-only.
	MarketValue       *MarketValue       `json:"market_value,omitempty"`
	PlayerStats       *PlayerStats       `json:"player_stats,omitempty"`
	ConditionEstimate *ConditionEstimate `json:"condition_estimate,omitempty"`
	AIDescription     string             `json:"ai_description,omitempty"`
}

// MarketValue summarizes recent sold prices for a card.
type MarketValue struct {
	AvgSoldPrice  float64 `json:"avg_sold_price"`
	MinSoldPrice  float64 `json:"min_sold_price"`
	MaxSoldPrice  float64 `json:"max_sold_price"`
	NumSalesFound int     `json:"num_sales_found"`
	Source        string  `json:"source"`
}

// PlayerStats holds career statistics scraped for the card's player.
// Values are kept as the literal strings found on the source page.
type PlayerStats struct {
	CareerBattingAvg string `json:"career_batting_avg,omitempty"`
	CareerHomeRuns   string `json:"career_home_runs,omitempty"`
	CareerRBI        string `json:"career_rbi,omitempty"`
	Source           string `json:"source"`
	RefURL           string `json:"bbref_url,omitempty"`
}

// ConditionEstimate is a heuristic condition tier derived from extraction
// completeness, not from physical inspection.
type ConditionEstimate struct {
	Grade             string `json:"estimated_grade"`
	GradeNumeric      int    `json:"grade_numeric"`
	CompletenessScore int    `json:"completeness_score"`
	MaxScore          int    `json:"max_score"`
	Note              string `json:"note"`
}

// NewCardRecord creates the record for one card sub-image. position is the
// zero-based index within the sheet; it is stored as a 1-based label. The
// sheet metadata is copied, never aliased.
func NewCardRecord(rawText string, position int, sheetMetadata map[string]string) CardRecord {
	rec := CardRecord{
		Position:     position + 1,
		CardPosition: fmt.Sprintf("card %d", position+1),
		RawText:      rawText,
	}
	if len(sheetMetadata) > 0 {
		rec.SheetMetadata = make(map[string]string, len(sheetMetadata))
		for k, v := range sheetMetadata {
			rec.SheetMetadata[k] = v
		}
	}
	return rec
}

// HasMarketValue reports whether the enrichment stage attached pricing.
func (c *CardRecord) HasMarketValue() bool { return c.MarketValue != nil }

// HasPlayerStats reports whether the enrichment stage attached career stats.
func (c *CardRecord) HasPlayerStats() bool { return c.PlayerStats != nil }

// HasGrade reports whether the grading stage attached a condition estimate.
func (c *CardRecord) HasGrade() bool { return c.ConditionEstimate != nil }

// AttachMarketValue sets the market value section if it is not already
// present. Returns false when an existing section was kept.
func (c *CardRecord) AttachMarketValue(mv *MarketValue) bool {
	if c.MarketValue != nil || mv == nil {
		return false
	}
	c.MarketValue = mv
	return true
}

// AttachPlayerStats sets the player stats section if it is not already present.
func (c *CardRecord) AttachPlayerStats(ps *PlayerStats) bool {
	if c.PlayerStats != nil || ps == nil {
		return false
	}
	c.PlayerStats = ps
	return true
}

// AttachGrade sets the condition estimate if it is not already present.
func (c *CardRecord) AttachGrade(ce *ConditionEstimate) bool {
	if c.ConditionEstimate != nil || ce == nil {
		return false
	}
	c.ConditionEstimate = ce
	return true
}

// AttachDescription sets the generated description if none exists yet.
func (c *CardRecord) AttachDescription(text string) bool {
	if c.AIDescription != "" || text == "" {
		return false
	}
	c.AIDescription = text
	return true
}

// Round2 rounds a price to two decimal places, the precision used in all
// persisted artifacts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
