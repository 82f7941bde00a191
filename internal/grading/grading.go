// Package grading estimates a card's condition tier from extraction
// completeness. The score is a proxy for scan quality only; the note on
// every estimate says as much.
package grading

import "github.com/sells-group/cardscan-cli/internal/model"

// MaxScore is the highest attainable completeness score.
const MaxScore = 10

const gradeNote = "estimate based on ocr quality, not physical inspection"

// predicate is one weighted contribution to the completeness score.
// Contributions are independent and additive; evaluation order is
// irrelevant to the result.
type predicate struct {
	name   string
	points int
	holds  func(rec *model.CardRecord) bool
}

var predicates = []predicate{
	{"player_name", 2, func(r *model.CardRecord) bool { return r.PlayerName != "" }},
	{"team", 1, func(r *model.CardRecord) bool { return r.Team != "" }},
	{"position", 1, func(r *model.CardRecord) bool { return r.Role != "" }},
	{"year", 1, func(r *model.CardRecord) bool { return r.Year != "" }},
	{"manufacturer", 1, func(r *model.CardRecord) bool { return r.Manufacturer != "" }},
	{"physical_build", 1, func(r *model.CardRecord) bool { return r.Height != "" && r.WeightLbs > 0 }},
	{"handedness", 1, func(r *model.CardRecord) bool { return r.Bats != "" && r.Throws != "" }},
}

// tier maps a minimum score to a named grade. Thresholds are evaluated
// high to low; the numeric label for "excellent" is 6 by longstanding
// convention of the scoring table.
type tier struct {
	minScore int
	grade    string
	numeric  int
}

var tiers = []tier{
	{9, "mint", 9},
	{7, "near mint", 7},
	{5, "excellent", 6},
	{3, "good", 4},
	{0, "poor", 2},
}

// Grade scores a record's completeness and maps it to a condition tier.
// Pure function of already-extracted fields plus raw text length; always
// returns an estimate.
func Grade(rec *model.CardRecord) *model.ConditionEstimate {
	score := 0
	for _, p := range predicates {
		if p.holds(rec) {
			score += p.points
		}
	}
	score += textLengthPoints(len(rec.RawText))

	grade, numeric := mapTier(score)
	return &model.ConditionEstimate{
		Grade:             grade,
		GradeNumeric:      numeric,
		CompletenessScore: score,
		MaxScore:          MaxScore,
		Note:              gradeNote,
	}
}

// textLengthPoints rewards longer raw text: more recognized characters
// usually means a cleaner scan.
func textLengthPoints(n int) int {
	switch {
	case n > 200:
		return 2
	case n > 100:
		return 1
	default:
		return 0
	}
}

func mapTier(score int) (string, int) {
	for _, t := range tiers {
		if score >= t.minScore {
			return t.grade, t.numeric
		}
	}
	// score below every threshold cannot happen with non-negative scores.
	last := tiers[len(tiers)-1]
	return last.grade, last.numeric
}
