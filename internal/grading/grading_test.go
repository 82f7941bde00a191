package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/cardscan-cli/internal/model"
)

func TestGrade_NearMintFromFiveFieldsAndLongText(t *testing.T) {
	rec := &model.CardRecord{
		RawText:      strings.Repeat("x", 250),
		PlayerName:   "Mike Trout",
		Team:         "Angels",
		Role:         "Outfielder",
		Year:         "2012",
		Manufacturer: "Topps",
	}
	ce := Grade(rec)

	// 6 field points + 2 length points, no physical stats.
	assert.Equal(t, 8, ce.CompletenessScore)
	assert.Equal(t, "near mint", ce.Grade)
	assert.Equal(t, 7, ce.GradeNumeric)
	assert.Equal(t, 10, ce.MaxScore)
}

func TestGrade_EmptyRecordIsPoor(t *testing.T) {
	ce := Grade(&model.CardRecord{})
	assert.Equal(t, 0, ce.CompletenessScore)
	assert.Equal(t, "poor", ce.Grade)
	assert.Equal(t, 2, ce.GradeNumeric)
}

func TestGrade_MaxScoreIsMint(t *testing.T) {
	rec := &model.CardRecord{
		RawText:      strings.Repeat("x", 201),
		PlayerName:   "Mike Trout",
		Team:         "Angels",
		Role:         "Outfielder",
		Year:         "2012",
		Manufacturer: "Topps",
		Height:       `6'2"`,
		WeightLbs:    235,
		Bats:         "Right",
		Throws:       "Right",
	}
	ce := Grade(rec)
	assert.Equal(t, 10, ce.CompletenessScore)
	assert.Equal(t, "mint", ce.Grade)
	assert.Equal(t, 9, ce.GradeNumeric)
}

func TestGrade_ExcellentKeepsNumericSix(t *testing.T) {
	// 2 (name) + 1 (team) + 1 (position) + 1 (mid-length text) = 5.
	rec := &model.CardRecord{
		RawText:    strings.Repeat("x", 150),
		PlayerName: "Mike Trout",
		Team:       "Angels",
		Role:       "Outfielder",
	}
	ce := Grade(rec)
	assert.Equal(t, 5, ce.CompletenessScore)
	assert.Equal(t, "excellent", ce.Grade)
	assert.Equal(t, 6, ce.GradeNumeric)
}

func TestGrade_PartialPhysicalStatsScoreNothing(t *testing.T) {
	withHeightOnly := Grade(&model.CardRecord{Height: `6'0"`})
	assert.Equal(t, 0, withHeightOnly.CompletenessScore)

	withBatsOnly := Grade(&model.CardRecord{Bats: "Left"})
	assert.Equal(t, 0, withBatsOnly.CompletenessScore)
}

func TestTextLengthPoints(t *testing.T) {
	assert.Equal(t, 0, textLengthPoints(0))
	assert.Equal(t, 0, textLengthPoints(100))
	assert.Equal(t, 1, textLengthPoints(101))
	assert.Equal(t, 1, textLengthPoints(200))
	assert.Equal(t, 2, textLengthPoints(201))
}

func TestMapTier_Boundaries(t *testing.T) {
	cases := []struct {
		score   int
		grade   string
		numeric int
	}{
		{10, "mint", 9},
		{9, "mint", 9},
		{8, "near mint", 7},
		{7, "near mint", 7},
		{6, "excellent", 6},
		{5, "excellent", 6},
		{4, "good", 4},
		{3, "good", 4},
		{2, "poor", 2},
		{0, "poor", 2},
	}
	for _, tc := range cases {
		grade, numeric := mapTier(tc.score)
		assert.Equal(t, tc.grade, grade, "score %d", tc.score)
		assert.Equal(t, tc.numeric, numeric, "score %d", tc.score)
	}
}
