package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/cardscan-cli/internal/model"
)

// statRule pairs a case-insensitive label matcher with a value extractor.
// A label hit without a value hit is a soft-miss: the field stays unset and
// no error is raised. Each rule is pure and can be exercised in isolation.
type statRule struct {
	name   string
	label  *regexp.Regexp
	value  *regexp.Regexp
	assign func(rec *model.CardRecord, m []string)
}

// statRules is the ordered cascade applied to every non-empty line, in the
// priority order of the card-back layout.
var statRules = []statRule{
	{
		name:  "height",
		label: regexp.MustCompile(`(?i)ht:|height:`),
		value: regexp.MustCompile(`(\d'\d+")`),
		assign: func(rec *model.CardRecord, m []string) {
			rec.Height = m[1]
		},
	},
	{
		name:  "weight",
		label: regexp.MustCompile(`(?i)wt:|weight:`),
		value: regexp.MustCompile(`(?i)wt:\s*(\d+)`),
		assign: func(rec *model.CardRecord, m []string) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				rec.WeightLbs = n
			}
		},
	},
	{
		name:  "bats",
		label: regexp.MustCompile(`(?i)bats:`),
		value: regexp.MustCompile(`(?i)bats:\s*(left|right|both|switch)`),
		assign: func(rec *model.CardRecord, m []string) {
			rec.Bats = titleCase(m[1])
		},
	},
	{
		name:  "throws",
		label: regexp.MustCompile(`(?i)throws:`),
		value: regexp.MustCompile(`(?i)throws:\s*(left|right)`),
		assign: func(rec *model.CardRecord, m []string) {
			rec.Throws = titleCase(m[1])
		},
	},
	{
		name:  "born",
		label: regexp.MustCompile(`(?i)born:`),
		value: regexp.MustCompile(`(?i)born:\s*([\d-]+\s*,\d{4})`),
		assign: func(rec *model.CardRecord, m []string) {
			rec.BirthDateRaw = m[1]
		},
	},
	{
		name:  "hometown",
		label: regexp.MustCompile(`(?i)home:`),
		value: regexp.MustCompile(`(?i)home:\s*(.+)`),
		assign: func(rec *model.CardRecord, m []string) {
			rec.Hometown = titleCase(strings.TrimSpace(m[1]))
		},
	},
}

// applyStatRule runs one rule against one line. The label gate and the
// value extraction are independent checks; only a hit on both assigns.
func applyStatRule(r statRule, rec *model.CardRecord, line string) bool {
	if !r.label.MatchString(line) {
		return false
	}
	m := r.value.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	r.assign(rec, m)
	return true
}

// Whole-text scans, not restricted to single lines.
var (
	copyrightExpr = regexp.MustCompile(`(?i)©\s*(\d{4})\s*THE TOPPS`)
	cardCodeExpr  = regexp.MustCompile(`(?i)CODE[#:]?\s*([A-Z0-9-]+)`)
)
