package normalize

import (
	"regexp"
	"strings"
)

var (
	// reMaterialGrade recognizes common grade notations: stainless 304/304L/
	// 316/316L, A2/A4, structural "S" + 3 digits, European numeric grades
	// 1.dddd, EN AW wrought aluminum, AlMg alloys.
	reMaterialGrade = regexp.MustCompile(`(?i)\b(304L?|316L?|A2|A4|S\s*\d{3}|1\.\d{4}|EN\s*AW-\d+|AlMg\d)\b`)

	// reFormWords matches stock-form qualifiers that contaminate a grade
	// string ("304 round bar" -> "304").
	reFormWords = regexp.MustCompile(`(?i)\b(sheet|plate|round\s*bar|square\s*bar|flat\s*bar|tube|pipe)\b`)
)

// cleanMaterialGrade strips form words and surrounding punctuation; returns
// "" when nothing substantive remains.
func cleanMaterialGrade(s string) string {
	return strings.Trim(reFormWords.ReplaceAllString(s, ""), " -_,")
}

// inferMaterialGrade scans free text for the first recognizable grade
// notation, uppercased with internal spaces removed ("s 235" -> "S235").
func inferMaterialGrade(text string) string {
	m := reMaterialGrade.FindString(text)
	if m == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(m, " ", ""))
}

// matchMaterialGrade returns the raw grade substring within s, if any.
func matchMaterialGrade(s string) (string, bool) {
	m := reMaterialGrade.FindString(s)
	return m, m != ""
}
