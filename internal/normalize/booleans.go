package normalize

import "strings"

// Keyword phrases that imply a boolean flag when found in the source text
// (English plus Dutch, the languages the drawings mix). Package vars rather
// than constants: deployments extend these per client base.
var (
	BreakSharpEdgesKeywords = []string{
		"break sharp edges",
		"scherpe kanten breken",
		"deburr edges",
		"remove sharp edges",
	}

	RetainingRingGroovesSharpKeywords = []string{
		"retaining ring grooves sharp",
		"seegerring-groeven scherp",
		"seegerringgroeven scherp",
		"keep ring grooves sharp",
	}
)

// inferFlag reports whether any keyword occurs in the text (case-insensitive).
func inferFlag(rawText string, keywords []string) bool {
	lt := strings.ToLower(rawText)
	for _, kw := range keywords {
		if strings.Contains(lt, kw) {
			return true
		}
	}
	return false
}
