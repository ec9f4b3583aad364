package ocr

import (
	"regexp"
	"strings"
)

var (
	reTolerance  = regexp.MustCompile(`±|\+/-|\btol(?:erance|eranties)?\b`)
	reMaterial   = regexp.MustCompile(`\b(material|materiaal|quality|kwaliteit)\b`)
	reDrawingRef = regexp.MustCompile(`\b(drawing|tekening|rev(?:ision|isie)?)\b`)
)

// heuristicConfidence scores decoded text on the presence of title-block
// artifacts a readable drawing should contain.
func heuristicConfidence(txt string) float32 {
	lt := strings.ToLower(txt)
	score := float32(0.2) // base
	if reTolerance.MatchString(lt) {
		score += 0.25
	}
	if reMaterial.MatchString(lt) {
		score += 0.2
	}
	if reDrawingRef.MatchString(lt) {
		score += 0.15
	}
	if len(txt) > 200 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
