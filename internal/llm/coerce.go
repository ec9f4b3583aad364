package llm

import (
	"encoding/json"
	"strings"
)

// CoerceJSON turns an arbitrary model response into a parsed JSON object.
// The whole string is tried first; on failure the largest brace-delimited
// block is extracted and reparsed, which recovers objects wrapped in
// commentary ("Sure, here you go: {...} thanks"). No semantic validation
// happens here.
func CoerceJSON(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyOutput
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err == nil {
		return m, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, &MalformedOutputError{Snippet: snippet(s)}
	}
	blk := s[start : end+1]
	if err := json.Unmarshal([]byte(blk), &m); err != nil {
		return nil, &MalformedOutputError{Snippet: snippet(s), Cause: err}
	}
	return m, nil
}
