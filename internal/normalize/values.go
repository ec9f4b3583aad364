package normalize

import (
	"regexp"
	"strings"
)

var reWS = regexp.MustCompile(`\s+`)

func collapseWS(s string) string {
	return strings.TrimSpace(reWS.ReplaceAllString(s, " "))
}

// cleanScalar coerces an untrusted value to a single-line string pointer.
// Newlines and carriage returns become spaces; blank-after-trim becomes nil.
// Non-string values are treated as absent.
func cleanScalar(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// toStringList coerces an untrusted value to a list of cleaned strings. A
// scalar string becomes a single-element list (empty when blank); anything
// else yields an empty list. Elements are whitespace-collapsed and empties
// are dropped.
func toStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				continue
			}
			s = collapseWS(s)
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			s = collapseWS(s)
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		s := collapseWS(t)
		if s == "" {
			return []string{}
		}
		return []string{s}
	default:
		return []string{}
	}
}

// toBool reads a tri-state boolean: an explicit model value wins, anything
// else reads as unset.
func toBool(v any) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}

// dedupeNotes removes case-insensitive duplicates, preserving first-seen
// order and original casing.
func dedupeNotes(notes []string) []string {
	seen := make(map[string]struct{}, len(notes))
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		n = collapseWS(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
