package normalize

import (
	"strings"

	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// micrometer unit variants seen in model output: the micro sign, the Greek
// mu, and the ASCII fallback "um". Canonical rendering is "µm".
const microSign = "µ"

func canonicalRoughnessUnit(u string) string {
	u = strings.TrimSpace(strings.ReplaceAll(u, "μ", microSign))
	switch strings.ToLower(u) {
	case "um", "µm":
		return microSign + "m"
	default:
		return u
	}
}

// normalizeRoughness coerces an untrusted value into a surface-roughness
// sub-record. Present but non-object values yield nil.
func normalizeRoughness(v any) *schema.SurfaceRoughness {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var sr schema.SurfaceRoughness
	if s, ok := obj["standard"].(string); ok {
		sr.Standard = collapseWS(s)
	}
	if s, ok := obj["parameter"].(string); ok {
		sr.Parameter = strings.TrimSpace(s)
	}
	if s, ok := obj["value"].(string); ok {
		sr.Value = normDecimal(s)
	}
	if s, ok := obj["unit"].(string); ok {
		sr.Unit = canonicalRoughnessUnit(s)
	}
	if sr == (schema.SurfaceRoughness{}) {
		return nil
	}
	return &sr
}

// normalizeTolerancing coerces an untrusted value into a tolerancing
// sub-record (standard + scope), collapsing whitespace in both.
func normalizeTolerancing(v any) *schema.Tolerancing {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var t schema.Tolerancing
	if s, ok := obj["standard"].(string); ok {
		t.Standard = collapseWS(s)
	}
	if s, ok := obj["scope"].(string); ok {
		t.Scope = collapseWS(s)
	}
	if t == (schema.Tolerancing{}) {
		return nil
	}
	return &t
}
