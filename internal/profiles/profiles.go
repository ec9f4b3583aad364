// Package profiles loads client-context profiles injected into the extraction
// prompt: a base profile plus an optional per-client overlay. Profile trouble
// is never fatal; extraction proceeds with an empty block.
package profiles

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Loader struct {
	Dir    string // directory holding base.yaml and <client>.yaml
	Client string // client name; empty means base only
	Logger *slog.Logger
}

func NewLoader(dir, client string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Dir: dir, Client: strings.ToLower(strings.TrimSpace(client)), Logger: logger}
}

// ProfileJSON returns the merged profile as a compact JSON string, or "" when
// no profile data exists.
func (l *Loader) ProfileJSON() (string, error) {
	base := l.readYAML(filepath.Join(l.Dir, "base.yaml"))
	merged := base
	if l.Client != "" {
		overlay := l.readYAML(filepath.Join(l.Dir, l.Client+".yaml"))
		merged = Merge(base, overlay)
	}
	if len(merged) == 0 {
		return "", nil
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(b), nil
}

// readYAML reads a YAML mapping, returning an empty map on any trouble.
func (l *Loader) readYAML(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.Logger.Warn("profiles.read_failed", "path", path, "error", err)
		}
		return map[string]any{}
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		l.Logger.Warn("profiles.parse_failed", "path", path, "error", err)
		return map[string]any{}
	}
	if m == nil {
		return map[string]any{}
	}
	return m
}

// Merge overlays override onto base, shallow per key: a nested map merges one
// level (override wins per key), anything else replaces. Neither input is
// mutated.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		ov, ovIsMap := v.(map[string]any)
		bv, bvIsMap := out[k].(map[string]any)
		if ovIsMap && bvIsMap {
			nested := make(map[string]any, len(bv)+len(ov))
			for nk, nv := range bv {
				nested[nk] = nv
			}
			for nk, nv := range ov {
				nested[nk] = nv
			}
			out[k] = nested
			continue
		}
		out[k] = v
	}
	return out
}
