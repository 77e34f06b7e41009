package wt

import (
	"path"
	"strings"
)

// ignorePattern is a parsed ignore pattern with its matching strategy.
type ignorePattern struct {
	pattern   string
	matchPath bool // true = match against the path from the root; false = match against the node name only
}

// IgnoreMatcher checks remote folders and documents against a set of glob patterns.
// Patterns without '/' match against the node's name only.
// Patterns with '/' match against the slash-joined name path from the sync root.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings.
// Blank entries and entries starting with '#' are skipped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	var patterns []ignorePattern
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		patterns = append(patterns, ignorePattern{
			pattern:   raw,
			matchPath: strings.Contains(raw, "/"),
		})
	}
	return &IgnoreMatcher{patterns: patterns}
}

// Match reports whether a node with the given name, located at relPath
// below the sync root, should be skipped. A nil matcher matches nothing.
func (m *IgnoreMatcher) Match(name, relPath string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	for _, p := range m.patterns {
		var matched bool
		var err error
		if p.matchPath {
			matched, err = path.Match(p.pattern, relPath)
		} else {
			matched, err = path.Match(p.pattern, name)
		}
		if err != nil {
			// Bad pattern: skip rather than fail the run.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
