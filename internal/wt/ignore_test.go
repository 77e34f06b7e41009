package wt

import "testing"

func TestNewIgnoreMatcher(t *testing.T) {
	t.Run("skips blank entries and comments", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"", "  ", "# comment", "Archive*"})
		if len(m.patterns) != 1 {
			t.Fatalf("expected 1 pattern, got %d", len(m.patterns))
		}
		if m.patterns[0].pattern != "Archive*" {
			t.Errorf("expected Archive*, got %s", m.patterns[0].pattern)
		}
	})

	t.Run("classifies path vs name patterns", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"Archive*", "Drafts/Old"})
		if m.patterns[0].matchPath {
			t.Error("Archive* should not be a path pattern")
		}
		if !m.patterns[1].matchPath {
			t.Error("Drafts/Old should be a path pattern")
		}
	})
}

func TestIgnoreMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		nodeName string
		relPath  string
		want     bool
	}{
		{
			name:     "name glob matches at root",
			patterns: []string{"Archive*"},
			nodeName: "Archive 2023",
			relPath:  "Archive 2023",
			want:     true,
		},
		{
			name:     "name glob matches nested node",
			patterns: []string{"Archive*"},
			nodeName: "Archive",
			relPath:  "Novel/Archive",
			want:     true,
		},
		{
			name:     "name glob does not match other names",
			patterns: []string{"Archive*"},
			nodeName: "Chapter 1",
			relPath:  "Novel/Chapter 1",
			want:     false,
		},
		{
			name:     "path pattern matches exact path",
			patterns: []string{"Drafts/Old"},
			nodeName: "Old",
			relPath:  "Drafts/Old",
			want:     true,
		},
		{
			name:     "path pattern does not match other parent",
			patterns: []string{"Drafts/Old"},
			nodeName: "Old",
			relPath:  "Novel/Old",
			want:     false,
		},
		{
			name:     "bad pattern is skipped",
			patterns: []string{"[", "Trash"},
			nodeName: "Trash",
			relPath:  "Trash",
			want:     true,
		},
		{
			name:     "no patterns",
			nodeName: "Anything",
			relPath:  "Anything",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewIgnoreMatcher(tt.patterns)
			if got := m.Match(tt.nodeName, tt.relPath); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.nodeName, tt.relPath, got, tt.want)
			}
		})
	}
}

func TestIgnoreMatcher_NilMatchesNothing(t *testing.T) {
	var m *IgnoreMatcher
	if m.Match("Archive", "Archive") {
		t.Error("nil matcher matched a node")
	}
}
