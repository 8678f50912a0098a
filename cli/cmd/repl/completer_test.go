package repl

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/cjhanks/appconf/lang"
)

func testConfig(t *testing.T) *lang.Config {
	t.Helper()

	cfg, err := lang.ParseString(context.Background(), `
		define HOST "db.internal"
		db {
			primary { host = HOST; port = 5432 }
			replica { host = HOST; port = 5433 }
			max-conns = 16
		}
		name = frontend
		ratio = 0.5
	`)
	if err != nil {
		t.Fatal(err)
	}

	return cfg
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_space", "list db", 7, "db", 5, 7},
		{"empty_at_boundary", "list ", 5, "", 5, 5},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"cursor_past_end", "foo", 9, "foo", 0, 3},
		// Hyphens are part of keys, not word boundaries.
		{"hyphenated", "max-conns", 9, "max-conns", 0, 9},
		{"hyphenated_after_dot", "db.max-co", 9, "max-co", 3, 9},
		{"empty_after_dot", "db.", 3, "", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"simple_chain", "db.primary.", 11, "db.primary"},
		{"partial_word", "db.pri", 3, "db"},
		{"after_command", "list db.primary.", 16, "db.primary"},
		{"no_chain", "list ", 5, ""},
		{"hyphenated_chain", "db.max-conns.", 13, "db.max-conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		parent string
		want   []string
	}{
		{"", []string{"db", "name", "ratio"}},
		{"db", []string{"max-conns", "primary", "replica"}},
		{"db.primary", []string{"host", "port"}},
		{"db.primary.port", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			if got := childCandidates(cfg, tt.parent); !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%q) = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}

	if got := childCandidates(nil, ""); got != nil {
		t.Errorf("childCandidates(nil) = %v", got)
	}
}

func TestComputeMatches(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"empty", modeQuery, "", nil},
		{"top_level", modeQuery, "na", []string{"name"}},
		{"after_dot_lists_all", modeQuery, "db.", []string{"max-conns", "primary", "replica"}},
		{"nested_fuzzy", modeQuery, "db.rep", []string{"replica"}},
		{"leaf_parent", modeQuery, "name.", nil},
		{"command", modeCtrl, "rel", []string{"reload"}},
		{"command_path_argument", modeCtrl, "list db.pr", []string{"primary"}},
		{"command_without_path_argument", modeCtrl, "files db", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(context.Background(), cfg, NewHistory(""), options{})
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.CursorEnd()

			matches, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("computeMatches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	m := newModel(context.Background(), testConfig(t), NewHistory(""), options{})
	m.input.SetValue("db.")
	m.input.CursorEnd()

	matches, _, _ := m.computeMatches()

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("zero width bar = %q", got)
	}

	wide := renderCandidateBar(matches, -1, false, 200)
	for _, want := range []string{"max-conns", "primary", "replica"} {
		if !strings.Contains(stripANSI(wide), want) {
			t.Errorf("bar %q missing %q", stripANSI(wide), want)
		}
	}

	narrow := stripANSI(renderCandidateBar(matches, -1, false, 14))
	if !strings.HasSuffix(narrow, "...") || strings.Contains(narrow, "replica") {
		t.Errorf("narrow bar = %q, want it ellipsized", narrow)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}

			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
