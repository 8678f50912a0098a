package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cjhanks/appconf/lang"
)

func TestDescribe(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{"db.primary.port", "INTEGRAL 5432", nil},
		{"db.primary.host", `STRING "db.internal"`, nil},
		{"ratio", "FLOATING 0.5", nil},
		{"db.primary", "host = \"db.internal\";\nport = 5432;", nil},
		{"db.primery", "", lang.ErrMissingKey},
		{"name.x", "", lang.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := describe(ctx, cfg, tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("describe(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestListing(t *testing.T) {
	cfg := testConfig(t)

	got, err := listing(cfg, "db")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(stripANSI(got), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "  max-conns INTEGRAL 16") ||
		!strings.HasPrefix(lines[1], "  primary { 2 items }") {
		t.Errorf("listing(db) = %q", lines)
	}

	if got, err := listing(cfg, "name"); err != nil || got != `  STRING "frontend"` {
		t.Errorf("listing(name) = %q, %v", got, err)
	}

	if _, err := listing(cfg, "nope"); !errors.Is(err, lang.ErrMissingKey) {
		t.Errorf("listing(nope) error = %v", err)
	}
}

func TestMacroListing(t *testing.T) {
	if got := macroListing(testConfig(t)); got != `  define HOST "db.internal"` {
		t.Errorf("macroListing() = %q", got)
	}
}

func typeRunes(m model, s string) model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestModel_Keys(t *testing.T) {
	m := newModel(context.Background(), testConfig(t), NewHistory(""), options{})

	t.Run("tab completes single candidate", func(t *testing.T) {
		m := typeRunes(m, "db.rep")
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

		if got := m.input.Value(); got != "db.replica" {
			t.Errorf("input = %q, want db.replica", got)
		}
	})

	t.Run("tab cycles and esc restores", func(t *testing.T) {
		m := typeRunes(m, "db.")
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

		if got := m.input.Value(); got != "db.primary" {
			t.Errorf("input = %q, want db.primary", got)
		}

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyShiftTab})

		if got := m.input.Value(); got != "db.max-conns" {
			t.Errorf("input = %q, want db.max-conns", got)
		}

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

		if got := m.input.Value(); got != "db." || m.mode != modeQuery {
			t.Errorf("input = %q mode %d, want db. in query mode", got, m.mode)
		}
	})

	t.Run("esc toggles mode keeping input", func(t *testing.T) {
		m := typeRunes(m, "name")
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

		if m.mode != modeCtrl || m.input.Value() != "" {
			t.Fatalf("mode %d input %q after esc", m.mode, m.input.Value())
		}

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})

		if m.mode != modeQuery || m.input.Value() != "name" {
			t.Errorf("mode %d input %q after second esc", m.mode, m.input.Value())
		}
	})

	t.Run("enter records history", func(t *testing.T) {
		m := newModel(context.Background(), testConfig(t), NewHistory(""), options{})
		m = typeRunes(m, "ratio")

		m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Error("enter returned no command")
		}

		if m.input.Value() != "" || m.history.Len() != 1 {
			t.Fatalf("input %q history %d", m.input.Value(), m.history.Len())
		}

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})

		if got := m.input.Value(); got != "ratio" {
			t.Errorf("history recall = %q, want ratio", got)
		}

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})

		if got := m.input.Value(); got != "" {
			t.Errorf("after down = %q, want empty", got)
		}
	})

	t.Run("ctrl-c on empty input quits", func(t *testing.T) {
		m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !m.quitting || cmd == nil {
			t.Error("ctrl-c did not quit")
		}
	})
}

func TestModel_Reload(t *testing.T) {
	m := newModel(context.Background(), testConfig(t), NewHistory(""), options{})

	next, err := lang.ParseString(context.Background(), `only = 1`)
	if err != nil {
		t.Fatal(err)
	}

	updated, _ := m.Update(reloadMsg{cfg: next})
	if got := updated.(model).cfg; got != next {
		t.Error("reload did not replace the configuration")
	}

	failed, _ := m.Update(reloadMsg{err: errors.New("boom")})
	if got := failed.(model).cfg; got != m.cfg {
		t.Error("failed reload replaced the configuration")
	}

	if _, err := m.editCommand(); !errors.Is(err, ErrNoEditPath) {
		t.Errorf("editCommand() error = %v, want ErrNoEditPath", err)
	}
}
