package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file = %v", err)
	}

	for _, e := range []HistoryEntry{
		{"db.primary.port", modeQuery},
		{"list db", modeCtrl},
		{"list db", modeCtrl}, // repeat of the newest entry
		{"  ", modeQuery},     // blank
		{"name", modeQuery},
		{"db.primary.port", modeQuery}, // moved to the end
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	want := []HistoryEntry{
		{"list db", modeCtrl},
		{"name", modeQuery},
		{"db.primary.port", modeQuery},
	}

	check := func(t *testing.T, h *History) {
		t.Helper()

		if h.Len() != len(want) {
			t.Fatalf("Len() = %d, want %d", h.Len(), len(want))
		}

		for i, w := range want {
			if got, err := h.Entry(i); err != nil || got != w {
				t.Errorf("Entry(%d) = %v, %v; want %v", i, got, err, w)
			}
		}
	}

	check(t, h)

	t.Run("reload from file", func(t *testing.T) {
		loaded := NewHistory(path)
		if err := loaded.Load(); err != nil {
			t.Fatal(err)
		}

		check(t, loaded)
	})

	t.Run("out of bounds", func(t *testing.T) {
		if _, err := h.Entry(len(want)); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(len) error = %v", err)
		}

		if _, err := h.Entry(-1); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(-1) error = %v", err)
		}
	})

	t.Run("file format", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if got := string(data); got != "C:list db\nQ:name\nQ:db.primary.port\n" {
			t.Errorf("history file = %q", got)
		}
	})
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if err := h.Add("x", modeQuery); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		line string
		want HistoryEntry
		ok   bool
	}{
		{"Q:a.b", HistoryEntry{"a.b", modeQuery}, true},
		{"C:list", HistoryEntry{"list", modeCtrl}, true},
		{"bare", HistoryEntry{"bare", modeQuery}, true},
		{"C:", HistoryEntry{"", modeCtrl}, false},
		{"", HistoryEntry{"", modeQuery}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := decodeEntry(tt.line)
			if got != tt.want || ok != tt.ok {
				t.Errorf("decodeEntry(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
