package lang

import (
	"errors"
	"io/fs"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrMissingKey.Wrapf("%q", "k").With(slog.String("key", "k"))

	if !errors.Is(derived, ErrMissingKey) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrTypeMismatch) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if got := derived.Error(); got != `missing key: "k"` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := ErrIO.Wrap(fs.ErrNotExist)
	if !errors.Is(wrapped, fs.ErrNotExist) || !errors.Is(wrapped, ErrIO) {
		t.Error("wrapped error lost its chain")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrTypeMismatch.Wrapf("bad").With(slog.String("key", "k"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	if got["error"] != "type mismatch" || got["cause"] != "bad" || got["key"] != "k" {
		t.Errorf("LogValue() = %v", got)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		offset        int
		before, after int
		want          string
	}{
		{"start", "abcdef", 0, 2, 3, "abc"},
		{"middle", "abcdef", 3, 2, 3, "bcdef"},
		{"end", "abcdef", 6, 2, 3, "ef"},
		{"widened to rune boundaries", "xéy", 2, 0, 0, "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.src, tt.offset, tt.before, tt.after); got != tt.want {
				t.Errorf("excerpt(%q, %d) = %q, want %q", tt.src, tt.offset, got, tt.want)
			}
		})
	}
}
