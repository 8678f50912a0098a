package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("Make() level=%v format=%v", logger.Level(), logger.Format())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.min)), "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v (%q)", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace)).
		With(slog.String("component", "parser"))
	logger.Trace("define", slog.String("macro", "PORT"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"level":     "TRACE",
		"msg":       "define",
		"macro":     "PORT",
		"component": "parser",
	}

	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
}

func TestLogger_Text(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
		want   []string
	}{
		{"plain", false, []string{"level=INFO", "msg=\"test message\"", "key=value"}},
		{"pretty", true, []string{"INFO", "test message", "key=", "value", "grp.n=", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithPretty(tt.pretty), WithTimeLayout("none"))
			logger.Info("test message",
				slog.String("key", "value"),
				slog.Group("grp", slog.Int("n", 1)))

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q does not contain %q", buf.String(), want)
				}
			}

			if strings.Contains(buf.String(), "time=") {
				t.Errorf("output %q contains a timestamp", buf.String())
			}
		})
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("output %q does not name the calling file", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("wrapped")
	base.Debug("base")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "wrapped") {
		t.Errorf("wrapped logger wrote %q", second.String())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Info("test")
	l.Error("test")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero value produced a logger")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", i))
		}()
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("got %d lines, want 100", len(lines))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}
