package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   map[string]string
	}{
		{
			name: "section",
			config: `config {
				log-level = debug;
				pretty = false;
				ratio = 0.5;
				depth = 3;
			}
			other = ignored;`,
			want: map[string]string{
				"log-level": "debug",
				"pretty":    "false",
				"ratio":     "0.5",
				"depth":     "3",
			},
		},
		{
			name:   "root",
			config: `log-level = warn; depth = 1`,
			want:   map[string]string{"log-level": "warn", "depth": "1"},
		},
		{
			name:   "nested",
			config: `config { log { level = trace; caller = true } pprof_mode = cpu }`,
			want: map[string]string{
				"log-level":  "trace",
				"log-caller": "true",
				"pprof-mode": "cpu",
			},
		},
		{
			name:   "macros",
			config: `define LEVEL error; config { log-level = LEVEL }`,
			want:   map[string]string{"log-level": "error"},
		},
		{
			name:   "invalid",
			config: `config { log-level = [ }`,
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolve(context.Background(), "config", "")(strings.NewReader(tt.config))
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}

			got, ok := r.(settings)
			if !ok {
				t.Fatalf("resolver type = %T, want settings", r)
			}

			if len(got) != len(tt.want) {
				t.Errorf("settings = %v, want %v", got, tt.want)
			}

			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("settings[%q] = %q, want %q", key, got[key], want)
				}
			}
		})
	}
}

func TestSettings_Resolve(t *testing.T) {
	s := settings{"log-level": "debug"}

	val, err := s.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	if err != nil || val != "debug" {
		t.Errorf("Resolve(log-level) = %v, %v; want debug", val, err)
	}

	val, err = s.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "missing"}})
	if err != nil || val != nil {
		t.Errorf("Resolve(missing) = %v, %v; want nil", val, err)
	}
}

func TestResolve_Kong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	data := "config {\n  name = \"from file\";\n  count = 7;\n  verbose = true;\n  db { host = db.internal }\n}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	var flags struct {
		Name    string
		Count   int
		Verbose bool
		DbHost  string
		Other   string `default:"unset"`
	}

	parser, err := kong.New(&flags,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Configuration(resolve(context.Background(), "config", path), path))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--count=9"}); err != nil {
		t.Fatal(err)
	}

	if flags.Name != "from file" || flags.Count != 9 || !flags.Verbose ||
		flags.DbHost != "db.internal" || flags.Other != "unset" {
		t.Errorf("flags = %+v", flags)
	}
}

func TestResolve_IncludeRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := os.WriteFile(filepath.Join(dir, "levels.conf"), []byte("define LEVEL debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(t.TempDir())

	data := "include levels.conf\nconfig { log-level = LEVEL }\n"

	r, err := resolve(context.Background(), "config", path)(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if got := r.(settings)["log-level"]; got != "debug" {
		t.Errorf("settings[log-level] = %q, want debug", got)
	}
}
