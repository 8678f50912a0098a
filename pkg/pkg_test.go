package pkg

import (
	"path/filepath"
	"regexp"
	"testing"
)

func TestVersion(t *testing.T) {
	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version()) {
		t.Errorf("Version() = %q, want semantic version", Version())
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		exe, want string
	}{
		{"/usr/bin/appconf", "appconf"},
		{"/opt/tool.exe", "tool"},
		{"/tmp/__debug_bin1234", Name},
		{"/home/u/.hidden", "hidden"},
		{"/x/...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			if got := prefix(tt.exe); got != tt.want {
				t.Errorf("prefix(%q) = %q, want %q", tt.exe, got, tt.want)
			}
		})
	}
}

func TestDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end in %q", name, dir, Prefix())
		}
	}

	if filepath.Dir(ConfigFile()) != ConfigDir() {
		t.Errorf("ConfigFile() = %q", ConfigFile())
	}
}
