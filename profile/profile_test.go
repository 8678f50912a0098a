package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
	}{
		{"empty mode", Profiler{}},
		{"unknown mode", Profiler{Mode: "bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stop := tt.p.Start()
			if _, ok := stop.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", stop)
			}

			stop.Stop()
		})
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if Enabled != slices.Contains(modes, "cpu") {
		t.Errorf("Enabled = %v, Modes() = %v", Enabled, modes)
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}
}
