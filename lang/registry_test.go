package lang

import (
	"errors"
	"maps"
	"testing"
)

func TestRegistry_Scopes(t *testing.T) {
	r := NewRegistry()
	r.Define("A", "root")

	r.Enter()
	r.Define("A", "inner")
	r.Define("B", "b")

	if got, _ := r.Lookup("A"); got != "inner" {
		t.Errorf("Lookup(A) in inner scope = %q, want inner", got)
	}

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}

	if err := r.Leave(); err != nil {
		t.Fatalf("Leave: %v", err)
	}

	if got, _ := r.Lookup("A"); got != "root" {
		t.Errorf("Lookup(A) after Leave = %q, want root", got)
	}

	if _, ok := r.Lookup("B"); ok {
		t.Error("B visible after its scope was left")
	}

	if err := r.Leave(); !errors.Is(err, ErrScope) {
		t.Errorf("Leave at root = %v, want ErrScope", err)
	}
}

func TestRegistry_Redefine(t *testing.T) {
	r := NewRegistry()
	r.Enter()
	r.Define("A", "1")
	r.Define("A", "2")

	if got, _ := r.Lookup("A"); got != "2" {
		t.Errorf("Lookup(A) = %q, want 2", got)
	}

	if err := r.Leave(); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.Lookup("A"); ok {
		t.Error("A visible after its scope was left")
	}
}

func TestRegistry_Export(t *testing.T) {
	tests := []struct {
		name    string
		run     func(r *Registry) error
		want    map[string]string
		wantErr error
	}{
		{
			name: "one frame up",
			run: func(r *Registry) error {
				r.Enter()
				r.Enter()
				r.Define("A", "a")

				if err := r.Export("A"); err != nil {
					return err
				}

				if err := r.Leave(); err != nil {
					return err
				}

				if _, ok := r.Lookup("A"); !ok {
					return errors.New("A not visible one frame up")
				}

				return r.Leave()
			},
			want: map[string]string{},
		},
		{
			name: "root is a no-op",
			run: func(r *Registry) error {
				r.Define("A", "a")

				return r.Export("A")
			},
			want: map[string]string{"A": "a"},
		},
		{
			name: "shadowed outer binding",
			run: func(r *Registry) error {
				r.Define("A", "outer")
				r.Enter()
				r.Define("A", "inner")

				if err := r.Export("A"); err != nil {
					return err
				}

				return r.Leave()
			},
			want: map[string]string{"A": "inner"},
		},
		{
			name: "undefined",
			run: func(r *Registry) error {
				r.Enter()

				return r.Export("missing")
			},
			wantErr: ErrUndefinedMacro,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()

			err := tt.run(r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := r.Macros(); !maps.Equal(got, tt.want) {
				t.Errorf("Macros() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Match(t *testing.T) {
	r := NewRegistry()
	r.Define("HOST", "h")
	r.Enter()
	r.Define("HOSTNAME", "hn")

	if name, text, ok := r.Match("HOSTNAME;"); !ok || name != "HOSTNAME" || text != "hn" {
		t.Errorf("Match = %q, %q, %v", name, text, ok)
	}

	_ = r.Leave()

	if name, text, ok := r.Match("HOSTNAME;"); !ok || name != "HOST" || text != "h" {
		t.Errorf("Match after Leave = %q, %q, %v", name, text, ok)
	}
}
