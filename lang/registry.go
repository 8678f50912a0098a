package lang

import (
	"cmp"
	"log/slog"
	"slices"
)

// binding is one definition of a macro, tagged with the scope that made it.
type binding struct {
	depth int
	text  string
}

// Registry is the macro table of a parse: a stack of lexical scopes layered
// over one [Trie]. A definition is visible in the scope that made it and in
// every scope entered after it, until that scope is left.
type Registry struct {
	trie   Trie[[]binding] // bindings sorted by ascending depth
	frames [][]string      // names bound in each scope
}

// NewRegistry returns a registry holding only the root scope.
func NewRegistry() *Registry {
	return &Registry{frames: make([][]string, 1)}
}

// Depth returns the current scope depth; the root scope is 0.
func (r *Registry) Depth() int { return len(r.frames) - 1 }

// Enter pushes a new scope.
func (r *Registry) Enter() { r.frames = append(r.frames, nil) }

// Leave pops the current scope and discards every binding made in it.
func (r *Registry) Leave() error {
	depth := r.Depth()
	if depth == 0 {
		return ErrScope.Wrapf("cannot leave the root scope")
	}

	for _, name := range r.frames[depth] {
		r.unbind(name, depth)
	}

	r.frames = r.frames[:depth]

	return nil
}

// Define binds name to text in the current scope.
func (r *Registry) Define(name, text string) {
	r.bind(name, text, r.Depth())
}

// Export copies the visible binding of name into the enclosing scope so that
// it outlives the current one. Exporting from the root scope does nothing.
func (r *Registry) Export(name string) error {
	text, ok := r.Lookup(name)
	if !ok {
		return ErrUndefinedMacro.
			Wrapf("%q", name).
			With(slog.String("macro", name))
	}

	if depth := r.Depth(); depth > 0 {
		r.bind(name, text, depth-1)
	}

	return nil
}

// Lookup returns the innermost visible binding of name.
func (r *Registry) Lookup(name string) (string, bool) {
	bs, ok := r.trie.Get(name)
	if !ok || len(bs) == 0 {
		return "", false
	}

	return bs[len(bs)-1].text, true
}

// Match returns the longest visible macro name that prefixes s.
func (r *Registry) Match(s string) (name, text string, ok bool) {
	name, bs, ok := r.trie.LongestPrefix(s)
	if !ok || len(bs) == 0 {
		return "", "", false
	}

	return name, bs[len(bs)-1].text, true
}

// Macros returns every visible macro and its replacement text.
func (r *Registry) Macros() map[string]string {
	m := make(map[string]string, r.trie.Len())

	for _, name := range r.trie.Keys() {
		m[name], _ = r.Lookup(name)
	}

	return m
}

func (r *Registry) bind(name, text string, depth int) {
	bs, _ := r.trie.Get(name)

	i, found := slices.BinarySearchFunc(bs, depth, byDepth)
	if found {
		bs[i].text = text

		return
	}

	r.trie.Insert(name, slices.Insert(bs, i, binding{depth: depth, text: text}))
	r.frames[depth] = append(r.frames[depth], name)
}

func (r *Registry) unbind(name string, depth int) {
	bs, _ := r.trie.Get(name)

	i, found := slices.BinarySearchFunc(bs, depth, byDepth)
	if !found {
		return
	}

	if bs = slices.Delete(bs, i, i+1); len(bs) == 0 {
		r.trie.Delete(name)
	} else {
		r.trie.Insert(name, bs)
	}
}

func byDepth(b binding, depth int) int { return cmp.Compare(b.depth, depth) }
