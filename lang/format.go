package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes s in native syntax. With indent 0 the output is a single
// line; otherwise each item is on its own line, nested by indent spaces.
// The output parses back to an equal tree.
func (s *Section) Format(_ context.Context, w io.Writer, indent int) error {
	f := formatter{w: w, indent: indent}
	f.body(s, 0)

	if indent == 0 && s.Len() > 0 {
		f.printf("\n")
	}

	return f.err
}

// FormatJSON writes s as a JSON object.
func (s *Section) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(s, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(s)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes s as YAML, in flow style when indent is 0.
func (s *Section) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Dump writes one line per value, "name (KIND) = value", indented by depth.
func (s *Section) Dump(w io.Writer) error {
	f := formatter{w: w, indent: 2}
	f.dump(s, 0)

	return f.err
}

// formatter writes a tree, remembering the first write error.
type formatter struct {
	w      io.Writer
	indent int
	err    error
}

func (f *formatter) printf(format string, args ...any) {
	if f.err == nil {
		_, f.err = fmt.Fprintf(f.w, format, args...)
	}
}

func (f *formatter) pad(depth int) string {
	return strings.Repeat(" ", depth*f.indent)
}

func (f *formatter) body(s *Section, depth int) {
	first := true

	for key, v := range s.All() {
		switch {
		case f.indent > 0:
			f.printf("%s", f.pad(depth))
		case !first:
			f.printf(" ")
		}

		first = false

		switch v := v.(type) {
		case *Section:
			f.printf("%s {", key)

			if v.Len() > 0 {
				if f.indent > 0 {
					f.printf("\n")
				} else {
					f.printf(" ")
				}

				f.body(v, depth+1)

				if f.indent > 0 {
					f.printf("%s", f.pad(depth))
				} else {
					f.printf(" ")
				}
			}

			f.printf("}")

		case *Leaf:
			f.printf("%s = %s;", key, v.String())
		}

		if f.indent > 0 {
			f.printf("\n")
		}
	}
}

func (f *formatter) dump(s *Section, depth int) {
	for key, v := range s.All() {
		switch v := v.(type) {
		case *Section:
			f.printf("%s%s (%s)\n", f.pad(depth), key, v.Kind())
			f.dump(v, depth+1)
		case *Leaf:
			f.printf("%s%s (%s) = %s\n", f.pad(depth), key, v.Kind(), v.String())
		}
	}
}
