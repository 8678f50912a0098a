package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
	"github.com/cjhanks/appconf/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init writes the current flag values to the settings file as an appconf
// config section.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	// The generated text goes through the parser so the file is known to
	// load back and is written in canonical form.
	cfg, err := lang.ParseString(ctx, i.settings(ktx))
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	if err := cfg.Format(ctx, file, defaultConfigIndent); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flags", len(ktx.Model.Flags)))

	return nil
}

// settings renders every persistable flag of ktx as a config section.
func (i *Init) settings(ktx *kong.Context) string {
	var b bytes.Buffer

	prefixIgnore := []string{"help", "source", profile.Tag}

	fmt.Fprintf(&b, "%s {\n", ConfigSection)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx.FlagValue(flag)); ok {
			fmt.Fprintf(&b, "%s = %s;\n", flag.Name, val)
		}
	}

	b.WriteString("}\n")

	return b.String()
}

// flagValue renders a flag value as appconf text. Unset and list values are
// skipped.
func flagValue(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false

	case bool:
		return strconv.FormatBool(v), true

	case string:
		if v == "" {
			return "", false
		}

		return strconv.Quote(v), true

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true

	case float32, float64:
		f, _ := strconv.ParseFloat(fmt.Sprint(v), 64)

		return lang.NewFloat("", f).String(), true

	case time.Duration:
		return strconv.Quote(v.String()), true

	case []string, []int, []int64, []float64, []bool:
		return "", false

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return "", false
		}

		return strconv.Quote(s), true
	}
}
