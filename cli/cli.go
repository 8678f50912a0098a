package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/cjhanks/appconf/cli/cmd"
	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
	"github.com/cjhanks/appconf/pkg"
)

// CLI is the top-level command-line interface for appconf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source          string `default:"-"                    help:"Configuration file, or '-' for stdin." placeholder:"FILE" short:"s"`
	MaxIncludeDepth int    `default:"${maxIncludeDepth}" help:"Limit nesting of include directives."`
	MaxSectionDepth int    `default:"${maxSectionDepth}" help:"Limit nesting of sections."`

	Check   cmd.Check   `cmd:"" default:"1" help:"Validate the configuration"`
	Get     cmd.Get     `cmd:""            help:"Print one value"`
	Fmt     cmd.Fmt     `cmd:""            help:"Format the configuration"`
	Macros  cmd.Macros  `cmd:""            help:"List macros visible at the end of input"`
	Watch   cmd.Watch   `cmd:""            help:"Reload the configuration on change"`
	Repl    cmd.Repl    `cmd:""            help:"Browse the configuration interactively"`
	Init    cmd.Init    `cmd:""            help:"Initialize the settings file"`
	Version cmd.Version `cmd:""            help:"Print version"`
}

// Run executes the appconf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := pkg.ConfigFile()

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"maxIncludeDepth":    strconv.Itoa(lang.DefaultMaxIncludeDepth),
		"maxSectionDepth":    strconv.Itoa(lang.DefaultMaxSectionDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before kong parses, so that parse errors are
	// already reported in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx, cmd.ConfigSection, configFilePath), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize the logger with every parsed flag before it is handed to the
	// parser.
	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSource(ctx, cmd.Source{
		Path: cli.Source,
		Options: []lang.Option{
			lang.WithLogger(log.Default()),
			lang.WithMaxIncludeDepth(cli.MaxIncludeDepth),
			lang.WithMaxSectionDepth(cli.MaxSectionDepth),
		},
	})

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
