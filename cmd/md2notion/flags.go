package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrFlags wraps flag parsing failures.
var ErrFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logLevel  string
	logFormat string
}

// renderFlags disables optional grammar.
type renderFlags struct {
	noHTML      bool
	noEquations bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	render  renderFlags
	output  string
	workers int
	timeout string
}

// pushFlags holds all flags for the push command.
type pushFlags struct {
	common  commonFlags
	render  renderFlags
	parent  string
	newPage bool
	title   string
	workers int
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and degradations")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json, pretty")
}

// addRenderFlags adds grammar toggles to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.noHTML, "no-html", false, "treat raw HTML as unsupported")
	fs.BoolVar(&f.noEquations, "no-equations", false, "do not recognize $ and $$ equations")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}

	return f, fs.Args(), nil
}

// parsePushFlags parses push command flags and returns positional args.
func parsePushFlags(args []string, usage io.Writer) (*pushFlags, []string, error) {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	f := &pushFlags{}

	fs.StringVarP(&f.parent, "parent", "p", "", "parent page URL or id")
	fs.BoolVar(&f.newPage, "new-page", false, "create a child page per document")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = front matter or first H1)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	fs.SetOutput(usage)
	fs.Usage = func() { printPushUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapFlagError(err)
	}

	return f, fs.Args(), nil
}

// wrapFlagError tags parse failures with ErrFlags. A help request passes
// through unchanged.
func wrapFlagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrFlags, err)
}
