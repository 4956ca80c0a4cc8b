package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2notion/internal/config"
	"github.com/alnah/go-md2notion/internal/hints"
	"github.com/alnah/go-md2notion/internal/notionapi"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand indicates the first argument names no command.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()

	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	// "md2notion notes.md" is shorthand for "md2notion convert notes.md"
	if looksLikeMarkdown(cmd) {
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvertCmd(ctx, rest, env)
	case "push":
		err = runPushCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2notion %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// formatError appends an actionable hint when one applies.
func formatError(err error) string {
	msg := "error: " + err.Error()

	var apiErr *notionapi.APIError
	switch {
	case errors.As(err, &apiErr):
		msg += hints.ForAPIStatus(apiErr.Status)
	case errors.Is(err, notionapi.ErrMissingToken):
		msg += hints.ForMissingToken()
	case errors.Is(err, ErrNoParent):
		msg += hints.ForParent()
	case errors.Is(err, context.DeadlineExceeded):
		msg += hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		msg += hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		msg += hints.ForConfigNotFound(triedPaths(err))
	}
	return msg
}

// triedPaths recovers the searched locations from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
