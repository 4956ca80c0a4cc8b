package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2notion <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to block JSON")
	fmt.Fprintln(w, "  push       Convert markdown files and append them to a page")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2notion help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2notion convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to block JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .json file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default 30s)")
	printSharedUsage(w)
}

// printPushUsage prints usage for the push command.
func printPushUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2notion push <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files and append the blocks under a page.")
	fmt.Fprintln(w, "The integration token is read from NOTION_TOKEN.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Target:")
	fmt.Fprintln(w, "  -p, --parent <url|id>     Parent page URL or id")
	fmt.Fprintln(w, "      --new-page            Create a child page per document")
	fmt.Fprintln(w, "      --title <s>           Page title (\"\" = front matter or first H1)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default 30s)")
	printSharedUsage(w)
}

func printSharedUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --no-html             Treat raw HTML as unsupported")
	fmt.Fprintln(w, "      --no-equations        Do not recognize $ and $$ equations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and degradations")
	fmt.Fprintln(w, "      --log-level <s>       trace, debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json, pretty")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NOTION_TOKEN, MD2NOTION_CONFIG, MD2NOTION_PARENT, MD2NOTION_TIMEOUT,")
	fmt.Fprintln(w, "  MD2NOTION_INPUT_DIR, MD2NOTION_OUTPUT_DIR, MD2NOTION_WORKERS,")
	fmt.Fprintln(w, "  MD2NOTION_LOG_LEVEL, MD2NOTION_LOG_FORMAT, MD2NOTION_BASE_URL")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "push":
		printPushUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2notion version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2notion help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
