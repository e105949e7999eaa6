package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-sitekit/internal/lint"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Render the sampler PDF from the card data")
	fmt.Fprintln(w, "  lint        Check content, the unlisted page, and sampler data")
	fmt.Fprintln(w, "  doctor      Check the browser, environment, and project")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sitekit help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the sampler PDF: a cover page, then one page per card.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Project:")
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: sitekit.yaml, .yml, or .toml)")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root directory")
	fmt.Fprintln(w, "      --data <path>         Card data file, relative to root")
	fmt.Fprintln(w, "      --page <path>         Sampler page holding the updated stamp")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --site-url <url>      Published site URL for site-root links")
	fmt.Fprintln(w, "      --raster-width <n>    Pixel width for rasterized SVG images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path, relative to root")
	fmt.Fprintln(w, "      --html                Also write the intermediate HTML")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip the browser")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printLintUsage prints usage for the lint command, listing every rule set.
func printLintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit lint [rule...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the site and exit 1 if any rule reports an error.")
	fmt.Fprintln(w, "Warnings are printed but never fail the run.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rule sets:")
	for _, r := range lint.Rules {
		fmt.Fprintf(w, "  %-10s %s\n", r.Name, r.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --only <rules>        Rule sets to run, e.g. hidden|nav or content,links")
	fmt.Fprintln(w, "  -c, --config <path>       Config file")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sitekit doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome, the temp directory, and the project inputs are usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output results as JSON")
	fmt.Fprintln(w, "  -c, --config <path>       Config file")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root directory")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "lint":
		printLintUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: sitekit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: sitekit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
