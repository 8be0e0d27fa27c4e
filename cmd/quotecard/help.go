package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quotecard <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Export a quote card as an image and/or a zip bundle")
	fmt.Fprintln(w, "  themes     List the available color themes")
	fmt.Fprintln(w, "  inspect    Show what a bundle contains")
	fmt.Fprintln(w, "  doctor     Check the system for image export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'quotecard help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quotecard export [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a quote card. Without --image or --bundle, both are exported.")
	fmt.Fprintln(w, "Files are written as quote-card.png (or .jpg/.webp) and quote-card.zip.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Card:")
	fmt.Fprintln(w, "      --title <s>           Heading (\"\" = no heading, today[:FORMAT] = date)")
	fmt.Fprintln(w, "      --body <s>            Body text, \\n for line breaks")
	fmt.Fprintln(w, "      --body-file <path>    Read the body from a file (- = stdin)")
	fmt.Fprintln(w, "      --attribution <s>     Footer (\"\" = no footer)")
	fmt.Fprintln(w, "      --theme <s>           Theme: blue, green, purple, orange")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Date titles:")
	fmt.Fprintln(w, "  today                     Current date as MM/DD")
	fmt.Fprintln(w, "  today:FORMAT              Tokens YYYY YY MMMM MMM MM M DD D, [literal]")
	fmt.Fprintln(w, "  today:short|iso|long|cn   Presets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "      --image               Export the card image")
	fmt.Fprintln(w, "      --bundle              Export the zip bundle")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fonts:")
	fmt.Fprintln(w, "      --fonts-dir <dir>     Directory holding the font files")
	fmt.Fprintln(w, "      --fonts-url <url>     Base URL serving the font files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image:")
	fmt.Fprintln(w, "      --format <s>          png, jpeg, webp")
	fmt.Fprintln(w, "      --quality <n>         jpeg/webp quality (1-100)")
	fmt.Fprintln(w, "      --scale <f>           Device scale factor (up to 4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (.yaml, .yml, .toml)")
	fmt.Fprintln(w, "      --env-file <path>     Environment file (default: .env if present)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quotecard inspect <bundle.zip> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the entries, card text, colors and fonts of a bundle.")
	fmt.Fprintln(w, "Exits with an error when a declared font is missing from the archive.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "themes":
		fmt.Fprintln(env.Stdout, "Usage: quotecard themes")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List theme identifiers with their colors.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: quotecard doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, environment, fonts and temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: quotecard version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: quotecard help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
