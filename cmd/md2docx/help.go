package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to DOCX (default)")
	fmt.Fprintln(w, "  extract    Print the text of a .docx file")
	fmt.Fprintln(w, "  inspect    Summarize a CSV file as a markdown table")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command. Flag help is
// generated from fs so it never drifts from the registered flags.
func printConvertUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: md2docx [convert] <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to DOCX. Input is a .md/.markdown file or a")
	fmt.Fprintln(w, "directory searched recursively (optional if config has input.defaultDir).")
	fmt.Fprintln(w, "Files in any common charset are decoded to UTF-8 first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DOCX_CONFIG, MD2DOCX_TIMEOUT, MD2DOCX_WORKERS, MD2DOCX_INPUT_DIR,")
	fmt.Fprintln(w, "  MD2DOCX_OUTPUT_DIR, MD2DOCX_BASE_URL, MD2DOCX_PAGE_SIZE, MD2DOCX_STYLE,")
	fmt.Fprintln(w, "  MD2DOCX_ASSET_PATH, MD2DOCX_AUTHOR")
}

func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx extract <file.docx> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the paragraph text of a .docx file, one paragraph per line.")
	fmt.Fprintln(w, "With --json, print the full tool result.")
}

func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx inspect <file.csv> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decode a CSV file of any common charset and print it as a markdown")
	fmt.Fprintln(w, "table. With --json, print row and column counts as well.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout, newConvertFlagSet(&convertFlags{}))
	case "extract":
		printExtractUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
