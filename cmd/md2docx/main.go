package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS value, in which case
	// the runtime default stays in place.
	undo, _ := maxprocs.Set(maxprocs.Logger(maxprocsLogger(os.Args)))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, DefaultEnv())
	stop()
	undo()
	os.Exit(code)
}

// maxprocsLogger reports the GOMAXPROCS decision only in verbose mode.
func maxprocsLogger(args []string) func(string, ...any) {
	if slices.Contains(args, "-v") || slices.Contains(args, "--verbose") {
		return func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}
	}
	return func(string, ...any) {}
}

// run dispatches a command and returns the process exit code. Arguments
// that do not start with a command name are treated as "convert" arguments.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2docx %s\n", Version)
		return ExitSuccess
	case "convert":
		err = runConvert(ctx, rest, env)
	case "extract":
		err = runExtract(ctx, rest, env)
	case "inspect":
		err = runInspect(ctx, rest, env)
	default:
		err = runConvert(ctx, args[1:], env)
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
	}
	return exitCodeFor(err)
}
