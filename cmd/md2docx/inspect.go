package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/Qiuzg/go-md2docx/internal/docx"
	"github.com/Qiuzg/go-md2docx/tools"
)

// Sentinel errors for the extract and inspect commands.
var (
	ErrReadInput  = errors.New("failed to read input file")
	ErrToolFailed = errors.New("tool reported a failure")
)

// runExtract prints the text of a .docx file.
func runExtract(ctx context.Context, args []string, env *Environment) error {
	return runFileTool(ctx, args, env, fileTool{
		name:  "extract",
		param: "document",
		mime:  docx.MIMEType,
		tool:  tools.DocumentExtractor{},
		usage: printExtractUsage,
	})
}

// runInspect prints a CSV file as a markdown table.
func runInspect(ctx context.Context, args []string, env *Environment) error {
	return runFileTool(ctx, args, env, fileTool{
		name:  "inspect",
		param: "query",
		mime:  "text/csv",
		tool:  tools.FileInspector{},
		usage: printInspectUsage,
	})
}

// fileTool describes a command that feeds one file to a tool.
type fileTool struct {
	name  string
	param string
	mime  string
	tool  tools.Tool
	usage func(io.Writer)
}

func runFileTool(ctx context.Context, args []string, env *Environment, ft fileTool) error {
	fs := flag.NewFlagSet(ft.name, flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the tool result as JSON")
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { ft.usage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		ft.usage(env.Stderr)
		return fmt.Errorf("%w: %s expects exactly one file", ErrUsage, ft.name)
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	msgs, err := ft.tool.Invoke(ctx, map[string]any{
		ft.param: tools.File{Filename: filepath.Base(path), MIMEType: ft.mime, Blob: data},
	})
	if err != nil {
		return err
	}
	return printMessages(env.Stdout, msgs, *asJSON)
}

// printMessages writes tool output. Text messages from these tools report
// failures and become errors; JSON messages print their "result" field, or
// the whole object with asJSON.
func printMessages(w io.Writer, msgs []tools.Message, asJSON bool) error {
	for _, m := range msgs {
		switch m.Kind {
		case tools.KindText:
			return fmt.Errorf("%w: %s", ErrToolFailed, m.Text)
		case tools.KindJSON:
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(m.JSON); err != nil {
					return err
				}
				continue
			}
			if s, ok := m.JSON["result"].(string); ok {
				fmt.Fprintln(w, s)
			}
		}
	}
	return nil
}
