package tools

import (
	"context"
	"encoding/csv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Qiuzg/go-md2docx/internal/textenc"
)

// FileInspector summarizes a CSV file passed as "query".
//
// The result is the file rendered as a markdown table, so it can be fed to
// Md2Docx directly. Columns are padded to their display width, counting
// CJK characters as two cells.
type FileInspector struct{}

var _ Tool = FileInspector{}

// Invoke yields {"result", "rows", "columns", "header", "charset"}. Rows
// excludes the header line.
func (FileInspector) Invoke(_ context.Context, params map[string]any) ([]Message, error) {
	data, err := blobParam(params, "query")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []Message{TextMessage("No file provided.")}, nil
	}

	decoded, err := textenc.Decode(data)
	if err != nil {
		return []Message{TextMessage("Cannot read file: " + err.Error())}, nil
	}

	r := csv.NewReader(strings.NewReader(decoded.Text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return []Message{TextMessage("Cannot parse CSV: " + err.Error())}, nil
	}
	if len(records) == 0 {
		return []Message{JSONMessage(map[string]any{
			"result":  "",
			"rows":    0,
			"columns": 0,
			"header":  []string{},
			"charset": decoded.Charset,
		})}, nil
	}

	return []Message{JSONMessage(map[string]any{
		"result":  markdownTable(records),
		"rows":    len(records) - 1,
		"columns": len(records[0]),
		"header":  records[0],
		"charset": decoded.Charset,
	})}, nil
}

// markdownTable renders records as a pipe table sized to the header row.
// Pipes inside cells become full-width bars, since the table parser
// splits on every '|' and has no escape syntax.
func markdownTable(records [][]string) string {
	cols := len(records[0])
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range records {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(escapeCell(row[i])))
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = escapeCell(row[i])
			}
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(records[0])
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(" ")
		b.WriteString(strings.Repeat("-", w))
		b.WriteString(" |")
	}
	b.WriteString("\n")
	for _, row := range records[1:] {
		writeRow(row)
	}
	return b.String()
}

// cellPipe stands in for '|' inside a cell.
const cellPipe = "\uFF5C"

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", cellPipe)
}
