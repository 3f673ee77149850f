package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// maxCellWidth caps table columns so long descriptions don't wrap the terminal.
const maxCellWidth = 48

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func truncateCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= maxCellWidth {
		return s
	}
	r := []rune(s)
	return string(r[:maxCellWidth-1]) + "…"
}

func formatTable(headers []string, rows [][]string) {
	cells := make([][]string, 0, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		out := make([]string, len(row))
		for i, cell := range row {
			out[i] = truncateCell(cell)
			if n := utf8.RuneCountInString(out[i]); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
		cells = append(cells, out)
	}

	printRow := func(row []string) {
		parts := make([]string, len(row))
		for i, cell := range row {
			pad := 0
			if i < len(widths) {
				pad = widths[i] - utf8.RuneCountInString(cell)
			}
			if pad < 0 {
				pad = 0
			}
			parts[i] = cell + strings.Repeat(" ", pad)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range cells {
		printRow(row)
	}
}

// output prints v in the selected format. Quiet mode prints only quietVal;
// table mode falls back to JSON for values the caller did not tabulate.
func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		fmt.Println(quietVal)
	default:
		formatJSON(v)
	}
}
