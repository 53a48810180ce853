// Package render turns semi-structured model output into display-ready
// values. Every parser here returns an error instead of panicking so that
// callers can always fall back to showing the text verbatim.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotTable is returned (wrapped) when text is not a well-formed markdown
// pipe table. The caller shows the original text instead.
var ErrNotTable = errors.New("not a markdown table")

// Table is a parsed markdown pipe table.
type Table struct {
	Header []string   `json:"header" yaml:"header"`
	Rows   [][]string `json:"rows" yaml:"rows"`
}

// ParseTable parses a markdown pipe table such as
//
//	| Token | Type    |
//	|-------|---------|
//	| int   | Keyword |
//
// Blank lines are ignored. The second line must be the separator row.
// Body rows without any cells are kept as empty rows; every other body row
// must have exactly as many cells as the header.
func ParseTable(text string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 lines, got %d", ErrNotTable, len(lines))
	}

	header := splitRow(lines[0])
	if !strings.Contains(lines[1], "---") {
		return nil, fmt.Errorf("%w: line 2 is not a separator row", ErrNotTable)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrNotTable)
	}

	rows := make([][]string, 0, len(lines)-2)
	for i, line := range lines[2:] {
		row := splitRow(line)
		if len(row) > 0 && len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrNotTable, i+1, len(row), len(header))
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// splitRow splits on '|' and drops the cells before the first and after the
// last delimiter. A line without two delimiters yields no cells.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return []string{}
	}
	cells := make([]string, 0, len(parts)-2)
	for _, cell := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(cell))
	}
	return cells
}
