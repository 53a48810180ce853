package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable_WellFormed(t *testing.T) {
	text := `
| Token  |  Type      |
|--------|------------|
|  int   | Keyword    |
| main   | Identifier |

| (      | Punctuator |
`
	table, err := ParseTable(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Token", "Type"}, table.Header)
	assert.Equal(t, [][]string{
		{"int", "Keyword"},
		{"main", "Identifier"},
		{"(", "Punctuator"},
	}, table.Rows)
}

func TestParseTable_HeaderOnly(t *testing.T) {
	table, err := ParseTable("|A|B|\n|---|---|")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestParseTable_RowWithoutCellsIsKept(t *testing.T) {
	table, err := ParseTable("|A|B|\n|---|---|\nno pipes here\n|x|y|")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Empty(t, table.Rows[0])
	assert.Equal(t, []string{"x", "y"}, table.Rows[1])
}

func TestParseTable_CRLF(t *testing.T) {
	table, err := ParseTable("| A | B |\r\n| --- | --- |\r\n| 1 | 2 |\r\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Header)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestParseTable_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"blank lines only", "\n   \n\t\n"},
		{"single line", "| A | B |"},
		{"single line among blanks", "\n\n| A | B |\n\n"},
		{"missing separator", "| A | B |\n| x | y |"},
		{"empty header", "no pipes\n|---|"},
		{"short row", "|A|B|\n|---|---|\n|x|"},
		{"long row", "|A|B|\n|---|---|\n|x|y|z|"},
		{"prose", "The lexer produced the following tokens: int, main, (, )."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseTable(tt.text)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, ErrNotTable), "got %v", err)
		})
	}
}
