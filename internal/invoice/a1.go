package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a parsed A1-notation range. Columns and rows are 1-based; a zero
// row means the range is unbounded in that direction ("Hours!A:Z").
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseRange parses "Sheet!A1:B2", "'My Sheet'!A:C", "B8" and similar forms.
func ParseRange(s string) (Range, error) {
	var r Range
	ref := s
	if i := strings.LastIndex(s, "!"); i >= 0 {
		r.Sheet = unquoteSheet(s[:i])
		ref = s[i+1:]
	}

	from, to, isSpan := strings.Cut(ref, ":")
	var err error
	if r.StartCol, r.StartRow, err = parseCell(from); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if !isSpan {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, nil
	}
	if r.EndCol, r.EndRow, err = parseCell(to); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if r.EndCol < r.StartCol || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return Range{}, fmt.Errorf("invalid range %q: end precedes start", s)
	}
	return r, nil
}

// Rows reports the number of rows covered, or 0 when unbounded.
func (r Range) Rows() int {
	if r.StartRow == 0 || r.EndRow == 0 {
		return 0
	}
	return r.EndRow - r.StartRow + 1
}

// String renders the range back into A1 notation.
func (r Range) String() string {
	cell := func(col, row int) string {
		if row == 0 {
			return ColumnName(col)
		}
		return ColumnName(col) + strconv.Itoa(row)
	}
	ref := cell(r.StartCol, r.StartRow)
	if r.EndCol != r.StartCol || r.EndRow != r.StartRow {
		ref += ":" + cell(r.EndCol, r.EndRow)
	}
	if r.Sheet == "" {
		return ref
	}
	return QuoteSheet(r.Sheet) + "!" + ref
}

func parseCell(cell string) (col, row int, err error) {
	cell = strings.ToUpper(strings.TrimSpace(cell))
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("missing column in %q", cell)
	}
	col = ColumnIndex(cell[:i])
	if i == len(cell) {
		return col, 0, nil
	}
	row, err = strconv.Atoi(cell[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("bad row in %q", cell)
	}
	return col, row, nil
}

// ColumnIndex converts "A" to 1, "Z" to 26 and "AA" to 27.
func ColumnIndex(name string) int {
	idx := 0
	for _, ch := range strings.ToUpper(name) {
		idx = idx*26 + int(ch-'A'+1)
	}
	return idx
}

// ColumnName converts a 1-based column index to its letters.
func ColumnName(idx int) string {
	var name []byte
	for idx > 0 {
		idx--
		name = append([]byte{byte('A' + idx%26)}, name...)
		idx /= 26
	}
	return string(name)
}

// QuoteSheet quotes a sheet name for use in A1 notation when needed.
func QuoteSheet(name string) string {
	for _, ch := range name {
		if !(ch == '_' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

func unquoteSheet(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}
