package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	r, err := ParseRange("Invoice!A14:J40")
	require.NoError(t, err)
	require.Equal(t, Range{Sheet: "Invoice", StartCol: 1, StartRow: 14, EndCol: 10, EndRow: 40}, r)
	require.Equal(t, 27, r.Rows())
	require.Equal(t, "Invoice!A14:J40", r.String())

	r, err = ParseRange("Hours!A:Z")
	require.NoError(t, err)
	require.Equal(t, 0, r.Rows())
	require.Equal(t, 26, r.EndCol)
	require.Equal(t, "Hours!A:Z", r.String())

	r, err = ParseRange("'Q1 Invoice'!B8")
	require.NoError(t, err)
	require.Equal(t, "Q1 Invoice", r.Sheet)
	require.Equal(t, "'Q1 Invoice'!B8", r.String())

	for _, bad := range []string{"", "14", "A0", "J40:A14", "Invoice!"} {
		_, err := ParseRange(bad)
		require.Error(t, err, bad)
	}
}

func TestColumns(t *testing.T) {
	require.Equal(t, 1, ColumnIndex("A"))
	require.Equal(t, 26, ColumnIndex("Z"))
	require.Equal(t, 27, ColumnIndex("AA"))
	require.Equal(t, "J", ColumnName(10))
	require.Equal(t, "AB", ColumnName(28))
}

func TestLayout_TableRows(t *testing.T) {
	l := DefaultLayout()
	require.NoError(t, l.Validate())

	rng, err := l.TableRows(l.HoursRegion, 3)
	require.NoError(t, err)
	require.Equal(t, "Invoice!A14:J16", rng)

	rng, err = l.TableRows(l.ExpensesRegion, 1)
	require.NoError(t, err)
	require.Equal(t, "Invoice!A45:J45", rng)

	_, err = l.TableRows(l.HoursRegion, 28)
	require.ErrorIs(t, err, ErrTooManyRows)

	l.Sheet = "My Invoice"
	require.Equal(t, "'My Invoice'!B8", l.Cell(l.ClientCell))

	require.Error(t, Layout{HoursRegion: "A:J"}.WithDefaults().Validate())
}

func TestLayout_TableRowsFollowRegionColumns(t *testing.T) {
	l := DefaultLayout()
	l.HoursRegion = "B14:K40"
	require.NoError(t, l.Validate())

	rng, err := l.TableRows(l.HoursRegion, 2)
	require.NoError(t, err)
	require.Equal(t, "Invoice!B14:K15", rng)
	require.Equal(t, "Invoice!B14:K40", l.Region(l.HoursRegion))
}

func TestLayout_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Layout)
	}{
		{"narrow region", func(l *Layout) { l.HoursRegion = "A14:F40" }},
		{"wide region", func(l *Layout) { l.ExpensesRegion = "A45:L70" }},
		{"sheet-qualified region", func(l *Layout) { l.HoursRegion = "Invoice!A14:J40" }},
		{"sheet-qualified cell", func(l *Layout) { l.ClientCell = "Invoice!B8" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			tt.modify(&l)
			require.Error(t, l.Validate())
		})
	}
}
