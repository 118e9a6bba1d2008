package billing_test

import (
	"testing"

	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestParseClock(t *testing.T) {
	minutes, err := billing.ParseClock("09:15")
	require.NoError(t, err)
	require.Equal(t, 555, minutes)

	minutes, err = billing.ParseClock("7:05")
	require.NoError(t, err)
	require.Equal(t, 425, minutes)

	for _, bad := range []string{"", "0900", "24:00", "12:60", "ab:cd", "12:5"} {
		_, err := billing.ParseClock(bad)
		require.ErrorIs(t, err, billing.ErrInvalidClock, bad)
	}
}

func TestElapsedHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"09:00", "17:00", "8.00"},
		{"09:15", "17:45", "8.50"},
		{"09:00", "13:00", "4"},
		{"09:00", "09:01", "0.02"},
		{"09:00", "09:20", "0.33"},
		{"09:00", "09:10", "0.17"},
		{"09:00", "09:00", "0"},
		{"17:00", "09:00", "0"},
		{"23:00", "01:00", "0"},
		{"bogus", "10:00", "0"},
	}
	for _, tc := range cases {
		requireDecimal(t, tc.want, billing.ElapsedHours(tc.start, tc.end))
	}
}

func TestHoursBetween_NonPositiveSpan(t *testing.T) {
	for start := 0; start < 24*60; start += 97 {
		for end := 0; end <= start; end += 131 {
			require.True(t, billing.HoursBetween(start, end).IsZero())
		}
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := billing.ComputeTotals(nil, nil, decimal.RequireFromString("0.13"))
	require.True(t, totals.HoursSubtotal.IsZero())
	require.True(t, totals.ExpensesSubtotal.IsZero())
	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Tax.IsZero())
	require.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotals_Scenario(t *testing.T) {
	hours := []billing.HoursLine{{Start: "09:00", End: "13:00", Rate: decimal.NewFromInt(50)}}
	expenses := []decimal.Decimal{decimal.NewFromInt(30)}

	totals := billing.ComputeTotals(hours, expenses, decimal.RequireFromString("0.13"))
	requireDecimal(t, "200", totals.HoursSubtotal)
	requireDecimal(t, "30", totals.ExpensesSubtotal)
	requireDecimal(t, "230", totals.Subtotal)
	requireDecimal(t, "29.90", totals.Tax)
	requireDecimal(t, "259.90", totals.GrandTotal)

	display := totals.Display()
	require.Equal(t, "200.00", display.HoursSubtotal)
	require.Equal(t, "30.00", display.ExpensesSubtotal)
	require.Equal(t, "230.00", display.Subtotal)
	require.Equal(t, "29.90", display.Tax)
	require.Equal(t, "259.90", display.GrandTotal)
}

func TestComputeTotals_KeepsPrecisionUntilDisplay(t *testing.T) {
	// 0.33 h × 10.01 = 3.3033; tax at 0.13 = 0.429429
	hours := []billing.HoursLine{{Start: "09:00", End: "09:20", Rate: decimal.RequireFromString("10.01")}}
	totals := billing.ComputeTotals(hours, nil, decimal.RequireFromString("0.13"))

	requireDecimal(t, "3.3033", totals.HoursSubtotal)
	requireDecimal(t, "0.429429", totals.Tax)
	requireDecimal(t, "3.732729", totals.GrandTotal)
	require.Equal(t, "3.73", totals.Display().GrandTotal)
}

func TestComputeTotals_Linear(t *testing.T) {
	rate := decimal.RequireFromString("0.13")
	hours := []billing.HoursLine{
		{Start: "09:00", End: "17:30", Rate: decimal.RequireFromString("62.5")},
		{Start: "08:10", End: "11:55", Rate: decimal.NewFromInt(45)},
		{Start: "12:00", End: "10:00", Rate: decimal.NewFromInt(80)},
	}
	expenses := []decimal.Decimal{decimal.RequireFromString("12.34"), decimal.NewFromInt(100)}
	base := billing.ComputeTotals(hours, expenses, rate)

	for _, k := range []decimal.Decimal{decimal.NewFromInt(2), decimal.RequireFromString("0.5"), decimal.NewFromInt(7)} {
		scaledHours := make([]billing.HoursLine, len(hours))
		for i, line := range hours {
			line.Rate = line.Rate.Mul(k)
			scaledHours[i] = line
		}
		scaledExpenses := make([]decimal.Decimal, len(expenses))
		for i, amount := range expenses {
			scaledExpenses[i] = amount.Mul(k)
		}

		scaled := billing.ComputeTotals(scaledHours, scaledExpenses, rate)
		require.True(t, base.Subtotal.Mul(k).Equal(scaled.Subtotal))
		require.True(t, base.Tax.Mul(k).Equal(scaled.Tax))
		require.True(t, base.GrandTotal.Mul(k).Equal(scaled.GrandTotal))
	}
}
