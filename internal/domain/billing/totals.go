package billing

import "github.com/shopspring/decimal"

// HoursLine is one billable block of time.
type HoursLine struct {
	Start string
	End   string
	Rate  decimal.Decimal
}

// Hours returns the rounded elapsed hours of the line.
func (l HoursLine) Hours() decimal.Decimal {
	return ElapsedHours(l.Start, l.End)
}

// Amount returns hours × rate without further rounding.
func (l HoursLine) Amount() decimal.Decimal {
	return l.Hours().Mul(l.Rate)
}

// Totals is the rollup of a show's hours and expenses.
//
// Only per-line hours are rounded. Subtotals, tax and grand total keep full
// precision; use Display for two-decimal presentation.
type Totals struct {
	HoursSubtotal    decimal.Decimal `json:"hours_subtotal"`
	ExpensesSubtotal decimal.Decimal `json:"expenses_subtotal"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// ComputeTotals aggregates hours lines and expense amounts and applies the tax rate.
func ComputeTotals(hours []HoursLine, expenses []decimal.Decimal, taxRate decimal.Decimal) Totals {
	hoursSubtotal := decimal.Zero
	for _, line := range hours {
		hoursSubtotal = hoursSubtotal.Add(line.Amount())
	}

	expensesSubtotal := decimal.Zero
	for _, amount := range expenses {
		expensesSubtotal = expensesSubtotal.Add(amount)
	}

	subtotal := hoursSubtotal.Add(expensesSubtotal)
	tax := subtotal.Mul(taxRate)

	return Totals{
		HoursSubtotal:    hoursSubtotal,
		ExpensesSubtotal: expensesSubtotal,
		Subtotal:         subtotal,
		Tax:              tax,
		GrandTotal:       subtotal.Add(tax),
	}
}

// DisplayTotals holds totals formatted with two decimals.
type DisplayTotals struct {
	HoursSubtotal    string `json:"hours_subtotal"`
	ExpensesSubtotal string `json:"expenses_subtotal"`
	Subtotal         string `json:"subtotal"`
	Tax              string `json:"tax"`
	GrandTotal       string `json:"grand_total"`
}

// Display formats every field with two decimals.
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		HoursSubtotal:    t.HoursSubtotal.StringFixed(2),
		ExpensesSubtotal: t.ExpensesSubtotal.StringFixed(2),
		Subtotal:         t.Subtotal.StringFixed(2),
		Tax:              t.Tax.StringFixed(2),
		GrandTotal:       t.GrandTotal.StringFixed(2),
	}
}
