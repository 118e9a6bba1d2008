package invoice

import "fmt"

// tableWidth is the number of columns in each invoice table row (A through J).
const tableWidth = 10

// Layout fixes where the templated invoice keeps its header cells and
// tables, and where the flat log appends.
type Layout struct {
	Sheet          string `yaml:"sheet"`
	SubmittedCell  string `yaml:"submitted_cell"`
	ClientCell     string `yaml:"client_cell"`
	TitleCell      string `yaml:"title_cell"`
	JobNumberCell  string `yaml:"job_number_cell"`
	HoursRegion    string `yaml:"hours_region"`
	ExpensesRegion string `yaml:"expenses_region"`

	HoursLogRange    string `yaml:"hours_log_range"`
	ExpensesLogRange string `yaml:"expenses_log_range"`
}

// DefaultLayout matches the stock invoice template.
func DefaultLayout() Layout {
	return Layout{
		Sheet:            "Invoice",
		SubmittedCell:    "H3",
		ClientCell:       "B8",
		TitleCell:        "B9",
		JobNumberCell:    "B10",
		HoursRegion:      "A14:J40",
		ExpensesRegion:   "A45:J70",
		HoursLogRange:    "Hours!A:Z",
		ExpensesLogRange: "Expenses!A:Z",
	}
}

// WithDefaults fills empty fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&l.Sheet, d.Sheet)
	fill(&l.SubmittedCell, d.SubmittedCell)
	fill(&l.ClientCell, d.ClientCell)
	fill(&l.TitleCell, d.TitleCell)
	fill(&l.JobNumberCell, d.JobNumberCell)
	fill(&l.HoursRegion, d.HoursRegion)
	fill(&l.ExpensesRegion, d.ExpensesRegion)
	fill(&l.HoursLogRange, d.HoursLogRange)
	fill(&l.ExpensesLogRange, d.ExpensesLogRange)
	return l
}

// Validate checks every coordinate parses and each table region is bounded.
// Header cells and table regions are relative to Sheet and must not name one.
func (l Layout) Validate() error {
	for _, cell := range []string{l.SubmittedCell, l.ClientCell, l.TitleCell, l.JobNumberCell} {
		r, err := ParseRange(cell)
		if err != nil {
			return err
		}
		if r.Sheet != "" {
			return fmt.Errorf("invalid cell %q: must not name a sheet", cell)
		}
	}
	for _, rng := range []string{l.HoursLogRange, l.ExpensesLogRange} {
		if _, err := ParseRange(rng); err != nil {
			return err
		}
	}
	for _, region := range []string{l.HoursRegion, l.ExpensesRegion} {
		r, err := ParseRange(region)
		if err != nil {
			return err
		}
		if r.Sheet != "" {
			return fmt.Errorf("invalid range %q: table region must not name a sheet", region)
		}
		if r.Rows() == 0 {
			return fmt.Errorf("invalid range %q: table region needs row bounds", region)
		}
		if width := r.EndCol - r.StartCol + 1; width != tableWidth {
			return fmt.Errorf("invalid range %q: table region must be %d columns wide, got %d", region, tableWidth, width)
		}
	}
	return nil
}

// Cell qualifies a cell reference with the invoice sheet.
func (l Layout) Cell(ref string) string {
	return QuoteSheet(l.Sheet) + "!" + ref
}

// Region returns a table region qualified with the invoice sheet.
func (l Layout) Region(region string) string {
	return l.Cell(region)
}

// TableRows returns the range for n rows written at the top of region.
func (l Layout) TableRows(region string, n int) (string, error) {
	r, err := ParseRange(region)
	if err != nil {
		return "", err
	}
	if capacity := r.Rows(); capacity > 0 && n > capacity {
		return "", fmt.Errorf("%w: %d rows do not fit in %s", ErrTooManyRows, n, region)
	}
	rows := Range{
		StartCol: r.StartCol,
		StartRow: r.StartRow,
		EndCol:   r.StartCol + tableWidth - 1,
		EndRow:   r.StartRow + n - 1,
	}
	return l.Cell(rows.String()), nil
}
