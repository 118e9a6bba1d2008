package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// Config carries the document identifiers and layout for a Service.
type Config struct {
	// TemplateID is copied for shows without a document.
	TemplateID string
	// LogSpreadsheetID receives flat-log appends.
	LogSpreadsheetID string
	Layout           Layout
	// Now stamps the submitted header; defaults to time.Now.
	Now func() time.Time
}

// Service runs the sync protocols against a spreadsheet provider.
type Service struct {
	sheets Spreadsheets
	cfg    Config
	logger *slog.Logger
}

// NewService creates an invoice service. sheets may be nil when no provider
// is configured; every sync then fails with ErrNotConfigured.
func NewService(sheets Spreadsheets, cfg Config, logger *slog.Logger) *Service {
	cfg.Layout = cfg.Layout.WithDefaults()
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{sheets: sheets, cfg: cfg, logger: logger}
}

// Layout returns the effective layout.
func (s *Service) Layout() Layout {
	return s.cfg.Layout
}

// Sync runs the protocol selected by mode.
func (s *Service) Sync(ctx context.Context, mode Mode, p Payload) (Result, error) {
	switch mode {
	case ModeDocument, "":
		return s.SyncDocument(ctx, p)
	case ModeLog:
		return s.AppendLog(ctx, p)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// AppendLog appends one row per time entry to the hours log and one row per
// expense to the expenses log. Repeated calls duplicate rows.
func (s *Service) AppendLog(ctx context.Context, p Payload) (Result, error) {
	if s.sheets == nil {
		return Result{}, fmt.Errorf("%w: no spreadsheet provider", ErrNotConfigured)
	}
	if s.cfg.LogSpreadsheetID == "" {
		return Result{}, fmt.Errorf("%w: missing log spreadsheet id", ErrNotConfigured)
	}

	if rows := LogHoursRows(p); len(rows) > 0 {
		if err := s.sheets.Append(ctx, s.cfg.LogSpreadsheetID, s.cfg.Layout.HoursLogRange, rows); err != nil {
			return Result{}, fmt.Errorf("append hours: %w", err)
		}
	}
	if rows := LogExpenseRows(p); len(rows) > 0 {
		if err := s.sheets.Append(ctx, s.cfg.LogSpreadsheetID, s.cfg.Layout.ExpensesLogRange, rows); err != nil {
			return Result{}, fmt.Errorf("append expenses: %w", err)
		}
	}

	s.logger.Info("appended invoice log", "show_id", p.Show.ID, "hours_rows", len(p.TimeEntries), "expense_rows", len(p.Expenses))
	return Result{OK: true}, nil
}

// SyncDocument fills the show's invoice document, copying the template first
// when the show has none. On failure after the copy the returned Result still
// carries the new DocumentID so the caller can keep it.
func (s *Service) SyncDocument(ctx context.Context, p Payload) (Result, error) {
	if s.sheets == nil {
		return Result{}, fmt.Errorf("%w: no spreadsheet provider", ErrNotConfigured)
	}
	docID := p.Show.DocumentID
	if docID == "" && s.cfg.TemplateID == "" {
		return Result{}, fmt.Errorf("%w: missing template id", ErrNotConfigured)
	}

	layout := s.cfg.Layout
	hoursRange, hoursRows, err := s.tableWrite(layout.HoursRegion, DocumentHoursRows(p))
	if err != nil {
		return Result{}, err
	}
	expensesRange, expenseRows, err := s.tableWrite(layout.ExpensesRegion, DocumentExpenseRows(p))
	if err != nil {
		return Result{}, err
	}

	if docID == "" {
		docID, err = s.sheets.CopyDocument(ctx, s.cfg.TemplateID, DocumentName(p.Show))
		if err != nil {
			return Result{}, fmt.Errorf("copy template: %w", err)
		}
		s.logger.Info("copied invoice template", "show_id", p.Show.ID, "document_id", docID)
	}
	partial := Result{DocumentID: docID, URL: DocumentURL(docID)}

	if err := s.sheets.BatchWrite(ctx, docID, s.headerValues(p.Show)); err != nil {
		return partial, fmt.Errorf("write header: %w", err)
	}
	if err := s.sheets.BatchClear(ctx, docID, []string{layout.Region(layout.HoursRegion), layout.Region(layout.ExpensesRegion)}); err != nil {
		return partial, fmt.Errorf("clear tables: %w", err)
	}
	if len(hoursRows) > 0 {
		if err := s.sheets.BatchWrite(ctx, docID, []ValueRange{{Range: hoursRange, Values: hoursRows}}); err != nil {
			return partial, fmt.Errorf("write hours: %w", err)
		}
	}
	if len(expenseRows) > 0 {
		if err := s.sheets.BatchWrite(ctx, docID, []ValueRange{{Range: expensesRange, Values: expenseRows}}); err != nil {
			return partial, fmt.Errorf("write expenses: %w", err)
		}
	}

	s.logger.Info("synced invoice document", "show_id", p.Show.ID, "document_id", docID, "hours_rows", len(hoursRows), "expense_rows", len(expenseRows))
	partial.OK = true
	return partial, nil
}

func (s *Service) tableWrite(region string, rows [][]any) (string, [][]any, error) {
	if len(rows) == 0 {
		return "", nil, nil
	}
	rng, err := s.cfg.Layout.TableRows(region, len(rows))
	if err != nil {
		return "", nil, err
	}
	return rng, rows, nil
}

func (s *Service) headerValues(sh Show) []ValueRange {
	l := s.cfg.Layout
	cell := func(ref string, v any) ValueRange {
		return ValueRange{Range: l.Cell(ref), Values: [][]any{{v}}}
	}
	return []ValueRange{
		cell(l.SubmittedCell, "Submitted on "+s.cfg.Now().Format("January 2, 2006")),
		cell(l.ClientCell, sh.ClientName),
		cell(l.TitleCell, sh.Title),
		cell(l.JobNumberCell, "Job Number: "+sh.JobNumber),
	}
}

// DocumentName names the copy of the template made for a show.
func DocumentName(sh Show) string {
	prefix := sh.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s - %s (%s)", sh.ClientName, sh.Title, prefix)
}

// LogHoursRows renders the flat-log hours rows.
func LogHoursRows(p Payload) [][]any {
	rows := make([][]any, 0, len(p.TimeEntries))
	for _, e := range p.TimeEntries {
		rows = append(rows, []any{
			p.Show.ID,
			p.Show.ClientName,
			p.Show.Title,
			p.Show.JobNumber,
			e.Date,
			e.Description,
			e.LocationType,
			e.WorkType,
			e.StartTime,
			e.EndTime,
			number(e.HourlyRate),
		})
	}
	return rows
}

// LogExpenseRows renders the flat-log expense rows.
func LogExpenseRows(p Payload) [][]any {
	rows := make([][]any, 0, len(p.Expenses))
	for _, e := range p.Expenses {
		rows = append(rows, []any{
			p.Show.ID,
			p.Show.ClientName,
			p.Show.Title,
			p.Show.JobNumber,
			e.Date,
			e.Category,
			e.Description,
			number(e.Amount),
		})
	}
	return rows
}

// DocumentHoursRows renders the invoice hours table.
func DocumentHoursRows(p Payload) [][]any {
	rows := make([][]any, 0, len(p.TimeEntries))
	for i, e := range p.TimeEntries {
		hours := billing.ElapsedHours(e.StartTime, e.EndTime)
		rows = append(rows, []any{
			i + 1,
			e.Date,
			e.Description + " - " + e.WorkType,
			"",
			"",
			e.LocationType,
			number(hours),
			number(e.HourlyRate),
			number(hours.Mul(e.HourlyRate).Round(2)),
			"",
		})
	}
	return rows
}

// DocumentExpenseRows renders the invoice expenses table.
func DocumentExpenseRows(p Payload) [][]any {
	label := p.Show.Title
	if p.Show.JobNumber != "" {
		label = fmt.Sprintf("%s (%s)", p.Show.Title, p.Show.JobNumber)
	}

	rows := make([][]any, 0, len(p.Expenses))
	for i, e := range p.Expenses {
		rows = append(rows, []any{
			i + 1,
			e.Date,
			e.Category,
			e.Description,
			label,
			"",
			"",
			"",
			"",
			number(e.Amount),
		})
	}
	return rows
}

// number renders a decimal as a cell value the provider parses as a number.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
