// Package memsheet is an in-memory spreadsheet provider. It backs tests and
// the "memory" provider mode used when running without Google credentials.
package memsheet

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rpggio/showbill/internal/invoice"
)

// DefaultSheet is used for ranges that name no sheet.
const DefaultSheet = "Sheet1"

type cell struct {
	row, col int
}

// Document is one in-memory spreadsheet.
type Document struct {
	ID     string
	Name   string
	sheets map[string]map[cell]any
}

func (d *Document) sheet(name string) map[cell]any {
	if name == "" {
		name = DefaultSheet
	}
	s, ok := d.sheets[name]
	if !ok {
		s = make(map[cell]any)
		d.sheets[name] = s
	}
	return s
}

// Call records one provider call.
type Call struct {
	Method string
	DocID  string
	Ranges []string
}

// Store holds documents and records every call made against it.
type Store struct {
	mu       sync.Mutex
	docs     map[string]*Document
	calls    []Call
	failures map[string]error
	nextID   int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs:     make(map[string]*Document),
		failures: make(map[string]error),
	}
}

// AddDocument creates an empty document with the given ID, e.g. a template
// or a log spreadsheet.
func (s *Store) AddDocument(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = &Document{ID: id, Name: name, sheets: make(map[string]map[cell]any)}
}

// FailOn makes every later call to method return err; nil clears it.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) begin(method, docID string, ranges ...string) (*Document, error) {
	s.calls = append(s.calls, Call{Method: method, DocID: docID, Ranges: ranges})
	if err := s.failures[method]; err != nil {
		return nil, err
	}
	doc, ok := s.docs[docID]
	if !ok {
		return nil, fmt.Errorf("document %s not found", docID)
	}
	return doc, nil
}

// CopyDocument implements invoice.Spreadsheets.
func (s *Store) CopyDocument(ctx context.Context, templateID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl, err := s.begin("CopyDocument", templateID)
	if err != nil {
		return "", err
	}

	s.nextID++
	copied := &Document{
		ID:     fmt.Sprintf("doc-%d", s.nextID),
		Name:   name,
		sheets: make(map[string]map[cell]any, len(tmpl.sheets)),
	}
	for sheetName, cells := range tmpl.sheets {
		dst := make(map[cell]any, len(cells))
		for k, v := range cells {
			dst[k] = v
		}
		copied.sheets[sheetName] = dst
	}
	s.docs[copied.ID] = copied
	return copied.ID, nil
}

// BatchWrite implements invoice.Spreadsheets.
func (s *Store) BatchWrite(ctx context.Context, docID string, data []invoice.ValueRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranges := make([]string, len(data))
	for i, vr := range data {
		ranges[i] = vr.Range
	}
	doc, err := s.begin("BatchWrite", docID, ranges...)
	if err != nil {
		return err
	}

	for _, vr := range data {
		r, err := invoice.ParseRange(vr.Range)
		if err != nil {
			return err
		}
		startRow := r.StartRow
		if startRow == 0 {
			startRow = 1
		}
		writeRows(doc.sheet(r.Sheet), startRow, r.StartCol, vr.Values)
	}
	return nil
}

// BatchClear implements invoice.Spreadsheets.
func (s *Store) BatchClear(ctx context.Context, docID string, ranges []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.begin("BatchClear", docID, ranges...)
	if err != nil {
		return err
	}

	for _, rng := range ranges {
		r, err := invoice.ParseRange(rng)
		if err != nil {
			return err
		}
		sheet := doc.sheet(r.Sheet)
		for k := range sheet {
			if inRange(r, k) {
				delete(sheet, k)
			}
		}
	}
	return nil
}

// Append implements invoice.Spreadsheets. Rows land below the last
// non-empty row within the range's columns.
func (s *Store) Append(ctx context.Context, docID, rng string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.begin("Append", docID, rng)
	if err != nil {
		return err
	}

	r, err := invoice.ParseRange(rng)
	if err != nil {
		return err
	}
	sheet := doc.sheet(r.Sheet)
	last := 0
	for k := range sheet {
		if inRange(r, k) && k.row > last {
			last = k.row
		}
	}
	writeRows(sheet, last+1, r.StartCol, rows)
	return nil
}

func writeRows(sheet map[cell]any, startRow, startCol int, rows [][]any) {
	for i, row := range rows {
		for j, v := range row {
			k := cell{row: startRow + i, col: startCol + j}
			if v == nil || v == "" {
				delete(sheet, k)
				continue
			}
			sheet[k] = v
		}
	}
}

func inRange(r invoice.Range, k cell) bool {
	if k.col < r.StartCol || k.col > r.EndCol {
		return false
	}
	if r.StartRow != 0 && k.row < r.StartRow {
		return false
	}
	if r.EndRow != 0 && k.row > r.EndRow {
		return false
	}
	return true
}

// Value returns the value at an A1 cell such as "Invoice!B8", or nil.
func (s *Store) Value(docID, ref string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docID]
	if !ok {
		return nil
	}
	r, err := invoice.ParseRange(ref)
	if err != nil {
		return nil
	}
	return doc.sheet(r.Sheet)[cell{row: r.StartRow, col: r.StartCol}]
}

// Rows returns the non-empty rows of a sheet in order, each spanning
// columns 1 through the widest populated column of that row.
func (s *Store) Rows(docID, sheetName string) [][]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docID]
	if !ok {
		return nil
	}

	byRow := map[int]map[int]any{}
	for k, v := range doc.sheet(sheetName) {
		if byRow[k.row] == nil {
			byRow[k.row] = map[int]any{}
		}
		byRow[k.row][k.col] = v
	}

	rowNums := make([]int, 0, len(byRow))
	for n := range byRow {
		rowNums = append(rowNums, n)
	}
	sort.Ints(rowNums)

	out := make([][]any, 0, len(rowNums))
	for _, n := range rowNums {
		width := 0
		for col := range byRow[n] {
			width = max(width, col)
		}
		row := make([]any, width)
		for col, v := range byRow[n] {
			row[col-1] = v
		}
		out = append(out, row)
	}
	return out
}

// RowsIn returns the non-empty rows that fall inside an A1 range.
func (s *Store) RowsIn(docID, rng string) [][]any {
	r, err := invoice.ParseRange(rng)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docID]
	if !ok {
		return nil
	}

	byRow := map[int][]any{}
	for k, v := range doc.sheet(r.Sheet) {
		if !inRange(r, k) {
			continue
		}
		row, ok := byRow[k.row]
		if !ok {
			row = make([]any, r.EndCol-r.StartCol+1)
			byRow[k.row] = row
		}
		row[k.col-r.StartCol] = v
	}

	rowNums := make([]int, 0, len(byRow))
	for n := range byRow {
		rowNums = append(rowNums, n)
	}
	sort.Ints(rowNums)

	out := make([][]any, 0, len(rowNums))
	for _, n := range rowNums {
		out = append(out, byRow[n])
	}
	return out
}

// Document returns a document's name and whether it exists.
func (s *Store) Document(docID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[docID]
	if !ok {
		return "", false
	}
	return doc.Name, true
}

// Calls returns the recorded calls, optionally filtered by method.
func (s *Store) Calls(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
