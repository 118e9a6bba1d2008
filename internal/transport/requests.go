package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/shopspring/decimal"
)

type createShowRequest struct {
	Title      string           `json:"title"`
	ClientName string           `json:"client_name"`
	JobNumber  string           `json:"job_number"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
}

func (*createShowRequest) Bind(*http.Request) error { return nil }

func (req *createShowRequest) toDomain() show.CreateRequest {
	return show.CreateRequest{
		Title:      req.Title,
		ClientName: req.ClientName,
		JobNumber:  req.JobNumber,
		TaxRate:    req.TaxRate,
	}
}

type updateShowRequest struct {
	Title      *string          `json:"title"`
	ClientName *string          `json:"client_name"`
	JobNumber  *string          `json:"job_number"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
}

func (*updateShowRequest) Bind(*http.Request) error { return nil }

func (req *updateShowRequest) toDomain() show.UpdateRequest {
	return show.UpdateRequest{
		Title:      req.Title,
		ClientName: req.ClientName,
		JobNumber:  req.JobNumber,
		TaxRate:    req.TaxRate,
	}
}

type timeEntryRequest struct {
	Date         *string                 `json:"date"`
	Description  *string                 `json:"description"`
	LocationType *timeentry.LocationType `json:"location_type"`
	WorkType     *timeentry.WorkType     `json:"work_type"`
	StartTime    *string                 `json:"start_time"`
	EndTime      *string                 `json:"end_time"`
	HourlyRate   *decimal.Decimal        `json:"hourly_rate"`
}

func (*timeEntryRequest) Bind(*http.Request) error { return nil }

func (req *timeEntryRequest) toAdd() timeentry.AddRequest {
	add := timeentry.AddRequest{HourlyRate: req.HourlyRate}
	if req.Date != nil {
		add.Date = *req.Date
	}
	if req.Description != nil {
		add.Description = *req.Description
	}
	if req.LocationType != nil {
		add.LocationType = *req.LocationType
	}
	if req.WorkType != nil {
		add.WorkType = *req.WorkType
	}
	if req.StartTime != nil {
		add.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		add.EndTime = *req.EndTime
	}
	return add
}

func (req *timeEntryRequest) toUpdate() timeentry.UpdateRequest {
	return timeentry.UpdateRequest{
		Date:         req.Date,
		Description:  req.Description,
		LocationType: req.LocationType,
		WorkType:     req.WorkType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		HourlyRate:   req.HourlyRate,
	}
}

type expenseRequest struct {
	Date        *string           `json:"date"`
	Category    *expense.Category `json:"category"`
	Description *string           `json:"description"`
	Amount      *decimal.Decimal  `json:"amount"`
}

func (*expenseRequest) Bind(*http.Request) error { return nil }

func (req *expenseRequest) toAdd() expense.AddRequest {
	var add expense.AddRequest
	if req.Date != nil {
		add.Date = *req.Date
	}
	if req.Category != nil {
		add.Category = *req.Category
	}
	if req.Description != nil {
		add.Description = *req.Description
	}
	if req.Amount != nil {
		add.Amount = *req.Amount
	}
	return add
}

func (req *expenseRequest) toUpdate() expense.UpdateRequest {
	return expense.UpdateRequest{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}
}

// syncRequest is the body of a stateless sync.
type syncRequest struct {
	invoice.Payload
}

func (req *syncRequest) Bind(*http.Request) error {
	if req.Show.ID == "" {
		return fmt.Errorf("%w: show.id is required", errBadRequest)
	}
	return nil
}

func bind(r *http.Request, v render.Binder) error {
	if err := render.Bind(r, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, key)
	}
	return n, nil
}

func (s *Server) syncModeFor(r *http.Request) (invoice.Mode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return s.syncMode, nil
	}
	return invoice.ParseMode(raw)
}
