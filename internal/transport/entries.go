package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/timeentry"
)

func (s *Server) handleListTimeEntries(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showID")
	if _, err := s.svc.Shows.Get(r.Context(), showID); err != nil {
		s.writeError(w, r, err)
		return
	}
	entries, err := s.svc.TimeEntries.ListByShow(r.Context(), showID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []timeentry.TimeEntry{}
	}
	render.JSON(w, r, entries)
}

func (s *Server) handleAddTimeEntry(w http.ResponseWriter, r *http.Request) {
	req := &timeEntryRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.svc.TimeEntries.Add(r.Context(), chi.URLParam(r, "showID"), req.toAdd())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, entry)
}

func (s *Server) handleUpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	req := &timeEntryRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	entry, err := s.svc.TimeEntries.Update(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, entry)
}

func (s *Server) handleDeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.TimeEntries.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showID")
	if _, err := s.svc.Shows.Get(r.Context(), showID); err != nil {
		s.writeError(w, r, err)
		return
	}
	expenses, err := s.svc.Expenses.ListByShow(r.Context(), showID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []expense.Expense{}
	}
	render.JSON(w, r, expenses)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	req := &expenseRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	exp, err := s.svc.Expenses.Add(r.Context(), chi.URLParam(r, "showID"), req.toAdd())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, exp)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	req := &expenseRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	exp, err := s.svc.Expenses.Update(r.Context(), chi.URLParam(r, "id"), req.toUpdate())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, exp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
