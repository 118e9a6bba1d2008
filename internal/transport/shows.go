package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/rpggio/showbill/internal/domain/show"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	shows, err := s.svc.Shows.List(r.Context(), show.ListOptions{
		Status: show.Status(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shows == nil {
		shows = []show.Show{}
	}
	render.JSON(w, r, shows)
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	req := &createShowRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sh, err := s.svc.Shows.Create(r.Context(), req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sh)
}

func (s *Server) handleSearchShows(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	shows, err := s.svc.Shows.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shows == nil {
		shows = []show.Show{}
	}
	render.JSON(w, r, shows)
}

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	sh, err := s.svc.Shows.Get(r.Context(), chi.URLParam(r, "showID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, sh)
}

func (s *Server) handleUpdateShow(w http.ResponseWriter, r *http.Request) {
	req := &updateShowRequest{}
	if err := bind(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sh, err := s.svc.Shows.Update(r.Context(), chi.URLParam(r, "showID"), req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, sh)
}

func (s *Server) handleDeleteShow(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Shows.Delete(r.Context(), chi.URLParam(r, "showID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseShow(w http.ResponseWriter, r *http.Request) {
	sh, err := s.svc.Shows.Close(r.Context(), chi.URLParam(r, "showID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, sh)
}

func (s *Server) handleReopenShow(w http.ResponseWriter, r *http.Request) {
	sh, err := s.svc.Shows.Reopen(r.Context(), chi.URLParam(r, "showID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, sh)
}

type totalsResponse struct {
	ShowID string `json:"show_id"`
	billing.DisplayTotals
}

func (s *Server) handleShowTotals(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.Ledgers.Load(r.Context(), chi.URLParam(r, "showID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, totalsResponse{ShowID: l.Show.ID, DisplayTotals: l.Totals.Display()})
}

func (s *Server) handleShowActivity(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showID")
	if _, err := s.svc.Shows.Get(r.Context(), showID); err != nil {
		s.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), activity.ListActivityOptions{ShowID: showID, Limit: limit})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	render.JSON(w, r, entries)
}
