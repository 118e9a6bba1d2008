package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rpggio/showbill/internal/invoice"
)

// handleStatelessSync syncs a payload supplied in full by the caller.
func (s *Server) handleStatelessSync(w http.ResponseWriter, r *http.Request) {
	mode, err := s.syncModeFor(r)
	if err != nil {
		s.writeSyncError(w, r, invoice.Result{}, err)
		return
	}
	req := &syncRequest{}
	if err := bind(r, req); err != nil {
		s.writeSyncError(w, r, invoice.Result{}, err)
		return
	}

	result, err := s.svc.Invoices.Sync(r.Context(), mode, req.Payload)
	if err != nil {
		s.writeSyncError(w, r, result, err)
		return
	}
	render.JSON(w, r, result)
}

// handleShowSync syncs a stored show and keeps its document reference.
func (s *Server) handleShowSync(w http.ResponseWriter, r *http.Request) {
	mode, err := s.syncModeFor(r)
	if err != nil {
		s.writeSyncError(w, r, invoice.Result{}, err)
		return
	}

	result, err := s.svc.ShowSync.Sync(r.Context(), chi.URLParam(r, "showID"), mode)
	if err != nil {
		s.writeSyncError(w, r, result, err)
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) writeSyncError(w http.ResponseWriter, r *http.Request, result invoice.Result, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("invoice sync failed", "path", r.URL.Path, "error", err)
	}
	result.OK = false
	result.Error = err.Error()
	render.Status(r, status)
	render.JSON(w, r, result)
}
