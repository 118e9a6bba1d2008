package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rpggio/showbill/internal/domain/receipt"
)

// multipart overhead allowed on top of the image itself
const uploadSlack = 1 << 20

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "showID")
	if _, err := s.svc.Shows.Get(r.Context(), showID); err != nil {
		s.writeError(w, r, err)
		return
	}
	receipts, err := s.svc.Receipts.ListByShow(r.Context(), showID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if receipts == nil {
		receipts = []receipt.Receipt{}
	}
	render.JSON(w, r, receipts)
}

func (s *Server) handleAddReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, receipt.MaxImageBytes+uploadSlack)
	if err := r.ParseMultipartForm(receipt.MaxImageBytes + uploadSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, fmt.Errorf("%w: image exceeds %d bytes", receipt.ErrInvalidInput, receipt.MaxImageBytes))
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: missing file", errBadRequest))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	req := receipt.AddRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if expenseID := r.FormValue("expense_id"); expenseID != "" {
		req.ExpenseID = &expenseID
	}

	rec, err := s.svc.Receipts.Add(r.Context(), chi.URLParam(r, "showID"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, rec)
}

func (s *Server) handleReceiptImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.svc.Receipts.Image(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Receipts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
