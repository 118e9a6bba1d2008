package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
)

// Services groups the domain services served over HTTP.
type Services struct {
	Shows       *show.Service
	TimeEntries *timeentry.Service
	Expenses    *expense.Service
	Receipts    *receipt.Service
	Activity    *activity.Service
	Ledgers     *ledger.Service
	Invoices    *invoice.Service
	ShowSync    *invoice.ShowSync
	Feed        *changefeed.Broker
}

// Options configures the router.
type Options struct {
	// Auth guards every route except /health when set.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set. It authenticates its own requests.
	MCP http.Handler
	// SyncMode is used when a sync request names no mode.
	SyncMode invoice.Mode
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc      Services
	syncMode invoice.Mode
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(svc Services, opts Options) *chi.Mux {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.SyncMode == "" {
		opts.SyncMode = invoice.ModeDocument
	}
	srv := &Server{svc: svc, syncMode: opts.SyncMode, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(opts.Logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}

		r.Route("/api", func(r chi.Router) {
			r.Post("/sync", srv.handleStatelessSync)

			r.Route("/shows", func(r chi.Router) {
				r.Get("/", srv.handleListShows)
				r.Post("/", srv.handleCreateShow)
				r.Get("/search", srv.handleSearchShows)

				r.Route("/{showID}", func(r chi.Router) {
					r.Get("/", srv.handleGetShow)
					r.Patch("/", srv.handleUpdateShow)
					r.Delete("/", srv.handleDeleteShow)
					r.Post("/close", srv.handleCloseShow)
					r.Post("/reopen", srv.handleReopenShow)
					r.Get("/totals", srv.handleShowTotals)
					r.Get("/activity", srv.handleShowActivity)
					r.Get("/events", srv.handleShowEvents)
					r.Post("/sync", srv.handleShowSync)

					r.Get("/time-entries", srv.handleListTimeEntries)
					r.Post("/time-entries", srv.handleAddTimeEntry)
					r.Get("/expenses", srv.handleListExpenses)
					r.Post("/expenses", srv.handleAddExpense)
					r.Get("/receipts", srv.handleListReceipts)
					r.Post("/receipts", srv.handleAddReceipt)
				})
			})

			r.Patch("/time-entries/{id}", srv.handleUpdateTimeEntry)
			r.Delete("/time-entries/{id}", srv.handleDeleteTimeEntry)
			r.Patch("/expenses/{id}", srv.handleUpdateExpense)
			r.Delete("/expenses/{id}", srv.handleDeleteExpense)
			r.Get("/receipts/{id}/image", srv.handleReceiptImage)
			r.Delete("/receipts/{id}", srv.handleDeleteReceipt)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
