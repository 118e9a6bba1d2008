package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
)

// ShowService defines show operations needed by MCP.
type ShowService interface {
	Create(ctx context.Context, req show.CreateRequest) (*show.Show, error)
	List(ctx context.Context, opts show.ListOptions) ([]show.Show, error)
}

// LedgerService loads a show with its lines and totals.
type LedgerService interface {
	Load(ctx context.Context, showID string) (*ledger.Ledger, error)
}

type TimeEntryService interface {
	Add(ctx context.Context, showID string, req timeentry.AddRequest) (*timeentry.TimeEntry, error)
}

type ExpenseService interface {
	Add(ctx context.Context, showID string, req expense.AddRequest) (*expense.Expense, error)
}

// ShowSyncer pushes a stored show to the invoice spreadsheet.
type ShowSyncer interface {
	Sync(ctx context.Context, showID string, mode invoice.Mode) (invoice.Result, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Shows       ShowService
	Ledgers     LedgerService
	TimeEntries TimeEntryService
	Expenses    ExpenseService
	ShowSync    ShowSyncer
}

// Config contains server configuration.
type Config struct {
	Services Services
	// Verifier authenticates HTTP callers when AuthEnabled is set.
	Verifier      TokenVerifier
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	// SyncMode applies when sync_show names no mode.
	SyncMode invoice.Mode
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.SyncMode == "" {
		cfg.SyncMode = invoice.ModeDocument
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "showbill",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is a local, single-user channel and never authenticates.
	auth := noAuthMiddleware(LocalSubject)
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled && cfg.Verifier != nil {
		auth = authMiddleware(cfg.Verifier)
	}
	// auth runs first so traffic logs carry the subject.
	server.AddReceivingMiddleware(auth, trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.SyncMode)

	return server
}
