package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/config"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/rpggio/showbill/internal/mcp"
	"github.com/rpggio/showbill/internal/notify"
	"github.com/rpggio/showbill/internal/redislock"
	"github.com/rpggio/showbill/internal/sheets"
	"github.com/rpggio/showbill/internal/sheets/memsheet"
	"github.com/rpggio/showbill/internal/sqlite"
	"github.com/rpggio/showbill/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	feed := changefeed.NewBroker(changefeed.DefaultBuffer, logger)

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	showSvc := show.NewService(sqlite.NewShowRepository(db), activitySvc, feed, logger)
	entrySvc := timeentry.NewService(sqlite.NewTimeEntryRepository(db), showSvc, activitySvc, feed, logger)
	expenseSvc := expense.NewService(sqlite.NewExpenseRepository(db), showSvc, activitySvc, feed, logger)
	receiptSvc := receipt.NewService(sqlite.NewReceiptRepository(db), showSvc, expenseSvc, activitySvc, feed, logger)
	ledgerSvc := ledger.NewService(showSvc, entrySvc, expenseSvc, logger)

	invoiceSvc := invoice.NewService(newSpreadsheets(ctx, cfg, logger), invoice.Config{
		TemplateID:       cfg.Google.TemplateID,
		LogSpreadsheetID: cfg.Google.LogSpreadsheetID,
		Layout:           cfg.Invoice,
	}, logger)

	syncOpts := invoice.ShowSyncOptions{
		Activities: activitySvc,
		Feed:       feed,
		Timeout:    cfg.Sync.Timeout,
		Logger:     logger,
	}
	if cfg.Redis.Enabled {
		rdb, err := redislock.NewClient(ctx, cfg.Redis.Client)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		syncOpts.Locker = redislock.New(rdb, cfg.Redis.LockTTL, logger)
	}
	if cfg.AMQP.Enabled {
		publisher := notify.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, logger)
		defer publisher.Close()
		syncOpts.Notifier = publisher
	}
	showSync := invoice.NewShowSync(invoiceSvc, ledgerSvc, showSvc, syncOpts)

	syncMode, _ := invoice.ParseMode(cfg.Sync.Mode)
	var verifier *transport.JWTVerifier
	if cfg.Auth.Enabled {
		verifier = transport.NewJWTVerifier(cfg.Auth.JWTSecret)
	}

	mcpCfg := mcp.Config{
		Services: mcp.Services{
			Shows:       showSvc,
			Ledgers:     ledgerSvc,
			TimeEntries: entrySvc,
			Expenses:    expenseSvc,
			ShowSync:    showSync,
		},
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		SyncMode:      syncMode,
		Logger:        logger,
	}
	if verifier != nil {
		mcpCfg.Verifier = verifier
	}
	mcpServer := mcp.NewServer(mcpCfg)

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcpServer)
		return
	}

	opts := transport.Options{
		MCP:      mcp.NewHTTPHandler(mcpServer, mcp.DefaultSessionTimeout),
		SyncMode: syncMode,
		Logger:   logger,
	}
	if verifier != nil {
		opts.Auth = transport.AuthMiddleware(verifier)
	}
	router := transport.NewServer(transport.Services{
		Shows:       showSvc,
		TimeEntries: entrySvc,
		Expenses:    expenseSvc,
		Receipts:    receiptSvc,
		Activity:    activitySvc,
		Ledgers:     ledgerSvc,
		Invoices:    invoiceSvc,
		ShowSync:    showSync,
		Feed:        feed,
	}, opts)

	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

// newSpreadsheets picks the spreadsheet provider. A nil result leaves sync unconfigured.
func newSpreadsheets(ctx context.Context, cfg config.Config, logger *slog.Logger) invoice.Spreadsheets {
	if cfg.Sync.Provider == "memory" {
		store := memsheet.New()
		if cfg.Google.TemplateID != "" {
			store.AddDocument(cfg.Google.TemplateID, "Invoice Template")
		}
		if cfg.Google.LogSpreadsheetID != "" {
			store.AddDocument(cfg.Google.LogSpreadsheetID, "Invoice Log")
		}
		logger.Warn("using in-memory spreadsheets; synced invoices are not persisted")
		return store
	}

	client, err := sheets.New(ctx, sheets.Config{
		Email:           cfg.Google.ServiceAccountEmail,
		PrivateKey:      cfg.Google.PrivateKey,
		CredentialsFile: cfg.Google.CredentialsFile,
	}, logger)
	if err != nil {
		if errors.Is(err, invoice.ErrNotConfigured) {
			logger.Warn("google credentials missing; invoice sync disabled")
		} else {
			logger.Error("failed to create google client; invoice sync disabled", "error", err)
		}
		return nil
	}
	return client
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}
	if size <= keepLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	if _, err := w.file.Seek(size-keepLogSizeBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(buf)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
