package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showbill/internal/changefeed"
	"github.com/rpggio/showbill/internal/domain/activity"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/ledger"
	"github.com/rpggio/showbill/internal/domain/receipt"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/rpggio/showbill/internal/mcp"
	"github.com/rpggio/showbill/internal/sheets/memsheet"
	"github.com/rpggio/showbill/internal/sqlite"
	"github.com/rpggio/showbill/internal/transport"
	"github.com/stretchr/testify/require"
)

// Secret signs the tokens accepted by a TestServer.
const Secret = "functional-secret"

// Document IDs seeded into the in-memory spreadsheet store.
const (
	TemplateID = "tmpl"
	LogID      = "log"
)

// TestServer runs the full HTTP stack (REST and MCP) against an in-memory
// database and spreadsheet store.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Store  *memsheet.Store
	Token  string
}

func New(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := memsheet.New()
	store.AddDocument(TemplateID, "Invoice Template")
	store.AddDocument(LogID, "Invoice Log")

	feed := changefeed.NewBroker(changefeed.DefaultBuffer, nil)
	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	showSvc := show.NewService(sqlite.NewShowRepository(db), activitySvc, feed, nil)
	entrySvc := timeentry.NewService(sqlite.NewTimeEntryRepository(db), showSvc, activitySvc, feed, nil)
	expenseSvc := expense.NewService(sqlite.NewExpenseRepository(db), showSvc, activitySvc, feed, nil)
	receiptSvc := receipt.NewService(sqlite.NewReceiptRepository(db), showSvc, expenseSvc, activitySvc, feed, nil)
	ledgerSvc := ledger.NewService(showSvc, entrySvc, expenseSvc, nil)
	invoiceSvc := invoice.NewService(store, invoice.Config{TemplateID: TemplateID, LogSpreadsheetID: LogID}, nil)
	showSync := invoice.NewShowSync(invoiceSvc, ledgerSvc, showSvc, invoice.ShowSyncOptions{
		Activities: activitySvc,
		Feed:       feed,
	})

	verifier := transport.NewJWTVerifier(Secret)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Shows:       showSvc,
			Ledgers:     ledgerSvc,
			TimeEntries: entrySvc,
			Expenses:    expenseSvc,
			ShowSync:    showSync,
		},
		Verifier:      verifier,
		AuthEnabled:   true,
		TransportMode: "http",
	})

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
	}, transport.Options{
		Auth: transport.AuthMiddleware(verifier),
		MCP:  mcp.NewHTTPHandler(mcpServer, time.Minute),
	})
	server := httptest.NewServer(router)

	token, err := transport.SignToken(Secret, "functional", time.Hour)
	require.NoError(t, err)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		Store:  store,
		Token:  token,
	}
}

// Connect opens an MCP session over streamable HTTP that presents token.
func (ts *TestServer) Connect(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// Do sends an authenticated REST request.
func (ts *TestServer) Do(t *testing.T, method, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
