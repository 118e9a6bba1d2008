package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `showbill tracks billable work for trade shows and turns it into invoices.

Core concepts:
- Show: one job for one client (title, client, job number, tax rate). Draft or Closed.
- Time entry: a dated block of hours (HH:MM to HH:MM, same day) at an hourly rate.
- Expense: a dated amount in a category (Per Diem, Taxi/Uber, Hotel, ...).
- Totals: hours subtotal + expenses subtotal, tax on the sum, grand total; two decimals.
- Sync: pushes a show to Google Sheets. Mode document copies the invoice template once
  per show and rewrites its tables; mode log appends flat rows to a shared log sheet.

Workflow:
1) list_shows or create_show to pick a show.
2) add_time_entry / add_expense to record lines. Money values are decimal strings.
3) get_show_totals to review.
4) sync_show to publish. Re-syncing a show reuses its document.

Errors come back as tool errors with a code (SHOW_NOT_FOUND, INVALID_INPUT,
NOT_CONFIGURED, SYNC_IN_PROGRESS, TOO_MANY_ROWS, TIMEOUT, INTERNAL).

Docs:
- showbill://docs/billing (hours and totals rules)
- showbill://docs/sync (document and log protocols)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "showbill://docs/billing",
		Name:        "docs_billing",
		Title:       "Hours and totals",
		Description: "How hours, line amounts, tax and grand totals are computed.",
		Content: `# Hours and totals

- Hours for an entry are (end - start) in hours, rounded half-up to two decimals.
  An end at or before the start is zero hours; entries never cross midnight.
  Unparseable clocks count as zero.
- The line amount is rounded hours x rate.
- Hours subtotal sums line amounts. Expenses subtotal sums amounts.
- Tax = (hours subtotal + expenses subtotal) x tax rate, where the rate is a fraction
  (0.13 means 13%).
- Grand total = subtotal + tax. Every figure is shown with two decimals.
`,
	},
	{
		URI:         "showbill://docs/sync",
		Name:        "docs_sync",
		Title:       "Invoice sync",
		Description: "Document and log sync protocols, limits and failure behaviour.",
		Content: `# Invoice sync

## Document mode (default)

1. A show without a document gets a copy of the invoice template named
   "<client> - <title> (<first 8 characters of the show ID>)". The new document ID
   is stored on the show.
2. Header cells are written: submission date, client, show title, job number.
3. The hours and expenses tables are cleared.
4. Hours rows, then expense rows, are written from the top of each table.

Tables have fixed capacity. A show with more lines than fit fails with TOO_MANY_ROWS
before anything is written; use log mode instead.

If a step after the copy fails, the document ID is still stored so the next sync
reuses the same document.

## Log mode

Every time entry and expense is appended as one flat row to the log spreadsheet.
Repeating a log sync appends the rows again.

## Concurrency

Only one sync per show runs at a time. A second call fails with SYNC_IN_PROGRESS.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
