package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showbill/internal/domain/expense"
	"github.com/rpggio/showbill/internal/domain/show"
	"github.com/rpggio/showbill/internal/domain/timeentry"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/shopspring/decimal"
)

func registerTools(server *sdkmcp.Server, svc Services, syncMode invoice.Mode) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_shows",
		Description: "List shows, most recently updated first.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListShowsParams) (*sdkmcp.CallToolResult, any, error) {
		shows, err := svc.Shows.List(ctx, show.ListOptions{
			Status: show.Status(in.Status),
			Limit:  in.Limit,
			Offset: in.Offset,
		})
		if err != nil {
			return errorResult(err)
		}
		if shows == nil {
			shows = []show.Show{}
		}
		return jsonResult(shows)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_show",
		Description: "Create a draft show. Empty fields take their defaults.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateShowParams) (*sdkmcp.CallToolResult, any, error) {
		taxRate, err := parseDecimal("tax_rate", in.TaxRate)
		if err != nil {
			return errorResult(err)
		}
		sh, err := svc.Shows.Create(ctx, show.CreateRequest{
			Title:      in.Title,
			ClientName: in.ClientName,
			JobNumber:  in.JobNumber,
			TaxRate:    taxRate,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(sh)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_show_totals",
		Description: "Compute hours, expenses, tax and grand total for a show.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetShowTotalsParams) (*sdkmcp.CallToolResult, any, error) {
		l, err := svc.Ledgers.Load(ctx, in.ShowID)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(ShowTotals{
			ShowID:      l.Show.ID,
			Title:       l.Show.Title,
			TimeEntries: len(l.TimeEntries),
			Expenses:    len(l.Expenses),
			Totals:      l.Totals.Display(),
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_time_entry",
		Description: "Record hours worked on a show. Defaults: today, On-Site, Show Day, 09:00-17:00 at 60/h.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTimeEntryParams) (*sdkmcp.CallToolResult, any, error) {
		rate, err := parseDecimal("hourly_rate", in.HourlyRate)
		if err != nil {
			return errorResult(err)
		}
		entry, err := svc.TimeEntries.Add(ctx, in.ShowID, timeentry.AddRequest{
			Date:         in.Date,
			Description:  in.Description,
			LocationType: timeentry.LocationType(in.LocationType),
			WorkType:     timeentry.WorkType(in.WorkType),
			StartTime:    in.StartTime,
			EndTime:      in.EndTime,
			HourlyRate:   rate,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(entry)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_expense",
		Description: "Record an expense against a show.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddExpenseParams) (*sdkmcp.CallToolResult, any, error) {
		amount, err := parseDecimal("amount", in.Amount)
		if err != nil {
			return errorResult(err)
		}
		if amount == nil {
			return errorResult(invalidInput("amount is required"))
		}
		exp, err := svc.Expenses.Add(ctx, in.ShowID, expense.AddRequest{
			Date:        in.Date,
			Category:    expense.Category(in.Category),
			Description: in.Description,
			Amount:      *amount,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(exp)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_show",
		Description: "Push a show to the invoice spreadsheet and remember the generated document.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SyncShowParams) (*sdkmcp.CallToolResult, any, error) {
		mode := syncMode
		if in.Mode != "" {
			parsed, err := invoice.ParseMode(in.Mode)
			if err != nil {
				return errorResult(err)
			}
			mode = parsed
		}
		res, err := svc.ShowSync.Sync(ctx, in.ShowID, mode)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(SyncShowResult{Result: res, Mode: mode})
	})
}

func parseDecimal(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, invalidInput("%s: %q is not a number", field, value)
	}
	return &d, nil
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult reports a domain failure as a tool error rather than a protocol error.
func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	data, marshalErr := json.Marshal(MapError(err))
	if marshalErr != nil {
		return nil, nil, marshalErr
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
