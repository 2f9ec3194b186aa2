package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tally/internal/application"
	"tally/internal/application/commands"
	"tally/internal/domain"
)

// RegisterReadTools adds the read-only reporting tools to the MCP server.
// No tool here ever writes a day file.
func RegisterReadTools(s *server.MCPServer, env application.Env) {
	s.AddTool(reportTool(), reportHandler(env))
	s.AddTool(dayEntriesTool(), dayEntriesHandler(env))
	s.AddTool(openGapTool(), openGapHandler(env))
}

// --- report ---

func reportTool() mcp.Tool {
	return mcp.NewTool("report",
		mcp.WithDescription("Aggregate time statistics for a period. Returns per-activity hours and the productive total."),
		mcp.WithString("period",
			mcp.Description("One of: today, yesterday, lastday, week, year, day"),
			mcp.Required(),
		),
		mcp.WithString("date",
			mcp.Description("YYYY-MM-DD, required when period is 'day'"),
		),
		mcp.WithNumber("count",
			mcp.Description("Repeat count, e.g. 3 with period 'week' means the trailing 21 days"),
		),
	)
}

func reportHandler(env application.Env) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		period, err := parsePeriod(req)
		if err != nil {
			return toolError(err)
		}
		report, err := commands.NewReportCommand(env, period).Execute()
		if err != nil {
			if errors.Is(err, domain.ErrNoData) {
				return mcp.NewToolResultText(err.Error()), nil
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(formatReport(env, report)), nil
	}
}

func parsePeriod(req mcp.CallToolRequest) (domain.Period, error) {
	count := int(req.GetFloat("count", 1))
	switch req.GetString("period", "") {
	case "today":
		return domain.Period{Kind: domain.PeriodToday}, nil
	case "yesterday":
		return domain.Period{Kind: domain.PeriodYesterday, Count: count}, nil
	case "lastday":
		return domain.Period{Kind: domain.PeriodLastDay}, nil
	case "week":
		return domain.Period{Kind: domain.PeriodWeek, Count: count}, nil
	case "year":
		return domain.Period{Kind: domain.PeriodYear, Count: count}, nil
	case "day":
		date, err := domain.ParseDate(req.GetString("date", ""))
		if err != nil {
			return domain.Period{}, err
		}
		return domain.Period{Kind: domain.PeriodDay, Day: date}, nil
	default:
		return domain.Period{}, fmt.Errorf("unknown period %q", req.GetString("period", ""))
	}
}

func formatReport(env application.Env, report *commands.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "productive_hours: %.2f\n", report.Summary.ProductiveHours(env.Quantum))
	for _, a := range env.Acts {
		if d, ok := report.Summary.ByActivity[a.ID]; ok && d > 0 {
			fmt.Fprintf(&b, "%s: %.2f h\n", a.ID, report.Summary.Hours(a.ID, env.Quantum))
		}
	}
	fmt.Fprintf(&b, "days_with_data: %d\n", report.DaysWithData)
	return b.String()
}

// --- day_entries ---

func dayEntriesTool() mcp.Tool {
	return mcp.NewTool("day_entries",
		mcp.WithDescription("List the recorded entries of one day as 'HH:MM-HH:MM activity [comment]' lines."),
		mcp.WithString("date",
			mcp.Description("YYYY-MM-DD; omit for today"),
		),
	)
}

func dayEntriesHandler(env application.Env) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date := env.Today
		if text := req.GetString("date", ""); text != "" {
			var err error
			if date, err = domain.ParseDate(text); err != nil {
				return toolError(err)
			}
		}
		entries, err := env.Store.Load(date)
		if err != nil {
			return toolError(err)
		}
		ledger, err := domain.NewLedger(date, entries)
		if err != nil {
			return toolError(err)
		}
		if len(ledger.Entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("no entries for %s", date)), nil
		}

		var b strings.Builder
		for _, e := range ledger.Entries {
			fmt.Fprintf(&b, "%s-%s %s", domain.FormatClock(e.Start), domain.FormatClock(e.End), e.Activity)
			if e.Comment != "" {
				fmt.Fprintf(&b, " [%s]", e.Comment)
			}
			b.WriteString("\n")
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

// --- open_gap ---

func openGapTool() mcp.Tool {
	return mcp.NewTool("open_gap",
		mcp.WithDescription("Report the unrecorded interval between the last entry of today's ledger and now."),
	)
}

func openGapHandler(env application.Env) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := env.Store.Load(env.Today)
		if err != nil {
			return toolError(err)
		}
		ledger, err := domain.NewLedger(env.Today, entries)
		if err != nil {
			return toolError(err)
		}
		gap := ledger.Gap(env.Now, env.Quantum)
		if gap.IsZero() {
			return mcp.NewToolResultText("up to date"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("open gap %s-%s (%s)",
			domain.FormatClock(gap.Start), domain.FormatClock(gap.End), gap.Duration())), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
