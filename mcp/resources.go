package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/schooldesk/mcp-school/proxy"
)

// cannedQuery is one fixed-URI read: the statement is compile-time constant
// and takes no caller input.
type cannedQuery struct {
	uri         string
	name        string
	description string
	statement   string
}

var cannedQueries = []cannedQuery{
	{
		uri:         "school://students/recent",
		name:        "Recently admitted students",
		description: "The 50 most recently admitted active students",
		statement:   "SELECT * FROM students WHERE active = 1 ORDER BY id DESC LIMIT 50",
	},
	{
		uri:         "school://fees/defaulters",
		name:        "Fee defaulters",
		description: "Allocations with an outstanding balance, joined to the student",
		statement: "SELECT s.id AS student_id, s.name, s.mobile_no, a.id AS allocation_id, a.amount, " +
			"a.amount - COALESCE((SELECT SUM(p.amount) FROM fee_payments p WHERE p.allocation_id = a.id), 0) AS balance " +
			"FROM fee_allocations a JOIN students s ON s.id = a.student_id " +
			"WHERE a.amount > COALESCE((SELECT SUM(p.amount) FROM fee_payments p WHERE p.allocation_id = a.id), 0) " +
			"ORDER BY balance DESC LIMIT 100",
	},
	{
		uri:         "school://inventory/low-stock",
		name:        "Low-stock products",
		description: "Products at or below their reorder level",
		statement:   "SELECT * FROM products WHERE stock <= reorder_level ORDER BY stock ASC LIMIT 100",
	},
	{
		uri:         "school://enquiries/open",
		name:        "Open enquiries",
		description: "Admission enquiries still open or in follow-up",
		statement:   "SELECT * FROM enquiries WHERE status IN ('open', 'follow_up') ORDER BY date DESC LIMIT 100",
	},
	{
		uri:         "school://exams/upcoming",
		name:        "Upcoming exam papers",
		description: "Exam schedules from today onward",
		statement:   "SELECT * FROM exam_schedules WHERE date >= CURRENT_DATE ORDER BY date ASC, start_time ASC LIMIT 100",
	},
}

func RegisterResources(s *server.MCPServer, exec proxy.Executor) {
	for _, q := range cannedQueries {
		s.AddResource(
			goMCP.NewResource(
				q.uri,
				q.name,
				goMCP.WithResourceDescription(q.description),
				goMCP.WithMIMEType("application/json"),
			),
			readHandler(exec, q),
		)
	}
}

func readHandler(exec proxy.Executor, q cannedQuery) server.ResourceHandlerFunc {
	return func(ctx context.Context, request goMCP.ReadResourceRequest) ([]goMCP.ResourceContents, error) {
		res, err := exec.Execute(ctx, q.statement, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", q.uri, err)
		}
		data, err := json.MarshalIndent(res.Rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", q.uri, err)
		}
		return []goMCP.ResourceContents{
			goMCP.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
