package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

var enquiryColumns = []string{
	"name", "mobile_no", "date", "email", "branch_id", "source", "note", "status",
}

func Enquiries() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_enquiry",
			Description: "Record a new admission enquiry",
			Fields: fields(
				reqStr("name", "Name of the enquirer"),
				reqStr("mobile_no", "Contact mobile number"),
				reqStr("date", "Enquiry date (YYYY-MM-DD)"),
				str("email", "Email address"),
				num("branch_id", "Branch the enquiry was made at"),
				str("source", "How the enquirer heard about the school"),
				str("note", "Free-form note"),
				enumDef("status", "Enquiry status", "open", "open", "follow_up", "converted", "closed"),
			),
			Handler: ops.Insert("enquiries", enquiryColumns),
		},
		{
			Name:        "list_enquiries",
			Description: "List admission enquiries with optional filters",
			Fields: paged(
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: []string{"open", "follow_up", "converted", "closed"}},
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
				str("date_from", "Only enquiries on or after this date"),
				str("date_to", "Only enquiries on or before this date"),
			),
			Handler: ops.List("enquiries", []ops.Filter{
				{Field: "status"},
				{Field: "branch_id"},
				{Field: "name", Like: true},
				{Field: "date_from", Column: "date", Op: ">="},
				{Field: "date_to", Column: "date", Op: "<="},
			}, "date DESC, id DESC"),
		},
		{
			Name:        "get_enquiry",
			Description: "Fetch one enquiry by id",
			Fields:      fields(reqNum("id", "Enquiry id")),
			Handler:     ops.Get("enquiries"),
		},
		{
			Name:        "update_enquiry",
			Description: "Update an enquiry; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Enquiry id"),
				str("name", "Name of the enquirer"),
				str("mobile_no", "Contact mobile number"),
				str("date", "Enquiry date (YYYY-MM-DD)"),
				str("email", "Email address"),
				num("branch_id", "Branch the enquiry was made at"),
				str("source", "How the enquirer heard about the school"),
				str("note", "Free-form note"),
				registry.Field{Name: "status", Description: "Enquiry status", Type: registry.String,
					Enum: []string{"open", "follow_up", "converted", "closed"}},
			),
			Handler: ops.Update("enquiries", enquiryColumns),
		},
		{
			Name:        "delete_enquiry",
			Description: "Delete one enquiry by id",
			Fields:      fields(reqNum("id", "Enquiry id")),
			Handler:     ops.Delete("enquiries"),
		},
		{
			Name: "convert_enquiry",
			Description: "Convert an enquiry into a student admission. Runs three sequential " +
				"statements (read enquiry, insert student, mark enquiry converted) with no " +
				"rollback if a later step fails.",
			Fields: fields(
				reqNum("id", "Enquiry id"),
				reqStr("admission_date", "Admission date for the new student (YYYY-MM-DD)"),
				num("class_id", "Class to admit the student into"),
				num("section_id", "Section within the class"),
			),
			Handler: convertEnquiry,
		},
	}
}

func convertEnquiry(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	res, err := exec.Execute(ctx, "SELECT * FROM enquiries WHERE id = ? LIMIT 1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, fmt.Errorf("enquiries record with id %d: %w", id, ops.ErrNotFound)
	}
	enquiry := res.Rows[0]

	cols := []string{"name", "mobile_no", "date"}
	params := []any{enquiry["name"], enquiry["mobile_no"], args.String("admission_date")}
	for _, c := range []string{"email", "branch_id"} {
		if v, ok := enquiry[c]; ok && v != nil {
			cols = append(cols, c)
			params = append(params, v)
		}
	}
	for _, c := range []string{"class_id", "section_id"} {
		if args.Has(c) {
			cols = append(cols, c)
			params = append(params, args[c])
		}
	}

	completed := []string{"enquiry lookup"}
	stmt := fmt.Sprintf("INSERT INTO students (%s) VALUES (%s)",
		joinColumns(cols), placeholderList(len(cols)))
	created, err := exec.Execute(ctx, stmt, params)
	if err != nil {
		return nil, &ops.PartialFailure{Completed: completed, Err: err}
	}
	completed = append(completed, "student insert")

	_, err = exec.Execute(ctx, "UPDATE enquiries SET status = 'converted' WHERE id = ?", []any{id})
	if err != nil {
		return nil, &ops.PartialFailure{Completed: completed, Err: err}
	}

	return fmt.Sprintf("Converted enquiry %d into student record %d.", id, created.LastInsertID), nil
}
