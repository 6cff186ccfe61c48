package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

var attendanceStatuses = []string{"present", "absent", "late", "half_day"}

func HR() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_department",
			Description: "Create a department",
			Fields:      fields(reqStr("name", "Department name")),
			Handler:     ops.Insert("departments", []string{"name"}),
		},
		{
			Name:        "list_departments",
			Description: "List departments",
			Fields:      paged(str("name", "Filter by partial name match")),
			Handler: ops.List("departments", []ops.Filter{
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "update_department",
			Description: "Rename a department",
			Fields: fields(
				reqNum("id", "Department id"),
				str("name", "Department name"),
			),
			Handler: ops.Update("departments", []string{"name"}),
		},
		{
			Name:        "delete_department",
			Description: "Delete one department by id",
			Fields:      fields(reqNum("id", "Department id")),
			Handler:     ops.Delete("departments"),
		},
		{
			Name:        "add_designation",
			Description: "Create a designation (job title)",
			Fields:      fields(reqStr("name", "Designation name")),
			Handler:     ops.Insert("designations", []string{"name"}),
		},
		{
			Name:        "list_designations",
			Description: "List designations",
			Fields:      paged(str("name", "Filter by partial name match")),
			Handler: ops.List("designations", []ops.Filter{
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "update_designation",
			Description: "Rename a designation",
			Fields: fields(
				reqNum("id", "Designation id"),
				str("name", "Designation name"),
			),
			Handler: ops.Update("designations", []string{"name"}),
		},
		{
			Name:        "delete_designation",
			Description: "Delete one designation by id",
			Fields:      fields(reqNum("id", "Designation id")),
			Handler:     ops.Delete("designations"),
		},
		{
			Name:        "apply_leave",
			Description: "File a leave request for a staff member; it starts in pending status",
			Fields: fields(
				reqNum("staff_id", "Staff member requesting leave"),
				reqStr("from_date", "First day of leave (YYYY-MM-DD)"),
				reqStr("to_date", "Last day of leave (YYYY-MM-DD)"),
				str("reason", "Reason for the leave"),
			),
			Handler: applyLeave,
		},
		{
			Name:        "list_leave_requests",
			Description: "List leave requests",
			Fields: paged(
				num("staff_id", "Filter by staff member"),
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: []string{"pending", "approved", "rejected"}},
				str("date_from", "Only requests starting on or after this date"),
			),
			Handler: ops.List("leave_requests", []ops.Filter{
				{Field: "staff_id"},
				{Field: "status"},
				{Field: "date_from", Column: "from_date", Op: ">="},
			}, "from_date DESC, id DESC"),
		},
		{
			Name:        "approve_leave",
			Description: "Approve a pending leave request",
			Fields: fields(
				reqNum("id", "Leave request id"),
				str("remarks", "Approver's remarks"),
			),
			Handler: resolveLeave("approved"),
		},
		{
			Name:        "reject_leave",
			Description: "Reject a pending leave request",
			Fields: fields(
				reqNum("id", "Leave request id"),
				str("remarks", "Approver's remarks"),
			),
			Handler: resolveLeave("rejected"),
		},
		{
			Name: "generate_payroll",
			Description: "Generate pending payroll rows for the given staff for one month, using " +
				"each staff member's stored salary. One insert per staff member, sequential, " +
				"with no rollback if a later insert fails.",
			Fields: fields(
				reqStr("month", "Payroll month (YYYY-MM)"),
				reqArr("staff_ids", "Ids of the staff to generate payroll for"),
			),
			Handler: generatePayroll,
		},
		{
			Name:        "list_payroll",
			Description: "List payroll rows",
			Fields: paged(
				str("month", "Filter by month (YYYY-MM)"),
				num("staff_id", "Filter by staff member"),
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: []string{"pending", "paid"}},
			),
			Handler: ops.List("payroll", []ops.Filter{
				{Field: "month"},
				{Field: "staff_id"},
				{Field: "status"},
			}, "month DESC, staff_id ASC"),
		},
		{
			Name:        "mark_payroll_paid",
			Description: "Mark a payroll row as paid",
			Fields: fields(
				reqNum("id", "Payroll row id"),
				reqStr("payment_date", "Date the salary was paid (YYYY-MM-DD)"),
			),
			Handler: markPayrollPaid,
		},
		{
			Name:        "mark_staff_attendance",
			Description: "Record one staff member's attendance for a day",
			Fields: fields(
				reqNum("staff_id", "Staff member"),
				reqStr("date", "Attendance date (YYYY-MM-DD)"),
				reqEnum("status", "Attendance status", attendanceStatuses...),
			),
			Handler: ops.Insert("staff_attendance", []string{"staff_id", "date", "status"}),
		},
		{
			Name: "mark_staff_attendance_bulk",
			Description: "Record attendance for several staff on one day. Each row is a separate " +
				"sequential insert with no rollback if a later one fails.",
			Fields: fields(
				reqStr("date", "Attendance date (YYYY-MM-DD)"),
				reqArr("items", "Rows to record, each {staff_id, status}"),
			),
			Handler: markStaffAttendanceBulk,
		},
		{
			Name:        "list_staff_attendance",
			Description: "List staff attendance rows",
			Fields: paged(
				num("staff_id", "Filter by staff member"),
				str("date_from", "Only rows on or after this date"),
				str("date_to", "Only rows on or before this date"),
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: attendanceStatuses},
			),
			Handler: ops.List("staff_attendance", []ops.Filter{
				{Field: "staff_id"},
				{Field: "date_from", Column: "date", Op: ">="},
				{Field: "date_to", Column: "date", Op: "<="},
				{Field: "status"},
			}, "date DESC, staff_id ASC"),
		},
	}
}

func applyLeave(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	cols := []string{"staff_id", "from_date", "to_date", "status"}
	params := []any{args.Int("staff_id"), args.String("from_date"), args.String("to_date"), "pending"}
	if args.Has("reason") {
		cols = append(cols, "reason")
		params = append(params, args.String("reason"))
	}

	stmt := fmt.Sprintf("INSERT INTO leave_requests (%s) VALUES (%s)",
		joinColumns(cols), placeholderList(len(cols)))
	res, err := exec.Execute(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Filed leave request %d for staff %d.", res.LastInsertID, args.Int("staff_id")), nil
}

func resolveLeave(status string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		id := args.Int("id")

		sets := "status = ?"
		params := []any{status}
		if args.Has("remarks") {
			sets += ", remarks = ?"
			params = append(params, args.String("remarks"))
		}
		params = append(params, id)

		stmt := fmt.Sprintf("UPDATE leave_requests SET %s WHERE id = ? AND status = 'pending'", sets)
		res, err := exec.Execute(ctx, stmt, params)
		if err != nil {
			return nil, err
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("leave_requests record with id %d (not found or not pending): %w",
				id, ops.ErrNotFound)
		}
		return fmt.Sprintf("Leave request %d is now %s.", id, status), nil
	}
}

func generatePayroll(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	raw := args.Slice("staff_ids")
	if len(raw) == 0 {
		return nil, &registry.ValidationError{Field: "staff_ids", Reason: "must contain at least one id"}
	}

	ids := make([]int, 0, len(raw))
	for i, v := range raw {
		id, ok := v.(float64)
		if !ok {
			return nil, &registry.ValidationError{
				Field: "staff_ids", Reason: fmt.Sprintf("item %d must be a number", i+1)}
		}
		ids = append(ids, int(id))
	}

	month := args.String("month")
	var completed []string
	for _, id := range ids {
		_, err := exec.Execute(ctx,
			"INSERT INTO payroll (staff_id, month, basic_salary, status) SELECT id, ?, salary, 'pending' FROM staff WHERE id = ?",
			[]any{month, id})
		if err != nil {
			return nil, failBulk(completed, err)
		}
		completed = append(completed, fmt.Sprintf("staff %d", id))
	}

	return fmt.Sprintf("Generated payroll for %d staff member(s) for %s.", len(raw), month), nil
}

func markPayrollPaid(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	res, err := exec.Execute(ctx,
		"UPDATE payroll SET status = 'paid', payment_date = ? WHERE id = ? AND status != 'paid'",
		[]any{args.String("payment_date"), id})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("payroll record with id %d (not found or already paid): %w",
			id, ops.ErrNotFound)
	}
	return fmt.Sprintf("Payroll row %d marked paid.", id), nil
}

func markStaffAttendanceBulk(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	items, err := itemMaps(args, "items")
	if err != nil {
		return nil, err
	}

	type row struct {
		staffID int
		status  string
	}
	rows := make([]row, 0, len(items))
	for i, item := range items {
		staffID, err := itemNum("items", i, item, "staff_id")
		if err != nil {
			return nil, err
		}
		status, err := itemStr("items", i, item, "status")
		if err != nil {
			return nil, err
		}
		rows = append(rows, row{staffID: int(staffID), status: status})
	}

	date := args.String("date")
	var completed []string
	for i, r := range rows {
		_, err := exec.Execute(ctx,
			"INSERT INTO staff_attendance (staff_id, date, status) VALUES (?, ?, ?)",
			[]any{r.staffID, date, r.status})
		if err != nil {
			return nil, failBulk(completed, err)
		}
		completed = append(completed, fmt.Sprintf("row %d", i+1))
	}

	return fmt.Sprintf("Recorded attendance for %d staff member(s) on %s.", len(items), date), nil
}
