package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

var paymentMethods = []string{"cash", "card", "bank_transfer", "online"}

func Fees() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_fee_group",
			Description: "Create a fee group (a named set of charges)",
			Fields: fields(
				reqStr("name", "Fee group name, e.g. Term 1 Tuition"),
				str("description", "What the group covers"),
				num("branch_id", "Branch the group applies to"),
			),
			Handler: ops.Insert("fee_groups", []string{"name", "description", "branch_id"}),
		},
		{
			Name:        "list_fee_groups",
			Description: "List fee groups",
			Fields: paged(
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("fee_groups", []ops.Filter{
				{Field: "branch_id"},
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "get_fee_group",
			Description: "Fetch one fee group by id",
			Fields:      fields(reqNum("id", "Fee group id")),
			Handler:     ops.Get("fee_groups"),
		},
		{
			Name:        "update_fee_group",
			Description: "Update a fee group; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Fee group id"),
				str("name", "Fee group name"),
				str("description", "What the group covers"),
				num("branch_id", "Branch the group applies to"),
			),
			Handler: ops.Update("fee_groups", []string{"name", "description", "branch_id"}),
		},
		{
			Name:        "delete_fee_group",
			Description: "Delete one fee group by id",
			Fields:      fields(reqNum("id", "Fee group id")),
			Handler:     ops.Delete("fee_groups"),
		},
		{
			Name:        "allocate_fee_group",
			Description: "Allocate a fee group to a student",
			Fields: fields(
				reqNum("student_id", "Student receiving the allocation"),
				reqNum("fee_group_id", "Fee group being allocated"),
				reqNum("amount", "Total amount due under this allocation"),
				num("branch_id", "Branch the allocation belongs to"),
			),
			Handler: ops.Insert("fee_allocations", []string{"student_id", "fee_group_id", "amount", "branch_id"}),
		},
		{
			Name:        "list_fee_allocations",
			Description: "List fee allocations",
			Fields: paged(
				num("student_id", "Filter by student"),
				num("fee_group_id", "Filter by fee group"),
				num("branch_id", "Filter by branch"),
			),
			Handler: ops.List("fee_allocations", []ops.Filter{
				{Field: "student_id"},
				{Field: "fee_group_id"},
				{Field: "branch_id"},
			}, "id DESC"),
		},
		{
			Name:        "remove_fee_allocation",
			Description: "Remove one fee allocation by id",
			Fields:      fields(reqNum("id", "Allocation id")),
			Handler:     ops.Delete("fee_allocations"),
		},
		{
			Name:        "collect_fee_payment",
			Description: "Record a single fee payment against an allocation",
			Fields: fields(
				reqNum("allocation_id", "Allocation the payment applies to"),
				reqNum("amount", "Amount paid"),
				reqStr("payment_date", "Payment date (YYYY-MM-DD)"),
				enumDef("method", "Payment method", "cash", paymentMethods...),
				str("remarks", "Free-form remarks"),
			),
			Handler: collectFeePayment,
		},
		{
			Name: "collect_bulk_fees",
			Description: "Record payments against several allocations under one shared receipt. " +
				"Each payment is a separate sequential insert with no rollback if a later one fails.",
			Fields: fields(
				reqArr("items", "Payments to record, each {allocation_id, amount}"),
				reqStr("payment_date", "Payment date (YYYY-MM-DD)"),
				enumDef("method", "Payment method", "cash", paymentMethods...),
			),
			Handler: collectBulkFees,
		},
		{
			Name:        "list_fee_payments",
			Description: "List fee payments",
			Fields: paged(
				num("allocation_id", "Filter by allocation"),
				str("receipt_no", "Filter by receipt number"),
				str("date_from", "Only payments on or after this date"),
				str("date_to", "Only payments on or before this date"),
			),
			Handler: ops.List("fee_payments", []ops.Filter{
				{Field: "allocation_id"},
				{Field: "receipt_no"},
				{Field: "date_from", Column: "payment_date", Op: ">="},
				{Field: "date_to", Column: "payment_date", Op: "<="},
			}, "payment_date DESC, id DESC"),
		},
		{
			Name:        "delete_fee_payment",
			Description: "Delete one fee payment by id",
			Fields:      fields(reqNum("id", "Payment id")),
			Handler:     ops.Delete("fee_payments"),
		},
	}
}

func collectFeePayment(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	receipt := newRef("RCPT")

	cols := []string{"allocation_id", "amount", "payment_date", "method", "receipt_no"}
	params := []any{
		args.Int("allocation_id"), args.Float("amount"),
		args.String("payment_date"), args.String("method"), receipt,
	}
	if args.Has("remarks") {
		cols = append(cols, "remarks")
		params = append(params, args.String("remarks"))
	}

	stmt := fmt.Sprintf("INSERT INTO fee_payments (%s) VALUES (%s)",
		joinColumns(cols), placeholderList(len(cols)))
	res, err := exec.Execute(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Recorded payment of %.2f with receipt %s (id %d).",
		args.Float("amount"), receipt, res.LastInsertID), nil
}

func collectBulkFees(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	items, err := itemMaps(args, "items")
	if err != nil {
		return nil, err
	}

	type payment struct {
		allocationID int
		amount       float64
	}
	payments := make([]payment, 0, len(items))
	for i, item := range items {
		allocationID, err := itemNum("items", i, item, "allocation_id")
		if err != nil {
			return nil, err
		}
		amount, err := itemNum("items", i, item, "amount")
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment{allocationID: int(allocationID), amount: amount})
	}

	receipt := newRef("RCPT")
	date := args.String("payment_date")
	method := args.String("method")

	var completed []string
	var total float64
	for i, p := range payments {
		_, err = exec.Execute(ctx,
			"INSERT INTO fee_payments (allocation_id, amount, payment_date, method, receipt_no) VALUES (?, ?, ?, ?, ?)",
			[]any{p.allocationID, p.amount, date, method, receipt})
		if err != nil {
			return nil, failBulk(completed, err)
		}
		completed = append(completed, fmt.Sprintf("payment %d", i+1))
		total += p.amount
	}

	return fmt.Sprintf("Collected %d payment(s) totaling %.2f under receipt %s.",
		len(items), total, receipt), nil
}

// failBulk wraps an error from a multi-insert sequence, keeping the plain
// error when nothing was committed yet.
func failBulk(completed []string, err error) error {
	if len(completed) == 0 {
		return err
	}
	return &ops.PartialFailure{Completed: completed, Err: err}
}
