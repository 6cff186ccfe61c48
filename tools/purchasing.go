package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

func Purchasing() []registry.Command {
	return []registry.Command{
		{
			Name: "create_purchase_order",
			Description: "Create a purchase order with line items. Inserts the header, then one " +
				"row per line item, then increments stock per item, strictly in that order. " +
				"There is no rollback if a later statement fails.",
			Fields: fields(
				reqNum("supplier_id", "Supplier the order is placed with"),
				reqStr("order_date", "Order date (YYYY-MM-DD)"),
				num("branch_id", "Branch placing the order"),
				str("remarks", "Free-form remarks"),
				reqArr("items", "Line items, each {product_id, quantity, unit_price}"),
			),
			Handler: createPurchaseOrder,
		},
		{
			Name:        "list_purchase_orders",
			Description: "List purchase orders",
			Fields: paged(
				num("supplier_id", "Filter by supplier"),
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: []string{"pending", "approved", "received", "cancelled"}},
				num("branch_id", "Filter by branch"),
				str("date_from", "Only orders on or after this date"),
				str("date_to", "Only orders on or before this date"),
			),
			Handler: ops.List("purchase_orders", []ops.Filter{
				{Field: "supplier_id"},
				{Field: "status"},
				{Field: "branch_id"},
				{Field: "date_from", Column: "order_date", Op: ">="},
				{Field: "date_to", Column: "order_date", Op: "<="},
			}, "order_date DESC, id DESC"),
		},
		{
			Name:        "get_purchase_order",
			Description: "Fetch one purchase order with its line items",
			Fields:      fields(reqNum("id", "Purchase order id")),
			Handler:     getPurchaseOrder,
		},
		{
			Name:        "update_purchase_order_status",
			Description: "Change a purchase order's status",
			Fields: fields(
				reqNum("id", "Purchase order id"),
				reqEnum("status", "New status", "pending", "approved", "received", "cancelled"),
			),
			Handler: updatePurchaseOrderStatus,
		},
		{
			Name: "delete_purchase_order",
			Description: "Delete a purchase order and its line items. The items are deleted " +
				"before the header, with no rollback if the header delete fails.",
			Fields:  fields(reqNum("id", "Purchase order id")),
			Handler: deletePurchaseOrder,
		},
		{
			Name: "issue_products",
			Description: "Issue products from inventory to a recipient. Inserts the issue header, " +
				"then one row per item, then decrements stock per item, strictly in that order. " +
				"There is no rollback if a later statement fails.",
			Fields: fields(
				reqStr("issued_to", "Name of the person or unit receiving the products"),
				reqStr("issue_date", "Issue date (YYYY-MM-DD)"),
				num("branch_id", "Branch issuing the products"),
				str("remarks", "Free-form remarks"),
				reqArr("items", "Items to issue, each {product_id, quantity}"),
			),
			Handler: issueProducts,
		},
		{
			Name:        "list_product_issues",
			Description: "List product issues",
			Fields: paged(
				registry.Field{Name: "status", Description: "Filter by status", Type: registry.String,
					Enum: []string{"issued", "returned"}},
				num("branch_id", "Filter by branch"),
				str("date_from", "Only issues on or after this date"),
				str("date_to", "Only issues on or before this date"),
			),
			Handler: ops.List("product_issues", []ops.Filter{
				{Field: "status"},
				{Field: "branch_id"},
				{Field: "date_from", Column: "issue_date", Op: ">="},
				{Field: "date_to", Column: "issue_date", Op: "<="},
			}, "issue_date DESC, id DESC"),
		},
		{
			Name:        "get_product_issue",
			Description: "Fetch one product issue with its items",
			Fields:      fields(reqNum("id", "Product issue id")),
			Handler:     getProductIssue,
		},
		{
			Name: "return_product_issue",
			Description: "Mark an issue as returned and restore the issued quantities to stock. " +
				"The status update, the item read, and the stock restores run sequentially with " +
				"no rollback if a later statement fails.",
			Fields:  fields(reqNum("id", "Product issue id")),
			Handler: returnProductIssue,
		},
	}
}

type orderItem struct {
	productID int
	quantity  float64
	unitPrice float64
}

// parseOrderItems validates every line item before any statement runs, so a
// malformed item cannot leave a half-written order behind.
func parseOrderItems(args registry.Args, withPrice bool) ([]orderItem, error) {
	maps, err := itemMaps(args, "items")
	if err != nil {
		return nil, err
	}

	items := make([]orderItem, 0, len(maps))
	for i, m := range maps {
		productID, err := itemNum("items", i, m, "product_id")
		if err != nil {
			return nil, err
		}
		quantity, err := itemNum("items", i, m, "quantity")
		if err != nil {
			return nil, err
		}
		item := orderItem{productID: int(productID), quantity: quantity}
		if withPrice {
			unitPrice, err := itemNum("items", i, m, "unit_price")
			if err != nil {
				return nil, err
			}
			item.unitPrice = unitPrice
		}
		items = append(items, item)
	}
	return items, nil
}

func createPurchaseOrder(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	items, err := parseOrderItems(args, true)
	if err != nil {
		return nil, err
	}

	orderNo := newRef("PO")
	cols := []string{"order_no", "supplier_id", "order_date", "status"}
	params := []any{orderNo, args.Int("supplier_id"), args.String("order_date"), "pending"}
	for _, c := range []string{"branch_id", "remarks"} {
		if args.Has(c) {
			cols = append(cols, c)
			params = append(params, args[c])
		}
	}

	stmt := fmt.Sprintf("INSERT INTO purchase_orders (%s) VALUES (%s)",
		joinColumns(cols), placeholderList(len(cols)))
	header, err := exec.Execute(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	orderID := header.LastInsertID
	completed := []string{"order header"}

	for i, item := range items {
		_, err = exec.Execute(ctx,
			"INSERT INTO purchase_order_items (purchase_order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)",
			[]any{orderID, item.productID, item.quantity, item.unitPrice})
		if err != nil {
			return nil, &ops.PartialFailure{Completed: completed, Err: err}
		}
		completed = append(completed, fmt.Sprintf("line item %d", i+1))
	}

	for i, item := range items {
		_, err = exec.Execute(ctx,
			"UPDATE products SET stock = stock + ? WHERE id = ?",
			[]any{item.quantity, item.productID})
		if err != nil {
			return nil, &ops.PartialFailure{Completed: completed, Err: err}
		}
		completed = append(completed, fmt.Sprintf("stock update %d", i+1))
	}

	return fmt.Sprintf("Created purchase order %s (id %d) with %d line item(s).",
		orderNo, orderID, len(items)), nil
}

func getPurchaseOrder(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	header, err := exec.Execute(ctx, "SELECT * FROM purchase_orders WHERE id = ? LIMIT 1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(header.Rows) == 0 {
		return nil, fmt.Errorf("purchase_orders record with id %d: %w", id, ops.ErrNotFound)
	}

	items, err := exec.Execute(ctx,
		"SELECT * FROM purchase_order_items WHERE purchase_order_id = ? ORDER BY id ASC", []any{id})
	if err != nil {
		return nil, err
	}

	return map[string]any{"order": header.Rows[0], "items": items.Rows}, nil
}

func updatePurchaseOrderStatus(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")
	status := args.String("status")

	res, err := exec.Execute(ctx,
		"UPDATE purchase_orders SET status = ? WHERE id = ?", []any{status, id})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("purchase_orders record with id %d: %w", id, ops.ErrNotFound)
	}
	return fmt.Sprintf("Purchase order %d is now %s.", id, status), nil
}

func deletePurchaseOrder(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	_, err := exec.Execute(ctx,
		"DELETE FROM purchase_order_items WHERE purchase_order_id = ?", []any{id})
	if err != nil {
		return nil, err
	}

	res, err := exec.Execute(ctx, "DELETE FROM purchase_orders WHERE id = ?", []any{id})
	if err != nil {
		return nil, &ops.PartialFailure{Completed: []string{"line item delete"}, Err: err}
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("purchase_orders record with id %d: %w", id, ops.ErrNotFound)
	}
	return fmt.Sprintf("Deleted purchase order %d and its line items.", id), nil
}

func issueProducts(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	items, err := parseOrderItems(args, false)
	if err != nil {
		return nil, err
	}

	cols := []string{"issued_to", "issue_date", "status"}
	params := []any{args.String("issued_to"), args.String("issue_date"), "issued"}
	for _, c := range []string{"branch_id", "remarks"} {
		if args.Has(c) {
			cols = append(cols, c)
			params = append(params, args[c])
		}
	}

	stmt := fmt.Sprintf("INSERT INTO product_issues (%s) VALUES (%s)",
		joinColumns(cols), placeholderList(len(cols)))
	header, err := exec.Execute(ctx, stmt, params)
	if err != nil {
		return nil, err
	}
	issueID := header.LastInsertID
	completed := []string{"issue header"}

	for i, item := range items {
		_, err = exec.Execute(ctx,
			"INSERT INTO product_issue_items (product_issue_id, product_id, quantity) VALUES (?, ?, ?)",
			[]any{issueID, item.productID, item.quantity})
		if err != nil {
			return nil, &ops.PartialFailure{Completed: completed, Err: err}
		}
		completed = append(completed, fmt.Sprintf("item %d", i+1))

		_, err = exec.Execute(ctx,
			"UPDATE products SET stock = stock - ? WHERE id = ?",
			[]any{item.quantity, item.productID})
		if err != nil {
			return nil, &ops.PartialFailure{Completed: completed, Err: err}
		}
		completed = append(completed, fmt.Sprintf("stock update %d", i+1))
	}

	return fmt.Sprintf("Issued %d item(s) to %s (issue id %d).",
		len(items), args.String("issued_to"), issueID), nil
}

func getProductIssue(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	header, err := exec.Execute(ctx, "SELECT * FROM product_issues WHERE id = ? LIMIT 1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(header.Rows) == 0 {
		return nil, fmt.Errorf("product_issues record with id %d: %w", id, ops.ErrNotFound)
	}

	items, err := exec.Execute(ctx,
		"SELECT * FROM product_issue_items WHERE product_issue_id = ? ORDER BY id ASC", []any{id})
	if err != nil {
		return nil, err
	}

	return map[string]any{"issue": header.Rows[0], "items": items.Rows}, nil
}

func returnProductIssue(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	id := args.Int("id")

	res, err := exec.Execute(ctx,
		"UPDATE product_issues SET status = 'returned' WHERE id = ? AND status = 'issued'", []any{id})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product_issues record with id %d (not found or already returned): %w",
			id, ops.ErrNotFound)
	}
	completed := []string{"status update"}

	items, err := exec.Execute(ctx,
		"SELECT product_id, quantity FROM product_issue_items WHERE product_issue_id = ?", []any{id})
	if err != nil {
		return nil, &ops.PartialFailure{Completed: completed, Err: err}
	}
	completed = append(completed, "item lookup")

	for i, item := range items.Rows {
		_, err = exec.Execute(ctx,
			"UPDATE products SET stock = stock + ? WHERE id = ?",
			[]any{item["quantity"], item["product_id"]})
		if err != nil {
			return nil, &ops.PartialFailure{Completed: completed, Err: err}
		}
		completed = append(completed, fmt.Sprintf("stock restore %d", i+1))
	}

	return fmt.Sprintf("Marked issue %d returned and restored %d item(s) to stock.",
		id, len(items.Rows)), nil
}
