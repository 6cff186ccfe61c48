package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

var productColumns = []string{
	"name", "category_id", "unit_id", "supplier_id", "purchase_price",
	"sale_price", "stock", "reorder_level", "branch_id",
}

func Inventory() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_product_category",
			Description: "Create a product category",
			Fields: fields(
				reqStr("name", "Category name"),
				str("description", "What belongs in the category"),
			),
			Handler: ops.Insert("product_categories", []string{"name", "description"}),
		},
		{
			Name:        "list_product_categories",
			Description: "List product categories",
			Fields: paged(
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("product_categories", []ops.Filter{
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "update_product_category",
			Description: "Update a product category; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Category id"),
				str("name", "Category name"),
				str("description", "What belongs in the category"),
			),
			Handler: ops.Update("product_categories", []string{"name", "description"}),
		},
		{
			Name:        "delete_product_category",
			Description: "Delete one product category by id",
			Fields:      fields(reqNum("id", "Category id")),
			Handler:     ops.Delete("product_categories"),
		},
		{
			Name:        "add_supplier",
			Description: "Register a supplier",
			Fields: fields(
				reqStr("name", "Supplier name"),
				str("mobile_no", "Contact mobile number"),
				str("email", "Email address"),
				str("address", "Supplier address"),
			),
			Handler: ops.Insert("suppliers", []string{"name", "mobile_no", "email", "address"}),
		},
		{
			Name:        "list_suppliers",
			Description: "List suppliers",
			Fields: paged(
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("suppliers", []ops.Filter{
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "update_supplier",
			Description: "Update a supplier; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Supplier id"),
				str("name", "Supplier name"),
				str("mobile_no", "Contact mobile number"),
				str("email", "Email address"),
				str("address", "Supplier address"),
			),
			Handler: ops.Update("suppliers", []string{"name", "mobile_no", "email", "address"}),
		},
		{
			Name:        "delete_supplier",
			Description: "Delete one supplier by id",
			Fields:      fields(reqNum("id", "Supplier id")),
			Handler:     ops.Delete("suppliers"),
		},
		{
			Name:        "add_product_unit",
			Description: "Create a product unit of measure",
			Fields:      fields(reqStr("name", "Unit name, e.g. box, litre")),
			Handler:     ops.Insert("product_units", []string{"name"}),
		},
		{
			Name:        "list_product_units",
			Description: "List product units",
			Fields:      paged(),
			Handler:     ops.List("product_units", nil, "name ASC, id ASC"),
		},
		{
			Name:        "update_product_unit",
			Description: "Rename a product unit",
			Fields: fields(
				reqNum("id", "Unit id"),
				str("name", "Unit name"),
			),
			Handler: ops.Update("product_units", []string{"name"}),
		},
		{
			Name:        "delete_product_unit",
			Description: "Delete one product unit by id",
			Fields:      fields(reqNum("id", "Unit id")),
			Handler:     ops.Delete("product_units"),
		},
		{
			Name:        "add_product",
			Description: "Create a product",
			Fields: fields(
				reqStr("name", "Product name"),
				reqNum("category_id", "Category the product belongs to"),
				num("unit_id", "Unit of measure"),
				num("supplier_id", "Default supplier"),
				num("purchase_price", "Purchase price per unit"),
				num("sale_price", "Sale price per unit"),
				num("stock", "Opening stock quantity"),
				num("reorder_level", "Stock level that triggers reordering"),
				num("branch_id", "Branch holding the stock"),
			),
			Handler: ops.Insert("products", productColumns),
		},
		{
			Name:        "list_products",
			Description: "List products",
			Fields: paged(
				num("category_id", "Filter by category"),
				num("supplier_id", "Filter by supplier"),
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("products", []ops.Filter{
				{Field: "category_id"},
				{Field: "supplier_id"},
				{Field: "branch_id"},
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "get_product",
			Description: "Fetch one product by id",
			Fields:      fields(reqNum("id", "Product id")),
			Handler:     ops.Get("products"),
		},
		{
			Name:        "update_product",
			Description: "Update a product; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Product id"),
				str("name", "Product name"),
				num("category_id", "Category the product belongs to"),
				num("unit_id", "Unit of measure"),
				num("supplier_id", "Default supplier"),
				num("purchase_price", "Purchase price per unit"),
				num("sale_price", "Sale price per unit"),
				num("stock", "Stock quantity"),
				num("reorder_level", "Stock level that triggers reordering"),
				num("branch_id", "Branch holding the stock"),
			),
			Handler: ops.Update("products", productColumns),
		},
		{
			Name:        "delete_product",
			Description: "Delete one product by id",
			Fields:      fields(reqNum("id", "Product id")),
			Handler:     ops.Delete("products"),
		},
		{
			Name: "adjust_stock",
			Description: "Adjust a product's stock by a positive or negative quantity and log the " +
				"adjustment. The stock update and the log insert are two sequential statements " +
				"with no rollback if the second fails.",
			Fields: fields(
				reqNum("product_id", "Product to adjust"),
				reqNum("quantity", "Signed quantity delta, e.g. -3 or 10"),
				reqStr("reason", "Why the stock changed"),
			),
			Handler: adjustStock,
		},
	}
}

func adjustStock(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	productID := args.Int("product_id")
	quantity := args.Float("quantity")

	res, err := exec.Execute(ctx,
		"UPDATE products SET stock = stock + ? WHERE id = ?",
		[]any{quantity, productID})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("products record with id %d: %w", productID, ops.ErrNotFound)
	}

	_, err = exec.Execute(ctx,
		"INSERT INTO stock_adjustments (product_id, quantity, reason) VALUES (?, ?, ?)",
		[]any{productID, quantity, args.String("reason")})
	if err != nil {
		return nil, &ops.PartialFailure{Completed: []string{"stock update"}, Err: err}
	}

	return fmt.Sprintf("Adjusted stock of product %d by %+.0f.", productID, quantity), nil
}
