// Package ops provides the generic statement-building operations the command
// catalog is made of: insert-with-fields, filtered list, get, partial update,
// and delete. Each builder takes table metadata and returns a handler, so the
// per-command differences live in data rather than code.
package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

const (
	// DefaultLimit is applied when a list call supplies no limit.
	DefaultLimit = 50
	// MaxLimit caps any supplied limit.
	MaxLimit = 200
)

// Filter describes one optional predicate a list operation accepts. Column
// defaults to Field when empty. Op may be ">=" or "<=" for range predicates;
// Like matches with a wrapped LIKE pattern instead.
type Filter struct {
	Field  string
	Column string
	Like   bool
	Op     string
}

func (f Filter) column() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Field
}

func (f Filter) op() string {
	if f.Op != "" {
		return f.Op
	}
	return "="
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Insert returns a handler that inserts the supplied fields, in declared
// column order, into table. Omitted optional columns are left to the
// database's defaults.
func Insert(table string, columns []string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		var cols []string
		var params []any
		for _, c := range columns {
			if !args.Has(c) {
				continue
			}
			cols = append(cols, c)
			params = append(params, args[c])
		}

		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(cols, ", "), placeholders(len(cols)))
		res, err := exec.Execute(ctx, stmt, params)
		if err != nil {
			return nil, err
		}
		if res.LastInsertID > 0 {
			return fmt.Sprintf("Created %s record with id %d.", table, res.LastInsertID), nil
		}
		return fmt.Sprintf("Created %s record.", table), nil
	}
}

// List returns a handler that selects from table, appending one predicate per
// supplied filter field, a deterministic ordering, and LIMIT/OFFSET with
// defaults limit=50 offset=0 (limit capped at 200).
func List(table string, filters []Filter, orderBy string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		var sb strings.Builder
		sb.WriteString("SELECT * FROM ")
		sb.WriteString(table)
		sb.WriteString(" WHERE 1=1")

		var params []any
		for _, f := range filters {
			if !args.Has(f.Field) {
				continue
			}
			if f.Like {
				sb.WriteString(" AND " + f.column() + " LIKE ?")
				params = append(params, "%"+args.String(f.Field)+"%")
				continue
			}
			sb.WriteString(" AND " + f.column() + " " + f.op() + " ?")
			params = append(params, args[f.Field])
		}

		sb.WriteString(" ORDER BY " + orderBy)

		limit := args.IntOr("limit", DefaultLimit)
		if limit < 1 {
			limit = DefaultLimit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		offset := args.IntOr("offset", 0)
		if offset < 0 {
			offset = 0
		}
		sb.WriteString(" LIMIT ? OFFSET ?")
		params = append(params, limit, offset)

		res, err := exec.Execute(ctx, sb.String(), params)
		if err != nil {
			return nil, err
		}
		return res.Rows, nil
	}
}

// Get returns a handler that fetches one record by the required id argument.
func Get(table string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		id := args.Int("id")
		stmt := fmt.Sprintf("SELECT * FROM %s WHERE id = ? LIMIT 1", table)
		res, err := exec.Execute(ctx, stmt, []any{id})
		if err != nil {
			return nil, err
		}
		if len(res.Rows) == 0 {
			return nil, notFound(table, id)
		}
		return res.Rows[0], nil
	}
}

// Update returns a handler with partial-update semantics: only supplied
// columns appear in the SET clause, omitted columns keep their stored values,
// and zero supplied columns is a no-op reported without touching the
// executor.
func Update(table string, columns []string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		id := args.Int("id")

		var sets []string
		var params []any
		for _, c := range columns {
			if !args.Has(c) {
				continue
			}
			sets = append(sets, c+" = ?")
			params = append(params, args[c])
		}
		if len(sets) == 0 {
			return "Nothing to update.", nil
		}
		params = append(params, id)

		stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
		res, err := exec.Execute(ctx, stmt, params)
		if err != nil {
			return nil, err
		}
		if res.RowsAffected == 0 {
			return nil, notFound(table, id)
		}
		return fmt.Sprintf("Updated %s record %d (%d field(s)).", table, id, len(sets)), nil
	}
}

// Delete returns a handler that deletes one record by the required id
// argument.
func Delete(table string) registry.HandlerFunc {
	return func(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
		id := args.Int("id")
		stmt := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
		res, err := exec.Execute(ctx, stmt, []any{id})
		if err != nil {
			return nil, err
		}
		if res.RowsAffected == 0 {
			return nil, notFound(table, id)
		}
		return fmt.Sprintf("Deleted %s record %d.", table, id), nil
	}
}
