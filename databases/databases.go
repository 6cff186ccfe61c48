// Package databases provides direct-database Executor backends for
// deployments that talk to mysql or postgres without the HTTP relay.
package databases

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/schooldesk/mcp-school/proxy"
)

// New returns a direct-database executor for the given backend type.
func New(backend, dsn string) (proxy.Executor, error) {
	switch backend {
	case "mysql":
		return NewMySQL(dsn)
	case "postgres":
		return NewPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database backend: %s", backend)
	}
}

// isRead reports whether the statement returns rows.
func isRead(statement string) bool {
	upper := strings.ToUpper(strings.TrimSpace(statement))
	for _, prefix := range []string{"SELECT", "SHOW", "WITH", "EXPLAIN", "DESCRIBE"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// readRows drains a result set into the uniform row shape, converting byte
// slices (mysql's default for text columns) into strings.
func readRows(rows *sqlx.Rows) ([]map[string]any, error) {
	out := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return out, nil
}
