package databases

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/schooldesk/mcp-school/proxy"
)

type MySQL struct {
	db *sqlx.DB
}

func NewMySQL(dsn string) (*MySQL, error) {
	_, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQL{db: db}, nil
}

func (c *MySQL) Execute(ctx context.Context, statement string, params []any) (*proxy.Result, error) {
	if isRead(statement) {
		rows, err := c.db.QueryxContext(ctx, statement, params...)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		defer rows.Close()

		out, err := readRows(rows)
		if err != nil {
			return nil, err
		}
		return &proxy.Result{Rows: out}, nil
	}

	res, err := c.db.ExecContext(ctx, statement, params...)
	if err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}

	affected, _ := res.RowsAffected()
	insertID, _ := res.LastInsertId()
	return &proxy.Result{RowsAffected: affected, LastInsertID: insertID}, nil
}

func (c *MySQL) Close() error {
	return c.db.Close()
}
