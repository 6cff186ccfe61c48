package databases

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/schooldesk/mcp-school/proxy"
)

type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	config.PreferSimpleProtocol = true

	db := sqlx.NewDb(stdlib.OpenDB(*config), "pgx")

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Execute rebinds the catalog's ? placeholders to postgres $N style before
// running the statement.
func (c *Postgres) Execute(ctx context.Context, statement string, params []any) (*proxy.Result, error) {
	stmt := sqlx.Rebind(sqlx.DOLLAR, statement)

	if isRead(stmt) {
		rows, err := c.db.QueryxContext(ctx, stmt, params...)
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

	res, err := c.db.ExecContext(ctx, stmt, params...)
	if err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}

	affected, _ := res.RowsAffected()
	return &proxy.Result{RowsAffected: affected}, nil
}

func (c *Postgres) Close() error {
	return c.db.Close()
}
