package dbv2

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/anvesh9652/csvbench/internal/frame"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Supported database/sql driver names.
const (
	PgxDriver = "pgx"
	PqDriver  = "postgres"
)

type DB struct {
	dbConn *sqlx.DB
}

func NewPostgresDB(ctx context.Context, driver, url string) (*DB, error) {
	if driver != PgxDriver && driver != PqDriver {
		return nil, errors.Errorf("unsupported driver %q, use %s or %s", driver, PgxDriver, PqDriver)
	}
	dbConn, err := sqlx.ConnectContext(ctx, driver, url) // this also does the ping
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create db connection")
	}
	return &DB{dbConn: dbConn}, nil
}

// BuildURL builds a postgres connection url. A non empty port replaces the port in host.
func BuildURL(user, pass, host, port, database string) string {
	if port != "" {
		h, _, err := net.SplitHostPort(host)
		if err != nil {
			h = host
		}
		host = net.JoinHostPort(h, port)
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     host,
		Path:     "/" + database,
		RawQuery: "sslmode=disable",
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else if user != "" {
		u.User = url.User(user)
	}
	return u.String()
}

// ReadFrame runs query and loads every returned row into a Frame.
func (d *DB) ReadFrame(ctx context.Context, query string, opts ...frame.Option) (*frame.Frame, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}
	rows, err := d.dbConn.QueryxContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query execution error")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "error getting columns")
	}

	var records [][]any
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "error scanning row")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating rows")
	}
	return frame.FromRows(columns, records, opts...)
}

func (d *DB) Close() error {
	return d.dbConn.Close()
}

func (d *DB) String() string {
	return fmt.Sprintf("driver=%s", d.dbConn.DriverName())
}
