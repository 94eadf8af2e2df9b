// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/iwazzer/dbba/internal/log"
)

// Cell is one column of one fetched row.
type Cell struct {
	Name         string
	DeclaredType string
	Raw          any
}

// Row is a fetched row in the column order the database returned.
type Row []Cell

// Source is what a snapshot is built from.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	FetchRows(ctx context.Context, table string) ([]Row, error)
}

// options holds the connection settings gathered from flags and config.
type options struct {
	driver   string
	host     string
	port     int
	username string
	password string
	database string
	encoding string
	dsn      string
}

// Option customizes a Connector.
type Option func(*options)

// WithDriver selects mysql, postgres or sqlite. Defaults to mysql.
func WithDriver(driver string) Option {
	return func(o *options) { o.driver = driver }
}

// WithHost sets the server host. Defaults to 127.0.0.1.
func WithHost(host string) Option {
	return func(o *options) { o.host = host }
}

// WithPort sets the server port. Defaults to the driver's well known port.
func WithPort(port int) Option {
	return func(o *options) { o.port = port }
}

// WithCredentials sets the user name and password.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithDatabase sets the database (schema) to read. For sqlite it is the file
// path.
func WithDatabase(database string) Option {
	return func(o *options) { o.database = database }
}

// WithEncoding sets the client character set. Defaults to utf8.
func WithEncoding(encoding string) Option {
	return func(o *options) { o.encoding = encoding }
}

// WithDSN bypasses DSN construction and hands dsn to the driver verbatim.
func WithDSN(dsn string) Option {
	return func(o *options) { o.dsn = dsn }
}

// Connector is a database that has not been connected to yet.
type Connector struct {
	opts    options
	dialect dialect
}

// NewConnector validates the options and returns a Connector.
func NewConnector(opts ...Option) (*Connector, error) {
	o := options{
		driver:   DriverMySQL,
		host:     "127.0.0.1",
		encoding: "utf8",
	}
	for _, opt := range opts {
		opt(&o)
	}

	d, err := dialectFor(o.driver)
	if err != nil {
		return nil, err
	}
	if o.port == 0 {
		o.port = d.defaultPort
	}
	if o.dsn == "" && o.database == "" {
		return nil, fmt.Errorf("no database given for driver %s", o.driver)
	}
	log.Debugf("connector: driver=%s host=%s port=%d database=%s", o.driver, o.host, o.port, o.database)

	return &Connector{opts: o, dialect: d}, nil
}

// Driver returns the normalized driver name.
func (c *Connector) Driver() string {
	return c.dialect.name
}

// Database returns the configured database name.
func (c *Connector) Database() string {
	return c.opts.database
}

// DSN returns the data source name handed to database/sql.
func (c *Connector) DSN() string {
	if c.opts.dsn != "" {
		return c.opts.dsn
	}
	return c.dialect.dsn(c.opts)
}

// Connect opens and pings the database.
func (c *Connector) Connect(ctx context.Context) (*Conn, error) {
	db, err := sql.Open(c.dialect.sqlDriver, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", c.dialect.name, err)
	}
	if c.dialect.singleConn {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", c.describe(), err)
	}
	log.Debugf("connected to %s", c.describe())

	return &Conn{db: db, dialect: c.dialect, database: c.opts.database}, nil
}

func (c *Connector) describe() string {
	if c.dialect.name == DriverSQLite || c.opts.dsn != "" {
		return c.dialect.name + " database"
	}
	return c.dialect.name + "://" + c.opts.host + ":" + strconv.Itoa(c.opts.port) + "/" + c.opts.database
}

// Conn is a connected database.
type Conn struct {
	db       *sql.DB
	dialect  dialect
	database string
}

var _ Source = (*Conn)(nil)

// Close releases the connection pool.
func (c *Conn) Close() error {
	return c.db.Close()
}

// ListTables returns the base tables of the connected database sorted by name.
func (c *Conn) ListTables(ctx context.Context) ([]string, error) {
	query, args := c.dialect.listTables(c.database)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	log.Debugf("tables: %d", len(tables))

	return tables, nil
}

// FetchRows reads every row of table along with each column's declared type.
func (c *Conn) FetchRows(ctx context.Context, table string) ([]Row, error) {
	query := "SELECT * FROM " + c.dialect.quote(table)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var result []Row
	for rows.Next() {
		raw := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}

		row := make(Row, len(types))
		for i, ct := range types {
			row[i] = Cell{Name: ct.Name(), DeclaredType: ct.DatabaseTypeName(), Raw: raw[i]}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	log.Debugf("table %s: %d rows", table, len(result))

	return result, nil
}
