// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Drivers lists the supported driver names.
var Drivers = []string{DriverMySQL, DriverPostgres, DriverSQLite}

type dialect struct {
	name        string
	sqlDriver   string
	defaultPort int
	singleConn  bool
	dsn         func(options) string
	listTables  func(database string) (string, []any)
	quote       func(ident string) string
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverMySQL, "mariadb":
		return dialect{
			name:        DriverMySQL,
			sqlDriver:   "mysql",
			defaultPort: 3306,
			dsn:         mysqlDSN,
			listTables: func(database string) (string, []any) {
				return "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES " +
					"WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME", []any{database}
			},
			quote: quoteWith('`'),
		}, nil
	case DriverPostgres, "postgresql", "pgx":
		return dialect{
			name:        DriverPostgres,
			sqlDriver:   "pgx",
			defaultPort: 5432,
			dsn:         postgresDSN,
			listTables: func(string) (string, []any) {
				return "SELECT table_name FROM information_schema.tables " +
					"WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name", nil
			},
			quote: quoteWith('"'),
		}, nil
	case DriverSQLite, "sqlite3":
		return dialect{
			name:       DriverSQLite,
			sqlDriver:  "sqlite",
			singleConn: true,
			dsn:        func(o options) string { return o.database },
			listTables: func(string) (string, []any) {
				return "SELECT name FROM sqlite_master " +
					"WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name", nil
			},
			quote: quoteWith('"'),
		}, nil
	}
	return dialect{}, fmt.Errorf("unsupported driver %q (want one of %s)", driver, strings.Join(Drivers, ", "))
}

// CheckDriver reports whether driver names a supported driver or alias.
func CheckDriver(driver string) error {
	_, err := dialectFor(driver)
	return err
}

// quoteWith returns an identifier quoter that doubles embedded quote chars.
func quoteWith(q byte) func(string) string {
	s := string(q)
	return func(ident string) string {
		return s + strings.ReplaceAll(ident, s, s+s) + s
	}
}

func mysqlDSN(o options) string {
	cfg := mysql.NewConfig()
	cfg.User = o.username
	cfg.Passwd = o.password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.host, strconv.Itoa(o.port))
	cfg.DBName = o.database
	if o.encoding != "" {
		cfg.Params = map[string]string{"charset": o.encoding}
	}
	return cfg.FormatDSN()
}

func postgresDSN(o options) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(o.host, strconv.Itoa(o.port)),
		Path:   "/" + o.database,
	}
	if o.username != "" {
		if o.password != "" {
			u.User = url.UserPassword(o.username, o.password)
		} else {
			u.User = url.User(o.username)
		}
	}
	if o.encoding != "" {
		q := url.Values{}
		q.Set("client_encoding", o.encoding)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
