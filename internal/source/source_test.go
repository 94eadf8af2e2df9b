// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLite creates a file backed SQLite database seeded with stmts.
func newSQLite(t *testing.T, stmts ...string) *Connector {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())

	c, err := NewConnector(WithDriver(DriverSQLite), WithDatabase(path))
	require.NoError(t, err)
	return c
}

func TestConn_ListTables(t *testing.T) {
	c := newSQLite(t,
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE "order items" (id INTEGER PRIMARY KEY)`,
		`CREATE VIEW v_users AS SELECT * FROM users`,
	)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	tables, err := conn.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order items", "users"}, tables)
}

func TestConn_FetchRows(t *testing.T) {
	c := newSQLite(t,
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name VARCHAR(20), score REAL, avatar BLOB)`,
		`INSERT INTO users VALUES (1, 'John', 1.5, x'0102')`,
		`INSERT INTO users VALUES (2, NULL, NULL, NULL)`,
	)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	rows, err := conn.FetchRows(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	require.Len(t, first, 4)
	assert.Equal(t, "id", first[0].Name)
	assert.Equal(t, "INTEGER", first[0].DeclaredType)
	assert.EqualValues(t, 1, first[0].Raw)
	assert.Equal(t, "name", first[1].Name)
	assert.Equal(t, "VARCHAR(20)", first[1].DeclaredType)
	assert.Equal(t, []byte{0x01, 0x02}, first[3].Raw)

	assert.Nil(t, rows[1][1].Raw)
}

func TestConn_FetchRows_MissingTable(t *testing.T) {
	c := newSQLite(t, `CREATE TABLE users (id INTEGER)`)

	conn, err := c.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.FetchRows(context.Background(), "nope")
	assert.ErrorContains(t, err, "failed to read table nope")
}
