// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source reads table rows from a relational database. A Connector
// describes where the database lives; Connect turns it into a Conn, the only
// type that can list tables and fetch rows. MySQL, PostgreSQL (pgx) and SQLite
// are supported through database/sql drivers.
package source
