// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL databases and creates the schema.

# Opening a Database

Open selects the driver, pings, and creates the schema in one step:

	conn, err := db.Open(db.TypeSQLite, "file:data/quickpoll.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite (pure Go, no cgo); PostgreSQL uses lib/pq.
SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

# Tables

	document(name TEXT PRIMARY KEY, payload TEXT, updated_at TIMESTAMP)

The store keeps two rows, "polls" and "votes", each holding one JSON
document. Both rows are rewritten together in a single transaction.
*/
package db
