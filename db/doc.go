// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation for the SQL
vote backends.

# Connecting

Open supports SQLite (modernc.org/sqlite, pure Go) and PostgreSQL (lib/pq):

	conn, err := db.Open(db.TypeSQLite, "file:votes.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - vote: one row per vote (vote_key, collection, product_id, voted_at)

Rows are only ever inserted. The key is the store-generated, time-ordered
UUIDv7, so ORDER BY vote_key is creation order.

# Placeholders

Queries are written with ? and passed through Rebind, which rewrites them
to $1, $2, ... for PostgreSQL:

	conn.Exec(db.Rebind(dbType, "INSERT INTO vote (vote_key) VALUES (?)"), key)
*/
package db
