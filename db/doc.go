// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and creates its schema.

	conn, err := db.Open(ctx, db.TypeSQLite, "file:civic_pulse.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

SQLite uses the pure Go modernc.org/sqlite driver; PostgreSQL uses lib/pq.
The schema is a single kv_store table, one row per storage key.
CreateSchema is safe to call multiple times.
*/
package db
