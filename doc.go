// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the civic-pulse API server.

civic-pulse collects a four-step civic behavior questionnaire (demographics,
behavior, economic impact, awareness), keeps at most one response per email
address, and serves aggregate statistics to visitors and an admin dashboard.

# Starting the Server

With no configuration beyond the admin secrets the server stores responses
in a local SQLite file:

	ADMIN_PASSPHRASE=... ADMIN_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 8085 -t postgres -d "postgres://..."

Settings are also read from a .env file in the working directory.

# Configuration

Required settings:

  - ADMIN_PASSPHRASE or ADMIN_PASSPHRASE_HASH: admin login secret
  - ADMIN_TOKEN_SALT: secret for admin session tokens

Optional settings:

  - PORT (-p): Server port (default: 8085)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): connection string
  - LOG_DIR, LOG_LEVEL: rotated JSON log file and level

# Architecture

  - store: the persisted response collection and change notifications
  - survey: the questionnaire state machine
  - aggregate: statistics over the stored responses
  - handlers, router, middleware: the HTTP surface
  - export, charts: CSV/XLSX downloads and the HTML dashboard
  - storage, db: key-value backends over memory, SQLite or PostgreSQL
  - auth, cliparse, logging, catalog, models: supporting packages

See package documentation for each component.
*/
package main
