// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage provides the key-value backends the response store
// persists to: Memory for tests and SQL for SQLite or PostgreSQL.
package storage
