// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type (sqlite, postgres, memory)
	-key               Storage key for the response collection
	-env               Env file to load
	-admin-passphrase  Admin passphrase
	-token-salt        Admin token salt
	-token-ttl         Admin session lifetime
	-submit-delay      Simulated submit latency
	-wizard-ttl        Idle lifetime of an unfinished survey
	-log-dir           Directory for rotated log files
	-log-level         Log level
	-origins           Comma separated CORS origins

# Environment Variables

Flags fall back to environment variables, which may come from an env file
(.env by default):

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	STORAGE_KEY      → -key
	ADMIN_PASSPHRASE → -admin-passphrase
	ADMIN_TOKEN_SALT → -token-salt
	ADMIN_TOKEN_TTL  → -token-ttl
	SUBMIT_DELAY     → -submit-delay
	WIZARD_TTL       → -wizard-ttl
	LOG_DIR          → -log-dir
	LOG_LEVEL        → -log-level
	ALLOWED_ORIGINS  → -origins

ADMIN_PASSPHRASE_HASH has no flag. CLI flags take precedence over
environment variables.

# Validation

ParseFlags returns an error if:

  - neither ADMIN_PASSPHRASE nor ADMIN_PASSPHRASE_HASH is set
  - ADMIN_TOKEN_SALT is missing
  - a duration or the port cannot be parsed
*/
package cliparse
