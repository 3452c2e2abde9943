// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = 8085
	DefaultDBType      = "sqlite"
	DefaultSQLiteURL   = "file:civic_pulse.db"
	DefaultStorageKey  = "civic_research_responses"
	DefaultTokenTTL    = 12 * time.Hour
	DefaultSubmitDelay = 800 * time.Millisecond
	DefaultWizardTTL   = time.Hour
	DefaultEnvFile     = ".env"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	StorageKey   string

	AdminPassphrase     string
	AdminPassphraseHash string
	AdminTokenSalt      string
	AdminTokenTTL       time.Duration

	SubmitDelay time.Duration
	WizardTTL   time.Duration

	LogDir   string
	LogLevel string

	AllowedOrigins []string
}

// ParseFlags validates flags and fills the rest from the environment.
// CLI flags win over environment variables, which win over the .env file.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, origins string
	var tokenTTL, submitDelay, wizardTTL string

	fs := flag.NewFlagSet("civic-pulse", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.StorageKey, "key", "", "Storage key for the response collection")
	fs.StringVar(&envFile, "env", "", "Env file to load (default .env)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassphrase, "admin-passphrase", "", "Admin passphrase (prefer env)")
	fs.StringVar(&cfg.AdminTokenSalt, "token-salt", "", "Admin token salt (prefer env)")

	fs.StringVar(&tokenTTL, "token-ttl", "", "Admin session lifetime")
	fs.StringVar(&submitDelay, "submit-delay", "", "Simulated submit latency")
	fs.StringVar(&wizardTTL, "wizard-ttl", "", "Idle lifetime of an unfinished survey")
	fs.StringVar(&cfg.LogDir, "log-dir", "", "Directory for rotated log files")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDBType
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = DefaultSQLiteURL
		case "postgres":
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	cfg.StorageKey = firstNonEmpty(cfg.StorageKey, os.Getenv("STORAGE_KEY"), DefaultStorageKey)

	// Secrets - MUST be provided
	cfg.AdminPassphrase = firstNonEmpty(cfg.AdminPassphrase, os.Getenv("ADMIN_PASSPHRASE"))
	cfg.AdminPassphraseHash = os.Getenv("ADMIN_PASSPHRASE_HASH")
	if cfg.AdminPassphrase == "" && cfg.AdminPassphraseHash == "" {
		return Config{}, errors.New("ADMIN_PASSPHRASE or ADMIN_PASSPHRASE_HASH required")
	}

	cfg.AdminTokenSalt = firstNonEmpty(cfg.AdminTokenSalt, os.Getenv("ADMIN_TOKEN_SALT"))
	if cfg.AdminTokenSalt == "" {
		return Config{}, errors.New("ADMIN_TOKEN_SALT required")
	}

	var err error
	if cfg.AdminTokenTTL, err = parseDuration("ADMIN_TOKEN_TTL", tokenTTL, DefaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.AdminTokenTTL <= 0 {
		return Config{}, errors.New("ADMIN_TOKEN_TTL must be positive")
	}
	if cfg.WizardTTL, err = parseDuration("WIZARD_TTL", wizardTTL, DefaultWizardTTL); err != nil {
		return Config{}, err
	}
	if cfg.WizardTTL <= 0 {
		return Config{}, errors.New("WIZARD_TTL must be positive")
	}
	if cfg.SubmitDelay, err = parseDuration("SUBMIT_DELAY", submitDelay, DefaultSubmitDelay); err != nil {
		return Config{}, err
	}
	if cfg.SubmitDelay < 0 {
		return Config{}, errors.New("SUBMIT_DELAY must not be negative")
	}

	cfg.LogDir = firstNonEmpty(cfg.LogDir, os.Getenv("LOG_DIR"))
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), "info")

	cfg.AllowedOrigins = splitOrigins(firstNonEmpty(origins, os.Getenv("ALLOWED_ORIGINS"), "*"))

	return cfg, nil
}

// loadEnvFile loads name (or .env) if it exists. Variables already set in
// the environment are left alone. A missing default file is not an error;
// a missing named file is.
func loadEnvFile(name string) error {
	if name == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		name = DefaultEnvFile
	}
	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", name, err)
	}
	return nil
}

// parseDuration reads the flag value, then the env variable, then def
func parseDuration(env, flagValue string, def time.Duration) (time.Duration, error) {
	s := firstNonEmpty(flagValue, os.Getenv(env))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", env, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
