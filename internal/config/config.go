// Package config loads the reconciler settings from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Ledger LedgerConfig
	Upload UploadConfig

	// AliasFile optionally overrides the built-in header alias tables.
	AliasFile string
	Output    string
	Debug     bool
}

// LedgerConfig describes where the ledger data comes from.
type LedgerConfig struct {
	Encoding string // encoding of the text export: latin1 or utf-8
	DBPath   string // SQLite ledger extract
	Table    string
}

// UploadConfig describes how payment spreadsheets are read.
type UploadConfig struct {
	Sheet string // empty means the first sheet
}

// Load loads configuration from environment variables.
// It loads the .env file from the current directory if available, or the given file.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Ledger: LedgerConfig{
			Encoding: strings.ToLower(getEnvOrDefault("RECON_LEDGER_ENCODING", "latin1")),
			DBPath:   os.Getenv("RECON_LEDGER_DB"),
			Table:    getEnvOrDefault("RECON_LEDGER_TABLE", "ledger_movements"),
		},
		Upload: UploadConfig{
			Sheet: os.Getenv("RECON_SHEET"),
		},
		AliasFile: os.Getenv("RECON_ALIAS_FILE"),
		Output:    strings.ToLower(getEnvOrDefault("RECON_OUTPUT", "table")),
		Debug:     os.Getenv("DEBUG") == "true",
	}

	switch cfg.Ledger.Encoding {
	case "latin1", "utf-8", "utf8":
	default:
		return nil, fmt.Errorf("invalid RECON_LEDGER_ENCODING: %s", cfg.Ledger.Encoding)
	}
	switch cfg.Output {
	case "table", "json":
	default:
		return nil, fmt.Errorf("invalid RECON_OUTPUT: %s", cfg.Output)
	}

	return cfg, nil
}

// Validate checks that every named setting is present. Keys use the dotted form, e.g. "ledger.dbPath".
func (c *Config) Validate(required ...string) error {
	var missing []string
	for _, key := range required {
		var value string
		switch key {
		case "ledger.dbPath":
			value = c.Ledger.DBPath
		case "ledger.table":
			value = c.Ledger.Table
		case "ledger.encoding":
			value = c.Ledger.Encoding
		case "upload.sheet":
			value = c.Upload.Sheet
		case "aliasFile":
			value = c.AliasFile
		default:
			return fmt.Errorf("unknown configuration key %q", key)
		}
		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
