// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

// Storage backends understood by the composition root.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the local API listening address (ip:port).
	Addr string `json:"address"`

	// Backend selects the durable key-value medium.
	Backend string `json:"backend"`

	// DSN locates the backend: a directory for "file", a database file for
	// "sqlite", a connection string for "postgres", a redis:// URL for "redis".
	DSN string `json:"dsn"`

	// StorageKey is the key the account snapshot is stored under.
	StorageKey string `json:"storage_key"`

	// LogLevel is the minimum zap level to log.
	LogLevel string `json:"log_level"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// Default returns the options used when nothing else is configured.
func Default() *Options {
	return &Options{
		Addr:       "localhost:8080",
		Backend:    BackendFile,
		DSN:        "data",
		StorageKey: "accounts_form_state_v1",
		LogLevel:   "info",
		Config:     "config.json",
	}
}

// options holds the current configuration values.
var options = Default()

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", options.Addr, "run local API on ip:port")
	flag.StringVar(&options.Backend, "backend", options.Backend, "storage backend: memory | file | sqlite | postgres | redis")
	flag.StringVar(&options.DSN, "d", options.DSN, "storage location (dir, db file, postgres dsn or redis url)")
	flag.StringVar(&options.StorageKey, "key", options.StorageKey, "storage key for the account snapshot")
	flag.StringVar(&options.LogLevel, "log-level", options.LogLevel, "log level")
	flag.StringVar(&options.Config, "config", options.Config, "path to config file")
	flag.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	if err := Resolve(options); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return options
}

// Resolve overlays o with the config file (if it exists) and then with
// environment variables, and validates the result.
func Resolve(o *Options) error {
	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}

	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("error while reading config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		o.Addr = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		o.Backend = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		o.DSN = v
	}
	if v := os.Getenv("STORAGE_KEY"); v != "" {
		o.StorageKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		o.LogLevel = v
	}

	return o.Validate()
}

// Validate reports configuration that cannot work.
func (o *Options) Validate() error {
	switch o.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite, BackendPostgres, BackendRedis:
		if o.DSN == "" {
			return fmt.Errorf("backend %q requires a dsn", o.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", o.Backend)
	}
	if o.StorageKey == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}
