package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	LogLevel string
	LogFile  string

	AccountsFile    string
	DefaultCapacity int

	AdminFirstName string
	AdminLastName  string
	HackerCode     string
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// RegisterFlags adds the command-line overrides understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("accounts-file", "", "path of the accounts file (env ACCOUNTS_FILE)")
	fs.Int("capacity", 0, "capacity used when the accounts file does not exist (env ACCOUNTS_DEFAULT_CAPACITY)")
	fs.String("log-level", "", "zerolog level: trace, debug, info, warn, error (env LOG_LEVEL)")
	fs.String("log-file", "", "append logs to this file instead of stderr (env LOG_FILE)")
}

// Load loads configuration from flags, environment variables and an optional
// .env file, in that order of precedence. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// 1. Load .env file into the process environment
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine; OS-set env vars are used instead.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// 2. Explicitly bind viper keys to env var names
	envBindings := map[string]string{
		"app.env":                   "APP_ENV",
		"log.level":                 "LOG_LEVEL",
		"log.file":                  "LOG_FILE",
		"accounts.file":             "ACCOUNTS_FILE",
		"accounts.default_capacity": "ACCOUNTS_DEFAULT_CAPACITY",
		"admin.first_name":          "ADMIN_FIRST_NAME",
		"admin.last_name":           "ADMIN_LAST_NAME",
		"atm.hacker_code":           "ATM_HACKER_CODE",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Flags win over env, but only when set on the command line
	if fs != nil {
		flagBindings := map[string]string{
			"accounts.file":             "accounts-file",
			"accounts.default_capacity": "capacity",
			"log.level":                 "log-level",
			"log.file":                  "log-file",
		}
		for key, name := range flagBindings {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("could not bind flag %s: %w", name, err)
				}
			}
		}
	}

	// 4. Set defaults
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "warn")
	v.SetDefault("accounts.file", "BankAccounts.txt")
	v.SetDefault("accounts.default_capacity", 10)
	v.SetDefault("admin.first_name", "4DM1N")
	v.SetDefault("admin.last_name", "157R470R")
	v.SetDefault("atm.hacker_code", "H4CK3R")

	// 5. Get values directly from viper
	cfg := Config{
		AppEnv:          v.GetString("app.env"),
		LogLevel:        v.GetString("log.level"),
		LogFile:         v.GetString("log.file"),
		AccountsFile:    v.GetString("accounts.file"),
		DefaultCapacity: v.GetInt("accounts.default_capacity"),
		AdminFirstName:  v.GetString("admin.first_name"),
		AdminLastName:   v.GetString("admin.last_name"),
		HackerCode:      v.GetString("atm.hacker_code"),
	}

	// 6. Validation
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.AccountsFile) == "" {
		return errors.New("ACCOUNTS_FILE must not be empty")
	}
	if c.DefaultCapacity < 0 {
		return fmt.Errorf("ACCOUNTS_DEFAULT_CAPACITY must not be negative, but got %d", c.DefaultCapacity)
	}
	if c.AdminFirstName == "" || c.AdminLastName == "" {
		return errors.New("ADMIN_FIRST_NAME and ADMIN_LAST_NAME must both be set")
	}
	if c.HackerCode == "" {
		return errors.New("ATM_HACKER_CODE must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level: %w", c.LogLevel, err)
	}
	return nil
}
