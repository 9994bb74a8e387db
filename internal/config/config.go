// Package config reads the application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/store"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Invoice InvoiceConfig
	Session SessionConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port uint
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StoreConfig struct {
	Driver      store.Driver
	Path        string
	DatabaseURL string
}

func (c StoreConfig) Options() store.Options {
	return store.Options{Driver: c.Driver, Path: c.Path, DatabaseURL: c.DatabaseURL}
}

type InvoiceConfig struct {
	Locale      language.Tag
	Currency    string
	ShopAddress string
	Policy      invoice.Policy
}

type SessionConfig struct {
	TTL time.Duration
}

type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds the configuration from it. Missing .env
// files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 3000)
	v.SetDefault("STORE_DRIVER", string(store.DriverFile))
	v.SetDefault("STORE_PATH", "./data")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("LOCALE", "fr-TN")
	v.SetDefault("CURRENCY", "TND")
	v.SetDefault("SHOP_ADDRESS", "8030 GROMBALIA")
	v.SetDefault("RECONCILE_POLICY", string(invoice.PolicyInclTax))
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	policy, err := invoice.ParsePolicy(v.GetString("RECONCILE_POLICY"))
	if err != nil {
		return nil, err
	}

	driver := store.Driver(strings.ToLower(v.GetString("STORE_DRIVER")))
	switch driver {
	case store.DriverMemory, store.DriverFile, store.DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	locale, err := language.Parse(v.GetString("LOCALE"))
	if err != nil {
		locale = language.French
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	ttl := v.GetDuration("SESSION_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %q", v.GetString("SESSION_TTL"))
	}

	return &Config{
		Server: ServerConfig{
			Host: v.GetString("HOST"),
			Port: v.GetUint("PORT"),
		},
		Store: StoreConfig{
			Driver:      driver,
			Path:        v.GetString("STORE_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		Invoice: InvoiceConfig{
			Locale:      locale,
			Currency:    v.GetString("CURRENCY"),
			ShopAddress: v.GetString("SHOP_ADDRESS"),
			Policy:      policy,
		},
		Session: SessionConfig{
			TTL: ttl,
		},
		Logging: LoggingConfig{
			Level:  level,
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}, nil
}

// NewLogger builds the process logger. Format "json" selects the JSON
// handler, anything else the text handler.
func NewLogger(c LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
