package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/angelofallars/facturier/internal/invoice"
	"github.com/angelofallars/facturier/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, store.DriverFile, cfg.Store.Driver)
	assert.Equal(t, "./data", cfg.Store.Path)
	assert.Equal(t, "TND", cfg.Invoice.Currency)
	assert.Equal(t, "8030 GROMBALIA", cfg.Invoice.ShopAddress)
	assert.Equal(t, invoice.PolicyInclTax, cfg.Invoice.Policy)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, slog.LevelInfo, cfg.Logging.Level)

	base, _ := cfg.Invoice.Locale.Base()
	assert.Equal(t, "fr", base.String())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8181")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("RECONCILE_POLICY", "excl-tax")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOCALE", "en-US")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, uint(8181), cfg.Server.Port)
	assert.Equal(t, store.DriverMemory, cfg.Store.Options().Driver)
	assert.Equal(t, invoice.PolicyExclTax, cfg.Invoice.Policy)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.Level)
	assert.Equal(t, language.MustParse("en-US"), cfg.Invoice.Locale)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY=EUR\nSHOP_ADDRESS=Sousse\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("CURRENCY")
		os.Unsetenv("SHOP_ADDRESS")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Invoice.Currency)
	assert.Equal(t, "Sousse", cfg.Invoice.ShopAddress)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "policy", key: "RECONCILE_POLICY", value: "round-robin"},
		{name: "driver", key: "STORE_DRIVER", value: "redis"},
		{name: "log level", key: "LOG_LEVEL", value: "loud"},
		{name: "session ttl", key: "SESSION_TTL", value: "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnparsableLocaleFallsBackToFrench(t *testing.T) {
	t.Setenv("LOCALE", "%%")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, language.French, cfg.Invoice.Locale)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(LoggingConfig{Level: slog.LevelWarn, Format: "json"}, &buf).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(LoggingConfig{Level: slog.LevelInfo, Format: "json"}, &buf).Info("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(LoggingConfig{Level: slog.LevelInfo, Format: "text"}, &buf).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
