package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"TRADERDESK_ADDR", "TRADERDESK_CATALOG_CSV",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadCreatesTemplates(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	for _, name := range []string{"config.toml", "credentials.toml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("template %s not created: %v", name, err)
		}
	}

	// First load runs on defaults.
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Credentials.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Credentials.OpenAI.Model)
	}
	if cfg.Credentials.OpenAI.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Credentials.OpenAI.Timeout)
	}
	if cfg.LLMConfigured() {
		t.Error("LLMConfigured() = true without a key")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	configTOML := `
[server]
addr = ":9100"
allowed_origins = ["http://localhost:3000"]

[logging]
level = "debug"

[store]
enabled = true
path = "` + filepath.ToSlash(filepath.Join(dir, "audit.db")) + `"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(configTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	credsTOML := `
[openai]
api_key = "sk-test"
model = "gpt-4o"
`
	if err := os.WriteFile(filepath.Join(dir, "credentials.toml"), []byte(credsTOML), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	if cfg.Server.Addr != ":9100" {
		t.Errorf("Addr = %q, want :9100", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.Store.Enabled {
		t.Error("Store.Enabled = false, want true")
	}
	if cfg.Credentials.OpenAI.APIKey != "sk-test" || cfg.Credentials.OpenAI.Model != "gpt-4o" {
		t.Errorf("credentials = %+v", cfg.Credentials.OpenAI)
	}
	if !cfg.LLMConfigured() {
		t.Error("LLMConfigured() = false with key")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnvOverrides(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "catalog.csv")
	if err := os.WriteFile(csvPath, []byte("symbol,market,currency,name,price\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("TRADERDESK_ADDR", ":7777")
	t.Setenv("TRADERDESK_CATALOG_CSV", csvPath)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}

	if cfg.Credentials.OpenAI.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want env value", cfg.Credentials.OpenAI.APIKey)
	}
	if cfg.Credentials.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q, want env value", cfg.Credentials.OpenAI.Model)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Catalog.CSVPath != csvPath {
		t.Errorf("CSVPath = %q, want env value", cfg.Catalog.CSVPath)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for bad log level, want error")
	}

	cfg.Logging.Level = "warn"
	cfg.Catalog.CSVPath = "/nonexistent/catalog.csv"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for missing csv, want error")
	}

	cfg.Catalog.CSVPath = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() err = %v", err)
	}
}
