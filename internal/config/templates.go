package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Traderdesk Configuration

[server]
# Listen address for the HTTP API
addr = ":8000"
# CORS allowed origins; "*" allows any origin
allowed_origins = ["*"]
# Request read timeout (e.g., "30s")
read_timeout = "30s"
# Response write timeout
write_timeout = "60s"
# Graceful shutdown timeout
shutdown_timeout = "10s"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to console
console = true
# Log to rotating file
file = true

[catalog]
# Optional CSV file overriding the built-in securities catalog.
# Columns: symbol, market, currency, name, price
csv_path = ""

[store]
# Persist a parse audit trail to SQLite
enabled = false
`

const credentialsTemplate = `# Traderdesk Credentials
# KEEP THIS FILE SECURE - DO NOT COMMIT TO VERSION CONTROL

[openai]
# When api_key is empty the service runs entirely on the
# rule-based parsing path.
api_key = ""
# Optional API base URL override for Azure or compatible gateways
base_url = ""
model = "gpt-4o-mini"
# Outbound call timeout
timeout = "15s"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}
