package config

import (
	"fmt"
	"os"
	"strings"
)

// Template returns a starter file for kind "server" or "catalog".
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "server":
		return serverTemplate, nil
	case "catalog":
		return catalogTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `# The signing secret is read from COTYLEDON_SECRET, never from this file.
name = "cotyledon"
addr = "127.0.0.1:8080"
cors_origins = ["http://localhost:3000"]
trusted_proxies = ["127.0.0.1", "::1"]

# Empty means the built-in carrot/potato/onion table.
catalog_path = ""

# Reject an empty garden that carries an approval that does not verify.
strict_empty_plot = false

# When set, /metrics requires "Authorization: Bearer <metrics_token>".
metrics_token = ""

[rate_limit]
rps = 10
burst = 20
`

const catalogTemplate = `[[plants]]
name = "carrot"
grow_time = "24h"

[[plants]]
name = "potato"
grow_time_seconds = 60

[[plants]]
name = "onion"
grow_time = "1h"
`
