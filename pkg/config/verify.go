package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Defs map[string]struct {
			Required   []string                   `json:"required"`
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top level key must be known to the schema
	if root, ok := schema.Defs["Config"]; ok {
		for key := range configMap {
			if _, known := root.Properties[key]; !known {
				return fmt.Errorf("config key %q is not in schema", key)
			}
		}
	}

	// feeds must carry fields marked as required in the schema
	if feedDef, ok := schema.Defs["Feed"]; ok {
		for i, f := range cfg.Feeds {
			if slices.Contains(feedDef.Required, "url") && f.URL == "" {
				return fmt.Errorf("feeds[%d].url is required", i)
			}
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Digest.Dir == "" {
		return fmt.Errorf("digest.dir is required")
	}
	if cfg.Digest.ItemsPerFeed == 0 {
		return fmt.Errorf("digest.items_per_feed is required")
	}
	if cfg.Fetch.Timeout == 0 {
		return fmt.Errorf("fetch.timeout is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
