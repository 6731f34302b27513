package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
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

	if err := checkSites(&schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSites verifies every site entry carries the fields the schema marks as required
func checkSites(schema *jsonschema.Schema, configMap map[string]any) error {
	siteDef, ok := schema.Definitions["SiteConfig"]
	if !ok || siteDef == nil {
		return fmt.Errorf("schema has no SiteConfig definition")
	}

	sites, _ := configMap["sites"].([]any)
	for i, s := range sites {
		site, ok := s.(map[string]any)
		if !ok {
			return fmt.Errorf("sites[%d] is not an object", i)
		}
		for _, field := range siteDef.Required {
			if v, _ := site[field].(string); v == "" {
				return fmt.Errorf("sites[%d].%s is required", i, field)
			}
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Enabled && cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	if cfg.Database.DSN == "" && cfg.Mongo.URI == "" {
		return fmt.Errorf("database.dsn or mongo.uri is required")
	}
	if cfg.Mongo.URI != "" && (cfg.Mongo.Database == "" || cfg.Mongo.Collection == "") {
		return fmt.Errorf("mongo.database and mongo.collection are required when mongo.uri is set")
	}

	// check sentiment config if enabled
	if cfg.Sentiment.Enabled() && cfg.Sentiment.MaxTokens <= 0 {
		return fmt.Errorf("sentiment.max_tokens must be positive when model is set")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
