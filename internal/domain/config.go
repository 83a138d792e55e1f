package domain

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the ClickUp API v2 root used when the configuration
// does not override it.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// Config represents the server configuration.
// This is the root configuration structure loaded from YAML files.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	ClickUp   ClickUpConfig   `yaml:"clickup"`
}

// TransportConfig defines transport settings.
// Specifies whether to use stdio or HTTP transport.
type TransportConfig struct {
	Type string     `yaml:"type"` // "stdio" or "http"
	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig defines HTTP transport settings.
// Only used when transport type is "http".
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ClickUpConfig defines the ClickUp API connection settings.
// The API token and team id may also come from the CLICKUP_API_TOKEN and
// CLICKUP_TEAM_ID environment variables, which take precedence over the
// file values.
type ClickUpConfig struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	APIToken string `yaml:"api_token"`
	TeamID   string `yaml:"team_id"`
}

// LoadConfig reads and validates configuration from a YAML file.
// Environment overrides are applied before validation.
// Returns an error if the file is missing, has invalid syntax, or fails
// validation.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax in configuration file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides replaces file values with environment values when set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLICKUP_API_TOKEN"); v != "" {
		c.ClickUp.APIToken = v
	}
	if v := os.Getenv("CLICKUP_TEAM_ID"); v != "" {
		c.ClickUp.TeamID = v
	}
	if v := os.Getenv("CLICKUP_BASE_URL"); v != "" {
		c.ClickUp.BaseURL = v
	}
}

// applyDefaults fills in values the file may omit.
func (c *Config) applyDefaults() {
	if c.ClickUp.BaseURL == "" {
		c.ClickUp.BaseURL = DefaultBaseURL
	}
}

// Validate checks the configuration for completeness and correctness.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errors []string

	// Validate transport configuration
	if err := c.validateTransport(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate ClickUp configuration
	if err := c.ClickUp.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// validateTransport validates the transport configuration.
func (c *Config) validateTransport() error {
	var errors []string

	// Check transport type is specified
	if c.Transport.Type == "" {
		errors = append(errors, "transport type is required")
	} else if c.Transport.Type != "stdio" && c.Transport.Type != "http" {
		errors = append(errors, fmt.Sprintf("invalid transport type '%s': must be 'stdio' or 'http'", c.Transport.Type))
	}

	// If HTTP transport, validate HTTP configuration
	if c.Transport.Type == "http" {
		if c.Transport.HTTP.Host == "" {
			errors = append(errors, "HTTP host is required when transport type is 'http'")
		}
		if c.Transport.HTTP.Port <= 0 || c.Transport.HTTP.Port > 65535 {
			errors = append(errors, fmt.Sprintf("invalid HTTP port %d: must be between 1 and 65535", c.Transport.HTTP.Port))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates the ClickUp configuration.
func (cc *ClickUpConfig) Validate() error {
	var errors []string

	// Check base URL format
	if cc.BaseURL == "" {
		errors = append(errors, "ClickUp base_url is required")
	} else {
		parsedURL, err := url.Parse(cc.BaseURL)
		if err != nil {
			errors = append(errors, fmt.Sprintf("ClickUp base_url is invalid: %v", err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, "ClickUp base_url must use http or https scheme")
		} else if parsedURL.Host == "" {
			errors = append(errors, "ClickUp base_url must include a host")
		}
	}

	if strings.TrimSpace(cc.APIToken) == "" {
		errors = append(errors, "ClickUp api_token is required (file value or CLICKUP_API_TOKEN)")
	}

	if strings.TrimSpace(cc.TeamID) == "" {
		errors = append(errors, "ClickUp team_id is required (file value or CLICKUP_TEAM_ID)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
