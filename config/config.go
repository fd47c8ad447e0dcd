package config

import (
	"fmt"

	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/observability"
	"github.com/kbukum/neysla/resource"
	"github.com/kbukum/neysla/validation"
)

// DefaultName is the application name used for file discovery and logging.
const DefaultName = "neysla"

// Config is the complete neysla configuration.
//
//	name: neysla
//	logging:
//	  level: debug
//	http:
//	  timeout: 10s
//	  transport: resty
//	catalog:
//	  base_url: https://api.example.com/
//	  resources:
//	    posts:
//	      segments: [users, posts]
//	      headers:
//	        Accept: application/json
type Config struct {
	BaseConfig    `yaml:",inline" mapstructure:",squash"`
	Logging       logger.Config          `yaml:"logging" mapstructure:"logging"`
	HTTP          httpclient.Config      `yaml:"http" mapstructure:"http"`
	Observability observability.Config   `yaml:"observability" mapstructure:"observability"`
	Catalog       resource.CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
}

// ApplyDefaults fills every section's zero values.
func (c *Config) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	if c.HTTP.Name == "" {
		c.HTTP.Name = c.Name
	}
	c.HTTP.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("config.http: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	if err := validation.Validate(c.Catalog); err != nil {
		return fmt.Errorf("config.catalog: %w", err)
	}
	return nil
}

// Load reads the configuration for serviceName, applies defaults and
// validates it.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
