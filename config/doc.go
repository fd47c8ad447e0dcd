// Package config loads the neysla configuration.
//
// Values come from a YAML file (config.yml in the usual cmd/, config/ or
// working directory locations), an optional .env file, and the environment.
// Environment variables carry the NEYSLA_ prefix and map onto nested keys by
// splitting on underscores, so NEYSLA_HTTP_TIMEOUT sets http.timeout.
//
// # Usage
//
//	cfg, err := config.Load("neysla", config.WithConfigFile("neysla.yml"))
//
// Viper lowercases map keys. Config implements KeyCaseRestorer, so catalog
// resource names and the keys of params, body and headers keep the case they
// were written with in the file.
package config
