// Package config handles configuration loading, parsing, and validation
// from a .env file, environment variables and an optional config.yaml.
// It provides type-safe access to settings needed by the storage gateway,
// the HTTP host and the study ordering.
package config
