// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env and config files). It
// provides type-safe access to settings for the backend server and the
// command-line client while keeping configuration details separate from
// business logic.
package config
