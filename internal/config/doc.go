// Package config defines the application configuration structure and
// handles loading configuration from files and environment variables.
package config
