// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including server settings, the request log, content storage paths, and the
// chat matching method.
package config
