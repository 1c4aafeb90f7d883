// Package config loads nodekit host configuration from YAML files and
// environment variables. Hosts embed ToolkitConfig in their own config
// structs; the loader resolves config.yml and .env files from standard
// locations and unmarshals through viper.
package config
