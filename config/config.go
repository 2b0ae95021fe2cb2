// Package config loads the small service configuration a reportsql server
// or CLI needs: where the catalog lives, which dialect to execute against,
// and where to listen. Same shape and the same yaml.v2 decode discipline as
// the teacher's database.ParseGeneratorConfig.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the top-level service configuration document.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	CatalogFile string `yaml:"catalog_file"`
	Dialect     string `yaml:"dialect"`
	DSN         string `yaml:"dsn"`
}

// defaults mirrors the teacher's habit of only overriding zero-valued
// fields rather than requiring every key.
var defaults = Config{
	ListenAddr: ":8080",
	Dialect:    "mysql",
}

// Load reads and parses a service config YAML file, filling unset fields
// with defaults.
func Load(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	return Parse(buf)
}

// Parse decodes a service config YAML document already held in memory.
func Parse(buf []byte) (Config, error) {
	cfg := defaults

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config yaml: %w", err)
	}

	if cfg.CatalogFile == "" {
		return Config{}, fmt.Errorf("config: catalog_file is required")
	}
	return cfg, nil
}
