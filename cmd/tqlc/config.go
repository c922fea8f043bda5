package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tql-go/tql/sqlgen"
)

// Config is tql.yaml: the generator's one piece of project-level state.
// Grounded on the teacher's own use of gopkg.in/yaml.v3 for its config
// files — the same library, used the same way, for the same reason
// (a small, human-edited document checked into the repo).
type Config struct {
	Dialect string   `yaml:"dialect"`
	Schema  string   `yaml:"schema"`
	Queries []string `yaml:"queries"`
	Out     string   `yaml:"out"`
	Watch   bool     `yaml:"watch"`
}

func defaultConfig() *Config {
	return &Config{
		Dialect: "sqlite",
		Schema:  "./schema",
		Queries: []string{"./..."},
		Out:     "tql_gen.go",
	}
}

// LoadConfig reads path (tql.yaml by default); a missing file falls back
// to defaultConfig() rather than erroring, so a bare `tqlc` invocation
// works in a project that hasn't written one yet.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("tqlc: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("tqlc: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) dialect() (sqlgen.Dialect, error) {
	switch c.Dialect {
	case "", "sqlite":
		return sqlgen.SQLite, nil
	case "postgres":
		return sqlgen.Postgres, nil
	default:
		return 0, fmt.Errorf("tqlc: unknown dialect %q (want %q or %q)", c.Dialect, "sqlite", "postgres")
	}
}
