package graphql

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// GQLGenConfig represents a subset of gqlgen.yml configuration, enough to
// read and update model bindings without disturbing everything else a
// user has hand-written into the file.
type GQLGenConfig struct {
	SchemaFilename StringList              `yaml:"schema,omitempty"`
	Exec           ExecConfig              `yaml:"exec,omitempty"`
	Model          ModelConfig             `yaml:"model,omitempty"`
	Resolver       ResolverConfig          `yaml:"resolver,omitempty"`
	Autobind       []string                `yaml:"autobind,omitempty"`
	Models         map[string]TypeMapEntry `yaml:"models,omitempty"`
}

// ExecConfig configures the generated executor.
type ExecConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ModelConfig configures the generated models.
type ModelConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig configures resolver generation.
type ResolverConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
	Layout   string `yaml:"layout,omitempty"`
	DirName  string `yaml:"dir,omitempty"`
}

// TypeMapEntry binds a GraphQL type name to a Go model.
type TypeMapEntry struct {
	Model StringList `yaml:"model,omitempty"`
}

// StringList is a YAML scalar that can decode from either a string or a
// list of strings, matching gqlgen.yml's own model-binding shape.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("tql/contrib/graphql: expected a string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig loads a gqlgen.yml file; a missing file yields an empty,
// ready-to-populate config rather than an error.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GQLGenConfig{Models: make(map[string]TypeMapEntry)}, nil
		}
		return nil, fmt.Errorf("tql/contrib/graphql: read %s: %w", path, err)
	}
	var cfg GQLGenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("tql/contrib/graphql: parse %s: %w", path, err)
	}
	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeMapEntry)
	}
	return &cfg, nil
}

// SaveGQLGenConfig writes cfg back to path.
func SaveGQLGenConfig(path string, cfg *GQLGenConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("tql/contrib/graphql: marshal %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tql/contrib/graphql: create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath adds a schema path to the configuration if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// AddAutobind adds a package to the autobind list if not already present.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	if !slices.Contains(c.Autobind, pkg) {
		c.Autobind = append(c.Autobind, pkg)
	}
}

// SetModel sets the model binding for a GraphQL type.
func (c *GQLGenConfig) SetModel(typeName string, modelPath string) {
	entry := c.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	c.Models[typeName] = entry
}

// InjectSchemaBindings adds the minimal configuration GenerateSDL's output
// needs: the schema path, an autobind entry for ormPackage, and model
// bindings for the two scalars GenerateSDL always declares (DateTime,
// JSON) to gqlgen's own built-in implementations, so gqlgen never tries
// (and fails) to generate marshal code for them itself.
func (c *GQLGenConfig) InjectSchemaBindings(ormPackage string, schemaPath string) {
	if schemaPath != "" {
		c.AddSchemaPath(schemaPath)
	}
	if ormPackage != "" {
		c.AddAutobind(ormPackage)
	}
	c.SetModel("DateTime", "github.com/99designs/gqlgen/graphql.Time")
	c.SetModel("JSON", "github.com/99designs/gqlgen/graphql.Map")
}
