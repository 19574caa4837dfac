package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values of the code generation configuration.
const (
	DefaultHeader          = "This is an auto-generated file - DO NOT edit"
	DefaultDevToolsDefine  = "EE_DEVELOPMENT_TOOLS"
	DefaultRootNamespace   = "EE"
	DefaultModule          = "EngineModule"
	DefaultManifestPackage = "typeids"
)

// Config holds the global codegen configuration shared by all types.
type Config struct {
	// Target is the output directory of the generated files.
	Target string
	// Module names the engine module whose RegisterTypes/UnregisterTypes
	// functions are emitted by the registration unit. When empty, the
	// module recorded in the type database is used.
	Module string
	// Header is the comment placed at the top of every generated file.
	Header string
	// DevToolsDefine is the preprocessor symbol guarding dev-only code.
	DevToolsDefine string
	// APIMacro is the optional export macro applied to generated classes.
	APIMacro string
	// RootNamespace is the engine namespace holding the type system.
	RootNamespace string
	// Includes are added to every generated type-info unit.
	Includes []string
	// Features holds the enabled codegen features.
	Features []Feature
	// Workers bounds the number of types generated in parallel.
	// Zero means GOMAXPROCS.
	Workers int
	// ManifestPackage is the Go package name of the ID manifest.
	ManifestPackage string
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the dialects.
func (c Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := featureByName(name); !ok {
		return false, fmt.Errorf("unexpected feature name %q", name)
	}
	for _, f := range c.Features {
		if name == f.Name {
			return true, nil
		}
	}
	return false, nil
}

// defaults fills the unset values.
func (c *Config) defaults() {
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.DevToolsDefine == "" {
		c.DevToolsDefine = DefaultDevToolsDefine
	}
	if c.RootNamespace == "" {
		c.RootNamespace = DefaultRootNamespace
	}
	if c.ManifestPackage == "" {
		c.ManifestPackage = DefaultManifestPackage
	}
	if c.Includes == nil {
		c.Includes = []string{
			"Base/TypeSystem/TypeInfo.h",
			"Base/TypeSystem/TypeRegistry.h",
			"Base/Resource/ResourceSystem.h",
		}
	}
	for _, f := range allFeatures {
		if f.Default && !c.hasFeature(f.Name) {
			c.Features = append(c.Features, f)
		}
	}
}

func (c *Config) hasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ConfigFile is the YAML form of the configuration, read by the driver.
type ConfigFile struct {
	Target          string   `yaml:"target"`
	Module          string   `yaml:"module,omitempty"`
	Header          string   `yaml:"header,omitempty"`
	DevToolsDefine  string   `yaml:"dev_tools_define,omitempty"`
	APIMacro        string   `yaml:"api_macro,omitempty"`
	RootNamespace   string   `yaml:"root_namespace,omitempty"`
	Includes        []string `yaml:"includes,omitempty"`
	Features        []string `yaml:"features,omitempty"`
	Workers         int      `yaml:"workers,omitempty"`
	ManifestPackage string   `yaml:"manifest_package,omitempty"`
}

// LoadConfigFile reads the YAML configuration at path.
func LoadConfigFile(path string) (*ConfigFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f := &ConfigFile{}
	if err := yaml.Unmarshal(buf, f); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return f, nil
}

// Options converts the file into functional options. Empty values are
// skipped so that the defaults apply.
func (f *ConfigFile) Options() ([]Option, error) {
	var opts []Option
	if f.Target != "" {
		opts = append(opts, WithTarget(f.Target))
	}
	if f.Module != "" {
		opts = append(opts, WithModule(f.Module))
	}
	if f.Header != "" {
		opts = append(opts, WithHeader(f.Header))
	}
	if f.DevToolsDefine != "" {
		opts = append(opts, WithDevToolsDefine(f.DevToolsDefine))
	}
	if f.APIMacro != "" {
		opts = append(opts, WithAPIMacro(f.APIMacro))
	}
	if f.RootNamespace != "" {
		opts = append(opts, WithRootNamespace(f.RootNamespace))
	}
	if len(f.Includes) > 0 {
		opts = append(opts, WithIncludes(f.Includes...))
	}
	if f.Workers != 0 {
		opts = append(opts, WithWorkers(f.Workers))
	}
	if f.ManifestPackage != "" {
		opts = append(opts, WithManifestPackage(f.ManifestPackage))
	}
	for _, name := range f.Features {
		feat, ok := featureByName(name)
		if !ok {
			return nil, NewConfigError("Features", name, "unknown feature")
		}
		opts = append(opts, WithFeatures(feat))
	}
	return opts, nil
}
