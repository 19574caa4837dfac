package gen

import (
	"errors"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithModule sets the engine module owning the registration functions.
func WithModule(name string) Option {
	return func(c *Config) error {
		if name == "" || strings.ContainsAny(name, " :") {
			return NewConfigError("Module", name, "module must be a plain C++ identifier")
		}
		c.Module = name
		return nil
	}
}

// WithDevToolsDefine sets the preprocessor symbol guarding dev-only code.
func WithDevToolsDefine(define string) Option {
	return func(c *Config) error {
		if define == "" {
			return NewConfigError("DevToolsDefine", nil, "define cannot be empty")
		}
		c.DevToolsDefine = define
		return nil
	}
}

// WithAPIMacro sets the export macro placed on generated type-info classes.
func WithAPIMacro(macro string) Option {
	return func(c *Config) error {
		c.APIMacro = macro
		return nil
	}
}

// WithRootNamespace sets the engine root namespace.
func WithRootNamespace(ns string) Option {
	return func(c *Config) error {
		if ns == "" {
			return NewConfigError("RootNamespace", nil, "namespace cannot be empty")
		}
		c.RootNamespace = ns
		return nil
	}
}

// WithIncludes replaces the headers included by every type-info unit.
func WithIncludes(headers ...string) Option {
	return func(c *Config) error {
		c.Includes = append([]string{}, headers...)
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.hasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithWorkers bounds the number of parallel generation jobs.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithManifestPackage sets the Go package name of the ID manifest.
func WithManifestPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("ManifestPackage", nil, "package cannot be empty")
		}
		c.ManifestPackage = pkg
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.defaults()
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
