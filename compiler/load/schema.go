package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Array kinds of a loaded property.
const (
	ArrayNone    = ""
	ArrayStatic  = "static"
	ArrayDynamic = "dynamic"
)

// Schema represents the type database dumped by the header parser.
// It is the read-only input of the generator.
type Schema struct {
	Module string  `yaml:"module,omitempty" json:"module,omitempty"`
	Types  []*Type `yaml:"types,omitempty" json:"types,omitempty"`
	Enums  []*Enum `yaml:"enums,omitempty" json:"enums,omitempty"`
}

// Type represents one reflected class or struct as seen by the parser.
type Type struct {
	Name            string      `yaml:"name" json:"name"`
	Namespace       string      `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	ID              uint32      `yaml:"id,omitempty" json:"id,omitempty"`
	Header          string      `yaml:"header,omitempty" json:"header,omitempty"`
	Abstract        bool        `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	DevOnly         bool        `yaml:"dev_only,omitempty" json:"dev_only,omitempty"`
	EntityComponent bool        `yaml:"entity_component,omitempty" json:"entity_component,omitempty"`
	Parents         []string    `yaml:"parents,omitempty" json:"parents,omitempty"`
	Properties      []*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	FriendlyName    string      `yaml:"friendly_name,omitempty" json:"friendly_name,omitempty"`
	Category        string      `yaml:"category,omitempty" json:"category,omitempty"`
	Description     string      `yaml:"description,omitempty" json:"description,omitempty"`
}

// Property represents one reflected data member.
type Property struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	TemplateArg  string `yaml:"template_arg,omitempty" json:"template_arg,omitempty"`
	ID           uint32 `yaml:"id,omitempty" json:"id,omitempty"`
	Array        string `yaml:"array,omitempty" json:"array,omitempty"`
	ArraySize    int    `yaml:"array_size,omitempty" json:"array_size,omitempty"`
	DevOnly      bool   `yaml:"dev_only,omitempty" json:"dev_only,omitempty"`
	Flags        uint32 `yaml:"flags,omitempty" json:"flags,omitempty"`
	Default      any    `yaml:"default,omitempty" json:"default,omitempty"`
	FriendlyName string `yaml:"friendly_name,omitempty" json:"friendly_name,omitempty"`
	Category     string `yaml:"category,omitempty" json:"category,omitempty"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Enum represents a reflected enumeration.
type Enum struct {
	Name           string          `yaml:"name" json:"name"`
	Namespace      string          `yaml:"namespace,omitempty" json:"namespace,omitempty"`
	ID             uint32          `yaml:"id,omitempty" json:"id,omitempty"`
	Header         string          `yaml:"header,omitempty" json:"header,omitempty"`
	UnderlyingType string          `yaml:"underlying_type,omitempty" json:"underlying_type,omitempty"`
	DevOnly        bool            `yaml:"dev_only,omitempty" json:"dev_only,omitempty"`
	Constants      []*EnumConstant `yaml:"constants,omitempty" json:"constants,omitempty"`
}

// EnumConstant is a single label/value pair of an enum.
type EnumConstant struct {
	Label       string `yaml:"label" json:"label"`
	Value       int64  `yaml:"value" json:"value"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Parse decodes the given buffer to a loaded schema. JSON dumps are
// accepted as well, being a subset of YAML.
func Parse(buf []byte) (*Schema, error) {
	s := &Schema{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode type database: %w", err)
	}
	if err := s.defaults(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFile loads the schema stored at path.
func ReadFile(path string) (*Schema, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type database: %w", err)
	}
	s, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// MarshalSchema encodes the schema back to its YAML form.
func MarshalSchema(s *Schema) ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// defaults validates the shape of the loaded objects. Cross references
// (parents, nested types) are resolved later by the generator.
func (s *Schema) defaults() error {
	for _, t := range s.Types {
		if t == nil || t.Name == "" {
			return errors.New("type name cannot be empty")
		}
		for _, p := range t.Properties {
			if err := p.defaults(); err != nil {
				return fmt.Errorf("type %q: %w", t.Name, err)
			}
		}
	}
	for _, e := range s.Enums {
		if e == nil || e.Name == "" {
			return errors.New("enum name cannot be empty")
		}
		for _, c := range e.Constants {
			if c.Label == "" {
				return fmt.Errorf("enum %q: constant label cannot be empty", e.Name)
			}
		}
	}
	return nil
}

func (p *Property) defaults() error {
	if p == nil || p.Name == "" {
		return errors.New("property name cannot be empty")
	}
	if p.Type == "" {
		return fmt.Errorf("property %q: missing type", p.Name)
	}
	switch p.Array {
	case ArrayNone, ArrayDynamic:
		if p.ArraySize != 0 {
			return fmt.Errorf("property %q: array_size is only valid for static arrays", p.Name)
		}
	case ArrayStatic:
		if p.ArraySize <= 0 {
			return fmt.Errorf("property %q: static array requires a positive array_size", p.Name)
		}
	default:
		return fmt.Errorf("property %q: unknown array kind %q", p.Name, p.Array)
	}
	return nil
}
