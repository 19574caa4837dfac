// Package cpp implements the C++ dialect of the reflector code generator.
//
// Every reflected type produces one translation unit holding a
// TypeSystem::TTypeInfo specialization: registration, the property table,
// construction, array manipulation, equality, default reset and the
// resource dependency lifecycle. Entity components additionally get their
// Load, Unload and UpdateLoading methods.
//
// Property dispatch is a linear chain of propertyID comparisons. Array
// accessors and the expected resource type treat an unknown ID as
// unreachable, while equality returns false and reset does nothing.
package cpp

import (
	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// Dialect generates C++ type-info units.
type Dialect struct {
	indent int
}

// DialectOption configures the dialect.
type DialectOption func(*Dialect)

// WithIndent sets the number of spaces per indentation level.
func WithIndent(n int) DialectOption {
	return func(d *Dialect) {
		if n > 0 {
			d.indent = n
		}
	}
}

// NewDialect creates the C++ dialect.
func NewDialect(opts ...DialectOption) *Dialect {
	d := &Dialect{indent: 4}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ gen.Dialect = (*Dialect)(nil)

// Name implements gen.MinimalDialect.
func (d *Dialect) Name() string { return "cpp" }

// GenTypeInfo implements gen.TypeGenerator.
func (d *Dialect) GenTypeInfo(t *gen.Type) ([]byte, error) {
	if t == nil {
		return nil, gen.NewGenerationError(gen.PhaseType, "", "nil type", nil)
	}
	for _, p := range t.AllProperties() {
		if p.IsStructure() || !p.IsResourceLoadable() {
			continue
		}
		if !p.IsResourcePtr() {
			return nil, gen.NewSchemaError(gen.PropertyRef(p), "unresolved element type "+p.TypeName)
		}
	}
	return d.genTypeInfo(t), nil
}

// GenEnumInfo implements gen.EnumGenerator.
func (d *Dialect) GenEnumInfo(e *gen.Enum) ([]byte, error) {
	if e == nil {
		return nil, gen.NewGenerationError(gen.PhaseEnum, "", "nil enum", nil)
	}
	return d.genEnumInfo(e), nil
}

// GenModule implements gen.ModuleGenerator.
func (d *Dialect) GenModule(g *gen.Graph) ([]byte, error) {
	if g == nil {
		return nil, gen.NewGenerationError(gen.PhaseModule, "", "nil graph", nil)
	}
	return d.genModule(g), nil
}
