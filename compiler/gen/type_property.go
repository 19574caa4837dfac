package gen

import (
	"strings"
)

// coreType describes a built-in engine type that has no generated
// type-info of its own.
type coreType struct {
	// name is the C++ spelling relative to the root namespace.
	name string
	// builtin types are spelled without the root namespace.
	builtin bool
	// integral marks the valid enum underlying types.
	integral bool
}

// Core type names, as written by the header parser.
const (
	resourcePtrType      = "ResourcePtr"
	typedResourcePtrType = "TResourcePtr"
	bitFlagsType         = "BitFlags"
	typedBitFlagsType    = "TBitFlags"
)

var coreTypes = map[string]coreType{
	"bool":                 {name: "bool", builtin: true},
	"int8_t":               {name: "int8_t", builtin: true, integral: true},
	"uint8_t":              {name: "uint8_t", builtin: true, integral: true},
	"int16_t":              {name: "int16_t", builtin: true, integral: true},
	"uint16_t":             {name: "uint16_t", builtin: true, integral: true},
	"int32_t":              {name: "int32_t", builtin: true, integral: true},
	"uint32_t":             {name: "uint32_t", builtin: true, integral: true},
	"int64_t":              {name: "int64_t", builtin: true, integral: true},
	"uint64_t":             {name: "uint64_t", builtin: true, integral: true},
	"float":                {name: "float", builtin: true},
	"double":               {name: "double", builtin: true},
	"UUID":                 {name: "UUID"},
	"StringID":             {name: "StringID"},
	"TypeID":               {name: "TypeSystem::TypeID"},
	"String":               {name: "String"},
	"Color":                {name: "Color"},
	"Float2":               {name: "Float2"},
	"Float3":               {name: "Float3"},
	"Float4":               {name: "Float4"},
	"Vector":               {name: "Vector"},
	"Quaternion":           {name: "Quaternion"},
	"Matrix":               {name: "Matrix"},
	"Transform":            {name: "Transform"},
	"Microseconds":         {name: "Microseconds"},
	"Milliseconds":         {name: "Milliseconds"},
	"Seconds":              {name: "Seconds"},
	"Percentage":           {name: "Percentage"},
	"Degrees":              {name: "Degrees"},
	"Radians":              {name: "Radians"},
	"EulerAngles":          {name: "EulerAngles"},
	"IntRange":             {name: "IntRange"},
	"FloatRange":           {name: "FloatRange"},
	"FloatCurve":           {name: "FloatCurve"},
	"Tag":                  {name: "Tag"},
	"ResourcePath":         {name: "ResourcePath"},
	"ResourceTypeID":       {name: "ResourceTypeID"},
	"ResourceID":           {name: "ResourceID"},
	"TimeStamp":            {name: "TimeStamp"},
	"DataPath":             {name: "DataPath"},
	resourcePtrType:        {name: "Resource::ResourcePtr"},
	typedResourcePtrType:   {name: "TResourcePtr"},
	bitFlagsType:           {name: "BitFlags"},
	typedBitFlagsType:      {name: "TBitFlags"},
}

func isIntegral(name string) bool { return coreTypes[name].integral }

// root returns the root namespace of the owning configuration.
func (p Property) root() string {
	if p.Owner != nil && p.Owner.Config != nil && p.Owner.RootNamespace != "" {
		return p.Owner.RootNamespace
	}
	return DefaultRootNamespace
}

// coreName returns the canonical core-type name of the element type, or
// an empty string if it is not a core type.
func (p Property) coreName() string {
	name := p.TypeName
	for _, prefix := range []string{p.root() + "::", DefaultRootNamespace + "::", "Resource::", "TypeSystem::"} {
		name = strings.TrimPrefix(name, prefix)
	}
	if _, ok := coreTypes[name]; ok {
		return name
	}
	return ""
}

// IsScalar reports if the property holds a single element.
func (p Property) IsScalar() bool { return p.Array == ScalarProperty }

// IsStaticArray reports if the property is a fixed-size C array.
func (p Property) IsStaticArray() bool { return p.Array == StaticArrayProperty }

// IsDynamicArray reports if the property is a growable vector.
func (p Property) IsDynamicArray() bool { return p.Array == DynamicArrayProperty }

// IsArray reports if the property is a static or a dynamic array.
func (p Property) IsArray() bool { return p.IsStaticArray() || p.IsDynamicArray() }

// IsCoreType reports if the element type is a built-in engine type.
func (p Property) IsCoreType() bool { return p.coreName() != "" }

// IsStructure reports if the element type is a nested reflected type.
func (p Property) IsStructure() bool { return p.Struct != nil }

// IsBitFlags reports if the element type is BitFlags or TBitFlags.
func (p Property) IsBitFlags() bool {
	name := p.coreName()
	return name == bitFlagsType || name == typedBitFlagsType
}

// IsEnum reports if the element type is a reflected enum.
func (p Property) IsEnum() bool { return p.Enum != nil && !p.IsBitFlags() }

// IsTypedResourcePtr reports if the element type is a TResourcePtr whose
// resource type is known at compile time.
func (p Property) IsTypedResourcePtr() bool { return p.coreName() == typedResourcePtrType }

// IsRawResourcePtr reports if the element type is an untyped ResourcePtr.
func (p Property) IsRawResourcePtr() bool { return p.coreName() == resourcePtrType }

// IsResourcePtr reports if the element type is a resource pointer.
func (p Property) IsResourcePtr() bool { return p.IsTypedResourcePtr() || p.IsRawResourcePtr() }

// IsResourceLoadable reports if the resource lifecycle methods walk the
// property: either it is a resource pointer, or it is neither a core type
// nor an enum nor bitflags, in which case the nested type's own lifecycle
// methods are delegated to.
func (p Property) IsResourceLoadable() bool {
	if p.IsResourcePtr() {
		return true
	}
	return !p.IsCoreType() && !p.IsEnum() && !p.IsBitFlags()
}

// IsDevOnly reports if the property only exists with dev tools enabled.
func (p Property) IsDevOnly() bool { return p.DevOnly }

// NeedsDevGuard reports if the property requires its own dev-tools guard,
// i.e. it is dev-only inside a type that is not.
func (p Property) NeedsDevGuard(t *Type) bool {
	return p.DevOnly && (t == nil || !t.DevOnly)
}

// TemplateArgName returns the qualified template argument.
func (p Property) TemplateArgName() string {
	if p.IsBitFlags() && p.Enum != nil {
		return p.Enum.QualifiedName()
	}
	return p.TemplateArg
}

// ElementTypeName returns the C++ spelling of one element.
func (p Property) ElementTypeName() string {
	switch {
	case p.Struct != nil:
		return p.Struct.QualifiedName()
	case p.IsEnum():
		return p.Enum.QualifiedName()
	}
	name := p.coreName()
	if name == "" {
		return p.TypeName
	}
	ct := coreTypes[name]
	spelled := ct.name
	if !ct.builtin {
		spelled = p.root() + "::" + ct.name
	}
	if arg := p.TemplateArgName(); arg != "" {
		spelled += "<" + arg + ">"
	}
	return spelled
}

// DeclTypeName returns the C++ spelling of the whole member, without the
// extent of static arrays.
func (p Property) DeclTypeName() string {
	if p.IsDynamicArray() {
		return p.root() + "::TVector<" + p.ElementTypeName() + ">"
	}
	return p.ElementTypeName()
}

// ElementTypeID returns the type ID recorded in the property-info.
func (p Property) ElementTypeID() TypeID {
	switch {
	case p.Struct != nil:
		return p.Struct.ID
	case p.IsEnum():
		return p.Enum.ID
	}
	if name := p.coreName(); name != "" {
		ct := coreTypes[name]
		if ct.builtin {
			return TypeID(HashID(ct.name))
		}
		return TypeID(HashID(p.root() + "::" + ct.name))
	}
	return TypeID(HashID(p.TypeName))
}

// TemplateArgTypeID returns the type ID of the template argument, or zero.
func (p Property) TemplateArgTypeID() TypeID {
	if p.IsBitFlags() && p.Enum != nil {
		return p.Enum.ID
	}
	if p.TemplateArg == "" {
		return 0
	}
	return TypeID(HashID(p.TemplateArg))
}

// DefaultValue returns the runtime default of the property: integers are
// widened to int64, floats to float64, enum labels resolve to their value
// and missing defaults of core types become the zero value. Arrays yield
// the normalized element list, nested types yield nil.
func (p Property) DefaultValue() any {
	if p.IsArray() {
		list, ok := p.Default.([]any)
		if !ok {
			return nil
		}
		elems := make([]any, len(list))
		for i, v := range list {
			elems[i] = p.normalize(v)
		}
		return elems
	}
	return p.normalize(p.Default)
}

func (p Property) normalize(v any) any {
	if p.Struct != nil {
		return nil
	}
	if label, ok := v.(string); ok && p.IsEnum() {
		if c, ok := p.Enum.Constant(label); ok {
			return c.Value
		}
	}
	switch v := v.(type) {
	case nil:
		return p.ZeroValue()
	case int:
		if name := p.coreName(); name == "float" || name == "double" {
			return float64(v)
		}
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case []any:
		c := make([]any, len(v))
		for i := range v {
			c[i] = p.normalize(v[i])
		}
		return c
	default:
		return v
	}
}

// ZeroValue returns the value of a default-constructed element of a core
// type or enum, or nil if the runtime has no representation for it.
func (p Property) ZeroValue() any {
	switch name := p.coreName(); {
	case p.IsEnum():
		if len(p.Enum.Constants) > 0 {
			return p.Enum.Constants[0].Value
		}
		return int64(0)
	case p.IsBitFlags():
		return int64(0)
	case name == "bool":
		return false
	case isIntegral(name):
		return int64(0)
	case name == "float" || name == "double":
		return float64(0)
	case p.IsResourcePtr(), name == "String", name == "StringID", name == "ResourcePath", name == "DataPath":
		return ""
	default:
		return nil
	}
}
