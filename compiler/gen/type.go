package gen

import (
	"fmt"
	"strings"

	"github.com/BobbyAnguelov/reflector/compiler/load"
)

// TypeID is the stable numeric identifier of a reflected type or enum.
type TypeID uint32

// PropertyID is the stable numeric key of a property. It is the
// discriminant of every generated dispatch.
type PropertyID uint32

// ArrayKind classifies the container shape of a property.
type ArrayKind uint8

// Array kinds. Exactly one applies to each property.
const (
	ScalarProperty ArrayKind = iota
	StaticArrayProperty
	DynamicArrayProperty
)

// String implements fmt.Stringer.
func (k ArrayKind) String() string {
	switch k {
	case StaticArrayProperty:
		return "static"
	case DynamicArrayProperty:
		return "dynamic"
	default:
		return "scalar"
	}
}

// The following types and their exported methods used by the codegen
// to generate the assets.
type (
	// Type represents one reflected class or struct, its parents and
	// the properties it holds.
	Type struct {
		*Config
		schema *load.Type
		// Name holds the unqualified type name.
		Name string
		// Namespace holds the C++ namespace path, e.g. "EE::Render".
		Namespace string
		// ID is the stable type identifier.
		ID TypeID
		// Header is the include path of the declaring header.
		Header string
		// Abstract types get no instantiation code.
		Abstract bool
		// DevOnly types are wrapped entirely in the dev-tools guard.
		DevOnly bool
		// EntityComponent types get the Load/Unload/UpdateLoading methods.
		EntityComponent bool
		// Parents holds the resolved parent types, in declaration order.
		Parents []*Type
		// Properties holds the properties declared by this type, in
		// declaration order.
		Properties []*Property
		properties map[PropertyID]*Property
		// Presentation metadata, emitted for dev builds only.
		FriendlyName string
		Category     string
		Description  string
	}

	// Property holds the information of a reflected data member.
	Property struct {
		def *load.Property
		// Owner is the type declaring the property.
		Owner *Type
		// Name is the C++ member name.
		Name string
		// TypeName is the element type name as written in the header.
		TypeName string
		// TemplateArg is the template argument of templated element types
		// such as TResourcePtr or TBitFlags.
		TemplateArg string
		// ID is the property key.
		ID PropertyID
		// Array is the container shape.
		Array ArrayKind
		// ArraySize is the fixed element count of static arrays.
		ArraySize int
		// DevOnly properties only exist in dev-tools builds.
		DevOnly bool
		// Flags is carried verbatim to the property-info record.
		Flags uint32
		// Default is the default value used by the Go runtime.
		Default any
		// Presentation metadata, emitted for dev builds only.
		FriendlyName string
		Category     string
		Description  string
		// Struct is the nested reflected type, if any.
		Struct *Type
		// Enum is the referenced enum for enum properties, or the flag
		// domain of TBitFlags properties.
		Enum *Enum
	}

	// Enum holds the information of a reflected enumeration.
	Enum struct {
		*Config
		Name           string
		Namespace      string
		ID             TypeID
		Header         string
		UnderlyingType string
		DevOnly        bool
		Constants      []*EnumConstant
	}

	// EnumConstant is a single label/value pair.
	EnumConstant struct {
		// ID is the hashed label.
		ID          uint32
		Label       string
		Value       int64
		Description string
	}
)

// NewType creates a new type and its properties from the loaded schema.
// Parents and nested types are resolved by the graph.
func NewType(c *Config, schema *load.Type) (*Type, error) {
	if schema == nil || schema.Name == "" {
		return nil, NewSchemaError(Ref{}, "missing type name")
	}
	typ := &Type{
		Config:          c,
		schema:          schema,
		Name:            schema.Name,
		Namespace:       strings.Trim(schema.Namespace, ":"),
		ID:              TypeID(schema.ID),
		Header:          schema.Header,
		Abstract:        schema.Abstract,
		DevOnly:         schema.DevOnly,
		EntityComponent: schema.EntityComponent,
		FriendlyName:    schema.FriendlyName,
		Category:        schema.Category,
		Description:     schema.Description,
		properties:      make(map[PropertyID]*Property, len(schema.Properties)),
	}
	if typ.ID == 0 {
		typ.ID = TypeID(HashID(typ.QualifiedName()))
	}
	if typ.FriendlyName == "" {
		typ.FriendlyName = friendlyName(typ.Name)
	}
	typ.Category = titleCase(typ.Category)
	names := make(map[string]struct{}, len(schema.Properties))
	for _, p := range schema.Properties {
		if _, ok := names[p.Name]; ok {
			return nil, NewSchemaError(Ref{Type: typ.QualifiedName(), TypeID: typ.ID, Property: p.Name}, "property redeclared")
		}
		names[p.Name] = struct{}{}
		prop, err := newProperty(typ, p)
		if err != nil {
			return nil, err
		}
		if other, ok := typ.properties[prop.ID]; ok {
			return nil, NewValidationError(PropertyRef(prop), prop.ID,
				fmt.Sprintf("property ID collides with %q", other.Name))
		}
		typ.properties[prop.ID] = prop
		typ.Properties = append(typ.Properties, prop)
	}
	return typ, nil
}

func newProperty(owner *Type, def *load.Property) (*Property, error) {
	p := &Property{
		def:          def,
		Owner:        owner,
		Name:         def.Name,
		TypeName:     strings.TrimSpace(def.Type),
		TemplateArg:  strings.TrimSpace(def.TemplateArg),
		ID:           PropertyID(def.ID),
		ArraySize:    def.ArraySize,
		DevOnly:      def.DevOnly,
		Flags:        def.Flags,
		Default:      def.Default,
		FriendlyName: def.FriendlyName,
		Category:     titleCase(def.Category),
		Description:  def.Description,
	}
	if p.ID == 0 {
		p.ID = PropertyID(HashID(p.Name))
	}
	switch def.Array {
	case load.ArrayStatic:
		p.Array = StaticArrayProperty
		if p.ArraySize <= 0 {
			return nil, NewValidationError(PropertyRef(p), p.ArraySize, "static array requires a positive size")
		}
	case load.ArrayDynamic:
		p.Array = DynamicArrayProperty
	case load.ArrayNone:
		p.Array = ScalarProperty
	default:
		return nil, NewValidationError(PropertyRef(p), def.Array, "unknown array kind")
	}
	if p.FriendlyName == "" {
		p.FriendlyName = friendlyName(p.Name)
	}
	return p, nil
}

// NewEnum creates a new enum from the loaded schema.
func NewEnum(c *Config, schema *load.Enum) (*Enum, error) {
	if schema == nil || schema.Name == "" {
		return nil, NewSchemaError(Ref{}, "missing enum name")
	}
	e := &Enum{
		Config:         c,
		Name:           schema.Name,
		Namespace:      strings.Trim(schema.Namespace, ":"),
		ID:             TypeID(schema.ID),
		Header:         schema.Header,
		UnderlyingType: schema.UnderlyingType,
		DevOnly:        schema.DevOnly,
	}
	if e.ID == 0 {
		e.ID = TypeID(HashID(e.QualifiedName()))
	}
	if e.UnderlyingType == "" {
		e.UnderlyingType = "uint8_t"
	}
	if _, ok := coreTypes[e.UnderlyingType]; !ok || !isIntegral(e.UnderlyingType) {
		return nil, NewSchemaError(EnumRef(e), fmt.Sprintf("unsupported underlying type %q", e.UnderlyingType))
	}
	labels := make(map[string]struct{}, len(schema.Constants))
	for _, k := range schema.Constants {
		if _, ok := labels[k.Label]; ok {
			return nil, NewSchemaError(EnumRef(e), fmt.Sprintf("duplicate label %q", k.Label))
		}
		labels[k.Label] = struct{}{}
		e.Constants = append(e.Constants, &EnumConstant{
			ID:          HashID(k.Label),
			Label:       k.Label,
			Value:       k.Value,
			Description: k.Description,
		})
	}
	return e, nil
}

// QualifiedName returns the fully qualified C++ name of the type.
func (t Type) QualifiedName() string { return qualify(t.Namespace, t.Name) }

// String implements fmt.Stringer.
func (t Type) String() string { return t.QualifiedName() }

// FileName returns the name of the generated type-info unit.
func (t Type) FileName() string { return fileName(t.QualifiedName()) + ".generated.cpp" }

// AllProperties returns the properties of the parent chain followed by the
// type's own properties. The order is the property table order.
func (t *Type) AllProperties() []*Property {
	seen := make(map[*Type]struct{})
	var props []*Property
	var collect func(*Type)
	collect = func(typ *Type) {
		if _, ok := seen[typ]; ok {
			return
		}
		seen[typ] = struct{}{}
		for _, p := range typ.Parents {
			collect(p)
		}
		props = append(props, typ.Properties...)
	}
	collect(t)
	return props
}

// HasProperties reports if the type (or one of its parents) holds properties.
func (t *Type) HasProperties() bool { return len(t.AllProperties()) > 0 }

// Property returns the property with the given ID, searching the parent chain.
func (t *Type) Property(id PropertyID) (*Property, bool) {
	for _, p := range t.AllProperties() {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ArrayProperties returns the static and dynamic array properties.
func (t *Type) ArrayProperties() []*Property {
	return t.filter((*Property).IsArray)
}

// DynamicArrayProperties returns the dynamic array properties.
func (t *Type) DynamicArrayProperties() []*Property {
	return t.filter((*Property).IsDynamicArray)
}

// LoadableProperties returns the properties walked by the resource
// lifecycle methods.
func (t *Type) LoadableProperties() []*Property {
	return t.filter((*Property).IsResourceLoadable)
}

// ResourcePtrProperties returns the direct resource pointer properties.
func (t *Type) ResourcePtrProperties() []*Property {
	return t.filter((*Property).IsResourcePtr)
}

func (t *Type) filter(pred func(*Property) bool) []*Property {
	var props []*Property
	for _, p := range t.AllProperties() {
		if pred(p) {
			props = append(props, p)
		}
	}
	return props
}

// IsDerivedFrom reports if the type is other or inherits from it.
func (t *Type) IsDerivedFrom(other *Type) bool {
	if t == other {
		return true
	}
	for _, p := range t.Parents {
		if p.IsDerivedFrom(other) {
			return true
		}
	}
	return false
}

// QualifiedName returns the fully qualified C++ name of the enum.
func (e Enum) QualifiedName() string { return qualify(e.Namespace, e.Name) }

// FileName returns the name of the generated enum unit.
func (e Enum) FileName() string { return fileName(e.QualifiedName()) + "_enum.generated.cpp" }

// Constant returns the constant with the given label.
func (e Enum) Constant(label string) (*EnumConstant, bool) {
	for _, c := range e.Constants {
		if c.Label == label {
			return c, true
		}
	}
	return nil, false
}
