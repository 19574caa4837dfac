package gen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BobbyAnguelov/reflector/compiler/load"
)

// Graph holds the resolved type database. Nodes are the reflected types
// and Enums the reflected enumerations, both in database order.
type Graph struct {
	*Config
	// Nodes are the reflected types of the database.
	Nodes []*Type
	// Enums are the reflected enumerations of the database.
	Enums []*Enum

	module string
	types  map[string]*Type
	enums  map[string]*Enum
}

// NewGraph creates a new graph for the given schema. Parents and element
// types are resolved by name, and the graph is validated as a whole.
func NewGraph(c *Config, schema *load.Schema) (g *Graph, err error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing codegen config")
	}
	if schema == nil {
		return nil, NewSchemaError(Ref{}, "missing type database")
	}
	g = &Graph{
		Config: c,
		module: schema.Module,
		types:  make(map[string]*Type, len(schema.Types)),
		enums:  make(map[string]*Enum, len(schema.Enums)),
	}
	ids := make(map[TypeID]string, len(schema.Types)+len(schema.Enums))
	claim := func(ref Ref) error {
		if other, ok := ids[ref.TypeID]; ok {
			return NewValidationError(ref, ref.TypeID, fmt.Sprintf("type ID collides with %q", other))
		}
		ids[ref.TypeID] = ref.Type
		return nil
	}
	for _, s := range schema.Enums {
		e, err := NewEnum(c, s)
		if err != nil {
			return nil, err
		}
		qn := e.QualifiedName()
		if _, ok := g.enums[qn]; ok {
			return nil, NewSchemaError(EnumRef(e), "enum redeclared")
		}
		if err := claim(EnumRef(e)); err != nil {
			return nil, err
		}
		g.enums[qn] = e
		g.Enums = append(g.Enums, e)
	}
	for _, s := range schema.Types {
		t, err := NewType(c, s)
		if err != nil {
			return nil, err
		}
		qn := t.QualifiedName()
		if _, ok := g.types[qn]; ok {
			return nil, NewSchemaError(TypeRef(t), "type redeclared")
		}
		if _, ok := g.enums[qn]; ok {
			return nil, NewSchemaError(TypeRef(t), "type name collides with an enum")
		}
		if err := claim(TypeRef(t)); err != nil {
			return nil, err
		}
		g.types[qn] = t
		g.Nodes = append(g.Nodes, t)
	}
	if err := g.checkUnits(); err != nil {
		return nil, err
	}
	for _, t := range g.Nodes {
		if err := g.resolveParents(t); err != nil {
			return nil, err
		}
	}
	if err := g.checkCycles(); err != nil {
		return nil, err
	}
	var errs []error
	for _, t := range g.Nodes {
		for _, p := range t.Properties {
			if err := g.resolveProperty(t, p); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, t := range g.Nodes {
		errs = append(errs, g.checkType(t)...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// ModuleName returns the engine module registering the graph types.
func (g *Graph) ModuleName() string {
	switch {
	case g.Config.Module != "":
		return g.Config.Module
	case g.module != "":
		return g.module
	default:
		return DefaultModule
	}
}

// Type returns the type with the given qualified name.
func (g *Graph) Type(qn string) (*Type, bool) {
	t, ok := g.types[strings.Trim(qn, ":")]
	return t, ok
}

// Enum returns the enum with the given qualified name.
func (g *Graph) Enum(qn string) (*Enum, bool) {
	e, ok := g.enums[strings.Trim(qn, ":")]
	return e, ok
}

func (g *Graph) resolveParents(t *Type) error {
	for _, name := range t.schema.Parents {
		parent, ok := lookup(g.types, t.Namespace, name)
		if !ok {
			return NewInheritanceError(t.QualifiedName(), name, "unknown parent type")
		}
		if parent == t {
			return NewInheritanceError(t.QualifiedName(), name, "type cannot derive from itself")
		}
		for _, p := range t.Parents {
			if p == parent {
				return NewInheritanceError(t.QualifiedName(), name, "parent listed twice")
			}
		}
		t.Parents = append(t.Parents, parent)
	}
	return nil
}

// checkCycles reports inheritance cycles.
func (g *Graph) checkCycles() error {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[*Type]int, len(g.Nodes))
	var visit func(*Type, []string) error
	visit = func(t *Type, path []string) error {
		switch state[t] {
		case done:
			return nil
		case visiting:
			return NewCycleError(append(path, t.QualifiedName()))
		}
		state[t] = visiting
		for _, p := range t.Parents {
			if err := visit(p, append(path, t.QualifiedName())); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}
	for _, t := range g.Nodes {
		if err := visit(t, nil); err != nil {
			return err
		}
	}
	return nil
}

// resolveProperty binds the element type of p to a nested type or enum.
func (g *Graph) resolveProperty(t *Type, p *Property) error {
	ref := PropertyRef(p)
	switch {
	case p.IsBitFlags():
		if p.coreName() == bitFlagsType {
			return nil
		}
		if p.TemplateArg == "" {
			return NewSchemaError(ref, "TBitFlags requires an enum template argument")
		}
		e, ok := lookup(g.enums, t.Namespace, p.TemplateArg)
		if !ok {
			return NewSchemaError(ref, fmt.Sprintf("unknown flag enum %q", p.TemplateArg))
		}
		p.Enum = e
	case p.IsTypedResourcePtr():
		if p.TemplateArg == "" {
			return NewSchemaError(ref, "TResourcePtr requires a resource template argument")
		}
	case p.IsCoreType():
	default:
		if nested, ok := lookup(g.types, t.Namespace, p.TypeName); ok {
			if nested == t && !p.IsDynamicArray() {
				return NewSchemaError(ref, "type cannot contain itself")
			}
			if nested.DevOnly && !p.DevOnly && !t.DevOnly {
				return NewSchemaError(ref, fmt.Sprintf("dev-only type %q used by a shipping property", nested.QualifiedName()))
			}
			p.Struct = nested
			return nil
		}
		if e, ok := lookup(g.enums, t.Namespace, p.TypeName); ok {
			p.Enum = e
			return nil
		}
		return NewSchemaError(ref, fmt.Sprintf("unknown element type %q", p.TypeName))
	}
	return nil
}

// checkUnits rejects types, enums and the module unit that would be written
// to the same output file.
func (g *Graph) checkUnits() error {
	var (
		errs  []error
		units = make(map[string]string, len(g.Nodes)+len(g.Enums)+1)
	)
	claim := func(ref Ref, owner, file string) {
		if other, ok := units[file]; ok {
			errs = append(errs, NewValidationError(ref, file, fmt.Sprintf("output file collides with %s", other)))
			return
		}
		units[file] = owner
	}
	for _, e := range g.Enums {
		claim(EnumRef(e), e.QualifiedName(), e.FileName())
	}
	for _, t := range g.Nodes {
		claim(TypeRef(t), t.QualifiedName(), t.FileName())
	}
	if on, _ := g.FeatureEnabled(FeatureModuleUnit.Name); on {
		claim(Ref{Type: g.ModuleName()}, "module "+g.ModuleName(), g.ModuleFileName())
	}
	return errors.Join(errs...)
}

// checkType validates a resolved type.
func (g *Graph) checkType(t *Type) []error {
	var errs []error
	qn := t.QualifiedName()
	for _, parent := range t.Parents {
		if parent.DevOnly && !t.DevOnly {
			errs = append(errs, NewInheritanceError(qn, parent.QualifiedName(), "shipping type derives from a dev-only type"))
		}
	}
	ids := make(map[PropertyID]*Property)
	for _, p := range t.AllProperties() {
		if other, ok := ids[p.ID]; ok && other != p {
			errs = append(errs, NewValidationError(PropertyRef(p), p.ID,
				fmt.Sprintf("property ID collides with %s::%s", other.Owner.QualifiedName(), other.Name)))
			continue
		}
		ids[p.ID] = p
	}
	return errs
}

// Sorted returns the types in registration order: parents and nested
// structures before the types using them, and by qualified name otherwise.
func (g *Graph) Sorted() []*Type {
	nodes := sortedTypes(append([]*Type(nil), g.Nodes...))
	var (
		sorted  = make([]*Type, 0, len(nodes))
		visited = make(map[*Type]bool, len(nodes))
		visit   func(*Type)
	)
	visit = func(t *Type) {
		if _, ok := visited[t]; ok {
			return
		}
		// Marked before the dependencies to tolerate structures that hold
		// arrays of their own type.
		visited[t] = false
		for _, p := range t.Parents {
			visit(p)
		}
		for _, p := range t.Properties {
			if p.Struct != nil {
				visit(p.Struct)
			}
		}
		visited[t] = true
		sorted = append(sorted, t)
	}
	for _, t := range nodes {
		visit(t)
	}
	return sorted
}

// SortedEnums returns the enums ordered by qualified name.
func (g *Graph) SortedEnums() []*Enum {
	enums := append([]*Enum(nil), g.Enums...)
	sort.SliceStable(enums, func(i, j int) bool {
		return enums[i].QualifiedName() < enums[j].QualifiedName()
	})
	return enums
}

// lookup resolves name the way C++ does from inside namespace ns: the
// innermost enclosing namespace wins, and qualified names are also tried
// as written.
func lookup[T any](m map[string]T, ns, name string) (T, bool) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "::") {
		v, ok := m[name[2:]]
		return v, ok
	}
	for ns != "" {
		if v, ok := m[ns+"::"+name]; ok {
			return v, true
		}
		ns, _ = splitQualified(ns)
	}
	v, ok := m[name]
	return v, ok
}
