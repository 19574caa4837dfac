package reflector

import (
	"fmt"
	"sync"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// EnumConstant is a single label/value pair of an enumeration.
type EnumConstant struct {
	ID    uint32
	Label string
	Value int64
}

// EnumInfo is the runtime record of a reflected enumeration.
type EnumInfo struct {
	ID             TypeID
	Name           string
	UnderlyingType string
	Constants      []EnumConstant
}

// Value returns the value of the constant with the given label.
func (e *EnumInfo) Value(label string) (int64, bool) {
	for _, c := range e.Constants {
		if c.Label == label {
			return c.Value, true
		}
	}
	return 0, false
}

// Label returns the label of the first constant with the given value.
func (e *EnumInfo) Label(value int64) (string, bool) {
	for _, c := range e.Constants {
		if c.Value == value {
			return c.Label, true
		}
	}
	return "", false
}

// Registry indexes the registered type-info records by type ID. It owns
// the default instance of every concrete registered type.
type Registry struct {
	mu        sync.RWMutex
	types     map[TypeID]*TypeInfo
	order     []TypeID
	enums     map[TypeID]*EnumInfo
	enumOrder []TypeID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[TypeID]*TypeInfo),
		enums: make(map[TypeID]*EnumInfo),
	}
}

// Register adds a type-info record. Every parent must be registered
// first. Concrete types get their default instance here.
func (r *Registry) Register(t *TypeInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t.ID]; ok {
		return NewRegistrationError(t.Name, "duplicate type ID", ErrAlreadyRegistered)
	}
	for _, p := range t.Parents {
		if r.types[p.ID] != p {
			return NewRegistrationError(t.Name, "parent not registered", NewNotRegisteredError(p.ID, p.Name))
		}
	}
	t.buildIndex()
	if !t.Abstract {
		t.DefaultInstance = newObject(t)
	}
	r.types[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Unregister removes a type-info record and frees its default instance.
// Types still inheriting from it must be unregistered first.
func (r *Registry) Unregister(id TypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[id]
	if !ok {
		return NewNotRegisteredError(id, "")
	}
	for _, other := range r.types {
		for _, p := range other.Parents {
			if p.ID == id {
				return NewRegistrationError(t.Name, fmt.Sprintf("still a parent of %s", other.Name), nil)
			}
		}
	}
	t.DefaultInstance = nil
	delete(r.types, id)
	r.order = remove(r.order, id)
	return nil
}

// RegisterEnum adds an enumeration record.
func (r *Registry) RegisterEnum(e *EnumInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[e.ID]; ok {
		return NewRegistrationError(e.Name, "duplicate enum ID", ErrAlreadyRegistered)
	}
	r.enums[e.ID] = e
	r.enumOrder = append(r.enumOrder, e.ID)
	return nil
}

// UnregisterEnum removes an enumeration record.
func (r *Registry) UnregisterEnum(id TypeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[id]; !ok {
		return NewNotRegisteredError(id, "")
	}
	delete(r.enums, id)
	r.enumOrder = remove(r.enumOrder, id)
	return nil
}

// RegisterGraph registers the enums of a generation graph, then its types
// with every parent and nested type before the types using it. On failure
// the records registered so far are removed again.
func (r *Registry) RegisterGraph(g *gen.Graph) (err error) {
	var enums, types []TypeID
	defer func() {
		if err != nil {
			r.rollback(types, enums)
		}
	}()
	for _, e := range g.SortedEnums() {
		info := newEnumInfo(e)
		if err := r.RegisterEnum(info); err != nil {
			return err
		}
		enums = append(enums, info.ID)
	}
	var (
		sorted = g.Sorted()
		infos  = make(map[gen.TypeID]*TypeInfo, len(sorted))
	)
	for _, t := range sorted {
		info := newTypeInfo(t, infos)
		if err := r.Register(info); err != nil {
			return err
		}
		infos[t.ID] = info
		types = append(types, info.ID)
	}
	// Mutually nested types only meet through dynamic arrays, which are
	// empty by default, so binding them after registration is enough.
	for _, t := range sorted {
		props := infos[t.ID].Properties
		for i, p := range t.AllProperties() {
			if p.Struct != nil && props[i].Struct == nil {
				props[i].Struct = infos[p.Struct.ID]
			}
		}
	}
	return nil
}

// rollback unregisters the given types, then enums, in reverse order.
func (r *Registry) rollback(types, enums []TypeID) {
	for i := len(types) - 1; i >= 0; i-- {
		_ = r.Unregister(types[i])
	}
	for i := len(enums) - 1; i >= 0; i-- {
		_ = r.UnregisterEnum(enums[i])
	}
}

// UnregisterAll removes every record in reverse registration order.
func (r *Registry) UnregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		r.types[r.order[i]].DefaultInstance = nil
		delete(r.types, r.order[i])
	}
	for _, id := range r.enumOrder {
		delete(r.enums, id)
	}
	r.order, r.enumOrder = nil, nil
}

// Lookup returns the type-info of the given type ID.
func (r *Registry) Lookup(id TypeID) (*TypeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Get is like Lookup but returns a NotRegisteredError for unknown IDs.
func (r *Registry) Get(id TypeID) (*TypeInfo, error) {
	if t, ok := r.Lookup(id); ok {
		return t, nil
	}
	return nil, NewNotRegisteredError(id, "")
}

// LookupEnum returns the enum-info of the given type ID.
func (r *Registry) LookupEnum(id TypeID) (*EnumInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enums[id]
	return e, ok
}

// Types returns the registered type-info records in registration order.
func (r *Registry) Types() []*TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]*TypeInfo, len(r.order))
	for i, id := range r.order {
		types[i] = r.types[id]
	}
	return types
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// IsDerivedFrom reports if the type id is, or inherits from, parent.
// Unregistered types derive from nothing.
func (r *Registry) IsDerivedFrom(id, parent TypeID) bool {
	t, ok := r.Lookup(id)
	return ok && t.IsDerivedFrom(parent)
}

func remove(ids []TypeID, id TypeID) []TypeID {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func newEnumInfo(e *gen.Enum) *EnumInfo {
	info := &EnumInfo{ID: TypeID(e.ID), Name: e.QualifiedName(), UnderlyingType: e.UnderlyingType}
	for _, c := range e.Constants {
		info.Constants = append(info.Constants, EnumConstant{ID: c.ID, Label: c.Label, Value: c.Value})
	}
	return info
}

// newTypeInfo converts a graph node. Parents and nested types are taken
// from infos, which holds every type sorted before t.
func newTypeInfo(t *gen.Type, infos map[gen.TypeID]*TypeInfo) *TypeInfo {
	info := &TypeInfo{
		ID:              TypeID(t.ID),
		Name:            t.QualifiedName(),
		Abstract:        t.Abstract,
		DevOnly:         t.DevOnly,
		EntityComponent: t.EntityComponent,
		FriendlyName:    t.FriendlyName,
		Category:        t.Category,
		Description:     t.Description,
	}
	for _, p := range t.Parents {
		info.Parents = append(info.Parents, infos[p.ID])
	}
	for _, p := range t.AllProperties() {
		prop := &PropertyInfo{
			ID:                     PropertyID(p.ID),
			Name:                   p.Name,
			TypeID:                 TypeID(p.ElementTypeID()),
			TemplateArgumentTypeID: TypeID(p.TemplateArgTypeID()),
			ParentTypeID:           TypeID(p.Owner.ID),
			Array:                  ArrayKind(p.Array),
			ArraySize:              p.ArraySize,
			Flags:                  p.Flags,
			DevOnly:                p.DevOnly,
			IsResourcePtr:          p.IsResourcePtr(),
			Default:                p.DefaultValue(),
			Zero:                   p.ZeroValue(),
			FriendlyName:           p.FriendlyName,
			Category:               p.Category,
			Description:            p.Description,
		}
		if p.IsTypedResourcePtr() {
			prop.ResourceType = ResourceTypeID(p.TemplateArgTypeID())
		}
		if p.Struct != nil {
			prop.Struct = infos[p.Struct.ID]
			if p.Struct == t {
				prop.Struct = info
			}
		}
		info.Properties = append(info.Properties, prop)
	}
	return info
}
