package reflector

import (
	"reflect"
)

type (
	// TypeID is the stable identifier of a reflected type.
	TypeID uint32

	// PropertyID is the key of every property dispatch.
	PropertyID uint32
)

// InvalidIndex selects the whole property in IsPropertyValueEqual.
const InvalidIndex = -1

// ArrayKind classifies the container shape of a property.
type ArrayKind uint8

// Array kinds.
const (
	Scalar ArrayKind = iota
	StaticArray
	DynamicArray
)

// PropertyInfo is the runtime record of a reflected data member.
type PropertyInfo struct {
	ID                     PropertyID
	Name                   string
	TypeID                 TypeID
	TemplateArgumentTypeID TypeID
	// ParentTypeID is the type declaring the property.
	ParentTypeID TypeID
	Array        ArrayKind
	ArraySize    int
	Flags        uint32
	DevOnly      bool
	// Struct is the nested reflected type, nil for core types and enums.
	Struct *TypeInfo
	// ResourceType is non-zero for typed resource pointers.
	ResourceType  ResourceTypeID
	IsResourcePtr bool
	// Default is the scalar default value, or the element list of arrays.
	Default any
	// Zero is the value of a default-constructed element.
	Zero any

	FriendlyName string
	Category     string
	Description  string
}

// IsArray reports if the property holds a sequence.
func (p *PropertyInfo) IsArray() bool { return p.Array != Scalar }

// IsStaticArray reports if the property holds a fixed-size sequence.
func (p *PropertyInfo) IsStaticArray() bool { return p.Array == StaticArray }

// IsDynamicArray reports if the property holds a growable sequence.
func (p *PropertyInfo) IsDynamicArray() bool { return p.Array == DynamicArray }

// IsStructure reports if the element type is a reflected type.
func (p *PropertyInfo) IsStructure() bool { return p.Struct != nil }

func (p *PropertyInfo) isResourceLoadable() bool { return p.IsResourcePtr || p.Struct != nil }

// TypeInfo is the runtime record of a reflected type. Its operations
// dispatch on PropertyID the way the generated C++ type-info does.
type TypeInfo struct {
	ID              TypeID
	Name            string
	Abstract        bool
	DevOnly         bool
	EntityComponent bool
	Parents         []*TypeInfo
	// Properties holds inherited properties first, then declared ones.
	Properties []*PropertyInfo
	// DefaultInstance is owned by the registry, nil for abstract types.
	DefaultInstance *Object

	FriendlyName string
	Category     string
	Description  string

	index map[PropertyID]int
}

// Property returns the property with the given ID.
func (t *TypeInfo) Property(id PropertyID) (*PropertyInfo, bool) {
	if t.index == nil {
		t.buildIndex()
	}
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.Properties[i], true
}

func (t *TypeInfo) buildIndex() {
	t.index = make(map[PropertyID]int, len(t.Properties))
	for i, p := range t.Properties {
		t.index[p.ID] = i
	}
}

// IsDerivedFrom reports if t is other or inherits from it.
func (t *TypeInfo) IsDerivedFrom(other TypeID) bool {
	if t.ID == other {
		return true
	}
	for _, p := range t.Parents {
		if p.IsDerivedFrom(other) {
			return true
		}
	}
	return false
}

// CreateType returns a new instance initialized from the default instance.
func (t *TypeInfo) CreateType() *Object {
	if t.Abstract {
		panic(&AbstractTypeError{Type: t.Name})
	}
	if t.DefaultInstance != nil {
		return t.DefaultInstance.clone()
	}
	return newObject(t)
}

// CreateTypeInPlace reinitializes obj as a fresh instance of t.
func (t *TypeInfo) CreateTypeInPlace(obj *Object) {
	if obj == nil {
		panic("reflector: CreateTypeInPlace on nil object")
	}
	fresh := t.CreateType()
	*obj = *fresh
}

// arrayValue returns the sequence stored in an array property.
func (t *TypeInfo) arrayValue(obj *Object, op string, id PropertyID) (*PropertyInfo, []any) {
	p, ok := t.Property(id)
	if !ok || !p.IsArray() {
		unreachable(t, op, id)
	}
	return p, obj.slot(p).([]any)
}

// ArrayElement returns a pointer to the element at arrayIdx. Dynamic
// arrays grow to arrayIdx+1 elements first.
func (t *TypeInfo) ArrayElement(obj *Object, arrayID PropertyID, arrayIdx int) *any {
	p, elems := t.arrayValue(obj, "ArrayElement", arrayID)
	if p.IsDynamicArray() && arrayIdx >= len(elems) {
		for len(elems) <= arrayIdx {
			elems = append(elems, newElement(p, len(elems)))
		}
		obj.setSlot(p, elems)
	}
	return &elems[arrayIdx]
}

// ArraySize returns the element count of an array property.
func (t *TypeInfo) ArraySize(obj *Object, arrayID PropertyID) int {
	p, elems := t.arrayValue(obj, "ArraySize", arrayID)
	if p.IsStaticArray() {
		return p.ArraySize
	}
	return len(elems)
}

// ArrayElementTypeID returns the element type of an array property.
func (t *TypeInfo) ArrayElementTypeID(arrayID PropertyID) TypeID {
	p, ok := t.Property(arrayID)
	if !ok || !p.IsArray() {
		unreachable(t, "ArrayElementTypeID", arrayID)
	}
	return p.TypeID
}

// ClearArray removes all elements of a dynamic array.
func (t *TypeInfo) ClearArray(obj *Object, arrayID PropertyID) {
	p, ok := t.Property(arrayID)
	if !ok || !p.IsDynamicArray() {
		unreachable(t, "ClearArray", arrayID)
	}
	obj.setSlot(p, []any{})
}

// AddArrayElement appends a default element to a dynamic array.
func (t *TypeInfo) AddArrayElement(obj *Object, arrayID PropertyID) {
	p, ok := t.Property(arrayID)
	if !ok || !p.IsDynamicArray() {
		unreachable(t, "AddArrayElement", arrayID)
	}
	elems := obj.slot(p).([]any)
	obj.setSlot(p, append(elems, newElement(p, len(elems))))
}

// RemoveArrayElement erases the element at arrayIdx of a dynamic array.
func (t *TypeInfo) RemoveArrayElement(obj *Object, arrayID PropertyID, arrayIdx int) {
	p, ok := t.Property(arrayID)
	if !ok || !p.IsDynamicArray() {
		unreachable(t, "RemoveArrayElement", arrayID)
	}
	elems := obj.slot(p).([]any)
	obj.setSlot(p, append(elems[:arrayIdx:arrayIdx], elems[arrayIdx+1:]...))
}

// AreAllPropertyValuesEqual compares every property of two instances.
func (t *TypeInfo) AreAllPropertyValuesEqual(obj, other *Object) bool {
	for _, p := range t.Properties {
		if !t.IsPropertyValueEqual(obj, other, p.ID, InvalidIndex) {
			return false
		}
	}
	return true
}

// IsPropertyValueEqual compares one property, or one array element when
// arrayIdx is not InvalidIndex. Only the bounds of other are checked.
// Unknown property IDs compare unequal.
func (t *TypeInfo) IsPropertyValueEqual(obj, other *Object, id PropertyID, arrayIdx int) bool {
	p, ok := t.Property(id)
	if !ok {
		return false
	}
	if !p.IsArray() {
		return elementEqual(p, obj.slot(p), other.slot(p))
	}

	elems, otherElems := obj.slot(p).([]any), other.slot(p).([]any)
	if arrayIdx != InvalidIndex {
		if uint(arrayIdx) >= uint(len(otherElems)) {
			return false
		}
		return elementEqual(p, elems[arrayIdx], otherElems[arrayIdx])
	}

	if p.IsDynamicArray() && len(elems) != len(otherElems) {
		return false
	}
	for i := range elems {
		if !elementEqual(p, elems[i], otherElems[i]) {
			return false
		}
	}
	return true
}

func elementEqual(p *PropertyInfo, a, b any) bool {
	switch {
	case p.Struct != nil:
		return p.Struct.AreAllPropertyValuesEqual(a.(*Object), b.(*Object))
	case p.IsResourcePtr:
		return a.(*ResourcePtr).ID == b.(*ResourcePtr).ID
	default:
		return reflect.DeepEqual(a, b)
	}
}

// ResetToDefault restores one property from the default instance. Static
// arrays are restored element by element. Unknown IDs are ignored.
func (t *TypeInfo) ResetToDefault(obj *Object, id PropertyID) {
	if t.Abstract {
		panic(&AbstractTypeError{Type: t.Name})
	}
	p, ok := t.Property(id)
	if !ok {
		return
	}
	def := t.DefaultInstance
	if def == nil {
		def = newObject(t)
	}
	if p.IsStaticArray() {
		elems, defElems := obj.slot(p).([]any), def.slot(p).([]any)
		for i := range defElems {
			elems[i] = cloneValue(defElems[i])
		}
		return
	}
	obj.setSlot(p, cloneValue(def.slot(p)))
}

// resourceVisitor is applied to every resource pointer or nested
// instance reachable from an object. Load, unload and both status
// queries share the walk.
type resourceVisitor struct {
	pointer func(ptr *ResourcePtr) bool
	nested  func(t *TypeInfo, obj *Object) bool
}

// walkResources visits resource-loadable properties until a visitor
// returns false.
func (t *TypeInfo) walkResources(obj *Object, v resourceVisitor) {
	for _, p := range t.Properties {
		if !p.isResourceLoadable() {
			continue
		}
		values := []any{obj.slot(p)}
		if p.IsArray() {
			values = obj.slot(p).([]any)
		}
		for _, value := range values {
			var ok bool
			if p.IsResourcePtr {
				ok = v.pointer(value.(*ResourcePtr))
			} else {
				ok = v.nested(p.Struct, value.(*Object))
			}
			if !ok {
				return
			}
		}
	}
}

// LoadResources requests every set resource pointer held by obj.
func (t *TypeInfo) LoadResources(rs ResourceSystem, requester RequesterID, obj *Object) {
	t.walkResources(obj, resourceVisitor{
		pointer: func(ptr *ResourcePtr) bool {
			if ptr.IsSet() {
				rs.LoadResource(ptr, requester)
			}
			return true
		},
		nested: func(n *TypeInfo, o *Object) bool {
			n.LoadResources(rs, requester, o)
			return true
		},
	})
}

// UnloadResources releases every set resource pointer held by obj.
func (t *TypeInfo) UnloadResources(rs ResourceSystem, requester RequesterID, obj *Object) {
	t.walkResources(obj, resourceVisitor{
		pointer: func(ptr *ResourcePtr) bool {
			if ptr.IsSet() {
				rs.UnloadResource(ptr, requester)
			}
			return true
		},
		nested: func(n *TypeInfo, o *Object) bool {
			n.UnloadResources(rs, requester, o)
			return true
		},
	})
}

// ResourceLoadingStatus aggregates the loading state of obj. Loading wins
// and returns early, a failure is sticky, otherwise the result is Loaded.
func (t *TypeInfo) ResourceLoadingStatus(obj *Object) LoadingStatus {
	status := Loaded
	t.walkResources(obj, resourceVisitor{
		pointer: func(ptr *ResourcePtr) bool {
			if ptr.HasLoadingFailed() {
				status = Failed
			} else if ptr.IsSet() && !ptr.IsLoaded() {
				status = Loading
				return false
			}
			return true
		},
		nested: func(n *TypeInfo, o *Object) bool {
			switch n.ResourceLoadingStatus(o) {
			case Loading:
				status = Loading
				return false
			case Failed:
				status = Failed
			}
			return true
		},
	})
	return status
}

// ResourceUnloadingStatus returns Unloading while any resource held by obj
// is not yet released, Unloaded otherwise. It panics with a
// *LoadInFlightError if a resource is still loading.
func (t *TypeInfo) ResourceUnloadingStatus(obj *Object) LoadingStatus {
	status := Unloaded
	t.walkResources(obj, resourceVisitor{
		pointer: func(ptr *ResourcePtr) bool {
			if ptr.IsLoading() {
				panic(&LoadInFlightError{Type: t.Name, Resource: ptr.ID})
			}
			if !ptr.IsUnloaded() {
				status = Unloading
			}
			return status == Unloaded
		},
		nested: func(n *TypeInfo, o *Object) bool {
			if n.ResourceUnloadingStatus(o) == Unloading {
				status = Unloading
			}
			return status == Unloaded
		},
	})
	return status
}

// ExpectedResourceType returns the resource type of a resource pointer
// property, zero for raw pointers.
func (t *TypeInfo) ExpectedResourceType(id PropertyID) ResourceTypeID {
	p, ok := t.Property(id)
	if !ok || !p.IsResourcePtr {
		unreachable(t, "ExpectedResourceType", id)
	}
	return p.ResourceType
}
