package reflector

// Object is a dynamic instance of a reflected type: a type tag and one
// value slot per property. Scalars hold the element value, arrays hold
// a []any of elements, nested types hold *Object and resource pointers
// hold *ResourcePtr.
type Object struct {
	typeInfo *TypeInfo
	values   map[PropertyID]any
}

// newObject builds an instance from the property defaults of t.
func newObject(t *TypeInfo) *Object {
	obj := &Object{typeInfo: t, values: make(map[PropertyID]any, len(t.Properties))}
	for _, p := range t.Properties {
		obj.values[p.ID] = defaultValue(p)
	}
	return obj
}

func defaultValue(p *PropertyInfo) any {
	switch p.Array {
	case StaticArray:
		elems := make([]any, p.ArraySize)
		for i := range elems {
			elems[i] = newElement(p, i)
		}
		return elems
	case DynamicArray:
		list, _ := p.Default.([]any)
		elems := make([]any, 0, len(list))
		for i := range list {
			elems = append(elems, newElement(p, i))
		}
		return elems
	default:
		return newElement(p, 0)
	}
}

// newElement returns the default value of the i-th element of p.
func newElement(p *PropertyInfo, i int) any {
	def := p.Default
	if p.IsArray() {
		def = nil
		if list, ok := p.Default.([]any); ok && i < len(list) {
			def = list[i]
		}
	}
	switch {
	case p.Struct != nil:
		if p.Struct.DefaultInstance != nil {
			return p.Struct.DefaultInstance.clone()
		}
		return newObject(p.Struct)
	case p.IsResourcePtr:
		id, _ := def.(string)
		return &ResourcePtr{ID: ResourceID(id), TypeID: p.ResourceType}
	default:
		if def == nil {
			return cloneValue(p.Zero)
		}
		return cloneValue(def)
	}
}

// Type returns the type-info of the instance.
func (o *Object) Type() *TypeInfo { return o.typeInfo }

// Get returns the value slot of a property.
func (o *Object) Get(id PropertyID) (any, bool) {
	v, ok := o.values[id]
	return v, ok
}

// Set replaces the value slot of a property. It reports false if the
// type has no such property.
func (o *Object) Set(id PropertyID, v any) bool {
	if _, ok := o.values[id]; !ok {
		return false
	}
	o.values[id] = v
	return true
}

// ResourcePtr returns the scalar resource pointer stored in a property.
func (o *Object) ResourcePtr(id PropertyID) (*ResourcePtr, bool) {
	ptr, ok := o.values[id].(*ResourcePtr)
	return ptr, ok
}

// Nested returns the scalar nested instance stored in a property.
func (o *Object) Nested(id PropertyID) (*Object, bool) {
	obj, ok := o.values[id].(*Object)
	return obj, ok
}

func (o *Object) slot(p *PropertyInfo) any { return o.values[p.ID] }

func (o *Object) setSlot(p *PropertyInfo, v any) { o.values[p.ID] = v }

func (o *Object) clone() *Object {
	c := &Object{typeInfo: o.typeInfo, values: make(map[PropertyID]any, len(o.values))}
	for id, v := range o.values {
		c.values[id] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case *Object:
		return v.clone()
	case *ResourcePtr:
		return v.clone()
	case []any:
		c := make([]any, len(v))
		for i := range v {
			c[i] = cloneValue(v[i])
		}
		return c
	case map[string]any:
		c := make(map[string]any, len(v))
		for k, e := range v {
			c[k] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}

// TryCast returns obj if its type is, or derives from, the given type.
func TryCast(obj *Object, id TypeID) (*Object, bool) {
	if obj == nil || !obj.typeInfo.IsDerivedFrom(id) {
		return nil, false
	}
	return obj, true
}
