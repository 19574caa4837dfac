package cpp

import (
	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// emitArrayAccessors emits the array manipulation methods. Dispatching an
// ID that names no array property is unreachable.
func (u *unit) emitArrayAccessors() {
	arrays := u.t.ArrayProperties()
	dynamic := u.t.DynamicArrayProperties()

	u.method("uint8_t* GetArrayElementDataPtr( IReflectedType* pType, uint32_t arrayID, size_t arrayIdx ) const", func() {
		if len(arrays) > 0 {
			u.downcast("pActualType", "pType")
			u.Line("EE_ASSERT( pActualType != nullptr );")
			u.Blank()
		}
		for _, p := range arrays {
			u.dispatch("arrayID", p, func() {
				if p.IsDynamicArray() {
					u.Line("if ( ( arrayIdx + 1 ) > %s.size() )", field("pActualType", p))
					u.Open()
					u.Line("%s.resize( arrayIdx + 1 );", field("pActualType", p))
					u.Close("")
					u.Blank()
				}
				u.Line("return (uint8_t*) &%s;", index("pActualType", p, "arrayIdx"))
			})
		}
		u.unreachable("nullptr")
	})

	u.method("size_t GetArraySize( IReflectedType const* pTypeInstance, uint32_t arrayID ) const", func() {
		if len(arrays) > 0 {
			u.downcast("pActualType", "pTypeInstance")
			u.Line("EE_ASSERT( pActualType != nullptr );")
			u.Blank()
		}
		for _, p := range arrays {
			u.dispatch("arrayID", p, func() {
				if p.IsDynamicArray() {
					u.Line("return %s.size();", field("pActualType", p))
					return
				}
				u.Line("return %d;", p.ArraySize)
			})
		}
		u.unreachable("0")
	})

	u.method("size_t GetArrayElementSize( uint32_t arrayID ) const", func() {
		for _, p := range arrays {
			u.dispatch("arrayID", p, func() {
				u.Line("return sizeof( %s );", p.ElementTypeName())
			})
		}
		u.unreachable("0")
	})

	u.dynamicArrayMethod("void ClearArray( IReflectedType* pTypeInstance, uint32_t arrayID ) const", dynamic, func(p *gen.Property) {
		u.Line("%s.clear();", field("pActualType", p))
	})
	u.dynamicArrayMethod("void AddArrayElement( IReflectedType* pTypeInstance, uint32_t arrayID ) const", dynamic, func(p *gen.Property) {
		u.Line("%s.emplace_back();", field("pActualType", p))
	})
	u.dynamicArrayMethod("void RemoveArrayElement( IReflectedType* pTypeInstance, uint32_t arrayID, size_t arrayIdx ) const", dynamic, func(p *gen.Property) {
		u.Line("%s.erase( %s.begin() + arrayIdx );", field("pActualType", p), field("pActualType", p))
	})
}

// dynamicArrayMethod emits a mutator that only applies to dynamic arrays.
func (u *unit) dynamicArrayMethod(signature string, dynamic []*gen.Property, op func(*gen.Property)) {
	u.method(signature, func() {
		if len(dynamic) > 0 {
			u.downcast("pActualType", "pTypeInstance")
			u.Line("EE_ASSERT( pActualType != nullptr );")
			u.Blank()
		}
		for _, p := range dynamic {
			u.dispatch("arrayID", p, func() {
				op(p)
				u.Line("return;")
			})
		}
		u.unreachable("")
	})
}
