package cpp

import (
	"fmt"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// emitEquality emits AreAllPropertyValuesEqual and IsPropertyValueEqual.
// Unknown property IDs compare unequal.
func (u *unit) emitEquality() {
	props := u.t.AllProperties()

	u.method("bool AreAllPropertyValuesEqual( IReflectedType const* pTypeInstance, IReflectedType const* pOtherTypeInstance ) const", func() {
		if len(props) > 0 {
			u.downcast("pType", "pTypeInstance")
			u.downcast("pOtherType", "pOtherTypeInstance")
			u.Line("EE_ASSERT( pType != nullptr && pOtherType != nullptr );")
			u.Blank()
		}
		for _, p := range props {
			u.property(p, func() {
				u.Line("if ( !IsPropertyValueEqual( pType, pOtherType, %s ) ) // %s", hexID(uint32(p.ID)), p.Name)
				u.Open()
				u.Line("return false;")
				u.Close("")
				u.Blank()
			})
		}
		u.Line("return true;")
	})

	u.method("bool IsPropertyValueEqual( IReflectedType const* pTypeInstance, IReflectedType const* pOtherTypeInstance, uint32_t propertyID, int32_t arrayIdx = InvalidIndex ) const", func() {
		if len(props) > 0 {
			u.downcast("pType", "pTypeInstance")
			u.downcast("pOtherType", "pOtherTypeInstance")
			u.Line("EE_ASSERT( pType != nullptr && pOtherType != nullptr );")
			u.Blank()
		}
		for _, p := range props {
			u.dispatch("propertyID", p, func() { u.emitPropertyEquality(p) })
		}
		u.Line("return false;")
	})
}

func (u *unit) emitPropertyEquality(p *gen.Property) {
	if !p.IsArray() {
		u.Line("return %s;", elementEqual(p, field("pType", p), field("pOtherType", p)))
		return
	}
	u.Line("// Compare a single element")
	u.Line("if ( arrayIdx != InvalidIndex )")
	u.Open()
	if p.IsDynamicArray() {
		// Only the other operand is bounds-checked, the caller validates
		// the index against the primary one.
		u.Line("if ( size_t( arrayIdx ) >= %s.size() )", field("pOtherType", p))
		u.Open()
		u.Line("return false;")
		u.Close("")
		u.Blank()
	}
	u.Line("return %s;", elementEqual(p, index("pType", p, "arrayIdx"), index("pOtherType", p, "arrayIdx")))
	u.Close("")
	u.Blank()

	u.Line("// Compare the whole array")
	count := fmt.Sprint(p.ArraySize)
	if p.IsDynamicArray() {
		u.Line("if ( %s.size() != %s.size() )", field("pType", p), field("pOtherType", p))
		u.Open()
		u.Line("return false;")
		u.Close("")
		u.Blank()
		count = field("pType", p) + ".size()"
	}
	u.Line("for ( size_t i = 0; i < %s; i++ )", count)
	u.Open()
	u.Line("if ( !( %s ) )", elementEqual(p, index("pType", p, "i"), index("pOtherType", p, "i")))
	u.Open()
	u.Line("return false;")
	u.Close("")
	u.Close("")
	u.Line("return true;")
}

// elementEqual returns the comparison of two elements of p. Nested
// structures recurse into their own type-info.
func elementEqual(p *gen.Property, a, b string) string {
	if p.IsStructure() {
		return fmt.Sprintf("%s->AreAllPropertyValuesEqual( &%s, &%s )", typeInfoOf(p.Struct), a, b)
	}
	return fmt.Sprintf("%s == %s", a, b)
}

// emitResetToDefault copies the default value of one property. Unknown
// property IDs are ignored.
func (u *unit) emitResetToDefault() {
	props := u.t.AllProperties()
	u.method("void ResetToDefault( IReflectedType* pTypeInstance, uint32_t propertyID ) const", func() {
		if u.t.Abstract {
			u.Line("EE_HALT(); // Abstract types have no default instance")
			return
		}
		if len(props) == 0 {
			return
		}
		u.downcast("pDefaultType", "m_pDefaultInstance")
		u.downcast("pActualType", "pTypeInstance")
		u.Line("EE_ASSERT( pActualType != nullptr && pDefaultType != nullptr );")
		u.Blank()
		for _, p := range props {
			u.dispatch("propertyID", p, func() {
				if p.IsStaticArray() {
					for i := 0; i < p.ArraySize; i++ {
						u.Line("%s = %s;", index("pActualType", p, i), index("pDefaultType", p, i))
					}
				} else {
					u.Line("%s = %s;", field("pActualType", p), field("pDefaultType", p))
				}
				u.Line("return;")
			})
		}
	})
}
