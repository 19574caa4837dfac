package cpp

// emitCreation emits the heap factory of the type. Abstract types halt.
func (u *unit) emitCreation() {
	u.method("IReflectedType* CreateType() const", func() {
		if u.t.Abstract {
			u.Line("EE_HALT(); // Cannot instantiate an abstract type")
			u.Line("return nullptr;")
			return
		}
		u.Line("return %s<%s>();", u.root("New"), u.typeName())
	})
}

// emitInPlaceCreation emits placement construction into caller memory.
func (u *unit) emitInPlaceCreation() {
	u.method("void CreateTypeInPlace( IReflectedType* pAllocatedMemory ) const", func() {
		if u.t.Abstract {
			u.Line("EE_HALT(); // Cannot instantiate an abstract type")
			return
		}
		u.Line("EE_ASSERT( pAllocatedMemory != nullptr );")
		u.Line("new( pAllocatedMemory ) %s();", u.typeName())
	})
}
