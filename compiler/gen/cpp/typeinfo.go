package cpp

import (
	"fmt"
	"strconv"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// genTypeInfo assembles the type-info unit of t.
func (d *Dialect) genTypeInfo(t *gen.Type) []byte {
	u := newUnit(NewWriter(d.indent), t.Config, t)
	u.emitFileHeader(t.Header)

	if t.DevOnly {
		u.Directive("#if %s", u.cfg.DevToolsDefine)
		u.Blank()
	}

	u.Separator("TypeInfo: " + u.typeName())
	u.Blank()
	u.Line("%s const* %s = nullptr;", u.root("TypeSystem::TypeInfo"), typeInfoOf(t))
	u.Blank()

	u.Block("namespace "+u.root("TypeSystem"), func() {
		u.Line("template<>")
		u.Line("class %sTTypeInfo<%s> final : public TypeInfo", apiMacro(u.cfg), u.typeName())
		u.Open()
		u.Line("public:")
		u.Blank()
		u.emitRegistration()
		u.emitConstructor()
		u.emitCreation()
		u.emitInPlaceCreation()
		u.emitArrayAccessors()
		u.emitEquality()
		u.emitResetToDefault()
		u.emitResourceMethods()
		u.Close(";")
		u.Blank()
		u.emitRegistrationFunctions()
	})
	u.Blank()

	if t.EntityComponent {
		u.Separator("Entity Component: " + u.typeName())
		u.Blank()
		u.emitComponentMethods()
	}

	if t.DevOnly {
		u.Directive("#endif")
	}
	return u.Bytes()
}

// emitFileHeader emits the banner and the includes of a unit.
func (u *unit) emitFileHeader(header string) {
	u.Separator(u.cfg.Header)
	u.Blank()
	if header != "" {
		u.Line("#include %s", strconv.Quote(header))
	}
	for _, inc := range u.cfg.Includes {
		u.Line("#include %s", strconv.Quote(inc))
	}
	u.Blank()
}

func apiMacro(cfg *gen.Config) string {
	if cfg.APIMacro == "" {
		return ""
	}
	return cfg.APIMacro + " "
}

// emitRegistration emits the static Register/Unregister pair. The
// default instance is owned by the type-info record: created on
// registration for concrete types, null for abstract ones, and destroyed
// with the record.
func (u *unit) emitRegistration() {
	t := u.typeName()
	u.Block("static void RegisterType( TypeSystem::TypeRegistry& typeRegistry )", func() {
		u.Line("EE_ASSERT( %s == nullptr );", typeInfoOf(u.t))
		if u.t.Abstract {
			u.Line("IReflectedType* pDefaultInstance = nullptr;")
		} else {
			u.Line("IReflectedType* pDefaultInstance = %s<%s>();", u.root("New"), t)
		}
		u.Line("auto pTypeInfo = %s<TTypeInfo<%s>>( pDefaultInstance );", u.root("New"), t)
		u.Line("%s = pTypeInfo;", typeInfoOf(u.t))
		u.Line("typeRegistry.RegisterType( pTypeInfo );")
	})
	u.Blank()
	u.Block("static void UnregisterType( TypeSystem::TypeRegistry& typeRegistry )", func() {
		u.Line("auto pTypeInfo = const_cast<TypeInfo*>( %s );", typeInfoOf(u.t))
		u.Line("EE_ASSERT( pTypeInfo != nullptr );")
		u.Line("typeRegistry.UnregisterType( pTypeInfo );")
		u.Blank()
		u.Line("%s( pTypeInfo->m_pDefaultInstance );", u.root("Delete"))
		u.Line("%s( pTypeInfo );", u.root("Delete"))
		u.Line("%s = nullptr;", typeInfoOf(u.t))
	})
	u.Blank()
}

// emitConstructor emits the constructor building the property table.
func (u *unit) emitConstructor() {
	t := u.typeName()
	props := u.t.AllProperties()
	u.Block("TTypeInfo( IReflectedType* pDefaultInstance )", func() {
		u.Line("m_ID = TypeID( %s );", hexID(uint32(u.t.ID)))
		u.Line("m_size = sizeof( %s );", t)
		u.Line("m_alignment = alignof( %s );", t)
		u.Line("m_isAbstract = %t;", u.t.Abstract)
		u.Line("m_pDefaultInstance = pDefaultInstance;")
		if u.t.Abstract {
			u.Line("EE_ASSERT( m_pDefaultInstance == nullptr );")
		} else {
			u.Line("EE_ASSERT( m_pDefaultInstance != nullptr );")
		}
		u.Blank()
		u.devTools(func() {
			u.Line("m_friendlyName = %s;", strconv.Quote(u.t.FriendlyName))
			u.Line("m_category = %s;", strconv.Quote(u.t.Category))
			u.Line("m_description = %s;", strconv.Quote(u.t.Description))
		})
		u.Blank()

		if len(u.t.Parents) > 0 {
			u.Line("// Parent types")
			for _, parent := range u.t.Parents {
				u.Line("EE_ASSERT( %s != nullptr );", typeInfoOf(parent))
				u.Line("m_parentTypes.push_back( %s );", typeInfoOf(parent))
			}
			u.Blank()
		}

		if len(props) == 0 {
			return
		}
		u.Line("// Properties")
		u.Line("PropertyInfo propertyInfo;")
		if !u.t.Abstract {
			u.downcast("pActualDefaultInstance", "m_pDefaultInstance")
			u.Line("EE_ASSERT( pActualDefaultInstance != nullptr );")
		}
		u.Blank()
		for _, p := range props {
			u.property(p, func() { u.emitPropertyInfo(p) })
		}
	})
	u.Blank()
}

// emitPropertyInfo emits the property table row of p.
func (u *unit) emitPropertyInfo(p *gen.Property) {
	t := u.typeName()
	u.Line("// %s", p.Name)
	u.Line("propertyInfo = PropertyInfo();")
	u.Line("propertyInfo.m_ID = PropertyID( %s );", hexID(uint32(p.ID)))
	u.Line("propertyInfo.m_typeID = TypeID( %s );", hexID(uint32(p.ElementTypeID())))
	if id := p.TemplateArgTypeID(); id != 0 {
		u.Line("propertyInfo.m_templateArgumentTypeID = TypeID( %s );", hexID(uint32(id)))
	}
	u.Line("propertyInfo.m_parentTypeID = TypeID( %s );", hexID(uint32(p.Owner.ID)))
	switch {
	case u.t.Abstract:
		u.Line("propertyInfo.m_pDefaultValue = nullptr;")
	case p.IsDynamicArray():
		u.Line("propertyInfo.m_pDefaultValue = &%s;", field("pActualDefaultInstance", p))
		u.Line("propertyInfo.m_pDefaultArrayData = %s.data();", field("pActualDefaultInstance", p))
		u.Line("propertyInfo.m_arraySize = (int32_t) %s.size();", field("pActualDefaultInstance", p))
	default:
		u.Line("propertyInfo.m_pDefaultValue = &%s;", field("pActualDefaultInstance", p))
	}
	u.Line("propertyInfo.m_offset = offsetof( %s, %s );", t, p.Name)
	u.Line("propertyInfo.m_size = sizeof( %s::%s );", t, p.Name)
	if p.IsArray() {
		if p.IsStaticArray() {
			u.Line("propertyInfo.m_arraySize = %d;", p.ArraySize)
		}
		u.Line("propertyInfo.m_arrayElementSize = (int32_t) sizeof( %s );", p.ElementTypeName())
	}
	u.Line("propertyInfo.m_flags.Set( PropertyInfo::Flags( %s ) );", hexID(p.Flags))
	for _, flag := range classification(p) {
		u.Line("propertyInfo.m_%s = true;", flag)
	}
	u.devTools(func() {
		u.Line("propertyInfo.m_name = %s;", strconv.Quote(p.Name))
		u.Line("propertyInfo.m_friendlyName = %s;", strconv.Quote(p.FriendlyName))
		u.Line("propertyInfo.m_category = %s;", strconv.Quote(p.Category))
		u.Line("propertyInfo.m_description = %s;", strconv.Quote(p.Description))
	})
	u.Line("m_properties.emplace_back( propertyInfo );")
	u.Line("m_propertyMap.insert( TPair<PropertyID, int32_t>( propertyInfo.m_ID, int32_t( m_properties.size() ) - 1 ) );")
	u.Blank()
}

// classification returns the property-info booleans that hold for p.
func classification(p *gen.Property) []string {
	var flags []string
	add := func(ok bool, name string) {
		if ok {
			flags = append(flags, name)
		}
	}
	add(p.IsStaticArray(), "isStaticArray")
	add(p.IsDynamicArray(), "isDynamicArray")
	add(p.IsStructure(), "isStructure")
	add(p.IsEnum(), "isEnum")
	add(p.IsBitFlags(), "isBitFlags")
	add(p.IsResourcePtr(), "isResourcePtr")
	add(p.IsTypedResourcePtr(), "isTypedResourcePtr")
	return flags
}

// emitRegistrationFunctions emits the free functions called by the module
// registration unit.
func (u *unit) emitRegistrationFunctions() {
	u.Block("namespace Generated", func() {
		u.Block(fmt.Sprintf("void %s( TypeRegistry& typeRegistry )", registerFunc("Type", u.t.ID, true)), func() {
			u.Line("TTypeInfo<%s>::RegisterType( typeRegistry );", u.typeName())
		})
		u.Blank()
		u.Block(fmt.Sprintf("void %s( TypeRegistry& typeRegistry )", registerFunc("Type", u.t.ID, false)), func() {
			u.Line("TTypeInfo<%s>::UnregisterType( typeRegistry );", u.typeName())
		})
	})
}

// registerFunc returns the name of the generated registration function of
// a type ("Type") or an enum ("Enum").
func registerFunc(kind string, id gen.TypeID, register bool) string {
	if register {
		return fmt.Sprintf("Register%s_%s", kind, hexID(uint32(id)))
	}
	return fmt.Sprintf("Unregister%s_%s", kind, hexID(uint32(id)))
}
