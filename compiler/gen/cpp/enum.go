package cpp

import (
	"fmt"
	"strconv"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// genEnumInfo assembles the registration unit of an enum: its label/value
// pairs, and the label descriptions in dev builds.
func (d *Dialect) genEnumInfo(e *gen.Enum) []byte {
	u := newUnit(NewWriter(d.indent), e.Config, nil)
	u.emitFileHeader(e.Header)

	if e.DevOnly {
		u.Directive("#if %s", u.cfg.DevToolsDefine)
		u.Blank()
	}

	u.Separator("Enum: " + e.QualifiedName())
	u.Blank()
	u.Line("static_assert( sizeof( %s ) == sizeof( %s ) );", e.QualifiedName(), e.UnderlyingType)
	u.Blank()

	u.Block("namespace "+u.root("TypeSystem::Generated"), func() {
		u.Block(fmt.Sprintf("void %s( TypeRegistry& typeRegistry )", registerFunc("Enum", e.ID, true)), func() {
			u.Line("EnumInfo enumInfo;")
			u.Line("enumInfo.m_ID = TypeID( %s );", hexID(uint32(e.ID)))
			u.Line("enumInfo.m_underlyingTypeID = TypeID( %s );", hexID(gen.HashID(e.UnderlyingType)))
			u.Blank()
			for _, c := range e.Constants {
				u.Line("enumInfo.m_constants.insert( TPair<StringID, int64_t>( StringID( %s ), %d ) );", strconv.Quote(c.Label), c.Value)
			}
			if hasDescriptions(e) {
				u.Blank()
				u.devTools(func() {
					for _, c := range e.Constants {
						if c.Description == "" {
							continue
						}
						u.Line("enumInfo.m_descriptions.insert( TPair<StringID, String>( StringID( %s ), %s ) );", strconv.Quote(c.Label), strconv.Quote(c.Description))
					}
				})
			}
			u.Blank()
			u.Line("typeRegistry.RegisterEnum( enumInfo );")
		})
		u.Blank()
		u.Block(fmt.Sprintf("void %s( TypeRegistry& typeRegistry )", registerFunc("Enum", e.ID, false)), func() {
			u.Line("typeRegistry.UnregisterEnum( TypeID( %s ) );", hexID(uint32(e.ID)))
		})
	})

	if e.DevOnly {
		u.Blank()
		u.Directive("#endif")
	}
	return u.Bytes()
}

func hasDescriptions(e *gen.Enum) bool {
	for _, c := range e.Constants {
		if c.Description != "" {
			return true
		}
	}
	return false
}
