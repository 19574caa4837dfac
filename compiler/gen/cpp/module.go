package cpp

import (
	"fmt"
	"slices"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// registration is one call of the module unit.
type registration struct {
	kind    string
	id      gen.TypeID
	name    string
	devOnly bool
}

// genModule assembles the module registration unit. Enums register first,
// then types with parents and nested structures before their users.
// Unregistration runs in the reverse order.
func (d *Dialect) genModule(g *gen.Graph) []byte {
	u := newUnit(NewWriter(d.indent), g.Config, nil)
	u.emitFileHeader("")

	var regs []registration
	for _, e := range g.SortedEnums() {
		regs = append(regs, registration{kind: "Enum", id: e.ID, name: e.QualifiedName(), devOnly: e.DevOnly})
	}
	for _, t := range g.Sorted() {
		regs = append(regs, registration{kind: "Type", id: t.ID, name: t.QualifiedName(), devOnly: t.DevOnly})
	}

	u.Block("namespace "+u.root("TypeSystem::Generated"), func() {
		for _, r := range regs {
			u.registrationLine(r, func() {
				u.Line("void %s( TypeRegistry& typeRegistry );", registerFunc(r.kind, r.id, true))
				u.Line("void %s( TypeRegistry& typeRegistry );", registerFunc(r.kind, r.id, false))
			})
		}
	})
	u.Blank()

	module := u.root(g.ModuleName())
	u.Separator("Module: " + module)
	u.Blank()
	u.Block(fmt.Sprintf("void %s::RegisterTypes( TypeSystem::TypeRegistry& typeRegistry )", module), func() {
		for _, r := range regs {
			u.registrationLine(r, func() {
				u.Line("TypeSystem::Generated::%s( typeRegistry ); // %s", registerFunc(r.kind, r.id, true), r.name)
			})
		}
	})
	u.Blank()
	u.Block(fmt.Sprintf("void %s::UnregisterTypes( TypeSystem::TypeRegistry& typeRegistry )", module), func() {
		for _, r := range slices.Backward(regs) {
			u.registrationLine(r, func() {
				u.Line("TypeSystem::Generated::%s( typeRegistry ); // %s", registerFunc(r.kind, r.id, false), r.name)
			})
		}
	})
	return u.Bytes()
}

func (u *unit) registrationLine(r registration, body func()) {
	if r.devOnly {
		u.devTools(body)
		return
	}
	body()
}
