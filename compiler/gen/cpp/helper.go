package cpp

import (
	"fmt"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// unit is the emission context of one generated translation unit.
type unit struct {
	*Writer
	cfg *gen.Config
	t   *gen.Type
}

func newUnit(w *Writer, cfg *gen.Config, t *gen.Type) *unit {
	if cfg == nil {
		cfg = gen.MustNewConfig()
	}
	return &unit{Writer: w, cfg: cfg, t: t}
}

// typeName returns the qualified name of the unit type.
func (u *unit) typeName() string { return u.t.QualifiedName() }

// root qualifies name with the engine root namespace.
func (u *unit) root(name string) string { return u.cfg.RootNamespace + "::" + name }

// typeInfoOf returns the static type-info slot of t.
func typeInfoOf(t *gen.Type) string { return t.QualifiedName() + "::s_pTypeInfo" }

// devTools wraps body in the dev-tools guard.
func (u *unit) devTools(body func()) {
	u.Directive("#if %s", u.cfg.DevToolsDefine)
	body()
	u.Directive("#endif")
}

// property emits body for p, wrapped in the dev-tools guard when p only
// exists in dev builds of a shipping type.
func (u *unit) property(p *gen.Property, body func()) {
	if p.NeedsDevGuard(u.t) {
		u.devTools(body)
		return
	}
	body()
}

// downcast declares name as the concrete pointer of src.
func (u *unit) downcast(name, src string) {
	u.Line("auto %s = TryCast<%s>( %s );", name, u.typeName(), src)
}

// dispatch emits the propertyID-keyed branch of p.
func (u *unit) dispatch(key string, p *gen.Property, body func()) {
	u.property(p, func() {
		u.Line("if ( %s == %s ) // %s", key, hexID(uint32(p.ID)), p.Name)
		u.Open()
		body()
		u.Close("")
		u.Blank()
	})
}

// unreachable emits the fatal tail of a structural dispatch.
func (u *unit) unreachable(ret string) {
	u.Line("// We should never get here since we are asking for an invalid property")
	u.Line("EE_UNREACHABLE_CODE();")
	if ret != "" {
		u.Line("return %s;", ret)
	}
}

// method emits a virtual override of the type-info class.
func (u *unit) method(signature string, body func()) {
	u.Line("virtual %s override final", signature)
	u.Open()
	body()
	u.Close("")
	u.Blank()
}

func hexID(v uint32) string { return fmt.Sprintf("0x%08X", v) }

// field returns the access expression of p through the pointer ptr.
func field(ptr string, p *gen.Property) string { return ptr + "->" + p.Name }

// index returns the access expression of element i of p through ptr.
func index(ptr string, p *gen.Property, i any) string {
	return fmt.Sprintf("%s->%s[%v]", ptr, p.Name, i)
}

func filter(props []*gen.Property, pred func(*gen.Property) bool) []*gen.Property {
	var out []*gen.Property
	for _, p := range props {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
