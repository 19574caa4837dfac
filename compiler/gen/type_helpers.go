package gen

import (
	"hash/fnv"
	"sort"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashID returns the 32-bit FNV-1a hash of s. It derives the type and
// property identifiers that the database leaves unset.
func HashID(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// qualify joins a namespace path and a name.
func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "::" + name
}

// splitQualified splits a qualified name into its namespace and name.
func splitQualified(qn string) (string, string) {
	if i := strings.LastIndex(qn, "::"); i >= 0 {
		return qn[:i], qn[i+2:]
	}
	return "", qn
}

// rules is the inflection ruleset of generated names. Engine acronyms
// are kept as single words.
var rules = func() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	for _, acronym := range []string{"UUID", "EE", "ID"} {
		r.AddAcronym(acronym)
	}
	return r
}()

// fileName converts a qualified C++ name to a lower-cased file stem,
// e.g. "EE::Render::StaticMeshComponent" to "ee_render_static_mesh_component".
func fileName(qn string) string {
	parts := strings.Split(strings.Trim(qn, ":"), "::")
	for i, p := range parts {
		parts[i] = strings.ToLower(rules.Underscore(p))
	}
	return strings.Join(parts, "_")
}

var titler = cases.Title(language.English)

// titleCase capitalizes every word of s.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return titler.String(s)
}

// friendlyName derives the editor name of a type or member, e.g.
// "m_pMaterialOverrides" becomes "Material Overrides".
func friendlyName(name string) string {
	name = strings.TrimPrefix(name, "m_")
	if len(name) > 1 && name[0] == 'p' && unicode.IsUpper(rune(name[1])) {
		name = name[1:]
	}
	if name == "" {
		return name
	}
	return titleCase(rules.Humanize(rules.Underscore(name)))
}

func sortedTypes(types []*Type) []*Type {
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].QualifiedName() < types[j].QualifiedName()
	})
	return types
}
