package gen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
)

// ManifestFile returns the path of the Go ID manifest, relative to the
// target directory.
func (g *Graph) ManifestFile() string {
	return g.ManifestPackage + "/" + g.ManifestPackage + ".go"
}

// GenManifest generates a Go package declaring the numeric IDs of every
// type, enum and property of the graph, for Go-side asset tooling.
func GenManifest(g *Graph) ([]byte, error) {
	f := jen.NewFile(g.ManifestPackage)
	f.HeaderComment("Code generated by reflector, DO NOT EDIT.")
	f.PackageComment(fmt.Sprintf("Package %s holds the reflected type and property IDs of the %s module.", g.ManifestPackage, g.ModuleName()))

	f.Comment("TypeID identifies a reflected type or enum.")
	f.Type().Id("TypeID").Uint32()
	f.Comment("PropertyID identifies a reflected property.")
	f.Type().Id("PropertyID").Uint32()

	names := jen.Dict{}
	var typeDefs []jen.Code
	for _, e := range g.SortedEnums() {
		name := g.goName(e.QualifiedName()) + "TypeID"
		typeDefs = append(typeDefs, jen.Id(name).Id("TypeID").Op("=").Add(hexLit(uint32(e.ID))))
		names[jen.Id(name)] = jen.Lit(e.QualifiedName())
	}
	for _, t := range g.Sorted() {
		name := g.goName(t.QualifiedName()) + "TypeID"
		typeDefs = append(typeDefs, jen.Id(name).Id("TypeID").Op("=").Add(hexLit(uint32(t.ID))))
		names[jen.Id(name)] = jen.Lit(t.QualifiedName())
	}
	f.Comment("Type IDs.")
	f.Const().Defs(typeDefs...)

	for _, t := range g.Sorted() {
		if len(t.Properties) == 0 {
			continue
		}
		prefix := g.goName(t.QualifiedName())
		defs := make([]jen.Code, 0, len(t.Properties))
		for _, p := range t.Properties {
			defs = append(defs, jen.Id(prefix+memberGoName(p.Name)+"ID").Id("PropertyID").Op("=").Add(hexLit(uint32(p.ID))))
		}
		f.Commentf("Property IDs of %s.", t.QualifiedName())
		f.Const().Defs(defs...)
	}

	f.Var().Id("typeNames").Op("=").Map(jen.Id("TypeID")).String().Values(names)

	f.Comment("String returns the qualified C++ name of the type.")
	f.Func().Params(jen.Id("id").Id("TypeID")).Id("String").Params().String().Block(
		jen.If(jen.List(jen.Id("name"), jen.Id("ok")).Op(":=").Id("typeNames").Index(jen.Id("id")), jen.Id("ok")).Block(
			jen.Return(jen.Id("name")),
		),
		jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit("TypeID(0x%08X)"), jen.Uint32().Call(jen.Id("id")))),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(PhaseManifest, g.ManifestFile(), "render", err)
	}
	return buf.Bytes(), nil
}

func hexLit(v uint32) jen.Code {
	return jen.Id(fmt.Sprintf("0x%08X", v))
}

// goName converts a qualified C++ name to an exported Go identifier,
// dropping the root namespace.
func (g *Graph) goName(qn string) string {
	qn = strings.TrimPrefix(qn, g.RootNamespace+"::")
	var b strings.Builder
	for _, part := range strings.Split(qn, "::") {
		b.WriteString(inflect.Camelize(part))
	}
	return b.String()
}

// memberGoName converts a C++ member name to an exported Go identifier,
// e.g. "m_pMesh" to "Mesh".
func memberGoName(name string) string {
	name = strings.TrimPrefix(name, "m_")
	if len(name) > 1 && name[0] == 'p' && unicode.IsUpper(rune(name[1])) {
		name = name[1:]
	}
	return inflect.Camelize(name)
}
