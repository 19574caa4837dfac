package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobbyAnguelov/reflector/compiler/load"
)

func testSchema() *load.Schema {
	return &load.Schema{
		Module: "EngineModule",
		Enums: []*load.Enum{
			{Name: "BlendMode", Namespace: "EE::Animation", Constants: []*load.EnumConstant{{Label: "Blend"}, {Label: "Additive", Value: 1}}},
			{Name: "CollisionLayers", Namespace: "EE::Physics", UnderlyingType: "uint32_t", Constants: []*load.EnumConstant{{Label: "Environment"}}},
		},
		Types: []*load.Type{
			{
				Name:            "StaticMeshComponent",
				Namespace:       "EE::Render",
				Parents:         []string{"EntityComponent"},
				EntityComponent: true,
				Properties: []*load.Property{
					{Name: "m_mesh", Type: "TResourcePtr", TemplateArg: "EE::Render::StaticMesh"},
					{Name: "m_materialOverrides", Type: "MaterialSettings", Array: load.ArrayDynamic},
					{Name: "m_lods", Type: "Resource::ResourcePtr", Array: load.ArrayStatic, ArraySize: 2},
					{Name: "m_blendMode", Type: "Animation::BlendMode"},
					{Name: "m_layers", Type: "TBitFlags", TemplateArg: "Physics::CollisionLayers"},
					{Name: "m_scale", Type: "float"},
					{Name: "m_debugName", Type: "String", DevOnly: true},
				},
			},
			{
				Name:      "MaterialSettings",
				Namespace: "EE::Render",
				Properties: []*load.Property{
					{Name: "m_material", Type: "TResourcePtr", TemplateArg: "EE::Render::Material"},
				},
			},
			{
				Name:       "EntityComponent",
				Namespace:  "EE",
				Abstract:   true,
				Properties: []*load.Property{{Name: "m_entityID", Type: "UUID"}},
			},
		},
	}
}

func testGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(MustNewConfig(WithTarget(t.TempDir())), testSchema())
	require.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	g := testGraph(t)
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Enums, 2)

	smc, ok := g.Type("::EE::Render::StaticMeshComponent")
	require.True(t, ok)
	base, ok := g.Type("EE::EntityComponent")
	require.True(t, ok)
	require.Len(t, smc.Parents, 1)
	assert.Same(t, base, smc.Parents[0])

	settings, _ := g.Type("EE::Render::MaterialSettings")
	blend, _ := g.Enum("EE::Animation::BlendMode")
	layers, _ := g.Enum("EE::Physics::CollisionLayers")
	for _, p := range smc.Properties {
		switch p.Name {
		case "m_materialOverrides":
			assert.Same(t, settings, p.Struct)
		case "m_blendMode":
			assert.Same(t, blend, p.Enum)
		case "m_layers":
			assert.Same(t, layers, p.Enum)
		default:
			assert.Nil(t, p.Struct, p.Name)
		}
	}
	assert.Equal(t, "EngineModule", g.ModuleName())
	assert.Equal(t, "engine_module.generated.cpp", g.ModuleFileName())
}

func TestNewGraph_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*load.Schema)
		check  func(error) bool
	}{
		{
			"unknown parent",
			func(s *load.Schema) { s.Types[0].Parents = []string{"Missing"} },
			IsInheritanceError,
		},
		{
			"self parent",
			func(s *load.Schema) { s.Types[1].Parents = []string{"MaterialSettings"} },
			IsInheritanceError,
		},
		{
			"duplicate parent",
			func(s *load.Schema) { s.Types[0].Parents = []string{"EE::EntityComponent", "EntityComponent"} },
			IsInheritanceError,
		},
		{
			"inheritance cycle",
			func(s *load.Schema) { s.Types[2].Parents = []string{"EE::Render::StaticMeshComponent"} },
			IsInheritanceError,
		},
		{
			"unknown element type",
			func(s *load.Schema) { s.Types[1].Properties[0] = &load.Property{Name: "m_x", Type: "Missing"} },
			IsSchemaError,
		},
		{
			"bitflags without template argument",
			func(s *load.Schema) { s.Types[0].Properties[4].TemplateArg = "" },
			IsSchemaError,
		},
		{
			"bitflags over unknown enum",
			func(s *load.Schema) { s.Types[0].Properties[4].TemplateArg = "Missing" },
			IsSchemaError,
		},
		{
			"typed resource pointer without template argument",
			func(s *load.Schema) { s.Types[0].Properties[0].TemplateArg = "" },
			IsSchemaError,
		},
		{
			"type holding itself",
			func(s *load.Schema) {
				s.Types[1].Properties = append(s.Types[1].Properties, &load.Property{Name: "m_self", Type: "MaterialSettings"})
			},
			IsSchemaError,
		},
		{
			"dev-only type used by shipping property",
			func(s *load.Schema) { s.Types[1].DevOnly = true },
			IsSchemaError,
		},
		{
			"shipping type derived from dev-only type",
			func(s *load.Schema) { s.Types[2].DevOnly = true },
			IsInheritanceError,
		},
		{
			"property id collides with parent",
			func(s *load.Schema) { s.Types[0].Properties[5].Name = "m_entityID" },
			IsValidationError,
		},
		{
			"type id collides with enum",
			func(s *load.Schema) { s.Types[1].ID = HashID("EE::Animation::BlendMode") },
			IsValidationError,
		},
		{
			"type name collides with enum",
			func(s *load.Schema) {
				s.Types = append(s.Types, &load.Type{Name: "BlendMode", Namespace: "EE::Animation", ID: 1})
			},
			IsSchemaError,
		},
		{
			"type redeclared",
			func(s *load.Schema) {
				s.Types = append(s.Types, &load.Type{Name: "MaterialSettings", Namespace: "EE::Render", ID: 2})
			},
			IsSchemaError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchema()
			tt.mutate(s)
			_, err := NewGraph(MustNewConfig(), s)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}

	_, err := NewGraph(nil, testSchema())
	assert.True(t, IsConfigError(err))
	_, err = NewGraph(MustNewConfig(), nil)
	assert.True(t, IsSchemaError(err))
}

func TestNewGraph_CycleMessage(t *testing.T) {
	s := testSchema()
	s.Types[2].Parents = []string{"EE::Render::StaticMeshComponent"}
	_, err := NewGraph(MustNewConfig(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
	assert.Contains(t, err.Error(), "EE::Render::StaticMeshComponent -> EE::EntityComponent")
}

func TestNewGraph_OutputFiles(t *testing.T) {
	tests := []struct {
		name  string
		types []*load.Type
		file  string
		owner string
	}{
		{
			name:  "namespace boundary",
			types: []*load.Type{{Name: "Bar", Namespace: "EE::Foo"}, {Name: "FooBar", Namespace: "EE"}},
			file:  "ee_foo_bar.generated.cpp",
			owner: "EE::Foo::Bar",
		},
		{
			name:  "type and enum",
			types: []*load.Type{{Name: "BlendModeEnum", Namespace: "EE::Animation"}},
			file:  "ee_animation_blend_mode_enum.generated.cpp",
			owner: "EE::Animation::BlendMode",
		},
		{
			name:  "type and module",
			types: []*load.Type{{Name: "EngineModule"}},
			file:  "engine_module.generated.cpp",
			owner: "EngineModule",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchema()
			s.Types = append(s.Types, tt.types...)
			_, err := NewGraph(MustNewConfig(), s)
			require.Error(t, err)
			assert.True(t, IsValidationError(err), err.Error())
			assert.Contains(t, err.Error(), tt.file)
			assert.Contains(t, err.Error(), "output file collides with "+tt.owner)
		})
	}

	t.Run("distinct names", func(t *testing.T) {
		s := testSchema()
		s.Types = append(s.Types, &load.Type{Name: "Bar", Namespace: "EE::Foo"}, &load.Type{Name: "FooBaz", Namespace: "EE"})
		g, err := NewGraph(MustNewConfig(), s)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 5)
	})
}

func TestNewGraph_SelfArray(t *testing.T) {
	s := testSchema()
	s.Types[1].Properties = append(s.Types[1].Properties, &load.Property{Name: "m_children", Type: "MaterialSettings", Array: load.ArrayDynamic})
	g, err := NewGraph(MustNewConfig(), s)
	require.NoError(t, err)
	assert.Len(t, g.Sorted(), 3)
}

func TestGraphSorted(t *testing.T) {
	g := testGraph(t)
	var names []string
	for _, typ := range g.Sorted() {
		names = append(names, typ.QualifiedName())
	}
	assert.Equal(t, []string{
		"EE::EntityComponent",
		"EE::Render::MaterialSettings",
		"EE::Render::StaticMeshComponent",
	}, names)

	var enums []string
	for _, e := range g.SortedEnums() {
		enums = append(enums, e.QualifiedName())
	}
	assert.Equal(t, []string{"EE::Animation::BlendMode", "EE::Physics::CollisionLayers"}, enums)
}

func TestGraphModuleName(t *testing.T) {
	s := testSchema()
	g, err := NewGraph(MustNewConfig(WithModule("GameModule")), s)
	require.NoError(t, err)
	assert.Equal(t, "GameModule", g.ModuleName())

	s.Module = ""
	g, err = NewGraph(MustNewConfig(), s)
	require.NoError(t, err)
	assert.Equal(t, DefaultModule, g.ModuleName())
}

func TestLookup(t *testing.T) {
	m := map[string]int{
		"EE::Render::Mesh": 1,
		"EE::Mesh":         2,
		"Mesh":             3,
		"EE::Physics::Box": 4,
	}
	tests := []struct {
		ns, name string
		want     int
		ok       bool
	}{
		{"EE::Render", "Mesh", 1, true},
		{"EE::Physics", "Mesh", 2, true},
		{"Other", "Mesh", 3, true},
		{"EE::Render", "::Mesh", 3, true},
		{"EE::Render", "Physics::Box", 4, true},
		{"EE::Render", "EE::Physics::Box", 4, true},
		{"EE::Render", "Box", 0, false},
	}
	for _, tt := range tests {
		got, ok := lookup(m, tt.ns, tt.name)
		assert.Equal(t, tt.ok, ok, "%s in %s", tt.name, tt.ns)
		assert.Equal(t, tt.want, got, "%s in %s", tt.name, tt.ns)
	}
}
