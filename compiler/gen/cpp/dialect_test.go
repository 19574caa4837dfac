package cpp

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
	"github.com/BobbyAnguelov/reflector/compiler/load"
)

func fixtureSchema() *load.Schema {
	return &load.Schema{
		Module: "EngineModule",
		Enums: []*load.Enum{
			{
				Name:           "BlendMode",
				Namespace:      "EE::Animation",
				UnderlyingType: "uint8_t",
				Constants: []*load.EnumConstant{
					{Label: "Blend", Value: 0},
					{Label: "Additive", Value: 1, Description: "Adds the source pose on top"},
				},
			},
			{
				Name:           "CollisionLayers",
				Namespace:      "EE::Physics",
				UnderlyingType: "uint32_t",
				Constants:      []*load.EnumConstant{{Label: "Environment", Value: 0}},
			},
		},
		Types: []*load.Type{
			{
				Name:      "StaticMeshComponent",
				Namespace: "EE::Render",
				Header:    "Engine/Render/Components/Component_StaticMesh.h",
				Parents:   []string{"EE::EntityComponent"},
				Category:  "rendering",

				EntityComponent: true,
				Properties: []*load.Property{
					{Name: "m_mesh", Type: "TResourcePtr", TemplateArg: "EE::Render::StaticMesh", Flags: 1},
					{Name: "m_materialOverrides", Type: "MaterialSettings", Array: load.ArrayDynamic},
					{Name: "m_lods", Type: "ResourcePtr", Array: load.ArrayStatic, ArraySize: 2},
					{Name: "m_blendMode", Type: "EE::Animation::BlendMode"},
					{Name: "m_layers", Type: "TBitFlags", TemplateArg: "EE::Physics::CollisionLayers"},
					{Name: "m_scale", Type: "float", Default: 1.0},
					{Name: "m_debugName", Type: "String", DevOnly: true},
				},
			},
			{
				Name:      "MaterialSettings",
				Namespace: "EE::Render",
				Properties: []*load.Property{
					{Name: "m_material", Type: "TResourcePtr", TemplateArg: "EE::Render::Material"},
					{Name: "m_tint", Type: "Color"},
				},
			},
			{
				Name:      "EntityComponent",
				Namespace: "EE",
				Abstract:  true,
			},
			{
				Name:            "LightComponent",
				Namespace:       "EE::Render",
				Parents:         []string{"EE::EntityComponent"},
				EntityComponent: true,
			},
			{
				Name:      "DebugSettings",
				Namespace: "EE::Render",
				DevOnly:   true,
				Properties: []*load.Property{
					{Name: "m_enabled", Type: "bool"},
				},
			},
		},
	}
}

func fixtureGraph(t *testing.T) *gen.Graph {
	t.Helper()
	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithTarget(t.TempDir())), fixtureSchema())
	require.NoError(t, err)
	return g
}

func genType(t *testing.T, g *gen.Graph, qn string) string {
	t.Helper()
	typ, ok := g.Type(qn)
	require.True(t, ok, qn)
	buf, err := NewDialect().GenTypeInfo(typ)
	require.NoError(t, err)
	return string(buf)
}

func id(s string) string { return fmt.Sprintf("0x%08X", gen.HashID(s)) }

var signaturePrefixes = []string{"virtual ", "static ", "void ", "TTypeInfo("}

func isSignature(line, name string) bool {
	s := strings.TrimSpace(line)
	if !strings.Contains(s, name+"(") || strings.HasSuffix(s, ";") {
		return false
	}
	for _, prefix := range signaturePrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// methodBody returns the lines of the first function whose signature
// contains name, from the signature to the matching closing brace.
func methodBody(t *testing.T, src, name string) []string {
	t.Helper()
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if !isSignature(line, name) {
			continue
		}
		depth := 0
		for j := i + 1; j < len(lines); j++ {
			switch strings.TrimSpace(lines[j]) {
			case "{":
				depth++
			case "}", "};":
				depth--
			}
			if depth == 0 {
				return lines[i : j+1]
			}
		}
	}
	t.Fatalf("method %s not found", name)
	return nil
}

// guarded reports if the first line containing substr is inside a
// preprocessor conditional.
func guarded(t *testing.T, src, substr string) bool {
	t.Helper()
	depth := 0
	for _, line := range strings.Split(src, "\n") {
		switch {
		case strings.HasPrefix(line, "#if"):
			depth++
		case strings.HasPrefix(line, "#endif"):
			depth--
		case strings.Contains(line, substr):
			return depth > 0
		}
	}
	t.Fatalf("%q not found", substr)
	return false
}

func joined(lines []string) string { return strings.Join(lines, "\n") }

func TestDialect(t *testing.T) {
	d := NewDialect()
	assert.Equal(t, "cpp", d.Name())

	_, err := d.GenTypeInfo(nil)
	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
	_, err = d.GenEnumInfo(nil)
	require.Error(t, err)
	_, err = d.GenModule(nil)
	require.Error(t, err)
}

func TestGenTypeInfo_Layout(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")

	assert.True(t, strings.HasPrefix(src, "//----"))
	assert.Contains(t, src, "// "+gen.DefaultHeader)
	assert.Contains(t, src, `#include "Engine/Render/Components/Component_StaticMesh.h"`)
	assert.Contains(t, src, `#include "Base/TypeSystem/TypeInfo.h"`)
	assert.Contains(t, src, "EE::TypeSystem::TypeInfo const* EE::Render::StaticMeshComponent::s_pTypeInfo = nullptr;")
	assert.Contains(t, src, "class TTypeInfo<EE::Render::StaticMeshComponent> final : public TypeInfo")
	assert.Contains(t, src, "m_parentTypes.push_back( EE::EntityComponent::s_pTypeInfo );")
	assert.Contains(t, src, "void RegisterType_"+id("EE::Render::StaticMeshComponent")+"( TypeRegistry& typeRegistry )")
	assert.Contains(t, src, "void UnregisterType_"+id("EE::Render::StaticMeshComponent")+"( TypeRegistry& typeRegistry )")
	assert.Contains(t, src, `m_category = "Rendering";`)
	assert.Contains(t, src, `m_friendlyName = "Static Mesh Component";`)

	order := []string{
		"static void RegisterType(",
		"static void UnregisterType(",
		"TTypeInfo( IReflectedType* pDefaultInstance )",
		"CreateType()",
		"CreateTypeInPlace(",
		"GetArrayElementDataPtr(",
		"GetArraySize(",
		"GetArrayElementSize(",
		"ClearArray(",
		"AddArrayElement(",
		"RemoveArrayElement(",
		"AreAllPropertyValuesEqual(",
		"IsPropertyValueEqual(",
		"ResetToDefault(",
		"void LoadResources(",
		"void UnloadResources(",
		"GetResourceLoadingStatus(",
		"GetResourceUnloadingStatus(",
		"GetExpectedResourceTypeForProperty(",
		"StaticMeshComponent::Load(",
		"StaticMeshComponent::Unload(",
		"StaticMeshComponent::UpdateLoading()",
	}
	last := -1
	for _, m := range order {
		i := strings.Index(src, m)
		require.Greater(t, i, last, "method %s out of order", m)
		last = i
	}
}

func TestGenTypeInfo_PropertyTable(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")
	ctor := joined(methodBody(t, src, "TTypeInfo"))

	// Declaration order is the table order.
	var last int
	for _, name := range []string{"m_mesh", "m_materialOverrides", "m_lods", "m_blendMode", "m_layers", "m_scale", "m_debugName"} {
		i := strings.Index(ctor, "propertyInfo.m_ID = PropertyID( "+id(name)+" );")
		require.Greater(t, i, last, name)
		last = i
	}
	assert.Equal(t, 7, strings.Count(ctor, "m_properties.emplace_back( propertyInfo );"))
	assert.Equal(t, 7, strings.Count(ctor, "m_propertyMap.insert("))
	assert.Contains(t, ctor, "propertyInfo.m_flags.Set( PropertyInfo::Flags( 0x00000001 ) );")
	assert.Contains(t, ctor, "propertyInfo.m_offset = offsetof( EE::Render::StaticMeshComponent, m_lods );")
	assert.Contains(t, ctor, "propertyInfo.m_arraySize = 2;")
	assert.Contains(t, ctor, "propertyInfo.m_arrayElementSize = (int32_t) sizeof( EE::Resource::ResourcePtr );")
	assert.Contains(t, ctor, "propertyInfo.m_pDefaultArrayData = pActualDefaultInstance->m_materialOverrides.data();")
	assert.Contains(t, ctor, "propertyInfo.m_templateArgumentTypeID = TypeID( "+id("EE::Physics::CollisionLayers")+" );")
	assert.Contains(t, ctor, "propertyInfo.m_isBitFlags = true;")
	assert.Contains(t, ctor, "propertyInfo.m_isEnum = true;")
	assert.Contains(t, ctor, "propertyInfo.m_isTypedResourcePtr = true;")
	assert.True(t, guarded(t, src, "propertyInfo.m_ID = PropertyID( "+id("m_debugName")+" );"))
	assert.False(t, guarded(t, src, "propertyInfo.m_ID = PropertyID( "+id("m_scale")+" );"))
}

func TestGenTypeInfo_Abstract(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::EntityComponent")

	create := joined(methodBody(t, src, "CreateType"))
	assert.Contains(t, create, "EE_HALT();")
	assert.Contains(t, create, "return nullptr;")
	assert.NotContains(t, src, "EE::New<EE::EntityComponent>()")

	inPlace := joined(methodBody(t, src, "CreateTypeInPlace"))
	assert.Contains(t, inPlace, "EE_HALT();")
	assert.NotContains(t, inPlace, "new(")

	register := joined(methodBody(t, src, "RegisterType"))
	assert.Contains(t, register, "IReflectedType* pDefaultInstance = nullptr;")
	assert.Contains(t, src, "m_isAbstract = true;")
	assert.Contains(t, joined(methodBody(t, src, "ResetToDefault")), "EE_HALT();")
}

func TestGenTypeInfo_Concrete(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::MaterialSettings")

	assert.Contains(t, joined(methodBody(t, src, "CreateType")), "return EE::New<EE::Render::MaterialSettings>();")
	inPlace := joined(methodBody(t, src, "CreateTypeInPlace"))
	assert.Contains(t, inPlace, "EE_ASSERT( pAllocatedMemory != nullptr );")
	assert.Contains(t, inPlace, "new( pAllocatedMemory ) EE::Render::MaterialSettings();")
	assert.Contains(t, joined(methodBody(t, src, "RegisterType")), "IReflectedType* pDefaultInstance = EE::New<EE::Render::MaterialSettings>();")
	assert.NotContains(t, src, "EntityModel::LoadingContext")
}

func TestGenTypeInfo_Arrays(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")

	ptr := joined(methodBody(t, src, "GetArrayElementDataPtr"))
	assert.Contains(t, ptr, "if ( arrayID == "+id("m_materialOverrides")+" )")
	assert.Contains(t, ptr, "pActualType->m_materialOverrides.resize( arrayIdx + 1 );")
	assert.Contains(t, ptr, "return (uint8_t*) &pActualType->m_lods[arrayIdx];")
	assert.NotContains(t, ptr, "m_lods.resize")
	assert.Contains(t, ptr, "EE_UNREACHABLE_CODE();")

	size := joined(methodBody(t, src, "GetArraySize"))
	assert.Contains(t, size, "return pActualType->m_materialOverrides.size();")
	assert.Contains(t, size, "return 2;")

	elem := joined(methodBody(t, src, "GetArrayElementSize"))
	assert.Contains(t, elem, "return sizeof( EE::Render::MaterialSettings );")
	assert.Contains(t, elem, "return sizeof( EE::Resource::ResourcePtr );")

	for _, m := range []string{"ClearArray", "AddArrayElement", "RemoveArrayElement"} {
		body := joined(methodBody(t, src, m))
		assert.Contains(t, body, id("m_materialOverrides"), m)
		assert.NotContains(t, body, id("m_lods"), m)
		assert.Contains(t, body, "EE_UNREACHABLE_CODE();", m)
	}
	assert.Contains(t, src, "pActualType->m_materialOverrides.erase( pActualType->m_materialOverrides.begin() + arrayIdx );")
	assert.Contains(t, src, "pActualType->m_materialOverrides.emplace_back();")

	// A type without arrays still dispatches to the unreachable tail.
	src = genType(t, g, "EE::Render::MaterialSettings")
	ptr = joined(methodBody(t, src, "GetArrayElementDataPtr"))
	assert.NotContains(t, ptr, "arrayID ==")
	assert.Contains(t, ptr, "EE_UNREACHABLE_CODE();")
}

func TestGenTypeInfo_Equality(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")

	all := joined(methodBody(t, src, "AreAllPropertyValuesEqual"))
	assert.Equal(t, 7, strings.Count(all, "if ( !IsPropertyValueEqual( pType, pOtherType, "))
	assert.Contains(t, all, "return true;")

	eq := methodBody(t, src, "IsPropertyValueEqual")
	body := joined(eq)
	assert.Contains(t, body, "int32_t arrayIdx = InvalidIndex")
	assert.Contains(t, body, "if ( size_t( arrayIdx ) >= pOtherType->m_materialOverrides.size() )")
	assert.NotContains(t, body, ">= pType->m_materialOverrides.size()")
	assert.Contains(t, body, "if ( pType->m_materialOverrides.size() != pOtherType->m_materialOverrides.size() )")
	assert.Contains(t, body, "EE::Render::MaterialSettings::s_pTypeInfo->AreAllPropertyValuesEqual( &pType->m_materialOverrides[i], &pOtherType->m_materialOverrides[i] )")
	assert.Contains(t, body, "for ( size_t i = 0; i < 2; i++ )")
	assert.Contains(t, body, "return pType->m_scale == pOtherType->m_scale;")
	assert.NotContains(t, body, "EE_UNREACHABLE_CODE")
	assert.Equal(t, "return false;", strings.TrimSpace(eq[len(eq)-2]))
}

func TestGenTypeInfo_ResetToDefault(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")

	reset := joined(methodBody(t, src, "ResetToDefault"))
	assert.Contains(t, reset, "auto pDefaultType = TryCast<EE::Render::StaticMeshComponent>( m_pDefaultInstance );")
	assert.Contains(t, reset, "pActualType->m_lods[0] = pDefaultType->m_lods[0];")
	assert.Contains(t, reset, "pActualType->m_lods[1] = pDefaultType->m_lods[1];")
	assert.NotContains(t, reset, "pActualType->m_lods = ")
	assert.Contains(t, reset, "pActualType->m_materialOverrides = pDefaultType->m_materialOverrides;")
	assert.NotContains(t, reset, "EE_UNREACHABLE_CODE")
	assert.NotContains(t, reset, "EE_HALT")
}

// callShape reduces a resource method to its call sites, with the load and
// unload spellings unified.
func callShape(lines []string) []string {
	r := strings.NewReplacer(
		"UnloadResources", "LoadResources",
		"UnloadResource(", "LoadResource(",
	)
	var shape []string
	for _, line := range lines[1:] {
		s := strings.TrimSpace(line)
		if strings.Contains(s, "LoadResource") || strings.HasPrefix(s, "for (") {
			shape = append(shape, r.Replace(s))
		}
	}
	return shape
}

func TestGenTypeInfo_LoadUnloadPairing(t *testing.T) {
	g := fixtureGraph(t)
	for _, qn := range []string{"EE::Render::StaticMeshComponent", "EE::Render::MaterialSettings", "EE::EntityComponent"} {
		t.Run(qn, func(t *testing.T) {
			src := genType(t, g, qn)
			load := methodBody(t, src, "void LoadResources")
			unload := methodBody(t, src, "void UnloadResources")
			if diff := cmp.Diff(callShape(load), callShape(unload)); diff != "" {
				t.Errorf("load/unload call sites differ (-load +unload):\n%s", diff)
			}
			assert.Equal(t,
				strings.Count(joined(load), "pResourceSystem->LoadResource("),
				strings.Count(joined(unload), "pResourceSystem->UnloadResource("))
		})
	}

	src := genType(t, g, "EE::Render::StaticMeshComponent")
	load := joined(methodBody(t, src, "void LoadResources"))
	// Scalar pointer, two unrolled static elements, and a loop over the
	// nested structures.
	assert.Equal(t, 3, strings.Count(load, "pResourceSystem->LoadResource("))
	assert.Contains(t, load, "pResourceSystem->LoadResource( pActualType->m_mesh, requesterID );")
	assert.Contains(t, load, "pResourceSystem->LoadResource( pActualType->m_lods[1], requesterID );")
	assert.Contains(t, load, "for ( auto& propertyValue : pActualType->m_materialOverrides )")
	assert.Contains(t, load, "EE::Render::MaterialSettings::s_pTypeInfo->LoadResources( pResourceSystem, requesterID, &propertyValue );")
	assert.NotContains(t, load, "m_blendMode")
	assert.NotContains(t, load, "m_layers")
	assert.NotContains(t, load, "m_scale")
	assert.NotContains(t, load, "m_debugName")
}

func TestGenTypeInfo_LoadingStatus(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::StaticMeshComponent")

	status := methodBody(t, src, "GetResourceLoadingStatus")
	body := joined(status)
	assert.Contains(t, body, "LoadingStatus status = LoadingStatus::Loaded;")
	assert.Contains(t, body, "if ( pActualType->m_mesh.HasLoadingFailed() )")
	assert.Contains(t, body, "else if ( pActualType->m_mesh.IsSet() && !pActualType->m_mesh.IsLoaded() )")
	assert.Contains(t, body, "EE::Render::MaterialSettings::s_pTypeInfo->GetResourceLoadingStatus( &propertyValue );")
	assert.Equal(t, "return status;", strings.TrimSpace(status[len(status)-2]))

	unloading := joined(methodBody(t, src, "GetResourceUnloadingStatus"))
	assert.Contains(t, unloading, "EE_ASSERT( !pActualType->m_lods[0].IsLoading() );")
	assert.Contains(t, unloading, "if ( !pActualType->m_lods[1].IsUnloaded() )")
	assert.Contains(t, unloading, "return LoadingStatus::Unloaded;")

	expected := joined(methodBody(t, src, "GetExpectedResourceTypeForProperty"))
	assert.Contains(t, expected, "return EE::Render::StaticMesh::GetStaticResourceTypeID();")
	assert.Contains(t, expected, "if ( propertyID == "+id("m_lods")+" )")
	assert.Contains(t, expected, "return ResourceTypeID();")
	assert.NotContains(t, expected, id("m_materialOverrides"))
	assert.Contains(t, expected, "EE_UNREACHABLE_CODE();")
}

func TestGenTypeInfo_Component(t *testing.T) {
	g := fixtureGraph(t)

	t.Run("with properties", func(t *testing.T) {
		src := genType(t, g, "EE::Render::StaticMeshComponent")
		loadFn := joined(methodBody(t, src, "StaticMeshComponent::Load"))
		assert.Contains(t, loadFn, "EE::Render::StaticMeshComponent::s_pTypeInfo->LoadResources( context.m_pResourceSystem, requesterID, this );")
		assert.Contains(t, loadFn, "m_status = Status::Loading;")

		unloadFn := joined(methodBody(t, src, "StaticMeshComponent::Unload"))
		assert.Equal(t, 1, strings.Count(unloadFn, "->UnloadResources("))
		assert.Contains(t, unloadFn, "m_status = Status::Unloaded;")

		update := joined(methodBody(t, src, "StaticMeshComponent::UpdateLoading"))
		assert.Contains(t, update, "if ( m_status == Status::Loading )")
		assert.Contains(t, update, "m_status = Status::LoadingFailed;")
		assert.Contains(t, update, "m_status = Status::Loaded;")
	})

	t.Run("without properties", func(t *testing.T) {
		src := genType(t, g, "EE::Render::LightComponent")
		loadFn := joined(methodBody(t, src, "LightComponent::Load"))
		assert.Contains(t, loadFn, "m_status = Status::Loaded;")
		assert.NotContains(t, loadFn, "LoadResources")

		unloadFn := joined(methodBody(t, src, "LightComponent::Unload"))
		assert.NotContains(t, unloadFn, "UnloadResources")
		assert.Contains(t, unloadFn, "m_status = Status::Unloaded;")

		update := joined(methodBody(t, src, "LightComponent::UpdateLoading"))
		assert.NotContains(t, update, "GetResourceLoadingStatus")
		assert.Contains(t, update, "m_status = Status::Loaded;")
	})
}

func TestGenTypeInfo_DevOnlyType(t *testing.T) {
	g := fixtureGraph(t)
	src := genType(t, g, "EE::Render::DebugSettings")

	assert.True(t, guarded(t, src, "class TTypeInfo<EE::Render::DebugSettings>"))
	assert.True(t, guarded(t, src, "void RegisterType_"))
	assert.True(t, strings.HasSuffix(src, "#endif\n"))
	// Members of a dev-only type need no guard of their own.
	assert.NotContains(t, joined(methodBody(t, src, "IsPropertyValueEqual")), "#if")
}

func TestGenEnumInfo(t *testing.T) {
	g := fixtureGraph(t)
	e, ok := g.Enum("EE::Animation::BlendMode")
	require.True(t, ok)
	buf, err := NewDialect().GenEnumInfo(e)
	require.NoError(t, err)
	src := string(buf)

	assert.Contains(t, src, "static_assert( sizeof( EE::Animation::BlendMode ) == sizeof( uint8_t ) );")
	assert.Contains(t, src, "void RegisterEnum_"+id("EE::Animation::BlendMode")+"( TypeRegistry& typeRegistry )")
	assert.Contains(t, src, `enumInfo.m_constants.insert( TPair<StringID, int64_t>( StringID( "Blend" ), 0 ) );`)
	assert.Contains(t, src, `enumInfo.m_constants.insert( TPair<StringID, int64_t>( StringID( "Additive" ), 1 ) );`)
	assert.True(t, guarded(t, src, `enumInfo.m_descriptions.insert( TPair<StringID, String>( StringID( "Additive" ), "Adds the source pose on top" ) );`))
	assert.False(t, guarded(t, src, "typeRegistry.RegisterEnum( enumInfo );"))
	assert.Contains(t, src, "typeRegistry.UnregisterEnum( TypeID( "+id("EE::Animation::BlendMode")+" ) );")
}

func TestGenModule(t *testing.T) {
	g := fixtureGraph(t)
	buf, err := NewDialect().GenModule(g)
	require.NoError(t, err)
	src := string(buf)

	register := joined(methodBody(t, src, "EE::EngineModule::RegisterTypes"))
	unregister := joined(methodBody(t, src, "EE::EngineModule::UnregisterTypes"))

	before := func(body, a, b string) {
		t.Helper()
		ia, ib := strings.Index(body, a), strings.Index(body, b)
		require.NotEqual(t, -1, ia, a)
		require.NotEqual(t, -1, ib, b)
		assert.Less(t, ia, ib, "%s should come before %s", a, b)
	}
	before(register, "RegisterEnum_"+id("EE::Animation::BlendMode"), "RegisterType_"+id("EE::EntityComponent"))
	before(register, "RegisterType_"+id("EE::EntityComponent"), "RegisterType_"+id("EE::Render::StaticMeshComponent"))
	before(register, "RegisterType_"+id("EE::Render::MaterialSettings"), "RegisterType_"+id("EE::Render::StaticMeshComponent"))
	before(unregister, "UnregisterType_"+id("EE::Render::StaticMeshComponent"), "UnregisterType_"+id("EE::EntityComponent"))
	before(unregister, "UnregisterType_"+id("EE::EntityComponent"), "UnregisterEnum_"+id("EE::Animation::BlendMode"))
	assert.True(t, guarded(t, register, "RegisterType_"+id("EE::Render::DebugSettings")))
	assert.Contains(t, src, "void RegisterType_"+id("EE::Render::LightComponent")+"( TypeRegistry& typeRegistry );")
}

func TestWithIndent(t *testing.T) {
	g := fixtureGraph(t)
	typ, _ := g.Type("EE::Render::MaterialSettings")
	buf, err := NewDialect(WithIndent(2)).GenTypeInfo(typ)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "\n  template<>\n")
}
