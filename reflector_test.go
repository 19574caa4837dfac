package reflector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BobbyAnguelov/reflector"
	"github.com/BobbyAnguelov/reflector/compiler/gen"
	"github.com/BobbyAnguelov/reflector/compiler/load"
)

const runtimeDB = `
module: RuntimeModule
enums:
  - name: BlendMode
    namespace: EE::Animation
    underlying_type: uint8_t
    constants:
      - { label: Blend, value: 0 }
      - { label: Additive, value: 1 }
types:
  - name: EntityComponent
    namespace: EE
    abstract: true
  - name: MaterialSettings
    namespace: EE::Render
    properties:
      - { name: m_material, type: TResourcePtr, template_arg: "EE::Render::Material" }
      - { name: m_tint, type: Color, default: 4294967295 }
  - name: StaticMeshComponent
    namespace: EE::Render
    entity_component: true
    parents: [ "EE::EntityComponent" ]
    properties:
      - { name: m_mesh, type: TResourcePtr, template_arg: "EE::Render::StaticMesh", default: "data://meshes/cube.msh" }
      - { name: m_materialOverrides, type: MaterialSettings, array: dynamic }
      - { name: m_lods, type: ResourcePtr, array: static, array_size: 2 }
      - { name: m_blendMode, type: "EE::Animation::BlendMode", default: Additive }
      - { name: m_scale, type: float, default: 1.5 }
      - { name: m_weights, type: float, array: static, array_size: 3, default: [1, 2, 3] }
      - { name: m_tags, type: StringID, array: dynamic, default: [rock, moss] }
  - name: LightComponent
    namespace: EE::Render
    entity_component: true
    parents: [ "EE::EntityComponent" ]
`

func typeID(qn string) reflector.TypeID { return reflector.TypeID(gen.HashID(qn)) }

func propID(name string) reflector.PropertyID { return reflector.PropertyID(gen.HashID(name)) }

func testGraph(t testing.TB) *gen.Graph {
	t.Helper()
	schema, err := load.Parse([]byte(runtimeDB))
	require.NoError(t, err)
	g, err := gen.NewGraph(gen.MustNewConfig(), schema)
	require.NoError(t, err)
	return g
}

func testRegistry(t testing.TB) *reflector.Registry {
	t.Helper()
	r := reflector.NewRegistry()
	require.NoError(t, r.RegisterGraph(testGraph(t)))
	return r
}

func lookup(t testing.TB, r *reflector.Registry, qn string) *reflector.TypeInfo {
	t.Helper()
	info, ok := r.Lookup(typeID(qn))
	require.True(t, ok, qn)
	return info
}

// fakeResourceSystem completes or fails requests when told to.
type fakeResourceSystem struct {
	loads, unloads []reflector.ResourceID
	requesters     map[reflector.RequesterID]int
	pending        []*reflector.ResourcePtr
}

func newFakeResourceSystem() *fakeResourceSystem {
	return &fakeResourceSystem{requesters: make(map[reflector.RequesterID]int)}
}

func (f *fakeResourceSystem) LoadResource(ptr *reflector.ResourcePtr, requester reflector.RequesterID) {
	f.loads = append(f.loads, ptr.ID)
	f.requesters[requester]++
	ptr.SetStatus(reflector.Loading)
	f.pending = append(f.pending, ptr)
}

func (f *fakeResourceSystem) UnloadResource(ptr *reflector.ResourcePtr, requester reflector.RequesterID) {
	f.unloads = append(f.unloads, ptr.ID)
	f.requesters[requester]--
	ptr.SetStatus(reflector.Unloaded)
}

// complete settles every pending request, failing the given IDs.
func (f *fakeResourceSystem) complete(failed ...reflector.ResourceID) {
	for _, ptr := range f.pending {
		ptr.SetStatus(reflector.Loaded)
		for _, id := range failed {
			if ptr.ID == id {
				ptr.SetStatus(reflector.Failed)
			}
		}
	}
	f.pending = nil
}
