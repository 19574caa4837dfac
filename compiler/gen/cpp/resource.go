package cpp

import (
	"fmt"

	"github.com/BobbyAnguelov/reflector/compiler/gen"
)

// resourceVisitor emits the statements applied to one resource pointer
// expression or one nested structure address.
type resourceVisitor struct {
	pointer func(expr string)
	nested  func(t *gen.Type, addr string)
}

// walkResources emits visitor calls for every resource-loadable property,
// iterating dynamic arrays, unrolling static arrays and calling once for
// scalars. Load and unload share this walk so their call sites pair up.
func (u *unit) walkResources(props []*gen.Property, v resourceVisitor) {
	for _, p := range props {
		u.property(p, func() {
			u.Line("// %s", p.Name)
			switch {
			case p.IsResourcePtr():
				switch {
				case p.IsDynamicArray():
					u.Line("for ( auto& resourcePtr : %s )", field("pActualType", p))
					u.Open()
					v.pointer("resourcePtr")
					u.Close("")
				case p.IsStaticArray():
					for i := 0; i < p.ArraySize; i++ {
						v.pointer(index("pActualType", p, i))
					}
				default:
					v.pointer(field("pActualType", p))
				}
			default:
				switch {
				case p.IsDynamicArray():
					u.Line("for ( auto& propertyValue : %s )", field("pActualType", p))
					u.Open()
					v.nested(p.Struct, "&propertyValue")
					u.Close("")
				case p.IsStaticArray():
					for i := 0; i < p.ArraySize; i++ {
						v.nested(p.Struct, "&"+index("pActualType", p, i))
					}
				default:
					v.nested(p.Struct, "&"+field("pActualType", p))
				}
			}
			u.Blank()
		})
	}
}

// resourceRequest returns the visitor issuing fn (LoadResources or
// UnloadResources) on every dependency.
func (u *unit) resourceRequest(fn string) resourceVisitor {
	single := "LoadResource"
	if fn == "UnloadResources" {
		single = "UnloadResource"
	}
	return resourceVisitor{
		pointer: func(expr string) {
			u.Line("if ( %s.IsSet() )", expr)
			u.Open()
			u.Line("pResourceSystem->%s( %s, requesterID );", single, expr)
			u.Close("")
		},
		nested: func(t *gen.Type, addr string) {
			u.Line("%s->%s( pResourceSystem, requesterID, %s );", typeInfoOf(t), fn, addr)
		},
	}
}

// emitResourceMethods emits the resource dependency lifecycle methods.
func (u *unit) emitResourceMethods() {
	loadable := u.t.LoadableProperties()
	prologue := func() {
		if len(loadable) == 0 {
			return
		}
		u.downcast("pActualType", "pType")
		u.Line("EE_ASSERT( pActualType != nullptr );")
		u.Blank()
	}

	for _, fn := range []string{"LoadResources", "UnloadResources"} {
		u.method(fmt.Sprintf("void %s( Resource::ResourceSystem* pResourceSystem, Resource::ResourceRequesterID const& requesterID, IReflectedType* pType ) const", fn), func() {
			if len(loadable) > 0 {
				u.Line("EE_ASSERT( pResourceSystem != nullptr );")
			}
			prologue()
			u.walkResources(loadable, u.resourceRequest(fn))
		})
	}

	u.method("LoadingStatus GetResourceLoadingStatus( IReflectedType* pType ) const", func() {
		u.Line("LoadingStatus status = LoadingStatus::Loaded;")
		u.Blank()
		prologue()
		u.walkResources(loadable, resourceVisitor{
			pointer: func(expr string) {
				u.Line("if ( %s.HasLoadingFailed() )", expr)
				u.Open()
				u.Line("status = LoadingStatus::Failed;")
				u.Close("")
				u.Line("else if ( %s.IsSet() && !%s.IsLoaded() )", expr, expr)
				u.Open()
				u.Line("return LoadingStatus::Loading; // Something is still loading so early-out")
				u.Close("")
			},
			nested: func(t *gen.Type, addr string) {
				u.Open()
				u.Line("LoadingStatus const nestedStatus = %s->GetResourceLoadingStatus( %s );", typeInfoOf(t), addr)
				u.Line("if ( nestedStatus == LoadingStatus::Loading )")
				u.Open()
				u.Line("return LoadingStatus::Loading; // Something is still loading so early-out")
				u.Close("")
				u.Line("else if ( nestedStatus == LoadingStatus::Failed )")
				u.Open()
				u.Line("status = LoadingStatus::Failed;")
				u.Close("")
				u.Close("")
			},
		})
		u.Line("return status;")
	})

	u.method("LoadingStatus GetResourceUnloadingStatus( IReflectedType* pType ) const", func() {
		prologue()
		u.walkResources(loadable, resourceVisitor{
			pointer: func(expr string) {
				u.Line("EE_ASSERT( !%s.IsLoading() );", expr)
				u.Line("if ( !%s.IsUnloaded() )", expr)
				u.Open()
				u.Line("return LoadingStatus::Unloading;")
				u.Close("")
			},
			nested: func(t *gen.Type, addr string) {
				u.Line("if ( %s->GetResourceUnloadingStatus( %s ) == LoadingStatus::Unloading )", typeInfoOf(t), addr)
				u.Open()
				u.Line("return LoadingStatus::Unloading;")
				u.Close("")
			},
		})
		u.Line("return LoadingStatus::Unloaded;")
	})

	u.method("ResourceTypeID GetExpectedResourceTypeForProperty( uint32_t propertyID ) const", func() {
		for _, p := range u.t.ResourcePtrProperties() {
			u.dispatch("propertyID", p, func() {
				if p.IsTypedResourcePtr() {
					u.Line("return %s::GetStaticResourceTypeID();", p.TemplateArg)
					return
				}
				u.Line("return ResourceTypeID();")
			})
		}
		u.unreachable("ResourceTypeID()")
	})
}
