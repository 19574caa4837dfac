package reflector

import "fmt"

// ComponentStatus is the loading state of an entity component.
type ComponentStatus uint8

// Component states.
//
//	Unloaded -> Loading -> Loaded | LoadingFailed
//	Loaded | LoadingFailed -> Unloaded
const (
	ComponentUnloaded ComponentStatus = iota
	ComponentLoading
	ComponentLoaded
	ComponentLoadingFailed
)

// String implements fmt.Stringer.
func (s ComponentStatus) String() string {
	switch s {
	case ComponentUnloaded:
		return "unloaded"
	case ComponentLoading:
		return "loading"
	case ComponentLoaded:
		return "loaded"
	case ComponentLoadingFailed:
		return "loading-failed"
	default:
		return fmt.Sprintf("ComponentStatus(%d)", uint8(s))
	}
}

// LoadingContext carries the services used by component loading.
type LoadingContext struct {
	ResourceSystem ResourceSystem
}

// Component is an instance of an entity component type.
type Component struct {
	*Object
	status ComponentStatus
}

// NewComponent instantiates an entity component type.
func NewComponent(t *TypeInfo) (*Component, error) {
	if !t.EntityComponent {
		return nil, fmt.Errorf("reflector: %s is not an entity component", t.Name)
	}
	if t.Abstract {
		return nil, &AbstractTypeError{Type: t.Name}
	}
	return &Component{Object: t.CreateType()}, nil
}

// Status returns the loading state.
func (c *Component) Status() ComponentStatus { return c.status }

// Load requests the resources of the component. Components without
// properties are loaded immediately.
func (c *Component) Load(ctx LoadingContext, requester RequesterID) {
	if len(c.typeInfo.Properties) == 0 {
		c.status = ComponentLoaded
		return
	}
	c.typeInfo.LoadResources(ctx.ResourceSystem, requester, c.Object)
	c.status = ComponentLoading
}

// Unload releases the resources of the component.
func (c *Component) Unload(ctx LoadingContext, requester RequesterID) {
	if len(c.typeInfo.Properties) > 0 {
		c.typeInfo.UnloadResources(ctx.ResourceSystem, requester, c.Object)
	}
	c.status = ComponentUnloaded
}

// UpdateLoading advances a loading component once its resources settle.
func (c *Component) UpdateLoading() {
	if c.status != ComponentLoading {
		return
	}
	if len(c.typeInfo.Properties) == 0 {
		c.status = ComponentLoaded
		return
	}
	switch c.typeInfo.ResourceLoadingStatus(c.Object) {
	case Loading:
	case Failed:
		c.status = ComponentLoadingFailed
	default:
		c.status = ComponentLoaded
	}
}
