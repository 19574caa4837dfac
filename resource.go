package reflector

import (
	"fmt"

	"github.com/google/uuid"
)

// ResourceID is the data path of an externally loaded asset.
type ResourceID string

// ResourceTypeID identifies the kind of a resource.
type ResourceTypeID uint32

// RequesterID identifies the owner of a resource request. Every load
// issued by a requester is paired with an unload by the same requester.
type RequesterID uuid.UUID

// NewRequesterID returns a new random requester ID.
func NewRequesterID() RequesterID {
	return RequesterID(uuid.New())
}

// String implements fmt.Stringer.
func (id RequesterID) String() string {
	return uuid.UUID(id).String()
}

// LoadingStatus is the state of a resource, or the aggregated state of
// the resources held by an instance.
type LoadingStatus uint8

// Loading states.
const (
	Unloaded LoadingStatus = iota
	Loading
	Loaded
	Unloading
	Failed
)

// String implements fmt.Stringer.
func (s LoadingStatus) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Unloading:
		return "unloading"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadingStatus(%d)", uint8(s))
	}
}

// ResourcePtr references an externally loaded asset.
type ResourcePtr struct {
	ID ResourceID
	// TypeID is the expected resource type, zero for raw pointers.
	TypeID ResourceTypeID

	status LoadingStatus
}

// IsSet reports if the pointer references a resource.
func (p *ResourcePtr) IsSet() bool { return p.ID != "" }

// Status returns the loading status of the resource.
func (p *ResourcePtr) Status() LoadingStatus { return p.status }

// SetStatus is called by the resource system as the request progresses.
func (p *ResourcePtr) SetStatus(s LoadingStatus) { p.status = s }

// IsLoaded reports if the resource is loaded.
func (p *ResourcePtr) IsLoaded() bool { return p.status == Loaded }

// IsLoading reports if a load request is in flight.
func (p *ResourcePtr) IsLoading() bool { return p.status == Loading }

// IsUnloaded reports if the resource is released.
func (p *ResourcePtr) IsUnloaded() bool { return p.status == Unloaded }

// HasLoadingFailed reports if the last load request failed.
func (p *ResourcePtr) HasLoadingFailed() bool { return p.status == Failed }

// clone copies the reference but not the loading state.
func (p *ResourcePtr) clone() *ResourcePtr {
	return &ResourcePtr{ID: p.ID, TypeID: p.TypeID}
}

// ResourceSystem serves resource requests.
type ResourceSystem interface {
	LoadResource(ptr *ResourcePtr, requester RequesterID)
	UnloadResource(ptr *ResourcePtr, requester RequesterID)
}
