package reflector

import (
	"errors"
	"fmt"
)

// Standard sentinel errors of the runtime type system.
var (
	// ErrNotRegistered is returned when a type ID has no registered record.
	ErrNotRegistered = errors.New("reflector: type not registered")

	// ErrAlreadyRegistered is returned when a type ID is registered twice.
	ErrAlreadyRegistered = errors.New("reflector: type already registered")

	// ErrUnreachable is the panic value class of dispatches on a property
	// ID that the operation cannot handle.
	ErrUnreachable = errors.New("reflector: unreachable code")

	// ErrAbstractType is the panic value of abstract type instantiation.
	ErrAbstractType = errors.New("reflector: cannot instantiate an abstract type")

	// ErrLoadInFlight is the panic value class of unload polling while a
	// resource load request is still outstanding.
	ErrLoadInFlight = errors.New("reflector: resource load still in flight")
)

// NotRegisteredError represents a lookup of a type that is not registered.
type NotRegisteredError struct {
	id   TypeID
	name string // Optional: the name of the missing type
}

// Error returns the error string.
func (e *NotRegisteredError) Error() string {
	if e.name != "" {
		return fmt.Sprintf("reflector: type %s (0x%08X) not registered", e.name, uint32(e.id))
	}
	return fmt.Sprintf("reflector: type 0x%08X not registered", uint32(e.id))
}

// Is reports whether the target error matches NotRegisteredError.
// This allows errors.Is(err, ErrNotRegistered) to return true.
func (e *NotRegisteredError) Is(err error) bool {
	return err == ErrNotRegistered
}

// ID returns the missing type ID.
func (e *NotRegisteredError) ID() TypeID {
	return e.id
}

// NewNotRegisteredError returns a new NotRegisteredError for the given type.
func NewNotRegisteredError(id TypeID, name string) *NotRegisteredError {
	return &NotRegisteredError{id: id, name: name}
}

// IsNotRegistered returns true if the error is a NotRegisteredError.
func IsNotRegistered(err error) bool {
	if err == nil {
		return false
	}
	var e *NotRegisteredError
	return errors.As(err, &e) || errors.Is(err, ErrNotRegistered)
}

// RegistrationError represents a rejected Register or Unregister call.
type RegistrationError struct {
	Type string // Qualified type name
	msg  string
	wrap error
}

// Error returns the error string.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("reflector: register %s: %s", e.Type, e.msg)
}

// Unwrap returns the underlying error.
func (e *RegistrationError) Unwrap() error {
	return e.wrap
}

// NewRegistrationError returns a new RegistrationError for the given type.
func NewRegistrationError(typ, msg string, wrap error) *RegistrationError {
	return &RegistrationError{Type: typ, msg: msg, wrap: wrap}
}

// IsRegistrationError returns true if the error is a RegistrationError.
func IsRegistrationError(err error) bool {
	if err == nil {
		return false
	}
	var e *RegistrationError
	return errors.As(err, &e)
}

// UnreachableError is the panic value of an operation dispatched on a
// property ID it cannot serve, e.g. an array operation on a scalar.
type UnreachableError struct {
	Op       string     // Operation name
	Type     string     // Qualified type name
	Property PropertyID // Dispatched property ID
}

// Error returns the error string.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("reflector: unreachable: %s.%s on property 0x%08X", e.Type, e.Op, uint32(e.Property))
}

// Is reports whether the target error matches ErrUnreachable.
func (e *UnreachableError) Is(err error) bool {
	return err == ErrUnreachable
}

func unreachable(t *TypeInfo, op string, id PropertyID) {
	panic(&UnreachableError{Op: op, Type: t.Name, Property: id})
}

// AbstractTypeError is the panic value of instantiating or resetting an
// abstract type.
type AbstractTypeError struct {
	Type string
}

// Error returns the error string.
func (e *AbstractTypeError) Error() string {
	return fmt.Sprintf("reflector: cannot instantiate abstract type %s", e.Type)
}

// Is reports whether the target error matches ErrAbstractType.
func (e *AbstractTypeError) Is(err error) bool {
	return err == ErrAbstractType
}

// LoadInFlightError is the panic value of ResourceUnloadingStatus on an
// object holding a resource that is still loading.
type LoadInFlightError struct {
	Type     string
	Resource ResourceID
}

// Error returns the error string.
func (e *LoadInFlightError) Error() string {
	return fmt.Sprintf("reflector: %s: resource %s still loading", e.Type, e.Resource)
}

// Is reports whether the target error matches ErrLoadInFlight.
func (e *LoadInFlightError) Is(err error) bool {
	return err == ErrLoadInFlight
}
