package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the structured errors below.
var (
	// ErrInvalidSchema indicates a type database error.
	ErrInvalidSchema = errors.New("reflector: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("reflector: missing configuration")
	// ErrInvalidInheritance indicates a broken parent relation.
	ErrInvalidInheritance = errors.New("reflector: invalid inheritance")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("reflector: code generation failed")
	// ErrValidationFailed indicates a graph that resolves but cannot be
	// generated, e.g. colliding IDs or output files.
	ErrValidationFailed = errors.New("reflector: validation failed")
)

// Ref locates a diagnostic in the type database. The zero Ref refers to
// the database as a whole.
type Ref struct {
	Type       string
	TypeID     TypeID
	Property   string
	PropertyID PropertyID
}

// TypeRef returns the location of a reflected type.
func TypeRef(t *Type) Ref {
	if t == nil {
		return Ref{}
	}
	return Ref{Type: t.QualifiedName(), TypeID: t.ID}
}

// EnumRef returns the location of a reflected enum.
func EnumRef(e *Enum) Ref {
	if e == nil {
		return Ref{}
	}
	return Ref{Type: e.QualifiedName(), TypeID: e.ID}
}

// PropertyRef returns the location of a property within its owner.
func PropertyRef(p *Property) Ref {
	r := TypeRef(p.Owner)
	r.Property, r.PropertyID = p.Name, p.ID
	return r
}

// String formats the location as "EE::Foo [0x0000002A] m_bar [0x00000007]".
func (r Ref) String() string {
	if r.Type == "" && r.Property == "" {
		return "type database"
	}
	s := fmt.Sprintf("%s [0x%08X]", r.Type, uint32(r.TypeID))
	if r.Property != "" {
		s += fmt.Sprintf(" %s [0x%08X]", r.Property, uint32(r.PropertyID))
	}
	return s
}

// SchemaError reports a type database entry that cannot be resolved.
type SchemaError struct {
	Ref
	Message string
}

func (e *SchemaError) Error() string {
	return "reflector: schema: " + e.Ref.String() + ": " + e.Message
}

// Is matches ErrInvalidSchema.
func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError at the given location.
func NewSchemaError(ref Ref, message string) *SchemaError {
	return &SchemaError{Ref: ref, Message: message}
}

// ValidationError reports a resolved graph that cannot be generated.
// Value holds the offending ID, size or file name.
type ValidationError struct {
	Ref
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reflector: validation: %s: %s (%v)", e.Ref, e.Message, e.Value)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// NewValidationError returns a ValidationError at the given location.
func NewValidationError(ref Ref, value any, message string) *ValidationError {
	return &ValidationError{Ref: ref, Value: value, Message: message}
}

// InheritanceError reports a broken parent relation. Cycle is set for
// inheritance cycles and lists the chain, ending at the repeated type.
type InheritanceError struct {
	Type    string
	Parent  string
	Cycle   []string
	Message string
}

func (e *InheritanceError) Error() string {
	if len(e.Cycle) > 0 {
		return "reflector: inheritance cycle: " + strings.Join(e.Cycle, " -> ")
	}
	return fmt.Sprintf("reflector: inheritance: %s derives from %s: %s", e.Type, e.Parent, e.Message)
}

// Is matches ErrInvalidInheritance.
func (e *InheritanceError) Is(target error) bool { return target == ErrInvalidInheritance }

// NewInheritanceError returns an InheritanceError for the typ -> parent edge.
func NewInheritanceError(typ, parent, message string) *InheritanceError {
	return &InheritanceError{Type: typ, Parent: parent, Message: message}
}

// NewCycleError returns an InheritanceError for the given chain.
func NewCycleError(cycle []string) *InheritanceError {
	return &InheritanceError{Type: cycle[0], Cycle: cycle}
}

// ConfigError reports an invalid generator option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("reflector: config: %s: %s", e.Option, e.Message)
	}
	return fmt.Sprintf("reflector: config: %s=%v: %s", e.Option, e.Value, e.Message)
}

// Is matches ErrMissingConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a ConfigError for the given option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// Phase names the step of Generate that failed.
type Phase uint8

// Generation phases, in execution order.
const (
	PhaseSetup Phase = iota + 1
	PhaseType
	PhaseEnum
	PhaseModule
	PhaseManifest
	PhaseCleanup
)

var phaseNames = [...]string{
	PhaseSetup:    "setup",
	PhaseType:     "type",
	PhaseEnum:     "enum",
	PhaseModule:   "module",
	PhaseManifest: "manifest",
	PhaseCleanup:  "cleanup",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) && phaseNames[p] != "" {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// GenerationError reports a failure to render or write an output unit.
type GenerationError struct {
	Phase  Phase
	Unit   string // Output file, relative to the target directory
	Detail string
	Cause  error
}

func (e *GenerationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "reflector: generate %s", e.Phase)
	if e.Unit != "" {
		fmt.Fprintf(&b, " %s", e.Unit)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError for the given unit.
func NewGenerationError(phase Phase, unit, detail string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, Unit: unit, Detail: detail, Cause: cause}
}

func isError[T error](err error) bool {
	var e T
	return errors.As(err, &e)
}

// IsSchemaError reports if err is or wraps a *SchemaError.
func IsSchemaError(err error) bool { return isError[*SchemaError](err) }

// IsConfigError reports if err is or wraps a *ConfigError.
func IsConfigError(err error) bool { return isError[*ConfigError](err) }

// IsInheritanceError reports if err is or wraps an *InheritanceError.
func IsInheritanceError(err error) bool { return isError[*InheritanceError](err) }

// IsGenerationError reports if err is or wraps a *GenerationError.
func IsGenerationError(err error) bool { return isError[*GenerationError](err) }

// IsValidationError reports if err is or wraps a *ValidationError.
func IsValidationError(err error) bool { return isError[*ValidationError](err) }
