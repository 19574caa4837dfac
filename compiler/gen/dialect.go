package gen

// TypeGenerator generates the per-type code.
// It is called once per reflected type of the graph.
type TypeGenerator interface {
	// GenTypeInfo generates the type-info unit of the type.
	GenTypeInfo(t *Type) ([]byte, error)
}

// EnumGenerator generates the per-enum code.
type EnumGenerator interface {
	// GenEnumInfo generates the type-info unit of the enum.
	GenEnumInfo(e *Enum) ([]byte, error)
}

// ModuleGenerator generates graph-level code.
// It is called once per generation run.
type ModuleGenerator interface {
	// GenModule generates the registration unit of the module.
	GenModule(g *Graph) ([]byte, error)
}

// MinimalDialect requires only type generation.
// This is the minimum interface a dialect must implement.
type MinimalDialect interface {
	// Name returns the dialect name (e.g., "cpp").
	Name() string
	TypeGenerator
}

// Dialect defines the full interface for target-specific code generation.
// The generator orchestrates calling these methods and writing the
// returned units to disk; enum and module generation are detected at
// runtime, so a dialect may implement MinimalDialect only.
//
// Usage:
//
//	import "github.com/BobbyAnguelov/reflector/compiler/gen/cpp"
//
//	generator := gen.NewGenerator(graph).WithDialect(cpp.NewDialect())
//	err := generator.Generate(ctx)
type Dialect interface {
	MinimalDialect
	EnumGenerator
	ModuleGenerator
}
