// Package gen provides code generation for the reflected types of an
// engine module.
//
// This package resolves the type database dumped by the header parser into
// an in-memory graph and drives a dialect that emits the runtime
// type-information units of every reflected type and enum.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Type database (load.Schema, YAML or JSON)
//	        ↓
//	   Graph (resolved types, enums and parents)
//	        ↓
//	   Dialect (target-specific code, e.g. cpp)
//	        ↓
//	   Generated units ({target}/*.generated.cpp)
//
// # Key Types
//
//   - Graph: Holds all Type and Enum definitions with validation
//   - Type: Represents a reflected class with its parents and properties
//   - Property: A reflected data member and its classification
//   - Enum: A reflected enumeration and its constants
//   - Config: Global configuration for code generation
//
// # Interface Hierarchy
//
//	MinimalDialect (basic dialect support)
//	├── Name() string
//	└── TypeGenerator (GenTypeInfo, once per type)
//
//	Dialect (full interface, extends MinimalDialect)
//	├── EnumGenerator (GenEnumInfo, once per enum)
//	└── ModuleGenerator (GenModule, once per run)
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: Type database errors, located by a Ref
//   - ConfigError: Configuration errors
//   - InheritanceError: Parent resolution errors and cycles
//   - GenerationError: Code generation errors, tagged with a Phase
//   - ValidationError: ID and output file collisions, located by a Ref
//
// A Ref carries the qualified type name and property name together with
// their numeric IDs, the values found in the generated units.
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, schema)
//	if err != nil {
//	    if gen.IsInheritanceError(err) {
//	        // Handle parent-specific error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./Code/Engine/_Module/Generated"),
//	    gen.WithFeatures(gen.FeatureIncremental),
//	)
//
// # Features
//
//   - module: the RegisterTypes/UnregisterTypes unit of the module (default)
//   - incremental: fingerprint cache, unchanged units are not rewritten
//   - go-manifest: Go package with the numeric type and property IDs
package gen
