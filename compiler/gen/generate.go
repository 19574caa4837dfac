package gen

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Generator generates the type-info units of a graph with parallel
// execution. Types have no data dependency on each other, so every type
// and enum is generated by its own job.
type Generator struct {
	graph   *Graph
	workers int
	log     logrus.FieldLogger

	// Dialect generator for target-specific code
	// Requires at least MinimalDialect, but the full Dialect is supported
	dialect MinimalDialect

	// Optional interface implementations detected at runtime
	enumGen   EnumGenerator
	moduleGen ModuleGenerator

	metrics WriterMetrics
}

// NewGenerator creates a new generator for the given graph.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/BobbyAnguelov/reflector/compiler/gen/cpp"
//
//	gen := gen.NewGenerator(graph).WithDialect(cpp.NewDialect())
//	gen.Generate(ctx)
func NewGenerator(g *Graph) *Generator {
	workers := runtime.GOMAXPROCS(0)
	if g.Config != nil && g.Workers > 0 {
		workers = g.Workers
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Generator{
		graph:   g,
		workers: workers,
		log:     log,
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger of the generation run.
func (g *Generator) WithLogger(log logrus.FieldLogger) *Generator {
	if log != nil {
		g.log = log
	}
	return g
}

// WithDialect sets the dialect generator.
// The dialect must implement MinimalDialect at minimum.
// Additional capabilities are detected via EnumGenerator and ModuleGenerator.
func (g *Generator) WithDialect(d MinimalDialect) *Generator {
	if d != nil {
		g.dialect = d
		// Detect optional capabilities via type assertion
		if eg, ok := d.(EnumGenerator); ok {
			g.enumGen = eg
		}
		if mg, ok := d.(ModuleGenerator); ok {
			g.moduleGen = mg
		}
	}
	return g
}

// Metrics returns the metrics of the last Generate call.
func (g *Generator) Metrics() WriterMetrics {
	return g.metrics
}

// Generate generates all units and writes them to the target directory.
// Returns an error if no dialect has been set via WithDialect().
func (g *Generator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	cfg := g.graph.Config
	if cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	start := time.Now()
	log := g.log.WithFields(logrus.Fields{
		"dialect": g.dialect.Name(),
		"module":  g.graph.ModuleName(),
		"target":  cfg.Target,
	})
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return NewGenerationError(PhaseSetup, cfg.Target, "create target directory", err)
	}
	if err := cleanupFeatures(cfg); err != nil {
		return NewGenerationError(PhaseSetup, "", "cleanup disabled features", err)
	}
	var cache *Cache
	if enabled, _ := cfg.FeatureEnabled(FeatureIncremental.Name); enabled {
		c, err := LoadCache(cfg.Target)
		if err != nil {
			return NewGenerationError(PhaseSetup, CacheFile, "load cache", err)
		}
		cache = c
	}
	w := NewWriter(cfg.Target, cache)

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, t := range g.graph.Sorted() {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := g.dialect.GenTypeInfo(t)
			if err != nil {
				return NewGenerationError(PhaseType, t.FileName(), t.QualifiedName(), err)
			}
			if err := w.WriteUnit(t.FileName(), buf); err != nil {
				return NewGenerationError(PhaseType, t.FileName(), "", err)
			}
			log.WithField("type", t.QualifiedName()).Debug("type-info generated")
			return nil
		})
	}

	if g.enumGen != nil {
		for _, e := range g.graph.SortedEnums() {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				buf, err := g.enumGen.GenEnumInfo(e)
				if err != nil {
					return NewGenerationError(PhaseEnum, e.FileName(), e.QualifiedName(), err)
				}
				if err := w.WriteUnit(e.FileName(), buf); err != nil {
					return NewGenerationError(PhaseEnum, e.FileName(), "", err)
				}
				log.WithField("enum", e.QualifiedName()).Debug("enum-info generated")
				return nil
			})
		}
	}

	if g.moduleGen != nil {
		if enabled, _ := cfg.FeatureEnabled(FeatureModuleUnit.Name); enabled {
			name := g.graph.ModuleFileName()
			errg.Go(func() error {
				buf, err := g.moduleGen.GenModule(g.graph)
				if err != nil {
					return NewGenerationError(PhaseModule, name, "", err)
				}
				if err := w.WriteUnit(name, buf); err != nil {
					return NewGenerationError(PhaseModule, name, "", err)
				}
				return nil
			})
		}
	}

	if enabled, _ := cfg.FeatureEnabled(FeatureGoManifest.Name); enabled {
		name := g.graph.ManifestFile()
		errg.Go(func() error {
			buf, err := GenManifest(g.graph)
			if err != nil {
				return err
			}
			if err := w.WriteGo(name, buf); err != nil {
				return NewGenerationError(PhaseManifest, name, "", err)
			}
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return err
	}

	if cache != nil {
		for _, name := range cache.Stale() {
			if err := w.Remove(name); err != nil {
				return NewGenerationError(PhaseCleanup, name, "remove stale unit", err)
			}
			log.WithField("file", name).Info("stale unit removed")
		}
		if err := cache.Save(); err != nil {
			return NewGenerationError(PhaseCleanup, CacheFile, "", err)
		}
	}

	g.metrics = w.Metrics()
	log.WithFields(logrus.Fields{
		"written":   g.metrics.FilesGenerated,
		"unchanged": g.metrics.FilesUnchanged,
		"bytes":     g.metrics.TotalBytes,
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("generation completed")
	return nil
}

// ModuleFileName returns the name of the module registration unit.
func (g *Graph) ModuleFileName() string {
	return fileName(g.ModuleName()) + ".generated.cpp"
}
