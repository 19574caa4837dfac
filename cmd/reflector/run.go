package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/BobbyAnguelov/reflector"
	"github.com/BobbyAnguelov/reflector/compiler/gen"
	"github.com/BobbyAnguelov/reflector/compiler/gen/cpp"
	"github.com/BobbyAnguelov/reflector/compiler/load"
)

// debounce coalesces the burst of events editors produce on save.
const debounce = 200 * time.Millisecond

// newConfig merges the configuration file and the flags. Flags win.
func newConfig(opts options) (*gen.Config, error) {
	file := &gen.ConfigFile{}
	if opts.config != "" {
		f, err := gen.LoadConfigFile(opts.config)
		if err != nil {
			return nil, err
		}
		file = f
	}
	if opts.target != "" {
		file.Target = opts.target
	}
	if opts.module != "" {
		file.Module = opts.module
	}
	if opts.workers != 0 {
		file.Workers = opts.workers
	}
	for _, name := range strings.Split(opts.features, ",") {
		if name = strings.TrimSpace(name); name != "" {
			file.Features = append(file.Features, name)
		}
	}
	gopts, err := file.Options()
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(gopts...)
}

// run loads the database once and generates the module units.
func run(ctx context.Context, log logrus.FieldLogger, opts options) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}
	schema, err := load.ReadFile(opts.db)
	if err != nil {
		return err
	}
	graph, err := gen.NewGraph(cfg, schema)
	if err != nil {
		return err
	}
	generator := gen.NewGenerator(graph).WithDialect(cpp.NewDialect()).WithLogger(log)
	if err := generator.Generate(ctx); err != nil {
		return err
	}
	m := generator.Metrics()
	log.WithFields(logrus.Fields{
		"generated": m.FilesGenerated,
		"unchanged": m.FilesUnchanged,
		"bytes":     m.TotalBytes,
	}).Info("units written")
	if opts.verify {
		return verify(log, graph)
	}
	return nil
}

// verify registers the graph in a runtime registry and instantiates every
// concrete type from its default instance.
func verify(log logrus.FieldLogger, graph *gen.Graph) error {
	r := reflector.NewRegistry()
	if err := r.RegisterGraph(graph); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer r.UnregisterAll()
	var concrete int
	for _, t := range r.Types() {
		if t.Abstract {
			continue
		}
		if obj := t.CreateType(); !t.AreAllPropertyValuesEqual(obj, t.DefaultInstance) {
			return fmt.Errorf("verify: %s differs from its default instance", t.Name)
		}
		concrete++
	}
	log.WithFields(logrus.Fields{
		"types":    r.Count(),
		"concrete": concrete,
	}).Info("runtime registration verified")
	return nil
}

// watch runs the generation, then again whenever the database or the
// configuration file changes, until ctx is done. Generation errors are
// logged and do not stop the watch.
func watch(ctx context.Context, log logrus.FieldLogger, opts options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	files := map[string]bool{}
	for _, path := range []string{opts.db, opts.config} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		// Editors replace files on save, so the directory is watched.
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	regenerate := func() {
		if err := run(ctx, log, opts); err != nil {
			log.WithError(err).Error("generation failed")
		}
	}
	regenerate()

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.WithField("file", ev.Name).Debug("change detected")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		case <-timer.C:
			regenerate()
		}
	}
}
