package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureIncremental skips rewriting generated files whose content did
	// not change since the previous run, keeping their timestamps stable for
	// the C++ build.
	FeatureIncremental = Feature{
		Name:        "incremental",
		Stage:       Beta,
		Default:     false,
		Description: "Incremental keeps a fingerprint cache of generated files and only rewrites changed ones",
		cleanup: func(c *Config) error {
			return remove(c.Target, CacheFile)
		},
	}

	// FeatureGoManifest emits a Go package holding the type and property IDs
	// of the database, for Go-side asset tooling.
	FeatureGoManifest = Feature{
		Name:        "go-manifest",
		Stage:       Experimental,
		Default:     false,
		Description: "GoManifest generates a Go package with the numeric type and property IDs",
		cleanup: func(c *Config) error {
			if c.Target == "" || c.ManifestPackage == "" {
				return nil
			}
			return os.RemoveAll(filepath.Join(c.Target, c.ManifestPackage))
		},
	}

	// FeatureModuleUnit emits the module registration unit calling every
	// generated registration function in parents-first order.
	FeatureModuleUnit = Feature{
		Name:        "module",
		Stage:       Stable,
		Default:     true,
		Description: "Module generates the RegisterTypes/UnregisterTypes unit of the engine module",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureIncremental,
		FeatureGoManifest,
		FeatureModuleUnit,
	}
	// allFeatures includes all public and private features.
	allFeatures = AllFeatures
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but breaking-changes to their output are expected.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the reflector codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// featureByName returns the feature registered under name.
func featureByName(name string) (Feature, bool) {
	for _, f := range allFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// cleanupFeatures removes the output of the disabled features.
func cleanupFeatures(c *Config) error {
	for _, f := range allFeatures {
		if f.cleanup == nil || c.hasFeature(f.Name) {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return err
		}
	}
	return nil
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
