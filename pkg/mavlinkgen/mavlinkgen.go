// Package mavlinkgen turns a directory tree of MAVLink dialect XML files
// into a generated Go package tree: one package per dialect, with typed
// message structs, enum constants, and decode/encode dispatch.
//
// # Example usage
//
//	cfg := mavlinkgen.Config{
//	    Sources:     []string{"./dialects/standard", "./dialects/site"},
//	    Destination: "./internal/gen/mavlink",
//	    ModulePath:  "example.com/myproject/internal/gen/mavlink",
//	    EntryFiles:  []string{"common.xml"},
//	}
//	result, err := mavlinkgen.Run(cfg)
//	if err != nil {
//	    // handle error
//	}
//	// result.Skipped is true when the fingerprint cache proved the
//	// destination tree is already up to date.
package mavlinkgen

import (
	"fmt"
	"os"

	"github.com/shapestone/mavlinkgen/internal/codegen"
	"github.com/shapestone/mavlinkgen/internal/filter"
	"github.com/shapestone/mavlinkgen/internal/fingerprint"
	"github.com/shapestone/mavlinkgen/internal/xmlparse"
)

// Config is the full set of knobs a driver (CLI or embedding program) can
// set for one generation run, matching the external interface the dialect
// compiler publishes.
type Config struct {
	// Sources is the ordered list of directories searched for dialect XML
	// files; the first directory containing a given basename wins.
	Sources []string
	// EntryFiles are the dialect XML basenames to load, e.g. "common.xml".
	// Anything they <include> is resolved automatically.
	EntryFiles []string
	// Destination is the output directory for the generated Go tree.
	Destination string
	// ModulePath is the Go module path the generated tree is rooted under.
	ModulePath string
	// IncludeDialects, if non-empty, restricts generation to these
	// top-level dialects.
	IncludeDialects []string
	// ExcludeDialects drops these dialects even if transitively required;
	// exclude always wins over include.
	ExcludeDialects []string
	// SerdeEnabled emits struct tags suitable for a JSON-style
	// serialisation framework on every generated field.
	SerdeEnabled bool
	// GenerateTests emits a round-trip encode/decode test per message.
	GenerateTests bool
	// ManifestPath, if set, is read to discover which dialect feature
	// flags the host project has enabled; see loadManifestDialects.
	ManifestPath string
	// SkipIfUnchanged enables the fingerprint cache: when true and the
	// destination already carries a fingerprint matching this run's
	// inputs, Run returns early without touching the output tree.
	SkipIfUnchanged bool
}

// Result reports what a Run call actually did.
type Result struct {
	// DialectCount is the number of dialects written (or that would have
	// been written, if Skipped).
	DialectCount int
	// Warnings carries non-fatal diagnostics accumulated while parsing,
	// e.g. unrecognised XML elements.
	Warnings []string
	// Skipped is true when SkipIfUnchanged short-circuited generation
	// because the fingerprint matched the existing destination tree.
	Skipped bool
}

// resolveEntryFiles picks the dialect basenames the loader seeds from. An
// explicit entryFiles list always wins. Otherwise the reachable set starts
// from includeDialects (config- or manifest-derived) if any were given, else
// every dialect XML file the loader can find across the source roots.
func resolveEntryFiles(loader *xmlparse.Loader, entryFiles, includeDialects []string) ([]string, error) {
	if len(entryFiles) > 0 {
		return entryFiles, nil
	}
	if len(includeDialects) > 0 {
		names := make([]string, len(includeDialects))
		for i, d := range includeDialects {
			names[i] = d + ".xml"
		}
		return names, nil
	}
	return loader.DiscoverEntryFiles()
}

// Run executes one full generation: load, filter, optionally skip via the
// fingerprint cache, then generate. It returns a non-nil error on any
// failure. The generated tree replaces only the files it writes, atomically,
// file by file; a failure during generation leaves the files written before
// it in place.
func Run(cfg Config) (Result, error) {
	if len(cfg.Sources) == 0 {
		return Result{}, fmt.Errorf("mavlinkgen: at least one source directory is required")
	}
	if cfg.Destination == "" {
		return Result{}, fmt.Errorf("mavlinkgen: a destination directory is required")
	}

	manifestDialects, err := loadManifestDialects(cfg.ManifestPath)
	if err != nil {
		return Result{}, err
	}
	includeDialects := cfg.IncludeDialects
	if len(includeDialects) == 0 {
		includeDialects = manifestDialects
	}

	var roots []xmlparse.SourceRoot
	for _, src := range cfg.Sources {
		roots = append(roots, xmlparse.SourceRoot{FS: os.DirFS(src), Name: src})
	}

	loader := xmlparse.NewLoader(roots...)
	loader.SetExcludeDialects(cfg.ExcludeDialects)

	entryFiles, err := resolveEntryFiles(loader, cfg.EntryFiles, includeDialects)
	if err != nil {
		return Result{}, fmt.Errorf("mavlinkgen: resolving entry files: %w", err)
	}

	protocol, err := loader.Load(entryFiles...)
	if err != nil {
		return Result{}, fmt.Errorf("mavlinkgen: loading dialects: %w", err)
	}

	filtered, err := filter.Apply(protocol, filter.Options{
		IncludeDialects: includeDialects,
		ExcludeDialects: cfg.ExcludeDialects,
	})
	if err != nil {
		return Result{}, fmt.Errorf("mavlinkgen: filtering dialects: %w", err)
	}

	fpParams := fingerprint.Params{
		ModulePath:    cfg.ModulePath,
		SerdeEnabled:  cfg.SerdeEnabled,
		GenerateTests: cfg.GenerateTests,
	}
	sum := fingerprint.Compute(filtered, fpParams)

	if cfg.SkipIfUnchanged {
		if prev, ok := fingerprint.Load(cfg.Destination); ok && prev == sum {
			return Result{
				DialectCount: filtered.Len(),
				Warnings:     loader.Warnings(),
				Skipped:      true,
			}, nil
		}
	}

	gen := codegen.New(codegen.Params{
		ModulePath:    cfg.ModulePath,
		SerdeEnabled:  cfg.SerdeEnabled,
		GenerateTests: cfg.GenerateTests,
	})
	if err := gen.Generate(filtered, cfg.Destination); err != nil {
		return Result{}, fmt.Errorf("mavlinkgen: generating: %w", err)
	}

	if cfg.SkipIfUnchanged {
		if err := fingerprint.Save(cfg.Destination, sum); err != nil {
			return Result{}, fmt.Errorf("mavlinkgen: persisting fingerprint: %w", err)
		}
	}

	return Result{
		DialectCount: filtered.Len(),
		Warnings:     loader.Warnings(),
	}, nil
}
