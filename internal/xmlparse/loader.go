package xmlparse

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

// SourceRoot is one directory searched for dialect XML files and anything
// they <include>. Roots are searched in order; the first root containing a
// given basename wins, matching how the reference toolchain layers a
// standard message set underneath a site-local override directory.
type SourceRoot struct {
	FS   fs.FS
	Name string // diagnostic label, e.g. the directory path
}

// Loader resolves a forest of dialect XML files, including their <include>
// graphs, into a Protocol. It is stateful only for the duration of one Load
// call: the visited-path set exists to stop cyclic includes, not to cache
// across calls.
type Loader struct {
	roots   []SourceRoot
	exclude map[string]bool

	visited  map[string]bool
	loading  map[string]bool
	dialects map[string]ir.Dialect
	order    []string
	warnings []string
}

// NewLoader builds a Loader over the given ordered source roots.
func NewLoader(roots ...SourceRoot) *Loader {
	return &Loader{roots: roots}
}

// SetExcludeDialects installs the set of dialect names that must never be
// loaded, even when some other dialect's <include> names them: per the
// resolution rule, exclude always wins, and a required-but-excluded include
// simply contributes no symbols rather than erroring as unresolved.
func (l *Loader) SetExcludeDialects(names []string) {
	l.exclude = make(map[string]bool, len(names))
	for _, n := range names {
		l.exclude[dialectKey(n)] = true
	}
}

// Warnings returns the non-fatal diagnostics accumulated by the most recent
// Load call (unrecognised elements, etc.).
func (l *Loader) Warnings() []string { return l.warnings }

// DiscoverEntryFiles lists every dialect XML basename found across the
// loader's source roots, in root order, first-root-wins on a duplicate
// basename. It is the entry-file list Load uses when the caller has no
// explicit set of dialects to parse, mirroring readFile's own
// first-match-wins root layering.
func (l *Loader) DiscoverEntryFiles() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, root := range l.roots {
		matches, err := fs.Glob(root.FS, "*.xml")
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root.Name, err)
		}
		for _, m := range matches {
			base := filepath.Base(m)
			if seen[base] {
				continue
			}
			seen[base] = true
			names = append(names, base)
		}
	}
	return names, nil
}

// Load parses entryFiles (dialect basenames, e.g. "common.xml") and
// everything they transitively include, returning a Protocol containing one
// Dialect per distinct file successfully loaded.
func (l *Loader) Load(entryFiles ...string) (ir.Protocol, error) {
	l.visited = make(map[string]bool)
	l.loading = make(map[string]bool)
	l.dialects = make(map[string]ir.Dialect)
	l.order = nil
	l.warnings = nil

	for _, name := range entryFiles {
		if _, err := l.loadDialect(name); err != nil {
			return ir.Protocol{}, err
		}
	}

	pb := ir.NewProtocolBuilder()
	for _, name := range l.order {
		if _, err := pb.AddDialect(l.dialects[name]); err != nil {
			return ir.Protocol{}, err
		}
	}
	return pb.Build()
}

// loadDialect parses basename (and its includes) if not already loaded,
// returning the resulting Dialect. Repeated requests for an
// already-in-progress basename (a cycle) return an empty Dialect without
// re-entering the parse.
func (l *Loader) loadDialect(basename string) (ir.Dialect, error) {
	key := dialectKey(basename)
	if l.exclude[key] {
		return ir.Dialect{}, nil
	}
	if d, ok := l.dialects[key]; ok {
		return d, nil
	}
	if l.loading[key] {
		// Cycle: the including file's own include chain looped back here.
		// Per the resolution rule this is silently skipped, leaving the
		// caller without this dialect's symbols rather than erroring.
		return ir.Dialect{}, nil
	}
	l.loading[key] = true
	defer delete(l.loading, key)

	path, content, err := l.readFile(basename)
	if err != nil {
		return ir.Dialect{}, err
	}
	canonical := canonicalPath(path)
	if l.visited[canonical] {
		return l.dialects[key], nil
	}
	l.visited[canonical] = true

	doc, err := ParseFile(path, content)
	if err != nil {
		return ir.Dialect{}, err
	}
	l.warnings = append(l.warnings, doc.warnings...)

	db := ir.NewDialectBuilder().SetName(key)
	if doc.dialectID != nil {
		db.SetDialectID(*doc.dialectID)
	}
	if doc.version != nil {
		db.SetVersion(*doc.version)
	}

	for _, includeName := range doc.includes {
		db.AddInclude(dialectKey(includeName))
		included, err := l.loadDialect(includeName)
		if err != nil {
			return ir.Dialect{}, fmt.Errorf("%s: resolving <include>%s</include>: %w", path, includeName, err)
		}
		for _, m := range included.Messages() {
			inherited := m
			if m.DefinedIn() == "" {
				b := m.ToBuilder().SetDefinedIn(included.Name())
				built, err := b.Build()
				if err != nil {
					return ir.Dialect{}, err
				}
				inherited = built
			}
			db.AddMessage(inherited)
		}
		for _, e := range included.Enums() {
			db.AddEnum(e)
		}
	}

	for _, m := range doc.messages {
		db.AddMessage(m)
	}
	for _, e := range doc.enums {
		if existing, ok := db.Enum(e.Name()); ok {
			merged, err := mergeEnum(existing, e)
			if err != nil {
				return ir.Dialect{}, err
			}
			db.AddEnum(merged)
			continue
		}
		db.AddEnum(e)
	}

	d, err := db.Build()
	if err != nil {
		return ir.Dialect{}, err
	}
	l.dialects[key] = d
	l.order = append(l.order, key)
	return d, nil
}

// mergeEnum folds a local enum declaration over an inherited enum of the
// same name: local entries override inherited ones of the same value, and
// everything else (bitmask-ness, description, deprecation) is taken from the
// local declaration when the local enum set any of it.
func mergeEnum(inherited, local ir.Enum) (ir.Enum, error) {
	b := inherited.ToBuilder()
	if local.Bitmask() {
		b.SetBitmask(true)
	}
	if local.Description() != "" {
		b.SetDescription(local.Description())
	}
	if local.Deprecated() != nil {
		b.SetDeprecated(*local.Deprecated())
	}
	for _, entry := range local.Entries() {
		b.AddEntry(entry)
	}
	return b.Build()
}

// readFile searches the ordered source roots for basename, returning the
// first match.
func (l *Loader) readFile(basename string) (path, content string, err error) {
	base := filepath.Base(basename)
	for _, root := range l.roots {
		data, err := fs.ReadFile(root.FS, base)
		if err != nil {
			continue
		}
		return filepath.Join(root.Name, base), string(data), nil
	}
	return "", "", fmt.Errorf("unresolved include: %q not found in any source root", basename)
}

func dialectKey(basename string) string {
	base := filepath.Base(basename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func canonicalPath(path string) string {
	return filepath.Clean(path)
}
