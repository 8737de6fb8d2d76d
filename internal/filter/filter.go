// Package filter implements dialect selection: narrowing a fully loaded
// Protocol down to the top-level dialects the caller actually asked for.
package filter

import (
	"github.com/shapestone/mavlinkgen/internal/ir"
)

// Options configures dialect selection. IncludeDialects, when non-empty,
// restricts the result to exactly those dialects; a dialect they include is
// not kept as its own entry unless it is named too. Otherwise every loaded
// dialect is a candidate. ExcludeDialects always wins, dropping a dialect
// even if IncludeDialects names it.
type Options struct {
	IncludeDialects []string
	ExcludeDialects []string
}

// Apply narrows p down to its top-level dialects and returns a new Protocol
// containing only those. A dialect that was loaded purely as somebody
// else's <include> dependency is dropped unless it is also named directly:
// its symbols are already folded into the including dialect (the loader
// does that merge), so exposing it again as its own top-level entry would
// be redundant. exclude always wins, even over an explicit include.
func Apply(p ir.Protocol, opts Options) (ir.Protocol, error) {
	exclude := toSet(opts.ExcludeDialects)

	var roots []string
	if len(opts.IncludeDialects) > 0 {
		roots = opts.IncludeDialects
	} else {
		for _, d := range p.Dialects() {
			roots = append(roots, d.Name())
		}
	}

	reachable := make(map[string]bool, len(roots))
	for _, name := range roots {
		if !exclude[name] {
			reachable[name] = true
		}
	}

	b := ir.NewProtocolBuilder()
	// Preserve the protocol's original order rather than roots' order, so
	// output ordering stays stable regardless of how include/exclude were
	// specified.
	for _, d := range p.Dialects() {
		if !reachable[d.Name()] {
			continue
		}
		if _, err := b.AddDialect(d); err != nil {
			return ir.Protocol{}, err
		}
	}
	return b.Build()
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
