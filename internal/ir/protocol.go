package ir

import "fmt"

// Protocol is an ordered mapping from dialect name to Dialect: the root of
// the immutable IR tree handed from the parser to the generator.
type Protocol struct {
	order    []string
	dialects map[string]Dialect
}

// Dialects returns the protocol's dialects in the order they were added.
func (p Protocol) Dialects() []Dialect {
	out := make([]Dialect, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.dialects[name])
	}
	return out
}

func (p Protocol) Dialect(name string) (Dialect, bool) {
	d, ok := p.dialects[name]
	return d, ok
}

func (p Protocol) Len() int { return len(p.order) }

// ProtocolBuilder builds a Protocol.
type ProtocolBuilder struct {
	order    []string
	dialects map[string]Dialect
}

func NewProtocolBuilder() *ProtocolBuilder {
	return &ProtocolBuilder{dialects: make(map[string]Dialect)}
}

func (b *ProtocolBuilder) Has(name string) bool {
	_, ok := b.dialects[name]
	return ok
}

func (b *ProtocolBuilder) Dialect(name string) (Dialect, bool) {
	d, ok := b.dialects[name]
	return d, ok
}

// AddDialect inserts or replaces a dialect by name.
func (b *ProtocolBuilder) AddDialect(d Dialect) (*ProtocolBuilder, error) {
	if _, exists := b.dialects[d.name]; !exists {
		b.order = append(b.order, d.name)
	}
	b.dialects[d.name] = d
	return b, nil
}

func (b *ProtocolBuilder) Build() (Protocol, error) {
	if len(b.dialects) == 0 {
		return Protocol{}, fmt.Errorf("ir: protocol has no dialects")
	}
	return Protocol{
		order:    append([]string(nil), b.order...),
		dialects: b.dialects,
	}, nil
}
