package ir

import "fmt"

// Dialect is a named collection of messages and enums declared (or
// inherited via <include>) in one XML file.
type Dialect struct {
	name      string
	dialectID *uint32
	version   *uint8
	includes  []string // dialect names named by this dialect's own <include> elements

	messageOrder []uint32
	messages     map[uint32]Message

	enumOrder []string
	enums     map[string]Enum
}

func (d Dialect) Name() string { return d.name }

func (d Dialect) DialectID() (uint32, bool) {
	if d.dialectID == nil {
		return 0, false
	}
	return *d.dialectID, true
}

func (d Dialect) Version() (uint8, bool) {
	if d.version == nil {
		return 0, false
	}
	return *d.version, true
}

// Includes returns the dialect names this dialect's own XML file named in
// an <include> element, in declaration order.
func (d Dialect) Includes() []string { return d.includes }

// Messages returns the dialect's messages in the order they were added to
// its builder (inherited messages first, then local ones).
func (d Dialect) Messages() []Message {
	out := make([]Message, 0, len(d.messageOrder))
	for _, id := range d.messageOrder {
		out = append(out, d.messages[id])
	}
	return out
}

func (d Dialect) Message(id uint32) (Message, bool) {
	m, ok := d.messages[id]
	return m, ok
}

// Enums returns the dialect's enums in insertion order.
func (d Dialect) Enums() []Enum {
	out := make([]Enum, 0, len(d.enumOrder))
	for _, name := range d.enumOrder {
		out = append(out, d.enums[name])
	}
	return out
}

func (d Dialect) Enum(name string) (Enum, bool) {
	e, ok := d.enums[name]
	return e, ok
}

// DialectBuilder builds a Dialect. AddMessage/AddEnum overwrite any existing
// entry of the same key, which is exactly the "local overrides inherited"
// merge rule include resolution needs; the parser is responsible for
// rejecting duplicate IDs declared twice within the dialect's own XML file.
type DialectBuilder struct {
	name      string
	dialectID *uint32
	version   *uint8
	includes  []string

	messageOrder []uint32
	messages     map[uint32]Message

	enumOrder []string
	enums     map[string]Enum
}

func NewDialectBuilder() *DialectBuilder {
	return &DialectBuilder{
		messages: make(map[uint32]Message),
		enums:    make(map[string]Enum),
	}
}

func (d Dialect) ToBuilder() *DialectBuilder {
	b := NewDialectBuilder()
	b.name = d.name
	b.dialectID = d.dialectID
	b.version = d.version
	b.includes = append([]string(nil), d.includes...)
	for _, id := range d.messageOrder {
		b.AddMessage(d.messages[id])
	}
	for _, name := range d.enumOrder {
		b.AddEnum(d.enums[name])
	}
	return b
}

func (b *DialectBuilder) SetName(n string) *DialectBuilder { b.name = n; return b }
func (b *DialectBuilder) SetDialectID(id uint32) *DialectBuilder {
	b.dialectID = &id
	return b
}
func (b *DialectBuilder) SetVersion(v uint8) *DialectBuilder {
	b.version = &v
	return b
}
func (b *DialectBuilder) AddInclude(name string) *DialectBuilder {
	b.includes = append(b.includes, name)
	return b
}

func (b *DialectBuilder) HasMessage(id uint32) bool {
	_, ok := b.messages[id]
	return ok
}

func (b *DialectBuilder) AddMessage(m Message) *DialectBuilder {
	if _, exists := b.messages[m.id]; !exists {
		b.messageOrder = append(b.messageOrder, m.id)
	}
	b.messages[m.id] = m
	return b
}

func (b *DialectBuilder) HasEnum(name string) bool {
	_, ok := b.enums[name]
	return ok
}

func (b *DialectBuilder) Enum(name string) (Enum, bool) {
	e, ok := b.enums[name]
	return e, ok
}

func (b *DialectBuilder) AddEnum(e Enum) *DialectBuilder {
	if _, exists := b.enums[e.name]; !exists {
		b.enumOrder = append(b.enumOrder, e.name)
	}
	b.enums[e.name] = e
	return b
}

func (b *DialectBuilder) Build() (Dialect, error) {
	if b.name == "" {
		return Dialect{}, fmt.Errorf("ir: dialect missing a name")
	}
	return Dialect{
		name:         b.name,
		dialectID:    b.dialectID,
		version:      b.version,
		includes:     append([]string(nil), b.includes...),
		messageOrder: append([]uint32(nil), b.messageOrder...),
		messages:     b.messages,
		enumOrder:    append([]string(nil), b.enumOrder...),
		enums:        b.enums,
	}, nil
}
