package ir

import (
	"fmt"
	"sort"
)

// maxMessageID is the largest MAVLink-2-representable message ID (24-bit).
const maxMessageID = 1<<24 - 1

// Message is a typed record transmitted on the wire, identified by a message
// ID unique within its dialect.
type Message struct {
	id        uint32
	name      string
	definedIn string // name of the dialect that originally declared it, if inherited

	declared []Field // fields in XML declaration order
	wire     []Field // base fields sorted by descending size, then extension fields in declaration order

	crcExtra            uint8
	payloadSizeBase     int
	payloadSizeExtended int

	deprecated  *Deprecated
	description string
}

func (m Message) ID() uint32             { return m.id }
func (m Message) Name() string           { return m.name }
func (m Message) DefinedIn() string      { return m.definedIn }
func (m Message) IsInherited() bool      { return m.definedIn != "" }
func (m Message) DeclaredFields() []Field { return m.declared }
func (m Message) WireFields() []Field    { return m.wire }
func (m Message) CRCExtra() uint8        { return m.crcExtra }
func (m Message) PayloadSizeBase() int     { return m.payloadSizeBase }
func (m Message) PayloadSizeExtended() int { return m.payloadSizeExtended }
func (m Message) Deprecated() *Deprecated { return m.deprecated }
func (m Message) IsDeprecated() bool     { return m.deprecated != nil }
func (m Message) Description() string    { return m.description }

// BaseFields returns the wire-order base fields (descending size, stable).
func (m Message) BaseFields() []Field {
	return m.wire[:len(m.wire)-m.extensionCount()]
}

// ExtensionFields returns the wire-order extension fields (declaration order).
func (m Message) ExtensionFields() []Field {
	return m.wire[len(m.wire)-m.extensionCount():]
}

func (m Message) extensionCount() int {
	n := 0
	for _, f := range m.wire {
		if f.Extension() {
			n++
		}
	}
	return n
}

// MessageBuilder builds a Message.
type MessageBuilder struct {
	id        uint32
	name      string
	definedIn string
	fields    []Field

	deprecated  *Deprecated
	description string
}

func NewMessageBuilder() *MessageBuilder { return &MessageBuilder{} }

// ToBuilder re-opens a built Message for copy-on-write refinement, used when
// a local definition overrides an inherited message of the same ID.
func (m Message) ToBuilder() *MessageBuilder {
	b := NewMessageBuilder()
	b.id = m.id
	b.name = m.name
	b.definedIn = m.definedIn
	b.fields = append([]Field(nil), m.declared...)
	b.deprecated = m.deprecated
	b.description = m.description
	return b
}

func (b *MessageBuilder) SetID(id uint32) *MessageBuilder       { b.id = id; return b }
func (b *MessageBuilder) SetName(n string) *MessageBuilder      { b.name = n; return b }
func (b *MessageBuilder) SetDefinedIn(d string) *MessageBuilder { b.definedIn = d; return b }
func (b *MessageBuilder) SetDeprecated(d Deprecated) *MessageBuilder {
	b.deprecated = &d
	return b
}
func (b *MessageBuilder) SetDescription(d string) *MessageBuilder {
	b.description = d
	return b
}

// AddField appends a field in declaration order. Whether it lands before or
// after the <extensions/> marker is carried on spec.Extension.
func (b *MessageBuilder) AddField(spec FieldSpec) *MessageBuilder {
	b.fields = append(b.fields, newField(spec))
	return b
}

func (b *MessageBuilder) Build() (Message, error) {
	if b.name == "" {
		return Message{}, fmt.Errorf("ir: message missing a name")
	}
	if b.id > maxMessageID {
		return Message{}, fmt.Errorf("ir: message %s id %d exceeds the MAVLink-2 24-bit range", b.name, b.id)
	}

	var base, ext []Field
	for _, f := range b.fields {
		if f.Type().IsArray() && f.Type().Length() == 0 {
			return Message{}, fmt.Errorf("ir: message %s field %s has a zero-length array", b.name, f.Name())
		}
		if f.Extension() {
			ext = append(ext, f)
		} else {
			base = append(base, f)
		}
	}

	sortedBase := append([]Field(nil), base...)
	sort.SliceStable(sortedBase, func(i, j int) bool {
		return sortedBase[i].Type().Size() > sortedBase[j].Type().Size()
	})

	wire := append(append([]Field(nil), sortedBase...), ext...)

	baseSize := 0
	for _, f := range sortedBase {
		baseSize += f.Type().Size()
	}
	extSize := 0
	for _, f := range ext {
		extSize += f.Type().Size()
	}

	return Message{
		id:                  b.id,
		name:                b.name,
		definedIn:           b.definedIn,
		declared:            append([]Field(nil), b.fields...),
		wire:                wire,
		crcExtra:            crcExtra(b.name, sortedBase),
		payloadSizeBase:     baseSize,
		payloadSizeExtended: baseSize + extSize,
		deprecated:          b.deprecated,
		description:         b.description,
	}, nil
}
