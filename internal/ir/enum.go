package ir

import (
	"fmt"
	"sort"
)

// EnumEntry is one named value of an Enum.
type EnumEntry struct {
	value       uint64
	name        string
	description string
	deprecated  *Deprecated
	params      map[int]MavCmdParam // only meaningful when the owning enum is MAV_CMD
}

func (e EnumEntry) Value() uint64            { return e.value }
func (e EnumEntry) Name() string             { return e.name }
func (e EnumEntry) Description() string      { return e.description }
func (e EnumEntry) Deprecated() *Deprecated  { return e.deprecated }
func (e EnumEntry) IsDeprecated() bool       { return e.deprecated != nil }

// Param returns the MAV_CMD parameter overlay for the given 1-based slot
// index, and whether that slot is used.
func (e EnumEntry) Param(index int) (MavCmdParam, bool) {
	p, ok := e.params[index]
	return p, ok
}

// Params returns the overlaid parameter slots in index order. Missing slots
// are simply absent from the result, per the "missing indices imply an
// unused slot" rule.
func (e EnumEntry) Params() []MavCmdParam {
	indices := make([]int, 0, len(e.params))
	for idx := range e.params {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	out := make([]MavCmdParam, 0, len(indices))
	for _, idx := range indices {
		out = append(out, e.params[idx])
	}
	return out
}

// EnumEntryBuilder builds one EnumEntry.
type EnumEntryBuilder struct {
	value       uint64
	name        string
	description string
	deprecated  *Deprecated
	params      map[int]MavCmdParam
}

func NewEnumEntryBuilder() *EnumEntryBuilder {
	return &EnumEntryBuilder{params: make(map[int]MavCmdParam)}
}

func (b *EnumEntryBuilder) SetValue(v uint64) *EnumEntryBuilder   { b.value = v; return b }
func (b *EnumEntryBuilder) SetName(n string) *EnumEntryBuilder    { b.name = n; return b }
func (b *EnumEntryBuilder) SetDescription(d string) *EnumEntryBuilder {
	b.description = d
	return b
}
func (b *EnumEntryBuilder) SetDeprecated(d Deprecated) *EnumEntryBuilder {
	b.deprecated = &d
	return b
}
func (b *EnumEntryBuilder) AddParam(p MavCmdParam) *EnumEntryBuilder {
	b.params[p.Index] = p
	return b
}

func (b *EnumEntryBuilder) Build() (EnumEntry, error) {
	if b.name == "" {
		return EnumEntry{}, fmt.Errorf("ir: enum entry missing a name")
	}
	return EnumEntry{
		value:       b.value,
		name:        b.name,
		description: b.description,
		deprecated:  b.deprecated,
		params:      b.params,
	}, nil
}

// Enum is a named, ordered set of EnumEntry values.
type Enum struct {
	name        string
	entries     []EnumEntry
	bitmask     bool
	underlying  *MavType
	deprecated  *Deprecated
	description string
}

func (e Enum) Name() string            { return e.name }
func (e Enum) Entries() []EnumEntry    { return e.entries }
func (e Enum) Bitmask() bool           { return e.bitmask }
func (e Enum) Deprecated() *Deprecated { return e.deprecated }
func (e Enum) IsDeprecated() bool      { return e.deprecated != nil }
func (e Enum) Description() string     { return e.description }

// Underlying returns the enum's wire-level integer type. When the XML did
// not declare one explicitly, it is inferred from the maximum entry value:
// the smallest unsigned integer type that can hold it.
func (e Enum) Underlying() MavType {
	if e.underlying != nil {
		return *e.underlying
	}
	return inferUnderlying(e.entries)
}

func inferUnderlying(entries []EnumEntry) MavType {
	var max uint64
	for _, en := range entries {
		if en.value > max {
			max = en.value
		}
	}
	switch {
	case max <= 0xFF:
		return Uint8()
	case max <= 0xFFFF:
		return Uint16()
	case max <= 0xFFFFFFFF:
		return Uint32()
	default:
		return Uint64()
	}
}

// EnumBuilder builds an Enum, re-sorting entries by value at Build time.
type EnumBuilder struct {
	name        string
	entries     map[uint64]EnumEntry
	order       []uint64 // insertion order, used as a tiebreak is unnecessary since values are keys
	bitmask     bool
	underlying  *MavType
	deprecated  *Deprecated
	description string
}

func NewEnumBuilder() *EnumBuilder {
	return &EnumBuilder{entries: make(map[uint64]EnumEntry)}
}

// ToBuilder re-opens an already-built Enum for copy-on-write refinement,
// e.g. when merging an inherited enum with local additions.
func (e Enum) ToBuilder() *EnumBuilder {
	b := NewEnumBuilder()
	b.name = e.name
	b.bitmask = e.bitmask
	b.underlying = e.underlying
	b.deprecated = e.deprecated
	b.description = e.description
	for _, entry := range e.entries {
		b.entries[entry.value] = entry
		b.order = append(b.order, entry.value)
	}
	return b
}

func (b *EnumBuilder) SetName(n string) *EnumBuilder { b.name = n; return b }
func (b *EnumBuilder) SetBitmask(v bool) *EnumBuilder { b.bitmask = v; return b }
func (b *EnumBuilder) SetUnderlying(t MavType) *EnumBuilder {
	b.underlying = &t
	return b
}
func (b *EnumBuilder) SetDeprecated(d Deprecated) *EnumBuilder {
	b.deprecated = &d
	return b
}
func (b *EnumBuilder) SetDescription(d string) *EnumBuilder {
	b.description = d
	return b
}

// AddEntry inserts or overrides an entry by value. Local definitions
// override inherited ones of the same value, matching the include-merge rule
// for messages.
func (b *EnumBuilder) AddEntry(e EnumEntry) *EnumBuilder {
	if _, exists := b.entries[e.value]; !exists {
		b.order = append(b.order, e.value)
	}
	b.entries[e.value] = e
	return b
}

func (b *EnumBuilder) Build() (Enum, error) {
	if b.name == "" {
		return Enum{}, fmt.Errorf("ir: enum missing a name")
	}
	entries := make([]EnumEntry, 0, len(b.order))
	for _, v := range b.order {
		entries = append(entries, b.entries[v])
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].value < entries[j].value })
	return Enum{
		name:        b.name,
		entries:     entries,
		bitmask:     b.bitmask,
		underlying:  b.underlying,
		deprecated:  b.deprecated,
		description: b.description,
	}, nil
}
