package xmlparse

import (
	"strings"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

// frame is the parsing-context stack's element type, one variant per
// recognised XML element. The top of the stack describes what is currently
// being built; start events push a new frame, end events pop and commit the
// finished value into the new top (its parent).
type frame interface {
	tag() string
}

type mavlinkFrame struct{}

func (*mavlinkFrame) tag() string { return "mavlink" }

type includeFrame struct{ text strings.Builder }

func (*includeFrame) tag() string { return "include" }

type versionFrame struct{ text strings.Builder }

func (*versionFrame) tag() string { return "version" }

type dialectFrame struct{ text strings.Builder }

func (*dialectFrame) tag() string { return "dialect" }

type enumFrame struct {
	b         *ir.EnumBuilder
	nextValue uint64 // auto-increment counter for entries omitting a value attribute
}

func (*enumFrame) tag() string { return "enum" }

type enumEntryFrame struct {
	b                *ir.EnumEntryBuilder
	hasExplicitValue bool
}

func (*enumEntryFrame) tag() string { return "entry" }

type paramFrame struct {
	index       int
	label       string
	units       string
	enum        string
	min         *float64
	max         *float64
	increment   *float64
	text        strings.Builder
}

func (*paramFrame) tag() string { return "param" }

type messageFrame struct {
	b                  *ir.MessageBuilder
	inExtensionSection bool
}

func (*messageFrame) tag() string { return "message" }

type fieldFrame struct {
	name      string
	typ       string
	enum      string
	bitmask   bool
	display   string
	units     string
	extension bool
	text      strings.Builder
}

func (*fieldFrame) tag() string { return "field" }

type descriptionFrame struct{ text strings.Builder }

func (*descriptionFrame) tag() string { return "description" }

type deprecatedFrame struct {
	sinceYear  int
	sinceMonth uint8
	replacedBy string
	text       strings.Builder
}

func (*deprecatedFrame) tag() string { return "deprecated" }

// ignoredFrame absorbs an unrecognised element and everything nested inside
// it: per the schema's forward-compatibility rule, unknown tags are skipped
// rather than rejected.
type ignoredFrame struct{ name string }

func (f *ignoredFrame) tag() string { return f.name }
