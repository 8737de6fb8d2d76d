package ir

// Field is one component of a message's payload.
type Field struct {
	name        string
	typ         MavType
	enum        string // referenced enum name, empty if none
	bitmask     bool
	display     string
	units       string
	description string
	extension   bool
}

// FieldSpec carries the values needed to construct a Field; MessageBuilder.AddField
// takes one of these rather than a long positional argument list.
type FieldSpec struct {
	Name        string
	Type        MavType
	Enum        string
	Bitmask     bool
	Display     string
	Units       string
	Description string
	Extension   bool
}

func newField(spec FieldSpec) Field {
	return Field{
		name:        spec.Name,
		typ:         spec.Type,
		enum:        spec.Enum,
		bitmask:     spec.Bitmask,
		display:     spec.Display,
		units:       spec.Units,
		description: spec.Description,
		extension:   spec.Extension,
	}
}

func (f Field) Name() string        { return f.name }
func (f Field) Type() MavType       { return f.typ }
func (f Field) Enum() string        { return f.enum }
func (f Field) HasEnum() bool       { return f.enum != "" }
func (f Field) Bitmask() bool       { return f.bitmask }
func (f Field) Display() string     { return f.display }
func (f Field) Units() string       { return f.units }
func (f Field) Description() string { return f.description }
func (f Field) Extension() bool     { return f.extension }

// MavCmdParam overlays per-command metadata onto one of the 7 fixed
// parameter slots of COMMAND_LONG / COMMAND_INT, carried on a MAV_CMD enum
// entry.
type MavCmdParam struct {
	Index       int
	Label       string
	Units       string
	Enum        string
	Min         *float64
	Max         *float64
	Increment   *float64
	Description string
}
