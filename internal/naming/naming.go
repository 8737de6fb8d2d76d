// Package naming implements the pure, deterministic name-conversion and
// type-mapping functions the code generator's templates call as helpers.
// Every function here is total: given the same input it always returns the
// same output, which the fingerprint cache depends on for stability.
package naming

import (
	"strconv"
	"strings"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

const (
	messageStructPrefix = "Message"
	messageStructSuffix = ""
)

// goKeywords is the full Go reserved-word set. VarName gives a name that
// collides with one of these an underscore suffix.
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// Snake converts a MAVLink identifier (already SCREAMING_SNAKE or
// lower_snake) to lower_snake_case.
func Snake(name string) string {
	return strings.ToLower(name)
}

// UpperCamel converts a MAVLink SCREAMING_SNAKE identifier to UpperCamelCase.
func UpperCamel(name string) string {
	parts := strings.Split(strings.ToLower(name), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// LowerCamel converts a MAVLink identifier to lowerCamelCase.
func LowerCamel(name string) string {
	u := UpperCamel(name)
	if u == "" {
		return u
	}
	return strings.ToLower(u[:1]) + u[1:]
}

// FieldVarName returns the Go struct-field name for a MAVLink field: its
// UpperCamelCase form, with no escaping. Go exports struct fields by capitalization, so unlike the "r#" escape a
// Rust target would use, the escape here is purely for package-level free
// identifiers (see VarName); struct fields never collide with a keyword
// because UpperCamel never produces a lowercase reserved word.
func FieldVarName(name string) string {
	return UpperCamel(name)
}

// VarName returns a Go lower_snake_case local/parameter identifier for a
// MAVLink name, escaping reserved words with a trailing underscore.
func VarName(name string) string {
	v := Snake(name)
	if goKeywords[v] {
		return v + "_"
	}
	return v
}

// MessageStructName returns the generated struct name for a message, e.g.
// HEARTBEAT -> MessageHeartbeat.
func MessageStructName(messageName string) string {
	return messageStructPrefix + UpperCamel(messageName) + messageStructSuffix
}

// MessageModName returns the lower_snake file/package-local name used for a
// message's generated source file.
func MessageModName(messageName string) string {
	return Snake(messageName)
}

// MessageFileName returns the generated source file name for a message.
func MessageFileName(messageName string) string {
	return MessageModName(messageName) + ".go"
}

// DialectModName returns the lower_snake package directory name for a
// dialect.
func DialectModName(dialectName string) string {
	return Snake(dialectName)
}

// EnumGoName returns the generated Go type name for an enum.
func EnumGoName(enumName string) string {
	return UpperCamel(enumName)
}

// EnumFileName returns the generated source file name for an enum.
func EnumFileName(enumName string) string {
	return Snake(enumName) + ".go"
}

// EnumEntryGoName returns the generated constant name for an enum entry:
// the enum's Go name as a prefix (Go has no scoped enums, so the prefix
// disambiguates identically-named entries across enums), an underscore, then
// the entry's own name unchanged (e.g. MavState_MAV_STATE_BOOT).
func EnumEntryGoName(enumName, entryName string) string {
	return EnumGoName(enumName) + "_" + entryName
}

// GoType returns the Go type a MAVLink wire type maps to: the fixed
// primitive mapping table, or a fixed-length array of the element's mapped
// type.
func GoType(t ir.MavType) string {
	if t.IsArray() {
		return "[" + strconv.Itoa(t.Length()) + "]" + scalarGoType(t.Elem())
	}
	return scalarGoType(t)
}

func scalarGoType(t ir.MavType) string {
	switch t.Kind() {
	case ir.KindInt8:
		return "int8"
	case ir.KindInt16:
		return "int16"
	case ir.KindInt32:
		return "int32"
	case ir.KindInt64:
		return "int64"
	case ir.KindUint8, ir.KindChar:
		return "uint8"
	case ir.KindUint16:
		return "uint16"
	case ir.KindUint32:
		return "uint32"
	case ir.KindUint64:
		return "uint64"
	case ir.KindFloat:
		return "float32"
	case ir.KindDouble:
		return "float64"
	default:
		return "uint8"
	}
}

// DefaultValueLiteral returns the Go literal for the zero value of a
// MAVLink wire type: numeric 0 of the mapped type, or the empty composite
// literal of the fixed-length array type (e.g. [4]uint8{}).
func DefaultValueLiteral(t ir.MavType) string {
	if t.IsArray() {
		return GoType(t) + "{}"
	}
	if t.Kind() == ir.KindFloat || t.Kind() == ir.KindDouble {
		return "0"
	}
	return "0"
}
