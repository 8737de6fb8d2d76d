package codegen

import (
	"fmt"

	"github.com/shapestone/mavlinkgen/internal/ir"
	"github.com/shapestone/mavlinkgen/internal/naming"
)

const wireImportPath = "github.com/shapestone/mavlinkgen/pkg/wire"

type rootData struct {
	ModulePath string
}

type dialectsIndexData struct {
	Dialects []string
}

type messageSumEntry struct {
	ID         uint32
	StructName string
	VarName    string
}

type dialectTemplateData struct {
	PackageName string
	ModulePath  string
	DialectName string
	Messages    []messageSumEntry
}

func (d dialectTemplateData) MessagesImportPath() string {
	return d.ModulePath + "/dialects/" + d.PackageName + "/messages"
}

func (d dialectTemplateData) WireImportPath() string {
	return wireImportPath
}

type packageDocData struct {
	Package string
	Dialect string
}

// fieldRender carries one field's already-rendered struct/encode/decode
// fragments: the template layer only splices these, it never computes them.
type fieldRender struct {
	GoName   string
	GoType   string
	Comment  string
	EncodeGo string // appends this field's bytes to the local `buf` variable
	DecodeGo string // reads this field from the local `buf` variable, guarded as needed
	CheckGo  string // non-empty for enum-typed fields: a validity check emitted after DecodeGo
}

type messageData struct {
	WireImportPath      string
	EnumsImportPath     string
	NeedsEnumsImport    bool // false when no field references the enums package
	StructName          string
	MessageID           uint32
	CRCExtra            uint8
	PayloadSizeBase     int
	PayloadSizeExtended int
	Description         string
	SerdeEnabled        bool
	DeclaredFields      []fieldRender // struct field declarations, in documentation order
	BaseFields          []fieldRender // encode/decode order for the base block
	ExtensionFields     []fieldRender // encode/decode order, V2 only
}

// buildMessageData pre-renders every Go source fragment the message template
// needs. dialectPackage and modulePath locate the sibling enums package the
// decoder's enum-membership checks import.
func buildMessageData(m ir.Message, params Params, dialectPackage string) messageData {
	d := messageData{
		StructName:          naming.MessageStructName(m.Name()),
		MessageID:           m.ID(),
		CRCExtra:            m.CRCExtra(),
		PayloadSizeBase:     m.PayloadSizeBase(),
		PayloadSizeExtended: m.PayloadSizeExtended(),
		Description:         m.Description(),
		SerdeEnabled:        params.SerdeEnabled,
		WireImportPath:      wireImportPath,
		EnumsImportPath:     params.ModulePath + "/dialects/" + dialectPackage + "/enums",
	}

	for _, f := range m.DeclaredFields() {
		d.DeclaredFields = append(d.DeclaredFields, renderFieldDeclaration(f))
		if f.HasEnum() && !f.Type().IsArray() {
			d.NeedsEnumsImport = true
		}
	}

	offset := 0
	for _, f := range m.BaseFields() {
		d.BaseFields = append(d.BaseFields, renderField(f, offset, false))
		offset += f.Type().Size()
	}
	extOffset := offset
	for _, f := range m.ExtensionFields() {
		d.ExtensionFields = append(d.ExtensionFields, renderField(f, extOffset, true))
		extOffset += f.Type().Size()
	}
	return d
}

func renderFieldDeclaration(f ir.Field) fieldRender {
	comment := f.Description()
	if f.HasEnum() {
		if comment != "" {
			comment += " "
		}
		comment += fmt.Sprintf("(%s)", f.Enum())
	}
	return fieldRender{
		GoName:  naming.FieldVarName(f.Name()),
		GoType:  goTypeForField(f),
		Comment: comment,
	}
}

// goTypeForField returns the Go type a field is declared with. A bitmask
// field is typed as its enum's generated type rather than the wire
// primitive, so callers can use it with bitwise operators directly; every
// other field keeps the plain base type.
func goTypeForField(f ir.Field) string {
	if f.HasEnum() && f.Bitmask() && !f.Type().IsArray() {
		return "enums." + naming.EnumGoName(f.Enum())
	}
	return naming.GoType(f.Type())
}

// renderField produces the encode/decode Go fragments for one field. offset
// is its byte position from the start of the payload (extension fields
// therefore start at the base payload size). extension guards each read
// with a length check, since a truncated V2 payload may omit a trailing run
// of extension fields entirely, leaving them at their zero value.
func renderField(f ir.Field, offset int, extension bool) fieldRender {
	goName := naming.FieldVarName(f.Name())
	size := f.Type().Size()

	bitmaskTyped := f.HasEnum() && f.Bitmask() && !f.Type().IsArray()

	var encode, decode string
	if f.Type().IsArray() {
		encode, decode = renderArrayFieldOps(f, goName, offset)
	} else {
		putFn, getFn := primitiveOps(f.Type())
		if bitmaskTyped {
			baseType := naming.GoType(f.Type())
			encode = fmt.Sprintf("buf = wire.%s(buf, %s(msg.%s))", putFn, baseType, goName)
			decode = fmt.Sprintf("msg.%s = enums.%s(wire.%s(buf, %d))", goName, naming.EnumGoName(f.Enum()), getFn, offset)
		} else {
			encode = fmt.Sprintf("buf = wire.%s(buf, msg.%s)", putFn, goName)
			decode = fmt.Sprintf("msg.%s = wire.%s(buf, %d)", goName, getFn, offset)
		}
	}
	if extension {
		decode = fmt.Sprintf("if wire.HasExtensionBytes(buf, %d) {\n\t\t%s\n\t}", offset+size-1, decode)
	}

	fr := fieldRender{GoName: goName, GoType: goTypeForField(f), EncodeGo: encode, DecodeGo: decode}
	if f.HasEnum() && !f.Bitmask() && !f.Type().IsArray() {
		checkFn := "enums.IsValid" + naming.EnumGoName(f.Enum())
		fr.CheckGo = fmt.Sprintf(
			"if !%s(enums.%s(msg.%s)) {\n\t\treturn msg, wire.InvalidEnumValue{EnumName: %q, Value: uint64(msg.%s)}\n\t}",
			checkFn, naming.EnumGoName(f.Enum()), goName, f.Enum(), goName,
		)
	}
	return fr
}

func renderArrayFieldOps(f ir.Field, goName string, offset int) (encode, decode string) {
	putFn, getFn := primitiveOpsForKind(f.Type().Elem())
	elemSize := f.Type().Elem().Size()
	encode = fmt.Sprintf("for i := range msg.%s {\n\t\tbuf = wire.%s(buf, msg.%s[i])\n\t}", goName, putFn, goName)
	decode = fmt.Sprintf("for i := range msg.%s {\n\t\tmsg.%s[i] = wire.%s(buf, %d+i*%d)\n\t}", goName, goName, getFn, offset, elemSize)
	return encode, decode
}

func primitiveOps(t ir.MavType) (putFn, getFn string) {
	return primitiveOpsForKind(t)
}

func primitiveOpsForKind(t ir.MavType) (putFn, getFn string) {
	switch t.Kind() {
	case ir.KindInt8:
		return "PutInt8", "GetInt8"
	case ir.KindInt16:
		return "PutInt16", "GetInt16"
	case ir.KindInt32:
		return "PutInt32", "GetInt32"
	case ir.KindInt64:
		return "PutInt64", "GetInt64"
	case ir.KindUint8, ir.KindChar:
		return "PutUint8", "GetUint8"
	case ir.KindUint16:
		return "PutUint16", "GetUint16"
	case ir.KindUint32:
		return "PutUint32", "GetUint32"
	case ir.KindUint64:
		return "PutUint64", "GetUint64"
	case ir.KindFloat:
		return "PutFloat32", "GetFloat32"
	case ir.KindDouble:
		return "PutFloat64", "GetFloat64"
	default:
		return "PutUint8", "GetUint8"
	}
}

type enumEntryData struct {
	GoName string
	Value  uint64
}

type enumData struct {
	GoName      string
	Underlying  string
	Bitmask     bool
	Description string
	Entries     []enumEntryData
}

func buildEnumData(e ir.Enum) enumData {
	d := enumData{
		GoName:      naming.EnumGoName(e.Name()),
		Underlying:  naming.GoType(e.Underlying()),
		Bitmask:     e.Bitmask(),
		Description: e.Description(),
	}
	for _, entry := range e.Entries() {
		d.Entries = append(d.Entries, enumEntryData{
			GoName: naming.EnumEntryGoName(e.Name(), entry.Name()),
			Value:  entry.Value(),
		})
	}
	return d
}
