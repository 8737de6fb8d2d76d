// Package ir holds the immutable protocol intermediate representation
// produced by the dialect XML parser and consumed by the code generator.
//
// Every exported type in this package is a value object: once returned by a
// Build() call it is read-only. Construction happens exclusively through the
// matching *Builder type, following the same freeze-after-build discipline
// the rest of the toolchain uses for its AST nodes.
package ir

import "fmt"

// Kind identifies one of the primitive MAVLink wire types, or Array when the
// type is a fixed-length array of one of the others.
type Kind int

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat
	KindDouble
	KindChar
	KindArray
)

// MavType is a tagged variant over the MAVLink primitive wire types and
// fixed-length arrays of them. Array inner types are always primitive;
// nested arrays never occur in the dialect schema.
type MavType struct {
	kind   Kind
	elem   *MavType
	length int
}

func primitive(k Kind) MavType { return MavType{kind: k} }

func Int8() MavType    { return primitive(KindInt8) }
func Int16() MavType   { return primitive(KindInt16) }
func Int32() MavType   { return primitive(KindInt32) }
func Int64() MavType   { return primitive(KindInt64) }
func Uint8() MavType   { return primitive(KindUint8) }
func Uint16() MavType  { return primitive(KindUint16) }
func Uint32() MavType  { return primitive(KindUint32) }
func Uint64() MavType  { return primitive(KindUint64) }
func FloatT() MavType  { return primitive(KindFloat) }
func DoubleT() MavType { return primitive(KindDouble) }
func CharT() MavType   { return primitive(KindChar) }

// NewArray builds a fixed-length array type over a primitive element type.
// elem must not itself be an array; the caller (the XML parser) is
// responsible for enforcing that MAVLink never nests arrays.
func NewArray(elem MavType, length int) MavType {
	e := elem
	return MavType{kind: KindArray, elem: &e, length: length}
}

// Kind returns the type's tag.
func (t MavType) Kind() Kind { return t.kind }

// IsArray reports whether this is a fixed-length array type.
func (t MavType) IsArray() bool { return t.kind == KindArray }

// Elem returns the array element type. Panics if t is not an array; callers
// must check IsArray first.
func (t MavType) Elem() MavType {
	if t.kind != KindArray {
		panic("ir: Elem called on non-array MavType")
	}
	return *t.elem
}

// Length returns the array length. Panics if t is not an array.
func (t MavType) Length() int {
	if t.kind != KindArray {
		panic("ir: Length called on non-array MavType")
	}
	return t.length
}

// ElemSize returns the canonical wire size, in bytes, of a single element of
// t: for a primitive this is Size(), for an array it is the element's size.
func (t MavType) ElemSize() int {
	if t.kind == KindArray {
		return t.elem.Size()
	}
	return t.Size()
}

// Size returns the canonical wire size, in bytes, of t as a whole: for an
// array this is element size times length. This is the value the base-field
// sort rule and payload-size computation key off of.
func (t MavType) Size() int {
	switch t.kind {
	case KindInt8, KindUint8, KindChar:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat:
		return 4
	case KindInt64, KindUint64, KindDouble:
		return 8
	case KindArray:
		return t.elem.Size() * t.length
	default:
		panic(fmt.Sprintf("ir: unknown MavType kind %d", t.kind))
	}
}

// CName returns the canonical MAVLink XML type name of the scalar part of t
// (e.g. "uint8_t", "float", "char"), ignoring array-ness. This is exactly the
// string fed into the CRC_EXTRA accumulator and is also the string the XML
// parser reads off the wire.
func (t MavType) CName() string {
	switch t.kind {
	case KindInt8:
		return "int8_t"
	case KindInt16:
		return "int16_t"
	case KindInt32:
		return "int32_t"
	case KindInt64:
		return "int64_t"
	case KindUint8:
		return "uint8_t"
	case KindUint16:
		return "uint16_t"
	case KindUint32:
		return "uint32_t"
	case KindUint64:
		return "uint64_t"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindChar:
		return "char"
	case KindArray:
		return t.elem.CName()
	default:
		panic(fmt.Sprintf("ir: unknown MavType kind %d", t.kind))
	}
}

// String renders t the way it appears in dialect XML, e.g. "uint8_t",
// "float[3]", "char[16]".
func (t MavType) String() string {
	if t.kind == KindArray {
		return fmt.Sprintf("%s[%d]", t.elem.CName(), t.length)
	}
	return t.CName()
}

// ParseMavXMLType parses a MAVLink XML "type" attribute value such as
// "uint8_t", "float[3]" or "char[16]" into a MavType. "uint8_t_mavlink_version"
// is accepted as a synonym for "uint8_t", matching the XML schema's special
// case for the HEARTBEAT version field.
func ParseMavXMLType(raw string) (MavType, error) {
	name, length, isArray, err := splitArrayType(raw)
	if err != nil {
		return MavType{}, err
	}
	scalar, err := scalarFromCName(name)
	if err != nil {
		return MavType{}, err
	}
	if isArray {
		return NewArray(scalar, length), nil
	}
	return scalar, nil
}

func scalarFromCName(name string) (MavType, error) {
	switch name {
	case "int8_t":
		return Int8(), nil
	case "int16_t":
		return Int16(), nil
	case "int32_t":
		return Int32(), nil
	case "int64_t":
		return Int64(), nil
	case "uint8_t", "uint8_t_mavlink_version":
		return Uint8(), nil
	case "uint16_t":
		return Uint16(), nil
	case "uint32_t":
		return Uint32(), nil
	case "uint64_t":
		return Uint64(), nil
	case "float":
		return FloatT(), nil
	case "double":
		return DoubleT(), nil
	case "char":
		return CharT(), nil
	default:
		return MavType{}, fmt.Errorf("ir: unknown MAVLink wire type %q", name)
	}
}

// splitArrayType splits "foo[N]" into ("foo", N, true, nil), or returns the
// input unchanged with isArray=false when there is no "[N]" suffix.
func splitArrayType(raw string) (name string, length int, isArray bool, err error) {
	open := -1
	for i := 0; i < len(raw); i++ {
		if raw[i] == '[' {
			open = i
			break
		}
	}
	if open == -1 {
		return raw, 0, false, nil
	}
	if raw[len(raw)-1] != ']' {
		return "", 0, false, fmt.Errorf("ir: malformed array type %q", raw)
	}
	lenStr := raw[open+1 : len(raw)-1]
	n := 0
	for _, r := range lenStr {
		if r < '0' || r > '9' {
			return "", 0, false, fmt.Errorf("ir: malformed array length in type %q", raw)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return "", 0, false, fmt.Errorf("ir: array length must be positive in type %q", raw)
	}
	return raw[:open], n, true, nil
}
