package naming

import (
	"testing"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

func TestUpperCamel(t *testing.T) {
	cases := map[string]string{
		"HEARTBEAT":          "Heartbeat",
		"MAV_TYPE":           "MavType",
		"COMMAND_LONG":       "CommandLong",
		"custom_mode":        "CustomMode",
		"onboard_control_sensors_present": "OnboardControlSensorsPresent",
	}
	for in, want := range cases {
		if got := UpperCamel(in); got != want {
			t.Errorf("UpperCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVarNameEscapesReservedWords(t *testing.T) {
	// "type", "range", "func" etc. are common MAVLink field names and Go keywords.
	for _, kw := range []string{"type", "range", "func", "map", "var"} {
		got := VarName(kw)
		if got == kw {
			t.Errorf("VarName(%q) did not escape a Go keyword", kw)
		}
		if got != kw+"_" {
			t.Errorf("VarName(%q) = %q, want %q", kw, got, kw+"_")
		}
	}
}

func TestVarNameLeavesOrdinaryNamesAlone(t *testing.T) {
	if got := VarName("target_system"); got != "target_system" {
		t.Errorf("VarName(target_system) = %q", got)
	}
}

func TestMessageStructName(t *testing.T) {
	if got, want := MessageStructName("HEARTBEAT"), "MessageHeartbeat"; got != want {
		t.Errorf("MessageStructName = %q, want %q", got, want)
	}
}

func TestGoTypeMapping(t *testing.T) {
	cases := []struct {
		in   ir.MavType
		want string
	}{
		{ir.Uint8(), "uint8"},
		{ir.Int16(), "int16"},
		{ir.FloatT(), "float32"},
		{ir.DoubleT(), "float64"},
		{ir.CharT(), "uint8"},
		{ir.NewArray(ir.FloatT(), 3), "[3]float32"},
	}
	for _, c := range cases {
		if got := GoType(c.in); got != c.want {
			t.Errorf("GoType(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDefaultValueLiteral(t *testing.T) {
	if got := DefaultValueLiteral(ir.Uint32()); got != "0" {
		t.Errorf("DefaultValueLiteral(uint32) = %q", got)
	}
	if got, want := DefaultValueLiteral(ir.NewArray(ir.Uint8(), 4)), "[4]uint8{}"; got != want {
		t.Errorf("DefaultValueLiteral(array) = %q, want %q", got, want)
	}
}
