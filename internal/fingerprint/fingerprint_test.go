package fingerprint

import (
	"path/filepath"
	"testing"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

func buildProtocol(t *testing.T, messageName string) ir.Protocol {
	t.Helper()
	msg, err := ir.NewMessageBuilder().
		SetID(0).
		SetName(messageName).
		AddField(ir.FieldSpec{Name: "type", Type: ir.Uint8()}).
		Build()
	if err != nil {
		t.Fatalf("building message: %v", err)
	}
	dialect, err := ir.NewDialectBuilder().SetName("minimal").AddMessage(msg).Build()
	if err != nil {
		t.Fatalf("building dialect: %v", err)
	}
	pb, err := ir.NewProtocolBuilder().AddDialect(dialect)
	if err != nil {
		t.Fatalf("adding dialect: %v", err)
	}
	p, err := pb.Build()
	if err != nil {
		t.Fatalf("building protocol: %v", err)
	}
	return p
}

func TestComputeIsDeterministic(t *testing.T) {
	p := buildProtocol(t, "HEARTBEAT")
	params := Params{ModulePath: "example.com/gen"}
	if Compute(p, params) != Compute(p, params) {
		t.Error("Compute is not deterministic for identical inputs")
	}
}

func TestComputeChangesWithIR(t *testing.T) {
	a := Compute(buildProtocol(t, "HEARTBEAT"), Params{ModulePath: "example.com/gen"})
	b := Compute(buildProtocol(t, "PING"), Params{ModulePath: "example.com/gen"})
	if a == b {
		t.Error("Compute should differ when the message name differs")
	}
}

func TestComputeChangesWithParams(t *testing.T) {
	p := buildProtocol(t, "HEARTBEAT")
	a := Compute(p, Params{ModulePath: "example.com/gen", SerdeEnabled: false})
	b := Compute(p, Params{ModulePath: "example.com/gen", SerdeEnabled: true})
	if a == b {
		t.Error("Compute should differ when SerdeEnabled differs")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if _, ok := Load(dir); ok {
		t.Fatal("Load should report ok=false before any Save")
	}
	if err := Save(dir, 0xDEADBEEF); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := Load(dir)
	if !ok {
		t.Fatal("Load should report ok=true after Save")
	}
	if got != 0xDEADBEEF {
		t.Errorf("Load = %#x, want %#x", got, uint64(0xDEADBEEF))
	}
}

func TestPathIsWithinDestDir(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, ".mavlinkgen-fingerprint")
	if got := Path(dir); got != want {
		t.Errorf("Path(%q) = %q, want %q", dir, got, want)
	}
}
