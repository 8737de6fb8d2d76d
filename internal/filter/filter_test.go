package filter

import (
	"testing"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

func buildNamedDialect(t *testing.T, name string, includes ...string) ir.Dialect {
	t.Helper()
	b := ir.NewDialectBuilder().SetName(name)
	for _, inc := range includes {
		b.AddInclude(inc)
	}
	msg, err := ir.NewMessageBuilder().SetID(0).SetName(name + "_MSG").Build()
	if err != nil {
		t.Fatalf("building message: %v", err)
	}
	b.AddMessage(msg)
	d, err := b.Build()
	if err != nil {
		t.Fatalf("building dialect %s: %v", name, err)
	}
	return d
}

func buildProtocol(t *testing.T, dialects ...ir.Dialect) ir.Protocol {
	t.Helper()
	pb := ir.NewProtocolBuilder()
	var err error
	for _, d := range dialects {
		pb, err = pb.AddDialect(d)
		if err != nil {
			t.Fatalf("adding dialect %s: %v", d.Name(), err)
		}
	}
	p, err := pb.Build()
	if err != nil {
		t.Fatalf("building protocol: %v", err)
	}
	return p
}

// TestApplyDropsTransitiveIncludeUnlessRequested covers property 3 / scenario
// E3: child includes minimal, but only child is requested, so minimal must
// not appear as its own top-level dialect in the result.
func TestApplyDropsTransitiveIncludeUnlessRequested(t *testing.T) {
	minimal := buildNamedDialect(t, "minimal")
	child := buildNamedDialect(t, "child", "minimal")
	p := buildProtocol(t, minimal, child)

	out, err := Apply(p, Options{IncludeDialects: []string{"child"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", out.Len())
	}
	if _, ok := out.Dialect("child"); !ok {
		t.Error("expected child to be present")
	}
	if _, ok := out.Dialect("minimal"); ok {
		t.Error("minimal must not be exposed as a top-level dialect when only child was requested")
	}
}

func TestApplyKeepsExplicitlyIncludedDependency(t *testing.T) {
	minimal := buildNamedDialect(t, "minimal")
	child := buildNamedDialect(t, "child", "minimal")
	p := buildProtocol(t, minimal, child)

	out, err := Apply(p, Options{IncludeDialects: []string{"child", "minimal"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", out.Len())
	}
}

func TestApplyExcludeAlwaysWinsOverInclude(t *testing.T) {
	common := buildNamedDialect(t, "common")
	crazyflight := buildNamedDialect(t, "crazyflight")
	matrixpilot := buildNamedDialect(t, "matrixpilot")
	paparazzi := buildNamedDialect(t, "paparazzi")
	p := buildProtocol(t, common, crazyflight, matrixpilot, paparazzi)

	out, err := Apply(p, Options{
		IncludeDialects: []string{"common", "crazyflight", "matrixpilot"},
		ExcludeDialects: []string{"matrixpilot", "paparazzi"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", out.Len())
	}
	if _, ok := out.Dialect("matrixpilot"); ok {
		t.Error("exclude must win even though matrixpilot was also in the include list")
	}
}

func TestApplyWithNoIncludeKeepsEverythingNotExcluded(t *testing.T) {
	a := buildNamedDialect(t, "a")
	b := buildNamedDialect(t, "b")
	p := buildProtocol(t, a, b)

	out, err := Apply(p, Options{ExcludeDialects: []string{"b"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", out.Len())
	}
	if _, ok := out.Dialect("a"); !ok {
		t.Error("expected a to be present")
	}
}
