package ir

import "testing"

func TestMessageBuildRejectsOversizedID(t *testing.T) {
	_, err := NewMessageBuilder().SetID(1 << 24).SetName("TOO_BIG").Build()
	if err == nil {
		t.Fatal("expected an error for a message id exceeding the 24-bit MAVLink-2 range")
	}
}

func TestMessageBuildRejectsZeroLengthArrayField(t *testing.T) {
	arr := NewArray(Uint8(), 0)
	_, err := NewMessageBuilder().
		SetID(1).
		SetName("BAD_ARRAY").
		AddField(FieldSpec{Name: "payload", Type: arr}).
		Build()
	if err == nil {
		t.Fatal("expected an error for a zero-length array field")
	}
}

func TestMessageBuildSortsBaseFieldsBySizeDescending(t *testing.T) {
	m, err := NewMessageBuilder().
		SetID(1).
		SetName("MIXED").
		AddField(FieldSpec{Name: "a_byte", Type: Uint8()}).
		AddField(FieldSpec{Name: "a_long", Type: Uint64()}).
		AddField(FieldSpec{Name: "a_short", Type: Uint16()}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	base := m.BaseFields()
	if len(base) != 3 {
		t.Fatalf("len(base) = %d, want 3", len(base))
	}
	for i := 1; i < len(base); i++ {
		if base[i-1].Type().Size() < base[i].Type().Size() {
			t.Fatalf("base fields not sorted descending by size: %v", base)
		}
	}
	if base[0].Name() != "a_long" {
		t.Errorf("expected a_long first (8 bytes), got %s", base[0].Name())
	}
}

func TestMessageBuildKeepsExtensionFieldsInDeclarationOrderAfterBase(t *testing.T) {
	m, err := NewMessageBuilder().
		SetID(1).
		SetName("WITH_EXT").
		AddField(FieldSpec{Name: "base_field", Type: Uint8()}).
		AddField(FieldSpec{Name: "ext_first", Type: Uint32(), Extension: true}).
		AddField(FieldSpec{Name: "ext_second", Type: Uint8(), Extension: true}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ext := m.ExtensionFields()
	if len(ext) != 2 || ext[0].Name() != "ext_first" || ext[1].Name() != "ext_second" {
		t.Fatalf("extension fields not in declaration order: %v", ext)
	}
	if m.PayloadSizeExtended() <= m.PayloadSizeBase() {
		t.Errorf("extended payload size %d should exceed base %d", m.PayloadSizeExtended(), m.PayloadSizeBase())
	}
}

func TestMessageToBuilderRoundTrips(t *testing.T) {
	orig, err := NewMessageBuilder().
		SetID(5).
		SetName("ROUNDTRIP").
		SetDescription("a message").
		AddField(FieldSpec{Name: "x", Type: Uint8()}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	refined, err := orig.ToBuilder().SetDefinedIn("common").Build()
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if refined.Name() != "ROUNDTRIP" || refined.ID() != 5 {
		t.Errorf("ToBuilder lost identity: %+v", refined)
	}
	if refined.DefinedIn() != "common" {
		t.Errorf("DefinedIn() = %q, want common", refined.DefinedIn())
	}
	if len(refined.DeclaredFields()) != 1 {
		t.Errorf("expected the single field to survive ToBuilder, got %v", refined.DeclaredFields())
	}
}

func TestMessageBuildRejectsMissingName(t *testing.T) {
	_, err := NewMessageBuilder().SetID(1).Build()
	if err == nil {
		t.Fatal("expected an error for a message with no name")
	}
}
