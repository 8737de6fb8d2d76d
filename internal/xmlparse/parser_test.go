package xmlparse

import (
	"strings"
	"testing"
)

func TestParseFileMinimalMessage(t *testing.T) {
	doc, err := ParseFile("minimal.xml", `<mavlink>
  <version>3</version>
  <messages>
    <message id="0" name="HEARTBEAT">
      <description>shows presence</description>
      <field type="uint8_t" name="type">vehicle type</field>
      <extensions/>
      <field type="uint8_t_mavlink_version" name="mavlink_version">version</field>
    </message>
  </messages>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if doc.version == nil || *doc.version != 3 {
		t.Fatalf("version = %v, want 3", doc.version)
	}
	if len(doc.messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(doc.messages))
	}
	msg := doc.messages[0]
	if msg.Name() != "HEARTBEAT" || msg.ID() != 0 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	ext := msg.ExtensionFields()
	if len(ext) != 1 || ext[0].Name() != "mavlink_version" {
		t.Fatalf("expected mavlink_version to be an extension field, got %+v", ext)
	}
}

func TestParseFileDuplicateMessageIDIsHardError(t *testing.T) {
	_, err := ParseFile("dup.xml", `<mavlink>
  <messages>
    <message id="0" name="A"><field type="uint8_t" name="x">x</field></message>
    <message id="0" name="B"><field type="uint8_t" name="y">y</field></message>
  </messages>
</mavlink>`)
	if err == nil {
		t.Fatal("expected an error for duplicate message ids")
	}
	if !strings.Contains(err.Error(), "duplicate message id") {
		t.Fatalf("error = %v, want mention of duplicate message id", err)
	}
}

func TestParseFileUnknownElementIsWarningNotError(t *testing.T) {
	doc, err := ParseFile("future.xml", `<mavlink>
  <futuristic_extension_point/>
  <messages>
    <message id="1" name="PING"><field type="uint8_t" name="x">x</field></message>
  </messages>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(doc.messages) != 1 {
		t.Fatalf("expected parsing to continue past the unknown element, got %d messages", len(doc.messages))
	}
	found := false
	for _, w := range doc.warnings {
		if strings.Contains(w, "futuristic_extension_point") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning naming the unrecognised element, got %v", doc.warnings)
	}
}

func TestParseFileMalformedMessageIDIsError(t *testing.T) {
	_, err := ParseFile("bad.xml", `<mavlink>
  <messages>
    <message id="not-a-number" name="A"><field type="uint8_t" name="x">x</field></message>
  </messages>
</mavlink>`)
	if err == nil {
		t.Fatal("expected an error for a malformed id attribute")
	}
}

func TestParseFileDeprecatedMessage(t *testing.T) {
	doc, err := ParseFile("dep.xml", `<mavlink>
  <messages>
    <message id="2" name="OLD_MSG">
      <deprecated since="2020-01" replaced_by="NEW_MSG">use NEW_MSG instead</deprecated>
      <field type="uint8_t" name="x">x</field>
    </message>
  </messages>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	dep := doc.messages[0].Deprecated()
	if dep == nil {
		t.Fatal("expected message to carry deprecation info")
	}
	if dep.ReplacedBy() != "NEW_MSG" {
		t.Errorf("ReplacedBy() = %q, want NEW_MSG", dep.ReplacedBy())
	}
}

func TestParseFileMavCmdParamOverlay(t *testing.T) {
	doc, err := ParseFile("cmd.xml", `<mavlink>
  <enums>
    <enum name="MAV_CMD">
      <entry value="400" name="MAV_CMD_COMPONENT_ARM_DISARM">
        <description>arm/disarm</description>
        <param index="1" label="Arm" minValue="0" maxValue="1" increment="1">1 to arm</param>
      </entry>
    </enum>
  </enums>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	entries := doc.enums[0].Entries()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	params := entries[0].Params()
	if len(params) != 1 {
		t.Fatalf("len(params) = %d, want 1", len(params))
	}
	p := params[0]
	if p.Index != 1 || p.Label != "Arm" || p.Min == nil || *p.Min != 0 || p.Max == nil || *p.Max != 1 {
		t.Errorf("unexpected param: %+v", p)
	}
}

func TestParseFileMismatchedClosingTagIsError(t *testing.T) {
	_, err := ParseFile("broken.xml", `<mavlink><messages></mavlink></messages>`)
	if err == nil {
		t.Fatal("expected an error for mismatched closing tags")
	}
}

func TestParseFileUnclosedElementIsError(t *testing.T) {
	_, err := ParseFile("truncated.xml", `<mavlink><messages>`)
	if err == nil {
		t.Fatal("expected an error for a document that ends with open elements")
	}
}

func TestParseFileBitmaskEnumAndField(t *testing.T) {
	doc, err := ParseFile("bits.xml", `<mavlink>
  <enums>
    <enum name="MAV_MODE_FLAG" bitmask="true">
      <entry value="1" name="MAV_MODE_FLAG_SAFETY_ARMED"/>
      <entry value="128" name="MAV_MODE_FLAG_CUSTOM_MODE_ENABLED"/>
    </enum>
  </enums>
  <messages>
    <message id="0" name="HEARTBEAT">
      <field type="uint8_t" name="base_mode" enum="MAV_MODE_FLAG" display="bitmask">mode bits</field>
    </message>
  </messages>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !doc.enums[0].Bitmask() {
		t.Error("expected MAV_MODE_FLAG to be a bitmask enum")
	}
	fields := doc.messages[0].DeclaredFields()
	if len(fields) != 1 || !fields[0].Bitmask() {
		t.Errorf("expected base_mode field to be flagged bitmask, got %+v", fields)
	}
}

func TestParseFileEnumEntryValueAutoIncrements(t *testing.T) {
	doc, err := ParseFile("auto.xml", `<mavlink>
  <enums>
    <enum name="MAV_TYPE">
      <entry value="0" name="MAV_TYPE_GENERIC"/>
      <entry name="MAV_TYPE_FIXED_WING"/>
      <entry name="MAV_TYPE_QUADROTOR"/>
    </enum>
  </enums>
</mavlink>`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	entries := doc.enums[0].Entries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[1].Value() != 1 || entries[2].Value() != 2 {
		t.Errorf("expected auto-incrementing values 1, 2; got %d, %d", entries[1].Value(), entries[2].Value())
	}
}
