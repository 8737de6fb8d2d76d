package mavlinkgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const heartbeatOnlyXML = `<?xml version="1.0"?>
<mavlink>
  <version>3</version>
  <messages>
    <message id="0" name="HEARTBEAT">
      <description>The heartbeat message shows that a system is present.</description>
      <field type="uint8_t" name="type" enum="MAV_TYPE">Vehicle type.</field>
      <field type="uint8_t" name="autopilot" enum="MAV_AUTOPILOT">Autopilot type.</field>
      <field type="uint8_t" name="base_mode" enum="MAV_MODE_FLAG" display="bitmask">System mode bitmap.</field>
      <field type="uint32_t" name="custom_mode">Autopilot-specific flags.</field>
      <field type="uint8_t" name="system_status" enum="MAV_STATE">System status.</field>
      <field type="uint8_t_mavlink_version" name="mavlink_version">MAVLink version.</field>
    </message>
  </messages>
  <enums>
    <enum name="MAV_TYPE">
      <entry value="0" name="MAV_TYPE_GENERIC"/>
    </enum>
    <enum name="MAV_AUTOPILOT">
      <entry value="0" name="MAV_AUTOPILOT_GENERIC"/>
    </enum>
    <enum name="MAV_MODE_FLAG" bitmask="true">
      <entry value="1" name="MAV_MODE_FLAG_SAFETY_ARMED"/>
    </enum>
    <enum name="MAV_STATE">
      <entry value="0" name="MAV_STATE_UNINIT"/>
    </enum>
  </enums>
</mavlink>`

func writeSourceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// TestRunMinimalDialectEndToEnd covers scenario E1: a dialect declaring only
// HEARTBEAT generates one dialect, one message, with the expected CRC_EXTRA
// and base payload size baked into the emitted source.
func TestRunMinimalDialectEndToEnd(t *testing.T) {
	srcDir := t.TempDir()
	writeSourceFile(t, srcDir, "minimal.xml", heartbeatOnlyXML)

	destDir := t.TempDir()
	cfg := Config{
		Sources:     []string{srcDir},
		EntryFiles:  []string{"minimal.xml"},
		Destination: destDir,
		ModulePath:  "example.com/gen",
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DialectCount != 1 {
		t.Fatalf("DialectCount = %d, want 1", result.DialectCount)
	}

	content, err := os.ReadFile(filepath.Join(destDir, "dialects/minimal/messages/heartbeat.go"))
	if err != nil {
		t.Fatalf("reading generated message: %v", err)
	}
	src := string(content)
	if !strings.Contains(src, "CRCExtraMessageHeartbeat uint8 = 50") {
		t.Errorf("expected CRC_EXTRA 50 for HEARTBEAT, got:\n%s", src)
	}
}

func TestRunSkipsWhenFingerprintUnchanged(t *testing.T) {
	srcDir := t.TempDir()
	writeSourceFile(t, srcDir, "minimal.xml", heartbeatOnlyXML)

	destDir := t.TempDir()
	cfg := Config{
		Sources:         []string{srcDir},
		EntryFiles:      []string{"minimal.xml"},
		Destination:     destDir,
		ModulePath:      "example.com/gen",
		SkipIfUnchanged: true,
	}

	first, err := Run(cfg)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if first.Skipped {
		t.Fatal("first run should not be skipped")
	}

	second, err := Run(cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !second.Skipped {
		t.Fatal("second run with unchanged inputs should be skipped")
	}
}

// TestRunManifestDrivenDialectSelection covers manifest-driven selection:
// with no EntryFiles set, a manifest naming a dialect is enough to load and
// generate it.
func TestRunManifestDrivenDialectSelection(t *testing.T) {
	srcDir := t.TempDir()
	writeSourceFile(t, srcDir, "minimal.xml", heartbeatOnlyXML)

	manifestPath := filepath.Join(t.TempDir(), "manifest.txt")
	if err := os.WriteFile(manifestPath, []byte("# enabled dialects\nminimal\n"), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	destDir := t.TempDir()
	cfg := Config{
		Sources:      []string{srcDir},
		Destination:  destDir,
		ModulePath:   "example.com/gen",
		ManifestPath: manifestPath,
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DialectCount != 1 {
		t.Fatalf("DialectCount = %d, want 1", result.DialectCount)
	}
	if _, err := os.Stat(filepath.Join(destDir, "dialects/minimal/messages/heartbeat.go")); err != nil {
		t.Errorf("expected minimal dialect to be generated: %v", err)
	}
}

// TestRunDiscoversAllDialectsByDefault covers the "else all parsed" default:
// with no EntryFiles, IncludeDialects, or ManifestPath set, Run loads every
// dialect XML file under the source directories.
func TestRunDiscoversAllDialectsByDefault(t *testing.T) {
	srcDir := t.TempDir()
	writeSourceFile(t, srcDir, "minimal.xml", heartbeatOnlyXML)
	writeSourceFile(t, srcDir, "child.xml", `<mavlink>
  <include>minimal.xml</include>
  <messages>
    <message id="1" name="SYS_STATUS">
      <field type="uint32_t" name="onboard_control_sensors_present">present sensors</field>
    </message>
  </messages>
</mavlink>`)

	destDir := t.TempDir()
	cfg := Config{
		Sources:     []string{srcDir},
		Destination: destDir,
		ModulePath:  "example.com/gen",
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.DialectCount != 2 {
		t.Fatalf("DialectCount = %d, want 2", result.DialectCount)
	}
	if _, err := os.Stat(filepath.Join(destDir, "dialects/minimal/messages/heartbeat.go")); err != nil {
		t.Errorf("expected minimal dialect to be generated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(destDir, "dialects/child/messages/sys_status.go")); err != nil {
		t.Errorf("expected child dialect to be generated: %v", err)
	}
}

func TestRunRequiresSourcesAndDestination(t *testing.T) {
	if _, err := Run(Config{Destination: "out"}); err == nil {
		t.Error("expected an error with no Sources")
	}
	if _, err := Run(Config{Sources: []string{"."}}); err == nil {
		t.Error("expected an error with no Destination")
	}
}

