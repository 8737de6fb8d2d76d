// Package fingerprint computes a stable 64-bit hash over a filtered
// protocol IR and a generator's parameters, so a driver can skip a
// generation run whose inputs have not changed since the last one.
package fingerprint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

// Params mirrors the subset of codegen.Params that affects generated
// output shape; fingerprint does not import codegen, so it carries its own
// copy of these settings.
type Params struct {
	ModulePath    string
	SerdeEnabled  bool
	GenerateTests bool
}

// Compute hashes the canonical serialisation of p together with params into
// a single 64-bit value. The serialisation is deterministic: dialects,
// messages, enums and fields are all already carried in a fixed order by
// the IR, and every field that can affect generated output is included
// (descriptions too, since they appear as comments in the generated code).
func Compute(p ir.Protocol, params Params) uint64 {
	h := xxhash.New()
	writeCanonical(h, p, params)
	return h.Sum64()
}

func writeCanonical(h *xxhash.Digest, p ir.Protocol, params Params) {
	fmt.Fprintf(h, "module=%s;serde=%t;tests=%t\n", params.ModulePath, params.SerdeEnabled, params.GenerateTests)
	for _, d := range p.Dialects() {
		writeDialect(h, d)
	}
}

func writeDialect(h *xxhash.Digest, d ir.Dialect) {
	fmt.Fprintf(h, "dialect %s includes=%s\n", d.Name(), strings.Join(d.Includes(), ","))
	for _, m := range d.Messages() {
		writeMessage(h, m)
	}
	for _, e := range d.Enums() {
		writeEnum(h, e)
	}
}

func writeMessage(h *xxhash.Digest, m ir.Message) {
	fmt.Fprintf(h, "message id=%d name=%s definedIn=%s crc=%d baseSize=%d extSize=%d description=%q\n",
		m.ID(), m.Name(), m.DefinedIn(), m.CRCExtra(), m.PayloadSizeBase(), m.PayloadSizeExtended(), m.Description())
	for _, f := range m.DeclaredFields() {
		writeField(h, f)
	}
}

func writeField(h *xxhash.Digest, f ir.Field) {
	fmt.Fprintf(h, "field name=%s type=%s enum=%s bitmask=%t extension=%t description=%q\n",
		f.Name(), f.Type().String(), f.Enum(), f.Bitmask(), f.Extension(), f.Description())
}

func writeEnum(h *xxhash.Digest, e ir.Enum) {
	fmt.Fprintf(h, "enum name=%s bitmask=%t underlying=%s description=%q\n", e.Name(), e.Bitmask(), e.Underlying().String(), e.Description())
	entries := append([]ir.EnumEntry(nil), e.Entries()...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Value() < entries[j].Value() })
	for _, entry := range entries {
		fmt.Fprintf(h, "entry name=%s value=%d\n", entry.Name(), entry.Value())
	}
}

// cacheFileName is the fixed name of the fingerprint file persisted
// alongside a generated output tree.
const cacheFileName = ".mavlinkgen-fingerprint"

// Path returns the fingerprint file's location under destDir.
func Path(destDir string) string {
	return filepath.Join(destDir, cacheFileName)
}

// Load reads the previously persisted fingerprint at destDir, returning
// ok=false if none exists or it cannot be parsed (treated as "unknown",
// never as an error: a missing or corrupt cache simply forces a rebuild).
func Load(destDir string) (value uint64, ok bool) {
	data, err := os.ReadFile(Path(destDir))
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Save persists value as the fingerprint for destDir, overwriting any
// previous cache file.
func Save(destDir string, value uint64) error {
	return os.WriteFile(Path(destDir), []byte(strconv.FormatUint(value, 10)), 0o644)
}
