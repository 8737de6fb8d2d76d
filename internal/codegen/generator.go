// Package codegen walks a filtered protocol IR and emits a Go source tree:
// one package per dialect, with message structs, enum constants, and a
// dialect-level decode dispatcher, following the template-driven design the
// rest of the toolchain uses for every other code-shaped artifact.
package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shapestone/mavlinkgen/internal/ir"
	"github.com/shapestone/mavlinkgen/internal/naming"
)

// Params are the generator's configuration, independent of any one dialect.
type Params struct {
	// ModulePath is the Go module path the generated tree is rooted under,
	// used to build the import paths dialect packages use for their
	// messages/enums subpackages.
	ModulePath string
	// SerdeEnabled, when true, adds struct tags suitable for a JSON-style
	// serialisation framework to every generated field.
	SerdeEnabled bool
	// GenerateTests, when true, emits a round-trip encode/decode test
	// alongside each message.
	GenerateTests bool
}

// Generator renders a Protocol to a destination directory.
type Generator struct {
	params Params
}

func New(params Params) *Generator {
	return &Generator{params: params}
}

// Generate writes the full output tree for p under destDir, following the
// layout: <destDir>/dialects/<dialect>/{<dialect>.go,messages/*.go,enums/*.go}.
// Each file is staged to a temp path in its target directory and renamed
// into place only once its content has been fully rendered, so no single
// file is ever left half written. The tree as a whole is not staged: when an
// error stops a run part-way, the files already written stay in place.
func (g *Generator) Generate(p ir.Protocol, destDir string) error {
	dialectsDir := filepath.Join(destDir, "dialects")

	var names []string
	for _, d := range p.Dialects() {
		names = append(names, d.Name())
	}
	if err := g.writeRendered(destDir, "mavlinkgen.go", rootTemplate, rootData{ModulePath: g.params.ModulePath}); err != nil {
		return err
	}
	if err := g.writeRendered(dialectsDir, "dialects.go", dialectsIndexTemplate, dialectsIndexData{Dialects: names}); err != nil {
		return err
	}

	for _, d := range p.Dialects() {
		if err := g.generateDialect(d, dialectsDir); err != nil {
			return fmt.Errorf("generating dialect %s: %w", d.Name(), err)
		}
	}
	return nil
}

func (g *Generator) generateDialect(d ir.Dialect, dialectsDir string) error {
	dir := filepath.Join(dialectsDir, naming.DialectModName(d.Name()))
	messagesDir := filepath.Join(dir, "messages")
	enumsDir := filepath.Join(dir, "enums")

	msgData := dialectTemplateData{
		PackageName: naming.DialectModName(d.Name()),
		ModulePath:  g.params.ModulePath,
		DialectName: d.Name(),
		Messages:    make([]messageSumEntry, 0, len(d.Messages())),
	}
	for _, m := range d.Messages() {
		msgData.Messages = append(msgData.Messages, messageSumEntry{
			ID:         m.ID(),
			StructName: naming.MessageStructName(m.Name()),
			VarName:    naming.VarName(m.Name()),
		})
	}
	if err := g.writeRendered(dir, naming.DialectModName(d.Name())+".go", dialectTemplate, msgData); err != nil {
		return err
	}

	if err := g.writeRendered(messagesDir, "doc.go", messagesDocTemplate, packageDocData{Package: "messages", Dialect: d.Name()}); err != nil {
		return err
	}
	for _, m := range d.Messages() {
		if err := g.generateMessage(m, messagesDir, msgData.PackageName); err != nil {
			return fmt.Errorf("message %s: %w", m.Name(), err)
		}
	}

	if err := g.writeRendered(enumsDir, "doc.go", enumsDocTemplate, packageDocData{Package: "enums", Dialect: d.Name()}); err != nil {
		return err
	}
	for _, e := range d.Enums() {
		if err := g.generateEnum(e, enumsDir); err != nil {
			return fmt.Errorf("enum %s: %w", e.Name(), err)
		}
	}
	return nil
}

func (g *Generator) generateMessage(m ir.Message, dir, dialectPackage string) error {
	data := buildMessageData(m, g.params, dialectPackage)
	if err := g.writeRendered(dir, naming.MessageFileName(m.Name()), messageTemplate, data); err != nil {
		return err
	}
	if g.params.GenerateTests {
		testPath := naming.MessageModName(m.Name()) + "_test.go"
		if err := g.writeRendered(dir, testPath, messageTestTemplate, data); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateEnum(e ir.Enum, dir string) error {
	data := buildEnumData(e)
	return g.writeRendered(dir, naming.EnumFileName(e.Name()), enumTemplate, data)
}

// writeRendered renders tmpl with data and atomically writes the result to
// dir/filename, creating dir if it does not yet exist.
func (g *Generator) writeRendered(dir, filename, tmplSrc string, data any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	rendered, err := render(tmplSrc, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", filename, err)
	}
	return writeAtomic(dir, filename, rendered)
}

// writeAtomic stages content to a temp file in dir and renames it over
// filename, so a reader never observes a partially written file and a failed
// run never leaves a corrupt one behind.
func writeAtomic(dir, filename string, content []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-"+filename+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, filename))
}
