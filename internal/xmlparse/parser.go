package xmlparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/mavlinkgen/internal/ir"
)

// containerFrame is a structural element with no IR meaning of its own
// (<mavlink>, <enums>, <messages>): its only job is to balance the stack so
// its children commit into the right place when it closes.
type containerFrame struct{ name string }

func (f *containerFrame) tag() string { return f.name }

// ParseFile drives the context-stack parser over one dialect XML document,
// returning everything it declares locally. name identifies the source for
// error messages; it need not be a real filesystem path.
func ParseFile(name, content string) (fileDoc, error) {
	p := &parser{file: name, reader: NewReader(content), doc: fileDoc{}}
	if err := p.run(); err != nil {
		return fileDoc{}, err
	}
	return p.doc, nil
}

type parser struct {
	file   string
	reader *Reader
	doc    fileDoc
	stack  []frame
}

func (p *parser) top() frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) push(f frame) { p.stack = append(p.stack, f) }

func (p *parser) pop() frame {
	n := len(p.stack)
	f := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return f
}

func (p *parser) run() error {
	for {
		ev, err := p.reader.Next()
		if err != nil {
			return wrapErr(p.file, p.currentTag(), err)
		}
		if ev == nil {
			break
		}
		switch ev.Kind {
		case EventStart:
			if err := p.handleStart(ev); err != nil {
				return wrapErr(p.file, ev.Name, err)
			}
		case EventSelfClose:
			if ev.Name == "extensions" {
				if err := p.handleExtensions(); err != nil {
					return wrapErr(p.file, ev.Name, err)
				}
				continue
			}
			if err := p.handleStart(ev); err != nil {
				return wrapErr(p.file, ev.Name, err)
			}
			if err := p.handleEnd(ev.Name); err != nil {
				return wrapErr(p.file, ev.Name, err)
			}
		case EventEnd:
			if err := p.handleEnd(ev.Name); err != nil {
				return wrapErr(p.file, ev.Name, err)
			}
		case EventText:
			p.handleText(ev.Text)
		}
	}
	if len(p.stack) != 0 {
		return wrapErr(p.file, p.currentTag(), fmt.Errorf("unexpected end of document, %d element(s) still open", len(p.stack)))
	}
	return nil
}

func (p *parser) currentTag() string {
	if f := p.top(); f != nil {
		return f.tag()
	}
	return ""
}

func (p *parser) handleExtensions() error {
	mf, ok := p.top().(*messageFrame)
	if !ok {
		return fmt.Errorf("<extensions/> outside of a <message>")
	}
	mf.inExtensionSection = true
	return nil
}

func (p *parser) handleStart(ev *Event) error {
	if _, inIgnored := p.top().(*ignoredFrame); inIgnored {
		p.push(&ignoredFrame{name: ev.Name})
		return nil
	}
	switch ev.Name {
	case "mavlink":
		p.push(&mavlinkFrame{})

	case "include":
		p.push(&includeFrame{})

	case "version":
		p.push(&versionFrame{})

	case "dialect":
		p.push(&dialectFrame{})

	case "enums":
		p.push(&containerFrame{name: "enums"})

	case "messages":
		p.push(&containerFrame{name: "messages"})

	case "enum":
		b := ir.NewEnumBuilder().SetName(ev.Attrs["name"])
		if v, ok := ev.Attrs["bitmask"]; ok {
			b.SetBitmask(v == "true")
		}
		p.push(&enumFrame{b: b})

	case "entry":
		parent, ok := p.top().(*enumFrame)
		if !ok {
			return fmt.Errorf("<entry> outside of an <enum>")
		}
		eb := ir.NewEnumEntryBuilder().SetName(ev.Attrs["name"])
		ef := &enumEntryFrame{b: eb}
		if raw, has := ev.Attrs["value"]; has {
			v, err := parseUint(raw)
			if err != nil {
				return fmt.Errorf("entry %q: bad value attribute: %w", ev.Attrs["name"], err)
			}
			eb.SetValue(v)
			ef.hasExplicitValue = true
		} else {
			eb.SetValue(parent.nextValue)
		}
		p.push(ef)

	case "param":
		if _, ok := p.top().(*enumEntryFrame); !ok {
			return fmt.Errorf("<param> outside of an <entry>")
		}
		pf := &paramFrame{label: ev.Attrs["label"], units: ev.Attrs["units"], enum: ev.Attrs["enum"]}
		idx, err := strconv.Atoi(ev.Attrs["index"])
		if err != nil {
			return fmt.Errorf("param: bad index attribute %q: %w", ev.Attrs["index"], err)
		}
		pf.index = idx
		if raw, has := ev.Attrs["minValue"]; has {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("param %d: bad minValue: %w", idx, err)
			}
			pf.min = &v
		}
		if raw, has := ev.Attrs["maxValue"]; has {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("param %d: bad maxValue: %w", idx, err)
			}
			pf.max = &v
		}
		if raw, has := ev.Attrs["increment"]; has {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("param %d: bad increment: %w", idx, err)
			}
			pf.increment = &v
		}
		p.push(pf)

	case "message":
		idRaw := ev.Attrs["id"]
		id, err := parseUint(idRaw)
		if err != nil {
			return fmt.Errorf("message %q: bad id attribute %q: %w", ev.Attrs["name"], idRaw, err)
		}
		b := ir.NewMessageBuilder().SetID(uint32(id)).SetName(ev.Attrs["name"])
		p.push(&messageFrame{b: b})

	case "field":
		parent, ok := p.top().(*messageFrame)
		if !ok {
			return fmt.Errorf("<field> outside of a <message>")
		}
		display := ev.Attrs["display"]
		p.push(&fieldFrame{
			name:      ev.Attrs["name"],
			typ:       ev.Attrs["type"],
			enum:      ev.Attrs["enum"],
			bitmask:   display == "bitmask",
			display:   display,
			units:     ev.Attrs["units"],
			extension: parent.inExtensionSection,
		})

	case "description":
		p.push(&descriptionFrame{})

	case "deprecated":
		df := &deprecatedFrame{replacedBy: ev.Attrs["replaced_by"]}
		if since, ok := ev.Attrs["since"]; ok {
			year, month, err := parseSince(since)
			if err != nil {
				return fmt.Errorf("deprecated: bad since attribute %q: %w", since, err)
			}
			df.sinceYear, df.sinceMonth = year, month
		}
		p.push(df)

	default:
		p.doc.warnings = append(p.doc.warnings, fmt.Sprintf("unrecognised element <%s>, ignoring", ev.Name))
		p.push(&ignoredFrame{name: ev.Name})
	}
	return nil
}

func (p *parser) handleText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	switch f := p.top().(type) {
	case *includeFrame:
		f.text.WriteString(text)
	case *versionFrame:
		f.text.WriteString(text)
	case *dialectFrame:
		f.text.WriteString(text)
	case *descriptionFrame:
		f.text.WriteString(text)
	case *deprecatedFrame:
		f.text.WriteString(text)
	case *paramFrame:
		f.text.WriteString(text)
	case *fieldFrame:
		f.text.WriteString(text)
	}
}

func (p *parser) handleEnd(name string) error {
	if len(p.stack) == 0 {
		return fmt.Errorf("unmatched closing tag </%s>", name)
	}
	closed := p.pop()
	if closed.tag() != name {
		return fmt.Errorf("mismatched closing tag </%s>, expected </%s>", name, closed.tag())
	}

	switch f := closed.(type) {
	case *mavlinkFrame:
		// root closes; nothing to commit.

	case *includeFrame:
		p.doc.includes = append(p.doc.includes, strings.TrimSpace(f.text.String()))

	case *versionFrame:
		v, err := strconv.ParseUint(strings.TrimSpace(f.text.String()), 10, 8)
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		vv := uint8(v)
		p.doc.version = &vv

	case *dialectFrame:
		v, err := strconv.ParseUint(strings.TrimSpace(f.text.String()), 10, 32)
		if err != nil {
			return fmt.Errorf("dialect: %w", err)
		}
		vv := uint32(v)
		p.doc.dialectID = &vv

	case *containerFrame:
		// <enums>/<messages> carry nothing of their own.

	case *enumFrame:
		e, err := f.b.Build()
		if err != nil {
			return err
		}
		p.doc.enums = append(p.doc.enums, e)

	case *enumEntryFrame:
		parent, ok := p.top().(*enumFrame)
		if !ok {
			return fmt.Errorf("<entry> closed outside of an <enum>")
		}
		entry, err := f.b.Build()
		if err != nil {
			return err
		}
		parent.b.AddEntry(entry)
		parent.nextValue = entry.Value() + 1

	case *paramFrame:
		parent, ok := p.top().(*enumEntryFrame)
		if !ok {
			return fmt.Errorf("<param> closed outside of an <entry>")
		}
		parent.b.AddParam(ir.MavCmdParam{
			Index:       f.index,
			Label:       f.label,
			Units:       f.units,
			Enum:        f.enum,
			Min:         f.min,
			Max:         f.max,
			Increment:   f.increment,
			Description: strings.TrimSpace(f.text.String()),
		})

	case *messageFrame:
		m, err := f.b.Build()
		if err != nil {
			return err
		}
		for _, existing := range p.doc.messages {
			if existing.ID() == m.ID() {
				return fmt.Errorf("duplicate message id %d (%s and %s) within one dialect file", m.ID(), existing.Name(), m.Name())
			}
		}
		p.doc.messages = append(p.doc.messages, m)

	case *fieldFrame:
		parent, ok := p.top().(*messageFrame)
		if !ok {
			return fmt.Errorf("<field> closed outside of a <message>")
		}
		t, err := ir.ParseMavXMLType(f.typ)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
		parent.b.AddField(ir.FieldSpec{
			Name:        f.name,
			Type:        t,
			Enum:        f.enum,
			Bitmask:     f.bitmask,
			Display:     f.display,
			Units:       f.units,
			Description: strings.TrimSpace(f.text.String()),
			Extension:   f.extension,
		})

	case *descriptionFrame:
		desc := strings.TrimSpace(f.text.String())
		switch parent := p.top().(type) {
		case *messageFrame:
			parent.b.SetDescription(desc)
		case *enumFrame:
			parent.b.SetDescription(desc)
		case *enumEntryFrame:
			parent.b.SetDescription(desc)
		default:
			return fmt.Errorf("<description> in an unexpected context")
		}

	case *deprecatedFrame:
		dep := ir.NewDeprecated(f.sinceYear, f.sinceMonth, f.replacedBy, strings.TrimSpace(f.text.String()))
		switch parent := p.top().(type) {
		case *messageFrame:
			parent.b.SetDeprecated(dep)
		case *enumFrame:
			parent.b.SetDeprecated(dep)
		case *enumEntryFrame:
			parent.b.SetDeprecated(dep)
		default:
			return fmt.Errorf("<deprecated> in an unexpected context")
		}
	}
	return nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}

// parseSince parses a deprecation "since" attribute of the form "YYYY-MM".
func parseSince(s string) (year int, month uint8, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected YYYY-MM")
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", m)
	}
	return y, uint8(m), nil
}
