// Package xmlparse implements the streaming SAX-style dialect XML reader: a
// parsing-context stack drives construction of the protocol IR directly from
// tokenizer events, with no intermediate generic AST.
package xmlparse

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/mavlinkgen/internal/xmltok"
)

// EventKind identifies the shape of an Event.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventText
	EventSelfClose
)

// Event is one SAX-style parsing event: a start tag, an end tag, a
// self-closing tag (reported once, standing in for a Start+End pair), or a
// run of text content.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs map[string]string
	Text  string
	Line  int
	Col   int
}

// Reader turns dialect XML tokens into a flat stream of SAX events. It is
// the XML-grammar layer underneath the parsing-context stack in context.go:
// the stack decides what each event *means*; the Reader only knows how to
// recognise tags, attributes, and text.
type Reader struct {
	tok      tokenizer.Tokenizer
	current  *tokenizer.Token
	hasToken bool
}

// NewReader builds a Reader over an in-memory XML string.
func NewReader(input string) *Reader {
	stream := tokenizer.NewStream(input)
	return newReaderFromStream(stream)
}

func newReaderFromStream(stream tokenizer.Stream) *Reader {
	tok := xmltok.NewFromStream(stream)
	r := &Reader{tok: tok}
	r.advance()
	return r
}

func (r *Reader) advance() {
	tok, ok := r.tok.NextToken()
	r.current = tok
	r.hasToken = ok
}

func (r *Reader) peek() *tokenizer.Token {
	for r.hasToken && r.current != nil && r.current.Kind() == xmltok.Whitespace {
		r.advance()
	}
	if !r.hasToken {
		return nil
	}
	return r.current
}

// Next returns the next SAX event, or (nil, nil) at end of input.
func (r *Reader) Next() (*Event, error) {
	for {
		tok := r.peek()
		if tok == nil {
			return nil, nil
		}

		switch tok.Kind() {
		case xmltok.CommentStart:
			if err := r.skipComment(); err != nil {
				return nil, err
			}
			continue

		case xmltok.XMLDeclStart:
			if err := r.skipUntil(xmltok.PIEnd); err != nil {
				return nil, err
			}
			continue

		case xmltok.EndTagOpen:
			return r.readEndTag()

		case xmltok.TagOpen:
			return r.readStartTag()

		case xmltok.Text, xmltok.Whitespace:
			text := tok.ValueString()
			r.advance()
			return &Event{Kind: EventText, Text: text}, nil

		default:
			return nil, fmt.Errorf("xmlparse: unexpected token %q", tok.Kind())
		}
	}
}

// skipComment consumes a comment. The tokenizer reports a whole
// "<!-- ... -->" run as a single CommentStart token.
func (r *Reader) skipComment() error {
	r.advance()
	return nil
}

func (r *Reader) skipUntil(kind string) error {
	for {
		tok := r.peek()
		if tok == nil {
			return fmt.Errorf("xmlparse: unexpected end of input while skipping to %q", kind)
		}
		r.advance()
		if tok.Kind() == kind {
			return nil
		}
	}
}

func (r *Reader) readEndTag() (*Event, error) {
	r.advance() // consume </
	tok := r.peek()
	if tok == nil || tok.Kind() != xmltok.Name {
		return nil, fmt.Errorf("xmlparse: expected element name after </")
	}
	name := tok.ValueString()
	r.advance()
	if err := r.expect(xmltok.TagClose); err != nil {
		return nil, fmt.Errorf("xmlparse: closing tag for %q: %w", name, err)
	}
	return &Event{Kind: EventEnd, Name: name}, nil
}

func (r *Reader) readStartTag() (*Event, error) {
	r.advance() // consume <
	tok := r.peek()
	if tok == nil || tok.Kind() != xmltok.Name {
		return nil, fmt.Errorf("xmlparse: expected element name after <")
	}
	name := tok.ValueString()
	r.advance()

	attrs := make(map[string]string)
	for {
		tok := r.peek()
		if tok == nil {
			return nil, fmt.Errorf("xmlparse: unexpected end of input in element %q", name)
		}
		if tok.Kind() != xmltok.Name {
			break
		}
		attrName := tok.ValueString()
		r.advance()
		if err := r.expect(xmltok.Equals); err != nil {
			return nil, fmt.Errorf("xmlparse: attribute %q in element %q: %w", attrName, name, err)
		}
		valTok := r.peek()
		if valTok == nil || valTok.Kind() != xmltok.String {
			return nil, fmt.Errorf("xmlparse: expected string value for attribute %q", attrName)
		}
		attrs[attrName] = unquote(valTok.ValueString())
		r.advance()
	}

	tok = r.peek()
	if tok == nil {
		return nil, fmt.Errorf("xmlparse: unexpected end of input in element %q", name)
	}
	if tok.Kind() == xmltok.TagSelfClose {
		r.advance()
		return &Event{Kind: EventSelfClose, Name: name, Attrs: attrs}, nil
	}
	if err := r.expect(xmltok.TagClose); err != nil {
		return nil, fmt.Errorf("xmlparse: element %q: %w", name, err)
	}
	return &Event{Kind: EventStart, Name: name, Attrs: attrs}, nil
}

func (r *Reader) expect(kind string) error {
	tok := r.peek()
	if tok == nil {
		return fmt.Errorf("expected %s, got EOF", kind)
	}
	if tok.Kind() != kind {
		return fmt.Errorf("expected %s, got %s", kind, tok.Kind())
	}
	r.advance()
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return unescapeEntities(s)
}

func unescapeEntities(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			out = append(out, s[i])
			continue
		}
		rest := s[i:]
		switch {
		case hasPrefix(rest, "&lt;"):
			out = append(out, '<')
			i += 3
		case hasPrefix(rest, "&gt;"):
			out = append(out, '>')
			i += 3
		case hasPrefix(rest, "&amp;"):
			out = append(out, '&')
			i += 4
		case hasPrefix(rest, "&apos;"):
			out = append(out, '\'')
			i += 5
		case hasPrefix(rest, "&quot;"):
			out = append(out, '"')
			i += 5
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
