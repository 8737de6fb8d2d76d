package xmltok

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// New builds a tokenizer for dialect XML. It is state-based like any XML
// tokenizer has to be: the same byte means different things depending on
// whether we're inside a tag, inside text, or inside a comment.
func New() tokenizer.Tokenizer {
	return tokenizer.NewTokenizer(
		commentMatcher(),
		xmlDeclMatcher(),
		tokenizer.StringMatcherFunc(PIEnd, "?>"),
		endTagOpenMatcher(), // "</" must be tried before "<"
		tagSelfCloseMatcher(),
		tokenizer.StringMatcherFunc(TagOpen, "<"),
		tokenizer.StringMatcherFunc(TagClose, ">"),
		tokenizer.StringMatcherFunc(Equals, "="),
		stringMatcher(),
		nameMatcher(),
		whitespaceMatcher(),
		textMatcher(),
	)
}

// NewFromStream builds a tokenizer over a pre-configured stream. The
// xmlparse Reader uses it with a stream over an in-memory string.
func NewFromStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := New()
	tok.InitializeFromStream(stream)
	return tok
}

func commentMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if !matchLiteral(stream, "<!--") {
			return nil
		}
		for {
			r, ok := stream.PeekChar()
			if !ok {
				return nil
			}
			if r == '-' {
				saved := stream.GetLocation()
				if matchLiteral(stream, "-->") {
					return tokenizer.NewToken(CommentStart, []rune("<!--"))
				}
				stream.SetLocation(saved)
			}
			stream.NextChar()
		}
	}
}

func xmlDeclMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		saved := stream.GetLocation()
		if matchLiteral(stream, "<?xml") {
			return tokenizer.NewToken(XMLDeclStart, []rune("<?xml"))
		}
		stream.SetLocation(saved)
		return nil
	}
}

func endTagOpenMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if matchLiteral(stream, "</") {
			return tokenizer.NewToken(EndTagOpen, []rune("</"))
		}
		return nil
	}
}

func tagSelfCloseMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if matchLiteral(stream, "/>") {
			return tokenizer.NewToken(TagSelfClose, []rune("/>"))
		}
		return nil
	}
}

func stringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if bs, ok := stream.(tokenizer.ByteStream); ok {
			if tok := stringMatcherByte(bs); tok != nil {
				return tok
			}
			return nil
		}
		return stringMatcherRune(stream)
	}
}

func stringMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	b, ok := stream.PeekByte()
	if !ok || (b != '"' && b != '\'') {
		return nil
	}
	quote := b
	start := stream.BytePosition()
	stream.NextByte()

	offset := tokenizer.FindByte(stream.RemainingBytes(), quote)
	if offset == -1 {
		return nil
	}
	for i := 0; i < offset; i++ {
		stream.NextByte()
	}
	stream.NextByte() // consume closing quote

	value := stream.SliceFrom(start)
	return tokenizer.NewToken(String, []rune(string(value)))
}

func stringMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	r, ok := stream.PeekChar()
	if !ok || (r != '"' && r != '\'') {
		return nil
	}
	quote := r
	var value []rune
	value = append(value, quote)
	stream.NextChar()

	for {
		r, ok := stream.NextChar()
		if !ok {
			return nil
		}
		value = append(value, r)
		if r == quote {
			return tokenizer.NewToken(String, value)
		}
	}
}

func nameMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if bs, ok := stream.(tokenizer.ByteStream); ok {
			return nameMatcherByte(bs)
		}
		return nameMatcherRune(stream)
	}
}

func nameMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	b, ok := stream.PeekByte()
	if !ok || !isNameStartByte(b) {
		return nil
	}
	start := stream.BytePosition()
	for {
		b, ok := stream.PeekByte()
		if !ok || !isNameByte(b) {
			break
		}
		stream.NextByte()
	}
	value := stream.SliceFrom(start)
	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(Name, []rune(string(value)))
}

func nameMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	r, ok := stream.PeekChar()
	if !ok || !isNameStartRune(r) {
		return nil
	}
	var value []rune
	for {
		r, ok := stream.PeekChar()
		if !ok || !isNameRune(r) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}
	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(Name, value)
}

func whitespaceMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if bs, ok := stream.(tokenizer.ByteStream); ok {
			return whitespaceMatcherByte(bs)
		}
		return whitespaceMatcherRune(stream)
	}
}

func whitespaceMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	b, ok := stream.PeekByte()
	if !ok || !isWhitespaceByte(b) {
		return nil
	}
	start := stream.BytePosition()
	for {
		b, ok := stream.PeekByte()
		if !ok || !isWhitespaceByte(b) {
			break
		}
		stream.NextByte()
	}
	value := stream.SliceFrom(start)
	return tokenizer.NewToken(Whitespace, []rune(string(value)))
}

func whitespaceMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	r, ok := stream.PeekChar()
	if !ok || !isWhitespaceRune(r) {
		return nil
	}
	var value []rune
	for {
		r, ok := stream.PeekChar()
		if !ok || !isWhitespaceRune(r) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}
	return tokenizer.NewToken(Whitespace, value)
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func textMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if bs, ok := stream.(tokenizer.ByteStream); ok {
			return textMatcherByte(bs)
		}
		return textMatcherRune(stream)
	}
}

func textMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	b, ok := stream.PeekByte()
	if !ok || b == '<' {
		return nil
	}
	start := stream.BytePosition()
	offset := tokenizer.FindByte(stream.RemainingBytes(), '<')
	if offset == -1 {
		for {
			if _, ok := stream.NextByte(); !ok {
				break
			}
		}
	} else {
		for i := 0; i < offset; i++ {
			stream.NextByte()
		}
	}
	value := stream.SliceFrom(start)
	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(Text, []rune(string(value)))
}

func textMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	r, ok := stream.PeekChar()
	if !ok || r == '<' {
		return nil
	}
	var value []rune
	for {
		r, ok := stream.PeekChar()
		if !ok || r == '<' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}
	if len(value) == 0 {
		return nil
	}
	return tokenizer.NewToken(Text, value)
}

func matchLiteral(stream tokenizer.Stream, s string) bool {
	saved := stream.GetLocation()
	for _, want := range s {
		r, ok := stream.NextChar()
		if !ok || r != want {
			stream.SetLocation(saved)
			return false
		}
	}
	return true
}

func isNameStartByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

func isNameByte(b byte) bool {
	return isNameStartByte(b) || (b >= '0' && b <= '9') || b == '.' || b == '-' || b == ':'
}

func isNameStartRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
}

func isNameRune(r rune) bool {
	return isNameStartRune(r) || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == ':'
}
