// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseError describes a malformed type spec.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type spec %q: offset %d: %s", e.Input, e.Offset, e.Msg)
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokPunct
	tokIdent
)

type token struct {
	kind tokenKind
	text string
	off  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokPunct:
		return strconv.Quote(t.text)
	}
	return "identifier " + strconv.Quote(t.text)
}

func isPunct(c byte) bool {
	switch c {
	case '*', '!', '%', ':', '[', ']', ',':
		return true
	}
	return false
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isQuote(c byte) bool { return c == '\'' || c == '"' }

type lexer struct {
	src string
	pos int
}

func (l *lexer) errorf(off int, format string, args ...interface{}) error {
	return &ParseError{Input: l.src, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, off: start}, nil
	}
	c := l.src[l.pos]
	switch {
	case isPunct(c):
		l.pos++
		return token{kind: tokPunct, text: l.src[start:l.pos], off: start}, nil

	case isQuote(c):
		// A doubled quote embeds the quote character.
		var sb strings.Builder
		l.pos++
		for {
			if l.pos >= len(l.src) {
				return token{}, l.errorf(start, "unterminated quoted name")
			}
			ch := l.src[l.pos]
			l.pos++
			if ch != c {
				sb.WriteByte(ch)
				continue
			}
			if l.pos < len(l.src) && l.src[l.pos] == c {
				sb.WriteByte(c)
				l.pos++
				continue
			}
			return token{kind: tokIdent, text: sb.String(), off: start}, nil
		}

	default:
		for l.pos < len(l.src) {
			ch := l.src[l.pos]
			if isPunct(ch) || isSpace(ch) || isQuote(ch) {
				break
			}
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], off: start}, nil
	}
}

type parser struct {
	lex lexer
	tok token
}

// Parse reads a type from its textual form. Aggregates are written ![name:type, ...] and
// *[name:type, ...], enums %k[name:literal, ...], and every other kind by its character.
func Parse(spec string) (*Type, error) {
	p := &parser{lex: lexer{src: spec}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.lex.errorf(p.tok.off, "unexpected %v after type", p.tok)
	}
	return t, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(spec string) *Type {
	t, err := Parse(spec)
	if err != nil {
		panic(errors.Wrap(err, "types: MustParse"))
	}
	return t
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) isPunct(c string) bool { return p.tok.kind == tokPunct && p.tok.text == c }

func (p *parser) expect(c string) error {
	if !p.isPunct(c) {
		return p.lex.errorf(p.tok.off, "expected %q, found %v", c, p.tok)
	}
	return p.advance()
}

func (p *parser) ident() (string, error) {
	if p.tok.kind != tokIdent {
		return "", p.lex.errorf(p.tok.off, "expected identifier, found %v", p.tok)
	}
	s := p.tok.text
	return s, p.advance()
}

func (p *parser) parseType() (*Type, error) {
	tok := p.tok
	switch {
	case p.isPunct("!"), p.isPunct("*"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		fields, err := p.parseFields()
		if err != nil {
			return nil, err
		}
		if tok.text == "!" {
			return RecordOf(fields), nil
		}
		return TableOf(fields), nil

	case p.isPunct("%"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		off := p.tok.off
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		superkind, ok := charKinds[name]
		if !ok || !superkind.IsPrimitive() {
			return nil, p.lex.errorf(off, "invalid enum superkind %q", name)
		}
		values, err := p.parseValues(superkind)
		if err != nil {
			return nil, err
		}
		return EnumOf(superkind, values), nil

	case tok.kind == tokIdent:
		k, ok := charKinds[tok.text]
		if !ok || k == Record || k == Table || k == Enum {
			return nil, p.lex.errorf(tok.off, "unknown kind %q", tok.text)
		}
		if k.IsLazy() {
			return nil, p.lex.errorf(tok.off, "lazy %v cannot be parsed", k)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if (k == File || k == LargeImage) && p.isPunct("[") {
			fields, err := p.parseFields()
			if err != nil {
				return nil, err
			}
			return newAggregate(k, fields), nil
		}
		return Of(k), nil
	}
	return nil, p.lex.errorf(tok.off, "expected type, found %v", tok)
}

func (p *parser) parseFields() (FieldMap, error) {
	b := NewFieldMapBuilder()
	err := p.parseList(func(name string) error {
		t, err := p.parseType()
		if err != nil {
			return err
		}
		b.Set(name, t)
		return nil
	})
	if err != nil {
		return EmptyFieldMap, err
	}
	return b.Build(), nil
}

func (p *parser) parseValues(superkind Kind) (ValueMap, error) {
	var values []EnumValue
	err := p.parseList(func(name string) error {
		off := p.tok.off
		text, err := p.ident()
		if err != nil {
			return err
		}
		v, err := parseLiteral(superkind, text)
		if err != nil {
			return p.lex.errorf(off, "%v literal %q: %v", superkind, text, errors.Cause(err))
		}
		values = append(values, EnumValue{name, v})
		return nil
	})
	if err != nil {
		return EmptyValueMap, err
	}
	return NewValueMap(values...), nil
}

// parseList reads "[" [name ":" item {"," name ":" item}] "]".
func (p *parser) parseList(item func(name string) error) error {
	if err := p.expect("["); err != nil {
		return err
	}
	if p.isPunct("]") {
		return p.advance()
	}
	for {
		name, err := p.ident()
		if err != nil {
			return err
		}
		if err := p.expect(":"); err != nil {
			return err
		}
		if err := item(name); err != nil {
			return err
		}
		if p.isPunct(",") {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		return p.expect("]")
	}
}

func parseLiteral(k Kind, text string) (interface{}, error) {
	switch {
	case k.IsNumeric():
		return strconv.ParseFloat(text, 64)
	case k == Boolean:
		return strconv.ParseBool(text)
	}
	return text, nil
}
