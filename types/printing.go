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
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnrepresentable is returned by Format for nodes the textual codec cannot reproduce:
// lazy aggregates, nodes carrying host annotations and aggregates with optional fields.
var ErrUnrepresentable = errors.New("type has no textual representation")

// One character per kind. Aggregates and enums are introduced by punctuators.
var kindChars = [kindLim]byte{
	Unknown:            '?',
	Error:              'e',
	Record:             '!',
	Table:              '*',
	LazyRecord:         'r',
	LazyTable:          'R',
	Boolean:            'b',
	Number:             'n',
	Decimal:            'w',
	Currency:           '$',
	String:             's',
	Hyperlink:          'h',
	Date:               'D',
	Time:               'T',
	DateTime:           'd',
	DateTimeNoTimeZone: 'Z',
	Guid:               'g',
	Color:              'c',
	Image:              'i',
	PenImage:           'p',
	Media:              'm',
	Blob:               'o',
	Enum:               '%',
	ObjNull:            'N',
	Deferred:           'X',
	Void:               '-',
	UntypedObject:      'O',
	DataEntity:         'E',
	Metadata:           'A',
	OptionSet:          'L',
	OptionSetValue:     'l',
	Polymorphic:        'P',
	View:               'Y',
	ViewValue:          'y',
	NamedValue:         'V',
	Control:            'C',
	File:               'F',
	LargeImage:         'M',
}

var charKinds = map[string]Kind{}

func init() {
	for k := kindMin; k < kindLim; k++ {
		charKinds[string(kindChars[k])] = k
	}
}

// KindChar returns the codec character of k.
func KindChar(k Kind) byte {
	if k >= kindLim {
		return 0
	}
	return kindChars[k]
}

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.lossy = false
	printerPool.Put(p)
}

type typePrinter struct {
	sb    strings.Builder
	lossy bool
}

// TypeString returns the textual form of a Type. Nodes the codec cannot represent are printed
// by kind character alone.
func TypeString(t *Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// Format returns the textual form of t, or ErrUnrepresentable if parsing it back would not
// reproduce t.
func Format(t *Type) (string, error) {
	p := newTypePrinter()
	typeString(p, t)
	s, lossy := p.sb.String(), p.lossy
	p.Release()
	if lossy {
		return "", errors.Wrapf(ErrUnrepresentable, "format %s", s)
	}
	return s, nil
}

func typeString(p *typePrinter, t *Type) {
	if t.annot != nil || t.optional || t.lazy != nil {
		p.lossy = true
	}
	switch t.kind {
	case Record, Table:
		p.sb.WriteByte(kindChars[t.kind])
		fieldsString(p, t.Fields())

	case File, LargeImage, OptionSet, View:
		p.sb.WriteByte(kindChars[t.kind])
		if t.Fields().Len() > 0 {
			if t.kind == OptionSet || t.kind == View {
				p.lossy = true
			}
			fieldsString(p, t.Fields())
		}

	case Enum:
		p.sb.WriteByte('%')
		p.sb.WriteByte(kindChars[t.superkind])
		p.sb.WriteByte('[')
		i := 0
		t.Values().Range(func(name string, v interface{}) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			writeName(p, name)
			p.sb.WriteByte(':')
			if !literalFits(t.superkind, v) {
				p.lossy = true
			}
			writeLiteral(p, v)
			i++
			return true
		})
		p.sb.WriteByte(']')

	default:
		p.sb.WriteByte(kindChars[t.kind])
	}
}

func fieldsString(p *typePrinter, fields FieldMap) {
	p.sb.WriteByte('[')
	i := 0
	fields.Range(func(name string, ft *Type) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		writeName(p, name)
		p.sb.WriteByte(':')
		typeString(p, ft)
		i++
		return true
	})
	p.sb.WriteByte(']')
}

// literalFits reports whether the parser would read v back for an enum of superkind k.
func literalFits(k Kind, v interface{}) bool {
	switch v.(type) {
	case float64:
		return k.IsNumeric()
	case bool:
		return k == Boolean
	}
	return !k.IsNumeric() && k != Boolean
}

func writeLiteral(p *typePrinter, v interface{}) {
	switch v := v.(type) {
	case float64:
		p.sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case bool:
		p.sb.WriteString(strconv.FormatBool(v))
	case string:
		writeName(p, v)
	}
}

func writeName(p *typePrinter, name string) {
	if !needsQuotes(name) {
		p.sb.WriteString(name)
		return
	}
	p.sb.WriteByte('\'')
	p.sb.WriteString(strings.ReplaceAll(name, "'", "''"))
	p.sb.WriteByte('\'')
}

func needsQuotes(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		if isPunct(name[i]) || isSpace(name[i]) || isQuote(name[i]) {
			return true
		}
	}
	return false
}
