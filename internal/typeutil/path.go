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

package typeutil

import "strings"

// FieldPath tracks the field names walked while comparing nested aggregates, so the first
// mismatch can be reported as a dotted path.
type FieldPath struct {
	names []string

	// initial space:
	_names [16]string
}

func (p *FieldPath) Push(name string) {
	if p.names == nil {
		p.names = p._names[:0]
	}
	p.names = append(p.names, name)
}

func (p *FieldPath) Pop() {
	if len(p.names) > 0 {
		p.names = p.names[:len(p.names)-1]
	}
}

func (p *FieldPath) Len() int { return len(p.names) }

// String joins the current path with dots. Names containing a dot are quoted.
func (p *FieldPath) String() string {
	if len(p.names) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, name := range p.names {
		if i > 0 {
			sb.WriteByte('.')
		}
		if strings.ContainsRune(name, '.') {
			sb.WriteByte('\'')
			sb.WriteString(strings.ReplaceAll(name, "'", "''"))
			sb.WriteByte('\'')
			continue
		}
		sb.WriteString(name)
	}
	return sb.String()
}

func (p *FieldPath) Reset() { p.names = p.names[:0] }
