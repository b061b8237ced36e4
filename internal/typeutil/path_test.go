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

import "testing"

func TestFieldPath(t *testing.T) {
	var p FieldPath
	if p.String() != "" || p.Len() != 0 {
		t.Fatalf("empty path: %q", p.String())
	}
	p.Push("A")
	p.Push("b.c")
	p.Push("D")
	if s := p.String(); s != "A.'b.c'.D" {
		t.Fatalf("path: %s", s)
	}
	p.Pop()
	if s := p.String(); s != "A.'b.c'" {
		t.Fatalf("path after pop: %s", s)
	}
	p.Reset()
	p.Pop()
	if p.Len() != 0 {
		t.Fatalf("len after reset: %d", p.Len())
	}

	for i := 0; i < 40; i++ {
		p.Push("x")
	}
	if p.Len() != 40 {
		t.Fatalf("len after growth: %d", p.Len())
	}
}
