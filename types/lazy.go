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
	"sync"

	"github.com/benbjohnson/immutable"
)

// FieldResolver produces the type of one lazily resolved field. Resolvers must be pure: a
// resolver may run more than once when fields are resolved concurrently.
type FieldResolver func() *Type

// ExpansionPolicy is consulted before every field of a lazy aggregate is materialized at once.
type ExpansionPolicy interface {
	IsFullExpansionAllowed() bool
}

// ExpansionPolicyFunc adapts a function to ExpansionPolicy.
type ExpansionPolicyFunc func() bool

func (f ExpansionPolicyFunc) IsFullExpansionAllowed() bool { return f() }

// AllowFullExpansion permits eager expansion of every field.
var AllowFullExpansion ExpansionPolicy = ExpansionPolicyFunc(func() bool { return true })

// DenyFullExpansion forbids eager expansion; fields are only ever resolved one at a time.
var DenyFullExpansion ExpansionPolicy = ExpansionPolicyFunc(func() bool { return false })

// LazyFields resolves the fields of a lazy aggregate on demand. Resolved types are memoized
// per instance. A LazyFields is immutable apart from its memo; With and Without return new
// instances sharing the unresolved resolvers.
type LazyFields struct {
	identity  string
	resolvers *immutable.SortedMap // string -> FieldResolver
	policy    ExpansionPolicy
	resolved  sync.Map // string -> *Type
}

// NewLazyFields creates an empty provider. Providers with the same identity and field names
// describe the same backing shape.
func NewLazyFields(identity string, policy ExpansionPolicy) *LazyFields {
	if policy == nil {
		policy = DenyFullExpansion
	}
	return &LazyFields{identity: identity, resolvers: emptyMap, policy: policy}
}

func (p *LazyFields) Identity() string { return p.identity }

func (p *LazyFields) Len() int { return p.resolvers.Len() }

func (p *LazyFields) Has(name string) bool {
	_, ok := p.resolvers.Get(name)
	return ok
}

// With returns a provider that additionally resolves name through r.
func (p *LazyFields) With(name string, r FieldResolver) *LazyFields {
	return &LazyFields{identity: p.identity, resolvers: p.resolvers.Set(name, r), policy: p.policy}
}

// Without returns a provider that no longer resolves name.
func (p *LazyFields) Without(name string) *LazyFields {
	if !p.Has(name) {
		return p
	}
	return &LazyFields{identity: p.identity, resolvers: p.resolvers.Delete(name), policy: p.policy}
}

// Get resolves a single field, running its resolver at most once per caller race.
func (p *LazyFields) Get(name string) (*Type, bool) {
	if t, ok := p.resolved.Load(name); ok {
		return t.(*Type), true
	}
	r, ok := p.resolvers.Get(name)
	if !ok {
		return nil, false
	}
	t := r.(FieldResolver)()
	if t == nil {
		return nil, false
	}
	p.resolved.Store(name, t)
	return t, true
}

// Names returns the field names in sorted order without resolving them.
func (p *LazyFields) Names() []string {
	names := make([]string, 0, p.resolvers.Len())
	iter := p.resolvers.Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		names = append(names, k.(string))
	}
	return names
}

// CanExpand reports whether the host permits resolving every field at once.
func (p *LazyFields) CanExpand() bool { return p.policy.IsFullExpansionAllowed() }

// Expand resolves every field into a FieldMap. It fails when the policy forbids expansion.
func (p *LazyFields) Expand() (FieldMap, bool) {
	if !p.CanExpand() {
		return EmptyFieldMap, false
	}
	b := NewFieldMapBuilder()
	iter := p.resolvers.Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		name := k.(string)
		if t, ok := p.Get(name); ok {
			b.Set(name, t)
		}
	}
	return b.Build(), true
}

// SameShape reports whether p and q describe the same backing shape: equal identity and
// field names. No field is resolved.
func (p *LazyFields) SameShape(q *LazyFields) bool {
	if p == q {
		return true
	}
	if p.identity != q.identity || p.Len() != q.Len() {
		return false
	}
	a, b := p.resolvers.Iterator(), q.resolvers.Iterator()
	for !a.Done() {
		ka, _ := a.Next()
		kb, _ := b.Next()
		if ka != kb {
			return false
		}
	}
	return true
}
