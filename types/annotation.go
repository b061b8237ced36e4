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

// Annotation is an opaque host token attached to entity, option set, view, named value and
// control kinds, and to aggregates expanded from an entity. The algebra never looks inside an
// annotation; two annotations denote the same host concept when their keys are equal.
type Annotation interface {
	AnnotationKey() string
}

// BackedAnnotation is implemented by option set annotations whose values are backed by a
// primitive kind, such as a color-backed option set.
type BackedAnnotation interface {
	Annotation
	BackingKind() Kind
}

// Token is a minimal Annotation identified by name.
type Token struct {
	Name string
	// Backing is the primitive kind behind option set values, or Invalid.
	Backing Kind
}

func (t Token) AnnotationKey() string { return t.Name }
func (t Token) BackingKind() Kind     { return t.Backing }

// SameAnnotation reports whether a and b are both absent or denote the same token.
func SameAnnotation(a, b Annotation) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.AnnotationKey() == b.AnnotationKey()
}

// CompatibleAnnotation reports whether a and b match, treating an absent token as a wildcard.
func CompatibleAnnotation(a, b Annotation) bool {
	if a == nil || b == nil {
		return true
	}
	return a.AnnotationKey() == b.AnnotationKey()
}

// BackingKindOf returns the backing kind of a, or Invalid if a does not declare one.
func BackingKindOf(a Annotation) Kind {
	if b, ok := a.(BackedAnnotation); ok {
		return b.BackingKind()
	}
	return Invalid
}

// EntityResolver looks up the shape behind a DataEntity annotation.
type EntityResolver interface {
	// ResolveEntity returns the entity's fields and the source tokens it carries.
	ResolveEntity(entity Annotation) (fields FieldMap, sources []string, ok bool)
}

// EntityResolverFunc adapts a function to EntityResolver.
type EntityResolverFunc func(Annotation) (FieldMap, []string, bool)

func (f EntityResolverFunc) ResolveEntity(entity Annotation) (FieldMap, []string, bool) {
	return f(entity)
}
