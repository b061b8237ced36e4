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

import "strconv"

// Kind is the closed discriminant of a type node.
type Kind uint8

const (
	// Invalid is the zero Kind. It is never the kind of a constructed node.
	Invalid Kind = iota

	Unknown
	Error
	Record
	Table
	LazyRecord
	LazyTable

	Boolean
	Number
	Decimal
	Currency
	String
	Hyperlink
	Date
	Time
	DateTime
	DateTimeNoTimeZone
	Guid
	Color
	Image
	PenImage
	Media
	Blob

	Enum
	ObjNull
	Deferred
	Void
	UntypedObject

	DataEntity
	Metadata
	OptionSet
	OptionSetValue
	Polymorphic
	View
	ViewValue
	NamedValue
	Control

	File
	LargeImage

	kindLim
)

const kindMin = Unknown

var kindNames = [kindLim]string{
	Invalid:            "Invalid",
	Unknown:            "Unknown",
	Error:              "Error",
	Record:             "Record",
	Table:              "Table",
	LazyRecord:         "LazyRecord",
	LazyTable:          "LazyTable",
	Boolean:            "Boolean",
	Number:             "Number",
	Decimal:            "Decimal",
	Currency:           "Currency",
	String:             "String",
	Hyperlink:          "Hyperlink",
	Date:               "Date",
	Time:               "Time",
	DateTime:           "DateTime",
	DateTimeNoTimeZone: "DateTimeNoTimeZone",
	Guid:               "Guid",
	Color:              "Color",
	Image:              "Image",
	PenImage:           "PenImage",
	Media:              "Media",
	Blob:               "Blob",
	Enum:               "Enum",
	ObjNull:            "ObjNull",
	Deferred:           "Deferred",
	Void:               "Void",
	UntypedObject:      "UntypedObject",
	DataEntity:         "DataEntity",
	Metadata:           "Metadata",
	OptionSet:          "OptionSet",
	OptionSetValue:     "OptionSetValue",
	Polymorphic:        "Polymorphic",
	View:               "View",
	ViewValue:          "ViewValue",
	NamedValue:         "NamedValue",
	Control:            "Control",
	File:               "File",
	LargeImage:         "LargeImage",
}

func (k Kind) String() string {
	if k < kindLim {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsValid reports whether k lies in the range of constructible kinds.
func (k Kind) IsValid() bool { return k >= kindMin && k < kindLim }

// IsPrimitive reports whether k is a leaf value kind with a singleton node.
func (k Kind) IsPrimitive() bool { return k >= Boolean && k <= Blob }

// IsAggregate reports whether k is record- or table-shaped, eager or lazy.
func (k Kind) IsAggregate() bool {
	switch k {
	case Record, Table, LazyRecord, LazyTable, File, LargeImage:
		return true
	}
	return false
}

// IsLazy reports whether nodes of kind k resolve their fields on demand.
func (k Kind) IsLazy() bool { return k == LazyRecord || k == LazyTable }

// HasFields reports whether nodes of kind k may carry a field map.
func (k Kind) HasFields() bool {
	switch k {
	case Record, Table, File, LargeImage, OptionSet, View:
		return true
	}
	return false
}

// IsOpaque reports whether k carries a host annotation compared by identity.
func (k Kind) IsOpaque() bool { return k >= DataEntity && k <= Control }

// IsDateTime reports whether k belongs to the date/time family.
func (k Kind) IsDateTime() bool {
	switch k {
	case Date, Time, DateTime, DateTimeNoTimeZone:
		return true
	}
	return false
}

// IsNumeric reports whether k belongs to the number family.
func (k Kind) IsNumeric() bool {
	return k == Number || k == Decimal || k == Currency
}

// Nearest ancestors in the primitive hierarchy. Error terminates every chain and has no entry.
var superkinds = [kindLim]Kind{
	Record:             Error,
	Table:              Error,
	LazyRecord:         Error,
	LazyTable:          Error,
	File:               Error,
	LargeImage:         Error,
	Boolean:            Error,
	Number:             Error,
	Decimal:            Error,
	Currency:           Number,
	String:             Error,
	Hyperlink:          String,
	Guid:               String,
	Image:              Hyperlink,
	PenImage:           Image,
	Media:              Hyperlink,
	Blob:               Hyperlink,
	DateTime:           Error,
	Date:               DateTime,
	Time:               DateTime,
	DateTimeNoTimeZone: DateTime,
	Color:              Error,
	UntypedObject:      Error,
	DataEntity:         Error,
	Metadata:           Error,
	OptionSet:          Error,
	OptionSetValue:     Error,
	Polymorphic:        Error,
	View:               Error,
	ViewValue:          Error,
	NamedValue:         Error,
	Control:            Error,
}

// Superkind returns the nearest ancestor of k, if k has one.
func Superkind(k Kind) (Kind, bool) {
	if k >= kindLim {
		return Invalid, false
	}
	s := superkinds[k]
	return s, s != Invalid
}

// IsSuperkind reports whether base is a strict ancestor of k.
func IsSuperkind(base, k Kind) bool {
	if base == k {
		return false
	}
	// The chain is acyclic and shorter than the kind count.
	for i := 0; i < int(kindLim); i++ {
		s, ok := Superkind(k)
		if !ok {
			return false
		}
		if s == base {
			return true
		}
		k = s
	}
	return false
}

// CommonSuperkind walks the ancestors of a (a included) until one of them is b or an
// ancestor of b. The result is Error when the chains only meet at the top.
func CommonSuperkind(a, b Kind) Kind {
	for k := a; ; {
		if k == b || IsSuperkind(k, b) {
			return k
		}
		s, ok := Superkind(k)
		if !ok || k == Error {
			return Error
		}
		k = s
	}
}
