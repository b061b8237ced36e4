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

// lattice provides the structural type algebra of a formula language: subtype testing,
// coercion testing, least upper bounds, unions and intersections over the immutable type
// nodes of package types.
//
// Types form a closed lattice of value kinds (numbers, strings, dates and the like), two
// recursive aggregate shapes (records and tables) and symbolic enumerations. Error is the top
// of the lattice and ObjNull the bottom of every kind except Void. Aggregates may be lazy:
// their fields are resolved on demand and only expanded wholesale when the host permits it.
//
// Expected mismatches are never errors. Checker.Compare reports the first schema difference,
// Supertype and Intersection yield the Error kind, Union reports failure alongside its
// best-effort result, and CoercesTo reports whether a conversion is possible and safe.
//
// All nodes are immutable and may be shared across goroutines without locking.
package lattice
