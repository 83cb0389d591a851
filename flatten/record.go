// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flatten

import "fmt"

// Element is one decoded data element as seen by the flattener.
type Element interface {
	// Tag is the 32-bit tag, group number in the most significant 16 bits
	Tag() uint32

	// TypeCode is the 2-character value representation, e.g. "PN" or "SQ". An empty type code
	// makes the element malformed.
	TypeCode() string

	// Value is the decoded value of a non-sequence element
	Value() interface{}

	// Items returns the items of a sequence element, each one an ordered list of elements
	Items() [][]Element
}

// Dictionary resolves tags to keywords. See dicom.StandardDictionary.
type Dictionary interface {
	Keyword(tag uint32) (string, bool)
}

// Record is one row of the flattened element tree.
type Record struct {
	// Locator is the indent prefix followed by Tag
	Locator string

	// Name is the dictionary keyword of the tag or UnknownName
	Name string

	TypeCode string

	// Value is the formatted value, or "Sequence of N items" for sequences
	Value string

	// Tag is the textual tag without indentation, e.g. "(0010,0010)"
	Tag string

	// Depth is the nesting depth, 0 for elements of the top level data set
	Depth int

	// ByteLength is the size in bytes of binary payloads, -1 for any other value
	ByteLength int64
}

// Fields returns the four displayed columns in order: locator, name, type code, value
func (r Record) Fields() [4]string {
	return [4]string{r.Locator, r.Name, r.TypeCode, r.Value}
}

// FormatTag formats a 32-bit tag as "(gggg,eeee)" with upper case hex digits
func FormatTag(tag uint32) string {
	return fmt.Sprintf("(%04X,%04X)", tag>>16, tag&0xFFFF)
}
