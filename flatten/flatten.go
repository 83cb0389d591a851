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

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const (
	// UnknownName is the Name of records whose tag is not in the dictionary
	UnknownName = "Unknown"

	// SequenceTypeCode is the value representation of sequence elements
	SequenceTypeCode = "SQ"

	// DefaultIndent is the indent unit added per nesting level
	DefaultIndent = "  "

	// DefaultMaxDepth is the deepest nesting accepted by default
	DefaultMaxDepth = 64
)

var (
	// ErrMalformedElement is returned for nil elements and elements without a type code
	ErrMalformedElement = errors.New("malformed element")

	// ErrNestingTooDeep is returned when sequences nest deeper than the maximum depth
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// Option configures a Flattener
type Option func(*Flattener)

// WithMaxDepth sets the deepest nesting level accepted. Elements of the top level data set are at
// depth 0, elements of its sequences' items at depth 1, and so on.
func WithMaxDepth(n int) Option {
	return func(f *Flattener) {
		f.maxDepth = n
	}
}

// WithIndent sets the indent unit prepended to the locator once per nesting level
func WithIndent(unit string) Option {
	return func(f *Flattener) {
		f.indent = unit
	}
}

// Flattener flattens element trees. It holds configuration only and is safe for concurrent use.
type Flattener struct {
	dict     Dictionary
	indent   string
	maxDepth int
}

// New returns a Flattener resolving names with dict. A nil dict resolves every name to
// UnknownName.
func New(dict Dictionary, opts ...Option) *Flattener {
	f := &Flattener{
		dict:     dict,
		indent:   DefaultIndent,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten flattens elements with the default options
func Flatten(elements []Element, dict Dictionary) ([]Record, error) {
	return New(dict).Flatten(elements)
}

type frame struct {
	elem  Element
	depth int

	// parent is the locator of the enclosing sequence, used in error messages
	parent string
}

// Flatten returns one Record per element of the tree rooted at elements, in document pre-order.
// Either every element is flattened or an error is returned.
func (f *Flattener) Flatten(elements []Element) ([]Record, error) {
	records := make([]Record, 0, len(elements))

	stack := make([]frame, 0, len(elements))
	stack = pushReversed(stack, elements, 0, "")

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if fr.depth > f.maxDepth {
			return nil, fmt.Errorf("%w: items of %s are deeper than %d levels", ErrNestingTooDeep, strings.TrimSpace(fr.parent), f.maxDepth)
		}
		if isNil(fr.elem) {
			return nil, fmt.Errorf("%w: nil element at depth %d%s", ErrMalformedElement, fr.depth, under(fr.parent))
		}

		e := fr.elem
		tag := FormatTag(e.Tag())
		code := e.TypeCode()
		if code == "" {
			return nil, fmt.Errorf("%w: %s has no type code%s", ErrMalformedElement, tag, under(fr.parent))
		}

		rec := Record{
			Locator:    strings.Repeat(f.indent, fr.depth) + tag,
			Name:       f.name(e.Tag()),
			TypeCode:   code,
			Tag:        tag,
			Depth:      fr.depth,
			ByteLength: -1,
		}

		if code != SequenceTypeCode {
			rec.Value, rec.ByteLength = formatValue(e.Value())
			records = append(records, rec)
			continue
		}

		items := e.Items()
		rec.Value = fmt.Sprintf("Sequence of %d items", len(items))
		records = append(records, rec)

		// Items are pushed last to first so that they pop in document order
		for i := len(items) - 1; i >= 0; i-- {
			stack = pushReversed(stack, items[i], fr.depth+1, rec.Locator)
		}
	}

	return records, nil
}

func (f *Flattener) name(tag uint32) string {
	if f.dict == nil {
		return UnknownName
	}
	if k, ok := f.dict.Keyword(tag); ok && k != "" {
		return k
	}
	return UnknownName
}

func pushReversed(stack []frame, elements []Element, depth int, parent string) []frame {
	for i := len(elements) - 1; i >= 0; i-- {
		stack = append(stack, frame{elements[i], depth, parent})
	}
	return stack
}

func under(parent string) string {
	if parent == "" {
		return ""
	}
	return " in sequence " + strings.TrimSpace(parent)
}

// isNil reports whether e is nil or an interface holding a nil pointer
func isNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}
