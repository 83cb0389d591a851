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

package dicom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// ErrNestingTooDeep is returned when sequences nest deeper than the configured maximum depth
var ErrNestingTooDeep = errors.New("sequence nesting too deep")

// readSequence collects the items of a sequence of the given length. The items of a sequence found
// in a data set at depth d are data sets at depth d+1.
func (d *decoder) readSequence(dr *dcmReader, length uint32, syntax transferSyntax, coding encoding.Encoding, depth int) (*Sequence, error) {
	if depth+1 > d.opts.maxDepth {
		return nil, fmt.Errorf("%w: more than %d levels", ErrNestingTooDeep, d.opts.maxDepth)
	}

	undefined := length == UndefinedLength
	if !undefined {
		dr = dr.Limit(int64(length))
	}

	seq := &Sequence{Items: []*DataSet{}}
	for {
		tag, err := processItemTag(dr, syntax.byteOrder())
		if err == io.EOF {
			if undefined {
				return nil, fmt.Errorf("unexpected EOF in undefined sequence")
			}
			return seq, nil
		}
		if err != nil {
			return nil, err
		}

		itemLength, err := dr.UInt32(syntax.byteOrder())
		if err != nil {
			return nil, fmt.Errorf("reading sequence item length: %v", err)
		}

		if tag == SequenceDelimitationItemTag {
			if !undefined {
				return nil, fmt.Errorf("unexpected sequence delimitation item tag in explicit length sequence")
			}
			if itemLength != 0 {
				return nil, fmt.Errorf("expected 0 length on sequence delimiter length")
			}
			return seq, nil
		}

		item, err := d.readItem(dr, itemLength, syntax, coding, depth+1)
		if err != nil {
			return nil, fmt.Errorf("reading item %d: %w", len(seq.Items), err)
		}
		seq.append(item)
	}
}

func (d *decoder) readItem(dr *dcmReader, itemLength uint32, syntax transferSyntax, coding encoding.Encoding, depth int) (*DataSet, error) {
	delimited := itemLength == UndefinedLength
	if !delimited {
		dr = dr.Limit(int64(itemLength))
	}

	elements, err := d.readDataSet(dr, syntax, coding, depth, delimited)
	if err != nil {
		return nil, err
	}
	return &DataSet{Elements: elements, Length: itemLength}, nil
}

func processItemTag(dr *dcmReader, order binary.ByteOrder) (Tag, error) {
	tag, err := dr.Tag(order)
	if err == io.EOF {
		return tag, io.EOF
	}
	if err != nil {
		return tag, fmt.Errorf("unexpected error reading item tag: %v", err)
	}
	if tag != ItemTag && tag != SequenceDelimitationItemTag {
		return tag, fmt.Errorf("invalid item tag in sequence, got %08X want %08X or %08X",
			uint32(tag), uint32(ItemTag), uint32(SequenceDelimitationItemTag))
	}

	return tag, nil
}
