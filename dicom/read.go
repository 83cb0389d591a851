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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
)

// errItemDelimiter is returned by readDataElement when it consumes an item delimitation item,
// which ends a nested data set of undefined length.
var errItemDelimiter = errors.New("item delimitation item")

// decoder carries what stays constant while walking one stream
type decoder struct {
	opts decodeOptions
}

// readDataSet reads elements until the input ends or, for items of undefined length, until the
// item delimitation item. coding is the character set inherited from the enclosing data set.
func (d *decoder) readDataSet(dr *dcmReader, syntax transferSyntax, coding encoding.Encoding, depth int, delimited bool) ([]*Element, error) {
	elements := make([]*Element, 0)
	for {
		element, err := d.readDataElement(dr, syntax, coding, depth)
		if err == errItemDelimiter {
			if !delimited {
				return nil, fmt.Errorf("unexpected item delimitation item at offset %d", dr.Offset())
			}
			return elements, nil
		}
		if err == io.EOF {
			if delimited {
				return nil, fmt.Errorf("unexpected EOF in item of undefined length")
			}
			return elements, nil
		}
		if err != nil {
			return nil, err
		}

		if element.Tag == SpecificCharacterSetTag {
			if terms, ok := element.ValueField.([]string); ok {
				if c, err := encodingForTerms(terms); err == nil {
					coding = c
				}
			}
		}
		if d.opts.dropGroupLengths && element.Tag.IsGroupLength() {
			continue
		}
		elements = append(elements, element)
	}
}

func (d *decoder) readDataElement(dr *dcmReader, syntax transferSyntax, coding encoding.Encoding, depth int) (*Element, error) {
	tag, err := dr.Tag(syntax.byteOrder())
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %v", err)
	}

	if tag == ItemDelimitationItemTag {
		// handles the case when we are parsing a nested data set within a sequence with undefined
		// length. This code should never run for the top level data set
		length, err := dr.UInt32(syntax.byteOrder())
		if err != nil {
			return nil, fmt.Errorf("reading 32 bit length of item delimitation: %v", err)
		}
		if length != 0 {
			return nil, fmt.Errorf("wrong length for item delimiter. got %v, want %v", length, 0)
		}
		return nil, errItemDelimiter
	}

	vr, err := syntax.readVR(dr, tag)
	if err != nil {
		return nil, fmt.Errorf("getting vr of %v: %v", tag, err)
	}

	length, err := syntax.readValueLength(dr, vr)
	if err != nil {
		return nil, fmt.Errorf("getting length of %v: %v", tag, err)
	}

	if length == UndefinedLength && vr != SQVR {
		switch {
		case tag == PixelDataTag && (vr == OBVR || vr == OWVR):
			// Specified in http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
			// (7FE0,0010) and undefined length means pixel data in encapsulated (compressed) format
			bulk, err := readEncapsulatedFormat(dr, d.opts)
			if err != nil {
				return nil, fmt.Errorf("parsing value of %v: %v", tag, err)
			}
			return &Element{tag, vr, bulk, length}, nil
		case vr == UNVR:
			// UN of undefined length holds a sequence encoded in implicit VR little endian
			// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2.2
			vr, syntax = SQVR, implicitVRLittleEndian
		default:
			return nil, fmt.Errorf("undefined length is not supported for %v with VR %v", tag, vr)
		}
	}

	if vr == SQVR {
		seq, err := d.readSequence(dr, length, syntax, coding, depth)
		if err != nil {
			return nil, fmt.Errorf("collecting sequence %v: %w", tag, err)
		}
		return &Element{tag, vr, seq, length}, nil
	}

	value, err := d.readValue(dr, vr, length, syntax, coding)
	if err != nil {
		return nil, fmt.Errorf("parsing value of %v: %w", tag, err)
	}

	return &Element{tag, vr, value, length}, nil
}

func (d *decoder) readValue(dr *dcmReader, vr *VR, length uint32, syntax transferSyntax, coding encoding.Encoding) (interface{}, error) {
	switch vr.kind {
	case textVR:
		return readText(dr, length, vr, coding, unicode.IsSpace)
	case unlimitedTextVR:
		return readUnlimitedText(dr, length, vr, coding)
	case numberBinaryVR:
		return readNumberBinary(dr, length, vr, syntax.byteOrder())
	case bulkDataVR:
		return d.readBinary(dr, length, vr, syntax.byteOrder())
	case uniqueIdentifierVR:
		return readText(dr, length, vr, nil, func(r rune) bool {
			return r == 0x00 || r == ' '
		})
	case tagVR:
		return readTags(dr, syntax, length)
	default:
		return nil, fmt.Errorf("unknown vr type found: %v", vr.kind)
	}
}

func readTags(dr *dcmReader, syntax transferSyntax, length uint32) ([]Tag, error) {
	if length%4 != 0 {
		return nil, fmt.Errorf("AT value length %d is not a multiple of 4", length)
	}
	ret := make([]Tag, length/4) // 4 bytes per tag

	for i := range ret {
		t, err := dr.Tag(syntax.byteOrder())
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		ret[i] = t
	}
	return ret, nil
}

func readText(dr *dcmReader, length uint32, vr *VR, coding encoding.Encoding, isPadding func(rune) bool) ([]string, error) {
	if length == 0 {
		return []string{}, nil
	}

	valueField, err := dr.String(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading text field value: %w", err)
	}

	// deal with value multiplicity
	strs := strings.Split(valueField, "\\")
	for i, s := range strs {
		if vr.extended {
			s = decodeText(coding, s)
		}
		strs[i] = strings.TrimFunc(s, isPadding)
	}
	return strs, nil
}

// readUnlimitedText reads ST, LT, UR and UT values. Trailing spaces are not significant and
// backslash is not a delimiter.
func readUnlimitedText(dr *dcmReader, length uint32, vr *VR, coding encoding.Encoding) ([]string, error) {
	if length == 0 {
		return []string{}, nil
	}

	s, err := dr.String(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading text field value: %w", err)
	}
	if vr.extended {
		s = decodeText(coding, s)
	}
	return []string{strings.TrimRightFunc(s, unicode.IsSpace)}, nil
}

func readNumberBinary(dr *dcmReader, length uint32, vr *VR, order binary.ByteOrder) (interface{}, error) {
	buff, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading %v value: %w", vr, err)
	}

	var data interface{}

	switch vr {
	case SSVR:
		data = make([]int16, length/2)
	case USVR:
		data = make([]uint16, length/2)
	case SLVR:
		data = make([]int32, length/4)
	case ULVR:
		data = make([]uint32, length/4)
	case SVVR:
		data = make([]int64, length/8)
	case UVVR:
		data = make([]uint64, length/8)
	case FLVR:
		data = make([]float32, length/4)
	case FDVR:
		data = make([]float64, length/8)
	default:
		return nil, fmt.Errorf("unknown vr: %v", vr)
	}

	if err := binary.Read(bytes.NewReader(buff), order, data); err != nil && err != io.EOF {
		return nil, fmt.Errorf("binary.Read(_, _, _) => %v", err)
	}

	return data, nil
}

// readBinary reads OB, OW, UN as BulkData. OD, OF, OL and OV are decoded to numbers when they
// fit within the bulk data limit and kept as BulkData otherwise.
func (d *decoder) readBinary(dr *dcmReader, length uint32, vr *VR, order binary.ByteOrder) (interface{}, error) {
	bulk, err := readBulkData(dr, length, d.opts)
	if err != nil {
		return nil, err
	}
	if !bulk.Loaded() {
		return bulk, nil
	}

	var valueField interface{}
	switch vr {
	case OLVR:
		valueField = make([]uint32, len(bulk.Data)/4)
	case OVVR:
		valueField = make([]uint64, len(bulk.Data)/8)
	case ODVR:
		valueField = make([]float64, len(bulk.Data)/8)
	case OFVR:
		valueField = make([]float32, len(bulk.Data)/4)
	default:
		return bulk, nil
	}

	if err := binary.Read(bytes.NewReader(bulk.Data), order, valueField); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading %v value: %w", vr, err)
	}
	return valueField, nil
}
