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
	"fmt"
	"io"
	"strings"
)

// BulkData is the value of binary elements (OB, OW, UN, ...) and of encapsulated pixel data.
//
// Length is always the number of payload bytes found in the stream. Data holds the payload when it
// was materialized and is nil when the decoder skipped it because it exceeded the bulk data limit.
// For encapsulated pixel data, Data is the concatenation of all fragments (the basic offset table
// included) and Fragments is the number of fragments.
type BulkData struct {
	Length    int64
	Fragments int
	Data      []byte
}

// Loaded is true when the payload is available in Data
func (b BulkData) Loaded() bool {
	return int64(len(b.Data)) == b.Length
}

// ByteLength returns the size of the payload in the stream, whether or not it was loaded
func (b BulkData) ByteLength() int64 {
	return b.Length
}

// String formats a loaded payload as space separated upper case hex bytes. Payloads that were not
// loaded format as the empty string.
func (b BulkData) String() string {
	if !b.Loaded() || len(b.Data) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b.Data) * 3)
	for i, c := range b.Data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// readBulkData reads a native (explicit length) binary payload, honouring the bulk data limit
func readBulkData(dr *dcmReader, length uint32, opts decodeOptions) (BulkData, error) {
	n := int64(length)
	if !opts.loads(n) {
		if err := dr.Skip(n); err != nil {
			return BulkData{}, fmt.Errorf("skipping bulk data: %w", err)
		}
		return BulkData{Length: n, Fragments: 1}, nil
	}

	data, err := dr.Bytes(n)
	if err != nil {
		return BulkData{}, fmt.Errorf("reading bulk data: %w", err)
	}
	return BulkData{Length: n, Fragments: 1, Data: data}, nil
}

// readEncapsulatedFormat reads image pixel data (7FE0,0010) in encapsulated format as described in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4. Fragments are
// items that are always encoded in little endian, terminated by a sequence delimitation item.
func readEncapsulatedFormat(dr *dcmReader, opts decodeOptions) (BulkData, error) {
	var bulk BulkData
	loading := true

	for {
		tag, err := processItemTag(dr, binary.LittleEndian)
		if err == io.EOF {
			return BulkData{}, fmt.Errorf("unexpected EOF in encapsulated pixel data")
		}
		if err != nil {
			return BulkData{}, fmt.Errorf("reading tag in encapsulated format fragment: %v", err)
		}

		length, err := dr.UInt32(binary.LittleEndian)
		if err != nil {
			return BulkData{}, fmt.Errorf("reading fragment length: %v", err)
		}
		if tag == SequenceDelimitationItemTag {
			if length != 0 {
				return BulkData{}, fmt.Errorf("expected 0 length on sequence delimiter, got %v", length)
			}
			if !loading {
				bulk.Data = nil
			}
			return bulk, nil
		}
		if length == UndefinedLength {
			return BulkData{}, fmt.Errorf("expected fragment to be of explicit length")
		}

		bulk.Fragments++
		bulk.Length += int64(length)
		loading = loading && opts.loads(bulk.Length)
		if !loading {
			bulk.Data = nil
			if err := dr.Skip(int64(length)); err != nil {
				return BulkData{}, fmt.Errorf("skipping fragment: %v", err)
			}
			continue
		}

		fragment, err := dr.Bytes(int64(length))
		if err != nil {
			return BulkData{}, fmt.Errorf("reading fragment: %v", err)
		}
		bulk.Data = append(bulk.Data, fragment...)
	}
}
