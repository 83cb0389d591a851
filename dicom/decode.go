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
	"bufio"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
)

// Decode decodes a DICOM file represented as an io.Reader. The file meta elements are returned in
// DataSet.Meta and the main data set in DataSet.Elements, both in stream order.
//
// By default, binary payloads up to DefaultBulkDataLimit bytes are buffered into memory and larger
// ones are skipped, keeping only their length. Sequences may nest up to DefaultMaxDepth levels.
// Both can be changed with DecodeOptions.
func Decode(r io.Reader, opts ...DecodeOption) (*DataSet, error) {
	d := &decoder{defaultDecodeOptions()}
	for _, opt := range opts {
		opt(&d.opts)
	}

	dr := newDcmReader(r)
	if err := readDicomSignature(dr); err != nil {
		return nil, err
	}

	metaHeaderBytes, err := bufferMetadataHeader(dr)
	if err != nil {
		return nil, fmt.Errorf("reading meta header: %v", err)
	}

	// File meta elements are always in explicit VR little endian as specified in the standard
	// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
	meta, err := d.readDataSet(newDcmReader(bytes.NewReader(metaHeaderBytes)), explicitVRLittleEndian,
		defaultCharacterRepertoire, 0, false)
	if err != nil {
		return nil, fmt.Errorf("reading file meta elements: %v", err)
	}

	syntax, err := findSyntax(meta)
	if err != nil {
		return nil, fmt.Errorf("finding transfer syntax: %v", err)
	}

	body := dr
	if syntax.isDeflated() {
		body = newDcmReader(flate.NewReader(dr.cr))
	}

	elements, err := d.readDataSet(body, syntax, defaultCharacterRepertoire, 0, false)
	if err != nil {
		return nil, fmt.Errorf("parsing data set: %w", err)
	}

	return &DataSet{Meta: meta, Elements: elements, Length: UndefinedLength}, nil
}

// DecodeFile opens and decodes the DICOM file at path
func DecodeFile(path string, opts ...DecodeOption) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Decode(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ds, nil
}

func readDicomSignature(r *dcmReader) error {
	if err := r.Skip(128); err != nil {
		return fmt.Errorf("skipping preamble: %v", err)
	}

	magic, err := r.String(4)
	if err != nil {
		return fmt.Errorf("reading DICOM signature: %v", err)
	}

	if magic != "DICM" {
		return fmt.Errorf("wrong DICOM signature: %q", magic)
	}

	return nil
}

func bufferMetadataHeader(dr *dcmReader) ([]byte, error) {
	firstElemBytes, err := dr.Bytes(4 /*tag*/ + 2 /*vr*/ + 2 /*len*/ + 4 /*UL=4bytes*/)
	if err != nil {
		return nil, fmt.Errorf("buffering bytes of FileMetaInformationGroupLength: %v", err)
	}

	d := &decoder{defaultDecodeOptions()}
	firstElem, err := d.readDataElement(newDcmReader(bytes.NewReader(firstElemBytes)),
		explicitVRLittleEndian, defaultCharacterRepertoire, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing FileMetaInformationGroupLength element: %v", err)
	}
	if firstElem.Tag != FileMetaInformationGroupLengthTag {
		return nil, fmt.Errorf("expected FileMetaInformationGroupLength first, got %v", firstElem.Tag)
	}

	metaGroupLength, ok := firstElem.ValueField.([]uint32)
	if !ok || len(metaGroupLength) != 1 {
		return nil, fmt.Errorf("wrong value for FileMetaInformationGroupLength. Got %v, want []uint32 with 1 value",
			firstElem.ValueField)
	}

	remainderBytes, err := dr.Bytes(int64(metaGroupLength[0]))
	if err != nil {
		return nil, fmt.Errorf("buffering the file meta elements: %v", err)
	}

	return append(firstElemBytes, remainderBytes...), nil
}

func findSyntax(meta []*Element) (transferSyntax, error) {
	for _, elem := range meta {
		if elem.Tag != TransferSyntaxUIDTag {
			continue
		}
		ids, ok := elem.ValueField.([]string)
		if !ok {
			return nil, fmt.Errorf("expected type []string for transfer syntax element")
		}
		if len(ids) != 1 {
			return nil, fmt.Errorf("expected 1 value length for transfer syntax")
		}
		return lookupTransferSyntax(ids[0]), nil
	}

	return nil, fmt.Errorf("transfer syntax not found")
}
