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
	"compress/flate"
	"encoding/binary"
	"testing"
)

// dcmWriter encodes the fixtures the tests decode
type dcmWriter struct {
	bytes.Buffer
}

func (dw *dcmWriter) Tag(order binary.ByteOrder, tag Tag) {
	dw.UInt16(order, tag.GroupNumber())
	dw.UInt16(order, tag.ElementNumber())
}

func (dw *dcmWriter) Delimiter(order binary.ByteOrder, tag Tag) {
	dw.Tag(order, tag)
	dw.UInt32(order, 0)
}

func (dw *dcmWriter) UInt16(order binary.ByteOrder, v uint16) {
	buf := make([]byte, 2)
	order.PutUint16(buf, v)
	dw.Write(buf)
}

func (dw *dcmWriter) UInt32(order binary.ByteOrder, v uint32) {
	buf := make([]byte, 4)
	order.PutUint32(buf, v)
	dw.Write(buf)
}

// fixture describes how elements of a fixture are encoded
type fixture struct {
	order    binary.ByteOrder
	explicit bool
}

var (
	explicitLE = fixture{binary.LittleEndian, true}
	explicitBE = fixture{binary.BigEndian, true}
	implicitLE = fixture{binary.LittleEndian, false}
)

// element encodes a data element header followed by value. length is written as given so that
// undefined lengths can be encoded.
func (f fixture) element(tag Tag, vr *VR, length uint32, value []byte) []byte {
	dw := &dcmWriter{}
	dw.Tag(f.order, tag)
	switch {
	case !f.explicit:
		dw.UInt32(f.order, length)
	case vr.has32BitLength():
		dw.WriteString(vr.Name)
		dw.UInt16(f.order, 0)
		dw.UInt32(f.order, length)
	default:
		dw.WriteString(vr.Name)
		dw.UInt16(f.order, uint16(length))
	}
	dw.Write(value)
	return dw.Bytes()
}

// value encodes an element of explicit length
func (f fixture) value(tag Tag, vr *VR, value []byte) []byte {
	return f.element(tag, vr, uint32(len(value)), value)
}

func (f fixture) text(tag Tag, vr *VR, s string) []byte {
	return f.value(tag, vr, pad([]byte(s), ' '))
}

func (f fixture) uid(tag Tag, s string) []byte {
	return f.value(tag, UIVR, pad([]byte(s), 0x00))
}

func (f fixture) uint16s(tag Tag, values ...uint16) []byte {
	dw := &dcmWriter{}
	for _, v := range values {
		dw.UInt16(f.order, v)
	}
	return f.value(tag, USVR, dw.Bytes())
}

// item encodes a sequence item, delimited when undefined is true
func (f fixture) item(undefined bool, elements ...[]byte) []byte {
	body := bytes.Join(elements, nil)
	dw := &dcmWriter{}
	dw.Tag(f.order, ItemTag)
	if undefined {
		dw.UInt32(f.order, UndefinedLength)
		dw.Write(body)
		dw.Delimiter(f.order, ItemDelimitationItemTag)
	} else {
		dw.UInt32(f.order, uint32(len(body)))
		dw.Write(body)
	}
	return dw.Bytes()
}

// sequence encodes a SQ element holding the encoded items, delimited when undefined is true
func (f fixture) sequence(tag Tag, undefined bool, items ...[]byte) []byte {
	body := bytes.Join(items, nil)
	if !undefined {
		return f.value(tag, SQVR, body)
	}
	dw := &dcmWriter{}
	dw.Write(body)
	dw.Delimiter(f.order, SequenceDelimitationItemTag)
	return f.element(tag, SQVR, UndefinedLength, dw.Bytes())
}

// part10 encodes a file with a meta header declaring syntaxUID followed by body
func part10(syntaxUID string, body ...[]byte) []byte {
	meta := bytes.Join([][]byte{
		explicitLE.value(NewTag(0x0002, 0x0001), OBVR, []byte{0, 1}),
		explicitLE.uid(NewTag(0x0002, 0x0002), "1.2.840.10008.5.1.4.1.1.4"),
		explicitLE.uid(TransferSyntaxUIDTag, syntaxUID),
	}, nil)

	dw := &dcmWriter{}
	dw.Write(make([]byte, 128))
	dw.WriteString("DICM")
	groupLength := &dcmWriter{}
	groupLength.UInt32(binary.LittleEndian, uint32(len(meta)))
	dw.Write(explicitLE.value(FileMetaInformationGroupLengthTag, ULVR, groupLength.Bytes()))
	dw.Write(meta)
	dw.Write(bytes.Join(body, nil))
	return dw.Bytes()
}

// deflate compresses data with the raw deflate format of the deflated transfer syntax
func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("unexpected error creating deflate writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("unexpected error deflating: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error closing deflate writer: %v", err)
	}
	return buf.Bytes()
}

func pad(b []byte, padding byte) []byte {
	if len(b)%2 == 1 {
		return append(b, padding)
	}
	return b
}

func dcmReaderFromBytes(data []byte) *dcmReader {
	return newDcmReader(bytes.NewBuffer(data))
}

func mustDecode(t *testing.T, data []byte, opts ...DecodeOption) *DataSet {
	t.Helper()
	ds, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}
	return ds
}
