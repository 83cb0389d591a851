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
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDecode_transferSyntaxes(t *testing.T) {
	testCases := []struct {
		name      string
		syntaxUID string
		fixture   fixture
		deflated  bool
	}{
		{"explicit VR little endian", ExplicitVRLittleEndianUID, explicitLE, false},
		{"implicit VR little endian", ImplicitVRLittleEndianUID, implicitLE, false},
		{"explicit VR big endian", ExplicitVRBigEndianUID, explicitBE, false},
		{"deflated explicit VR little endian", DeflatedExplicitVRLittleEndianUID, explicitLE, true},
		{"encapsulated syntax falls back to explicit VR little endian", JPEGBaselineUID, explicitLE, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.fixture
			body := bytes.Join([][]byte{
				f.text(0x00080060, CSVR, "MR"),
				f.text(0x00100010, PNVR, "Doe^John"),
				f.sequence(0x00081115, true, f.item(true, f.uid(0x00081155, "1.2.3.4"))),
				f.uint16s(0x00280010, 256),
			}, nil)
			if tc.deflated {
				body = deflate(t, body)
			}

			ds := mustDecode(t, part10(tc.syntaxUID, body))

			if got, want := len(ds.Meta), 4; got != want {
				t.Fatalf("got %d meta elements, want %d", got, want)
			}
			var tags []Tag
			for _, e := range ds.Elements {
				tags = append(tags, e.Tag)
			}
			if want := []Tag{0x00080060, 0x00100010, 0x00081115, 0x00280010}; !reflect.DeepEqual(tags, want) {
				t.Fatalf("got tags %v, want %v", tags, want)
			}
			if got, want := ds.Elements[1].ValueField, []string{"Doe^John"}; !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			if got, want := values(ds.Elements[2].Sequence()), [][]interface{}{{[]string{"1.2.3.4"}}}; !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			if got, want := ds.Elements[3].ValueField, []uint16{256}; !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v, want %v", got, want)
			}
		})
	}
}

func TestDecode_errors(t *testing.T) {
	valid := part10(ExplicitVRLittleEndianUID, explicitLE.text(0x00080060, CSVR, "MR"))

	wrongSignature := append([]byte{}, valid...)
	copy(wrongSignature[128:], "DICN")

	noGroupLength := append(append([]byte{}, valid[:132]...),
		explicitLE.uid(TransferSyntaxUIDTag, ExplicitVRLittleEndianUID)...)

	testCases := []struct {
		name  string
		bytes []byte
	}{
		{"empty input", nil},
		{"short preamble", make([]byte, 100)},
		{"wrong signature", wrongSignature},
		{"meta header without group length", noGroupLength},
		{"truncated body", valid[:len(valid)-1]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(tc.bytes)); err == nil {
				t.Fatalf("Decode(_) => nil error, want error")
			}
		})
	}
}

func TestDecode_bulkDataLimit(t *testing.T) {
	pixels := make([]byte, 100)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	data := part10(ExplicitVRLittleEndianUID,
		explicitLE.value(PixelDataTag, OWVR, pixels),
		explicitLE.text(0x00091010, LOVR, "after"),
	)

	testCases := []struct {
		name     string
		opts     []DecodeOption
		expected BulkData
	}{
		{"default limit loads", nil, BulkData{Length: 100, Fragments: 1, Data: pixels}},
		{"over limit is skipped", []DecodeOption{WithBulkDataLimit(10)}, BulkData{Length: 100, Fragments: 1}},
		{"zero limit skips everything", []DecodeOption{WithBulkDataLimit(0)}, BulkData{Length: 100, Fragments: 1}},
		{"negative limit loads", []DecodeOption{WithBulkDataLimit(-1)}, BulkData{Length: 100, Fragments: 1, Data: pixels}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := mustDecode(t, data, tc.opts...)
			if len(ds.Elements) != 2 {
				t.Fatalf("got %d elements, want 2", len(ds.Elements))
			}
			if got := ds.Elements[0].ValueField; !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("got %+v, want %+v", got, tc.expected)
			}
			if got, want := ds.Elements[1].ValueField, []string{"after"}; !reflect.DeepEqual(got, want) {
				t.Fatalf("element after pixel data => %v, want %v", got, want)
			}
		})
	}
}

func TestDecode_encapsulatedPixelData(t *testing.T) {
	dw := &dcmWriter{}
	for _, fragment := range [][]byte{{}, {1, 2, 3, 4}, {5, 6}} {
		dw.Tag(explicitLE.order, ItemTag)
		dw.UInt32(explicitLE.order, uint32(len(fragment)))
		dw.Write(fragment)
	}
	dw.Delimiter(explicitLE.order, SequenceDelimitationItemTag)
	data := part10(JPEGBaselineUID,
		explicitLE.element(PixelDataTag, OBVR, UndefinedLength, dw.Bytes()),
		explicitLE.text(0x00091010, LOVR, "after"),
	)

	testCases := []struct {
		name     string
		limit    int64
		expected BulkData
	}{
		{"loaded", -1, BulkData{Length: 6, Fragments: 3, Data: []byte{1, 2, 3, 4, 5, 6}}},
		{"limit reached mid stream", 5, BulkData{Length: 6, Fragments: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := mustDecode(t, data, WithBulkDataLimit(tc.limit))
			pixelData, ok := ds.Find(PixelDataTag)
			if !ok {
				t.Fatalf("pixel data not found")
			}
			if pixelData.ValueLength != UndefinedLength {
				t.Fatalf("got length %d, want undefined", pixelData.ValueLength)
			}
			if !reflect.DeepEqual(pixelData.ValueField, tc.expected) {
				t.Fatalf("got %+v, want %+v", pixelData.ValueField, tc.expected)
			}
			if _, ok := ds.Find(0x00091010); !ok {
				t.Fatalf("element after pixel data not found")
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.dcm")
	data := part10(ExplicitVRLittleEndianUID, explicitLE.text(0x00100010, PNVR, "Doe^John"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("unexpected error writing fixture: %v", err)
	}

	ds, err := DecodeFile(path, DropGroupLengths)
	if err != nil {
		t.Fatalf("DecodeFile(%q) => unexpected error %v", path, err)
	}
	if _, ok := ds.Find(FileMetaInformationGroupLengthTag); ok {
		t.Fatalf("expected group length to be dropped")
	}
	syntax, ok := ds.Find(TransferSyntaxUIDTag)
	if !ok {
		t.Fatalf("transfer syntax not found in meta")
	}
	if got, want := syntax.ValueField, []string{ExplicitVRLittleEndianUID}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.dcm")); err == nil {
		t.Fatalf("DecodeFile on a missing file => nil error, want error")
	}
}
