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

import "testing"

func TestTag_String(t *testing.T) {
	got := ItemTag.String()
	want := "(FFFE,E000)"
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTag_ElementNumber(t *testing.T) {
	tag := Tag(0xFEDCBA98)
	if tag.ElementNumber() != 0xBA98 {
		t.Fatalf("got %v, want %v", tag.ElementNumber(), 0xBA98)
	}
}

func TestTag_GroupNumber(t *testing.T) {
	tag := Tag(0xFEDCBA98)
	if tag.GroupNumber() != 0xFEDC {
		t.Fatalf("got %v, want %v", tag.GroupNumber(), 0xFEDC)
	}
}

func TestNewTag(t *testing.T) {
	if got := NewTag(0x7FE0, 0x0010); got != PixelDataTag {
		t.Fatalf("got %v, want %v", got, PixelDataTag)
	}
}

func TestTag_IsPrivate(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want bool
	}{
		{
			"when group number is odd, the tag is considered private",
			Tag(0x00010000),
			true,
		},
		{
			"when group number is even, the tag is considered non-private",
			PixelDataTag,
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.tag.IsPrivate()
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTag_DictionaryVR(t *testing.T) {
	tests := []struct {
		name  string
		start Tag
		end   Tag
		inc   Tag
		want  *VR
	}{
		{
			"Tags found in the dictionary",
			0x00100010, 0x00100010, 1,
			PNVR,
		},
		{
			"Sequences found in the dictionary",
			0x00081115, 0x00081115, 1,
			SQVR,
		},
		{
			"Pixel data",
			PixelDataTag, PixelDataTag, 1,
			OWVR,
		},
		{
			"Binary numbers found in the dictionary",
			0x00280010, 0x00280011, 1,
			USVR,
		},
		{
			"when lookup fails, UNVR is returned",
			0xABCEEF98, 0xABCEEF98, 1,
			UNVR,
		},
		{
			"when the tag belongs to private creator group (gggg,0010-00FF) where gggg is odd, " +
				"the dictionary VR is LO",
			0x80010010, 0x800100FF, 1,
			LOVR,
		},
		{
			"when the tag is a private data element the dictionary VR is UN",
			0x00091010, 0x00091010, 1,
			UNVR,
		},
		{
			"when the tag is a group length element (gggg,0000) the VR is UL",
			0x00020000, 0x0FFF0000, 0x00010000,
			ULVR,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for tag := tc.start; tag <= tc.end; tag += tc.inc {
				got := tag.DictionaryVR()
				if got != tc.want {
					t.Fatalf("%v: got %v, want %v", tag, got, tc.want)
				}
			}
		})
	}
}

func TestDictionary(t *testing.T) {
	dict := Chain(MapDictionary{0x00100010: "Name", 0x00091010: "VendorBlob", 0x00080060: ""}, StandardDictionary)

	tests := []struct {
		name   string
		tag    uint32
		want   string
		wantOK bool
	}{
		{"overrides win over the standard dictionary", 0x00100010, "Name", true},
		{"private keywords come from overrides", 0x00091010, "VendorBlob", true},
		{"empty overrides fall through", 0x00080060, "Modality", true},
		{"standard keywords", 0x7FE00010, "PixelData", true},
		{"unknown tags", 0x00110011, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := dict.Keyword(tc.tag)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("Keyword(%08X) => (%q, %v), want (%q, %v)", tc.tag, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
