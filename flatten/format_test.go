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
	"testing"
)

type testTag uint32

func (t testTag) String() string {
	return FormatTag(uint32(t))
}

type testBulk struct {
	length int64
	data   string
}

func (b testBulk) String() string    { return b.data }
func (b testBulk) ByteLength() int64 { return b.length }

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		name       string
		value      interface{}
		expected   string
		byteLength int64
	}{
		{"nil", nil, "", -1},
		{"string", "Smith^John", "Smith^John", -1},
		{"string with lone carriage return", "a\rb", "a, b", -1},
		{"string with mixed line breaks", "a\nb\r\nc", "a, b, c", -1},
		{"multiple strings", []string{"ORIGINAL", "PRIMARY"}, "ORIGINAL\\PRIMARY", -1},
		{"empty string slice", []string{}, "", -1},
		{"unsigned shorts", []uint16{512, 512}, "512\\512", -1},
		{"floats", []float64{0.5, 1.25}, "0.5\\1.25", -1},
		{"integer", 7, "7", -1},
		{"bytes", []byte{0x00, 0xFF}, "00 FF", 2},
		{"empty bytes", []byte{}, "", 0},
		{"stringers", []testTag{0x00100010, 0x00100020}, "(0010,0010)\\(0010,0020)", -1},
		{"sized value not loaded", testBulk{length: 1024}, "", 1024},
		{"sized value loaded", testBulk{length: 2, data: "0A 0B"}, "0A 0B", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, n := formatValue(tc.value)
			if got != tc.expected || n != tc.byteLength {
				t.Fatalf("formatValue(%v) => (%q, %d), want (%q, %d)", tc.value, got, n, tc.expected, tc.byteLength)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	if got, want := NormalizeText("Line1\r\nLine2"), "Line1, Line2"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTag(t *testing.T) {
	if got, want := FormatTag(0x7FE00010), "(7FE0,0010)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
