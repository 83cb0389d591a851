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

// Element models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type Element struct {
	Tag Tag

	// Value Representation
	VR *VR

	// ValueField represents the field within a Data Element that contains its value(s)
	// Can be any of of the following types:
	// []string,
	// []int16,
	// []uint16,
	// []int32,
	// []uint32,
	// []float32,
	// []float64
	// []Tag
	// BulkData
	// *Sequence
	ValueField interface{}

	// ValueLength is the length of the value field in bytes as read from the stream.
	// Can be equal to 0xFFFFFFFF to represent an undefined length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32
}

// Sequence returns the nested sequence of a SQ element, or nil for any other element.
func (e *Element) Sequence() *Sequence {
	seq, _ := e.ValueField.(*Sequence)
	return seq
}

// DataSet models a DICOM Data Set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
//
// Elements are kept in stream order. Tags are not deduplicated, private data occasionally repeats
// a tag and each occurrence is kept.
type DataSet struct {
	// Meta holds the file meta elements (0002,xxxx). It is empty for sequence items.
	Meta []*Element

	Elements []*Element

	// Length is the item length read from the stream, UndefinedLength for delimited items
	Length uint32
}

// Find returns the first element with the given tag in the data set (meta group included)
func (ds *DataSet) Find(tag Tag) (*Element, bool) {
	for _, elems := range [][]*Element{ds.Meta, ds.Elements} {
		for _, e := range elems {
			if e.Tag == tag {
				return e, true
			}
		}
	}
	return nil, false
}

// Sequence models a DICOM sequence of items
type Sequence struct {
	Items []*DataSet
}

func (seq *Sequence) append(dataSet *DataSet) {
	seq.Items = append(seq.Items, dataSet)
}
