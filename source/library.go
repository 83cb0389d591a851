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

package source

import (
	suyash "github.com/suyashkumar/dicom"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
)

// FromLibrary adapts a data set decoded by github.com/suyashkumar/dicom. That library keeps the
// file meta elements in the data set; they are left out here as in FromDataSet.
func FromLibrary(ds suyash.Dataset) []flatten.Element {
	elems := make([]*suyash.Element, 0, len(ds.Elements))
	for _, e := range ds.Elements {
		if e != nil && e.Tag.Group == 0x0002 {
			continue
		}
		elems = append(elems, e)
	}
	return fromLibraryElements(elems)
}

// FromLibraryWithMeta adapts every element of a github.com/suyashkumar/dicom data set
func FromLibraryWithMeta(ds suyash.Dataset) []flatten.Element {
	return fromLibraryElements(ds.Elements)
}

func fromLibraryElements(elems []*suyash.Element) []flatten.Element {
	out := make([]flatten.Element, len(elems))
	for i, e := range elems {
		if e == nil {
			continue
		}
		out[i] = libraryElement{e}
	}
	return out
}

type libraryElement struct {
	e *suyash.Element
}

func (l libraryElement) Tag() uint32 {
	return uint32(dicom.NewTag(l.e.Tag.Group, l.e.Tag.Element))
}

func (l libraryElement) TypeCode() string {
	return l.e.RawValueRepresentation
}

func (l libraryElement) Value() interface{} {
	if l.e.Value == nil {
		return nil
	}
	switch l.e.Value.ValueType() {
	case suyash.Bytes:
		if b, ok := l.e.Value.GetValue().([]byte); ok {
			return b
		}
	case suyash.PixelData:
		// frames are decoded by the library; only the encoded size is shown
		return pixelData{length: l.e.ValueLength}
	case suyash.Sequences, suyash.SequenceItem:
		return nil
	}
	return l.e.Value.GetValue()
}

func (l libraryElement) Items() [][]flatten.Element {
	if l.e.Value == nil || l.e.Value.ValueType() != suyash.Sequences {
		return nil
	}
	seqItems, ok := l.e.Value.GetValue().([]*suyash.SequenceItemValue)
	if !ok {
		return nil
	}
	items := make([][]flatten.Element, len(seqItems))
	for i, item := range seqItems {
		elems, _ := item.GetValue().([]*suyash.Element)
		items[i] = fromLibraryElements(elems)
	}
	return items
}

// pixelData stands in for the library's decoded frames
type pixelData struct {
	length uint32
}

func (p pixelData) String() string {
	return ""
}

func (p pixelData) ByteLength() int64 {
	if p.length == dicom.UndefinedLength {
		return 0
	}
	return int64(p.length)
}
