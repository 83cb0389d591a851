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

// Package source adapts decoded DICOM data sets to flatten.Element, so the flattener can sit on
// top of the built-in decoder or on github.com/suyashkumar/dicom without modification.
package source

import (
	"github.com/GoogleCloudPlatform/go-dicom-tagview/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
)

// FromDataSet adapts the main data set elements of ds. The file meta elements are left out, as
// they describe the encoding of the file rather than its content.
func FromDataSet(ds *dicom.DataSet) []flatten.Element {
	return FromElements(ds.Elements)
}

// FromDataSetWithMeta adapts the file meta elements followed by the main data set elements
func FromDataSetWithMeta(ds *dicom.DataSet) []flatten.Element {
	out := FromElements(ds.Meta)
	return append(out, FromElements(ds.Elements)...)
}

// FromElements adapts a list of decoded elements, keeping their order
func FromElements(elems []*dicom.Element) []flatten.Element {
	out := make([]flatten.Element, len(elems))
	for i, e := range elems {
		if e == nil {
			// left as a nil interface so the flattener reports it as malformed
			continue
		}
		out[i] = dataElement{e}
	}
	return out
}

type dataElement struct {
	e *dicom.Element
}

func (d dataElement) Tag() uint32 {
	return uint32(d.e.Tag)
}

func (d dataElement) TypeCode() string {
	if d.e.VR == nil {
		return ""
	}
	return d.e.VR.Name
}

func (d dataElement) Value() interface{} {
	return d.e.ValueField
}

func (d dataElement) Items() [][]flatten.Element {
	seq := d.e.Sequence()
	if seq == nil {
		return nil
	}
	items := make([][]flatten.Element, len(seq.Items))
	for i, item := range seq.Items {
		if item == nil {
			items[i] = []flatten.Element{}
			continue
		}
		items[i] = FromElements(item.Elements)
	}
	return items
}
