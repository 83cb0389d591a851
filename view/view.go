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

// Package view presents flattened records: binary placeholders, free text filtering, column
// widths and table, JSON and TSV renderings.
package view

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
)

// Column headers, in display order
var Headers = [4]string{"Tag", "Name", "VR", "Value"}

// Row is a record as displayed
type Row struct {
	Tag        string `json:"tag"`
	Name       string `json:"name"`
	VR         string `json:"vr"`
	Value      string `json:"value"`
	Depth      int    `json:"depth"`
	ByteLength int64  `json:"byteLength,omitempty"`
}

func (r Row) fields() [4]string {
	return [4]string{r.Tag, r.Name, r.VR, r.Value}
}

// DisplayValue returns the value shown for a record. OB and OW payloads are never shown, they are
// replaced by "Not Loaded (N bytes)". Other binary payloads the decoder did not load get the same
// placeholder.
func DisplayValue(r flatten.Record) string {
	switch {
	case r.TypeCode == "OB" || r.TypeCode == "OW":
		return notLoaded(r.ByteLength)
	case r.ByteLength > 0 && r.Value == "":
		return notLoaded(r.ByteLength)
	}
	return r.Value
}

func notLoaded(n int64) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("Not Loaded (%d bytes)", n)
}

// Rows converts records to displayed rows
func Rows(records []flatten.Record) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Tag:   r.Locator,
			Name:  r.Name,
			VR:    r.TypeCode,
			Value: DisplayValue(r),
			Depth: r.Depth,
		}
		if r.ByteLength > 0 {
			rows[i].ByteLength = r.ByteLength
		}
	}
	return rows
}

// Filter returns the records where locator, name, type code or stored value contains query,
// ignoring case. Binary placeholders are display only and never match. A blank query returns all
// records.
func Filter(records []flatten.Record, query string) []flatten.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	out := make([]flatten.Record, 0)
	for _, r := range records {
		for _, f := range r.Fields() {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ListDICOMFiles returns the names of the .dcm files in dir, sorted
func ListDICOMFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".dcm") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
