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
	"fmt"
	"os"

	suyash "github.com/suyashkumar/dicom"

	"github.com/GoogleCloudPlatform/go-dicom-tagview/dicom"
	"github.com/GoogleCloudPlatform/go-dicom-tagview/flatten"
)

// Decoder names accepted by Loader
const (
	// Builtin decodes with package dicom
	Builtin = "builtin"
	// Library decodes with github.com/suyashkumar/dicom
	Library = "suyashkumar"
)

// Loader decodes DICOM files into flatten.Elements with the configured decoder
type Loader struct {
	// Decoder is Builtin or Library. Empty means Builtin.
	Decoder string

	// BulkDataLimit is the largest binary payload loaded into memory, negative to load all.
	// The Library decoder can only skip pixel data, which it does unless the limit is negative.
	BulkDataLimit int64

	// MaxDepth bounds sequence nesting while decoding. Zero means dicom.DefaultMaxDepth.
	MaxDepth int

	// IncludeMeta keeps the file meta elements (0002,xxxx)
	IncludeMeta bool
}

// Load decodes the file at path
func (l Loader) Load(path string) ([]flatten.Element, error) {
	switch l.Decoder {
	case "", Builtin:
		return l.loadBuiltin(path)
	case Library:
		return l.loadLibrary(path)
	default:
		return nil, fmt.Errorf("unknown decoder %q", l.Decoder)
	}
}

func (l Loader) loadBuiltin(path string) ([]flatten.Element, error) {
	opts := []dicom.DecodeOption{dicom.WithBulkDataLimit(l.BulkDataLimit)}
	if l.MaxDepth > 0 {
		opts = append(opts, dicom.WithMaxDepth(l.MaxDepth))
	}

	ds, err := dicom.DecodeFile(path, opts...)
	if err != nil {
		return nil, err
	}
	if l.IncludeMeta {
		return FromDataSetWithMeta(ds), nil
	}
	return FromDataSet(ds), nil
}

func (l Loader) loadLibrary(path string) ([]flatten.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", path, err)
	}

	var opts []suyash.ParseOption
	if l.BulkDataLimit >= 0 {
		opts = append(opts, suyash.SkipPixelData())
	}

	ds, err := suyash.Parse(f, info.Size(), nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if l.IncludeMeta {
		return FromLibraryWithMeta(ds), nil
	}
	return FromLibrary(ds), nil
}
