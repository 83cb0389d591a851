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

const (
	// DefaultBulkDataLimit is the largest binary payload materialized in memory by default
	DefaultBulkDataLimit = 64 << 10

	// DefaultMaxDepth is the deepest sequence nesting accepted by default
	DefaultMaxDepth = 64
)

// DecodeOption configures the behavior of the Decode function.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	bulkDataLimit    int64
	maxDepth         int
	dropGroupLengths bool
}

func defaultDecodeOptions() decodeOptions {
	return decodeOptions{
		bulkDataLimit: DefaultBulkDataLimit,
		maxDepth:      DefaultMaxDepth,
	}
}

// WithBulkDataLimit sets the largest binary payload (OB, OW, OD, OF, OL, OV, UN and encapsulated
// pixel data) that is read into memory. Larger payloads are skipped on the stream and only their
// length is recorded in BulkData. A negative limit loads every payload.
func WithBulkDataLimit(n int64) DecodeOption {
	return func(o *decodeOptions) {
		o.bulkDataLimit = n
	}
}

// WithMaxDepth bounds how deeply sequences may nest. Streams nesting deeper fail with
// ErrNestingTooDeep.
func WithMaxDepth(n int) DecodeOption {
	return func(o *decodeOptions) {
		o.maxDepth = n
	}
}

// DropGroupLengths will exclude all group length elements (gggg,0000) from the returned DataSet,
// its items and DataSet.Meta, including the file meta group length (0002,0000).
var DropGroupLengths DecodeOption = func(o *decodeOptions) {
	o.dropGroupLengths = true
}

func (o decodeOptions) loads(length int64) bool {
	return o.bulkDataLimit < 0 || length <= o.bulkDataLimit
}
