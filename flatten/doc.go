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

// Package flatten turns a tree of DICOM data elements into a flat, ordered list of display
// records.
//
// Every element produces exactly one Record, in document pre-order: a sequence's summary record
// ("Sequence of N items") comes first and is followed by the records of its items' elements, one
// indent unit deeper, before the next sibling of the sequence. The walk uses an explicit stack, so
// the nesting depth accepted is bounded by WithMaxDepth rather than by the goroutine stack.
//
// The flattener works on any decoder output that implements Element, and resolves names through a
// Dictionary, falling back to "Unknown" for tags the dictionary does not know.
package flatten
