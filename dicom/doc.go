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

// Package dicom decodes DICOM Part 10 files into an ordered, in-memory element tree as specified in
// [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf].
//
// Decode reads the preamble, the file meta group and the main data set of a file and returns a
// DataSet whose Elements keep the order in which they appear in the stream. Sequence elements hold
// a *Sequence of Items, each Item being a nested DataSet, so the tree can be walked in document
// order. Large binary payloads (OB, OW, UN, encapsulated pixel data) are represented as BulkData;
// payloads above the configured limit are skipped on the stream and only their length is kept.
//
// Keyword lookups go through a Dictionary. StandardDictionary is backed by the DICOM data
// dictionary shipped with github.com/suyashkumar/dicom.
package dicom
