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

import (
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Dictionary resolves tags to the keywords of the DICOM data dictionary, e.g. (0010,0010) to
// "PatientName". Lookups are exact matches on the 32-bit tag.
type Dictionary interface {
	Keyword(tag uint32) (string, bool)
}

// StandardDictionary looks tags up in the DICOM data dictionary (PS3.6). Private tags and tags
// outside the standard are not found.
var StandardDictionary Dictionary = standardDictionary{}

type standardDictionary struct{}

func (standardDictionary) Keyword(t uint32) (string, bool) {
	info, err := tag.Find(toLibraryTag(Tag(t)))
	if err != nil || info.Name == "" {
		return "", false
	}
	return info.Name, true
}

// MapDictionary is a static mapping from tag to keyword
type MapDictionary map[uint32]string

// Keyword implements Dictionary
func (m MapDictionary) Keyword(t uint32) (string, bool) {
	k, ok := m[t]
	return k, ok && k != ""
}

// Chain returns a Dictionary that asks each dictionary in turn and returns the first keyword found
func Chain(dicts ...Dictionary) Dictionary {
	return chain(dicts)
}

type chain []Dictionary

func (c chain) Keyword(t uint32) (string, bool) {
	for _, d := range c {
		if k, ok := d.Keyword(t); ok {
			return k, true
		}
	}
	return "", false
}

// DictionaryVR returns the VR listed for the tag in the DICOM data dictionary. This is how VRs are
// found in the implicit VR transfer syntax.
func (t Tag) DictionaryVR() *VR {
	switch {
	case t.IsGroupLength():
		return ULVR
	case t.isPrivateCreator():
		return LOVR
	case t.IsPrivate():
		return UNVR
	}

	info, err := tag.Find(toLibraryTag(t))
	if err != nil || info.VR == "" {
		return UNVR
	}
	vr, err := LookupVR(info.VR)
	if err != nil {
		return UNVR
	}
	return vr
}

func toLibraryTag(t Tag) tag.Tag {
	return tag.Tag{Group: t.GroupNumber(), Element: t.ElementNumber()}
}
