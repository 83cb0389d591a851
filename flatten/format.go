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
	"fmt"
	"reflect"
	"strings"
)

// ValueSeparator joins the values of multi-valued elements, as the backslash does in the encoded
// DICOM value field
const ValueSeparator = "\\"

// lineBreaks collapses embedded line breaks so that no record spans multiple lines
var lineBreaks = strings.NewReplacer("\r\n", ", ", "\n", ", ", "\r", ", ")

// sizedValue is implemented by binary payloads that know their size even when not loaded, such as
// dicom.BulkData
type sizedValue interface {
	fmt.Stringer
	ByteLength() int64
}

// NormalizeText replaces each line break ("\r\n", "\n" or "\r") with ", "
func NormalizeText(s string) string {
	return lineBreaks.Replace(s)
}

// formatValue formats a decoded value for display. It never truncates, binary payloads are
// formatted in full and their size is returned alongside (-1 for non-binary values).
func formatValue(v interface{}) (string, int64) {
	switch v := v.(type) {
	case nil:
		return "", -1
	case string:
		return NormalizeText(v), -1
	case []byte:
		return formatBytes(v), int64(len(v))
	case sizedValue:
		return NormalizeText(v.String()), v.ByteLength()
	case fmt.Stringer:
		return NormalizeText(v.String()), -1
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatScalar(rv.Index(i).Interface())
		}
		return NormalizeText(strings.Join(parts, ValueSeparator)), -1
	}

	return NormalizeText(formatScalar(v)), -1
}

func formatScalar(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func formatBytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
