// MIT License
//
// Copyright 2025 Solid Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package sas

import (
	"fmt"
	"strconv"

	"github.com/solid-labs/solid-go/borsh"
)

// FieldType is a schema layout type code.
type FieldType uint8

// Type codes decoded by DecodeRecord. The numbering follows the attestation
// program. Every other code, numeric types included, is rejected with
// UnsupportedFieldTypeError.
const (
	TypeBool   FieldType = 10
	TypeString FieldType = 12
)

var fieldTypeNames = map[FieldType]string{
	TypeBool:   "bool",
	TypeString: "string",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%v)", uint8(t))
}

// MarshalText encodes t by name, or by its numeric code if it has no name.
func (t FieldType) MarshalText() ([]byte, error) {
	if name, ok := fieldTypeNames[t]; ok {
		return []byte(name), nil
	}
	return []byte(strconv.Itoa(int(t))), nil
}

// UnmarshalText accepts a name or a numeric code.
func (t *FieldType) UnmarshalText(text []byte) error {
	for code, name := range fieldTypeNames {
		if name == string(text) {
			*t = code
			return nil
		}
	}
	code, err := strconv.ParseUint(string(text), 10, 8)
	if err != nil {
		return fmt.Errorf("invalid field type %q", text)
	}
	*t = FieldType(code)
	return nil
}

// Supported returns true if DecodeRecord can decode fields of type t.
func (t FieldType) Supported() bool {
	_, ok := fieldDecoders[t]
	return ok
}

type fieldDecoder func(c *borsh.Cursor) (Value, error)

// fieldDecoders is the dispatch table used by DecodeRecord. New type codes
// are supported by adding an entry.
var fieldDecoders = map[FieldType]fieldDecoder{
	TypeBool: func(c *borsh.Cursor) (Value, error) {
		v, err := c.ReadBool()
		return BoolValue(v), err
	},
	TypeString: func(c *borsh.Cursor) (Value, error) {
		v, err := c.ReadPrefixedString()
		return StringValue(v), err
	},
}
