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
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/solid-labs/solid-go/borsh"
)

// Field is a named Value.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping of field names to Values. Fields keep the order
// of the schema layout.
type Record struct {
	fields []Field
	index  map[string]int
}

// Set assigns v to name. A new name is appended. Setting an existing name
// replaces its Value but keeps its position.
func (r *Record) Set(name string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the Value of name and whether it exists.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Len returns the number of fields in r.
func (r Record) Len() int { return len(r.fields) }

// Map returns the Record as a map of native Go values.
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value.Interface()
	}
	return m
}

// MarshalJSON encodes r as a JSON object with keys in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeRecord decodes data as a sequence of fields with the given types and
// names. Every type code in layout is checked before any bytes are read. Any
// error aborts the decode and the zero Record is returned. Bytes after the
// last field are ignored.
func DecodeRecord(layout []FieldType,
	fieldNames []string, data []byte) (Record, error) {
	if len(layout) != len(fieldNames) {
		return Record{}, fmt.Errorf("%w: %v types, %v names",
			ErrLayoutMismatch, len(layout), len(fieldNames))
	}
	decoders := make([]fieldDecoder, len(layout))
	for i, t := range layout {
		dec, ok := fieldDecoders[t]
		if !ok {
			return Record{}, UnsupportedFieldTypeError{Code: t}
		}
		decoders[i] = dec
	}

	var r Record
	c := borsh.NewCursor(data)
	for i, dec := range decoders {
		v, err := dec(c)
		if err != nil {
			return Record{}, fmt.Errorf("field %q (%v): %w",
				fieldNames[i], layout[i], err)
		}
		r.Set(fieldNames[i], v)
	}
	return r, nil
}
