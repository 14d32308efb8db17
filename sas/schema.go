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

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/borsh"
)

// Account discriminators.
const (
	SchemaDiscriminator      byte = 1
	AttestationDiscriminator byte = 2
)

// Schema describes the layout of attestation payloads issued under a
// credential.
type Schema struct {
	Credential  solana.PublicKey `json:"credential"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Layout      []FieldType      `json:"layout"`
	FieldNames  []string         `json:"fieldNames"`
	IsPaused    bool             `json:"isPaused"`
	Version     uint8            `json:"version"`
}

// UnmarshalBinary decodes a schema account. Errors are MalformedAccountError.
func (s *Schema) UnmarshalBinary(data []byte) error {
	if err := s.unmarshalBinary(data); err != nil {
		return MalformedAccountError{Kind: "schema", Err: err}
	}
	return nil
}

func (s *Schema) unmarshalBinary(data []byte) (err error) {
	c := borsh.NewCursor(data)
	if err := readDiscriminator(c, SchemaDiscriminator); err != nil {
		return err
	}
	if s.Credential, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("credential: %w", err)
	}
	if s.Name, err = c.ReadPrefixedString(); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if s.Description, err = c.ReadPrefixedString(); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	layout, err := c.ReadVec()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	s.Layout = make([]FieldType, len(layout))
	for i, t := range layout {
		s.Layout[i] = FieldType(t)
	}
	names, err := c.ReadVec()
	if err != nil {
		return fmt.Errorf("field names: %w", err)
	}
	if s.FieldNames, err = DecodeFieldNames(names); err != nil {
		return fmt.Errorf("field names: %w", err)
	}
	if len(s.FieldNames) != len(s.Layout) {
		return fmt.Errorf("%w: %v types, %v names",
			ErrLayoutMismatch, len(s.Layout), len(s.FieldNames))
	}
	if s.IsPaused, err = c.ReadBool(); err != nil {
		return fmt.Errorf("is paused: %w", err)
	}
	if s.Version, err = c.ReadByte(); err != nil {
		return fmt.Errorf("version: %w", err)
	}
	return nil
}

// MarshalBinary encodes s as a schema account.
func (s Schema) MarshalBinary() ([]byte, error) {
	var w borsh.Writer
	w.WriteByte(SchemaDiscriminator)
	w.WritePublicKey(s.Credential)
	w.WriteString(s.Name)
	w.WriteString(s.Description)
	layout := make([]byte, len(s.Layout))
	for i, t := range s.Layout {
		layout[i] = byte(t)
	}
	w.WriteVec(layout)
	w.WriteVec(EncodeFieldNames(s.FieldNames))
	w.WriteBool(s.IsPaused)
	w.WriteByte(s.Version)
	return w.Bytes(), nil
}

// DecodeRecord decodes an attestation payload against the layout of s.
func (s Schema) DecodeRecord(data []byte) (Record, error) {
	return DecodeRecord(s.Layout, s.FieldNames, data)
}

// DecodeFieldNames unpacks a concatenation of u32 length prefixed UTF-8
// strings. The whole buffer must be consumed.
func DecodeFieldNames(data []byte) ([]string, error) {
	var names []string
	c := borsh.NewCursor(data)
	for c.Remaining() > 0 {
		name, err := c.ReadPrefixedString()
		if err != nil {
			return nil, fmt.Errorf("name %v: %w", len(names), err)
		}
		names = append(names, name)
	}
	return names, nil
}

// EncodeFieldNames is the inverse of DecodeFieldNames.
func EncodeFieldNames(names []string) []byte {
	var w borsh.Writer
	for _, name := range names {
		w.WriteString(name)
	}
	return w.Bytes()
}

func readDiscriminator(c *borsh.Cursor, expected byte) error {
	d, err := c.ReadByte()
	if err != nil {
		return fmt.Errorf("discriminator: %w", err)
	}
	if d != expected {
		return fmt.Errorf("invalid discriminator: %v, expected %v",
			d, expected)
	}
	return nil
}
