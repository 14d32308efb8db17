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
	"errors"
	"fmt"
)

var (
	// ErrLayoutMismatch is returned by DecodeRecord when the layout and the
	// field names differ in length.
	ErrLayoutMismatch = errors.New("layout and field names differ in length")

	// ErrAccountNotFound is returned when no account exists at the
	// requested address.
	ErrAccountNotFound = errors.New("account not found")
)

// UnsupportedFieldTypeError is returned when a layout contains a type code
// that has no decoder.
type UnsupportedFieldTypeError struct {
	Code FieldType
}

func (err UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("unsupported field type: %v", uint8(err.Code))
}

// MalformedAccountError is returned when account data cannot be decoded. Kind
// names the account type, e.g. "schema".
type MalformedAccountError struct {
	Kind string
	Err  error
}

func (err MalformedAccountError) Error() string {
	return fmt.Sprintf("malformed %v account: %v", err.Kind, err.Err)
}

func (err MalformedAccountError) Unwrap() error { return err.Err }
