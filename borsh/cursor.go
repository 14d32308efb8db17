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

// Package borsh implements the little-endian, length-prefixed binary encoding
// used by Solana programs for account and instruction data.
//
// A Cursor reads primitive values sequentially from an immutable buffer. Every
// read advances the cursor. There is no rollback: once a read fails the
// position of the Cursor is undefined and the caller must abandon the whole
// decode.
//
// A Writer produces the same encoding and is used to build instruction data.
package borsh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrBufferUnderrun is returned when a read needs more bytes than
	// remain in the buffer.
	ErrBufferUnderrun = errors.New("buffer underrun")
	// ErrInvalidEncoding is returned when bytes read as text are not
	// valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// Cursor is a bounds checked reader over a byte buffer.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a Cursor positioned at the start of buf. The Cursor never
// modifies buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.off }

// next consumes n bytes and returns them without copying.
func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, fmt.Errorf("%w: need %v bytes at offset %v, have %v",
			ErrBufferUnderrun, n, c.off, c.Remaining())
	}
	data := c.buf[c.off : c.off+n]
	c.off += n
	return data, nil
}

// ReadByte consumes a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	data, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadBool consumes a single byte. Only 1 is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	return b == 1, err
}

// ReadU16LE consumes a little-endian uint16.
func (c *Cursor) ReadU16LE() (uint16, error) {
	data, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadU32LE consumes a little-endian uint32.
func (c *Cursor) ReadU32LE() (uint32, error) {
	data, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadU64LE consumes a little-endian uint64.
func (c *Cursor) ReadU64LE() (uint64, error) {
	data, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadI8 consumes a single byte as a two's complement int8.
func (c *Cursor) ReadI8() (int8, error) {
	b, err := c.ReadByte()
	return int8(b), err
}

// ReadI16LE consumes a little-endian int16.
func (c *Cursor) ReadI16LE() (int16, error) {
	x, err := c.ReadU16LE()
	return int16(x), err
}

// ReadI32LE consumes a little-endian int32.
func (c *Cursor) ReadI32LE() (int32, error) {
	x, err := c.ReadU32LE()
	return int32(x), err
}

// ReadI64LE consumes a little-endian int64.
func (c *Cursor) ReadI64LE() (int64, error) {
	x, err := c.ReadU64LE()
	return int64(x), err
}

// ReadBytes consumes the next n bytes and returns a copy of them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	data, err := c.next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

// ReadString consumes the next n bytes as UTF-8 text.
func (c *Cursor) ReadString(n int) (string, error) {
	data, err := c.next(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w at offset %v", ErrInvalidEncoding, c.off-n)
	}
	return string(data), nil
}

// ReadVec consumes a u32 little-endian length followed by that many bytes.
func (c *Cursor) ReadVec() ([]byte, error) {
	l, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	return c.ReadBytes(int(l))
}

// ReadPrefixedString consumes a u32 little-endian length followed by that
// many bytes of UTF-8 text.
func (c *Cursor) ReadPrefixedString() (string, error) {
	l, err := c.ReadU32LE()
	if err != nil {
		return "", err
	}
	return c.ReadString(int(l))
}

// ReadPublicKey consumes a 32 byte public key.
func (c *Cursor) ReadPublicKey() (solana.PublicKey, error) {
	var pk solana.PublicKey
	data, err := c.next(solana.PublicKeyLength)
	if err != nil {
		return pk, err
	}
	copy(pk[:], data)
	return pk, nil
}
