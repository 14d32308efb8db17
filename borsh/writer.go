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

package borsh

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Writer appends values to a growing buffer using the same encoding that
// Cursor reads. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// Bytes returns the encoded data. The returned slice aliases the Writer's
// buffer until the next write.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteByte appends b. It never fails.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteBool appends 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.buf = append(w.buf, b)
}

// WriteU16LE appends x in little-endian order.
func (w *Writer) WriteU16LE(x uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, x)
}

// WriteU32LE appends x in little-endian order.
func (w *Writer) WriteU32LE(x uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, x)
}

// WriteU64LE appends x in little-endian order.
func (w *Writer) WriteU64LE(x uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, x)
}

// WriteI64LE appends x in two's complement little-endian order.
func (w *Writer) WriteI64LE(x int64) { w.WriteU64LE(uint64(x)) }

// WriteBytes appends data without a length prefix.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteVec appends a u32 little-endian length followed by data.
func (w *Writer) WriteVec(data []byte) {
	w.WriteU32LE(uint32(len(data)))
	w.WriteBytes(data)
}

// WriteString appends a u32 little-endian length followed by the UTF-8 bytes
// of s.
func (w *Writer) WriteString(s string) {
	w.WriteVec([]byte(s))
}

// WritePublicKey appends the 32 bytes of pk.
func (w *Writer) WritePublicKey(pk solana.PublicKey) {
	w.buf = append(w.buf, pk[:]...)
}
