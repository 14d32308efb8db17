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

package broadcast

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/rpc"
)

// Envelope is an immutable, signed and serialized transaction in the base64
// wire encoding. The zero Envelope is empty and cannot be sent.
type Envelope struct {
	b64 string
}

// NewEnvelope encodes raw serialized transaction bytes.
func NewEnvelope(raw []byte) Envelope {
	return Envelope{b64: base64.StdEncoding.EncodeToString(raw)}
}

// ParseEnvelope validates a base64 encoded transaction.
func ParseEnvelope(b64 string) (Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Envelope{}, fmt.Errorf("invalid transaction encoding: %w", err)
	}
	if len(raw) == 0 {
		return Envelope{}, errors.New("empty transaction")
	}
	return Envelope{b64: b64}, nil
}

// EnvelopeFromTransaction serializes tx. Signatures that are missing are
// encoded as zeros.
func EnvelopeFromTransaction(tx *solana.Transaction) (Envelope, error) {
	b64, err := rpc.EncodeTransaction(tx)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{b64: b64}, nil
}

func (e Envelope) String() string { return e.b64 }

// Bytes returns a copy of the serialized transaction.
func (e Envelope) Bytes() []byte {
	raw, _ := base64.StdEncoding.DecodeString(e.b64)
	return raw
}

// IsZero reports whether e holds no transaction.
func (e Envelope) IsZero() bool { return e.b64 == "" }
