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
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrEmptyEnvelope is returned by Send for the zero Envelope.
var ErrEmptyEnvelope = errors.New("empty envelope")

// TransportError is returned when the initial broadcast could not be
// delivered to the node.
type TransportError struct {
	Op  string
	Err error
}

func (err TransportError) Error() string {
	return fmt.Sprintf("%v: %v", err.Op, err.Err)
}

func (err TransportError) Unwrap() error { return err.Err }

// RejectedError is returned when the network reports that the transaction
// failed on chain. The transaction will never succeed.
type RejectedError struct {
	Signature solana.Signature
	Err       error
}

func (err RejectedError) Error() string {
	return fmt.Sprintf("transaction %v rejected: %v", err.Signature, err.Err)
}

func (err RejectedError) Unwrap() error { return err.Err }

// AbortedError is returned when the timeout elapsed, or the caller's context
// ended, before the transaction reached the requested commitment. The
// transaction may still land.
type AbortedError struct {
	Signature solana.Signature
	Err       error
}

func (err AbortedError) Error() string {
	return fmt.Sprintf("transaction %v aborted: %v", err.Signature, err.Err)
}

func (err AbortedError) Unwrap() error { return err.Err }

// IsAborted returns true if err is or wraps an AbortedError.
func IsAborted(err error) bool {
	return errors.As(err, &AbortedError{})
}

// IsRejected returns true if err is or wraps a RejectedError.
func IsRejected(err error) bool {
	return errors.As(err, &RejectedError{})
}
