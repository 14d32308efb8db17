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

package rpc

import "fmt"

// Commitment is a Solana commitment level. Levels are totally ordered:
// Processed < Confirmed < Finalized.
type Commitment string

const (
	Processed Commitment = "processed"
	Confirmed Commitment = "confirmed"
	Finalized Commitment = "finalized"
)

// rank returns the position of c in the commitment order, or 0 if c is not a
// known level.
func (c Commitment) rank() int {
	switch c {
	case Processed:
		return 1
	case Confirmed:
		return 2
	case Finalized:
		return 3
	}
	return 0
}

// IsValid returns true if c is one of the three known levels.
func (c Commitment) IsValid() bool { return c.rank() > 0 }

// Satisfies returns true if a status observed at level c meets a request for
// level requested. An unknown or empty observed level never satisfies any
// request.
func (c Commitment) Satisfies(requested Commitment) bool {
	return c.IsValid() && c.rank() >= requested.rank()
}

func (c Commitment) String() string { return string(c) }

// Set implements pflag.Value.
func (c *Commitment) Set(s string) error {
	cmt, err := ParseCommitment(s)
	if err != nil {
		return err
	}
	*c = cmt
	return nil
}

// Type implements pflag.Value.
func (c *Commitment) Type() string { return "commitment" }

// ParseCommitment parses one of "processed", "confirmed" or "finalized".
func ParseCommitment(s string) (Commitment, error) {
	c := Commitment(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid commitment %q: "+
			`expected "processed", "confirmed" or "finalized"`, s)
	}
	return c, nil
}
