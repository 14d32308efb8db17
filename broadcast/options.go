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
	"time"

	"github.com/solid-labs/solid-go/rpc"
)

// Defaults for Options.
const (
	DefaultCommitment = rpc.Confirmed
	DefaultInterval   = 3 * time.Second
	DefaultTimeout    = 30 * time.Second
)

// Options control Send.
type Options struct {
	// Commitment is the level the transaction must reach.
	Commitment rpc.Commitment

	// Interval is the wait between status polls. Each poll that does not
	// observe Commitment is followed by a resend.
	Interval time.Duration

	// Timeout bounds the whole poll loop, measured from the end of the
	// initial broadcast.
	Timeout time.Duration
}

// DefaultOptions returns the Options used when no Option is passed to Send.
func DefaultOptions() Options {
	return Options{
		Commitment: DefaultCommitment,
		Interval:   DefaultInterval,
		Timeout:    DefaultTimeout,
	}
}

// Option modifies the Options used by Send.
type Option func(*Options)

// WithCommitment sets the commitment level Send waits for.
func WithCommitment(c rpc.Commitment) Option {
	return func(o *Options) { o.Commitment = c }
}

// WithInterval sets the delay between status polls.
func WithInterval(d time.Duration) Option {
	return func(o *Options) { o.Interval = d }
}

// WithTimeout bounds the whole Send, resends included.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithOptions replaces all Options.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if !o.Commitment.IsValid() {
		o.Commitment = def.Commitment
	}
	if o.Interval <= 0 {
		o.Interval = def.Interval
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
}
