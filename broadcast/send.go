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
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	_log "github.com/solid-labs/solid-go/log"
	"github.com/solid-labs/solid-go/rpc"
)

// Connection is the subset of a Solana RPC client used by Send. It is
// implemented by *rpc.Client.
type Connection interface {
	SendEncodedTransaction(ctx context.Context,
		encoded string, opts rpc.SendOptions) (solana.Signature, error)
	GetSignatureStatus(ctx context.Context, sig solana.Signature,
		searchTransactionHistory bool) (*rpc.SignatureStatus, error)
}

// Engine states, logged in the "state" field.
const (
	stateBroadcasting   = "broadcasting"
	stateAwaitingStatus = "awaiting-status"
	stateResending      = "resending"
	stateConfirmed      = "confirmed"
	stateFailed         = "failed"
	stateAborted        = "aborted"
)

var sendOptions = rpc.SendOptions{SkipPreflight: true}

// Send broadcasts envelope and waits until it reaches the requested
// commitment.
//
// If the initial broadcast fails, a TransportError is returned and nothing
// else is attempted. Otherwise Send loops: wait one interval, query the
// status, and resend the same bytes unless the status is terminal. Failures
// of status queries and resends are logged and the loop continues.
//
// On success the signature is returned. If the network reports an on chain
// error a RejectedError is returned. If the timeout elapses or ctx is done
// first an AbortedError is returned. In every case the signature is
// returned once the initial broadcast succeeded.
func Send(ctx context.Context, conn Connection,
	envelope Envelope, opts ...Option) (solana.Signature, error) {
	if envelope.IsZero() {
		return solana.Signature{}, ErrEmptyEnvelope
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()

	log := log.WithField("commitment", o.Commitment)

	log.WithField("state", stateBroadcasting).Debug("broadcasting...")
	sig, err := conn.SendEncodedTransaction(ctx, envelope.String(), sendOptions)
	if err != nil {
		log.WithField("state", stateFailed).Debugf("broadcast: %v", err)
		return sig, TransportError{Op: "broadcast", Err: err}
	}
	log = log.WithField("signature", sig)

	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	timer := time.NewTimer(o.Interval)
	defer timer.Stop()
	for resends := 0; ; resends++ {
		log.WithField("state", stateAwaitingStatus).Debug("waiting...")
		select {
		case <-ctx.Done():
			log.WithField("state", stateAborted).
				Debugf("aborted after %v resends: %v", resends, ctx.Err())
			return sig, AbortedError{Signature: sig, Err: ctx.Err()}
		case <-timer.C:
		}

		status, err := conn.GetSignatureStatus(ctx, sig, false)
		switch {
		case err != nil:
			// A poll cut short by the deadline is not a transport
			// failure. The next select aborts.
			if ctx.Err() == nil {
				log.Warnf("rpc.Client.GetSignatureStatus(): %v", err)
			}
		case status == nil:
		case status.Failed():
			log.WithField("state", stateFailed).
				Debugf("rejected: %v", status.Err)
			return sig, RejectedError{Signature: sig, Err: status.Err}
		case status.ConfirmationStatus.Satisfies(o.Commitment):
			log.WithField("state", stateConfirmed).
				Debugf("%v at slot %v", status.ConfirmationStatus, status.Slot)
			return sig, nil
		}

		if ctx.Err() == nil {
			log.WithField("state", stateResending).Debug("resending...")
			if _, err := conn.SendEncodedTransaction(ctx,
				envelope.String(), sendOptions); err != nil &&
				ctx.Err() == nil {
				log.Warnf("rpc.Client.SendEncodedTransaction(): %v", err)
			}
		}
		timer.Reset(o.Interval)
	}
}

var log = _log.New("broadcast")
