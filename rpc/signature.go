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

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SendOptions are passed to the sendTransaction RPC method.
type SendOptions struct {
	// SkipPreflight disables the node's simulation of the transaction
	// before it is forwarded to the leader.
	SkipPreflight bool `json:"skipPreflight"`

	PreflightCommitment Commitment `json:"preflightCommitment,omitempty"`

	// MaxRetries is the number of times the node retries forwarding the
	// transaction. Nil leaves the node default.
	MaxRetries *uint `json:"maxRetries,omitempty"`
}

// SendEncodedTransaction submits an already signed, base64 encoded
// transaction and returns its signature. The node does not wait for the
// transaction to be processed.
func (c *Client) SendEncodedTransaction(ctx context.Context,
	encoded string, opts SendOptions) (solana.Signature, error) {

	cfg := struct {
		Encoding string `json:"encoding"`
		SendOptions
	}{Encoding: "base64", SendOptions: opts}

	var result string
	params := []interface{}{encoded, cfg}
	if err := c.Request(ctx, "sendTransaction", params, &result); err != nil {
		return solana.Signature{}, err
	}
	sig, err := solana.SignatureFromBase58(result)
	if err != nil {
		return sig, fmt.Errorf("invalid signature %q: %w", result, err)
	}
	return sig, nil
}

// SignatureStatus is the status of a transaction signature as reported by
// getSignatureStatuses.
type SignatureStatus struct {
	Slot uint64 `json:"slot"`

	// Confirmations is nil once the block is rooted.
	Confirmations *uint64 `json:"confirmations"`

	// Err is non-nil if the transaction failed on chain.
	Err *TransactionError `json:"err"`

	ConfirmationStatus Commitment `json:"confirmationStatus"`
}

// Failed returns true if s reports an on chain error.
func (s SignatureStatus) Failed() bool {
	return s.Err != nil
}

// GetSignatureStatus returns the status of sig, or nil if the node has not
// seen sig. If searchTransactionHistory is false only the node's recent
// status cache is searched.
func (c *Client) GetSignatureStatus(ctx context.Context,
	sig solana.Signature,
	searchTransactionHistory bool) (*SignatureStatus, error) {

	params := []interface{}{
		[]string{sig.String()},
		map[string]bool{"searchTransactionHistory": searchTransactionHistory},
	}
	var result struct {
		Value []*SignatureStatus `json:"value"`
	}
	if err := c.Request(ctx, "getSignatureStatuses", params, &result); err != nil {
		return nil, err
	}
	if len(result.Value) != 1 {
		return nil, fmt.Errorf("getSignatureStatuses: expected 1 status, got %v",
			len(result.Value))
	}
	return result.Value[0], nil
}

// TransactionError holds the runtime error reported for a failed
// transaction, e.g. {"InstructionError":[0,{"Custom":6000}]}.
type TransactionError struct {
	Raw json.RawMessage
}

// UnmarshalJSON stores data verbatim.
func (e *TransactionError) UnmarshalJSON(data []byte) error {
	e.Raw = append(e.Raw[:0], data...)
	return nil
}

func (e TransactionError) MarshalJSON() ([]byte, error) {
	if e.Raw == nil {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

func (e TransactionError) Error() string {
	var name string
	if err := json.Unmarshal(e.Raw, &name); err == nil {
		return name
	}
	return string(e.Raw)
}

// InstructionError returns the index of the failing instruction and its custom
// program error code if e is an InstructionError with a Custom code.
func (e TransactionError) InstructionError() (index int, code uint32, ok bool) {
	var ie struct {
		InstructionError []json.RawMessage
	}
	if err := json.Unmarshal(e.Raw, &ie); err != nil ||
		len(ie.InstructionError) != 2 {
		return 0, 0, false
	}
	if err := json.Unmarshal(ie.InstructionError[0], &index); err != nil {
		return 0, 0, false
	}
	var custom struct {
		Custom *uint32
	}
	if err := json.Unmarshal(ie.InstructionError[1], &custom); err != nil ||
		custom.Custom == nil {
		return index, 0, false
	}
	return index, *custom.Custom, true
}
