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
	"encoding/base64"

	"github.com/gagliardetto/solana-go"
)

// Blockhash is a recent blockhash and the last block height at which a
// transaction referencing it is still valid.
type Blockhash struct {
	Hash                 solana.Hash `json:"blockhash"`
	LastValidBlockHeight uint64      `json:"lastValidBlockHeight"`
}

// Get populates bh with the latest blockhash.
func (bh *Blockhash) Get(ctx context.Context, c *Client) error {
	params := []interface{}{c.config()}
	var result struct {
		Value *Blockhash `json:"value"`
	}
	result.Value = bh
	return c.Request(ctx, "getLatestBlockhash", params, &result)
}

// GetLatestBlockhash returns the latest blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (Blockhash, error) {
	var bh Blockhash
	err := bh.Get(ctx, c)
	return bh, err
}

// UpdateBlockhash sets the recent blockhash of tx to the latest blockhash and
// returns it. The caller must sign tx afterwards and submit it before
// LastValidBlockHeight is exceeded.
func UpdateBlockhash(ctx context.Context,
	c *Client, tx *solana.Transaction) (Blockhash, error) {
	bh, err := c.GetLatestBlockhash(ctx)
	if err != nil {
		return bh, err
	}
	tx.Message.RecentBlockhash = bh.Hash
	return bh, nil
}

// EncodeTransaction serializes tx to the base64 wire encoding accepted by
// sendTransaction. Missing signatures are encoded as all zero signatures so
// that partially signed transactions can be handed to another signer.
func EncodeTransaction(tx *solana.Transaction) (string, error) {
	cp := *tx
	numSigs := int(tx.Message.Header.NumRequiredSignatures)
	if len(cp.Signatures) < numSigs {
		cp.Signatures = make([]solana.Signature, numSigs)
		copy(cp.Signatures, tx.Signatures)
	}
	data, err := cp.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
