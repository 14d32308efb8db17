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
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AccountInfo is the raw state of an on chain account.
type AccountInfo struct {
	Data       AccountData      `json:"data"`
	Owner      solana.PublicKey `json:"owner"`
	Lamports   uint64           `json:"lamports"`
	Executable bool             `json:"executable"`
	RentEpoch  uint64           `json:"rentEpoch"`
}

// AccountData implements json.Unmarshaler to decode the ["<data>",
// "base64"] account data encoding.
type AccountData []byte

// UnmarshalJSON decodes a [data, encoding] pair. Only base64 is supported.
func (d *AccountData) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%T: %w", d, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%T: expected [data, encoding]", d)
	}
	if pair[1] != "base64" {
		return fmt.Errorf("%T: unsupported encoding %q", d, pair[1])
	}
	raw, err := base64.StdEncoding.DecodeString(pair[0])
	if err != nil {
		return fmt.Errorf("%T: %w", d, err)
	}
	*d = raw
	return nil
}

// MarshalJSON encodes d as a [data, "base64"] pair.
func (d AccountData) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{base64.StdEncoding.EncodeToString(d), "base64"})
}

// GetAccountInfo returns the account at address, or nil if no account exists
// there.
func (c *Client) GetAccountInfo(ctx context.Context,
	address solana.PublicKey) (*AccountInfo, error) {

	cfg := c.config()
	cfg["encoding"] = "base64"
	params := []interface{}{address.String(), cfg}
	var result struct {
		Value *AccountInfo `json:"value"`
	}
	if err := c.Request(ctx, "getAccountInfo", params, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}
