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
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	_log "github.com/solid-labs/solid-go/log"
)

// Client makes JSON-RPC requests to a Solana RPC node. Client embeds a
// jsonrpc2.Client, and thus also an http.Client. Use jsonrpc2.Client's
// BasicAuth settings to set up BasicAuth and http.Client's transport settings
// to configure TLS.
type Client struct {
	RPCServer string
	jrpc.Client

	// Commitment is sent with account and blockhash queries. Empty means
	// the node default.
	Commitment Commitment
}

// Defaults for the RPC endpoint.
const (
	RPCDefault     = "http://localhost:8899"
	DevnetRPC      = "https://api.devnet.solana.com"
	MainnetBetaRPC = "https://api.mainnet-beta.solana.com"
)

// NewClient returns a pointer to a Client initialized with the given endpoint,
// or RPCDefault if rpcServer is empty, and a 15 second timeout for the
// http.Client.
func NewClient(rpcServer string) *Client {
	if rpcServer == "" {
		rpcServer = RPCDefault
	}
	c := &Client{RPCServer: rpcServer}
	c.Timeout = 15 * time.Second
	return c
}

// Request makes a request to the RPC node.
func (c *Client) Request(ctx context.Context,
	method string, params, result interface{}) error {

	if c.DebugRequest {
		log.Debugf("%v: %v", c.RPCServer, method)
	}
	return c.Client.Request(ctx, c.RPCServer, method, params, result)
}

// config returns the common configuration object for account and blockhash
// queries.
func (c *Client) config() map[string]interface{} {
	cfg := make(map[string]interface{}, 2)
	if c.Commitment != "" {
		cfg["commitment"] = c.Commitment
	}
	return cfg
}

var log = _log.New("rpc")
