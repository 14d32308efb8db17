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

package program

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/solid-labs/solid-go/rpc"
)

// Defaults for the WebSocket endpoint.
const (
	WSDefault     = "ws://localhost:8900"
	DevnetWS      = "wss://api.devnet.solana.com"
	MainnetBetaWS = "wss://api.mainnet-beta.solana.com"
)

// Subscriber streams the logs of transactions that mention a Program and
// feeds them to Program.HandleLogs.
type Subscriber struct {
	Endpoint   string
	Commitment rpc.Commitment
	Header     http.Header
	Program    *Program
}

type wsMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`
}

type wsError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (err wsError) Error() string {
	return fmt.Sprintf("%v: %v", err.Code, err.Message)
}

type logsNotification struct {
	Subscription uint64 `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Signature solana.Signature      `json:"signature"`
			Err       *rpc.TransactionError `json:"err"`
			Logs      []string              `json:"logs"`
		} `json:"value"`
	} `json:"result"`
}

const subscribeID = 1

// ErrNoProgram is returned by Run for a Subscriber without a Program.
var ErrNoProgram = errors.New("subscriber has no program")

// Run subscribes to the logs of s.Program and dispatches events until ctx is
// done or the connection fails. Run returns nil once ctx is done.
func (s *Subscriber) Run(ctx context.Context) error {
	if s.Program == nil {
		return ErrNoProgram
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = WSDefault
	}
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, endpoint, s.Header)
	if err != nil {
		return fmt.Errorf("dial websocket: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	commitment := s.Commitment
	if commitment == "" {
		commitment = rpc.Confirmed
	}
	params, err := json.Marshal([]interface{}{
		map[string][]string{"mentions": {s.Program.ID.String()}},
		map[string]rpc.Commitment{"commitment": commitment},
	})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(wsMessage{JSONRPC: "2.0", ID: subscribeID,
		Method: "logsSubscribe", Params: params}); err != nil {
		return fmt.Errorf("send logsSubscribe: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-done:
		}
		// Unblocks ReadJSON.
		conn.Close()
		return nil
	})
	g.Go(func() error {
		defer close(done)
		err := s.readLoop(conn)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}

func (s *Subscriber) readLoop(conn *websocket.Conn) error {
	var subscription *uint64
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("websocket read: %w", err)
		}
		if msg.Error != nil {
			return fmt.Errorf("logsSubscribe: %w", *msg.Error)
		}
		switch {
		case msg.ID == subscribeID && subscription == nil:
			var id uint64
			if err := json.Unmarshal(msg.Result, &id); err != nil {
				return fmt.Errorf("logsSubscribe: %w", err)
			}
			subscription = &id
			log.Debugf("logsSubscribe: subscription %v", id)
		case msg.Method == "logsNotification":
			var n logsNotification
			if err := json.Unmarshal(msg.Params, &n); err != nil {
				log.Warnf("logsNotification: %v", err)
				continue
			}
			if subscription == nil || n.Subscription != *subscription {
				continue
			}
			if n.Result.Value.Err != nil {
				continue
			}
			s.Program.HandleLogs(n.Result.Value.Signature,
				n.Result.Context.Slot, n.Result.Value.Logs)
		}
	}
}
