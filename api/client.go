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

// Package api is a client for the Solid backend REST API, which tracks KYC
// sessions and the attestations issued for them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_log "github.com/solid-labs/solid-go/log"
)

// Client makes requests to the Solid API. Client embeds an http.Client. Use
// its transport settings to configure TLS.
type Client struct {
	APIServer string
	http.Client

	// Credentials are required by the client info methods. When set they
	// are also sent with KYC URL requests so that sessions are tracked to
	// the client.
	Credentials *Credentials

	DebugRequest bool
}

// Credentials identify an integrating application.
type Credentials struct {
	APIKey    string
	AppSecret string
}

// APIDefault is the default API endpoint.
const APIDefault = "http://localhost:3000"

// NewClient returns a pointer to a Client initialized with the given endpoint,
// or APIDefault if apiServer is empty, and a 15 second timeout for the
// http.Client.
func NewClient(apiServer string, credentials *Credentials) *Client {
	if apiServer == "" {
		apiServer = APIDefault
	}
	c := &Client{APIServer: strings.TrimRight(apiServer, "/"),
		Credentials: credentials}
	c.Timeout = 15 * time.Second
	return c
}

var (
	// ErrAuthRequired is returned by authenticated methods when the Client
	// has no Credentials.
	ErrAuthRequired = errors.New("authentication required: " +
		"API credentials must be provided")

	ErrInvalidInput       = errors.New("invalid input data")
	ErrInvalidCredentials = errors.New("invalid client credentials")
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameExists   = errors.New("client name already exists")
)

// StatusError is returned for an unsuccessful HTTP status that has no more
// specific error.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (err StatusError) Error() string {
	return fmt.Sprintf("%v: %v", err.Op, err.Status)
}

// request performs an HTTP request and decodes the JSON response into result.
// The errs map translates HTTP status codes to errors.
func (c *Client) request(ctx context.Context, op, method, path string,
	query url.Values, auth bool, body, result interface{},
	errs map[int]error) error {

	u := c.APIServer + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%v: json.Marshal(): %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("%v: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth && c.Credentials != nil {
		req.Header.Set("X-API-Key", c.Credentials.APIKey)
		req.Header.Set("X-App-Secret", c.Credentials.AppSecret)
	}

	if c.DebugRequest {
		log.Debugf("%v %v", method, u)
	}
	res, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		io.Copy(io.Discard, res.Body)
		if err, ok := errs[res.StatusCode]; ok {
			return err
		}
		return StatusError{Op: op,
			StatusCode: res.StatusCode, Status: res.Status}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(result); err != nil {
		return fmt.Errorf("%v: invalid response: %w", op, err)
	}
	return nil
}

var log = _log.New("api")
