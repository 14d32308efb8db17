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

package cmd

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/broadcast"
)

// PublicKey is a base58 Solana address flag.
type PublicKey solana.PublicKey

func (pk *PublicKey) Set(text string) error {
	key, err := solana.PublicKeyFromBase58(text)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", text, err)
	}
	*pk = PublicKey(key)
	return nil
}
func (pk PublicKey) String() string {
	return pk.Key().String()
}
func (PublicKey) Type() string {
	return "address"
}

// Key returns pk as a solana.PublicKey.
func (pk PublicKey) Key() solana.PublicKey {
	return solana.PublicKey(pk)
}

// parsePublicKeys parses each arg, rejecting duplicates.
func parsePublicKeys(args []string) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, len(args))
	dupl := make(map[solana.PublicKey]struct{}, len(args))
	for i, arg := range args {
		var pk PublicKey
		if err := pk.Set(arg); err != nil {
			return nil, err
		}
		if _, ok := dupl[pk.Key()]; ok {
			return nil, fmt.Errorf("duplicate: %v", arg)
		}
		dupl[pk.Key()] = struct{}{}
		keys[i] = pk.Key()
	}
	return keys, nil
}

// EnvelopeOrFile is a base64 transaction given directly or as a path to a
// file containing it.
type EnvelopeOrFile struct {
	Path string
	broadcast.Envelope
}

func (e *EnvelopeOrFile) Set(b64OrPath string) error {
	env, err := broadcast.ParseEnvelope(b64OrPath)
	if err == nil {
		e.Envelope = env
		return nil
	}
	data, ferr := ioutil.ReadFile(b64OrPath)
	if ferr != nil {
		return fmt.Errorf("%v and %w", err, ferr)
	}
	env, err = broadcast.ParseEnvelope(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("file %q: %w", b64OrPath, err)
	}
	e.Path = b64OrPath
	e.Envelope = env
	return nil
}
func (e EnvelopeOrFile) String() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Envelope.String()
}
func (EnvelopeOrFile) Type() string {
	return "base64 or file"
}

// JSONOrFile is raw JSON given directly or as a path to a file containing it.
type JSONOrFile json.RawMessage

func (js *JSONOrFile) Set(jsonOrPath string) error {
	if json.Valid([]byte(jsonOrPath)) {
		*js = JSONOrFile(jsonOrPath)
		return nil
	}
	data, err := ioutil.ReadFile(jsonOrPath)
	if err != nil {
		return fmt.Errorf("invalid JSON and %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("file %q does not contain valid JSON", jsonOrPath)
	}
	*js = JSONOrFile(data)
	return nil
}
func (js JSONOrFile) String() string {
	return string(js)
}
func (JSONOrFile) Type() string {
	return "JSON or file"
}
