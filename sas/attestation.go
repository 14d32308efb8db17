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

package sas

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/borsh"
)

// Attestation is a signed claim about a subject, encoded according to a
// Schema.
type Attestation struct {
	Nonce      solana.PublicKey `json:"nonce"`
	Credential solana.PublicKey `json:"credential"`
	Schema     solana.PublicKey `json:"schema"`

	// Data is the raw payload. Decode it with Schema.DecodeRecord.
	Data []byte `json:"data"`

	Signer solana.PublicKey `json:"signer"`

	// Expiry is in unix seconds. Zero means the attestation never
	// expires.
	Expiry int64 `json:"expiry"`

	TokenAccount solana.PublicKey `json:"tokenAccount"`
}

// UnmarshalBinary decodes an attestation account. Errors are
// MalformedAccountError.
func (a *Attestation) UnmarshalBinary(data []byte) error {
	if err := a.unmarshalBinary(data); err != nil {
		return MalformedAccountError{Kind: "attestation", Err: err}
	}
	return nil
}

func (a *Attestation) unmarshalBinary(data []byte) (err error) {
	c := borsh.NewCursor(data)
	if err := readDiscriminator(c, AttestationDiscriminator); err != nil {
		return err
	}
	if a.Nonce, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	if a.Credential, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("credential: %w", err)
	}
	if a.Schema, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if a.Data, err = c.ReadVec(); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if a.Signer, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("signer: %w", err)
	}
	if a.Expiry, err = c.ReadI64LE(); err != nil {
		return fmt.Errorf("expiry: %w", err)
	}
	if a.TokenAccount, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("token account: %w", err)
	}
	return nil
}

// MarshalBinary encodes a as an attestation account.
func (a Attestation) MarshalBinary() ([]byte, error) {
	var w borsh.Writer
	w.WriteByte(AttestationDiscriminator)
	w.WritePublicKey(a.Nonce)
	w.WritePublicKey(a.Credential)
	w.WritePublicKey(a.Schema)
	w.WriteVec(a.Data)
	w.WritePublicKey(a.Signer)
	w.WriteI64LE(a.Expiry)
	w.WritePublicKey(a.TokenAccount)
	return w.Bytes(), nil
}

// Expired returns true if a has a non zero expiry at or before now.
func (a Attestation) Expired(now time.Time) bool {
	return a.Expiry != 0 && a.Expiry <= now.Unix()
}
