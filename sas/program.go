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
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	_log "github.com/solid-labs/solid-go/log"
	"github.com/solid-labs/solid-go/rpc"
)

// DefaultProgramID is the Solana Attestation Service program.
var DefaultProgramID = solana.MustPublicKeyFromBase58(
	"22zoJMtdu4tQc2PzL74ZUT7FrwgB1Udec8DdW4yw4BdG")

// PDA seed prefixes.
var (
	SchemaSeed      = []byte("schema")
	AttestationSeed = []byte("attestation")
)

// AccountFetcher returns the raw account at an address, or nil if none
// exists. It is implemented by *rpc.Client.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context,
		address solana.PublicKey) (*rpc.AccountInfo, error)
}

// Program fetches and decodes accounts of an attestation program.
type Program struct {
	ID   solana.PublicKey
	conn AccountFetcher
}

// NewProgram returns a Program for programID, or DefaultProgramID if
// programID is the zero key.
func NewProgram(conn AccountFetcher, programID solana.PublicKey) *Program {
	if programID.IsZero() {
		programID = DefaultProgramID
	}
	return &Program{ID: programID, conn: conn}
}

func (p *Program) fetch(ctx context.Context,
	kind string, address solana.PublicKey) ([]byte, error) {
	info, err := p.conn.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%v %v: %w", kind, address, ErrAccountNotFound)
	}
	log.WithField("address", address).Debugf("fetched %v account, %v bytes",
		kind, len(info.Data))
	return info.Data, nil
}

// FetchSchema fetches and decodes the schema account at address.
func (p *Program) FetchSchema(ctx context.Context,
	address solana.PublicKey) (*Schema, error) {
	data, err := p.fetch(ctx, "schema", address)
	if err != nil {
		return nil, err
	}
	var s Schema
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchAttestation fetches and decodes the attestation account at address.
func (p *Program) FetchAttestation(ctx context.Context,
	address solana.PublicKey) (*Attestation, error) {
	data, err := p.fetch(ctx, "attestation", address)
	if err != nil {
		return nil, err
	}
	var a Attestation
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &a, nil
}

// AttestationRecord is an attestation together with its schema and decoded
// payload.
type AttestationRecord struct {
	Address     solana.PublicKey `json:"address"`
	Attestation *Attestation     `json:"attestation"`
	Schema      *Schema          `json:"schema"`
	Record      Record           `json:"record"`
}

// FetchAttestationRecord fetches the attestation at address, then the schema
// it references, and decodes the attestation payload.
func (p *Program) FetchAttestationRecord(ctx context.Context,
	address solana.PublicKey) (*AttestationRecord, error) {
	a, err := p.FetchAttestation(ctx, address)
	if err != nil {
		return nil, err
	}
	s, err := p.FetchSchema(ctx, a.Schema)
	if err != nil {
		return nil, err
	}
	return newAttestationRecord(address, a, s)
}

// FetchRecord concurrently fetches an attestation and the schema it is
// expected to reference and decodes the attestation payload.
func (p *Program) FetchRecord(ctx context.Context,
	schemaAddress, attestationAddress solana.PublicKey) (
	*AttestationRecord, error) {
	var a *Attestation
	var s *Schema
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = p.FetchAttestation(ctx, attestationAddress)
		return
	})
	g.Go(func() (err error) {
		s, err = p.FetchSchema(ctx, schemaAddress)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !a.Schema.Equals(schemaAddress) {
		return nil, fmt.Errorf("attestation %v references schema %v, not %v",
			attestationAddress, a.Schema, schemaAddress)
	}
	return newAttestationRecord(attestationAddress, a, s)
}

func newAttestationRecord(address solana.PublicKey,
	a *Attestation, s *Schema) (*AttestationRecord, error) {
	r, err := DecodeAttestationData(s, a.Data)
	if err != nil {
		return nil, fmt.Errorf("attestation %v: %w", address, err)
	}
	return &AttestationRecord{Address: address,
		Attestation: a, Schema: s, Record: r}, nil
}

// DecodeAttestationData decodes an attestation payload using the layout and
// field names of s.
func DecodeAttestationData(s *Schema, data []byte) (Record, error) {
	return s.DecodeRecord(data)
}

// FindSchemaPDA derives the address of the schema named name under
// credential.
func (p *Program) FindSchemaPDA(credential solana.PublicKey,
	name string, version uint8) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		SchemaSeed,
		credential[:],
		[]byte(name),
		{version},
	}, p.ID)
}

// FindAttestationPDA derives the address of the attestation issued by
// authority under credential and schema with the given nonce.
func (p *Program) FindAttestationPDA(credential, authority, schema,
	nonce solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		AttestationSeed,
		credential[:],
		authority[:],
		schema[:],
		nonce[:],
	}, p.ID)
}

var log = _log.New("sas")
