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
	"sync"

	"github.com/gagliardetto/solana-go"

	_log "github.com/solid-labs/solid-go/log"
	"github.com/solid-labs/solid-go/rpc"
)

// DefaultProgramID is the deployed Solid program.
var DefaultProgramID = solana.MustPublicKeyFromBase58(
	"6UZqUB1eVVzUkjrA9bCETqby9GiApBKGwgWoQZ3Qr4EY")

// PDA seed prefixes.
var (
	UserAccountSeed = []byte("user_account")
	IdentitySeed    = []byte("identity")
)

// AccountFetcher returns the raw account at an address, or nil if none
// exists. It is implemented by *rpc.Client.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context,
		address solana.PublicKey) (*rpc.AccountInfo, error)
}

// Program is a client for a deployment of the Solid program.
type Program struct {
	ID   solana.PublicKey
	conn AccountFetcher

	mu        sync.RWMutex
	nextID    int
	listeners map[int]UserRegisteredHandler
}

// New returns a Program for programID, or DefaultProgramID if programID is
// the zero key. The conn may be nil if no accounts are fetched.
func New(conn AccountFetcher, programID solana.PublicKey) *Program {
	if programID.IsZero() {
		programID = DefaultProgramID
	}
	return &Program{ID: programID, conn: conn,
		listeners: make(map[int]UserRegisteredHandler)}
}

// UserAccountPDA derives the user account of wallet.
func (p *Program) UserAccountPDA(wallet solana.PublicKey) (
	solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{UserAccountSeed, wallet[:]}, p.ID)
}

// IdentityPDA derives the identity account that reserves username.
func (p *Program) IdentityPDA(username string) (
	solana.PublicKey, uint8, error) {
	if err := validateUsername(username); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return solana.FindProgramAddress(
		[][]byte{IdentitySeed, []byte(username)}, p.ID)
}

var log = _log.New("program")
