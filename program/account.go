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
	"bytes"
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/borsh"
)

// Account discriminators.
var (
	userDiscriminator     = [8]byte{159, 117, 95, 227, 239, 151, 58, 236}
	identityDiscriminator = [8]byte{58, 132, 5, 12, 176, 164, 85, 112}
)

// UserAccount is the account created by Register for a master wallet.
type UserAccount struct {
	Username       string             `json:"username"`
	Master         solana.PublicKey   `json:"master"`
	LinkingWallets []solana.PublicKey `json:"linkingWallets"`
}

func (u *UserAccount) UnmarshalBinary(data []byte) (err error) {
	c := borsh.NewCursor(data)
	if err := readDiscriminator(c, "user", userDiscriminator); err != nil {
		return err
	}
	if u.Username, err = c.ReadPrefixedString(); err != nil {
		return fmt.Errorf("user: username: %w", err)
	}
	if u.Master, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("user: master: %w", err)
	}
	n, err := c.ReadU32LE()
	if err != nil {
		return fmt.Errorf("user: linking wallets: %w", err)
	}
	if int64(n)*solana.PublicKeyLength > int64(c.Remaining()) {
		return fmt.Errorf("user: linking wallets: %w: %v keys",
			borsh.ErrBufferUnderrun, n)
	}
	u.LinkingWallets = make([]solana.PublicKey, n)
	for i := range u.LinkingWallets {
		if u.LinkingWallets[i], err = c.ReadPublicKey(); err != nil {
			return fmt.Errorf("user: linking wallets: %w", err)
		}
	}
	return nil
}

func (u UserAccount) MarshalBinary() ([]byte, error) {
	var w borsh.Writer
	w.WriteBytes(userDiscriminator[:])
	w.WriteString(u.Username)
	w.WritePublicKey(u.Master)
	w.WriteU32LE(uint32(len(u.LinkingWallets)))
	for _, wallet := range u.LinkingWallets {
		w.WritePublicKey(wallet)
	}
	return w.Bytes(), nil
}

// IsLinked returns true if wallet is the master or a linked wallet of u.
func (u UserAccount) IsLinked(wallet solana.PublicKey) bool {
	if u.Master.Equals(wallet) {
		return true
	}
	for _, linked := range u.LinkingWallets {
		if linked.Equals(wallet) {
			return true
		}
	}
	return false
}

// Identity reserves a username for a master wallet.
type Identity struct {
	Master solana.PublicKey `json:"master"`
}

func (id *Identity) UnmarshalBinary(data []byte) (err error) {
	c := borsh.NewCursor(data)
	if err := readDiscriminator(c, "identity",
		identityDiscriminator); err != nil {
		return err
	}
	if id.Master, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("identity: master: %w", err)
	}
	return nil
}

func (id Identity) MarshalBinary() ([]byte, error) {
	var w borsh.Writer
	w.WriteBytes(identityDiscriminator[:])
	w.WritePublicKey(id.Master)
	return w.Bytes(), nil
}

func readDiscriminator(c *borsh.Cursor, kind string, exp [8]byte) error {
	d, err := c.ReadBytes(len(exp))
	if err != nil {
		return fmt.Errorf("%v: discriminator: %w", kind, err)
	}
	if !bytes.Equal(d, exp[:]) {
		return fmt.Errorf("%v: invalid discriminator: %v", kind, d)
	}
	return nil
}

// GetUserAccount returns the user account of wallet, or nil if wallet has not
// registered.
func (p *Program) GetUserAccount(ctx context.Context,
	wallet solana.PublicKey) (*UserAccount, error) {
	address, _, err := p.UserAccountPDA(wallet)
	if err != nil {
		return nil, err
	}
	info, err := p.conn.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if info == nil {
		log.WithField("wallet", wallet).Debug("user account does not exist")
		return nil, nil
	}
	var u UserAccount
	if err := u.UnmarshalBinary(info.Data); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetIdentity returns the identity that reserves username, or nil if the
// username is not taken.
func (p *Program) GetIdentity(ctx context.Context,
	username string) (*Identity, error) {
	address, _, err := p.IdentityPDA(username)
	if err != nil {
		return nil, err
	}
	info, err := p.conn.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}
	var id Identity
	if err := id.UnmarshalBinary(info.Data); err != nil {
		return nil, err
	}
	return &id, nil
}
