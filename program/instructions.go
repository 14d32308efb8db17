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
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/solid-labs/solid-go/borsh"
)

// Instruction discriminators.
var (
	registerDiscriminator   = [8]byte{211, 124, 67, 15, 211, 194, 178, 240}
	linkWalletDiscriminator = [8]byte{86, 92, 31, 146, 228, 51, 209, 230}
)

var (
	// Ed25519ProgramID is the native signature verification program.
	Ed25519ProgramID = solana.MustPublicKeyFromBase58(
		"Ed25519SigVerify111111111111111111111111111")

	// InstructionsSysvarID lets a program inspect the other instructions
	// of its transaction.
	InstructionsSysvarID = solana.MustPublicKeyFromBase58(
		"Sysvar1nstructions1111111111111111111111111")
)

// Register returns the instruction that registers username for user. The user
// must sign and pays for the new accounts.
func (p *Program) Register(user solana.PublicKey,
	username string) (solana.Instruction, error) {
	identity, _, err := p.IdentityPDA(username)
	if err != nil {
		return nil, err
	}
	userAccount, _, err := p.UserAccountPDA(user)
	if err != nil {
		return nil, err
	}

	var data borsh.Writer
	data.WriteBytes(registerDiscriminator[:])
	data.WriteString(username)

	return solana.NewInstruction(p.ID, solana.AccountMetaSlice{
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(userAccount, true, false),
		solana.NewAccountMeta(identity, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, data.Bytes()), nil
}

// LinkWallet returns the instructions that link requester to the user account
// of master. The signature is the base58 encoded ed25519 signature of message
// by master. The signature verification instruction must immediately precede
// the link instruction, so both are returned in order.
func (p *Program) LinkWallet(requester, master solana.PublicKey,
	message, signature string) ([]solana.Instruction, error) {
	sigIx, err := SignatureInstruction(master, []byte(message), signature)
	if err != nil {
		return nil, err
	}
	masterAccount, _, err := p.UserAccountPDA(master)
	if err != nil {
		return nil, err
	}

	var data borsh.Writer
	data.WriteBytes(linkWalletDiscriminator[:])
	data.WritePublicKey(master)

	linkIx := solana.NewInstruction(p.ID, solana.AccountMetaSlice{
		solana.NewAccountMeta(requester, true, true),
		solana.NewAccountMeta(masterAccount, true, false),
		solana.NewAccountMeta(InstructionsSysvarID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}, data.Bytes())
	return []solana.Instruction{sigIx, linkIx}, nil
}

// RegisterTransaction returns an unsigned transaction paid for by user that
// registers username. The recent blockhash is left empty. Set it with
// rpc.UpdateBlockhash before signing.
func (p *Program) RegisterTransaction(user solana.PublicKey,
	username string) (*solana.Transaction, error) {
	ix, err := p.Register(user, username)
	if err != nil {
		return nil, err
	}
	return solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{},
		solana.TransactionPayer(user))
}

// LinkWalletTransaction returns an unsigned transaction paid for by requester
// that links it to master. The recent blockhash is left empty.
func (p *Program) LinkWalletTransaction(requester, master solana.PublicKey,
	message, signature string) (*solana.Transaction, error) {
	ixs, err := p.LinkWallet(requester, master, message, signature)
	if err != nil {
		return nil, err
	}
	return solana.NewTransaction(ixs, solana.Hash{},
		solana.TransactionPayer(requester))
}

// Layout of the Ed25519 program instruction data for a single signature with
// all data inline.
const (
	ed25519HeaderLen       = 16
	ed25519PublicKeyOffset = ed25519HeaderLen
	ed25519SignatureOffset = ed25519PublicKeyOffset + solana.PublicKeyLength
	ed25519MessageOffset   = ed25519SignatureOffset + solana.SignatureLength
	// Index meaning the current instruction.
	ed25519CurrentInstruction = 0xffff
)

// SignatureInstruction returns a native Ed25519 program instruction that
// verifies signature, base58 encoded, of message by publicKey.
func SignatureInstruction(publicKey solana.PublicKey,
	message []byte, signature string) (solana.Instruction, error) {
	sig, err := base58.Decode(signature)
	if err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}
	if len(sig) != solana.SignatureLength {
		return nil, fmt.Errorf("invalid signature: %v bytes, expected %v",
			len(sig), solana.SignatureLength)
	}
	if ed25519MessageOffset+len(message) > 0xffff {
		return nil, fmt.Errorf("message too long: %v bytes", len(message))
	}

	var data borsh.Writer
	data.WriteByte(1) // number of signatures
	data.WriteByte(0) // padding
	data.WriteU16LE(ed25519SignatureOffset)
	data.WriteU16LE(ed25519CurrentInstruction)
	data.WriteU16LE(ed25519PublicKeyOffset)
	data.WriteU16LE(ed25519CurrentInstruction)
	data.WriteU16LE(ed25519MessageOffset)
	data.WriteU16LE(uint16(len(message)))
	data.WriteU16LE(ed25519CurrentInstruction)
	data.WritePublicKey(publicKey)
	data.WriteBytes(sig)
	data.WriteBytes(message)

	return solana.NewInstruction(Ed25519ProgramID,
		solana.AccountMetaSlice{}, data.Bytes()), nil
}
