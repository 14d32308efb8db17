package program_test

import (
	"context"
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solid-labs/solid-go/borsh"
	. "github.com/solid-labs/solid-go/program"
	"github.com/solid-labs/solid-go/rpc"
)

func key(b byte) (pk solana.PublicKey) {
	for i := range pk {
		pk[i] = b
	}
	return
}

type fakeFetcher map[solana.PublicKey][]byte

func (f fakeFetcher) GetAccountInfo(ctx context.Context,
	address solana.PublicKey) (*rpc.AccountInfo, error) {
	data, ok := f[address]
	if !ok {
		return nil, nil
	}
	return &rpc.AccountInfo{Data: data}, nil
}

func TestPDAs(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	assert.Equal(t, DefaultProgramID, p.ID)

	user, bump, err := p.UserAccountPDA(key(1))
	require.NoError(t, err)
	exp, err := solana.CreateProgramAddress(
		[][]byte{[]byte("user_account"), key(1).Bytes(), {bump}}, p.ID)
	require.NoError(t, err)
	assert.Equal(t, exp, user)

	identity, bump, err := p.IdentityPDA("alice")
	require.NoError(t, err)
	exp, err = solana.CreateProgramAddress(
		[][]byte{[]byte("identity"), []byte("alice"), {bump}}, p.ID)
	require.NoError(t, err)
	assert.Equal(t, exp, identity)

	_, _, err = p.IdentityPDA(strings.Repeat("a", 33))
	assert.True(t, errors.Is(err, ErrUsernameTooLong))
}

func TestRegister(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	ix, err := p.Register(key(1), "alice")
	require.NoError(t, err)
	assert.Equal(t, DefaultProgramID, ix.ProgramID())

	userAccount, _, _ := p.UserAccountPDA(key(1))
	identity, _, _ := p.IdentityPDA("alice")
	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, *solana.NewAccountMeta(key(1), true, true), *accounts[0])
	assert.Equal(t, *solana.NewAccountMeta(userAccount, true, false),
		*accounts[1])
	assert.Equal(t, *solana.NewAccountMeta(identity, true, false),
		*accounts[2])
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{211, 124, 67, 15, 211, 194, 178, 240,
		5, 0, 0, 0, 'a', 'l', 'i', 'c', 'e'}, data)

	_, err = p.Register(key(1), strings.Repeat("é", 17))
	assert.True(t, errors.Is(err, ErrUsernameTooLong))
	_, err = p.Register(key(1), strings.Repeat("a", 32))
	assert.NoError(t, err)
}

func TestRegisterTransaction(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	tx, err := p.RegisterTransaction(key(1), "alice")
	require.NoError(t, err)
	assert.Equal(t, key(1), tx.Message.AccountKeys[0])
	assert.EqualValues(t, 1, tx.Message.Header.NumRequiredSignatures)
	encoded, err := rpc.EncodeTransaction(tx)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
}

func TestSignatureInstruction(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	msg := []byte("link wallet")
	sig := ed25519.Sign(priv, msg)
	var pk solana.PublicKey
	copy(pk[:], pub)

	ix, err := SignatureInstruction(pk, msg, base58.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, Ed25519ProgramID, ix.ProgramID())
	assert.Empty(t, ix.Accounts())
	data, err := ix.Data()
	require.NoError(t, err)

	require.Len(t, data, 16+32+64+len(msg))
	u16 := func(off int) uint16 {
		return binary.LittleEndian.Uint16(data[off:])
	}
	assert.Equal(t, byte(1), data[0])
	assert.Equal(t, byte(0), data[1])
	sigOff, pkOff, msgOff := u16(2), u16(6), u16(10)
	assert.Equal(t, uint16(48), sigOff)
	assert.Equal(t, uint16(16), pkOff)
	assert.Equal(t, uint16(112), msgOff)
	assert.Equal(t, uint16(len(msg)), u16(12))
	for _, off := range []int{4, 8, 14} {
		assert.Equal(t, uint16(0xffff), u16(off))
	}
	assert.True(t, ed25519.Verify(data[pkOff:pkOff+32],
		data[msgOff:], data[sigOff:sigOff+64]))

	_, err = SignatureInstruction(pk, msg, "0OIl")
	assert.Error(t, err)
	_, err = SignatureInstruction(pk, msg, base58.Encode(sig[:32]))
	assert.Error(t, err)
}

func TestLinkWallet(t *testing.T) {
	p := New(nil, key(7))
	sig := base58.Encode(make([]byte, 64))
	ixs, err := p.LinkWallet(key(1), key(2), "hello", sig)
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	assert.Equal(t, Ed25519ProgramID, ixs[0].ProgramID())

	link := ixs[1]
	assert.Equal(t, key(7), link.ProgramID())
	master, _, _ := p.UserAccountPDA(key(2))
	accounts := link.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, *solana.NewAccountMeta(key(1), true, true), *accounts[0])
	assert.Equal(t, *solana.NewAccountMeta(master, true, false), *accounts[1])
	assert.Equal(t, InstructionsSysvarID, accounts[2].PublicKey)
	assert.Equal(t, solana.SystemProgramID, accounts[3].PublicKey)

	data, err := link.Data()
	require.NoError(t, err)
	exp := append([]byte{86, 92, 31, 146, 228, 51, 209, 230},
		key(2).Bytes()...)
	assert.Equal(t, exp, data)

	tx, err := p.LinkWalletTransaction(key(1), key(2), "hello", sig)
	require.NoError(t, err)
	assert.Len(t, tx.Message.Instructions, 2)

	_, err = p.LinkWallet(key(1), key(2), "hello", "not base58!")
	assert.Error(t, err)
}

func TestUserAccount(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	u := UserAccount{Username: "alice", Master: key(1),
		LinkingWallets: []solana.PublicKey{key(2), key(3)}}
	data, err := u.MarshalBinary()
	require.NoError(t, err)

	address, _, err := p.UserAccountPDA(key(1))
	require.NoError(t, err)
	p = New(fakeFetcher{address: data}, solana.PublicKey{})

	got, err := p.GetUserAccount(context.Background(), key(1))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)
	assert.True(t, got.IsLinked(key(1)))
	assert.True(t, got.IsLinked(key(3)))
	assert.False(t, got.IsLinked(key(4)))

	got, err = p.GetUserAccount(context.Background(), key(9))
	require.NoError(t, err)
	assert.Nil(t, got)

	var bad UserAccount
	assert.True(t, errors.Is(bad.UnmarshalBinary(data[:len(data)-1]),
		borsh.ErrBufferUnderrun))
	assert.Error(t, bad.UnmarshalBinary(append([]byte{0}, data[1:]...)))

	// A huge wallet count must not allocate.
	var w borsh.Writer
	w.WriteBytes(data[:8])
	w.WriteString("bob")
	w.WritePublicKey(key(1))
	w.WriteU32LE(0xffffffff)
	assert.True(t, errors.Is(bad.UnmarshalBinary(w.Bytes()),
		borsh.ErrBufferUnderrun))
}

func TestGetIdentity(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	address, _, err := p.IdentityPDA("alice")
	require.NoError(t, err)
	data, err := Identity{Master: key(1)}.MarshalBinary()
	require.NoError(t, err)
	p = New(fakeFetcher{address: data}, solana.PublicKey{})

	id, err := p.GetIdentity(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, key(1), id.Master)

	id, err = p.GetIdentity(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestErrors(t *testing.T) {
	err, ok := ErrorByCode(6004)
	require.True(t, ok)
	assert.Equal(t, ErrWalletAlreadyLinked, err)
	assert.EqualError(t, err, "walletAlreadyLinked (6004): "+
		"This wallet is already linked to the account")
	_, ok = ErrorByCode(1)
	assert.False(t, ok)

	var txErr rpc.TransactionError
	require.NoError(t, txErr.UnmarshalJSON(
		[]byte(`{"InstructionError":[1,{"Custom":6002}]}`)))
	wrapped := fmtErr{&txErr}
	pErr, ok := ParseError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrMasterKeyDoesNotMatch, pErr)

	_, ok = ParseError(errors.New("timeout"))
	assert.False(t, ok)
}

type fmtErr struct{ err error }

func (e fmtErr) Error() string { return "wrapped: " + e.err.Error() }
func (e fmtErr) Unwrap() error { return e.err }
