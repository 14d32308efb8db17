package sas_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solid-labs/solid-go/borsh"
	. "github.com/solid-labs/solid-go/sas"
)

func key(b byte) (pk solana.PublicKey) {
	for i := range pk {
		pk[i] = b
	}
	return
}

var testSchema = Schema{
	Credential:  key(1),
	Name:        "kyc",
	Description: "identity verification",
	Layout:      []FieldType{TypeBool, TypeString},
	FieldNames:  []string{"isPaused", "label"},
	IsPaused:    false,
	Version:     1,
}

var testAttestation = Attestation{
	Nonce:        key(2),
	Credential:   key(1),
	Schema:       key(3),
	Data:         []byte{0x01, 0x03, 0x00, 0x00, 0x00, 'f', 'o', 'o'},
	Signer:       key(4),
	Expiry:       1700000000,
	TokenAccount: key(5),
}

func TestSchemaBinary(t *testing.T) {
	data, err := testSchema.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, SchemaDiscriminator, data[0])

	var s Schema
	require.NoError(t, s.UnmarshalBinary(data))
	assert.Equal(t, testSchema, s)

	r, err := s.DecodeRecord(testAttestation.Data)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"isPaused": true, "label": "foo"},
		r.Map())
}

func TestSchemaJSON(t *testing.T) {
	s := testSchema
	s.Layout = []FieldType{TypeBool, TypeString, FieldType(4)}
	s.FieldNames = []string{"isPaused", "label", "big"}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"layout":["bool","string","4"]`)

	var got Schema
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, s, got)

	var ft FieldType
	assert.EqualError(t, ft.UnmarshalText([]byte("u256")),
		`invalid field type "u256"`)
}

func TestSchemaMalformed(t *testing.T) {
	valid, err := testSchema.MarshalBinary()
	require.NoError(t, err)

	mismatched := testSchema
	mismatched.FieldNames = []string{"isPaused"}
	mismatchedData, err := mismatched.MarshalBinary()
	require.NoError(t, err)

	// Declares a 10 byte name in a 6 byte field names buffer.
	var w borsh.Writer
	w.WriteByte(SchemaDiscriminator)
	w.WritePublicKey(key(1))
	w.WriteString("kyc")
	w.WriteString("")
	w.WriteVec([]byte{byte(TypeBool)})
	w.WriteVec([]byte{0x0a, 0x00, 0x00, 0x00, 'a', 'b'})
	w.WriteBool(false)
	w.WriteByte(1)
	overrun := w.Bytes()

	wrongDisc := append([]byte{AttestationDiscriminator}, valid[1:]...)

	tests := []struct {
		Name string
		Data []byte
		Err  error
	}{
		{Name: "empty", Data: nil, Err: borsh.ErrBufferUnderrun},
		{Name: "truncated", Data: valid[:len(valid)-1],
			Err: borsh.ErrBufferUnderrun},
		{Name: "field name overrun", Data: overrun,
			Err: borsh.ErrBufferUnderrun},
		{Name: "layout mismatch", Data: mismatchedData,
			Err: ErrLayoutMismatch},
		{Name: "wrong discriminator", Data: wrongDisc},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			var s Schema
			err := s.UnmarshalBinary(test.Data)
			require.Error(t, err)
			var malformed MalformedAccountError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, "schema", malformed.Kind)
			if test.Err != nil {
				assert.True(t, errors.Is(err, test.Err), err.Error())
			}
		})
	}
}

func TestDecodeFieldNames(t *testing.T) {
	names, err := DecodeFieldNames(EncodeFieldNames(
		[]string{"isPaused", "", "label"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"isPaused", "", "label"}, names)

	names, err = DecodeFieldNames(nil)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = DecodeFieldNames([]byte{0x05, 0x00, 0x00, 0x00, 'a'})
	assert.True(t, errors.Is(err, borsh.ErrBufferUnderrun))

	_, err = DecodeFieldNames([]byte{0x01, 0x00})
	assert.True(t, errors.Is(err, borsh.ErrBufferUnderrun))
}

func TestAttestationBinary(t *testing.T) {
	data, err := testAttestation.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 1+32*3+4+len(testAttestation.Data)+32+8+32)

	var a Attestation
	require.NoError(t, a.UnmarshalBinary(data))
	assert.Equal(t, testAttestation, a)

	err = a.UnmarshalBinary(data[:100])
	var malformed MalformedAccountError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "attestation", malformed.Kind)
	assert.True(t, errors.Is(err, borsh.ErrBufferUnderrun))

	schemaData, err := testSchema.MarshalBinary()
	require.NoError(t, err)
	assert.Error(t, a.UnmarshalBinary(schemaData))
}

func TestAttestationExpired(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := testAttestation
	assert.True(t, a.Expired(now))
	assert.False(t, a.Expired(now.Add(-time.Second)))
	a.Expiry = 0
	assert.False(t, a.Expired(now))
}
