package cmd

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solid-labs/solid-go/sas"
)

func TestPublicKey(t *testing.T) {
	var pk PublicKey
	require.NoError(t, pk.Set(sas.DefaultProgramID.String()))
	assert.Equal(t, sas.DefaultProgramID, pk.Key())
	assert.Equal(t, sas.DefaultProgramID.String(), pk.String())
	assert.Equal(t, "address", pk.Type())

	assert.Error(t, pk.Set("not an address"))
	assert.Equal(t, sas.DefaultProgramID, pk.Key(), "unchanged on error")
}

func TestParsePublicKeys(t *testing.T) {
	a := solana.SystemProgramID.String()
	b := sas.DefaultProgramID.String()

	keys, err := parsePublicKeys([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{solana.SystemProgramID,
		sas.DefaultProgramID}, keys)

	_, err = parsePublicKeys([]string{a, b, a})
	assert.EqualError(t, err, "duplicate: "+a)
}

func TestEnvelopeOrFile(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})

	var e EnvelopeOrFile
	require.NoError(t, e.Set(b64))
	assert.Equal(t, b64, e.String())
	assert.Empty(t, e.Path)

	path := filepath.Join(t.TempDir(), "tx.b64")
	require.NoError(t, os.WriteFile(path, []byte(b64+"\n"), 0600))
	e = EnvelopeOrFile{}
	require.NoError(t, e.Set(path))
	assert.Equal(t, path, e.String())
	assert.Equal(t, []byte{1, 2, 3}, e.Bytes())

	bad := filepath.Join(t.TempDir(), "bad.b64")
	require.NoError(t, os.WriteFile(bad, []byte("!!"), 0600))
	assert.Error(t, e.Set(bad))
	assert.Error(t, e.Set(filepath.Join(t.TempDir(), "missing.b64")))
}

func TestJSONOrFile(t *testing.T) {
	var js JSONOrFile
	require.NoError(t, js.Set(`{"name":"app"}`))
	assert.Equal(t, `{"name":"app"}`, js.String())

	path := filepath.Join(t.TempDir(), "update.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"website":"x"}`), 0600))
	require.NoError(t, js.Set(path))
	assert.Equal(t, `{"website":"x"}`, js.String())

	notJSON := filepath.Join(t.TempDir(), "update.txt")
	require.NoError(t, os.WriteFile(notJSON, []byte("name"), 0600))
	assert.EqualError(t, js.Set(notJSON),
		`file "`+notJSON+`" does not contain valid JSON`)
}

func TestCommands(t *testing.T) {
	for _, path := range [][]string{
		{"get", "schema"}, {"get", "attestation"}, {"get", "user"},
		{"get", "identity"}, {"pda", "schema"}, {"pda", "attestation"},
		{"pda", "user"}, {"pda", "identity"}, {"send"},
		{"tx", "register"}, {"tx", "link-wallet"},
		{"kyc", "status"}, {"kyc", "url"}, {"kyc", "verified"},
		{"client", "info"}, {"client", "update"}, {"client", "categories"},
		{"listen"}, {"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())

		sub := rootCmplCmd.Sub[path[0]]
		if len(path) > 1 {
			_, ok := sub.Sub[path[1]]
			assert.True(t, ok, path)
		}
		assert.Contains(t, sub.Flags, "--rpc", path)
	}
}
