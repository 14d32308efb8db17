package rpc_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/solid-labs/solid-go/rpc"
)

type request struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers every request with the result or error returned by
// handle.
func fakeNode(t *testing.T,
	handle func(req request) (result interface{}, rpcErr *jrpc.Error)) *Client {

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			result, rpcErr := handle(req)
			res := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
			if rpcErr != nil {
				res["error"] = rpcErr
			} else {
				res["result"] = result
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(res)
		}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

var testSig = func() (sig solana.Signature) {
	for i := range sig {
		sig[i] = byte(i)
	}
	return
}()

func TestSendEncodedTransaction(t *testing.T) {
	c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
		assert.Equal(t, "sendTransaction", req.Method)
		require.Len(t, req.Params, 2)
		var tx string
		require.NoError(t, json.Unmarshal(req.Params[0], &tx))
		assert.Equal(t, "AQID", tx)
		var cfg map[string]interface{}
		require.NoError(t, json.Unmarshal(req.Params[1], &cfg))
		assert.Equal(t, true, cfg["skipPreflight"])
		assert.Equal(t, "base64", cfg["encoding"])
		return testSig.String(), nil
	})
	sig, err := c.SendEncodedTransaction(context.Background(), "AQID",
		SendOptions{SkipPreflight: true})
	require.NoError(t, err)
	assert.Equal(t, testSig, sig)
}

func TestSendEncodedTransactionRPCError(t *testing.T) {
	c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
		return nil, &jrpc.Error{Code: -32002, Message: "Transaction simulation failed"}
	})
	_, err := c.SendEncodedTransaction(context.Background(), "AQID",
		SendOptions{SkipPreflight: true})
	var rpcErr jrpc.Error
	require.True(t, errors.As(err, &rpcErr), "%v", err)
	assert.EqualValues(t, -32002, rpcErr.Code)
}

var signatureStatusTests = []struct {
	Name   string
	Result string
	Status *SignatureStatus
	Failed bool
}{{
	Name:   "not found",
	Result: `{"context":{"slot":10},"value":[null]}`,
}, {
	Name:   "confirmed",
	Result: `{"context":{"slot":10},"value":[{"slot":9,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}]}`,
	Status: &SignatureStatus{Slot: 9,
		Confirmations:      func() *uint64 { c := uint64(1); return &c }(),
		ConfirmationStatus: Confirmed},
}, {
	Name:   "failed",
	Result: `{"context":{"slot":10},"value":[{"slot":9,"confirmations":null,"err":{"InstructionError":[0,{"Custom":6000}]},"confirmationStatus":"finalized"}]}`,
	Failed: true,
}}

func TestGetSignatureStatus(t *testing.T) {
	for _, test := range signatureStatusTests {
		t.Run(test.Name, func(t *testing.T) {
			c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
				assert.Equal(t, "getSignatureStatuses", req.Method)
				var cfg map[string]bool
				require.NoError(t, json.Unmarshal(req.Params[1], &cfg))
				assert.False(t, cfg["searchTransactionHistory"])
				return json.RawMessage(test.Result), nil
			})
			status, err := c.GetSignatureStatus(context.Background(),
				testSig, false)
			require.NoError(t, err)
			if test.Failed {
				require.NotNil(t, status)
				assert.True(t, status.Failed())
				idx, code, ok := status.Err.InstructionError()
				assert.True(t, ok)
				assert.Equal(t, 0, idx)
				assert.Equal(t, uint32(6000), code)
				return
			}
			assert.Equal(t, test.Status, status)
		})
	}
}

func TestTransactionErrorString(t *testing.T) {
	var e TransactionError
	require.NoError(t, json.Unmarshal([]byte(`"AccountNotFound"`), &e))
	assert.EqualError(t, e, "AccountNotFound")
	_, _, ok := e.InstructionError()
	assert.False(t, ok)
}

func TestGetAccountInfo(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58(
		"22zoJMtdu4tQc2PzL74ZUT7FrwgB1Udec8DdW4yw4BdG")
	data := []byte{1, 2, 3, 4}
	c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
		var adr string
		require.NoError(t, json.Unmarshal(req.Params[0], &adr))
		if adr != owner.String() {
			return json.RawMessage(`{"context":{"slot":1},"value":null}`), nil
		}
		return map[string]interface{}{
			"context": map[string]int{"slot": 1},
			"value": map[string]interface{}{
				"data": []string{
					base64.StdEncoding.EncodeToString(data), "base64"},
				"owner":      owner.String(),
				"lamports":   1000,
				"executable": false,
				"rentEpoch":  uint64(18446744073709551615),
			},
		}, nil
	})

	info, err := c.GetAccountInfo(context.Background(), owner)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, AccountData(data), info.Data)
	assert.Equal(t, owner, info.Owner)
	assert.Equal(t, uint64(1000), info.Lamports)

	info, err = c.GetAccountInfo(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestAccountDataUnmarshalJSON(t *testing.T) {
	var d AccountData
	assert.Error(t, json.Unmarshal([]byte(`["AQID","base58"]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`["AQID"]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &d))
	require.NoError(t, json.Unmarshal([]byte(`["AQID","base64"]`), &d))
	assert.Equal(t, AccountData{1, 2, 3}, d)
}

func TestGetLatestBlockhash(t *testing.T) {
	var hash solana.Hash
	hash[0] = 1
	c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
		assert.Equal(t, "getLatestBlockhash", req.Method)
		return map[string]interface{}{
			"context": map[string]int{"slot": 1},
			"value": map[string]interface{}{
				"blockhash":            hash.String(),
				"lastValidBlockHeight": 150,
			},
		}, nil
	})
	c.Commitment = Finalized
	bh, err := c.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, bh.Hash)
	assert.Equal(t, uint64(150), bh.LastValidBlockHeight)
}

func TestUpdateBlockhash(t *testing.T) {
	var hash solana.Hash
	hash[31] = 7
	c := fakeNode(t, func(req request) (interface{}, *jrpc.Error) {
		return map[string]interface{}{
			"context": map[string]int{"slot": 1},
			"value": map[string]interface{}{
				"blockhash":            hash.String(),
				"lastValidBlockHeight": 99,
			},
		}, nil
	})

	payer := solana.SystemProgramID
	payer[31] = 1
	var programID solana.PublicKey
	programID[0] = 9
	ix := solana.NewInstruction(programID,
		solana.AccountMetaSlice{solana.NewAccountMeta(payer, true, true)},
		[]byte("memo"))
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{},
		solana.TransactionPayer(payer))
	require.NoError(t, err)

	bh, err := UpdateBlockhash(context.Background(), c, tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), bh.LastValidBlockHeight)
	assert.Equal(t, hash, tx.Message.RecentBlockhash)

	encoded, err := EncodeTransaction(tx)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Greater(t, len(raw), 1+solana.SignatureLength)
	assert.Equal(t, byte(1), raw[0], "one signature slot")
	assert.Equal(t, make([]byte, solana.SignatureLength),
		raw[1:1+solana.SignatureLength], "unsigned")
	assert.Empty(t, tx.Signatures, "tx is not modified")
}
