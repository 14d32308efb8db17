// Package rpc provides a minimal Solana JSON-RPC connection: submitting
// encoded transactions, polling signature statuses, fetching raw account data
// and the latest blockhash.
//
// Methods that accept a context.Context make a single request to the
// configured RPC endpoint. The returned error can be checked with errors.As
// to see if it is a jsonrpc2.Error, indicating that the networking calls were
// successful, but that the RPC method itself returned an error.
//
// The Commitment type orders the three Solana commitment levels so that an
// observed status can be compared against a requested one.
package rpc
