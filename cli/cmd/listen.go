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

package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/solid-labs/solid-go/program"
	"github.com/solid-labs/solid-go/rpc"
)

var listenCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print user registrations as they happen",
		Long: `
Subscribe to the logs of the Solid program over the WebSocket API at --ws and
print each user registration as a line of JSON until interrupted.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: listen,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["listen"] = listenCmplCmd
	rootCmplCmd.Sub["help"].Sub["listen"] = complete.Command{}
	generateCmplFlags(cmd, listenCmplCmd.Flags)
	return cmd
}()

var listenCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

type registration struct {
	program.UserRegisteredEvent
	Slot      uint64           `json:"slot"`
	Signature solana.Signature `json:"signature"`
}

func listen(cmd *cobra.Command, _ []string) error {
	id := SolidProgram.OnUserRegistered(func(ev program.UserRegisteredEvent,
		slot uint64, sig solana.Signature) {
		if err := printJSON(registration{ev, slot, sig}); err != nil {
			log.Error(err)
		}
	})
	defer SolidProgram.RemoveListeners(id)

	commitment := RPCClient.Commitment
	if commitment == "" {
		commitment = rpc.Confirmed
	}
	sub := program.Subscriber{
		Endpoint:   wsEndpoint,
		Commitment: commitment,
		Program:    SolidProgram,
	}
	log.Infof("Listening for user registrations on %v...", wsEndpoint)
	return sub.Run(cmd.Context())
}
