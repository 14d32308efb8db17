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
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/solid-labs/solid-go/broadcast"
)

var (
	sendOpts = broadcast.DefaultOptions()
	sendTx   EnvelopeOrFile
)

var sendCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "send [--interval <duration>] [--send-timeout <duration>] TX",
		Short:                 "Broadcast a signed transaction until it is confirmed",
		Long: `
Broadcast the signed transaction TX, given as base64 or as the path to a file
containing base64, and rebroadcast it every --interval until it reaches the
--commitment level, fails on chain, or --send-timeout elapses.

The transaction signature is printed as soon as it is known.
`[1:],
		Args: sendArgs,
		RunE: send,
	}
	flags := cmd.Flags()
	flags.DurationVar(&sendOpts.Interval, "interval", sendOpts.Interval,
		"Wait between status polls and rebroadcasts")
	flags.DurationVar(&sendOpts.Timeout, "send-timeout", sendOpts.Timeout,
		"Give up waiting for the commitment level after this long")
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["send"] = sendCmplCmd
	rootCmplCmd.Sub["help"].Sub["send"] = complete.Command{}
	generateCmplFlags(cmd, sendCmplCmd.Flags)
	return cmd
}()

var sendCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictFiles("*"),
}

func sendArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return sendTx.Set(args[0])
}

func send(cmd *cobra.Command, _ []string) error {
	if RPCClient.Commitment != "" {
		sendOpts.Commitment = RPCClient.Commitment
	}
	sig, err := broadcast.Send(cmd.Context(), RPCClient, sendTx.Envelope,
		broadcast.WithOptions(sendOpts))
	if err != nil {
		if sig != (solana.Signature{}) {
			fmt.Println(sig)
		}
		return err
	}
	fmt.Println(sig)
	return nil
}
