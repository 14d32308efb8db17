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

	"github.com/solid-labs/solid-go/rpc"
)

var txCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Build unsigned Solid program transactions",
		Long: `
Build unsigned Solid program transactions with the latest blockhash from --rpc.

The transaction is printed as base64. Sign it with the payer's key and
broadcast it with "solid-cli send".
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["tx"] = txCmplCmd
	rootCmplCmd.Sub["help"].Sub["tx"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, txCmplCmd.Flags)
	return cmd
}()

var txCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var txParams struct {
	User      PublicKey
	Requester PublicKey
	Master    PublicKey
	Message   string
	Signature string
}

var txRegisterCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "register --user <wallet> USERNAME",
		Short:                 "Build a transaction that registers a username",
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := SolidProgram.RegisterTransaction(
				txParams.User.Key(), args[0])
			if err != nil {
				return err
			}
			return printTransaction(cmd, tx)
		},
	}
	cmd.Flags().Var(&txParams.User, "user", "Wallet registering and paying")
	cmd.MarkFlagRequired("user")
	txCmd.AddCommand(cmd)
	txCmplCmd.Sub["register"] = txRegisterCmplCmd
	rootCmplCmd.Sub["help"].Sub["tx"].Sub["register"] = complete.Command{}
	generateCmplFlags(cmd, txRegisterCmplCmd.Flags)
	return cmd
}()

var txRegisterCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

var txLinkWalletCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "link-wallet --requester <wallet> --master <wallet> " +
			"--message <text> --signature <base58>",
		Short: "Build a transaction that links a wallet to a master wallet",
		Long: `
Build a transaction that links --requester to the user account of --master.

--signature is the base58 signature of --message by --master. It is verified
on chain by the Ed25519 program.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			tx, err := SolidProgram.LinkWalletTransaction(
				txParams.Requester.Key(), txParams.Master.Key(),
				txParams.Message, txParams.Signature)
			if err != nil {
				return err
			}
			return printTransaction(cmd, tx)
		},
	}
	flags := cmd.Flags()
	flags.Var(&txParams.Requester, "requester", "Wallet being linked and paying")
	flags.Var(&txParams.Master, "master", "Master wallet of the user account")
	flags.StringVar(&txParams.Message, "message", "",
		"Message signed by the master wallet")
	flags.StringVar(&txParams.Signature, "signature", "",
		"Base58 signature of --message by --master")
	for _, name := range []string{"requester", "master", "message", "signature"} {
		cmd.MarkFlagRequired(name)
	}
	txCmd.AddCommand(cmd)
	txCmplCmd.Sub["link-wallet"] = txLinkWalletCmplCmd
	rootCmplCmd.Sub["help"].Sub["tx"].Sub["link-wallet"] = complete.Command{}
	generateCmplFlags(cmd, txLinkWalletCmplCmd.Flags)
	return cmd
}()

var txLinkWalletCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

func printTransaction(cmd *cobra.Command, tx *solana.Transaction) error {
	bh, err := rpc.UpdateBlockhash(cmd.Context(), RPCClient, tx)
	if err != nil {
		return err
	}
	log.Debugf("blockhash %v valid until block height %v",
		bh.Hash, bh.LastValidBlockHeight)
	b64, err := rpc.EncodeTransaction(tx)
	if err != nil {
		return err
	}
	fmt.Println(b64)
	return nil
}
