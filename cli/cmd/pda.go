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

	"github.com/posener/complete"
	"github.com/spf13/cobra"
)

var pdaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda",
		Short: "Derive program addresses",
		Long: `
Derive the program addresses of schemas, attestations, user accounts and
identities. No requests are made.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["pda"] = pdaCmplCmd
	rootCmplCmd.Sub["help"].Sub["pda"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, pdaCmplCmd.Flags)
	return cmd
}()

var pdaCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var pdaParams struct {
	Credential PublicKey
	Authority  PublicKey
	Schema     PublicKey
	Nonce      PublicKey
	Name       string
	Version    uint8
}

var pdaSchemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema --credential <address> --name <name> [--version <n>]",
		Short: "Derive the address of a schema",
		Args:  cobra.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			addr, bump, err := SASProgram.FindSchemaPDA(
				pdaParams.Credential.Key(), pdaParams.Name,
				pdaParams.Version)
			if err != nil {
				return err
			}
			fmt.Println(addr, bump)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Var(&pdaParams.Credential, "credential", "Credential address")
	flags.StringVar(&pdaParams.Name, "name", "", "Schema name")
	flags.Uint8Var(&pdaParams.Version, "version", 1, "Schema version")
	cmd.MarkFlagRequired("credential")
	cmd.MarkFlagRequired("name")
	pdaCmd.AddCommand(cmd)
	pdaCmplCmd.Sub["schema"] = pdaSchemaCmplCmd
	rootCmplCmd.Sub["help"].Sub["pda"].Sub["schema"] = complete.Command{}
	generateCmplFlags(cmd, pdaSchemaCmplCmd.Flags)
	return cmd
}()

var pdaSchemaCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

var pdaAttestationCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use: "attestation --credential <address> --authority <address> " +
			"--schema <address> --nonce <address>",
		Short: "Derive the address of an attestation",
		Args:  cobra.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			addr, bump, err := SASProgram.FindAttestationPDA(
				pdaParams.Credential.Key(), pdaParams.Authority.Key(),
				pdaParams.Schema.Key(), pdaParams.Nonce.Key())
			if err != nil {
				return err
			}
			fmt.Println(addr, bump)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Var(&pdaParams.Credential, "credential", "Credential address")
	flags.Var(&pdaParams.Authority, "authority", "Issuing authority address")
	flags.Var(&pdaParams.Schema, "schema", "Schema address")
	flags.Var(&pdaParams.Nonce, "nonce", "Nonce, usually the subject wallet")
	for _, name := range []string{"credential", "authority", "schema", "nonce"} {
		cmd.MarkFlagRequired(name)
	}
	pdaCmd.AddCommand(cmd)
	pdaCmplCmd.Sub["attestation"] = pdaAttestationCmplCmd
	rootCmplCmd.Sub["help"].Sub["pda"].Sub["attestation"] = complete.Command{}
	generateCmplFlags(cmd, pdaAttestationCmplCmd.Flags)
	return cmd
}()

var pdaAttestationCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

var pdaUserCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "user WALLET...",
		Short:                 "Derive the user account address of wallets",
		Args:                  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			wallets, err := parsePublicKeys(args)
			if err != nil {
				return err
			}
			for _, wallet := range wallets {
				addr, bump, err := SolidProgram.UserAccountPDA(wallet)
				if err != nil {
					return err
				}
				fmt.Println(wallet, addr, bump)
			}
			return nil
		},
	}
	pdaCmd.AddCommand(cmd)
	pdaCmplCmd.Sub["user"] = pdaUserCmplCmd
	rootCmplCmd.Sub["help"].Sub["pda"].Sub["user"] = complete.Command{}
	generateCmplFlags(cmd, pdaUserCmplCmd.Flags)
	return cmd
}()

var pdaUserCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

var pdaIdentityCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "identity USERNAME...",
		Short:                 "Derive the identity address of usernames",
		Args:                  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, username := range args {
				addr, bump, err := SolidProgram.IdentityPDA(username)
				if err != nil {
					return err
				}
				fmt.Println(username, addr, bump)
			}
			return nil
		},
	}
	pdaCmd.AddCommand(cmd)
	pdaCmplCmd.Sub["identity"] = pdaIdentityCmplCmd
	rootCmplCmd.Sub["help"].Sub["pda"].Sub["identity"] = complete.Command{}
	generateCmplFlags(cmd, pdaIdentityCmplCmd.Flags)
	return cmd
}()

var pdaIdentityCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}
