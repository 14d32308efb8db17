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
	"golang.org/x/sync/errgroup"

	"github.com/solid-labs/solid-go/program"
	"github.com/solid-labs/solid-go/sas"
)

// getCmd represents the get command
var getCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get schemas, attestations and registered users",
		Long: `
Get schemas, attestations and registered users.

Accounts are fetched from the Solana JSON-RPC API at --rpc using the
--commitment level.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["get"] = getCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, getCmplCmd.Flags)
	return cmd
}()

var getCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var getSchemaCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "schema ADDRESS",
		Short:                 "Get a schema",
		Long: `
Get the schema at ADDRESS and print it as JSON, including its field layout and
field names.
`[1:],
		Args: cobra.ExactArgs(1),
		RunE: getSchema,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["schema"] = getSchemaCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["schema"] = complete.Command{}
	generateCmplFlags(cmd, getSchemaCmplCmd.Flags)
	return cmd
}()

var getSchemaCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

func getSchema(cmd *cobra.Command, args []string) error {
	keys, err := parsePublicKeys(args)
	if err != nil {
		return err
	}
	schema, err := SASProgram.FetchSchema(cmd.Context(), keys[0])
	if err != nil {
		return err
	}
	return printJSON(schema)
}

var attestationSchema PublicKey

var getAttestationCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "attestation [--schema <address>] ADDRESS",
		Short:                 "Get and decode an attestation",
		Long: `
Get the attestation at ADDRESS and decode its payload using the schema it
references.

If --schema is given, the attestation and the schema are fetched concurrently
and the attestation must reference that schema.
`[1:],
		Args: cobra.ExactArgs(1),
		RunE: getAttestation,
	}
	cmd.Flags().Var(&attestationSchema, "schema",
		"Address of the schema the attestation must reference")
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["attestation"] = getAttestationCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["attestation"] = complete.Command{}
	generateCmplFlags(cmd, getAttestationCmplCmd.Flags)
	return cmd
}()

var getAttestationCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

func getAttestation(cmd *cobra.Command, args []string) error {
	keys, err := parsePublicKeys(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	var record *sas.AttestationRecord
	if cmd.Flags().Changed("schema") {
		record, err = SASProgram.FetchRecord(ctx,
			attestationSchema.Key(), keys[0])
	} else {
		record, err = SASProgram.FetchAttestationRecord(ctx, keys[0])
	}
	if err != nil {
		return err
	}
	return printJSON(record)
}

var getUserCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "user WALLET...",
		Aliases:               []string{"users"},
		Short:                 "Get the user accounts of wallets",
		Long: `
Get the Solid user account of each WALLET. Wallets that have not registered
are reported as not registered.
`[1:],
		Args: cobra.MinimumNArgs(1),
		RunE: getUser,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["user"] = getUserCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["user"] = complete.Command{}
	generateCmplFlags(cmd, getUserCmplCmd.Flags)
	return cmd
}()

var getUserCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

func getUser(cmd *cobra.Command, args []string) error {
	wallets, err := parsePublicKeys(args)
	if err != nil {
		return err
	}
	users := make([]*program.UserAccount, len(wallets))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, wallet := range wallets {
		i, wallet := i, wallet
		g.Go(func() (err error) {
			users[i], err = SolidProgram.GetUserAccount(ctx, wallet)
			if err != nil {
				return fmt.Errorf("%v: %w", wallet, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, user := range users {
		if user == nil {
			fmt.Println(wallets[i], "not registered")
			continue
		}
		fmt.Println(wallets[i], user.Username)
		fmt.Println("  master:", user.Master)
		for _, linked := range user.LinkingWallets {
			fmt.Println("  linked:", linked)
		}
	}
	return nil
}

var getIdentityCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "identity USERNAME",
		Short:                 "Get the owner of a username",
		Long: `
Get the master wallet of the identity that reserves USERNAME.
`[1:],
		Args: cobra.ExactArgs(1),
		RunE: getIdentity,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["identity"] = getIdentityCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["identity"] = complete.Command{}
	generateCmplFlags(cmd, getIdentityCmplCmd.Flags)
	return cmd
}()

var getIdentityCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

func getIdentity(cmd *cobra.Command, args []string) error {
	id, err := SolidProgram.GetIdentity(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if id == nil {
		fmt.Println(args[0], "available")
		return nil
	}
	fmt.Println(args[0], id.Master)
	return nil
}
