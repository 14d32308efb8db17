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
	"encoding/json"
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/solid-labs/solid-go/api"
)

var clientCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage the Solid API client application",
		Long: `
Manage the client application identified by --api-key and --app-secret.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["client"] = clientCmplCmd
	rootCmplCmd.Sub["help"].Sub["client"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, clientCmplCmd.Flags)
	return cmd
}()

var clientCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var clientInfoCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Get the client application",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := APIClient.GetClientInfo(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
	clientCmd.AddCommand(cmd)
	clientCmplCmd.Sub["info"] = clientInfoCmplCmd
	rootCmplCmd.Sub["help"].Sub["client"].Sub["info"] = complete.Command{}
	generateCmplFlags(cmd, clientInfoCmplCmd.Flags)
	return cmd
}()

var clientInfoCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}

var clientUpdate JSONOrFile

var clientUpdateCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "update JSON",
		Short:                 "Update the client application",
		Long: `
Update the client application with JSON, given directly or as the path to a
file containing it. Fields that are omitted are left unchanged, for example:

	{"name": "My App", "website": "https://example.com", "categoryId": "defi"}
`[1:],
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			return clientUpdate.Set(args[0])
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update api.ClientUpdate
			if err := json.Unmarshal(clientUpdate, &update); err != nil {
				return fmt.Errorf("invalid update: %w", err)
			}
			info, err := APIClient.UpdateClientInfo(cmd.Context(), update)
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	}
	clientCmd.AddCommand(cmd)
	clientCmplCmd.Sub["update"] = clientUpdateCmplCmd
	rootCmplCmd.Sub["help"].Sub["client"].Sub["update"] = complete.Command{}
	generateCmplFlags(cmd, clientUpdateCmplCmd.Flags)
	return cmd
}()

var clientUpdateCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictFiles("*.json"),
}

var clientCategoriesCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the client application categories",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := APIClient.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Println(c.ID, c.Name)
			}
			return nil
		},
	}
	clientCmd.AddCommand(cmd)
	clientCmplCmd.Sub["categories"] = clientCategoriesCmplCmd
	rootCmplCmd.Sub["help"].Sub["client"].Sub["categories"] = complete.Command{}
	generateCmplFlags(cmd, clientCategoriesCmplCmd.Flags)
	return cmd
}()

var clientCategoriesCmplCmd = complete.Command{Flags: mergeFlags(apiCmplFlags)}
