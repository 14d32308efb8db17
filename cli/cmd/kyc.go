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

var kycCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Query the KYC state of wallets",
		Long: `
Query the KYC state of wallets from the Solid API at --api.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["kyc"] = kycCmplCmd
	rootCmplCmd.Sub["help"].Sub["kyc"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, kycCmplCmd.Flags)
	return cmd
}()

var kycCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var kycStatusCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "status WALLET...",
		Short:                 "Get the KYC status and attestation of wallets",
		Args:                  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallets, err := parsePublicKeys(args)
			if err != nil {
				return err
			}
			for _, wallet := range wallets {
				info, err := APIClient.GetUserAttestationInfo(
					cmd.Context(), wallet)
				if err != nil {
					return fmt.Errorf("%v: %w", wallet, err)
				}
				if err := printJSON(info); err != nil {
					return err
				}
			}
			return nil
		},
	}
	kycCmd.AddCommand(cmd)
	kycCmplCmd.Sub["status"] = kycStatusCmplCmd
	rootCmplCmd.Sub["help"].Sub["kyc"].Sub["status"] = complete.Command{}
	generateCmplFlags(cmd, kycStatusCmplCmd.Flags)
	return cmd
}()

var kycStatusCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

var kycRedirectURI string

var kycURLCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "url [--redirect-uri <uri>] WALLET",
		Short:                 "Get the URL at which a wallet starts KYC",
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallets, err := parsePublicKeys(args)
			if err != nil {
				return err
			}
			url, err := APIClient.GetKYCURL(cmd.Context(),
				wallets[0], kycRedirectURI)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}
	cmd.Flags().StringVar(&kycRedirectURI, "redirect-uri", "",
		"Where to send the user once KYC is done")
	kycCmd.AddCommand(cmd)
	kycCmplCmd.Sub["url"] = kycURLCmplCmd
	rootCmplCmd.Sub["help"].Sub["kyc"].Sub["url"] = complete.Command{}
	generateCmplFlags(cmd, kycURLCmplCmd.Flags)
	return cmd
}()

var kycURLCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}

var kycVerifiedCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "verified WALLET...",
		Short:                 "Check whether wallets hold an attestation",
		Long: `
Check whether each WALLET holds an attestation using the legacy endpoint of
the Solid API.
`[1:],
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallets, err := parsePublicKeys(args)
			if err != nil {
				return err
			}
			for _, wallet := range wallets {
				v, err := APIClient.FetchUserAttestation(
					cmd.Context(), wallet)
				if err != nil {
					return fmt.Errorf("%v: %w", wallet, err)
				}
				if !v.IsVerified {
					fmt.Println(wallet, "not verified")
					continue
				}
				fmt.Println(wallet, v.AttestationAddress)
			}
			return nil
		},
	}
	kycCmd.AddCommand(cmd)
	kycCmplCmd.Sub["verified"] = kycVerifiedCmplCmd
	rootCmplCmd.Sub["help"].Sub["kyc"].Sub["verified"] = complete.Command{}
	generateCmplFlags(cmd, kycVerifiedCmplCmd.Flags)
	return cmd
}()

var kycVerifiedCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Args:  complete.PredictAnything,
}
