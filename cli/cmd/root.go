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

// Package cmd implements solid-cli.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/solid-labs/solid-go/api"
	_log "github.com/solid-labs/solid-go/log"
	"github.com/solid-labs/solid-go/program"
	"github.com/solid-labs/solid-go/rpc"
	"github.com/solid-labs/solid-go/sas"
)

// Revision is set at build time.
var Revision string

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	// Attempt to run the completion program.
	if Completion.Complete() {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var (
	cfgFile string
	Debug   bool

	RPCClient   = rpc.NewClient(rpc.DevnetRPC)
	APIClient   = api.NewClient("", nil)
	credentials api.Credentials
	wsEndpoint  string

	programID    = PublicKey(program.DefaultProgramID)
	sasProgramID = PublicKey(sas.DefaultProgramID)

	SolidProgram *program.Program
	SASProgram   *sas.Program
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

// initClients sets the same timeout and debug settings for all Clients.
func initClients() {
	_log.SetDebug(Debug)
	RPCClient.DebugRequest = Debug
	APIClient.DebugRequest = Debug
	APIClient.Timeout = RPCClient.Timeout
	APIClient.APIServer = strings.TrimRight(APIClient.APIServer, "/")
	if credentials.APIKey != "" || credentials.AppSecret != "" {
		APIClient.Credentials = &credentials
	}
	SolidProgram = program.New(RPCClient, programID.Key())
	SASProgram = sas.NewProgram(RPCClient, sasProgramID.Key())
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringVarP(&RPCClient.RPCServer, "rpc", "r", rpc.DevnetRPC,
		"scheme://host:port for the Solana JSON-RPC API")
	flags.StringVar(&wsEndpoint, "ws", program.DevnetWS,
		"scheme://host:port for the Solana WebSocket API")
	flags.StringVar(&APIClient.APIServer, "api", api.APIDefault,
		"scheme://host:port for the Solid API")
	flags.Var(&RPCClient.Commitment, "commitment",
		"Commitment for account queries: processed, confirmed or finalized")
	flags.DurationVar(&RPCClient.Timeout, "timeout", 15*time.Second,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false, "Log all requests")
	flags.StringVar(&credentials.APIKey, "api-key", "",
		"Solid API key, required by the client commands")
	flags.StringVar(&credentials.AppSecret, "app-secret", "",
		"Solid API app secret, required by the client commands")
	flags.Var(&programID, "program", "Solid program ID")
	flags.Var(&sasProgramID, "sas-program",
		"Solana Attestation Service program ID")
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solid-cli",
		Short: "Solid identity and attestation CLI",
		Long: `solid-cli explores and interacts with the Solid identity program and the
Solana Attestation Service.

solid-cli can decode schemas and attestations, look up registered users,
derive program addresses, build register and link wallet transactions, and
broadcast signed transactions until they are confirmed.

API Settings

Use --rpc and --ws to set the Solana JSON-RPC and WebSocket endpoints, and
--api to set the Solid API endpoint. Settings may also be given as SOLID_*
environment variables, in a .env file in the working directory, or in
~/.solid-cli.yaml.`,
		Args:          cobra.ExactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       validateRunCompletionFlags,
		Run:           runCompletion,
	}

	cmd.Flags().AddGoFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.solid-cli.yaml)")
	flags.AddFlagSet(apiFlags)

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":       complete.PredictNothing,
	"--config":     complete.PredictFiles("*.yaml"),
	"--commitment": PredictCommitment,
}

func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	// Ensure that the install completion flags are not ever used with any
	// other flags.
	flags := cmd.Flags()
	installCompletionMode := false
	otherFlags := false
	flags.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "installcompletion", "uninstallcompletion", "y":
			installCompletionMode = true
		default:
			otherFlags = true
		}
	})
	if installCompletionMode && otherFlags {
		return fmt.Errorf("--installcompletion and --uninstallcompletion " +
			"may not be used with any other flags")
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) {
	// Complete() returns true if it attempts to install completion,
	// otherwise just output the help page.
	if !Completion.Complete() {
		cmd.Help()
	}
}

// initConfig reads in the .env file, the config file and SOLID_* environment
// variables, and applies them to any flags not set on the command line.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf(".env: %v", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".solid-cli"
		// (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".solid-cli")
	}

	viper.SetEnvPrefix("SOLID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %v", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var errs []string
	rootCmd.PersistentFlags().VisitAll(func(flg *flag.Flag) {
		if flg.Changed || flg.Name == "config" || !viper.IsSet(flg.Name) {
			return
		}
		if err := flg.Value.Set(viper.GetString(flg.Name)); err != nil {
			errs = append(errs, fmt.Sprintf("%v: %v", flg.Name, err))
		}
	})
	if len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "invalid configuration:",
			strings.Join(errs, ", "))
		os.Exit(1)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var log = _log.New("cli")
