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
	goflag "flag"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/solid-labs/solid-go/rpc"
)

// Completion runs the CLI completion, or installs it when
// --installcompletion or --uninstallcompletion are given.
var Completion = func() *complete.Complete {
	cmplt := complete.New("solid-cli", rootCmplCmd)
	cmplt.CLI.InstallName = "installcompletion"
	cmplt.CLI.UninstallName = "uninstallcompletion"
	return cmplt
}()

var installCompletionFlags = func() *goflag.FlagSet {
	flags := goflag.NewFlagSet("", goflag.ContinueOnError)
	Completion.AddFlags(flags)
	return flags
}()

// PredictCommitment predicts the commitment levels.
var PredictCommitment = complete.PredictSet(
	string(rpc.Processed), string(rpc.Confirmed), string(rpc.Finalized))

// generateCmplFlags adds completion for all cmd.Flags() not already present in
// cmplFlags.
func generateCmplFlags(cmd *cobra.Command, cmplFlags complete.Flags) {
	// The following call to cmd.LocalFlags() is required to populate
	// cmd.Flags() with all persistent flags from the parent commands.
	// https://github.com/spf13/cobra/issues/412
	cmd.LocalFlags()
	cmd.Flags().VisitAll(func(flg *flag.Flag) {
		name := "--" + flg.Name
		if _, ok := cmplFlags[name]; ok {
			return
		}
		var predict complete.Predictor = complete.PredictAnything
		switch flg.Value.Type() {
		case "bool":
			predict = complete.PredictNothing
		case "commitment":
			predict = PredictCommitment
		}
		cmplFlags[name] = predict
		if flg.Shorthand != "" {
			cmplFlags["-"+flg.Shorthand] = predict
		}
	})
}

// mergeFlags returns a new complete.Flags that merges all flgs.
func mergeFlags(flgs ...complete.Flags) complete.Flags {
	var size int
	for _, flg := range flgs {
		size += len(flg)
	}
	f := make(complete.Flags, size)
	for _, flg := range flgs {
		for k, v := range flg {
			f[k] = v
		}
	}
	return f
}
