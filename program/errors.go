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

package program

import (
	"errors"
	"fmt"

	"github.com/solid-labs/solid-go/rpc"
)

// MaxUsernameLen is the longest username, in bytes, accepted by Register.
const MaxUsernameLen = 32

// ProgramError is a custom error returned by the Solid program.
type ProgramError struct {
	Code uint32
	Name string
	Msg  string
}

func (err ProgramError) Error() string {
	return fmt.Sprintf("%v (%v): %v", err.Name, err.Code, err.Msg)
}

// Custom errors returned by the program.
var (
	ErrUsernameTooLong = ProgramError{6000, "usernameTooLong",
		"The username is too long."}
	ErrLinkingWalletNotMatchWithSignerKey = ProgramError{6001,
		"linkingWalletNotMatchWithSignerKey",
		"Linking wallet does not match with signer key"}
	ErrMasterKeyDoesNotMatch = ProgramError{6002, "masterKeyDoesNotMatch",
		"Master key does not match with wallet from signature"}
	ErrMustBeSignatureVerificationInstruction = ProgramError{6003,
		"mustBeSignatureVerificationInstruction",
		"Previous instruction must be ed25519 signature verification"}
	ErrWalletAlreadyLinked = ProgramError{6004, "walletAlreadyLinked",
		"This wallet is already linked to the account"}
	ErrSignatureDataInvalid = ProgramError{6005, "signatureDataInvalid",
		"Invalid signature data."}
)

var programErrors = []ProgramError{
	ErrUsernameTooLong,
	ErrLinkingWalletNotMatchWithSignerKey,
	ErrMasterKeyDoesNotMatch,
	ErrMustBeSignatureVerificationInstruction,
	ErrWalletAlreadyLinked,
	ErrSignatureDataInvalid,
}

// ErrorByCode returns the ProgramError for code.
func ErrorByCode(code uint32) (ProgramError, bool) {
	for _, err := range programErrors {
		if err.Code == code {
			return err, true
		}
	}
	return ProgramError{}, false
}

// ParseError returns the ProgramError carried by err, if err is or wraps an
// *rpc.TransactionError with a custom instruction error known to the
// program.
func ParseError(err error) (ProgramError, bool) {
	var txErr *rpc.TransactionError
	if !errors.As(err, &txErr) {
		return ProgramError{}, false
	}
	_, code, ok := txErr.InstructionError()
	if !ok {
		return ProgramError{}, false
	}
	return ErrorByCode(code)
}

func validateUsername(username string) error {
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("%w: %v bytes, max %v",
			ErrUsernameTooLong, len(username), MaxUsernameLen)
	}
	return nil
}
