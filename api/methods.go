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

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gagliardetto/solana-go"
)

// KYCStatus is the progress of a user's KYC session.
type KYCStatus string

const (
	KYCNotStarted  KYCStatus = "NOT_STARTED"
	KYCPending     KYCStatus = "PENDING"
	KYCRunning     KYCStatus = "RUNNING"
	KYCUnderReview KYCStatus = "UNDER_REVIEW"
	KYCCompleted   KYCStatus = "COMPLETED"
	KYCFailed      KYCStatus = "FAILED"
)

// KYCResult is the outcome of a completed KYC session.
type KYCResult string

const (
	KYCApproved KYCResult = "APPROVED"
	KYCDeclined KYCResult = "DECLINED"
	KYCReview   KYCResult = "REVIEW"
	KYCUnknown  KYCResult = "UNKNOWN"
)

// UserAttestation is the KYC state of a wallet. AttestationAddress is nil
// until an attestation has been issued.
type UserAttestation struct {
	WalletAddress      string    `json:"walletAddress"`
	AttestationAddress *string   `json:"attestationAddress"`
	KYCStatus          KYCStatus `json:"kycStatus"`
	KYCResult          KYCResult `json:"kycResult"`
}

// Attestation parses AttestationAddress.
func (u UserAttestation) Attestation() (solana.PublicKey, bool) {
	if u.AttestationAddress == nil {
		return solana.PublicKey{}, false
	}
	pk, err := solana.PublicKeyFromBase58(*u.AttestationAddress)
	return pk, err == nil
}

// GetUserAttestationInfo returns the KYC state of wallet. It does not require
// credentials.
func (c *Client) GetUserAttestationInfo(ctx context.Context,
	wallet solana.PublicKey) (*UserAttestation, error) {
	var res UserAttestation
	if err := c.request(ctx, "get user attestation", http.MethodGet,
		"/sdk/users/"+wallet.String()+"/attestation", nil, false,
		nil, &res, nil); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetKYCURL returns the URL at which wallet can start or resume KYC. If
// redirectURI is not empty the user is sent there when done.
func (c *Client) GetKYCURL(ctx context.Context,
	wallet solana.PublicKey, redirectURI string) (string, error) {
	var query url.Values
	if redirectURI != "" {
		query = url.Values{"redirectUri": {redirectURI}}
	}
	var res struct {
		URL string `json:"url"`
	}
	if err := c.request(ctx, "get KYC URL", http.MethodGet,
		"/sdk/users/"+wallet.String()+"/kyc_url", query, true,
		nil, &res, nil); err != nil {
		return "", err
	}
	return res.URL, nil
}

// ClientCategory classifies integrating applications.
type ClientCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClientInfo describes the application identified by the Client's
// Credentials.
type ClientInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Website     string          `json:"website,omitempty"`
	Category    *ClientCategory `json:"category,omitempty"`
	Schemas     []string        `json:"schemas,omitempty"`
}

// ClientUpdate holds the ClientInfo fields to change. Nil fields are left
// unchanged.
type ClientUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

type envelope struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

var clientInfoErrors = map[int]error{
	http.StatusBadRequest:   ErrInvalidInput,
	http.StatusUnauthorized: ErrInvalidCredentials,
	http.StatusNotFound:     ErrClientNotFound,
	http.StatusConflict:     ErrClientNameExists,
}

// GetClientInfo returns the ClientInfo of the Client's Credentials.
func (c *Client) GetClientInfo(ctx context.Context) (*ClientInfo, error) {
	if c.Credentials == nil {
		return nil, ErrAuthRequired
	}
	var info ClientInfo
	if err := c.request(ctx, "get client info", http.MethodGet,
		"/sdk/client/info", nil, true,
		nil, &envelope{Data: &info}, clientInfoErrors); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateClientInfo applies update and returns the resulting ClientInfo.
func (c *Client) UpdateClientInfo(ctx context.Context,
	update ClientUpdate) (*ClientInfo, error) {
	if c.Credentials == nil {
		return nil, ErrAuthRequired
	}
	var info ClientInfo
	if err := c.request(ctx, "update client info", http.MethodPut,
		"/sdk/client/info", nil, true,
		update, &envelope{Data: &info}, clientInfoErrors); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetCategories returns the available client categories. It does not require
// credentials.
func (c *Client) GetCategories(ctx context.Context) ([]ClientCategory, error) {
	var categories []ClientCategory
	if err := c.request(ctx, "get categories", http.MethodGet,
		"/categories", nil, false,
		nil, &envelope{Data: &categories}, nil); err != nil {
		return nil, err
	}
	return categories, nil
}

// Verification is the result of FetchUserAttestation.
type Verification struct {
	IsVerified         bool
	AttestationAddress solana.PublicKey
}

// FetchUserAttestation reports whether wallet holds an attestation using the
// legacy endpoint. A wallet without an attestation is not an error. Transport
// failures, unsuccessful statuses and malformed responses are returned as
// errors.
func (c *Client) FetchUserAttestation(ctx context.Context,
	wallet solana.PublicKey) (Verification, error) {
	var data struct {
		AttestationAddress *string `json:"attestationAddress"`
	}
	err := c.request(ctx, "fetch user attestation", http.MethodGet,
		"/user/attestation/"+wallet.String(), nil, false,
		nil, &envelope{Data: &data}, nil)
	var statusErr StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return Verification{}, nil
	}
	if err != nil {
		return Verification{}, err
	}
	if data.AttestationAddress == nil || *data.AttestationAddress == "" {
		return Verification{}, nil
	}
	adr, err := solana.PublicKeyFromBase58(*data.AttestationAddress)
	if err != nil {
		return Verification{}, err
	}
	return Verification{IsVerified: true, AttestationAddress: adr}, nil
}
