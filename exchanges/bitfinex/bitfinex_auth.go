package bitfinex

import (
	"errors"
	"fmt"

	"github.com/thrasher-corp/bfxrest/common/crypto"
	"github.com/thrasher-corp/bfxrest/encoding/json"
	"github.com/thrasher-corp/bfxrest/exchanges/nonce"
)

// Authentication header names
const (
	HeaderAPIKey    = "X-BFX-APIKEY"
	HeaderPayload   = "X-BFX-PAYLOAD"
	HeaderSignature = "X-BFX-SIGNATURE"
)

// ErrMissingCredentials is returned when a private endpoint is called without
// both an API key and secret
var ErrMissingCredentials = errors.New("missing API key or secret")

// Credentials holds the API key pair used to sign private requests
type Credentials struct {
	Key    string
	Secret string
}

// IsEmpty returns true when either the key or the secret is unset
func (c Credentials) IsEmpty() bool {
	return c.Key == "" || c.Secret == ""
}

// Signer builds signed v1 payloads. Every payload it signs carries a nonce
// strictly greater than the previous one, including under concurrent use.
type Signer struct {
	creds Credentials
	nonce *nonce.Nonce
}

// SignedRequest is the result of signing a single private request
type SignedRequest struct {
	Nonce     nonce.Value
	Payload   string
	Signature string
	Headers   map[string]string
}

// NewSigner returns a Signer for the supplied credentials
func NewSigner(creds Credentials) (*Signer, error) {
	if creds.IsEmpty() {
		return nil, ErrMissingCredentials
	}
	return &Signer{creds: creds, nonce: new(nonce.Nonce)}, nil
}

// Sign stamps a copy of params with the request path and the next nonce, then
// encodes and signs it. params is never modified.
func (s *Signer) Sign(path string, params map[string]any) (*SignedRequest, error) {
	if s == nil || s.creds.IsEmpty() {
		return nil, ErrMissingCredentials
	}

	req := make(map[string]any, len(params)+2)
	for k, v := range params {
		req[k] = v
	}
	n := s.nonce.GetValue()
	req["request"] = bitfinexAPIVersion + path
	req["nonce"] = n.String()

	payload, err := EncodePayload(req)
	if err != nil {
		return nil, err
	}
	sig, err := Signature(payload, s.creds.Secret)
	if err != nil {
		return nil, err
	}

	return &SignedRequest{
		Nonce:     n,
		Payload:   payload,
		Signature: sig,
		Headers: map[string]string{
			HeaderAPIKey:    s.creds.Key,
			HeaderPayload:   payload,
			HeaderSignature: sig,
			"Content-Type":  "application/json",
		},
	}, nil
}

// EncodePayload JSON encodes the payload with sorted keys and no whitespace,
// then base64 encodes the result
func EncodePayload(payload map[string]any) (string, error) {
	j, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("unable to JSON encode request payload: %w", err)
	}
	return crypto.Base64Encode(j), nil
}

// Signature returns the lowercase hex HMAC-SHA384 of payload keyed by secret
func Signature(payload, secret string) (string, error) {
	return crypto.GetHMACHex(crypto.HashSHA512_384, []byte(payload), []byte(secret))
}
