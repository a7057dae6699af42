// Package line is the LINE Messaging API transport: webhook signature
// verification, webhook decoding into domain events, and the reply client.
package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the raw webhook body.
const SignatureHeader = "X-Line-Signature"

// ErrInvalidSignature is returned when a webhook body does not match its
// signature header.
var ErrInvalidSignature = errors.New("invalid signature")

// Sign returns the signature LINE would send for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against body in constant time.
func VerifySignature(secret string, body []byte, signature string) error {
	if signature == "" {
		return ErrInvalidSignature
	}
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}
