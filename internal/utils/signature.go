package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeWebhookSignature returns the hex-encoded HMAC-SHA256 digest of the
// raw request body under the shared gateway secret.
func ComputeWebhookSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhookSignature checks a gateway-provided signature against the
// raw body. The comparison is constant-time; a mismatch of any single byte
// fails verification.
func VerifyWebhookSignature(body []byte, providedSignature, secret string) bool {
	if providedSignature == "" || secret == "" {
		return false
	}
	expected := ComputeWebhookSignature(body, secret)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
