package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader is the header LINE signs webhook deliveries with.
const SignatureHeader = "X-Line-Signature"

// ValidateSignature checks a base64 HMAC-SHA256 signature against the raw
// request body. The digest is computed over the exact received bytes, never
// over a re-serialization of the parsed payload. Fails closed on an empty
// secret or an undecodable header.
func ValidateSignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
