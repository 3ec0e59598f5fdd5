package callback

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// SignatureHeader carries the hex-encoded HMAC-SHA256 of the request body.
const SignatureHeader = "X-Kling-Signature"

// Sign computes the signature for a callback body. Exposed for tests and
// for servers that relay callbacks onwards.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature compares the supplied signature in constant time.
func verifySignature(body []byte, signature, secret string) error {
	if signature == "" {
		return errors.New("missing signature header")
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	if !hmac.Equal([]byte(Sign(body, secret)), []byte(signature)) {
		return errors.New("invalid signature")
	}
	return nil
}
