package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Provider request headers carrying the webhook signature.
const (
	HeaderSignature = "x-zm-signature"
	HeaderTimestamp = "x-zm-request-timestamp"
)

const signatureVersion = "v0"

// timestampTolerance bounds replay of captured webhook requests.
const timestampTolerance = 5 * time.Minute

// EncryptToken answers the endpoint.url_validation challenge:
// hex(HMAC-SHA256(secret, plainToken)).
func EncryptToken(secret, plainToken string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(plainToken))
	return hex.EncodeToString(mac.Sum(nil))
}

// Sign produces the signature header value for a request body:
// "v0=" + hex(HMAC-SHA256(secret, "v0:timestamp:body")).
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s:%s:%s", signatureVersion, timestamp, body)
	return signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the provider's signature header against the raw
// request body, rejecting stale timestamps.
func VerifySignature(secret, signature, timestamp string, body []byte) bool {
	return verifySignatureAt(secret, signature, timestamp, body, time.Now())
}

func verifySignatureAt(secret, signature, timestamp string, body []byte, now time.Time) bool {
	if secret == "" || signature == "" || timestamp == "" {
		return false
	}
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if d := now.Sub(time.Unix(ts, 0)); d > timestampTolerance || d < -timestampTolerance {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(Sign(secret, timestamp, body)))
}
