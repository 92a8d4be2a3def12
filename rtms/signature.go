package rtms

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// StreamSignature computes the HMAC-SHA256 signature both handshakes carry:
// hex(HMAC(clientSecret, "clientID,meetingUUID,streamID")).
func StreamSignature(clientID, meetingUUID, streamID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(clientID + "," + meetingUUID + "," + streamID))
	return hex.EncodeToString(mac.Sum(nil))
}
