// Package rtms implements the client side of the provider's Real-Time Media
// Streaming protocol: a signaling WebSocket that hands out the media server
// URL, and a media WebSocket that delivers transcript data.
package rtms

// Wire message types.
const (
	MsgTypeSignalingHandshakeReq  = 1
	MsgTypeSignalingHandshakeResp = 2
	MsgTypeDataHandshakeReq       = 3
	MsgTypeDataHandshakeResp      = 4
	MsgTypeStreamStateUpdate      = 7
	MsgTypeKeepAliveReq           = 12
	MsgTypeKeepAliveResp          = 13
	MsgTypeMediaDataTranscript    = 17
)

const (
	// MediaTypeTranscript selects the transcript stream in the data handshake.
	MediaTypeTranscript = 8
	// StreamStateTerminated is the state value ending a session.
	StreamStateTerminated = 4

	protocolVersion = 1
)

type signalingHandshakeReq struct {
	MsgType         int    `json:"msg_type"`
	ProtocolVersion int    `json:"protocol_version"`
	MeetingUUID     string `json:"meeting_uuid"`
	RTMSStreamID    string `json:"rtms_stream_id"`
	Sequence        int64  `json:"sequence"`
	Signature       string `json:"signature"`
}

type dataHandshakeReq struct {
	MsgType           int    `json:"msg_type"`
	ProtocolVersion   int    `json:"protocol_version"`
	MeetingUUID       string `json:"meeting_uuid"`
	RTMSStreamID      string `json:"rtms_stream_id"`
	Signature         string `json:"signature"`
	MediaType         int    `json:"media_type"`
	PayloadEncryption bool   `json:"payload_encryption"`
}

type keepAliveResp struct {
	MsgType   int   `json:"msg_type"`
	Timestamp int64 `json:"timestamp"`
}

type streamStateUpdate struct {
	MsgType      int    `json:"msg_type"`
	RTMSStreamID string `json:"rtms_stream_id"`
}

// serverMessage is the superset of fields across inbound messages; msg_type
// decides which of them are meaningful.
type serverMessage struct {
	MsgType     int   `json:"msg_type"`
	StatusCode  int   `json:"status_code"`
	Timestamp   int64 `json:"timestamp"`
	State       int   `json:"state"`
	MediaServer struct {
		ServerURLs map[string]string `json:"server_urls"`
	} `json:"media_server"`
	Content struct {
		UserName  string `json:"user_name"`
		Data      string `json:"data"`
		Timestamp int64  `json:"timestamp"`
	} `json:"content"`
}

// mediaURL picks the transcript media endpoint, falling back to the
// catch-all one.
func (m *serverMessage) mediaURL() string {
	if u := m.MediaServer.ServerURLs["transcript"]; u != "" {
		return u
	}
	return m.MediaServer.ServerURLs["all"]
}
