package rtms

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/ojusave/rtms-perplexity/types"
)

const dialTimeout = 10 * time.Second

// ChunkHandler receives transcript chunks from the media stream. Calls are
// made synchronously from the media read loop, one chunk at a time.
type ChunkHandler interface {
	HandleChunk(ctx context.Context, chunk types.TranscriptChunk)
}

// Credentials identify this client to the streaming provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Policy bounds the reconnect behavior of both WebSocket legs. After
// ReconnectAttempts consecutive failures the session fails terminally.
type Policy struct {
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	InsecureTLS       bool
}

// jsonWriter is the slice of a WebSocket connection the media loop needs to
// notify the signaling side.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// wsConn serializes writes to a gorilla connection, which does not allow
// concurrent writers.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Session drives the signaling and media connections for one meeting.
type Session struct {
	ID          string
	MeetingUUID string
	StreamID    string
	ServerURL   string

	creds   Credentials
	policy  Policy
	handler ChunkHandler

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession prepares a session; Run starts it.
func NewSession(meetingUUID, streamID, serverURL string, creds Credentials, policy Policy, handler ChunkHandler) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:          uuid.NewString(),
		MeetingUUID: meetingUUID,
		StreamID:    streamID,
		ServerURL:   serverURL,
		creds:       creds,
		policy:      policy,
		handler:     handler,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// Stop ends the session; in-flight connections are closed.
func (s *Session) Stop() {
	s.cancel()
}

// Done is closed when the session has fully terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run connects the signaling leg under the bounded reconnect policy and
// blocks until the session terminates. A clean provider-side termination or
// an explicit Stop ends the session without retrying.
func (s *Session) Run() {
	defer close(s.done)
	defer s.cancel()

	attempts := s.policy.ReconnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.runSignaling()
		if err == nil || s.ctx.Err() != nil {
			return
		}
		log.Printf("rtms[%s]: signaling attempt %d/%d failed: %v", s.MeetingUUID, attempt, attempts, err)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(s.policy.ReconnectDelay):
		case <-s.ctx.Done():
			return
		}
	}
	log.Printf("rtms[%s]: giving up on signaling after %d attempts", s.MeetingUUID, attempts)
}

// runSignaling dials the signaling server, performs the handshake and
// processes messages until the stream terminates or the connection drops.
func (s *Session) runSignaling() error {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, resp, err := dialer.Dial(s.ServerURL, http.Header{})
	if err != nil {
		if resp != nil {
			return errors.Wrapf(err, "dial signaling (status %d)", resp.StatusCode)
		}
		return errors.Wrap(err, "dial signaling")
	}
	sig := &wsConn{conn: conn}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	handshake := signalingHandshakeReq{
		MsgType:         MsgTypeSignalingHandshakeReq,
		ProtocolVersion: protocolVersion,
		MeetingUUID:     s.MeetingUUID,
		RTMSStreamID:    s.StreamID,
		Sequence:        time.Now().UnixNano(),
		Signature:       StreamSignature(s.creds.ClientID, s.MeetingUUID, s.StreamID, s.creds.ClientSecret),
	}
	if err := sig.WriteJSON(handshake); err != nil {
		return errors.Wrap(err, "send signaling handshake")
	}
	log.Printf("rtms[%s]: sent signaling handshake", s.MeetingUUID)

	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if s.ctx.Err() != nil || isNormalClose(err) {
				return nil
			}
			return errors.Wrap(err, "signaling read")
		}

		switch msg.MsgType {
		case MsgTypeSignalingHandshakeResp:
			if msg.StatusCode != 0 {
				return errors.Errorf("signaling handshake rejected: status %d", msg.StatusCode)
			}
			mediaURL := msg.mediaURL()
			if mediaURL == "" {
				return errors.New("signaling handshake response carried no media url")
			}
			log.Printf("rtms[%s]: signaling handshake accepted, media at %s", s.MeetingUUID, mediaURL)
			go s.runMediaWithRetry(mediaURL, sig)

		case MsgTypeKeepAliveReq:
			if err := sig.WriteJSON(keepAliveResp{MsgType: MsgTypeKeepAliveResp, Timestamp: msg.Timestamp}); err != nil {
				return errors.Wrap(err, "signaling keep-alive")
			}

		case MsgTypeStreamStateUpdate:
			if msg.State == StreamStateTerminated {
				log.Printf("rtms[%s]: stream terminated by provider", s.MeetingUUID)
				return nil
			}
		}
	}
}

// runMediaWithRetry applies the bounded reconnect policy to the media leg.
// Exhausting it is a terminal failure for the whole session.
func (s *Session) runMediaWithRetry(mediaURL string, sig jsonWriter) {
	attempts := s.policy.ReconnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err := s.runMedia(mediaURL, sig)
		if err == nil || s.ctx.Err() != nil {
			return
		}
		log.Printf("rtms[%s]: media attempt %d/%d failed: %v", s.MeetingUUID, attempt, attempts, err)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(s.policy.ReconnectDelay):
		case <-s.ctx.Done():
			return
		}
	}
	log.Printf("rtms[%s]: giving up on media after %d attempts, ending session", s.MeetingUUID, attempts)
	s.cancel()
}

// runMedia dials the media server, performs the data handshake and forwards
// transcript payloads to the handler.
func (s *Session) runMedia(mediaURL string, sig jsonWriter) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: dialTimeout,
		// The provider's media hosts present certificates that do not match
		// their addressable names.
		TLSClientConfig: &tls.Config{InsecureSkipVerify: s.policy.InsecureTLS},
	}
	conn, resp, err := dialer.Dial(mediaURL, http.Header{})
	if err != nil {
		if resp != nil {
			return errors.Wrapf(err, "dial media (status %d)", resp.StatusCode)
		}
		return errors.Wrap(err, "dial media")
	}
	media := &wsConn{conn: conn}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	handshake := dataHandshakeReq{
		MsgType:         MsgTypeDataHandshakeReq,
		ProtocolVersion: protocolVersion,
		MeetingUUID:     s.MeetingUUID,
		RTMSStreamID:    s.StreamID,
		Signature:       StreamSignature(s.creds.ClientID, s.MeetingUUID, s.StreamID, s.creds.ClientSecret),
		MediaType:       MediaTypeTranscript,
	}
	if err := media.WriteJSON(handshake); err != nil {
		return errors.Wrap(err, "send media handshake")
	}
	log.Printf("rtms[%s]: sent media handshake", s.MeetingUUID)

	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if s.ctx.Err() != nil || isNormalClose(err) {
				return nil
			}
			return errors.Wrap(err, "media read")
		}

		switch msg.MsgType {
		case MsgTypeDataHandshakeResp:
			if msg.StatusCode != 0 {
				return errors.Errorf("media handshake rejected: status %d", msg.StatusCode)
			}
			// Tell the provider over signaling that the stream is live.
			if err := sig.WriteJSON(streamStateUpdate{MsgType: MsgTypeStreamStateUpdate, RTMSStreamID: s.StreamID}); err != nil {
				return errors.Wrap(err, "send stream state update")
			}
			log.Printf("rtms[%s]: media handshake accepted", s.MeetingUUID)

		case MsgTypeKeepAliveReq:
			if err := media.WriteJSON(keepAliveResp{MsgType: MsgTypeKeepAliveResp, Timestamp: msg.Timestamp}); err != nil {
				return errors.Wrap(err, "media keep-alive")
			}

		case MsgTypeMediaDataTranscript:
			if msg.Content.Data == "" {
				continue
			}
			chunk := types.TranscriptChunk{
				Text:      msg.Content.Data,
				Speaker:   msg.Content.UserName,
				Timestamp: time.Now(),
			}
			if msg.Content.Timestamp > 0 {
				chunk.Timestamp = time.UnixMilli(msg.Content.Timestamp)
			}
			s.handler.HandleChunk(s.ctx, chunk)
		}
	}
}

func isNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
