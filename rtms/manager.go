package rtms

import (
	"log"
	"sync"
)

// Manager tracks active sessions keyed by meeting UUID. The demo supports
// one meeting at a time; the map exists so a stop event can find its session
// and so a duplicate start is ignored instead of opening a second stream.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	creds      Credentials
	policy     Policy
	newHandler func(meetingUUID string) ChunkHandler
}

// NewManager creates a session manager. newHandler builds the per-meeting
// chunk handler (the conversation processor).
func NewManager(creds Credentials, policy Policy, newHandler func(meetingUUID string) ChunkHandler) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		creds:      creds,
		policy:     policy,
		newHandler: newHandler,
	}
}

// Start launches a session for the meeting unless one is already active.
func (m *Manager) Start(meetingUUID, streamID, serverURL string) {
	m.mu.Lock()
	if _, ok := m.sessions[meetingUUID]; ok {
		m.mu.Unlock()
		log.Printf("rtms: session already active for meeting %s", meetingUUID)
		return
	}
	s := NewSession(meetingUUID, streamID, serverURL, m.creds, m.policy, m.newHandler(meetingUUID))
	m.sessions[meetingUUID] = s
	m.mu.Unlock()

	log.Printf("rtms: starting session %s for meeting %s", s.ID, meetingUUID)
	go func() {
		s.Run()
		m.mu.Lock()
		if m.sessions[meetingUUID] == s {
			delete(m.sessions, meetingUUID)
		}
		m.mu.Unlock()
		log.Printf("rtms: session %s for meeting %s ended", s.ID, meetingUUID)
	}()
}

// Stop ends the session for the meeting and reports whether one was active.
func (m *Manager) Stop(meetingUUID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[meetingUUID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Stop()
	return true
}

// StopAll ends every active session and waits for them to terminate.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
	for _, s := range sessions {
		<-s.Done()
	}
}

// Active returns the number of running sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
