package connection

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnect(conn *websocket.Conn)
	handleReadFromConnErr(err error) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is the one client connection driving the game. The connection
// can be swapped after an abnormal closure, so it is always read through
// Conn.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	reconnectionSignalChan chan struct{}
	createdAt              time.Time
	lastActivity           time.Time

	mu      sync.RWMutex
	writeMu sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	now := time.Now()
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		createdAt:              now,
		lastActivity:           now,
	}
}

var _ ConnectionHandler = (*Session)(nil)

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) reconnectionSignal() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reconnectionSignalChan
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// The client vanished without a close frame, e.g. the app was
	// backgrounded. It may come back with its session id.
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	// Binary frames, bad utf-8 and oversized messages mean the peer is not
	// our client.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session, retrying timeouts with a
// linear back off.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8
	for {
		conn := s.Conn()

		var err error
		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries >= maxWriteWsRetries {
				log.Printf("max retries reached for writing to ws [%s]: %s\n", conn.RemoteAddr().String(), err)
				return NewConnErr(ConnLoopBreak).Wrap(err)
			}
			retries++
			log.Printf("writing to ws [%s] failed; retrying... (retry no. %d)\n", conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).Wrap(err)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop").Wrap(err)
		}
	}
}

// Read errors are sticky in gorilla/websocket, so only an abnormal closure
// (which may be followed by a reconnection) keeps the session alive.
func (s *Session) handleReadFromConnErr(err error) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.id, err)
		return ConnLoopBreak
	}
}

// reconnect swaps in the new connection, closes the old one and wakes
// whoever is waiting on the grace period.
func (s *Session) reconnect(conn *websocket.Conn) {
	s.mu.Lock()
	oldConn := s.conn
	close(s.reconnectionSignalChan)
	s.conn = conn
	s.reconnectionSignalChan = make(chan struct{})
	s.lastActivity = time.Now()
	s.mu.Unlock()

	if oldConn != nil && oldConn != conn {
		_ = oldConn.Close()
	}
}
