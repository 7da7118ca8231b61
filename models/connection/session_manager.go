package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/naval-battle/internal/error"
)

const (
	defaultGracePeriod     = time.Minute * 2
	defaultCleanupInterval = time.Minute * 5
	defaultIdleTimeout     = time.Minute * 20
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) (*Session, error)
	FindSession(sessionId string) (*Session, error)
	ReconnectSession(sessionId string, conn *websocket.Conn) (*Session, error)
	TerminateSession(sessionId string)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	CleanupPeriodically(ctx context.Context)
}

// BattleshipSessionManager holds at most one session, since there is only
// one game to drive.
type BattleshipSessionManager struct {
	session         *Session
	gracePeriod     time.Duration
	cleanupInterval time.Duration
	idleTimeout     time.Duration
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type SessionManagerOption func(*BattleshipSessionManager)

// WithGracePeriod sets how long a session waits for its client to come
// back after an abnormal closure.
func WithGracePeriod(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.gracePeriod = d
	}
}

func WithIdleTimeout(idleTimeout, cleanupInterval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.idleTimeout = idleTimeout
		bsm.cleanupInterval = cleanupInterval
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	bsm := &BattleshipSessionManager{
		gracePeriod:     defaultGracePeriod,
		cleanupInterval: defaultCleanupInterval,
		idleTimeout:     defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) (*Session, error) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	if bsm.session != nil {
		return nil, cerr.ErrSessionBusy
	}

	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	bsm.session = NewSession(sessionId, conn)
	return bsm.session, nil
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	if bsm.session == nil || bsm.session.id != sessionId {
		return nil, cerr.ErrSessionNotExist(sessionId)
	}
	return bsm.session, nil
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) (*Session, error) {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return nil, err
	}

	session.reconnect(conn)
	log.Printf("session reconnected: %s\n", sessionId)
	return session, nil
}

// TerminateSession frees the slot if sessionId still holds it.
func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	if bsm.session != nil && bsm.session.id == sessionId {
		bsm.session = nil
		log.Printf("session terminated: %s\n", sessionId)
	}
}

// CleanupPeriodically closes the session once its client has been silent
// longer than the idle timeout. Closing the conn ends the session's read
// loop, which then terminates it.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			bsm.mu.RLock()
			session := bsm.session
			bsm.mu.RUnlock()

			if session != nil && time.Since(session.LastActivity()) > bsm.idleTimeout {
				log.Printf("closing idle session: %s\n", session.id)
				_ = session.Conn().Close()
			}
		}
	}
}

// awaitReconnection blocks for the grace period unless the client comes
// back. failedConn is the conn that just failed; if it was already
// replaced there is nothing to wait for.
func (bsm *BattleshipSessionManager) awaitReconnection(session *Session, failedConn *websocket.Conn) error {
	signal := session.reconnectionSignal()
	if session.Conn() != failedConn {
		return nil
	}

	log.Printf("starting grace period for %s\n", session.id)
	timer := time.NewTimer(bsm.gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + session.id)

	case <-signal:
		log.Printf("player reconnected, session: %s\n", session.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	conn := session.Conn()
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) || connErr.Code() != ConnLoopAbnormalClosureRetry {
		return err
	}

	if err := bsm.awaitReconnection(session, conn); err != nil {
		return err
	}
	return session.writeToConnWithRetry(msg, msgType)
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	for {
		conn := session.Conn()
		messageType, payload, err := conn.ReadMessage()
		if err == nil {
			session.touch()
			return messageType, payload, nil
		}
		// replaced by a reconnection while this read was blocked
		if session.Conn() != conn {
			continue
		}

		if session.handleReadFromConnErr(err) != ConnLoopAbnormalClosureRetry {
			return -1, []byte{}, err
		}
		if err := bsm.awaitReconnection(session, conn); err != nil {
			return -1, []byte{}, err
		}
	}
}

// FetchCodeFromMsg reads only the code of an incoming frame.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, cerr.ErrSignalAbsent
	}
	return *signal.Code, nil
}
