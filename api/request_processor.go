package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/naval-battle/db/sqlc"
	mb "github.com/saeidalz13/naval-battle/models/battleship"
	mc "github.com/saeidalz13/naval-battle/models/connection"
	"github.com/sqlc-dev/pqtype"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  2048,
		WriteBufferSize: 2048,

		// the only client is the local presentation layer
		CheckOrigin: func(r *http.Request) bool { return true },
	}
)

// RequestProcessor serves the websocket endpoint. It translates frames into
// game manager calls and holds no game state itself.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	dbManager      *sqlc.DbManager
	ipnet          net.IPNet
}

// NewRequestProcessor takes an optional dbManager; without it no analytics
// are recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	dbManager *sqlc.DbManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		dbManager:      dbManager,
		ipnet:          ServerIpNet(),
	}
}

// ServerIpNet returns the first IPv4 address of an up, non-loopback
// interface, or the loopback address when there is none.
func ServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(8, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			log.Println("failed to list addresses of", iface.Name, err)
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	log.Println("no external ipv4 address found, using loopback")
	return loopback
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		session, err := rp.sessionManager.GenerateNewSession(conn)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSessionBusy)
			msg.AddError(err.Error(), "another client is playing")
			_ = conn.WriteJSON(msg)
			conn.Close()
			return
		}

		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(session)

	default:
		session, err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn)
		if err != nil {
			// This either means an expired session or invalid session ID
			msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
			msg.AddError(err.Error(), "")
			_ = conn.WriteJSON(msg)
			conn.Close()
			return
		}

		// The original request loop keeps serving the session on the new
		// conn; this handler only confirms the id.
		resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
		resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
		if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
			log.Println("failed to confirm reconnection:", err)
		}
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Nothing more can be read from this session, reconnection
			// included
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		case mc.CodeNewGame:
			respMsg := NewRequest(payload).HandleNewGame(rp.gameManager)
			if !respMsg.HasError() {
				rp.recordAnalytics(mc.CodeNewGame)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeResumeGame:
			respMsg, game := NewRequest().HandleResumeGame(rp.gameManager)
			if respMsg.HasError() {
				if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			rp.recordAnalytics(mc.CodeResumeGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// A pending machine turn may have finished the game
			if game.State().IsTerminal() {
				if err := rp.writeEndGame(session, game); err != nil {
					break sessionLoop
				}
			}

		case mc.CodePlaceShip:
			respMsg := NewRequest(payload).HandlePlaceShip(rp.gameManager)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// The last ship of the fleet starts the game
			if !respMsg.HasError() && respMsg.Payload.RemainingShips == 0 {
				if err := rp.writeStartGame(session); err != nil {
					break sessionLoop
				}
			}

		case mc.CodePlaceFleetRandomly:
			respMsg := NewRequest().HandlePlaceFleetRandomly(rp.gameManager)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			if !respMsg.HasError() {
				if err := rp.writeStartGame(session); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeAttack:
			respMsg, game := NewRequest(payload).HandleAttack(rp.gameManager)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.HasError() {
				continue sessionLoop
			}

			if game.State().IsTerminal() {
				if err := rp.writeEndGame(session, game); err != nil {
					break sessionLoop
				}
			}

		case mc.CodeBoardState:
			respMsg := NewRequest().HandleBoardState(rp.gameManager)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) writeStartGame(session *mc.Session) error {
	game, err := rp.gameManager.GetGame()
	if err != nil {
		return err
	}

	msg := mc.NewMessage[mc.RespGame](mc.CodeStartGame)
	msg.AddPayload(mc.NewRespGame(game))
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}

// writeEndGame reports the result and releases the game slot.
func (rp RequestProcessor) writeEndGame(session *mc.Session, game *mb.Game) error {
	respEndGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	respEndGame.AddPayload(mc.NewRespEndGame(game))
	rp.gameManager.TerminateGame()

	return rp.sessionManager.WriteToSessionConn(session, respEndGame, mc.MessageTypeJSON)
}

// recordAnalytics never fails the request; a broken database only costs
// the counter.
func (rp RequestProcessor) recordAnalytics(code uint8) {
	if rp.dbManager == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}

	counter := sqlc.CounterGamesCreated
	if code == mc.CodeResumeGame {
		counter = sqlc.CounterGamesResumed
	}
	if err := rp.dbManager.Analytics.Increment(ctx, counter, serverPqtypeInet); err != nil {
		log.Println(err)
	}
}
