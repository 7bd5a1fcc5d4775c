package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/strike5/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 4096
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are checked by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message types.
const (
	MsgMove  = "move"
	MsgState = "state"
	MsgTurn  = "turn"
	MsgError = "error"
)

// WSMessage is the envelope for every websocket frame.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsClient is one websocket connection bound to a session.
type wsClient struct {
	conn *websocket.Conn
	sess *Session
	send chan []byte
	srv  *Server
}

func (s *Server) handleWebSocket(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "id", sess.ID, "err", err)
		return
	}

	client := &wsClient{
		conn: conn,
		sess: sess,
		send: make(chan []byte, sendBuffer),
		srv:  s,
	}
	s.logger.Info("websocket connected", "id", sess.ID)

	client.queue(MsgState, sess.View())
	go client.writePump()
	client.readPump()
}

// readPump handles incoming moves until the connection closes.
func (c *wsClient) readPump() {
	defer func() {
		close(c.send)
		c.srv.logger.Info("websocket disconnected", "id", c.sess.ID)
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	// An open socket keeps its session alive.
	c.conn.SetPongHandler(func(string) error {
		c.sess.touch()
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.srv.logger.Warn("websocket read error", "id", c.sess.ID, "err", err)
			}
			return
		}
		c.sess.touch()
		if !c.handle(msg) {
			return
		}
	}
}

// handle answers one message. It returns false once the session has ended.
func (c *wsClient) handle(msg WSMessage) bool {
	if msg.Type != MsgMove {
		c.queueError("unknown message type " + msg.Type)
		return true
	}

	var req MoveRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Start == nil || req.End == nil {
		c.queueError("move needs start and end as [row, col]")
		return true
	}

	res, view, err := c.sess.Move(*req.Start, *req.End)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.queueError(err.Error())
		return false
	case errors.Is(err, engine.ErrInvalidCell):
		c.queueError(err.Error())
		return true
	case err != nil:
		c.srv.logger.Error("move failed", "id", c.sess.ID, "err", err)
		c.queueError(err.Error())
		return true
	}
	c.queue(MsgTurn, MoveResponse{Result: res, State: view})
	return true
}

func (c *wsClient) queue(typ string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.srv.logger.Error("cannot marshal message", "type", typ, "err", err)
		return
	}
	frame, err := json.Marshal(WSMessage{Type: typ, Data: data})
	if err != nil {
		c.srv.logger.Error("cannot marshal message", "type", typ, "err", err)
		return
	}

	select {
	case c.send <- frame:
	default:
		c.srv.logger.Warn("websocket send buffer full, dropping message", "id", c.sess.ID, "type", typ)
	}
}

func (c *wsClient) queueError(message string) {
	c.queue(MsgError, gin.H{"message": message})
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.srv.logger.Warn("websocket write error", "id", c.sess.ID, "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
