package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type wsClient struct {
	gameID string
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

type wsMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWS attaches to ?gameId= when it names a live session and starts a
// new one otherwise.
func (s *Server) handleWS(c *gin.Context) {
	sess, ok := s.manager.Get(c.Query("gameId"))
	fresh := !ok

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	if fresh {
		sess = s.manager.Create()
		s.analytics.GameStarted(context.Background(), sess.ID)
	}
	client := &wsClient{
		gameID: sess.ID,
		conn:   conn,
		send:   make(chan []byte, 8),
		server: s,
	}
	client.sendJSON(statePayload("init", sess.ID, sess.Snapshot()))

	go client.writePump()
	go client.readPump()
}

// writePump closes the connection when send is closed or a write fails;
// either way readPump's next read returns an error.
func (c *wsClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[WS] game %s: write failed: %v", c.gameID, err)
			return
		}
	}
}

func (c *wsClient) readPump() {
	defer close(c.send)
	s := c.server
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendJSON(gin.H{"type": "error", "message": "malformed message"})
			continue
		}
		switch msg.Type {
		case "move":
			if msg.Column == nil {
				c.sendJSON(gin.H{"type": "error", "message": "column required"})
				continue
			}
			res, _, err := s.manager.Play(c.gameID, *msg.Column)
			if err != nil {
				c.sendJSON(gin.H{"type": "error", "message": err.Error()})
				continue
			}
			s.analytics.MovePlayed(context.Background(), c.gameID, res)
			c.sendJSON(statePayload("state", c.gameID, res))
		case "reset":
			res, err := s.manager.Reset(c.gameID)
			if err != nil {
				c.sendJSON(gin.H{"type": "error", "message": err.Error()})
				continue
			}
			s.analytics.GameStarted(context.Background(), c.gameID)
			c.sendJSON(statePayload("state", c.gameID, res))
		default:
			log.Printf("[WS] game %s: unknown message type %q", c.gameID, msg.Type)
		}
	}
}

func (c *wsClient) sendJSON(v any) {
	data, _ := json.Marshal(v)
	select {
	case c.send <- data:
	default:
	}
}
