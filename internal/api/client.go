package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/logger"
)

// Client is one websocket connection.
type Client struct {
	ID     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan *Message
	handle func(*Message) *Message
	log    *logger.Logger
}

// NewClient wraps conn. handle answers incoming requests; a nil reply sends
// nothing back.
func NewClient(hub *Hub, conn *websocket.Conn, handle func(*Message) *Message) *Client {
	return &Client{
		ID:     generateClientID(),
		hub:    hub,
		conn:   conn,
		send:   make(chan *Message, consts.WSSendBuffer),
		handle: handle,
		log:    hub.log,
	}
}

// ReadPump reads requests until the connection fails.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(consts.WSMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(consts.WSPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(consts.WSPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Error("websocket read error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(&Message{Type: MessageTypeError, Error: "invalid message"})
			continue
		}
		if reply := c.handle(&msg); reply != nil {
			c.reply(reply)
		}
	}
}

// WritePump writes queued messages and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(consts.WSPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(consts.WSWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.log.Error("failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(consts.WSWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) reply(msg *Message) {
	defer func() {
		// send may already be closed by the hub.
		_ = recover()
	}()
	select {
	case c.send <- msg:
	default:
		c.log.Warn("client %s send channel full, dropping message", c.ID)
	}
}

func generateClientID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
