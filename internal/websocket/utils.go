package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 5 * time.Minute
)

// jsonConn is the slice of *websocket.Conn the hub needs. Narrowed to an
// interface so the hub can be exercised without a live socket.
type jsonConn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
}

// Client wraps a WebSocket connection with a write lock. gorilla/websocket
// allows only one concurrent writer per connection; the hub fans out from
// the worker goroutine while the read loop sends pongs, so both paths must
// funnel through WriteTyped.
type Client struct {
	mu   sync.Mutex
	conn jsonConn
}

// NewClient wraps an upgraded connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// WriteTyped sends a strongly-typed payload over the WebSocket.
func (c *Client) WriteTyped(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

// WriteError sends a typed ErrorEvent over the WebSocket.
func (c *Client) WriteError(errMsg string) error {
	return c.WriteTyped(ErrorEvent{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	return conn.ReadJSON(v)
}
