package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is one browser tab. It owns at most one game at a time and both
// players share its connection.
type Client struct {
	ID   string
	conn *websocket.Conn

	// conn.WriteJSON is not safe for concurrent use; the reader, the pinger
	// and announce timers all write.
	writeMu sync.Mutex

	mu         sync.Mutex
	gameID     string
	lastDrop   time.Time
	generation uint64
	announce   *time.Timer
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{ID: id, conn: conn}
}

func (c *Client) Send(msg ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// reset forgets the pending announcement and the cooldown. Timer callbacks
// from before the reset see a stale generation and drop their message.
func (c *Client) reset(gameID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gameID = gameID
	c.lastDrop = time.Time{}
	c.generation++
	if c.announce != nil {
		c.announce.Stop()
		c.announce = nil
	}
}

func (c *Client) currentGame() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

// ConnectionManager tracks live clients so shutdown can close them.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{clients: make(map[string]*Client)}
}

func (cm *ConnectionManager) Add(c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[c.ID] = c
}

func (cm *ConnectionManager) Remove(c *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if current, ok := cm.clients[c.ID]; ok && current == c {
		delete(cm.clients, c.ID)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// CloseAll sends a going-away close frame to every client and closes its
// socket. Reader loops then exit and clean up.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.RLock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, c := range cm.clients {
		clients = append(clients, c)
	}
	cm.mu.RUnlock()

	for _, c := range clients {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	}
}
