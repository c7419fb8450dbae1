package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

const writeWait = 10 * time.Second

// Client wraps one socket. gorilla connections allow a single concurrent
// writer, so every write goes through mu.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) Send(message domain.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// ConnectionManager keeps at most one live socket per game.
type ConnectionManager struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{clients: make(map[string]*Client)}
}

// AddConnection registers client for gameID, closing the socket it replaces.
func (cm *ConnectionManager) AddConnection(gameID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.clients[gameID]; exists && old != client {
		old.Close()
	}
	cm.clients[gameID] = client
}

// RemoveConnectionIfMatching drops client, unless a newer socket has already
// taken its place.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.clients[gameID]; exists && current == client {
		current.Close()
		delete(cm.clients, gameID)
	}
}

// SendMessage delivers message to the socket of gameID, if any.
func (cm *ConnectionManager) SendMessage(gameID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	client, exists := cm.clients[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}
	return client.Send(message)
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}
