package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type connection struct {
	conn   *websocket.Conn
	gameID string

	// conn.WriteJSON is not safe for concurrent use; opponent moves arrive
	// from timer goroutines while the read loop may be writing errors.
	writeMu sync.Mutex
}

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[string]*connection // connID → connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*connection),
	}
}

func (cm *ConnectionManager) AddConnection(connID, gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.connections[connID]; exists {
		old.conn.Close()
	}
	cm.connections[connID] = &connection{conn: conn, gameID: gameID}
}

func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if c, exists := cm.connections[connID]; exists {
		c.conn.Close()
		delete(cm.connections, connID)
	}
}

// SendMessage writes a JSON message to one connection. A closed connection is ignored.
func (cm *ConnectionManager) SendMessage(connID string, message interface{}) error {
	cm.mu.RLock()
	c, exists := cm.connections[connID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// Ping sends a keep-alive ping through the connection's write lock.
func (cm *ConnectionManager) Ping(connID string) error {
	cm.mu.RLock()
	c, exists := cm.connections[connID]
	cm.mu.RUnlock()

	if !exists {
		return websocket.ErrCloseSent
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Viewers counts the connections watching a game.
func (cm *ConnectionManager) Viewers(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	n := 0
	for _, c := range cm.connections {
		if c.gameID == gameID {
			n++
		}
	}
	return n
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
