package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jgresham/based-poker/internal/engine"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Connection wraps a single client WebSocket. Reads are dispatched to the
// server's tables; writes go through a buffered send channel so slow
// clients never block a broadcast.
type Connection struct {
	ClientID string

	ws     *websocket.Conn
	server *Server
	logger *log.Logger
	send   chan []byte

	mu      sync.RWMutex
	tableID string

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewConnection creates a connection wrapper around an upgraded socket
func NewConnection(ws *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()
	return &Connection{
		ClientID: id,
		ws:       ws,
		server:   server,
		logger:   logger.WithPrefix("conn").With("client", id[:8]),
		send:     make(chan []byte, 32),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the read and write pumps
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed when the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close tears the connection down
func (c *Connection) Close() error {
	c.cancel()
	var err error
	c.once.Do(func() { err = c.ws.Close() })
	return err
}

// TableID returns the table this client is seated at, if any
func (c *Connection) TableID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}

func (c *Connection) setTableID(id string) {
	c.mu.Lock()
	c.tableID = id
	c.mu.Unlock()
}

// Send queues an envelope for delivery; the message is dropped if the
// client's buffer is full.
func (c *Connection) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("Failed to marshal message", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn("Send buffer full, dropping message", "type", string(msg.Type))
	}
}

func (c *Connection) readPump() {
	defer c.cancel()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("Read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("bad_message", "message is not valid JSON")
			continue
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case TypeJoinTable:
		var data JoinTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid join_table payload")
			return
		}
		c.handleJoin(data)

	case TypeLeaveTable:
		var data LeaveTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid leave_table payload")
			return
		}
		c.handleLeave(data)

	case TypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid start_game payload")
			return
		}
		c.handleStart(data)

	case TypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid action payload")
			return
		}
		c.handleAction(data)

	case TypeNextHand:
		var data NextHandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid next_hand payload")
			return
		}
		c.handleNextHand(data)

	default:
		c.sendError("unknown_type", "unknown message type "+string(msg.Type))
	}
}

func (c *Connection) handleJoin(data JoinTableData) {
	table := c.server.Table(data.TableID)
	if table == nil {
		c.sendError("unknown_table", "no such table")
		return
	}
	joined, err := table.Join(c.ClientID, data.PlayerName)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.setTableID(table.ID)
	if msg, err := NewMessage(TypeJoined, joined); err == nil {
		c.Send(msg)
	}
}

func (c *Connection) handleLeave(data LeaveTableData) {
	table := c.server.Table(data.TableID)
	if table == nil {
		c.sendError("unknown_table", "no such table")
		return
	}
	snap, err := table.Leave(c.ClientID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.setTableID("")
	if snap != nil {
		c.server.broadcastSnapshot(*snap)
	}
}

func (c *Connection) handleStart(data StartGameData) {
	table := c.server.Table(data.TableID)
	if table == nil || !table.HasClient(c.ClientID) {
		c.sendError("not_seated", "join the table before starting the game")
		return
	}
	snap, err := table.Start()
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.server.broadcastSnapshot(snap)
}

func (c *Connection) handleAction(data ActionData) {
	table := c.server.Table(data.TableID)
	if table == nil {
		c.sendError("unknown_table", "no such table")
		return
	}
	snap, err := table.Act(c.ClientID, engine.ActionType(data.Action), data.Amount, data.Version)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.server.broadcastSnapshot(snap)
}

func (c *Connection) handleNextHand(data NextHandData) {
	table := c.server.Table(data.TableID)
	if table == nil || !table.HasClient(c.ClientID) {
		c.sendError("not_seated", "join the table first")
		return
	}
	snap, err := table.NextHand()
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	c.server.broadcastSnapshot(snap)
}

func (c *Connection) sendError(code, message string) {
	if msg, err := NewMessage(TypeError, ErrorData{Code: code, Message: message}); err == nil {
		c.Send(msg)
	}
}

// errorCode maps engine and table errors to wire codes
func errorCode(err error) string {
	var rule *engine.RuleError
	if errors.As(err, &rule) {
		return rule.Code
	}
	switch {
	case errors.Is(err, ErrTableFull):
		return "table_full"
	case errors.Is(err, ErrNotSeated):
		return "not_seated"
	case errors.Is(err, ErrAlreadySeated):
		return "already_seated"
	case errors.Is(err, ErrGameRunning):
		return "game_running"
	case errors.Is(err, ErrGameNotBegun):
		return "game_not_started"
	case errors.Is(err, ErrStaleVersion):
		return "stale_version"
	case errors.Is(err, ErrHandNotOver):
		return "hand_not_over"
	default:
		return "internal_error"
	}
}
