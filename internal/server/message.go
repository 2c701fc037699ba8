package server

import (
	"encoding/json"
	"time"

	"github.com/jgresham/based-poker/internal/engine"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client -> Server
	TypeJoinTable  MessageType = "join_table"
	TypeLeaveTable MessageType = "leave_table"
	TypeStartGame  MessageType = "start_game"
	TypeAction     MessageType = "action"
	TypeNextHand   MessageType = "next_hand"

	// Server -> Client
	TypeJoined   MessageType = "joined"
	TypeSnapshot MessageType = "snapshot"
	TypeError    MessageType = "error"
)

// Message is the base WebSocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new envelope with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client -> Server payloads

// JoinTableData asks for a seat at a table
type JoinTableData struct {
	TableID    string `json:"tableId"`
	PlayerName string `json:"playerName"`
}

// LeaveTableData gives up a seat
type LeaveTableData struct {
	TableID string `json:"tableId"`
}

// StartGameData deals the first hand once everyone is seated
type StartGameData struct {
	TableID string `json:"tableId"`
}

// ActionData submits a betting action. Version is the snapshot version the
// client acted on; a stale version is rejected rather than applied against
// a state the client never saw.
type ActionData struct {
	TableID string `json:"tableId"`
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
	Version uint64 `json:"version,omitempty"`
}

// NextHandData starts the next hand after one ends
type NextHandData struct {
	TableID string `json:"tableId"`
}

// Server -> Client payloads

// JoinedData confirms a seat assignment
type JoinedData struct {
	TableID      string `json:"tableId"`
	PlayerID     string `json:"playerId"`
	SeatPosition int    `json:"seatPosition"`
}

// SnapshotData carries the authoritative table state after a transition
type SnapshotData struct {
	TableID string           `json:"tableId"`
	Version uint64           `json:"version"`
	State   engine.GameState `json:"state"`
}

// ErrorData reports a rejected request with a machine-readable code
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
