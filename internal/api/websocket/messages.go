package websocket

import (
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Poll results
	MessageTypeReadings MessageType = "readings"

	// Session messages
	MessageTypeSessionState MessageType = "session_state"
	MessageTypeInventory    MessageType = "inventory"

	// Register writes done through the API
	MessageTypeRegisterWritten MessageType = "register_written"

	// System messages
	MessageTypeSystemStatus MessageType = "system_status"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// RegisterWrittenData describes a completed register write.
type RegisterWrittenData struct {
	Register string  `json:"register"`
	Node     string  `json:"node,omitempty"`
	Port     *int    `json:"port,omitempty"`
	Value    float64 `json:"value"`
	UOM      int     `json:"uom"`
	By       string  `json:"by,omitempty"`
}

// NewMessage creates a new message with current timestamp
func NewMessage(msgType MessageType, data interface{}) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Helper functions for creating specific message types

func NewReadingsMessage(snap monitor.Snapshot) Message {
	return NewMessage(MessageTypeReadings, snap)
}

func NewSessionStateMessage(info types.SessionInfo) Message {
	return NewMessage(MessageTypeSessionState, info)
}

func NewInventoryMessage(inv types.Inventory) Message {
	return NewMessage(MessageTypeInventory, inv)
}

func NewRegisterWrittenMessage(data RegisterWrittenData) Message {
	return NewMessage(MessageTypeRegisterWritten, data)
}

// filterReadings keeps the samples of the given nodes.
func filterReadings(snap monitor.Snapshot, nodes map[string]bool) monitor.Snapshot {
	out := snap
	out.Samples = make([]monitor.Sample, 0, len(snap.Samples))
	for _, s := range snap.Samples {
		if nodes[s.Node] {
			out.Samples = append(out.Samples, s)
		}
	}
	return out
}
