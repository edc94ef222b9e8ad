package types

import "time"

// RegisterProfile is a schema overlay file. Each model entry replaces or adds
// field descriptors on top of the built-in tables.
type RegisterProfile struct {
	Profile ProfileInfo    `json:"profile" yaml:"profile"`
	Models  []ModelOverlay `json:"models" yaml:"models"`
}

type ProfileInfo struct {
	ID          string `json:"id" yaml:"id"`
	Vendor      string `json:"vendor" yaml:"vendor"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type ModelOverlay struct {
	Model     uint16               `json:"model" yaml:"model"`
	Registers []RegisterDefinition `json:"registers" yaml:"registers"`
}

type RegisterDefinition struct {
	Name   string `json:"name" yaml:"name"`
	Offset uint16 `json:"offset" yaml:"offset"`
	Length uint16 `json:"length" yaml:"length"`
	Decode string `json:"decode" yaml:"decode"`
	Kind   string `json:"kind" yaml:"kind"`
	Units  string `json:"units,omitempty" yaml:"units,omitempty"`
	Access string `json:"access" yaml:"access"`
}

// ConnectionState of the AXS session as reported by the manager.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateOpen         ConnectionState = "transport_open"
	StateVerified     ConnectionState = "verified"
	StateFailed       ConnectionState = "failed"
)

// SessionInfo is the runtime view of the current session.
type SessionInfo struct {
	ID        string          `json:"id,omitempty"`
	SerialID  string          `json:"serial_id,omitempty"`
	Address   string          `json:"address"`
	Driver    string          `json:"driver"`
	State     ConnectionState `json:"state"`
	OpenedAt  *time.Time      `json:"opened_at,omitempty"`
	LastError string          `json:"last_error,omitempty"`
}
