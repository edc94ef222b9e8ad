package storage

import (
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/google/uuid"
)

type SessionRecord struct {
	ID         uuid.UUID       `json:"id"`
	SerialID   string          `json:"serial_id"`
	Address    string          `json:"address"`
	Driver     string          `json:"driver"`
	Phase      string          `json:"phase"`
	Family     string          `json:"family"`
	HasAddon   bool            `json:"has_addon"`
	Obfuscated bool            `json:"obfuscated"`
	Inventory  types.Inventory `json:"inventory"`
	StartedAt  time.Time       `json:"started_at"`
	EndedAt    *time.Time      `json:"ended_at,omitempty"`
}

type ReadingRecord struct {
	SessionID uuid.UUID `json:"session_id"`
	Node      string    `json:"node"`
	Register  string    `json:"register"`
	Port      *int      `json:"port,omitempty"`
	Value     *float64  `json:"value"`
	Text      string    `json:"text"`
	ReadAt    time.Time `json:"read_at"`
}
