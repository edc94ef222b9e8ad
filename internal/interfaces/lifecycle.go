package interfaces

import (
	"context"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/monitor"
	"github.com/KevinKickass/SunSpecBridge/internal/storage"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
)

// SystemStatus represents the current system state
type SystemStatus struct {
	State       string            `json:"state"`
	Session     types.SessionInfo `json:"session"`
	NodeCount   int               `json:"node_count"`
	Polling     bool              `json:"polling"`
	LastPollAt  int64             `json:"last_poll_at,omitempty"`
	LiveClients int               `json:"live_clients"`
}

type LifecycleManager interface {
	Config() *config.Config
	// Storage is nil when database.enabled is false.
	Storage() *storage.PostgresClient
	DeviceManager() *devices.Manager
	Poller() *monitor.Poller
	GetCurrentStatus() SystemStatus
	Shutdown(ctx context.Context) error
}
