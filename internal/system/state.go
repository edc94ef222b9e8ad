package system

import "fmt"

type SystemState int

const (
	StateInitializing SystemState = iota
	StateRunning
	StateDegraded
	StateStopping
	StateStopped
	StateError
)

func (s SystemState) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StateRunning:
		return "RUNNING"
	case StateDegraded:
		return "DEGRADED"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText makes states render by name in JSON.
func (s SystemState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SystemStatus is pushed to live clients on every state change.
type SystemStatus struct {
	State     SystemState `json:"state"`
	Timestamp int64       `json:"timestamp"`
	Error     string      `json:"error,omitempty"`
}

// ValidateTransition checks a state change. DEGRADED means the services run
// but the AXS session is down.
func ValidateTransition(from, to SystemState) error {
	if from == to {
		return nil
	}

	validTransitions := map[SystemState][]SystemState{
		StateInitializing: {StateRunning, StateDegraded, StateStopping, StateError},
		StateRunning:      {StateDegraded, StateStopping, StateError},
		StateDegraded:     {StateRunning, StateStopping, StateError},
		StateStopping:     {StateStopped, StateError},
		StateStopped:      {StateInitializing},
		StateError:        {StateInitializing, StateStopping, StateStopped},
	}

	allowed, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("invalid current state: %s", from)
	}

	for _, validTo := range allowed {
		if validTo == to {
			return nil
		}
	}

	return fmt.Errorf("invalid state transition: %s -> %s", from, to)
}
