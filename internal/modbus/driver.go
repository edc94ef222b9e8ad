package modbus

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
)

// Driver selects the Modbus-TCP client implementation.
type Driver string

const (
	DriverNative      Driver = "native"
	DriverGoburrow    Driver = "goburrow"
	DriverSimonvetter Driver = "simonvetter"
)

// Config describes one AXS Port endpoint.
type Config struct {
	Host    string
	Port    int
	UnitID  uint8
	Timeout time.Duration
	Driver  Driver
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewConn builds an unopened connection for cfg.
func NewConn(cfg Config) (sunspec.Conn, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("modbus host required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid modbus port %d", cfg.Port)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	switch cfg.Driver {
	case DriverNative, "":
		return NewClient(cfg.Address(), cfg.UnitID, cfg.Timeout), nil
	case DriverGoburrow:
		return NewGoburrowConn(cfg.Address(), cfg.UnitID, cfg.Timeout), nil
	case DriverSimonvetter:
		conn, err := NewSimonvetterConn(cfg.Address(), cfg.UnitID, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return nil, fmt.Errorf("unknown modbus driver %q", cfg.Driver)
}
