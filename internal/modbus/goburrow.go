package modbus

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	gmodbus "github.com/goburrow/modbus"
)

// GoburrowConn adapts a goburrow TCP handler to the register transport.
// goburrow has no context support; the handler timeout bounds each call.
type GoburrowConn struct {
	handler *gmodbus.TCPClientHandler
	client  gmodbus.Client
	mu      sync.Mutex
	open    bool
}

func NewGoburrowConn(address string, unitID uint8, timeout time.Duration) *GoburrowConn {
	h := gmodbus.NewTCPClientHandler(address)
	h.Timeout = timeout
	h.SlaveId = unitID

	return &GoburrowConn{
		handler: h,
		client:  gmodbus.NewClient(h),
	}
}

func (g *GoburrowConn) Open() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.open {
		return nil
	}
	if err := g.handler.Connect(); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	g.open = true
	return nil
}

func (g *GoburrowConn) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.open {
		return nil
	}
	g.open = false
	return g.handler.Close()
}

func (g *GoburrowConn) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.open
}

func (g *GoburrowConn) ReadHoldingRegisters(ctx context.Context, address, quantity uint16) ([]uint16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	b, err := g.client.ReadHoldingRegisters(address, quantity)
	if err != nil {
		return nil, err
	}
	registers := unpackRegisters(b)
	if len(registers) != int(quantity) {
		return nil, fmt.Errorf("expected %d registers, got %d", quantity, len(registers))
	}
	return registers, nil
}

func (g *GoburrowConn) WriteSingleRegister(ctx context.Context, address, value uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// goburrow prüft das Echo selbst
	_, err := g.client.WriteSingleRegister(address, value)
	return err
}

func unpackRegisters(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return out
}
