package modbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	smodbus "github.com/simonvetter/modbus"
)

// SimonvetterConn adapts a simonvetter ModbusClient to the register transport.
type SimonvetterConn struct {
	client *smodbus.ModbusClient
	unitID uint8
	mu     sync.Mutex
	open   bool
}

func NewSimonvetterConn(address string, unitID uint8, timeout time.Duration) (*SimonvetterConn, error) {
	client, err := smodbus.NewClient(&smodbus.ClientConfiguration{
		URL:     "tcp://" + address,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create modbus client: %w", err)
	}

	return &SimonvetterConn{client: client, unitID: unitID}, nil
}

func (s *SimonvetterConn) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}
	if err := s.client.Open(); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	if err := s.client.SetUnitId(s.unitID); err != nil {
		s.client.Close()
		return fmt.Errorf("failed to set unit id %d: %w", s.unitID, err)
	}
	s.open = true
	return nil
}

func (s *SimonvetterConn) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	return s.client.Close()
}

func (s *SimonvetterConn) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *SimonvetterConn) ReadHoldingRegisters(ctx context.Context, address, quantity uint16) ([]uint16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.ReadRegisters(address, quantity, smodbus.HOLDING_REGISTER)
}

func (s *SimonvetterConn) WriteSingleRegister(ctx context.Context, address, value uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.WriteRegister(address, value)
}
