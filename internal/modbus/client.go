package modbus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// Client is a Modbus-TCP client speaking MBAP frames directly.
type Client struct {
	address       string
	unitID        uint8
	conn          net.Conn
	mu            sync.Mutex
	transactionID uint16
	timeout       time.Duration
	connected     bool
}

func NewClient(address string, unitID uint8, timeout time.Duration) *Client {
	return &Client{
		address: address,
		unitID:  unitID,
		timeout: timeout,
	}
}

// Open stellt TCP-Verbindung her
func (c *Client) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	conn, err := net.DialTimeout("tcp", c.address, c.timeout)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	c.conn = conn
	c.connected = true

	return nil
}

// Close schließt die Verbindung
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if !c.connected {
		return nil
	}

	err := c.conn.Close()
	c.connected = false
	c.conn = nil

	return err
}

func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendFrame sendet ein Frame und wartet auf Response.
// After an I/O error the connection is dropped and must be reopened.
func (c *Client) SendFrame(ctx context.Context, request *ModbusFrame) (*ModbusFrame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, fmt.Errorf("not connected")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.transactionID++
	request.TransactionID = c.transactionID

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		c.closeLocked()
		return nil, fmt.Errorf("set deadline failed: %w", err)
	}

	if _, err := c.conn.Write(request.Encode()); err != nil {
		c.closeLocked()
		return nil, fmt.Errorf("write failed: %w", err)
	}

	response, err := c.readFrame()
	if err != nil {
		c.closeLocked()
		return nil, err
	}

	if response.TransactionID != request.TransactionID {
		c.closeLocked()
		return nil, fmt.Errorf("transaction ID mismatch: expected %d, got %d",
			request.TransactionID, response.TransactionID)
	}
	if response.FunctionCode&^exceptionFlag != request.FunctionCode {
		return nil, fmt.Errorf("function code mismatch: expected 0x%02X, got 0x%02X",
			request.FunctionCode, response.FunctionCode)
	}

	return response, nil
}

// readFrame liest genau ein Frame anhand des MBAP Length-Felds
func (c *Client) readFrame() (*ModbusFrame, error) {
	buf := make([]byte, maxFrameLength)
	if _, err := io.ReadFull(c.conn, buf[:mbapHeaderLength]); err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	length := int(binary.BigEndian.Uint16(buf[4:6]))
	if length < 2 || mbapHeaderLength-1+length > maxFrameLength {
		return nil, fmt.Errorf("invalid frame length %d", length)
	}
	total := mbapHeaderLength - 1 + length
	if _, err := io.ReadFull(c.conn, buf[mbapHeaderLength:total]); err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	frame, err := DecodeFrame(buf[:total])
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	return frame, nil
}

// ReadHoldingRegisters liest Holding Registers
func (c *Client) ReadHoldingRegisters(ctx context.Context, startAddr uint16, quantity uint16) ([]uint16, error) {
	request := ReadHoldingRegistersRequest(0, c.unitID, startAddr, quantity)

	response, err := c.SendFrame(ctx, request)
	if err != nil {
		return nil, err
	}

	registers, err := response.ParseRegisterResponse()
	if err != nil {
		return nil, err
	}
	if len(registers) != int(quantity) {
		return nil, fmt.Errorf("expected %d registers, got %d", quantity, len(registers))
	}
	return registers, nil
}

// WriteSingleRegister schreibt ein einzelnes Register
func (c *Client) WriteSingleRegister(ctx context.Context, addr uint16, value uint16) error {
	request := WriteSingleRegisterRequest(0, c.unitID, addr, value)

	response, err := c.SendFrame(ctx, request)
	if err != nil {
		return err
	}

	return response.ParseWriteResponse(addr, value)
}
