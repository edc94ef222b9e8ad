package sunspec

import (
	"context"
	"fmt"
)

// MaxReadQuantity is the largest holding-register read a single Modbus request allows.
const MaxReadQuantity = 125

// Reading is one decoded field of a block dump.
type Reading struct {
	Name    string  `json:"name"`
	Model   ModelID `json:"model"`
	Port    *int    `json:"port,omitempty"`
	Address uint16  `json:"address"`
	Units   string  `json:"units,omitempty"`
	Value   Value   `json:"value"`
	Text    string  `json:"text"`
}

type accessConfig struct {
	port *int
}

// AccessOption narrows which device a register access targets.
type AccessOption func(*accessConfig)

// OnPort selects the device whose port number equals port.
func OnPort(port int) AccessOption {
	return func(c *accessConfig) {
		c.port = &port
	}
}

func newAccessConfig(opts []AccessOption) accessConfig {
	var c accessConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// readField reads and decodes one field of dev. Nothing is decoded when the read fails.
func readField(ctx context.Context, t Transport, dev Device, fd FieldDescriptor, obf ObfuscationState) (Value, error) {
	address := fd.Address(dev.BaseAddress)
	words, err := t.ReadHoldingRegisters(ctx, address, fd.Length)
	if err != nil {
		return Value{}, fmt.Errorf("%w: read %s at %d: %w", ErrTransport, fd.Name, address, err)
	}
	return Decode(words, fd, obf)
}

// readBlock reads the registers spanned by fields in chunks a single request can carry.
func readBlock(ctx context.Context, t Transport, dev Device, fields []FieldDescriptor) ([]uint16, error) {
	var extent int
	for _, fd := range fields {
		if end := int(fd.Offset) + int(fd.Length) - 1; end > extent {
			extent = end
		}
	}

	words := make([]uint16, 0, extent)
	for len(words) < extent {
		quantity := min(extent-len(words), MaxReadQuantity)
		address := int(dev.BaseAddress) + len(words)
		if address+quantity-1 > 0xFFFF {
			return nil, fmt.Errorf("%w: block of model %d runs past the register space", ErrShortRead, dev.Model)
		}
		chunk, err := t.ReadHoldingRegisters(ctx, uint16(address), uint16(quantity))
		if err != nil {
			return nil, fmt.Errorf("%w: read model %d block at %d: %w", ErrTransport, dev.Model, address, err)
		}
		if len(chunk) < quantity {
			return nil, fmt.Errorf("%w: model %d block at %d returned %d of %d words", ErrShortRead, dev.Model, address, len(chunk), quantity)
		}
		words = append(words, chunk[:quantity]...)
	}
	return words, nil
}

func findDevice(devices []Device, model ModelID, port *int) (Device, bool) {
	for _, d := range devices {
		if d.Model == model && d.onPort(port) {
			return d, true
		}
	}
	return Device{}, false
}

func noSuchDevice(model ModelID, port *int) error {
	if port != nil {
		return fmt.Errorf("%w: model %d on port %d", ErrNoSuchDevice, model, *port)
	}
	return fmt.Errorf("%w: model %d", ErrNoSuchDevice, model)
}
