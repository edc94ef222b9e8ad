package sunspec

import (
	"context"
	"fmt"
)

// MaxChainLength caps the number of blocks a discovery walk will accept.
const MaxChainLength = 64

// Role is the stacking role of an inverter config block.
type Role string

const (
	RoleNone   Role = ""
	RoleMaster Role = "Master"
	RoleSlave  Role = "Slave"
)

var masterStackingModes = map[int]bool{0: true, 4: true, 10: true, 19: true}

// Device is one model block found on the chain.
type Device struct {
	Index        int     `json:"index"`
	Model        ModelID `json:"model"`
	BaseAddress  uint16  `json:"base_address"`
	Length       uint16  `json:"length"`
	Port         *int    `json:"port,omitempty"`
	StackingMode *int    `json:"stacking_mode,omitempty"`
}

// Role derives master/slave from the stacking mode.
func (d Device) Role() Role {
	if d.StackingMode == nil {
		return RoleNone
	}
	if masterStackingModes[*d.StackingMode] {
		return RoleMaster
	}
	return RoleSlave
}

// onPort reports whether d matches port. A nil port matches any device.
func (d Device) onPort(port *int) bool {
	if port == nil {
		return true
	}
	return d.Port != nil && *d.Port == *port
}

// Discover walks the model chain starting at base and returns the real blocks.
// The first block is shifted back by 2 so the common table's identifier
// registers line up with its descriptors.
func Discover(ctx context.Context, t Transport, base uint16, obf ObfuscationState, reg *Registry) ([]Device, error) {
	var devices []Device
	address := int(base)

	for i := 0; ; i++ {
		if address+1 > 0xFFFF {
			return nil, fmt.Errorf("%w: chain runs past register %d", ErrChainTooLong, address)
		}

		header, err := t.ReadHoldingRegisters(ctx, uint16(address), 2)
		if err != nil {
			return nil, fmt.Errorf("%w: read model header at %d: %w", ErrTransport, address, err)
		}
		if len(header) < 2 {
			return nil, fmt.Errorf("%w: model header at %d returned %d words", ErrShortRead, address, len(header))
		}

		model := ModelID(obf.Word(header[0]))
		length := obf.Word(header[1])
		if model.IsEnd() {
			break
		}
		if i == MaxChainLength {
			return nil, fmt.Errorf("%w: no end marker after %d blocks", ErrChainTooLong, MaxChainLength)
		}

		dev := Device{
			Index:       len(devices),
			Model:       model,
			BaseAddress: uint16(address),
			Length:      length,
		}
		if err := readDeviceTags(ctx, t, &dev, obf, reg); err != nil {
			return nil, err
		}
		devices = append(devices, dev)

		address += int(length) + 2
	}

	if len(devices) > 0 {
		devices[0].BaseAddress -= 2
	}
	return devices, nil
}

// readDeviceTags fills the port and stacking mode of port-bearing blocks.
func readDeviceTags(ctx context.Context, t Transport, dev *Device, obf ObfuscationState, reg *Registry) error {
	if name, ok := portFields[dev.Model]; ok {
		port, err := readTag(ctx, t, *dev, name, obf, reg)
		if err != nil {
			return err
		}
		dev.Port = port
	}
	if name, ok := stackingFields[dev.Model]; ok {
		mode, err := readTag(ctx, t, *dev, name, obf, reg)
		if err != nil {
			return err
		}
		dev.StackingMode = mode
	}
	return nil
}

func readTag(ctx context.Context, t Transport, dev Device, name string, obf ObfuscationState, reg *Registry) (*int, error) {
	fd, ok := reg.Lookup(dev.Model, name)
	if !ok {
		return nil, nil
	}
	v, err := readField(ctx, t, dev, fd, obf)
	if err != nil {
		return nil, err
	}
	if v.IsNotImplemented() {
		return nil, nil
	}
	n := int(v.Int())
	return &n, nil
}
