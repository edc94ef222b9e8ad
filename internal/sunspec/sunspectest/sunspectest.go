// Package sunspectest provides an in-memory AXS Port for tests and the simulator.
package sunspectest

import (
	"context"
	"fmt"
	"sync"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
)

// MemConn is a sunspec.Conn over a register map. Unset registers read as 0.
type MemConn struct {
	mu       sync.Mutex
	regs     map[uint16]uint16
	writes   map[uint16]uint16
	reads    int
	failRead error
	open     bool
	closes   int
}

func NewMemConn() *MemConn {
	return &MemConn{
		regs:   make(map[uint16]uint16),
		writes: make(map[uint16]uint16),
	}
}

func (m *MemConn) ReadHoldingRegisters(_ context.Context, address, quantity uint16) ([]uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, fmt.Errorf("not connected")
	}
	if m.failRead != nil {
		return nil, m.failRead
	}
	m.reads++
	out := make([]uint16, quantity)
	for i := range out {
		out[i] = m.regs[address+uint16(i)]
	}
	return out, nil
}

func (m *MemConn) WriteSingleRegister(_ context.Context, address, value uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return fmt.Errorf("not connected")
	}
	m.writes[address] = value
	m.regs[address] = value
	return nil
}

func (m *MemConn) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

func (m *MemConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.closes++
	return nil
}

func (m *MemConn) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Set stores a register word.
func (m *MemConn) Set(address, value uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[address] = value
}

// Written returns the last value written to address.
func (m *MemConn) Written(address uint16) (uint16, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.writes[address]
	return v, ok
}

// FailReads makes every following read return err. nil clears it.
func (m *MemConn) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead = err
}

func (m *MemConn) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

func (m *MemConn) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// Registers returns a copy of the register map.
func (m *MemConn) Registers() map[uint16]uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint16]uint16, len(m.regs))
	for k, v := range m.regs {
		out[k] = v
	}
	return out
}

// Block is one model block with field values by logical name.
type Block struct {
	Model  sunspec.ModelID
	Length uint16
	Fields map[string][]uint16
}

// Chain is an identifier plus a model chain starting at sunspec.ChainBaseAddress.
// The first block is the common model, whose descriptors start two registers
// before its header.
type Chain struct {
	Blocks []Block
}

// Registers lays the chain out as an address to word map.
func (c Chain) Registers() (map[uint16]uint16, error) {
	regs := make(map[uint16]uint16)
	regs[sunspec.IdentifierAddress] = uint16(sunspec.SunSpecIdentifier >> 16)
	regs[sunspec.IdentifierAddress+1] = uint16(sunspec.SunSpecIdentifier & 0xFFFF)

	reg := sunspec.DefaultRegistry()
	address := sunspec.ChainBaseAddress
	for i, b := range c.Blocks {
		regs[address] = uint16(b.Model)
		regs[address+1] = b.Length

		fieldBase := address
		if i == 0 {
			fieldBase -= 2
		}
		for name, words := range b.Fields {
			fd, ok := reg.Lookup(b.Model, name)
			if !ok {
				return nil, fmt.Errorf("no field %s in model %d", name, b.Model)
			}
			for j, w := range words {
				regs[fd.Address(fieldBase)+uint16(j)] = w
			}
		}
		address += b.Length + 2
	}
	regs[address] = 0xFFFF
	regs[address+1] = 0
	return regs, nil
}

// Load writes the chain into m.
func (c Chain) Load(m *MemConn) error {
	regs, err := c.Registers()
	if err != nil {
		return err
	}
	for a, w := range regs {
		m.Set(a, w)
	}
	return nil
}

// StringWords packs s two characters per word, NUL padded to n words.
func StringWords(s string, n int) []uint16 {
	b := make([]byte, 2*n)
	copy(b, s)
	words := make([]uint16, n)
	for i := range words {
		words[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return words
}

// FXSplit is a split-phase FX stack: a master on port 1, a slave on port 2
// and a FLEXnet-DC on port 4.
func FXSplit() Chain {
	return Chain{Blocks: []Block{
		{Model: sunspec.ModelCommon, Length: 66, Fields: map[string][]uint16{
			"C_SunSpec_ID":   StringWords("SunS", 2),
			"C_Manufacturer": StringWords("OutBack Power", 16),
			"C_Model":        StringWords("AXS Port", 16),
			"C_SerialNumber": StringWords("ABCD1234EFGH5678", 16),
		}},
		{Model: sunspec.ModelOutBack, Length: 224, Fields: map[string][]uint16{
			"OutBack_Temp_Batt":                    {25},
			"OutBack_Load_Grid_Transfer_Threshold": {45},
		}},
		{Model: sunspec.ModelFX, Length: 36, Fields: map[string][]uint16{
			"FX_Port_Number":             {1},
			"FX_Inverter_Output_Current": {112},
			"FX_AC_Output_Voltage":       {1204},
		}},
		{Model: sunspec.ModelFX, Length: 36, Fields: map[string][]uint16{
			"FX_Port_Number":             {2},
			"FX_Inverter_Output_Current": {235},
		}},
		{Model: sunspec.ModelFXConfig, Length: 65, Fields: map[string][]uint16{
			"FXconfig_Port_Number":   {1},
			"FXconfig_Stacking_Mode": {10},
			"FXconfig_Sell_Volts":    {520},
		}},
		{Model: sunspec.ModelFXConfig, Length: 65, Fields: map[string][]uint16{
			"FXconfig_Port_Number":   {2},
			"FXconfig_Stacking_Mode": {12},
		}},
		{Model: sunspec.ModelFLEXnetDC, Length: 39, Fields: map[string][]uint16{
			"FN_Port_Number":     {4},
			"FN_State_Of_Charge": {87},
		}},
		{Model: sunspec.ModelFLEXnetConfig, Length: 43, Fields: map[string][]uint16{
			"FNconfig_Port_Number": {4},
		}},
		{Model: sunspec.ModelInverterSplit, Length: 50, Fields: map[string][]uint16{
			"I_Status":   {4},
			"I_AC_Power": {1500},
		}},
	}}
}

// NewFXSplitConn returns an unopened MemConn holding FXSplit.
func NewFXSplitConn() *MemConn {
	m := NewMemConn()
	if err := FXSplit().Load(m); err != nil {
		panic(err)
	}
	return m
}
