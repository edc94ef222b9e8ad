package sunspec

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type readCall struct {
	address  uint16
	quantity uint16
}

// memTransport is an in-memory register map. Unset registers read as 0.
type memTransport struct {
	mu        sync.Mutex
	regs      map[uint16]uint16
	reads     []readCall
	writes    map[uint16]uint16
	failRead  map[uint16]error
	failWrite error
	open      bool
	closes    int
}

func newMemTransport() *memTransport {
	return &memTransport{
		regs:     make(map[uint16]uint16),
		writes:   make(map[uint16]uint16),
		failRead: make(map[uint16]error),
	}
}

func (m *memTransport) ReadHoldingRegisters(_ context.Context, address, quantity uint16) ([]uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads = append(m.reads, readCall{address, quantity})
	if err, ok := m.failRead[address]; ok {
		return nil, err
	}
	out := make([]uint16, quantity)
	for i := range out {
		out[i] = m.regs[address+uint16(i)]
	}
	return out, nil
}

func (m *memTransport) WriteSingleRegister(_ context.Context, address, value uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite != nil {
		return m.failWrite
	}
	m.writes[address] = value
	m.regs[address] = value
	return nil
}

func (m *memTransport) Open() error {
	m.open = true
	return nil
}

func (m *memTransport) Close() error {
	m.open = false
	m.closes++
	return nil
}

func (m *memTransport) IsOpen() bool { return m.open }

var errBoom = errors.New("connection reset by peer")

// xorTransform is a stand-in vendor transform for tests.
var xorTransform = TransformFunc(func(key, word uint16) uint16 { return word ^ key })

type block struct {
	model  ModelID
	length uint16
	fields map[string][]uint16
}

// chain lays out an identifier and a model chain in m. The first block is the
// common model, whose descriptors start two registers before its header.
// Every word except the first identifier word is passed through mask. A masked
// chain stores its identifier at ObfuscatedIdentifierAddress, so it needs a base
// past that pair when the headers must not overwrite it.
type chain struct {
	base   uint16
	blocks []block
	end    uint16
	mask   func(uint16) uint16
}

func (c chain) write(m *memTransport) []uint16 {
	mask := c.mask
	if mask == nil {
		mask = func(w uint16) uint16 { return w }
	}
	base := c.base
	if base == 0 {
		base = ChainBaseAddress
	}

	ident := IdentifierAddress
	if c.mask != nil {
		ident = ObfuscatedIdentifierAddress
	}
	m.regs[ident] = uint16(SunSpecIdentifier >> 16)
	m.regs[ident+1] = mask(uint16(SunSpecIdentifier & 0xFFFF))

	reg := DefaultRegistry()
	headers := make([]uint16, 0, len(c.blocks))
	address := base
	for i, b := range c.blocks {
		headers = append(headers, address)
		m.regs[address] = mask(uint16(b.model))
		m.regs[address+1] = mask(b.length)

		fieldBase := address
		if i == 0 {
			fieldBase -= 2
		}
		for name, words := range b.fields {
			fd, ok := reg.Lookup(b.model, name)
			if !ok {
				panic(fmt.Sprintf("no field %s in model %d", name, b.model))
			}
			for j, w := range words {
				m.regs[fd.Address(fieldBase)+uint16(j)] = mask(w)
			}
		}
		address += b.length + 2
	}
	m.regs[address] = mask(c.end)
	m.regs[address+1] = 0
	return headers
}

// stringWords packs s two characters per word, NUL padded to n words.
func stringWords(s string, n int) []uint16 {
	b := make([]byte, 2*n)
	copy(b, s)
	words := make([]uint16, n)
	for i := range words {
		words[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return words
}
