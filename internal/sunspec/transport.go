package sunspec

import "context"

// Transport is the synchronous register access the core needs from a Modbus client.
// Addresses are 0-based holding register addresses as sent on the wire.
type Transport interface {
	ReadHoldingRegisters(ctx context.Context, address, quantity uint16) ([]uint16, error)
	WriteSingleRegister(ctx context.Context, address, value uint16) error
}

// Conn is a Transport with an explicit connection lifecycle.
type Conn interface {
	Transport
	Open() error
	Close() error
	IsOpen() bool
}

// Fixed protocol addresses (0-based).
const (
	// IdentifierAddress holds the 32-bit "SunS" marker (register 40000 in 1-based terms).
	IdentifierAddress uint16 = 39999
	// ObfuscatedIdentifierAddress is where the obfuscated identifier is re-read.
	ObfuscatedIdentifierAddress uint16 = 40000
	// KeyAddress holds the vendor session key used by the obfuscation fallback.
	KeyAddress uint16 = 40076
	// ChainBaseAddress is the header of the first model, right after the identifier.
	ChainBaseAddress uint16 = 40001
	// ControlReleaseAddress is written with 0xFFFF once a controller finished setup.
	ControlReleaseAddress uint16 = 40082

	SunSpecIdentifier uint32 = 0x53756E53
)
