package sunspec

import "errors"

var (
	// ErrTransport wraps any connection or I/O failure reported by the transport.
	// The session should be considered unusable after it.
	ErrTransport = errors.New("sunspec: transport error")

	// ErrNotSunSpec means the identifier never matched, plain or obfuscated.
	ErrNotSunSpec = errors.New("sunspec: device did not identify as SunSpec")

	// ErrChainTooLong means the model chain did not terminate within MaxChainLength blocks.
	ErrChainTooLong = errors.New("sunspec: model chain exceeds iteration cap")

	ErrUnknownRegister = errors.New("sunspec: unknown register")
	ErrNoSuchDevice    = errors.New("sunspec: no such device in deployment")
	ErrWriteFailed     = errors.New("sunspec: register write failed")

	// ErrShortRead is returned when the transport answered with fewer words than the
	// descriptor needs. Nothing is decoded in that case.
	ErrShortRead = errors.New("sunspec: short register read")

	ErrValueRange    = errors.New("sunspec: value out of register range")
	ErrUnknownFamily = errors.New("sunspec: neither FX nor GS deployment found")
	ErrSessionClosed = errors.New("sunspec: session closed")
)
