package sunspec

import (
	"context"
	"fmt"
)

// WordTransform reverses the vendor obfuscation of a single register word.
// The mapping is keyed by the session key read from KeyAddress and must be
// injective for a fixed key.
type WordTransform interface {
	Deobfuscate(key, word uint16) uint16
}

// TransformFunc adapts a plain function to WordTransform.
type TransformFunc func(key, word uint16) uint16

func (f TransformFunc) Deobfuscate(key, word uint16) uint16 {
	return f(key, word)
}

// ObfuscationState is the result of identifier verification for a session.
type ObfuscationState struct {
	Obfuscated bool          `json:"obfuscated"`
	Key        uint16        `json:"key,omitempty"`
	Transform  WordTransform `json:"-"`
}

// Word returns w with the session transform applied when obfuscation is active.
func (s ObfuscationState) Word(w uint16) uint16 {
	if !s.Obfuscated || s.Transform == nil {
		return w
	}
	return s.Transform.Deobfuscate(s.Key, w)
}

func (s ObfuscationState) words(ws []uint16) []uint16 {
	out := make([]uint16, len(ws))
	for i, w := range ws {
		out[i] = s.Word(w)
	}
	return out
}

// Detect verifies the SunSpec identifier and, when the plain check fails, tries
// the obfuscated form using the key stored at KeyAddress. The obfuscated
// identifier is read from ObfuscatedIdentifierAddress and only its second word
// goes through the transform.
func Detect(ctx context.Context, t Transport, transform WordTransform) (ObfuscationState, error) {
	words, err := t.ReadHoldingRegisters(ctx, IdentifierAddress, 2)
	if err != nil {
		return ObfuscationState{}, fmt.Errorf("%w: read identifier at %d: %w", ErrTransport, IdentifierAddress, err)
	}
	if len(words) < 2 {
		return ObfuscationState{}, fmt.Errorf("%w: identifier read returned %d words", ErrShortRead, len(words))
	}
	if uint32(words[0])<<16|uint32(words[1]) == SunSpecIdentifier {
		return ObfuscationState{}, nil
	}

	keyWords, err := t.ReadHoldingRegisters(ctx, KeyAddress, 1)
	if err != nil || len(keyWords) < 1 {
		return ObfuscationState{}, fmt.Errorf("%w: identifier 0x%04X%04X and no session key", ErrNotSunSpec, words[0], words[1])
	}
	if transform == nil {
		return ObfuscationState{}, fmt.Errorf("%w: identifier mismatch and no de-obfuscation transform configured", ErrNotSunSpec)
	}
	key := keyWords[0]

	words, err = t.ReadHoldingRegisters(ctx, ObfuscatedIdentifierAddress, 3)
	if err != nil {
		return ObfuscationState{}, fmt.Errorf("%w: re-read identifier at %d: %w", ErrTransport, ObfuscatedIdentifierAddress, err)
	}
	if len(words) < 2 {
		return ObfuscationState{}, fmt.Errorf("%w: identifier re-read returned %d words", ErrShortRead, len(words))
	}

	id := uint32(words[0])<<16 | uint32(transform.Deobfuscate(key, words[1]))
	if id != SunSpecIdentifier {
		return ObfuscationState{}, fmt.Errorf("%w: identifier 0x%08X with key 0x%04X", ErrNotSunSpec, id, key)
	}

	return ObfuscationState{Obfuscated: true, Key: key, Transform: transform}, nil
}
