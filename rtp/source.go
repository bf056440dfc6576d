package rtp

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomSource supplies the random initial values for a packetizer's
// stream identity and counters. Tests inject a deterministic
// implementation; production code uses CryptoRandomSource.
type RandomSource interface {
	// Uint16 returns a uniformly random 16-bit value.
	Uint16() (uint16, error)
	// Uint32 returns a uniformly random 32-bit value.
	Uint32() (uint32, error)
}

// CryptoRandomSource draws from crypto/rand. It is the default source
// used by NewPacketizer.
type CryptoRandomSource struct{}

func (CryptoRandomSource) Uint16() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (CryptoRandomSource) Uint32() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
