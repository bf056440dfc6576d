package rtp

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Packetizer slices encoded media frames into MTU-bounded RTP packets.
//
// One instance corresponds to exactly one outbound media source: the
// SSRC and payload type are fixed at construction, while the sequence
// number and timestamp advance across Packetize calls so receivers can
// detect loss and reorder across frame boundaries. Both counters start
// at random values per RFC 3550.
//
// A Packetizer is safe for concurrent use; the internal mutex holds
// each Packetize call exclusive so emitted sequence numbers stay
// monotonic.
type Packetizer struct {
	mu             sync.Mutex
	mtu            int
	payloadType    uint8
	ssrc           uint32
	sequenceNumber uint16
	timestamp      uint32
}

// NewPacketizer creates a packetizer for one outbound stream, seeding
// the SSRC, initial sequence number, and initial timestamp from
// crypto/rand.
//
// Parameters:
//   - mtu: Largest packet Packetize may emit, in bytes; must exceed
//     the 12-byte RTP header
//   - payloadType: Fixed RTP payload type for the stream (7-bit)
//
// Returns:
//   - *Packetizer: New packetizer instance
//   - error: Any error that occurred during setup
func NewPacketizer(mtu int, payloadType uint8) (*Packetizer, error) {
	return NewPacketizerWithSource(mtu, payloadType, CryptoRandomSource{})
}

// NewPacketizerWithSource creates a packetizer whose initial sequence
// number, timestamp, and SSRC are drawn from the supplied source,
// allowing deterministic seeds in tests.
func NewPacketizerWithSource(mtu int, payloadType uint8, source RandomSource) (*Packetizer, error) {
	logrus.WithFields(logrus.Fields{
		"function":     "NewPacketizerWithSource",
		"mtu":          mtu,
		"payload_type": payloadType,
	}).Info("Creating new RTP packetizer")

	if mtu <= HeaderSize {
		logrus.WithFields(logrus.Fields{
			"function": "NewPacketizerWithSource",
			"mtu":      mtu,
		}).Error("Invalid MTU")
		return nil, fmt.Errorf("mtu must exceed the %d-byte RTP header, got %d", HeaderSize, mtu)
	}
	if payloadType > 0x7F {
		logrus.WithFields(logrus.Fields{
			"function":     "NewPacketizerWithSource",
			"payload_type": payloadType,
		}).Error("Invalid payload type")
		return nil, fmt.Errorf("payload type must fit in 7 bits, got %d", payloadType)
	}
	if source == nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewPacketizerWithSource",
			"error":    "random source cannot be nil",
		}).Error("Invalid random source")
		return nil, fmt.Errorf("random source cannot be nil")
	}

	ssrc, err := source.Uint32()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SSRC: %w", err)
	}
	sequenceNumber, err := source.Uint16()
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial sequence number: %w", err)
	}
	timestamp, err := source.Uint32()
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial timestamp: %w", err)
	}

	packetizer := &Packetizer{
		mtu:            mtu,
		payloadType:    payloadType,
		ssrc:           ssrc,
		sequenceNumber: sequenceNumber,
		timestamp:      timestamp,
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewPacketizerWithSource",
		"ssrc":     ssrc,
		"mtu":      mtu,
	}).Info("RTP packetizer created successfully")

	return packetizer, nil
}

// SSRC returns the fixed synchronization source identifier of the
// stream this packetizer emits.
func (p *Packetizer) SSRC() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ssrc
}

// Packetize splits one encoded frame into ordered RTP packets whose
// marshaled size never exceeds the configured MTU.
//
// The timestamp advances by samples (wrapping) before any packet is
// built, modeling one frame's worth of media time since the previous
// call; every packet of the call shares the advanced timestamp. Each
// packet consumes one sequence number (wrapping) and only the final
// packet of the frame carries the marker bit. Packet payloads subslice
// the caller's buffer.
//
// Packetize never fails: an empty payload yields an empty, non-nil
// result while still advancing the timestamp.
func (p *Packetizer) Packetize(payload []byte, samples uint32) []*Packet {
	p.mu.Lock()
	defer p.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":  "Packetizer.Packetize",
		"data_size": len(payload),
		"samples":   samples,
	}).Debug("Packetizing media frame")

	p.timestamp += samples

	chunkSize := p.mtu - HeaderSize
	chunkCount := (len(payload) + chunkSize - 1) / chunkSize
	packets := make([]*Packet, 0, chunkCount)
	for i := 0; i < chunkCount; i++ {
		p.sequenceNumber++
		end := (i + 1) * chunkSize
		if end > len(payload) {
			end = len(payload)
		}
		marker := i == chunkCount-1
		packets = append(packets, NewPacket(marker, p.payloadType, p.sequenceNumber, p.timestamp, p.ssrc, payload[i*chunkSize:end]))
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Packetizer.Packetize",
		"packet_count": len(packets),
		"timestamp":    p.timestamp,
		"ssrc":         p.ssrc,
	}).Debug("Media frame packetized successfully")

	return packets
}
