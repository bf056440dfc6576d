package rtcp

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the fixed RTCP header: flags, packet type, length.
	HeaderSize = 4

	// Version is the fixed RTCP protocol version.
	Version = 2

	// reportBlockSize is the stride the generic decoder assumes per
	// declared report block (see the package doc for the limitation).
	reportBlockSize = 24
)

// RTCP packet types defined by RFC 3550 §12.1. Unmarshal masks the
// type octet to 7 bits, treating the top bit as reserved on the
// generic path; typed parsers should dispatch on the full octet.
const (
	TypeSenderReport       uint8 = 200
	TypeReceiverReport     uint8 = 201
	TypeSourceDescription  uint8 = 202
	TypeGoodbye            uint8 = 203
	TypeApplicationDefined uint8 = 204
)

// Packet is a validated view over the generic RTCP packet structure.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|V=2|P|    C    |      PT       |             length            | header
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	:                               ...                             : data
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Count, Type, and Length are carried opaquely: the generic decoder
// uses Count only to locate the payload offset and never dispatches on
// Type. Payload subslices the source buffer after Unmarshal; the
// caller must keep that buffer alive for the packet's lifetime.
type Packet struct {
	Count   uint8
	Type    uint8
	Length  uint16
	Payload []byte
}

// NewPacket builds a generic RTCP packet from a payload type and raw
// body bytes, with a zero count and the wire length field set to the
// payload size. The payload is referenced, not copied.
func NewPacket(packetType uint8, payload []byte) *Packet {
	return &Packet{
		Type:    packetType,
		Length:  uint16(len(payload)),
		Payload: payload,
	}
}

// Unmarshal parses buf into p. The payload offset is derived from the
// count field assuming one fixed-size report block per declared count
// plus one mandatory trailing block; the offset is bounds-checked
// before any region is read. It stops at the first violation and
// returns a sentinel error (see errors.go) wrapped with the offending
// value; on failure p is left unchanged. buf is never mutated, and on
// success Payload aliases it.
func (p *Packet) Unmarshal(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrPacketTooShort, len(buf))
	}
	if version := buf[0] >> 6; version != Version {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	count := buf[0] & 0x0F
	payloadOffset := HeaderSize + int(count)*reportBlockSize + reportBlockSize
	if payloadOffset > len(buf) {
		return fmt.Errorf("%w: count %d", ErrTruncatedReports, count)
	}
	paddingLength := 0
	if buf[0]&0x20 != 0 {
		paddingLength = int(buf[len(buf)-1])
	}
	if payloadOffset+paddingLength > len(buf) {
		return fmt.Errorf("%w: %d bytes", ErrInvalidPadding, paddingLength)
	}

	p.Count = count
	p.Type = buf[1] & 0x7F
	p.Length = binary.BigEndian.Uint16(buf[2:4])
	p.Payload = buf[payloadOffset : len(buf)-paddingLength]
	return nil
}

// String renders the header fields for debugging.
func (p *Packet) String() string {
	return fmt.Sprintf("RTCPPacket{count: %d, payload_type: %d, length: %d, payload_len: %d}",
		p.Count, p.Type, p.Length, len(p.Payload))
}
