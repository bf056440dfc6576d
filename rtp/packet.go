package rtp

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// HeaderSize is the fixed part of the RTP header, up to and
	// including the SSRC field.
	HeaderSize = 12

	// Version is the fixed RTP protocol version.
	Version = 2

	// MaxCSRCCount is the largest CSRC list a 4-bit count field can declare.
	MaxCSRCCount = 15
)

// Packet is a validated view over one RTP datagram.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|V=2|P|X|  CC   |M|     PT      |       sequence number         |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                           timestamp                           |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|           synchronization source (SSRC) identifier            |
//	+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+=+
//	|            contributing source (CSRC) identifiers             |
//	|                             ....                              |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Payload and Extension.Data subslice the source buffer after
// Unmarshal; the caller must keep that buffer alive for the packet's
// lifetime. The padding region and the header itself are never part of
// Payload. A Packet is not mutated by this package after Unmarshal
// returns.
type Packet struct {
	Marker         bool
	PayloadType    uint8
	SequenceNumber uint16
	Timestamp      uint32
	SSRC           uint32
	CSRC           []uint32
	Extension      *Extension
	Payload        []byte
}

// Extension is the optional RTP header extension. Data length is
// always a multiple of 4, and may be 0 for a present-but-empty
// extension.
type Extension struct {
	ProfileID uint16
	Data      []byte
}

// NewPacket builds an RTP packet from explicit field values with no
// CSRC list, no extension, and no padding. The payload is referenced,
// not copied. The caller supplies protocol-legal values; payloadType
// in particular must already fit in 7 bits.
func NewPacket(marker bool, payloadType uint8, sequenceNumber uint16, timestamp, ssrc uint32, payload []byte) *Packet {
	return &Packet{
		Marker:         marker,
		PayloadType:    payloadType,
		SequenceNumber: sequenceNumber,
		Timestamp:      timestamp,
		SSRC:           ssrc,
		Payload:        payload,
	}
}

// Unmarshal parses buf into p, validating every variable-length region
// before it is read. It stops at the first violation and returns a
// sentinel error (see errors.go) wrapped with the offending value; on
// failure p is left unchanged. buf is never mutated, and on success
// Payload and Extension.Data alias it.
func (p *Packet) Unmarshal(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrPacketTooShort, len(buf))
	}
	if version := buf[0] >> 6; version != Version {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	// Offsets below depend on attacker-controlled counts; bounds are
	// established here so field extraction cannot index out of range.
	cc := int(buf[0] & 0x0F)
	extensionOffset := HeaderSize + cc*4
	if extensionOffset > len(buf) {
		return fmt.Errorf("%w: %d", ErrInvalidCSRCCount, cc)
	}
	hasExtension := buf[0]&0x10 != 0
	if hasExtension && extensionOffset+4 > len(buf) {
		return ErrMissingExtension
	}
	extensionLength := 0
	if hasExtension {
		// Declared word count excludes the 4-byte extension header.
		extensionLength = int(binary.BigEndian.Uint16(buf[extensionOffset+2:extensionOffset+4]))*4 + 4
		if extensionOffset+extensionLength > len(buf) {
			return fmt.Errorf("%w: %d bytes", ErrInvalidExtensionLength, extensionLength)
		}
	}
	paddingLength := 0
	if buf[0]&0x20 != 0 {
		paddingLength = int(buf[len(buf)-1])
	}
	if extensionOffset+extensionLength+paddingLength > len(buf) {
		return fmt.Errorf("%w: %d bytes", ErrInvalidPadding, paddingLength)
	}

	p.Marker = buf[1]&0x80 != 0
	p.PayloadType = buf[1] & 0x7F
	p.SequenceNumber = binary.BigEndian.Uint16(buf[2:4])
	p.Timestamp = binary.BigEndian.Uint32(buf[4:8])
	p.SSRC = binary.BigEndian.Uint32(buf[8:12])
	p.CSRC = nil
	if cc > 0 {
		p.CSRC = make([]uint32, cc)
		for i := range p.CSRC {
			p.CSRC[i] = binary.BigEndian.Uint32(buf[HeaderSize+i*4:])
		}
	}
	p.Extension = nil
	if hasExtension {
		p.Extension = &Extension{
			ProfileID: binary.BigEndian.Uint16(buf[extensionOffset : extensionOffset+2]),
			Data:      buf[extensionOffset+4 : extensionOffset+extensionLength],
		}
	}
	// May be empty, e.g. a padding-only packet.
	p.Payload = buf[extensionOffset+extensionLength : len(buf)-paddingLength]
	return nil
}

// MarshalSize returns the number of bytes Marshal produces for p.
func (p *Packet) MarshalSize() int {
	size := HeaderSize + 4*len(p.CSRC)
	if p.Extension != nil {
		size += 4 + len(p.Extension.Data)
	}
	return size + len(p.Payload)
}

// Marshal serializes p into a freshly allocated buffer, big-endian,
// without padding. The only caller-built states it rejects are a CSRC
// list longer than the 4-bit count field can carry and extension data
// that is not a whole number of 32-bit words.
func (p *Packet) Marshal() ([]byte, error) {
	if len(p.CSRC) > MaxCSRCCount {
		return nil, fmt.Errorf("%w: %d entries", ErrInvalidCSRCCount, len(p.CSRC))
	}
	if p.Extension != nil && len(p.Extension.Data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidExtensionLength, len(p.Extension.Data))
	}

	buf := make([]byte, p.MarshalSize())
	buf[0] = Version<<6 | byte(len(p.CSRC))
	if p.Extension != nil {
		buf[0] |= 0x10
	}
	buf[1] = p.PayloadType & 0x7F
	if p.Marker {
		buf[1] |= 0x80
	}
	binary.BigEndian.PutUint16(buf[2:4], p.SequenceNumber)
	binary.BigEndian.PutUint32(buf[4:8], p.Timestamp)
	binary.BigEndian.PutUint32(buf[8:12], p.SSRC)

	offset := HeaderSize
	for _, csrc := range p.CSRC {
		binary.BigEndian.PutUint32(buf[offset:], csrc)
		offset += 4
	}
	if p.Extension != nil {
		binary.BigEndian.PutUint16(buf[offset:], p.Extension.ProfileID)
		binary.BigEndian.PutUint16(buf[offset+2:], uint16(len(p.Extension.Data)/4))
		offset += 4
		offset += copy(buf[offset:], p.Extension.Data)
	}
	copy(buf[offset:], p.Payload)
	return buf, nil
}

// String renders the header fields and payload length for debugging.
func (p *Packet) String() string {
	extension := "none"
	if p.Extension != nil {
		extension = fmt.Sprintf("{profile: %#04x, data_len: %d}", p.Extension.ProfileID, len(p.Extension.Data))
	}
	return fmt.Sprintf("RTPPacket{cc: %d, marker: %t, payload_type: %d, sequence: %d, timestamp: %d, ssrc: %d, extension: %s, payload_len: %d}",
		len(p.CSRC), p.Marker, p.PayloadType, p.SequenceNumber, p.Timestamp, p.SSRC, extension, len(p.Payload))
}

// LogFields returns the packet's header fields as structured logging
// fields so callers can log decoded packets without reformatting them.
func (p *Packet) LogFields() logrus.Fields {
	return logrus.Fields{
		"ssrc":         p.SSRC,
		"sequence":     p.SequenceNumber,
		"timestamp":    p.Timestamp,
		"payload_type": p.PayloadType,
		"marker":       p.Marker,
		"csrc_count":   len(p.CSRC),
		"payload_size": len(p.Payload),
	}
}
