// Package rtp implements the RTP (Real-time Transport Protocol) wire
// format defined by RFC 3550 §5.1: decoding raw datagrams into
// validated packet views, encoding packets back to bytes, and slicing
// encoder output into MTU-bounded packet sequences.
//
// # Architecture Overview
//
// The package consists of three components:
//
//   - Packet: Validated view over one RTP datagram with Marshal and
//     Unmarshal
//   - Packetizer: Stateful sequence/timestamp generator that splits an
//     encoded frame into ready-to-send packets
//   - RandomSource: Injectable entropy for the packetizer's initial
//     stream identity and counters
//
// # Decoding
//
// Unmarshal validates every variable-length region (CSRC list,
// extension block, padding) before reading it, so a hostile datagram
// produces a classified error rather than an out-of-bounds access:
//
//	var packet rtp.Packet
//	if err := packet.Unmarshal(datagram); err != nil {
//	    log.Printf("dropping datagram: %v", err)
//	    return
//	}
//
// Decoded packets borrow the source buffer: Payload and Extension.Data
// alias it, and the caller must keep it alive for the packet's
// lifetime. Decode failures are classified with errors.Is against the
// sentinels in errors.go.
//
// # Packetization
//
// The Packetizer turns one encoded frame per call into an ordered
// packet sequence:
//
//	packetizer, err := rtp.NewPacketizer(1200, 96)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	packets := packetizer.Packetize(frame, 960)
//	for _, packet := range packets {
//	    buf, _ := packet.Marshal()
//	    // hand buf to the transport
//	}
//
// Sequence numbers increase strictly (modulo 65536) across all calls
// on one instance, and exactly the last packet of each frame carries
// the marker bit.
//
// # Deterministic Testing
//
// The packetizer's random initial state supports an injectable source:
//
//	type fixedSource struct{}
//	func (fixedSource) Uint16() (uint16, error) { return 1000, nil }
//	func (fixedSource) Uint32() (uint32, error) { return 42, nil }
//
//	packetizer, _ := rtp.NewPacketizerWithSource(1200, 96, fixedSource{})
//
// # Thread Safety
//
// Packet decoding and encoding are pure and reentrant; independent
// buffers may be processed concurrently without coordination. The
// Packetizer serializes its calls internally with sync.Mutex.
//
// # Scope
//
// Transport I/O, SRTP, jitter buffering, and session management are
// the caller's concern; this package only converts between bytes and
// typed packets.
package rtp
