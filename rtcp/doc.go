// Package rtcp implements the generic RTCP (RTP Control Protocol)
// wire format defined by RFC 3550 §6.4: decoding raw datagrams into a
// validated header plus opaque payload view, and constructing one from
// a payload type and raw body bytes.
//
// # Decoding
//
//	var packet rtcp.Packet
//	if err := packet.Unmarshal(datagram); err != nil {
//	    log.Printf("dropping control packet: %v", err)
//	    return
//	}
//
// Decoded packets borrow the source buffer: Payload aliases it and the
// caller must keep it alive for the packet's lifetime. Decode failures
// are classified with errors.Is against the sentinels in errors.go.
//
// # Limitations
//
// The decoder is generic: it locates the payload by assuming one
// fixed 24-byte report block per declared count plus one mandatory
// trailing block, and carries the count, type, and wire length fields
// opaquely. That stride matches the report-bearing packet types but
// not, for example, SDES chunks, which are variable-length. Dispatch
// on the packet type to the layouts declared in reports.go belongs to
// a typed parser layered on top of this package; compound-packet
// traversal and report generation are likewise out of scope.
//
// # Thread Safety
//
// Decoding and construction are pure and reentrant; independent
// buffers may be processed concurrently without coordination.
package rtcp
