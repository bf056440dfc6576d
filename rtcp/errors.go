package rtcp

import "errors"

// Sentinel errors for RTCP decode failures.
// These errors enable reliable error classification using errors.Is().
// Unmarshal wraps them with the offending value for diagnostics.
var (
	// ErrPacketTooShort indicates the buffer is smaller than the fixed header.
	ErrPacketTooShort = errors.New("packet shorter than fixed RTCP header")

	// ErrInvalidVersion indicates the version field is not 2.
	ErrInvalidVersion = errors.New("unsupported RTCP version")

	// ErrTruncatedReports indicates the declared report count claims
	// more report blocks than the buffer holds.
	ErrTruncatedReports = errors.New("report blocks exceed packet bounds")

	// ErrInvalidPadding indicates the declared padding exceeds the
	// remaining buffer.
	ErrInvalidPadding = errors.New("padding exceeds packet bounds")
)
