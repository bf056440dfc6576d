package rtp

import "errors"

// Sentinel errors for RTP decode failures.
// These errors enable reliable error classification using errors.Is().
// Unmarshal wraps them with the offending value for diagnostics.
var (
	// ErrPacketTooShort indicates the buffer is smaller than the fixed header.
	ErrPacketTooShort = errors.New("packet shorter than fixed RTP header")

	// ErrInvalidVersion indicates the version field is not 2.
	ErrInvalidVersion = errors.New("unsupported RTP version")

	// ErrInvalidCSRCCount indicates the declared CSRC list exceeds the buffer.
	ErrInvalidCSRCCount = errors.New("CSRC list exceeds packet bounds")

	// ErrMissingExtension indicates the extension flag is set but the
	// four-byte extension header does not fit in the buffer.
	ErrMissingExtension = errors.New("extension flag set but extension header missing")

	// ErrInvalidExtensionLength indicates the declared extension body
	// exceeds the remaining buffer.
	ErrInvalidExtensionLength = errors.New("extension exceeds packet bounds")

	// ErrInvalidPadding indicates the declared padding exceeds the
	// remaining buffer.
	ErrInvalidPadding = errors.New("padding exceeds packet bounds")
)
