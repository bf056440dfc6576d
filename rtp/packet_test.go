package rtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basicPacket is a version-2 datagram with an extension header
// (profile 0x0001, one data word) followed by a 5-byte payload.
var basicPacket = []byte{
	0x90, 0xe0, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
	0x27, 0x82, 0x00, 0x01, 0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFF,
	0x98, 0x36, 0xbe, 0x88, 0x9e,
}

// withLastByte clones basicPacket, optionally sets the padding flag,
// and replaces the final byte.
func withLastByte(padding bool, last byte) []byte {
	data := append([]byte(nil), basicPacket...)
	if padding {
		data[0] |= 0x20
	}
	data[len(data)-1] = last
	return data
}

func TestPacketUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		wantErr     error
		errContains string
	}{
		{
			name:        "Buffer shorter than fixed header",
			data:        []byte{0x80, 0xe0, 0x69, 0x8f, 0xd9},
			wantErr:     ErrPacketTooShort,
			errContains: "5",
		},
		{
			name: "Version 1 rejected",
			data: []byte{
				0x70, 0xe0, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
				0x27, 0x82, 0x00, 0x01, 0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFF,
				0x98, 0x36, 0xbe, 0x88, 0x06,
			},
			wantErr:     ErrInvalidVersion,
			errContains: "1",
		},
		{
			name: "Version 0 rejected",
			data: []byte{
				0x00, 0xe0, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
				0x27, 0x82,
			},
			wantErr:     ErrInvalidVersion,
			errContains: "0",
		},
		{
			name: "CSRC count claims bytes past the buffer",
			data: []byte{
				0x82, 0xe0, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
				0x27, 0x82,
			},
			wantErr:     ErrInvalidCSRCCount,
			errContains: "2",
		},
		{
			name: "Extension flag without extension header",
			data: []byte{
				0x90, 0x60, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
				0x27, 0x82,
			},
			wantErr: ErrMissingExtension,
		},
		{
			name: "Extension word count past the buffer",
			data: []byte{
				0x90, 0x60, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
				0x27, 0x82, 0x99, 0x99, 0x99, 0x99,
			},
			wantErr:     ErrInvalidExtensionLength,
			errContains: "157288",
		},
		{
			name:        "Padding exceeds trailing space",
			data:        withLastByte(true, 0x06),
			wantErr:     ErrInvalidPadding,
			errContains: "6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var packet Packet
			err := packet.Unmarshal(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestPacketUnmarshalBasic(t *testing.T) {
	var packet Packet
	require.NoError(t, packet.Unmarshal(basicPacket))

	assert.Empty(t, packet.CSRC)
	assert.True(t, packet.Marker)
	assert.Equal(t, uint8(96), packet.PayloadType)
	assert.Equal(t, uint16(27023), packet.SequenceNumber)
	assert.Equal(t, uint32(3653407706), packet.Timestamp)
	assert.Equal(t, uint32(476325762), packet.SSRC)
	require.NotNil(t, packet.Extension)
	assert.Equal(t, uint16(0x0001), packet.Extension.ProfileID)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, packet.Extension.Data)
	assert.Equal(t, []byte{0x98, 0x36, 0xbe, 0x88, 0x9e}, packet.Payload)
}

func TestPacketUnmarshalPadding(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		payloadSize int
	}{
		{
			name:        "Padding removes trailing bytes",
			data:        withLastByte(true, 0x04),
			payloadSize: 1,
		},
		{
			name:        "Padding can consume the whole payload",
			data:        withLastByte(true, 0x05),
			payloadSize: 0,
		},
		{
			name:        "Last byte ignored without padding flag",
			data:        withLastByte(false, 0x05),
			payloadSize: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var packet Packet
			require.NoError(t, packet.Unmarshal(tt.data))
			assert.Len(t, packet.Payload, tt.payloadSize)
			// Padding never changes the header fields.
			assert.Equal(t, uint16(27023), packet.SequenceNumber)
			assert.Equal(t, uint32(3653407706), packet.Timestamp)
			assert.Equal(t, uint32(476325762), packet.SSRC)
		})
	}
}

func TestPacketUnmarshalExtension(t *testing.T) {
	t.Run("One-word extension", func(t *testing.T) {
		data := []byte{
			0x90, 0xe0, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
			0x27, 0x82, 0xBE, 0xDE, 0x00, 0x01, 0x50, 0xAA, 0x00, 0x00,
			0x98, 0x36, 0xbe, 0x88, 0x9e,
		}
		var packet Packet
		require.NoError(t, packet.Unmarshal(data))
		require.NotNil(t, packet.Extension)
		assert.Equal(t, uint16(0xBEDE), packet.Extension.ProfileID)
		assert.Equal(t, []byte{0x50, 0xAA, 0x00, 0x00}, packet.Extension.Data)
		assert.Len(t, packet.Payload, 5)
	})

	t.Run("Zero-word extension is present but empty", func(t *testing.T) {
		data := []byte{
			0x90, 0x60, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
			0x27, 0x82, 0xBE, 0xDE, 0x00, 0x00,
		}
		var packet Packet
		require.NoError(t, packet.Unmarshal(data))
		require.NotNil(t, packet.Extension)
		assert.Equal(t, uint16(0xBEDE), packet.Extension.ProfileID)
		assert.Empty(t, packet.Extension.Data)
		assert.Empty(t, packet.Payload)
	})

	t.Run("No extension flag leaves Extension nil", func(t *testing.T) {
		data := []byte{
			0x80, 0x60, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
			0x27, 0x82, 0x01, 0x02, 0x03,
		}
		var packet Packet
		require.NoError(t, packet.Unmarshal(data))
		assert.Nil(t, packet.Extension)
		assert.Equal(t, []byte{0x01, 0x02, 0x03}, packet.Payload)
	})
}

func TestPacketUnmarshalCSRC(t *testing.T) {
	data := []byte{
		0x82, 0x60, 0x69, 0x8f, 0xd9, 0xc2, 0x93, 0xda, 0x1c, 0x64,
		0x27, 0x82,
		0x00, 0x00, 0x00, 0x01, // CSRC 1
		0xDE, 0xAD, 0xBE, 0xEF, // CSRC 2
		0xAB, 0xCD,
	}
	var packet Packet
	require.NoError(t, packet.Unmarshal(data))
	assert.Equal(t, []uint32{1, 0xDEADBEEF}, packet.CSRC)
	assert.Equal(t, []byte{0xAB, 0xCD}, packet.Payload)
}

func TestPacketRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		packet *Packet
	}{
		{
			name:   "Plain packet",
			packet: NewPacket(true, 96, 27023, 3653407706, 476325762, []byte{0x98, 0x36, 0xbe, 0x88, 0x9e}),
		},
		{
			name:   "Empty payload",
			packet: NewPacket(false, 0, 0, 0, 0, nil),
		},
		{
			name:   "Maximum field values",
			packet: NewPacket(true, 127, 65535, 4294967295, 4294967295, []byte{0xFF}),
		},
		{
			name: "CSRC list and extension",
			packet: &Packet{
				Marker:         false,
				PayloadType:    111,
				SequenceNumber: 4242,
				Timestamp:      90000,
				SSRC:           0xCAFEBABE,
				CSRC:           []uint32{7, 0xFFFFFFFF, 0},
				Extension:      &Extension{ProfileID: 0xBEDE, Data: []byte{0x10, 0x20, 0x30, 0x40}},
				Payload:        []byte{1, 2, 3, 4, 5, 6, 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := tt.packet.Marshal()
			require.NoError(t, err)
			assert.Len(t, buf, tt.packet.MarshalSize())

			var decoded Packet
			require.NoError(t, decoded.Unmarshal(buf))
			assert.Equal(t, tt.packet.Marker, decoded.Marker)
			assert.Equal(t, tt.packet.PayloadType, decoded.PayloadType)
			assert.Equal(t, tt.packet.SequenceNumber, decoded.SequenceNumber)
			assert.Equal(t, tt.packet.Timestamp, decoded.Timestamp)
			assert.Equal(t, tt.packet.SSRC, decoded.SSRC)
			assert.Equal(t, len(tt.packet.CSRC), len(decoded.CSRC))
			if len(tt.packet.CSRC) > 0 {
				assert.Equal(t, tt.packet.CSRC, decoded.CSRC)
			}
			if tt.packet.Extension != nil {
				require.NotNil(t, decoded.Extension)
				assert.Equal(t, tt.packet.Extension.ProfileID, decoded.Extension.ProfileID)
				assert.Equal(t, tt.packet.Extension.Data, decoded.Extension.Data)
			} else {
				assert.Nil(t, decoded.Extension)
			}
			assert.Equal(t, len(tt.packet.Payload), len(decoded.Payload))
			if len(tt.packet.Payload) > 0 {
				assert.Equal(t, tt.packet.Payload, decoded.Payload)
			}
		})
	}
}

func TestPacketMarshalValidation(t *testing.T) {
	t.Run("CSRC list too long", func(t *testing.T) {
		packet := NewPacket(false, 96, 1, 2, 3, nil)
		packet.CSRC = make([]uint32, 16)
		_, err := packet.Marshal()
		assert.ErrorIs(t, err, ErrInvalidCSRCCount)
	})

	t.Run("Extension data not word aligned", func(t *testing.T) {
		packet := NewPacket(false, 96, 1, 2, 3, nil)
		packet.Extension = &Extension{ProfileID: 0xBEDE, Data: []byte{1, 2, 3}}
		_, err := packet.Marshal()
		assert.ErrorIs(t, err, ErrInvalidExtensionLength)
	})
}

func TestPacketUnmarshalBorrowsBuffer(t *testing.T) {
	data := append([]byte(nil), basicPacket...)
	var packet Packet
	require.NoError(t, packet.Unmarshal(data))

	// The payload is a view, not a copy: mutating the source buffer
	// shows through.
	data[20] = 0x42
	assert.Equal(t, byte(0x42), packet.Payload[0])
}

func TestPacketString(t *testing.T) {
	var packet Packet
	require.NoError(t, packet.Unmarshal(basicPacket))

	rendered := packet.String()
	assert.Contains(t, rendered, "payload_type: 96")
	assert.Contains(t, rendered, "sequence: 27023")
	assert.Contains(t, rendered, "payload_len: 5")
}

func TestPacketLogFields(t *testing.T) {
	var packet Packet
	require.NoError(t, packet.Unmarshal(basicPacket))

	fields := packet.LogFields()
	assert.Equal(t, uint32(476325762), fields["ssrc"])
	assert.Equal(t, uint16(27023), fields["sequence"])
	assert.Equal(t, 5, fields["payload_size"])
}
