// Test Type: Unit Test
// Description: Tests for the junction package - reparse payload binary
// encoding and decoding

package junction

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxTargetLength(t *testing.T) {
	// 16384 bytes minus the 8-byte header, 8-byte descriptor, one 4-unit
	// kernel prefix and two NUL terminators, split across two copies of
	// the target, in 2-byte units.
	assert.Equal(t, 4089, MaxTargetLength)
}

func TestEncodeMountPointPayloadLayout(t *testing.T) {
	target := `C:\some\dir`
	buf, err := encodeMountPointPayload(target)
	require.NoError(t, err)

	n := len(target) // ASCII, so UTF-16 units == bytes of the string
	subLen := (4 + n) * 2
	printLen := n * 2

	assert.Equal(t, uint32(0xA0000003), binary.LittleEndian.Uint32(buf[0:]), "reparse tag")
	assert.Equal(t, uint16(8+subLen+printLen+4), binary.LittleEndian.Uint16(buf[4:]), "reparse data length")
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[6:]), "reserved")
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(buf[8:]), "substitute name offset")
	assert.Equal(t, uint16(subLen), binary.LittleEndian.Uint16(buf[10:]), "substitute name length")
	assert.Equal(t, uint16(subLen+2), binary.LittleEndian.Uint16(buf[12:]), "print name offset")
	assert.Equal(t, uint16(printLen), binary.LittleEndian.Uint16(buf[14:]), "print name length")

	// Total size is header + reparse data length.
	assert.Len(t, buf, 8+8+subLen+printLen+4)

	// The path buffer starts with the kernel-form substitute name.
	pathBuf := buf[16:]
	var sub strings.Builder
	for i := 0; i < subLen; i += 2 {
		sub.WriteByte(byte(binary.LittleEndian.Uint16(pathBuf[i:])))
	}
	assert.Equal(t, `\??\`+target, sub.String())

	// Both strings are NUL-terminated.
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(pathBuf[subLen:]))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(pathBuf[subLen+2+printLen:]))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"short", `C:\x`},
		{"typical", `C:\Users\build\output\bin`},
		{"non_ascii", `C:\bücher\日本語`},
		{"max_length", `C:\` + strings.Repeat("a", MaxTargetLength-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := encodeMountPointPayload(tt.target)
			require.NoError(t, err)

			target, length, isJunction, err := decodeMountPointTarget(buf)
			require.NoError(t, err)
			assert.True(t, isJunction)
			assert.Equal(t, tt.target, target)
			assert.Equal(t, utf16Len(tt.target), length)
		})
	}
}

func TestEncodeMountPointPayloadTooLong(t *testing.T) {
	_, err := encodeMountPointPayload(`C:\` + strings.Repeat("a", MaxTargetLength))
	assert.Error(t, err)
}

func TestDecodeMountPointTargetWrongTag(t *testing.T) {
	buf, err := encodeMountPointPayload(`C:\x`)
	require.NoError(t, err)

	// Rewrite the tag to IO_REPARSE_TAG_SYMLINK.
	binary.LittleEndian.PutUint32(buf[0:], 0xA000000C)

	_, _, isJunction, err := decodeMountPointTarget(buf)
	require.NoError(t, err)
	assert.False(t, isJunction)
}

func TestDecodeMountPointTargetTruncated(t *testing.T) {
	_, _, _, err := decodeMountPointTarget([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 4, utf16Len("abcd"))
	assert.Equal(t, 3, utf16Len("日本語"))
	// Characters outside the BMP take two UTF-16 units.
	assert.Equal(t, 2, utf16Len("𝄞"))
}
