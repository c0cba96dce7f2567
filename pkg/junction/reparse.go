package junction

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/arthur-debert/runlink/pkg/errors"
)

// The reparse payload passed to FSCTL_SET_REPARSE_POINT is a fixed-layout
// little-endian structure:
//
//	offset 0  u32  reparse tag
//	offset 4  u16  reparse data length (everything after offset 8)
//	offset 6  u16  reserved
//	offset 8  u16  substitute name offset (bytes, relative to path buffer)
//	offset 10 u16  substitute name length (bytes, no terminator)
//	offset 12 u16  print name offset (bytes, relative to path buffer)
//	offset 14 u16  print name length (bytes, no terminator)
//	offset 16 ...  UTF-16 path buffer
//
// The path buffer holds the NUL-terminated substitute name followed by the
// NUL-terminated print name.
const (
	maxReparseDataBufferSize = 16 * 1024
	reparseTagMountPoint     = 0xA0000003
	reparseHeaderSize        = 8
	reparseDescriptorSize    = 8
)

// kernelPrefix is the kernel object-path prefix ("\DosDevices\" synonym)
// that the substitute name must carry for the kernel to follow the
// junction.
const kernelPrefix = `\??\`

// MaxTargetLength is the longest junction target, in UTF-16 code units,
// that fits the reparse buffer. The buffer holds the header, the
// descriptor, one kernel prefix (4 units), two NUL terminators and two
// copies of the encoded target (substitute name and print name), at 2
// bytes per unit.
const MaxTargetLength = (maxReparseDataBufferSize -
	reparseHeaderSize - reparseDescriptorSize - 4*2 - 2*2) / 2 / 2

// utf16Len returns the length of s in UTF-16 code units, which is the unit
// the reparse buffer capacity is expressed in.
func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// encodeMountPointPayload builds the reparse payload for a junction whose
// kernel-form target is target (absolute, no namespace prefix). The print
// name is the target itself, matching what MKLINK displays in `dir`.
func encodeMountPointPayload(target string) ([]byte, error) {
	sub := utf16.Encode([]rune(kernelPrefix + target))
	print16 := utf16.Encode([]rune(target))
	if len(print16) > MaxTargetLength {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"junction target exceeds %d UTF-16 units", MaxTargetLength)
	}

	subLen := len(sub) * 2
	printLen := len(print16) * 2
	dataLen := reparseDescriptorSize + subLen + printLen + 2*2

	buf := make([]byte, reparseHeaderSize+dataLen)
	binary.LittleEndian.PutUint32(buf[0:], reparseTagMountPoint)
	binary.LittleEndian.PutUint16(buf[4:], uint16(dataLen))
	binary.LittleEndian.PutUint16(buf[6:], 0)
	binary.LittleEndian.PutUint16(buf[8:], 0)                 // substitute name offset
	binary.LittleEndian.PutUint16(buf[10:], uint16(subLen))   // substitute name length
	binary.LittleEndian.PutUint16(buf[12:], uint16(subLen+2)) // print name offset, past the NUL
	binary.LittleEndian.PutUint16(buf[14:], uint16(printLen)) // print name length

	pathBuf := buf[reparseHeaderSize+reparseDescriptorSize:]
	for i, u := range sub {
		binary.LittleEndian.PutUint16(pathBuf[i*2:], u)
	}
	// NUL terminator, then the print name, then its NUL terminator.
	for i, u := range print16 {
		binary.LittleEndian.PutUint16(pathBuf[subLen+2+i*2:], u)
	}
	return buf, nil
}

// decodeMountPointTarget extracts the substitute name from a reparse buffer
// returned by FSCTL_GET_REPARSE_POINT and strips the kernel prefix. It
// returns ok=false when the reparse tag is not the mount-point tag, i.e.
// the entry is a reparse point of some other kind (such as a symlink).
// length is the target length in UTF-16 code units.
func decodeMountPointTarget(buf []byte) (target string, length int, ok bool, err error) {
	if len(buf) < reparseHeaderSize+reparseDescriptorSize {
		return "", 0, false, errors.Newf(errors.ErrInternal,
			"reparse buffer truncated: %d bytes", len(buf))
	}
	tag := binary.LittleEndian.Uint32(buf[0:])
	if tag != reparseTagMountPoint {
		return "", 0, false, nil
	}
	subOff := int(binary.LittleEndian.Uint16(buf[8:]))
	subLen := int(binary.LittleEndian.Uint16(buf[10:]))
	pathBuf := buf[reparseHeaderSize+reparseDescriptorSize:]
	if subOff+subLen > len(pathBuf) {
		return "", 0, false, errors.Newf(errors.ErrInternal,
			"reparse buffer substitute name out of range: offset=%d length=%d", subOff, subLen)
	}
	units := make([]uint16, subLen/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(pathBuf[subOff+i*2:])
	}
	// Drop the 4-unit "\??\" prefix the kernel stores in front of the target.
	if len(units) >= 4 {
		units = units[4:]
	}
	return string(utf16.Decode(units)), len(units), true, nil
}
