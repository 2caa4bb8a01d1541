// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package recon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Errors returned by the bounds-checked primitive readers. Every one of
// these is recovered locally by the caller; none of them ever escapes a
// reconstruction run (spec §7).
var (
	// ErrOutsideBoundary is returned when a read would cross the end of
	// the buffer it is reading from.
	ErrOutsideBoundary = errors.New("reading data outside boundary")

	// ErrStringTooLong names a length-prefixed string whose declared
	// length is beyond the accepted cap. No reader in this package returns
	// it: readPointerString reports that case as ok=false.
	ErrStringTooLong = errors.New("string length exceeds accepted maximum")

	// ErrNotPrintable names a decoded string that falls below the required
	// printable-ASCII ratio. No reader in this package returns it:
	// readPointerString reports that case as ok=false.
	ErrNotPrintable = errors.New("string is not sufficiently printable")
)

// maxStringLength bounds length-prefixed string reads (struct reader rule
// 4.4.9: pointer-and-length strings cap at 4096 bytes).
const maxStringLength = 4096

// minPrintableRatio is the fraction of bytes that must be printable ASCII
// for a length-prefixed string read to be accepted (struct reader rule
// 4.4.9: "requires >=80% printable-ASCII to accept").
const minPrintableRatio = 0.8

// endian selects the byte order used to interpret a numeric or pointer
// field. Every binary read in this package is a function of (bytes,
// endian) rather than of separate LE/BE APIs (spec §9 "endianness as
// data, not types").
type endian bool

const (
	littleEndian endian = false
	bigEndian    endian = true
)

func (e endian) order() binary.ByteOrder {
	if e == bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// readUint8 reads a single byte at offset.
func readUint8(b []byte, offset uint32) (uint8, error) {
	if uint64(offset)+1 > uint64(len(b)) {
		return 0, ErrOutsideBoundary
	}
	return b[offset], nil
}

// readUint16 reads a 16-bit unsigned integer at offset in the given order.
func readUint16(b []byte, offset uint32, e endian) (uint16, error) {
	if uint64(offset)+2 > uint64(len(b)) {
		return 0, ErrOutsideBoundary
	}
	return e.order().Uint16(b[offset:]), nil
}

// readUint32 reads a 32-bit unsigned integer at offset in the given order.
func readUint32(b []byte, offset uint32, e endian) (uint32, error) {
	if uint64(offset)+4 > uint64(len(b)) {
		return 0, ErrOutsideBoundary
	}
	return e.order().Uint32(b[offset:]), nil
}

// readInt8 reads a signed byte at offset.
func readInt8(b []byte, offset uint32) (int8, error) {
	v, err := readUint8(b, offset)
	return int8(v), err
}

// readInt16 reads a signed 16-bit integer at offset in the given order.
func readInt16(b []byte, offset uint32, e endian) (int16, error) {
	v, err := readUint16(b, offset, e)
	return int16(v), err
}

// readInt32 reads a signed 32-bit integer at offset in the given order.
func readInt32(b []byte, offset uint32, e endian) (int32, error) {
	v, err := readUint32(b, offset, e)
	return int32(v), err
}

// readFloat32 reads an IEEE-754 32-bit float at offset in the given order.
func readFloat32(b []byte, offset uint32, e endian) (float32, error) {
	v, err := readUint32(b, offset, e)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// readBytes returns a sub-slice of b covering [offset, offset+size). The
// slice aliases b; callers that need to retain it past the lifetime of a
// pooled buffer must copy it out first (spec §5 "every string is copied
// out before the buffer is released").
func readBytes(b []byte, offset, size uint32) ([]byte, error) {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(b)) {
		return nil, ErrOutsideBoundary
	}
	return b[offset:end], nil
}

// readCString reads a null-terminated Latin-1 string starting at offset,
// stopping at the first NUL byte or after maxLen bytes, whichever comes
// first. ESM strings are Latin-1, not ASCII, so bytes above 0x7F are
// decoded through charmap.ISO8859_1 rather than truncated.
func readCString(b []byte, offset, maxLen uint32) (string, error) {
	if uint64(offset) > uint64(len(b)) {
		return "", ErrOutsideBoundary
	}
	end := offset
	limit := uint64(offset) + uint64(maxLen)
	for uint64(end) < uint64(len(b)) && uint64(end) < limit && b[end] != 0 {
		end++
	}
	return decodeLatin1(b[offset:end]), nil
}

// readPString reads a length-prefixed string: a uint16 length followed by
// that many Latin-1 bytes.
func readPString(b []byte, offset uint32, e endian) (string, error) {
	n, err := readUint16(b, offset, e)
	if err != nil {
		return "", err
	}
	raw, err := readBytes(b, offset+2, uint32(n))
	if err != nil {
		return "", err
	}
	return decodeLatin1(raw), nil
}

// decodeLatin1 decodes Latin-1 (ISO-8859-1) bytes to a Go string.
func decodeLatin1(raw []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return strings.TrimRight(string(s), "\x00")
}

// printableASCIIRatio returns the fraction of bytes in raw that are
// printable ASCII (0x20-0x7E).
func printableASCIIRatio(raw []byte) float64 {
	if len(raw) == 0 {
		return 1
	}
	printable := 0
	for _, c := range raw {
		if c >= 0x20 && c <= 0x7E {
			printable++
		}
	}
	return float64(printable) / float64(len(raw))
}

// structUnpack decodes a fixed-layout struct field by field using
// encoding/binary, bounds-checked against the buffer first. Mirrors the
// teacher's structUnpack but takes the byte order explicitly.
func structUnpack(b []byte, iface interface{}, offset, size uint32, e endian) error {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(b)) {
		return ErrOutsideBoundary
	}
	r := bytes.NewReader(b[offset:end])
	return binary.Read(r, e.order(), iface)
}
