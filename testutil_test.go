package recon

import (
	"encoding/binary"
	"math"
)

// subrecordEntry is one (tag, payload) pair fed to buildSubrecords.
type subrecordEntry struct {
	tag     Tag
	payload []byte
}

// sub is a convenience constructor for a subrecordEntry from a 4-char tag
// string and a payload.
func sub(tag string, payload []byte) subrecordEntry {
	var t Tag
	copy(t[:], tag)
	return subrecordEntry{tag: t, payload: payload}
}

// buildSubrecords encodes entries as a record data buffer: each gets a
// 4-byte tag plus 2-byte little/big-endian length prefix followed by its
// payload, exactly the wire shape SubrecordIterator.Next expects.
func buildSubrecords(big bool, entries ...subrecordEntry) []byte {
	order := binary.ByteOrder(binary.LittleEndian)
	if big {
		order = binary.BigEndian
	}
	var buf []byte
	for _, e := range entries {
		buf = append(buf, e.tag[:]...)
		lenBytes := make([]byte, 2)
		order.PutUint16(lenBytes, uint16(len(e.payload)))
		buf = append(buf, lenBytes...)
		buf = append(buf, e.payload...)
	}
	return buf
}

// u32 encodes v as a 4-byte buffer in the given order.
func u32(v uint32, big bool) []byte {
	b := make([]byte, 4)
	if big {
		binary.BigEndian.PutUint32(b, v)
	} else {
		binary.LittleEndian.PutUint32(b, v)
	}
	return b
}

// u16 encodes v as a 2-byte buffer in the given order.
func u16(v uint16, big bool) []byte {
	b := make([]byte, 2)
	if big {
		binary.BigEndian.PutUint16(b, v)
	} else {
		binary.LittleEndian.PutUint16(b, v)
	}
	return b
}

// cstr encodes s as a null-terminated byte string.
func cstr(s string) []byte {
	return append([]byte(s), 0)
}

// floatLE encodes v as a little-endian IEEE-754 32-bit float.
func floatLE(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}
