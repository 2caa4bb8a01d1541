package recon

// Tag is an interned four-character subrecord or record type tag (spec §9
// "state from strings" — modeled as a fixed-size byte array, not a heap
// string, so every comparison and map key is a cheap value compare).
type Tag [4]byte

// String renders the tag as its ASCII form.
func (t Tag) String() string {
	return string(t[:])
}

func tagFromBytes(b []byte) Tag {
	var t Tag
	copy(t[:], b)
	return t
}

// TagXXXX is the extended-size prefix subrecord: its payload is a uint32
// giving the length of the subrecord that immediately follows it.
var TagXXXX = Tag{'X', 'X', 'X', 'X'}

// Subrecord is one (tag, offset, length) triple yielded by the iterator.
// Offset and Length are both relative to the record's data buffer, never
// to the file as a whole.
type Subrecord struct {
	Tag    Tag
	Offset uint32
	Length uint32
}

// SubrecordIterator walks a record's data buffer as a lazy sequence of
// Subrecord triples (spec §4.2). It never yields an entry whose bytes
// would run past the end of the buffer; it simply stops.
type SubrecordIterator struct {
	data   []byte
	endian endian
	cursor uint32
	done   bool
}

// NewSubrecordIterator constructs an iterator over data interpreting
// subrecord headers in the given byte order.
func NewSubrecordIterator(data []byte, big bool) *SubrecordIterator {
	e := littleEndian
	if big {
		e = bigEndian
	}
	return &SubrecordIterator{data: data, endian: e}
}

// subrecordHeaderSize is the fixed tag+length prefix before every
// subrecord's payload: 4 bytes of tag, 2 bytes of length.
const subrecordHeaderSize = 6

// Next advances the iterator and returns the next subrecord, or ok=false
// once the buffer is exhausted or malformed. A malformed tail (not enough
// bytes left for a header, or a declared length that would run past the
// buffer) ends iteration cleanly rather than yielding a bad entry or
// panicking (spec §4.2 invariant).
func (it *SubrecordIterator) Next() (sub Subrecord, ok bool) {
	if it.done {
		return Subrecord{}, false
	}

	for {
		if uint64(it.cursor)+subrecordHeaderSize > uint64(len(it.data)) {
			it.done = true
			return Subrecord{}, false
		}

		tagBytes, err := readBytes(it.data, it.cursor, 4)
		if err != nil {
			it.done = true
			return Subrecord{}, false
		}
		tag := tagFromBytes(tagBytes)

		length, err := readUint16(it.data, it.cursor+4, it.endian)
		if err != nil {
			it.done = true
			return Subrecord{}, false
		}

		payloadLen := uint32(length)
		headerLen := uint32(subrecordHeaderSize)

		if tag == TagXXXX {
			// The next 4 bytes (ignoring the 2-byte XXXX length, which is
			// always 4) are the real length of the *following* subrecord.
			extOffset := it.cursor + subrecordHeaderSize
			ext, err := readUint32(it.data, extOffset, it.endian)
			if err != nil {
				it.done = true
				return Subrecord{}, false
			}
			it.cursor = extOffset + 4
			if uint64(it.cursor)+subrecordHeaderSize > uint64(len(it.data)) {
				it.done = true
				return Subrecord{}, false
			}
			nextTagBytes, err := readBytes(it.data, it.cursor, 4)
			if err != nil {
				it.done = true
				return Subrecord{}, false
			}
			nextTag := tagFromBytes(nextTagBytes)
			// Skip the real subrecord's own (now-redundant) 2-byte length.
			dataOffset := it.cursor + subrecordHeaderSize
			if uint64(dataOffset)+uint64(ext) > uint64(len(it.data)) {
				it.done = true
				return Subrecord{}, false
			}
			it.cursor = dataOffset + ext
			return Subrecord{Tag: nextTag, Offset: dataOffset, Length: ext}, true
		}

		dataOffset := it.cursor + headerLen
		if uint64(dataOffset)+uint64(payloadLen) > uint64(len(it.data)) {
			it.done = true
			return Subrecord{}, false
		}
		it.cursor = dataOffset + payloadLen
		return Subrecord{Tag: tag, Offset: dataOffset, Length: payloadLen}, true
	}
}

// All drains the iterator into a slice. Convenience for parsers that want
// to range over subrecords rather than pull them one at a time.
func (it *SubrecordIterator) All() []Subrecord {
	var subs []Subrecord
	for {
		s, ok := it.Next()
		if !ok {
			return subs
		}
		subs = append(subs, s)
	}
}

// Data returns the subrecord's payload bytes from the original buffer.
func (it *SubrecordIterator) Data(s Subrecord) []byte {
	b, err := readBytes(it.data, s.Offset, s.Length)
	if err != nil {
		return nil
	}
	return b
}
