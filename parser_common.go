package recon

// commonFields accumulates the subrecord tags that recur across nearly
// every record kind (spec §4.5: "Common tags: EDID, FULL, DESC, MODL,
// ICON, OBND, SCRI..."). Each per-type parser collects these through
// applyCommonTag before handling its own DATA/NAM*/ANAM/SNAM fields.
type commonFields struct {
	EditorID    string
	DisplayName string
	Description string
	ModelPath   string
	Icon        string
	Bounds      ObjectBounds
	HasBounds   bool
	Script      FormID
}

// Common subrecord tags shared across record kinds.
var (
	tagEDID = Tag{'E', 'D', 'I', 'D'}
	tagFULL = Tag{'F', 'U', 'L', 'L'}
	tagDESC = Tag{'D', 'E', 'S', 'C'}
	tagMODL = Tag{'M', 'O', 'D', 'L'}
	tagICON = Tag{'I', 'C', 'O', 'N'}
	tagOBND = Tag{'O', 'B', 'N', 'D'}
	tagSCRI = Tag{'S', 'C', 'R', 'I'}
	tagDATA = Tag{'D', 'A', 'T', 'A'}
	tagNAME = Tag{'N', 'A', 'M', 'E'}
)

// applyCommonTag tries to interpret (tag, payload) as one of the common
// fields, updating common in place. Returns true if the tag was
// recognized and consumed.
func applyCommonTag(tag Tag, payload []byte, e endian, common *commonFields) bool {
	switch tag {
	case tagEDID:
		common.EditorID = decodeLatin1(trimTrailingNUL(payload))
	case tagFULL:
		common.DisplayName = decodeLatin1(trimTrailingNUL(payload))
	case tagDESC:
		common.Description = decodeLatin1(trimTrailingNUL(payload))
	case tagMODL:
		common.ModelPath = decodeLatin1(trimTrailingNUL(payload))
	case tagICON:
		common.Icon = decodeLatin1(trimTrailingNUL(payload))
	case tagOBND:
		if b, ok := decodeObjectBounds(payload, e); ok {
			common.Bounds = b
			common.HasBounds = true
		}
	case tagSCRI:
		if v, err := readUint32(payload, 0, e); err == nil {
			common.Script = FormID(v)
		}
	default:
		return false
	}
	return true
}

func trimTrailingNUL(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}

// decodeObjectBounds decodes an OBND subrecord: six int16 extents.
func decodeObjectBounds(payload []byte, e endian) (ObjectBounds, bool) {
	if len(payload) < 12 {
		return ObjectBounds{}, false
	}
	var b ObjectBounds
	var err error
	if b.MinX, err = readInt16(payload, 0, e); err != nil {
		return ObjectBounds{}, false
	}
	if b.MinY, err = readInt16(payload, 2, e); err != nil {
		return ObjectBounds{}, false
	}
	if b.MinZ, err = readInt16(payload, 4, e); err != nil {
		return ObjectBounds{}, false
	}
	if b.MaxX, err = readInt16(payload, 6, e); err != nil {
		return ObjectBounds{}, false
	}
	if b.MaxY, err = readInt16(payload, 8, e); err != nil {
		return ObjectBounds{}, false
	}
	if b.MaxZ, err = readInt16(payload, 10, e); err != nil {
		return ObjectBounds{}, false
	}
	return b, true
}

// dataFieldType names the wire representation of one field within a
// fixed-layout DATA-style subrecord.
type dataFieldType int

const (
	fieldInt8 dataFieldType = iota
	fieldUint8
	fieldInt16
	fieldUint16
	fieldInt32
	fieldUint32
	fieldFloat32
)

// dataField is one entry in a record kind's DATA field schema: a named,
// typed value at a fixed offset. Schemas are declared once per (tag,
// parent-record-type) pair and reused by both the decoder and, where
// useful, documentation of the wire layout (spec §4.5: "a shared
// field-schema mechanism keyed on (subrecord-tag, parent-record-type)").
type dataField struct {
	Name   string
	Type   dataFieldType
	Offset uint32
}

// decodeDataFields decodes every field in schema out of raw, skipping
// (rather than aborting on) any field whose offset/size would run past
// raw's bounds. Values are returned as float64 for uniform storage;
// callers cast back to the field's natural type.
func decodeDataFields(raw []byte, schema []dataField, e endian) map[string]float64 {
	out := make(map[string]float64, len(schema))
	for _, f := range schema {
		switch f.Type {
		case fieldInt8:
			if v, err := readInt8(raw, f.Offset); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldUint8:
			if v, err := readUint8(raw, f.Offset); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldInt16:
			if v, err := readInt16(raw, f.Offset, e); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldUint16:
			if v, err := readUint16(raw, f.Offset, e); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldInt32:
			if v, err := readInt32(raw, f.Offset, e); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldUint32:
			if v, err := readUint32(raw, f.Offset, e); err == nil {
				out[f.Name] = float64(v)
			}
		case fieldFloat32:
			if v, err := readFloat32(raw, f.Offset, e); err == nil && validFloat(v) {
				out[f.Name] = float64(v)
			}
		}
	}
	return out
}

// normalizeFormIDZero implements the open-question decision that a zero
// reference FormID is always normalized to NoFormID (DESIGN.md "sound
// FormID zero-vs-None").
func normalizeFormIDZero(id FormID) FormID {
	if id == 0 {
		return NoFormID
	}
	return id
}

// rawRecord is the minimal view a type-specific parser needs: the
// record's own data buffer and the subrecords already walked out of it
// by the iterator, plus the header identifying it.
type rawRecord struct {
	Header RecordHeader
	Data   []byte
	Subs   []Subrecord
}

// parseRawRecord walks a record's data buffer with a SubrecordIterator
// and returns every subrecord found, for a type-specific parser to range
// over (spec §4.5 "each walks the record's subrecords and collects
// fields by tag").
func parseRawRecord(header RecordHeader, data []byte) rawRecord {
	it := NewSubrecordIterator(data, header.BigEndian)
	return rawRecord{Header: header, Data: data, Subs: it.All()}
}

func (r rawRecord) payload(s Subrecord) []byte {
	b, err := readBytes(r.Data, s.Offset, s.Length)
	if err != nil {
		return nil
	}
	return b
}
