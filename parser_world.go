package recon

var (
	tagCellFlags    = Tag{'D', 'A', 'T', 'A'}
	tagCellGrid     = Tag{'X', 'C', 'L', 'C'}
	tagWrldParent   = Tag{'W', 'N', 'A', 'M'}
	tagWrldClimate  = Tag{'C', 'N', 'A', 'M'}
	tagWrldWater    = Tag{'N', 'A', 'M', '2'}
	tagRefrBase     = Tag{'N', 'A', 'M', 'E'}
	tagRefrPosition = Tag{'D', 'A', 'T', 'A'}
	tagRefrOwner    = Tag{'X', 'O', 'W', 'N'}
	tagLvlChance    = Tag{'L', 'V', 'L', 'D'}
	tagLvlFlags     = Tag{'L', 'V', 'L', 'F'}
	tagLvlEntry     = Tag{'L', 'V', 'L', 'O'}

	tagRefrMarker     = Tag{'X', 'M', 'R', 'K'}
	tagMarkerType     = Tag{'F', 'N', 'A', 'M'}
	tagMarkerVisible  = Tag{'T', 'N', 'A', 'M'}
)

// cellGridAnchorWindow bounds how far (in scan-result byte offset) a
// cell-grid anchor may sit from a cell record header and still be
// considered that cell's grid coordinates. Not derived from the wire
// format; a tunable heuristic constant per the open-question decision in
// DESIGN.md (spec §9).
const cellGridAnchorWindow = 200

// CellGridAnchor is one scan-result entry correlating a byte offset with
// a cell's grid coordinates. ParseCell and the linker do not consult
// these anchors; nearestCellGridAnchor has no caller in this package.
type CellGridAnchor struct {
	Offset uint32
	GridX  int32
	GridY  int32
}

// nearestCellGridAnchor returns the grid anchor within cellGridAnchorWindow
// bytes of cellOffset, preferring the closest one. Returns ok=false if
// none is within range.
func nearestCellGridAnchor(anchors []CellGridAnchor, cellOffset uint32) (CellGridAnchor, bool) {
	best := CellGridAnchor{}
	bestDist := uint32(0)
	found := false
	for _, a := range anchors {
		var dist uint32
		if a.Offset > cellOffset {
			dist = a.Offset - cellOffset
		} else {
			dist = cellOffset - a.Offset
		}
		if dist > cellGridAnchorWindow {
			continue
		}
		if !found || dist < bestDist {
			best, bestDist, found = a, dist, true
		}
	}
	return best, found
}

// ParseCell reconstructs a CELL record. Grid coordinates come only from
// XCLC; worldspace membership is left for the cell->worldspace linker
// pass (spec §4.7 rule 4).
func ParseCell(header RecordHeader, data []byte) *Cell {
	r := parseRawRecord(header, data)
	common := commonFields{}
	c := &Cell{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagCellFlags:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				c.Flags = uint32(v)
				c.IsInterior = v&0x01 != 0
			}
		case tagCellGrid:
			if len(payload) >= 8 {
				x, errX := readInt32(payload, 0, header.Endian())
				y, errY := readInt32(payload, 4, header.Endian())
				if errX == nil && errY == nil {
					c.GridX, c.GridY = x, y
				}
			}
		}
	}

	c.EditorID = common.EditorID
	return c
}

// ParseWorldspace reconstructs a WRLD record.
func ParseWorldspace(header RecordHeader, data []byte) *Worldspace {
	r := parseRawRecord(header, data)
	common := commonFields{}
	w := &Worldspace{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagWrldParent:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.ParentWorldspace = normalizeFormIDZero(FormID(v))
			}
		case tagWrldClimate:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.Climate = normalizeFormIDZero(FormID(v))
			}
		case tagWrldWater:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				w.Water = normalizeFormIDZero(FormID(v))
			}
		}
	}

	w.EditorID = common.EditorID
	return w
}

// ParsePlacedRef reconstructs a REFR record. Bounds and ModelPath are
// left zero-valued here; the placed-reference enrichment linker pass
// fills them in from the base record's own index (spec §4.7 rule 6).
func ParsePlacedRef(header RecordHeader, data []byte) *PlacedRef {
	r := parseRawRecord(header, data)
	common := commonFields{}
	ref := &PlacedRef{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagRefrBase:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				ref.Base = normalizeFormIDZero(FormID(v))
			}
		case tagRefrOwner:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				ref.Owner = normalizeFormIDZero(FormID(v))
			}
		case tagRefrPosition:
			if len(payload) >= 28 {
				ref.Position = decodePosition(payload, 0, header.Endian())
				ref.Rotation = decodeRotation(payload, 12, header.Endian())
				if v, err := readFloat32(payload, 24, header.Endian()); err == nil && validFloat(v) {
					ref.Scale = v
				} else {
					ref.Scale = 1
				}
			}
		}
	}

	if ref.Scale == 0 {
		ref.Scale = 1
	}
	return ref
}

// IsMapMarkerRecord reports whether a REFR record's subrecords carry an
// XMRK tag, the sole signal that this placed reference is a map marker
// rather than an ordinary object placement. The orchestrator checks this
// to decide whether a REFR becomes a ParseMapMarker entry instead of a
// PlacedRef (spec §4.8 "world").
func IsMapMarkerRecord(data []byte, header RecordHeader) bool {
	r := parseRawRecord(header, data)
	for _, s := range r.Subs {
		if s.Tag == tagRefrMarker {
			return true
		}
	}
	return false
}

// ParseMapMarker reconstructs the map-marker metadata carried on a REFR
// record alongside its XMRK subrecord: position from DATA, marker type
// from FNAM, and the visible-on-map flag from TNAM.
func ParseMapMarker(header RecordHeader, data []byte) *MapMarker {
	r := parseRawRecord(header, data)
	common := commonFields{}
	m := &MapMarker{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagRefrPosition:
			if len(payload) >= 12 {
				m.Position = decodePosition(payload, 0, header.Endian())
			}
		case tagMarkerType:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				m.MarkerType = v
			}
		case tagMarkerVisible:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				m.Visible = v != 0
			}
		}
	}

	m.Name = common.DisplayName
	return m
}

func decodePosition(payload []byte, offset uint32, e endian) Position {
	var p Position
	if v, err := readFloat32(payload, offset, e); err == nil && validFloat(v) {
		p.X = v
	}
	if v, err := readFloat32(payload, offset+4, e); err == nil && validFloat(v) {
		p.Y = v
	}
	if v, err := readFloat32(payload, offset+8, e); err == nil && validFloat(v) {
		p.Z = v
	}
	return p
}

func decodeRotation(payload []byte, offset uint32, e endian) Rotation {
	var r Rotation
	if v, err := readFloat32(payload, offset, e); err == nil && validFloat(v) {
		r.X = v
	}
	if v, err := readFloat32(payload, offset+4, e); err == nil && validFloat(v) {
		r.Y = v
	}
	if v, err := readFloat32(payload, offset+8, e); err == nil && validFloat(v) {
		r.Z = v
	}
	return r
}

// decodeLeveledListEntry decodes an LVLO subrecord (spec §8 scenario 4):
// uint16 level, uint16 padding, uint32 form id, uint16 count, uint16
// padding.
func decodeLeveledListEntry(payload []byte, e endian) (LeveledListEntry, bool) {
	if len(payload) < 10 {
		return LeveledListEntry{}, false
	}
	level, err := readUint16(payload, 0, e)
	if err != nil {
		return LeveledListEntry{}, false
	}
	formID, err := readUint32(payload, 4, e)
	if err != nil {
		return LeveledListEntry{}, false
	}
	count, err := readUint16(payload, 8, e)
	if err != nil {
		return LeveledListEntry{}, false
	}
	return LeveledListEntry{Level: level, FormID: FormID(formID), Count: count}, true
}

// ParseLeveledList reconstructs an LVLI/LVLN/LVLC record. A record with
// no LVLO subrecords reconstructs to zero entries, not an error (spec §8
// boundary behavior).
func ParseLeveledList(header RecordHeader, data []byte) *LeveledList {
	r := parseRawRecord(header, data)
	common := commonFields{}
	l := &LeveledList{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagLvlChance:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				l.ChanceNone = v
			}
		case tagLvlFlags:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				l.Flags = v
			}
		case tagLvlEntry:
			if entry, ok := decodeLeveledListEntry(payload, header.Endian()); ok {
				l.Entries = append(l.Entries, entry)
			}
		}
	}

	l.EditorID = common.EditorID
	return l
}

// parseSimplePlaceable collects only the common OBND/MODL/SCRI fields,
// for the record kinds that need nothing else (ParseActivator and
// ParseStatic); Door, Light and Furniture have parsers of their own.
func parseSimplePlaceable(header RecordHeader, data []byte) commonFields {
	r := parseRawRecord(header, data)
	common := commonFields{}
	for _, s := range r.Subs {
		payload := r.payload(s)
		applyCommonTag(s.Tag, payload, header.Endian(), &common)
	}
	return common
}

// ParseActivator reconstructs an ACTI record.
func ParseActivator(header RecordHeader, data []byte) *Activator {
	common := parseSimplePlaceable(header, data)
	return &Activator{RecordHeader: header, ModelPath: common.ModelPath, Bounds: common.Bounds, Script: common.Script}
}

// ParseStatic reconstructs a STAT record.
func ParseStatic(header RecordHeader, data []byte) *Static {
	common := parseSimplePlaceable(header, data)
	return &Static{RecordHeader: header, ModelPath: common.ModelPath, Bounds: common.Bounds}
}

var doorDataSchema = []dataField{{"flags", fieldUint8, 0}}

var (
	tagDoorOpenSound  = Tag{'S', 'N', 'A', 'M'}
	tagDoorCloseSound = Tag{'A', 'N', 'A', 'M'}
)

// ParseDoor reconstructs a DOOR record.
func ParseDoor(header RecordHeader, data []byte) *Door {
	r := parseRawRecord(header, data)
	common := commonFields{}
	d := &Door{RecordHeader: header}
	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagDATA:
			f := decodeDataFields(payload, doorDataSchema, header.Endian())
			d.Flags = uint8(f["flags"])
		case tagDoorOpenSound:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				d.OpenSound = normalizeFormIDZero(FormID(v))
			}
		case tagDoorCloseSound:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				d.CloseSound = normalizeFormIDZero(FormID(v))
			}
		}
	}
	d.ModelPath, d.Bounds, d.Script = common.ModelPath, common.Bounds, common.Script
	return d
}

var lightDataSchema = []dataField{
	{"value", fieldInt32, 0},
	{"weight", fieldFloat32, 4},
	{"radius", fieldInt32, 8},
	{"color", fieldUint32, 12},
	{"flags", fieldUint32, 16},
	{"fadeValue", fieldFloat32, 20},
}

// ParseLight reconstructs a LIGH record.
func ParseLight(header RecordHeader, data []byte) *Light {
	r := parseRawRecord(header, data)
	common := commonFields{}
	l := &Light{RecordHeader: header}
	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			f := decodeDataFields(payload, lightDataSchema, header.Endian())
			l.Value = int32(f["value"])
			l.Weight = float32(f["weight"])
			l.Radius = int32(f["radius"])
			l.Color = uint32(f["color"])
			l.Flags = uint32(f["flags"])
			l.FadeValue = float32(f["fadeValue"])
		}
	}
	l.ModelPath, l.Icon, l.Bounds, l.Script = common.ModelPath, common.Icon, common.Bounds, common.Script
	return l
}

var furnitureDataSchema = []dataField{{"flags", fieldUint32, 0}}

// ParseFurniture reconstructs a FURN record.
func ParseFurniture(header RecordHeader, data []byte) *Furniture {
	r := parseRawRecord(header, data)
	common := commonFields{}
	f := &Furniture{RecordHeader: header}
	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagDATA {
			fields := decodeDataFields(payload, furnitureDataSchema, header.Endian())
			f.Flags = uint32(fields["flags"])
		}
	}
	f.ModelPath, f.Bounds, f.Script = common.ModelPath, common.Bounds, common.Script
	return f
}
