package recon

var (
	tagGlobalType  = Tag{'F', 'N', 'A', 'M'}
	tagGlobalValue = Tag{'F', 'L', 'T', 'V'}

	tagGmstValue = Tag{'D', 'A', 'T', 'A'}

	tagChalData = Tag{'D', 'A', 'T', 'A'}

	tagRepuData         = Tag{'D', 'A', 'T', 'A'}
	tagRepuPositiveIcon = Tag{'I', 'C', 'O', 'N'}
	tagRepuNegativeIcon = Tag{'M', 'I', 'C', 'O'}

	tagFormListEntry = Tag{'L', 'N', 'A', 'M'}
)

// ParseGlobal reconstructs a GLOB record (spec §8 scenario 1: EDID
// "fTimeScale", FNAM 'f', FLTV 30.0 -> value_type='f', value=30.0).
func ParseGlobal(header RecordHeader, data []byte) *Global {
	r := parseRawRecord(header, data)
	common := commonFields{}
	g := &Global{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagGlobalType:
			if len(payload) >= 1 {
				g.ValueType = payload[0]
			}
		case tagGlobalValue:
			if v, err := readFloat32(payload, 0, header.Endian()); err == nil && validFloat(v) {
				g.Value = v
			}
		}
	}

	g.EditorID = common.EditorID
	return g
}

// ParseGameSetting reconstructs a GMST record. Its DATA payload is typed
// by the first character of its editor ID ('s'/'i'/'f', with 'b' read as
// an int like 'i'), the convention
// the format itself uses to disambiguate the otherwise-untyped value.
func ParseGameSetting(header RecordHeader, data []byte) *GameSetting {
	r := parseRawRecord(header, data)
	common := commonFields{}
	g := &GameSetting{RecordHeader: header}
	var rawValue []byte

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagGmstValue {
			rawValue = payload
		}
	}

	g.EditorID = common.EditorID
	if len(g.EditorID) == 0 || len(rawValue) == 0 {
		return g
	}
	g.ValueType = g.EditorID[0]
	switch g.ValueType {
	case 'f':
		if v, err := readFloat32(rawValue, 0, header.Endian()); err == nil && validFloat(v) {
			g.FloatValue = v
		}
	case 'i', 'b':
		if v, err := readInt32(rawValue, 0, header.Endian()); err == nil {
			g.IntValue = v
		}
	case 's':
		g.StringValue = decodeLatin1(trimTrailingNUL(rawValue))
	}
	return g
}

var challengeDataSchema = []dataField{
	{"type", fieldUint32, 0},
	{"threshold", fieldInt32, 4},
	{"flags", fieldUint32, 8},
	{"value", fieldInt32, 12},
}

// ParseChallenge reconstructs a CHAL record.
func ParseChallenge(header RecordHeader, data []byte) *Challenge {
	r := parseRawRecord(header, data)
	common := commonFields{}
	c := &Challenge{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagChalData {
			f := decodeDataFields(payload, challengeDataSchema, header.Endian())
			c.Type = uint32(f["type"])
			c.Threshold = int32(f["threshold"])
			c.Flags = uint32(f["flags"])
			c.Value = int32(f["value"])
		}
	}

	c.EditorID = common.EditorID
	c.Description = common.Description
	c.Icon = common.Icon
	return c
}

var reputationDataSchema = []dataField{{"value", fieldInt32, 0}}

// ParseReputation reconstructs a REPU record.
func ParseReputation(header RecordHeader, data []byte) *Reputation {
	r := parseRawRecord(header, data)
	common := commonFields{}
	rep := &Reputation{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagRepuData:
			f := decodeDataFields(payload, reputationDataSchema, header.Endian())
			rep.Value = int32(f["value"])
		case tagRepuPositiveIcon:
			rep.PositiveIcon = decodeLatin1(trimTrailingNUL(payload))
		case tagRepuNegativeIcon:
			rep.NegativeIcon = decodeLatin1(trimTrailingNUL(payload))
		}
	}

	rep.EditorID = common.EditorID
	return rep
}

// ParseFormList reconstructs an FLST record: an ordered list of FormIDs
// with no associated level or count data.
func ParseFormList(header RecordHeader, data []byte) *FormList {
	r := parseRawRecord(header, data)
	common := commonFields{}
	fl := &FormList{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		if s.Tag == tagFormListEntry {
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				fl.Items = append(fl.Items, FormID(v))
			}
		}
	}

	fl.EditorID = common.EditorID
	return fl
}
