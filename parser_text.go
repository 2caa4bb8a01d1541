package recon

// Note, Book, Terminal, and Message are parsed independently of each
// other (DATA and TNAM mean different things per record type); they are
// grouped in one file because the orchestrator's
// "text/scripts" phase (spec §4.8) reconstructs them alongside Script.

var (
	tagNoteType  = Tag{'D', 'A', 'T', 'A'}
	tagNoteSound = Tag{'S', 'N', 'A', 'M'}
	tagNoteText  = Tag{'T', 'N', 'A', 'M'}

	tagBookData = Tag{'D', 'A', 'T', 'A'}
	tagBookText = Tag{'T', 'E', 'X', 'T'}

	tagTerminalDifficulty = Tag{'D', 'A', 'T', 'A'}
	tagTerminalMenuText   = Tag{'R', 'N', 'A', 'M'}
	tagTerminalMenuResult = Tag{'A', 'N', 'A', 'M'}

	tagMessageFlags   = Tag{'D', 'N', 'A', 'M'}
	tagMessageDisplay = Tag{'T', 'N', 'A', 'M'}
	tagMessageButton  = Tag{'I', 'T', 'X', 'T'}
)

// ParseNote reconstructs a NOTE record. SoundOrText is either a sound
// FormID (voice/holodisk notes) or another record's FormID holding the
// note's displayed text, depending on NoteType; neither this parser nor
// the orchestrator's text phase tries to disambiguate further.
func ParseNote(header RecordHeader, data []byte) *Note {
	r := parseRawRecord(header, data)
	common := commonFields{}
	n := &Note{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagNoteType:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				n.NoteType = v
			}
		case tagNoteSound:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				n.SoundOrText = normalizeFormIDZero(FormID(v))
			}
		case tagNoteText:
			n.Text = decodeLatin1(trimTrailingNUL(payload))
		}
	}

	n.EditorID = common.EditorID
	n.DisplayName = common.DisplayName
	n.Description = common.Description
	n.ModelPath = common.ModelPath
	n.Icon = common.Icon
	n.Bounds = common.Bounds
	return n
}

var bookDataSchema = []dataField{
	{"flags", fieldUint8, 0},
	{"skillTaught", fieldInt8, 1},
	{"value", fieldInt32, 2},
	{"weight", fieldFloat32, 6},
}

// ParseBook reconstructs a BOOK record.
func ParseBook(header RecordHeader, data []byte) *Book {
	r := parseRawRecord(header, data)
	common := commonFields{}
	b := &Book{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagBookData:
			f := decodeDataFields(payload, bookDataSchema, header.Endian())
			b.Flags = uint8(f["flags"])
			b.SkillTaught = int8(f["skillTaught"])
			b.Value = int32(f["value"])
			b.Weight = float32(f["weight"])
		case tagBookText:
			b.Text = decodeLatin1(trimTrailingNUL(payload))
		}
	}

	b.EditorID = common.EditorID
	b.DisplayName = common.DisplayName
	b.Description = common.Description
	b.ModelPath = common.ModelPath
	b.Icon = common.Icon
	b.Bounds = common.Bounds
	b.Script = common.Script
	return b
}

// ParseTerminal reconstructs a TERM record. Each RNAM/ANAM pair is one
// menu entry, following the same open-on-first-tag, flush-on-next
// convention as ParseDialogInfo's response assembler: RNAM opens an
// entry, the following ANAM (if present before the next RNAM) supplies
// its result FormID.
func ParseTerminal(header RecordHeader, data []byte) *Terminal {
	r := parseRawRecord(header, data)
	common := commonFields{}
	t := &Terminal{RecordHeader: header}

	var current *TerminalMenuEntry
	flush := func() {
		if current != nil {
			t.Entries = append(t.Entries, *current)
			current = nil
		}
	}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagTerminalDifficulty:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				t.Difficulty = v
			}
		case tagTerminalMenuText:
			flush()
			current = &TerminalMenuEntry{Text: decodeLatin1(trimTrailingNUL(payload))}
		case tagTerminalMenuResult:
			if current != nil {
				if v, err := readUint32(payload, 0, header.Endian()); err == nil {
					current.Result = normalizeFormIDZero(FormID(v))
				}
			}
		}
	}
	flush()

	t.EditorID = common.EditorID
	t.DisplayName = common.DisplayName
	t.Description = common.Description
	t.ModelPath = common.ModelPath
	t.Bounds = common.Bounds
	t.Script = common.Script
	return t
}

// ParseMessage reconstructs a MESG record (UI popup/message box). Each
// ITXT subrecord names one button; DisplayTime of zero means the
// message stays until dismissed.
func ParseMessage(header RecordHeader, data []byte) *Message {
	r := parseRawRecord(header, data)
	common := commonFields{}
	m := &Message{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagMessageFlags:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				m.Flags = v
			}
		case tagMessageDisplay:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				m.DisplayTime = v
			}
		case tagMessageButton:
			m.Buttons = append(m.Buttons, decodeLatin1(trimTrailingNUL(payload)))
		}
	}

	m.EditorID = common.EditorID
	m.DisplayName = common.DisplayName
	m.Description = common.Description
	m.Icon = common.Icon
	return m
}
