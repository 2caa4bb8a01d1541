package recon

// noteFieldOffsets is the runtime TESObjectNOTE layout.
var noteFieldOffsets = struct {
	NoteType, SoundOrText uint32
}{
	NoteType: 0x58, SoundOrText: 0x5C,
}

func readNoteStruct(view *DumpView, form tesForm, e endian) Note {
	data := dumpBytes(view)
	n := Note{}
	if v, err := readUint8(data, form.Offset+noteFieldOffsets.NoteType); err == nil {
		n.NoteType = v
	}
	n.SoundOrText = readPointerField(view, data, form.Offset+noteFieldOffsets.SoundOrText, e)
	return n
}

// questFieldOffsets is the runtime TESQuest layout.
var questFieldOffsets = struct {
	Script, Priority, Flags uint32
}{
	Script: 0x54, Priority: 0x58, Flags: 0x59,
}

func readQuestStruct(view *DumpView, form tesForm, e endian) Quest {
	data := dumpBytes(view)
	q := Quest{}
	q.Script = readPointerField(view, data, form.Offset+questFieldOffsets.Script, e)
	if v, err := readUint8(data, form.Offset+questFieldOffsets.Priority); err == nil {
		q.Priority = v
	}
	if v, err := readUint16(data, form.Offset+questFieldOffsets.Flags, e); err == nil {
		q.Flags = v
	}
	return q
}

// terminalFieldOffsets is the runtime TESTerminal layout; Entries is the
// head-of-list pointer for a terminal's menu items.
var terminalFieldOffsets = struct {
	Script, Difficulty                                uint32
	EntriesHead, EntryNext, EntryTextPtr, EntryResult uint32
}{
	Script: 0x58, Difficulty: 0x5C,
	EntriesHead: 0x60, EntryNext: 0x04, EntryTextPtr: 0x08, EntryResult: 0x10,
}

func readTerminalStruct(view *DumpView, form tesForm, e endian) Terminal {
	data := dumpBytes(view)
	t := Terminal{}
	t.Script = readPointerField(view, data, form.Offset+terminalFieldOffsets.Script, e)
	if v, err := readUint8(data, form.Offset+terminalFieldOffsets.Difficulty); err == nil {
		t.Difficulty = v
	}

	head, err := readUint32(data, form.Offset+terminalFieldOffsets.EntriesHead, e)
	if err != nil {
		return t
	}
	linkedListWalker(view, head, terminalFieldOffsets.EntryNext, func(nodeOffset uint32) bool {
		text, ok := readPointerString(view, nodeOffset+terminalFieldOffsets.EntryTextPtr, e)
		if !ok {
			text = ""
		}
		result, err := readUint32(data, nodeOffset+terminalFieldOffsets.EntryResult, bigEndian)
		if err != nil {
			return false
		}
		t.Entries = append(t.Entries, TerminalMenuEntry{Text: text, Result: FormID(result)})
		return true
	})
	return t
}

// projectileFieldOffsets is the runtime TESProjectile layout.
var projectileFieldOffsets = struct {
	Speed, Gravity, Range uint32
}{
	Speed: 0x54, Gravity: 0x58, Range: 0x5C,
}

// Projectile is the record kind reconstructed by readProjectileStruct;
// modeled here rather than in types_world.go since its fields are
// runtime-only (no ESM subrecord parser of its own is specified).
type Projectile struct {
	RecordHeader
	ModelPath string
	Speed     float32
	Gravity   float32
	Range     float32
}

func readProjectileStruct(data []byte, form tesForm, e endian) Projectile {
	p := Projectile{}
	if v, err := readFloat32(data, form.Offset+projectileFieldOffsets.Speed, e); err == nil && validFloat(v) {
		p.Speed = v
	}
	if v, err := readFloat32(data, form.Offset+projectileFieldOffsets.Gravity, e); err == nil && validFloat(v) {
		p.Gravity = v
	}
	if v, err := readFloat32(data, form.Offset+projectileFieldOffsets.Range, e); err == nil && validFloat(v) {
		p.Range = v
	}
	return p
}

// Explosion is a reconstructed EXPL record, runtime-only fields.
type Explosion struct {
	RecordHeader
	ModelPath string
	Force     float32
	Damage    int32
	Radius    float32
}

var explosionFieldOffsets = struct {
	Force, Damage, Radius uint32
}{
	Force: 0x58, Damage: 0x5C, Radius: 0x60,
}

func readExplosionStruct(data []byte, form tesForm, e endian) Explosion {
	x := Explosion{}
	if v, err := readFloat32(data, form.Offset+explosionFieldOffsets.Force, e); err == nil && validFloat(v) {
		x.Force = v
	}
	if v, err := readInt32(data, form.Offset+explosionFieldOffsets.Damage, e); err == nil && validRange(int64(v), 0, 100_000) {
		x.Damage = v
	}
	if v, err := readFloat32(data, form.Offset+explosionFieldOffsets.Radius, e); err == nil && validFloat(v) {
		x.Radius = v
	}
	return x
}

// landFieldOffsets locates the cell a runtime Land object belongs to.
var landFieldOffsets = struct {
	Cell uint32
}{Cell: 0x54}

func readLandStruct(view *DumpView, form tesForm, e endian) Land {
	data := dumpBytes(view)
	l := Land{}
	l.Cell = readPointerField(view, data, form.Offset+landFieldOffsets.Cell, e)
	return l
}

// dialogTopicFieldOffsets is the runtime TESTopic layout. InfosHead walks
// the topic's embedded quest-info list (spec §4.7 pass 1).
var dialogTopicFieldOffsets = struct {
	Quest, Speaker, Priority                uint32
	InfosHead, InfoNext, InfoFormID         uint32
}{
	Quest: 0x54, Speaker: 0x58, Priority: 0x5C,
	InfosHead: 0x60, InfoNext: 0x04, InfoFormID: 0x08,
}

func readDialogTopicStruct(view *DumpView, form tesForm, e endian) DialogTopic {
	data := dumpBytes(view)
	t := DialogTopic{}
	t.Quest = readPointerField(view, data, form.Offset+dialogTopicFieldOffsets.Quest, e)
	t.Speaker = readPointerField(view, data, form.Offset+dialogTopicFieldOffsets.Speaker, e)
	if v, err := readFloat32(data, form.Offset+dialogTopicFieldOffsets.Priority, e); err == nil && validFloat(v) {
		t.Priority = v
	}

	head, err := readUint32(data, form.Offset+dialogTopicFieldOffsets.InfosHead, e)
	if err != nil {
		return t
	}
	linkedListWalker(view, head, dialogTopicFieldOffsets.InfoNext, func(nodeOffset uint32) bool {
		infoID, err := readUint32(data, nodeOffset+dialogTopicFieldOffsets.InfoFormID, bigEndian)
		if err != nil {
			return false
		}
		t.Infos = append(t.Infos, FormID(infoID))
		return true
	})
	return t
}

// dialogInfoFieldOffsets is the runtime TESTopicInfo layout.
var dialogInfoFieldOffsets = struct {
	Quest, Topic, Speaker, PrevInfo, Difficulty uint32
}{
	Quest: 0x54, Topic: 0x58, Speaker: 0x5C, PrevInfo: 0x60, Difficulty: 0x64,
}

func readDialogInfoStruct(view *DumpView, form tesForm, e endian) DialogInfo {
	data := dumpBytes(view)
	i := DialogInfo{}
	i.Quest = readPointerField(view, data, form.Offset+dialogInfoFieldOffsets.Quest, e)
	i.Topic = readPointerField(view, data, form.Offset+dialogInfoFieldOffsets.Topic, e)
	i.Speaker = readPointerField(view, data, form.Offset+dialogInfoFieldOffsets.Speaker, e)
	i.PrevInfo = readPointerField(view, data, form.Offset+dialogInfoFieldOffsets.PrevInfo, e)
	if v, err := readUint8(data, form.Offset+dialogInfoFieldOffsets.Difficulty); err == nil {
		i.Difficulty = v
	}
	return i
}
