package recon

var (
	tagTopicQuest   = Tag{'Q', 'S', 'T', 'I'}
	tagTopicSpeaker = Tag{'T', 'N', 'A', 'M'}
	tagTopicPrio    = Tag{'D', 'N', 'A', 'M'}

	tagInfoQuest      = Tag{'Q', 'S', 'T', 'I'}
	tagInfoTopic      = Tag{'T', 'P', 'I', 'C'}
	tagInfoSpeaker    = Tag{'C', 'N', 'A', 'M'}
	tagInfoPrevInfo   = Tag{'P', 'N', 'A', 'M'}
	tagInfoDifficulty = Tag{'D', 'A', 'T', 'A'}
	tagInfoNAM1       = Tag{'N', 'A', 'M', '1'}
	tagInfoTRDT       = Tag{'T', 'R', 'D', 'T'}
	tagInfoLinksTo    = Tag{'T', 'C', 'L', 'T'}
	tagInfoLinksFrom  = Tag{'T', 'C', 'L', 'F'}
	tagInfoAddTopic   = Tag{'N', 'A', 'M', 'E'}

	tagQuestData       = Tag{'D', 'A', 'T', 'A'}
	tagQuestStageIndex = Tag{'I', 'N', 'D', 'X'}
	tagQuestStageFlags = Tag{'Q', 'S', 'D', 'T'}
	tagQuestStageLog   = Tag{'C', 'N', 'A', 'M'}
)

// ParseQuest reconstructs a QUST record. Stages are assembled the same
// way ParseDialogInfo assembles responses: INDX opens a new stage, QSDT
// and CNAM fill it, and the stage flushes to Stages when the next INDX
// arrives or the record ends (spec §4.5, §4.8 "tree building").
func ParseQuest(header RecordHeader, data []byte) *Quest {
	r := parseRawRecord(header, data)
	common := commonFields{}
	q := &Quest{RecordHeader: header}

	var current *QuestStage
	flush := func() {
		if current != nil {
			q.Stages = append(q.Stages, *current)
			current = nil
		}
	}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagQuestData:
			if len(payload) >= 2 {
				flags, _ := readUint8(payload, 0)
				prio, _ := readUint8(payload, 1)
				q.Flags = uint16(flags)
				q.Priority = prio
			}
		case tagQuestStageIndex:
			flush()
			if v, err := readInt16(payload, 0, header.Endian()); err == nil {
				current = &QuestStage{Index: v}
			}
		case tagQuestStageFlags:
			if current != nil && len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				current.Flags = v
			}
		case tagQuestStageLog:
			if current != nil {
				current.LogEntry = decodeLatin1(trimTrailingNUL(payload))
			}
		}
	}
	flush()

	q.EditorID = common.EditorID
	q.DisplayName = common.DisplayName
	q.Script = common.Script
	return q
}

// ParseDialogTopic reconstructs a DIAL record. Its Infos list is filled
// in later by the cross-reference linker (spec §4.7 pass 1), not read
// directly from any subrecord here.
func ParseDialogTopic(header RecordHeader, data []byte) *DialogTopic {
	r := parseRawRecord(header, data)
	common := commonFields{}
	t := &DialogTopic{RecordHeader: header}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagTopicQuest:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				t.Quest = normalizeFormIDZero(FormID(v))
			}
		case tagTopicSpeaker:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				t.Speaker = normalizeFormIDZero(FormID(v))
			}
		case tagTopicPrio:
			if v, err := readFloat32(payload, 0, header.Endian()); err == nil && validFloat(v) {
				t.Priority = v
			}
		}
	}

	t.EditorID = common.EditorID
	return t
}

// decodeTRDT decodes a TRDT subrecord: emotion type, emotion value, and a
// response number (spec §4.5.2).
func decodeTRDT(payload []byte, e endian) (emotionType, emotionValue int32, responseNumber uint8) {
	if len(payload) >= 4 {
		emotionType, _ = readInt32(payload, 0, e)
	}
	if len(payload) >= 8 {
		emotionValue, _ = readInt32(payload, 4, e)
	}
	if len(payload) >= 9 {
		responseNumber, _ = readUint8(payload, 8)
	}
	return
}

// ParseDialogInfo reconstructs an INFO record, assembling its responses
// through the NAM1/TRDT state machine (spec §4.5.2, §4.8).
func ParseDialogInfo(header RecordHeader, data []byte) *DialogInfo {
	r := parseRawRecord(header, data)
	common := commonFields{}
	info := &DialogInfo{RecordHeader: header}
	assembler := &responseAssembler{}

	for _, s := range r.Subs {
		payload := r.payload(s)
		if applyCommonTag(s.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch s.Tag {
		case tagInfoQuest:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.Quest = normalizeFormIDZero(FormID(v))
			}
		case tagInfoTopic:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.Topic = normalizeFormIDZero(FormID(v))
			}
		case tagInfoSpeaker:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.Speaker = normalizeFormIDZero(FormID(v))
			}
		case tagInfoPrevInfo:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.PrevInfo = normalizeFormIDZero(FormID(v))
			}
		case tagInfoDifficulty:
			if len(payload) >= 1 {
				v, _ := readUint8(payload, 0)
				info.Difficulty = v
			}
		case tagInfoNAM1:
			assembler.onNAM1(decodeLatin1(trimTrailingNUL(payload)))
		case tagInfoTRDT:
			et, ev, rn := decodeTRDT(payload, header.Endian())
			assembler.onTRDT(et, ev, rn)
		case tagInfoLinksTo:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.LinksTo = append(info.LinksTo, FormID(v))
			}
		case tagInfoLinksFrom:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.LinksFrom = append(info.LinksFrom, FormID(v))
			}
		case tagInfoAddTopic:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				info.AddTopics = append(info.AddTopics, FormID(v))
			}
		}
	}

	info.Responses = assembler.finish()
	info.EditorID = common.EditorID
	return info
}
