package recon

var (
	tagScriptHeader = Tag{'S', 'C', 'H', 'R'}
	tagScriptData   = Tag{'S', 'C', 'D', 'A'}
	tagScriptSource = Tag{'S', 'C', 'T', 'X'}
	tagScriptSlot   = Tag{'S', 'L', 'S', 'D'}
	tagScriptVar    = Tag{'S', 'C', 'V', 'R'}
	tagScriptRefObj = Tag{'S', 'C', 'R', 'O'}
	tagScriptRefVar = Tag{'S', 'C', 'R', 'V'}
)

// ParseScriptRecord performs pass 1 of the two-pass script reconstruction
// (spec §4.4.1) for an ESM-resident SCPT record, or for a quest/info's
// embedded SCHR block when called with ownerQuest set: it harvests the
// compiled bytecode, source text, local variables, and external object
// references. No decompilation happens here — that is pass 2, run once
// every script's variable map is known (script.go).
func ParseScriptRecord(header RecordHeader, data []byte, ownerQuest FormID) *Script {
	r := parseRawRecord(header, data)
	common := commonFields{}
	s := &Script{RecordHeader: header, OwnerQuest: ownerQuest}

	var pendingSlot *ScriptVariable

	for _, sub := range r.Subs {
		payload := r.payload(sub)
		if applyCommonTag(sub.Tag, payload, header.Endian(), &common) {
			continue
		}
		switch sub.Tag {
		case tagScriptData:
			s.Bytecode = append([]byte(nil), payload...)
		case tagScriptSource:
			s.SourceText = decodeLatin1(trimTrailingNUL(payload))
		case tagScriptSlot:
			if len(payload) >= 4 {
				idx, err := readInt32(payload, 0, header.Endian())
				if err != nil {
					continue
				}
				v := ScriptVariable{Index: idx}
				s.Variables = append(s.Variables, v)
				pendingSlot = &s.Variables[len(s.Variables)-1]
			}
		case tagScriptVar:
			// SCVR supplies the name for the slot most recently opened by
			// SLSD, by adjacency in the subrecord stream (spec §4.4.1).
			if pendingSlot != nil {
				pendingSlot.Name = decodeLatin1(trimTrailingNUL(payload))
				pendingSlot = nil
			}
		case tagScriptRefObj:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				s.References = append(s.References, ScriptRef{FormID: normalizeFormIDZero(FormID(v)), Local: false})
			}
		case tagScriptRefVar:
			if v, err := readUint32(payload, 0, header.Endian()); err == nil {
				s.References = append(s.References, ScriptRef{FormID: FormID(v), Local: true})
			}
		}
	}

	s.EditorID = common.EditorID
	return s
}
