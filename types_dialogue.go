package recon

// Quest is a reconstructed QUST record.
type Quest struct {
	RecordHeader
	Script      FormID
	Priority    uint8
	Flags       uint16
	Stages      []QuestStage
	// Synthetic marks a stub quest materialized by the orphan-quest
	// backfill linker pass (spec §4.7 rule 3) rather than read from a
	// QUST record.
	Synthetic bool
}

// QuestStage is one INDX/QSDT/CNAM/SCHR stage entry on a quest.
type QuestStage struct {
	Index     int16
	Flags     uint8
	LogEntry  string
}

// DialogTopic is a reconstructed DIAL record.
type DialogTopic struct {
	RecordHeader
	Quest       FormID
	Priority    float32
	Speaker     FormID // TNAM: topic-level speaker, propagated to infos
	Infos       []FormID
}

// DialogInfo is a reconstructed INFO record.
type DialogInfo struct {
	RecordHeader
	Topic      FormID
	Quest      FormID
	Speaker    FormID
	PrevInfo   FormID
	Difficulty uint8
	LinksTo    []FormID // TCLT
	LinksFrom  []FormID // TCLF
	AddTopics  []FormID // NAME
	Responses  []DialogResponse
}

// DialogResponse is one NAM1/TRDT response line within a DialogInfo
// (spec §4.5.2, §4.8 dialogue response state machine).
type DialogResponse struct {
	Text          string
	EmotionType   int32
	EmotionValue  int32
	ResponseNumber uint8
}

// responseAssemblyState is the two-state machine driving dialogue
// response collection within one INFO record (spec §4.8 state machine
// box): Idle until the first NAM1, then InResponse until the next NAM1
// or end of record flushes the pending response.
type responseAssemblyState int

const (
	stateIdle responseAssemblyState = iota
	stateInResponse
)

// responseAssembler implements the state machine: total transitions,
// defaults on missing TRDT, one flush per NAM1 boundary or record end.
type responseAssembler struct {
	state   responseAssemblyState
	current DialogResponse
	out     []DialogResponse
}

// onNAM1 starts a new response, flushing whatever was pending.
func (a *responseAssembler) onNAM1(text string) {
	if a.state == stateInResponse {
		a.flush()
	}
	a.current = DialogResponse{Text: text}
	a.state = stateInResponse
}

// onTRDT attaches emotion metadata to the response currently being
// assembled. Out-of-order TRDT (no preceding NAM1) is ignored rather than
// fabricating a response, per spec §4.8 "Transitions are total".
func (a *responseAssembler) onTRDT(emotionType, emotionValue int32, responseNumber uint8) {
	if a.state != stateInResponse {
		return
	}
	a.current.EmotionType = emotionType
	a.current.EmotionValue = emotionValue
	a.current.ResponseNumber = responseNumber
}

// flush emits the pending response, if any.
func (a *responseAssembler) flush() {
	if a.state == stateInResponse {
		a.out = append(a.out, a.current)
		a.state = stateIdle
		a.current = DialogResponse{}
	}
}

// finish flushes any pending response at end of record and returns the
// assembled list.
func (a *responseAssembler) finish() []DialogResponse {
	a.flush()
	return a.out
}

// Note is a reconstructed NOTE record (holodisks, paper notes).
type Note struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Bounds      ObjectBounds
	NoteType    uint8
	SoundOrText FormID
	Text        string
}

// Book is a reconstructed BOOK record.
type Book struct {
	RecordHeader
	Description string
	ModelPath   string
	Icon        string
	Bounds      ObjectBounds
	Script      FormID
	Text        string
	Value       int32
	Weight      float32
	Flags       uint8
	SkillTaught int8
}

// Terminal is a reconstructed TERM record.
type Terminal struct {
	RecordHeader
	Description string
	ModelPath   string
	Bounds      ObjectBounds
	Script      FormID
	Difficulty  uint8
	Entries     []TerminalMenuEntry
}

// TerminalMenuEntry is one menu item (RNAM text plus its linked note or
// result script) on a terminal.
type TerminalMenuEntry struct {
	Text   string
	Result FormID
}

// Message is a reconstructed MESG record (UI popup/message box).
type Message struct {
	RecordHeader
	Description string
	Icon        string
	Flags       uint32
	DisplayTime uint32
	Buttons     []string
}
