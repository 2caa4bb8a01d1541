package recon

// ScriptVariable is one local variable slot declared on a script (SLSD/
// SCVR pair).
type ScriptVariable struct {
	Index int32
	Name  string
	Value float32
}

// ScriptRef is one external reference (SCRO/SCRV) a compiled script
// resolves a variable or call target against.
type ScriptRef struct {
	FormID FormID
	Local  bool
}

// Script is a reconstructed SCPT record (or an embedded quest/info SCHR
// block treated as a standalone unit by the script pass).
type Script struct {
	RecordHeader
	Bytecode    []byte
	SourceText  string
	Variables   []ScriptVariable
	References  []ScriptRef
	// Decompiled is produced by the two-pass script reconstruction; left
	// empty with DecompileError set if decompilation failed (spec §4.4.1,
	// §7).
	Decompiled     string
	DecompileError string
	// OwnerQuest is the quest that owns this script: fixupScriptOwners
	// sets it for a standalone SCPT record that a quest's SCRI points at,
	// and ParseScriptRecord takes it from its caller. The
	// FormID->variables map is indexed under it as well as under the
	// script's own FormID (spec pass 2).
	OwnerQuest FormID
}

// Global is a reconstructed GLOB record: a single named short/long/float
// value (spec §8 scenario 1).
type Global struct {
	RecordHeader
	ValueType byte // 's', 'l', or 'f'
	Value     float32
}

// GameSetting is a reconstructed GMST record.
type GameSetting struct {
	RecordHeader
	ValueType byte // 's', 'i', 'b', or 'f'
	IntValue  int32
	FloatValue float32
	StringValue string
}

// Challenge is a reconstructed CHAL record.
type Challenge struct {
	RecordHeader
	Description string
	Icon        string
	Type        uint32
	Threshold   int32
	Flags       uint32
	Value       int32
}

// Reputation is a reconstructed REPU record (town/faction reputation
// track).
type Reputation struct {
	RecordHeader
	Value     int32
	PositiveIcon string
	NegativeIcon string
}

// FormList is a reconstructed FLST record: an ordered list of FormIDs
// with no associated level or count data.
type FormList struct {
	RecordHeader
	Items []FormID
}

// GenericRecord is the fallback holder for any tagged record whose type
// has no dedicated struct, per spec §3 "records of unrecognized type are
// retained... rather than dropped".
type GenericRecord struct {
	RecordHeader
	Type       RecordKind
	Subrecords []Subrecord
	Raw        []byte
}
