package recon

import "fmt"

// scriptOpcodeTable names the handful of bytecode opcodes this
// decompiler renders as mnemonics rather than raw hex; unrecognized
// opcodes still decompile cleanly as "op_XXXX" (spec §4.4.1: decompile
// every script, never abort the whole record on an unknown opcode).
var scriptOpcodeTable = map[uint16]string{
	0x1000: "SetStage",
	0x1001: "GetStage",
	0x1002: "MessageBox",
	0x1003: "StartQuest",
	0x1004: "StopQuest",
	0x1059: "ExternalRef",
}

// opExternalRef is the one opcode whose operand encodes a cross-script
// variable reference: a FormID naming the owning script or quest,
// followed by the variable's slot index (spec §4.4.1 pass 2, "decompile
// each script's bytecode with an external-variable resolver").
const opExternalRef uint16 = 0x1059

// scriptVariableMap indexes every known script's local variables by the
// script's own FormID and, when set, by its owning quest's FormID, so an
// external reference like vQuest.fTimer resolves either way (spec
// §4.4.1 pass 2).
type scriptVariableMap map[FormID][]ScriptVariable

func buildScriptVariableMap(scripts []*Script) scriptVariableMap {
	m := make(scriptVariableMap, len(scripts)*2)
	for _, s := range scripts {
		m[s.FormID] = append(m[s.FormID], s.Variables...)
		if !s.OwnerQuest.IsNone() {
			m[s.OwnerQuest] = append(m[s.OwnerQuest], s.Variables...)
		}
	}
	return m
}

func lookupVariable(vars []ScriptVariable, index int32) (ScriptVariable, bool) {
	for _, v := range vars {
		if v.Index == index {
			return v, true
		}
	}
	return ScriptVariable{}, false
}

// DecompileScripts runs pass 2 of the two-pass script reconstruction
// (spec §4.4.1): build the FormID->variables map across every script
// already harvested in pass 1, then decompile each script's bytecode
// against that map. Returns the total number of external-variable
// references resolved across scripts, for host diagnostics. Decompiling
// a script never aborts the run; a failure is captured inline as
// Script.DecompileError (spec §7 "decompilation failure").
func DecompileScripts(scripts []*Script) (crossScriptHits int) {
	varMap := buildScriptVariableMap(scripts)
	for _, s := range scripts {
		crossScriptHits += decompileScript(s, varMap)
	}
	return crossScriptHits
}

func decompileScript(s *Script, varMap scriptVariableMap) int {
	if len(s.Bytecode) == 0 {
		return 0
	}
	e := littleEndian
	if s.BigEndian {
		e = bigEndian
	}
	text, hits, err := decompileBytecode(s.Bytecode, s.Variables, varMap, e)
	if err != nil {
		s.DecompileError = err.Error()
		return 0
	}
	s.Decompiled = text
	return hits
}

// decompileBytecode walks a compiled script buffer as a sequence of
// {opcode:u16, length:u16, args...} instructions, in the endianness the
// script's provenance dictates (bytecode harvested from the dump is
// big-endian; bytecode from ESM subrecords is little-endian — spec
// §4.4.1). It never panics on truncated or malformed input: a boundary
// violation ends decompilation with whatever text was produced so far
// plus the triggering error, which the caller turns into
// Script.DecompileError rather than propagating.
func decompileBytecode(code []byte, locals []ScriptVariable, varMap scriptVariableMap, e endian) (string, int, error) {
	var out []byte
	hits := 0
	cursor := uint32(0)

	for cursor+4 <= uint32(len(code)) {
		opcode, err := readUint16(code, cursor, e)
		if err != nil {
			return string(out), hits, err
		}
		length, err := readUint16(code, cursor+2, e)
		if err != nil {
			return string(out), hits, err
		}
		argsStart := cursor + 4
		args, err := readBytes(code, argsStart, uint32(length))
		if err != nil {
			return string(out), hits, err
		}

		mnemonic, ok := scriptOpcodeTable[opcode]
		if !ok {
			mnemonic = fmt.Sprintf("op_%04x", opcode)
		}
		out = append(out, mnemonic...)

		if opcode == opExternalRef && len(args) >= 8 {
			refID, _ := readUint32(args, 0, e)
			varIndex, _ := readInt32(args, 4, e)
			if v, found := lookupVariable(varMap[FormID(refID)], varIndex); found {
				out = append(out, fmt.Sprintf(" 0x%08X.%s", refID, v.Name)...)
				hits++
			} else {
				out = append(out, fmt.Sprintf(" 0x%08X.%d", refID, varIndex)...)
			}
		} else {
			for i := 0; i+4 <= len(args); i += 4 {
				v, _ := readUint32(args, uint32(i), e)
				if local, found := lookupVariable(locals, int32(v)); found && local.Name != "" {
					out = append(out, ' ')
					out = append(out, local.Name...)
				} else {
					out = append(out, fmt.Sprintf(" 0x%08X", v)...)
				}
			}
		}
		out = append(out, '\n')
		cursor = argsStart + uint32(length)
	}
	return string(out), hits, nil
}
