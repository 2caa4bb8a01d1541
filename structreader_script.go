package recon

// scriptFieldOffsets is the runtime Script object layout: header counts,
// the bytecode and source buffers (pointer+length pairs per spec §4.4
// rule 9), and the local-variable list.
var scriptFieldOffsets = struct {
	VarCount, RefCount, CompiledSize, Flags     uint32
	BytecodePtr, BytecodeLen, SourcePtr, SourceLen uint32
	LocalsHead, LocalNext, LocalIndex, LocalValue  uint32
}{
	VarCount: 0x54, RefCount: 0x56, CompiledSize: 0x58, Flags: 0x5C,
	BytecodePtr: 0x60, BytecodeLen: 0x64, SourcePtr: 0x68, SourceLen: 0x6C,
	LocalsHead: 0x70, LocalNext: 0x04, LocalIndex: 0x08, LocalValue: 0x0C,
}

// maxBytecodeLength bounds the raw bytecode read of a runtime script
// struct (spec §4.4 rule 9's "bounds-checks the length"). The source text
// is read through readPointerString and its 4096-byte cap, so
// maxSourceLength is not consulted by readScriptStruct.
const (
	maxBytecodeLength uint32 = 1 << 20
	maxSourceLength    uint32 = 1 << 20
)

// readScriptStruct performs pass 1 of the two-pass script reconstruction
// (spec §4.4.1) for a runtime-resident script: raw bytecode, source
// text, and local variables (the header count fields are not read). No
// decompilation happens
// here; that is pass 2, driven by script.go once every script's
// variables are known.
func readScriptStruct(view *DumpView, form tesForm, e endian) Script {
	data := dumpBytes(view)
	s := Script{}

	if bcPtr, err := readUint32(data, form.Offset+scriptFieldOffsets.BytecodePtr, e); err == nil && bcPtr != 0 {
		if bcLen, err := readUint32(data, form.Offset+scriptFieldOffsets.BytecodeLen, e); err == nil && bcLen <= maxBytecodeLength {
			if off, ok := view.ResolvePointer(bcPtr); ok {
				if raw, err := readBytes(data, off, bcLen); err == nil {
					s.Bytecode = append([]byte(nil), raw...)
				}
			}
		}
	}

	if text, ok := readPointerString(view, form.Offset+scriptFieldOffsets.SourcePtr, e); ok {
		s.SourceText = text
	}

	if head, err := readUint32(data, form.Offset+scriptFieldOffsets.LocalsHead, e); err == nil {
		linkedListWalker(view, head, scriptFieldOffsets.LocalNext, func(nodeOffset uint32) bool {
			idx, err := readInt32(data, nodeOffset+scriptFieldOffsets.LocalIndex, bigEndian)
			if err != nil {
				return false
			}
			val, err := readFloat32(data, nodeOffset+scriptFieldOffsets.LocalValue, bigEndian)
			if err != nil || !validFloat(val) {
				val = 0
			}
			s.Variables = append(s.Variables, ScriptVariable{Index: idx, Value: val})
			return true
		})
	}

	return s
}
