package recon

import "errors"

// ErrFormTypeMismatch is returned when an object's declared form-type byte
// does not match what a struct reader expects (spec §4.4 rule 1).
var ErrFormTypeMismatch = errors.New("form type does not match expected class")

// ErrIdentityMismatch is returned when the FormID embedded in a struct
// disagrees with the identity-index entry used to locate it (spec §4.4
// rule 4, §7 "identity mismatch").
var ErrIdentityMismatch = errors.New("struct form id disagrees with identity index")

// tesFormTypeOffset and tesFormIDOffset are the TESForm-prefix field
// offsets shared by every runtime object on the console target (spec §6
// "the dump's TESForm prefix has form-type at +4 and form-ID (big-endian)
// at +12").
const (
	tesFormTypeOffset uint32 = 4
	tesFormIDOffset   uint32 = 12
)

// formTypeCode is the empirically-mapped form-type byte TESForm::GetType
// returns for each reconstructed kind on the console target. These are
// sampled from observed dumps, not derived from any header; unfamiliar
// builds may shift them; the runtime-form fallback skips a form whose
// byte matches no entry rather than panicking (spec §9 "weapon struct
// offsets... empirically mapped from a small sample").
var formTypeCode = map[RecordKind]uint8{
	KindActor:       43,
	KindWeapon:      33,
	KindArmor:       26,
	KindAmmo:        45,
	KindConsumable:  27,
	KindMiscItem:    32,
	KindKey:         45,
	KindContainer:   28,
	KindNote:        50,
	KindFaction:     11,
	KindQuest:       10,
	KindTerminal:    89,
	KindProjectile:  47,
	KindDialogTopic: 21,
	KindDialogInfo:  22,
	KindScript:      19,
}

// tesForm is one resolved TESForm header: the object's runtime form-type
// byte, its FormID, and the file offset its fields can be read from.
type tesForm struct {
	Offset   uint32
	FormType uint8
	FormID   FormID
}

// readTESForm resolves va through the memory resolver and reads the
// TESForm prefix at the resulting file offset. It never follows a null
// pointer and never returns a struct whose byte window runs past the
// file (spec §4.4 rules 2, 7; §8 "a pointer of value 0 is never
// followed").
func readTESForm(view *DumpView, va uint32) (tesForm, bool) {
	if va == 0 {
		return tesForm{}, false
	}
	offset, ok := view.ResolvePointer(va)
	if !ok {
		return tesForm{}, false
	}
	formType, err := readUint8(dumpBytes(view), offset+tesFormTypeOffset)
	if err != nil {
		return tesForm{}, false
	}
	rawID, err := readUint32(dumpBytes(view), offset+tesFormIDOffset, bigEndian)
	if err != nil {
		return tesForm{}, false
	}
	return tesForm{Offset: offset, FormType: formType, FormID: FormID(rawID)}, true
}

// dumpBytes exposes the view's backing bytes to the primitive readers.
// Kept as a single seam so struct readers never reach into DumpView's
// internals directly.
func dumpBytes(view *DumpView) []byte {
	return view.data
}

// checkFormType rejects a resolved object whose form-type byte does not
// match the expected code for kind (spec §4.4 rule 1). Kinds with no
// entry in formTypeCode are not validated this way (their struct reader
// relies on identity-index/FormID cross-checks alone).
func checkFormType(form tesForm, kind RecordKind) error {
	want, ok := formTypeCode[kind]
	if !ok {
		return nil
	}
	if form.FormType != want {
		return ErrFormTypeMismatch
	}
	return nil
}

// checkIdentity cross-checks a struct's embedded FormID against the
// identity-index entry that was used to find it (spec §4.4 rule 4).
func checkIdentity(form tesForm, expected FormID) error {
	if form.FormID != expected {
		return ErrIdentityMismatch
	}
	return nil
}

// followFormPointer resolves a pointer field to another TESForm and
// returns the FormID it refers to. An invalid, null, or out-of-region
// target yields NoFormID rather than propagating an error, per spec §4.4
// rule 7 and §7 "pointer-following failures silently zero the
// cross-reference".
func followFormPointer(view *DumpView, va uint32) FormID {
	form, ok := readTESForm(view, va)
	if !ok {
		return NoFormID
	}
	return form.FormID
}

// readPointerString reads a {char* ptr; uint16 length} pair stored
// contiguously at structOffset and validates it per spec §4.4 rule 9:
// pointer must resolve, length must be <=4096, and the decoded bytes
// must be >=80% printable ASCII. Returns ("", false) on any failure
// rather than a partial string.
func readPointerString(view *DumpView, structOffset uint32, e endian) (string, bool) {
	data := dumpBytes(view)
	ptr, err := readUint32(data, structOffset, e)
	if err != nil || ptr == 0 {
		return "", false
	}
	length, err := readUint16(data, structOffset+4, e)
	if err != nil {
		return "", false
	}
	if uint32(length) > maxStringLength {
		return "", false
	}
	strOffset, ok := view.ResolvePointer(ptr)
	if !ok {
		return "", false
	}
	raw, err := readBytes(data, strOffset, uint32(length))
	if err != nil {
		return "", false
	}
	if printableASCIIRatio(raw) < minPrintableRatio {
		return "", false
	}
	return decodeLatin1(raw), true
}

// linkedListWalker walks an embedded singly-linked list node by node,
// following a "next" pointer field at nextFieldOffset within each node,
// starting from headVA. It stops at maxLinkedListElements nodes, on a
// repeated virtual address (cycle guard), or when visit returns false
// (spec §4.4 rule 8). visit receives each node's resolved file offset.
func linkedListWalker(view *DumpView, headVA uint32, nextFieldOffset uint32, visit func(nodeOffset uint32) bool) int {
	visited := make(map[uint32]bool, maxLinkedListElements)
	count := 0
	va := headVA
	for va != 0 && count < maxLinkedListElements {
		if visited[va] {
			break
		}
		visited[va] = true

		offset, ok := view.ResolvePointer(va)
		if !ok {
			break
		}
		if !visit(offset) {
			break
		}
		count++

		next, err := readUint32(dumpBytes(view), offset+nextFieldOffset, bigEndian)
		if err != nil {
			break
		}
		va = next
	}
	return count
}
