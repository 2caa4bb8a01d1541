package recon

import "sort"

// identitySource ranks where an editor-ID binding came from, highest
// precedence first (spec §4.6 / §8 "Identity-index precedence").
type identitySource int

const (
	sourceCorrelation identitySource = iota // caller-supplied correlation
	sourceESM                              // ESM EDID subrecord
	sourceRuntime                          // runtime hash-table entry
	sourceWellKnown                        // built-in injection
)

type identityEntry struct {
	editorID    string
	source      identitySource
	formOffset  uint32 // optional: dump-resident TesFormOffset, 0 if none
	formTypeTag byte   // optional: 8-bit runtime form-type code
	hasOffset   bool
}

// IdentityIndex is the FormID<->editor-ID<->display-name multi-source
// lookup described in spec §3/§4.6. It is the only structure mutated
// during reconstruction; every other record is immutable once built.
type IdentityIndex struct {
	byFormID map[FormID]*identityEntry
	// displayNames is the FormID->display-name cache populated from FULL
	// subrecords and consulted later to label cross-references (spec
	// §4.5 "Each collected FULL ... is cached").
	displayNames map[FormID]string
	// reverse is built once, at the end of reconstruction, by grouping
	// and taking the first occurrence per editor ID (spec §4.6).
	reverse map[string]FormID
}

// NewIdentityIndex constructs an index pre-seeded with the two well-known
// engine FormIDs (spec §3 invariant 4), always present regardless of
// input.
func NewIdentityIndex() *IdentityIndex {
	idx := &IdentityIndex{
		byFormID:     make(map[FormID]*identityEntry),
		displayNames: make(map[FormID]string),
	}
	idx.inject(PlayerRefFormID, "PlayerRef")
	idx.inject(PlayerFormID, "Player")
	return idx
}

func (idx *IdentityIndex) inject(id FormID, editorID string) {
	idx.byFormID[id] = &identityEntry{editorID: editorID, source: sourceWellKnown}
}

// outranks reports whether candidate source s should override whatever
// is currently bound for id (strictly higher precedence only; a tie keeps
// the existing first-seen binding).
func (s identitySource) outranks(existing identitySource) bool {
	return s < existing
}

// BindEditorID records that id is known by editorID, originating from
// source src. Lower-precedence sources never overwrite a higher-precedence
// binding; within the same precedence, first-seen wins (spec §3 invariant
// 2, §4.6).
func (idx *IdentityIndex) BindEditorID(id FormID, editorID string, src identitySource) {
	if editorID == "" {
		return
	}
	cur, ok := idx.byFormID[id]
	if !ok {
		idx.byFormID[id] = &identityEntry{editorID: editorID, source: src}
		return
	}
	if src.outranks(cur.source) {
		cur.editorID = editorID
		cur.source = src
	}
}

// BindRuntimeForm records the dump-side location of a runtime hash-table
// entry alongside its editor ID, so struct readers can locate the backing
// TESForm object.
func (idx *IdentityIndex) BindRuntimeForm(id FormID, editorID string, formOffset uint32, formType byte) {
	idx.BindEditorID(id, editorID, sourceRuntime)
	e := idx.byFormID[id]
	if e == nil {
		return
	}
	e.formOffset = formOffset
	e.formTypeTag = formType
	e.hasOffset = true
}

// EditorID returns the bound editor ID for id, if any.
func (idx *IdentityIndex) EditorID(id FormID) (string, bool) {
	e, ok := idx.byFormID[id]
	if !ok || e.editorID == "" {
		return "", false
	}
	return e.editorID, true
}

// RuntimeOffset returns the dump-resident TesFormOffset bound to id, if
// one was recorded.
func (idx *IdentityIndex) RuntimeOffset(id FormID) (offset uint32, formType byte, ok bool) {
	e, found := idx.byFormID[id]
	if !found || !e.hasOffset {
		return 0, 0, false
	}
	return e.formOffset, e.formTypeTag, true
}

// SetDisplayName caches a non-empty FULL value for id.
func (idx *IdentityIndex) SetDisplayName(id FormID, name string) {
	if name == "" {
		return
	}
	if _, exists := idx.displayNames[id]; !exists {
		idx.displayNames[id] = name
	}
}

// DisplayName returns the cached display name for id, if any.
func (idx *IdentityIndex) DisplayName(id FormID) (string, bool) {
	n, ok := idx.displayNames[id]
	return n, ok
}

// BuildReverseIndex finalizes the editor-ID->FormID mapping by grouping
// all bindings and taking the first occurrence per editor ID. Must be
// called once, after every phase that can introduce a binding has run
// (spec §4.6).
func (idx *IdentityIndex) BuildReverseIndex() {
	idx.reverse = make(map[string]FormID, len(idx.byFormID))
	// Iterate a stable, deterministic order: by FormID value, ascending,
	// so "first occurrence" is reproducible across runs.
	ids := make([]FormID, 0, len(idx.byFormID))
	for id := range idx.byFormID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		e := idx.byFormID[id]
		if e.editorID == "" {
			continue
		}
		if _, exists := idx.reverse[e.editorID]; !exists {
			idx.reverse[e.editorID] = id
		}
	}
}

// FormIDFor looks up the FormID bound to editorID via the reverse index.
// BuildReverseIndex must have been called first; otherwise this always
// misses.
func (idx *IdentityIndex) FormIDFor(editorID string) (FormID, bool) {
	if idx.reverse == nil {
		return 0, false
	}
	id, ok := idx.reverse[editorID]
	return id, ok
}
